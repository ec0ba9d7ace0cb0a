// Package translate moves collections between the in-memory model and
// external formats: the native XML document, BibTeX, and HTML.
package translate

import (
	"fmt"
	"io"

	"github.com/curiocat/curio/internal/model"
)

// Importer reads a collection from an external source. A failed import
// never returns a partially populated collection. Non-fatal issues found
// along the way accumulate in Messages.
type Importer interface {
	Collection() (*model.Collection, error)
	Messages() []string
}

// Exporter writes a collection to an external format.
type Exporter interface {
	Export(c *model.Collection, w io.Writer) error
}

// Progress is called synchronously as work advances, with the number of
// entries processed so far and the total.
type Progress func(done, total int)

// Cancel is polled between entries. Returning true stops the operation
// at the next entry boundary, leaving the collection consistent.
type Cancel func() bool

// ParseError reports a malformed source document.
type ParseError struct {
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %s", e.Format, e.Reason)
}

// FormatVersionError reports a document written by a newer version than
// this implementation understands.
type FormatVersionError struct {
	Version   int
	Supported int
}

func (e *FormatVersionError) Error() string {
	return fmt.Sprintf("document syntax version %d is newer than supported version %d",
		e.Version, e.Supported)
}

// ExportPreconditionError reports a collection that cannot be exported
// to the requested format at all, as opposed to a degraded export.
type ExportPreconditionError struct {
	Format string
	Reason string
}

func (e *ExportPreconditionError) Error() string {
	return fmt.Sprintf("cannot export to %s: %s", e.Format, e.Reason)
}
