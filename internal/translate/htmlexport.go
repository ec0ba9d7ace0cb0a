package translate

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/curiocat/curio/internal/model"
)

// HTMLExporter writes a standalone HTML document listing every entry.
// Paragraph field values are treated as markdown and rendered through
// goldmark; everything else is escaped text.
type HTMLExporter struct {
	// FormatValues exports display-formatted values.
	FormatValues bool

	Progress Progress
	Cancel   Cancel

	md goldmark.Markdown
}

func (x *HTMLExporter) markdown() goldmark.Markdown {
	if x.md == nil {
		x.md = goldmark.New()
	}
	return x.md
}

func (x *HTMLExporter) Export(c *model.Collection, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(c.Title()))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(c.Title()))

	total := c.EntryCount()
	for i, e := range c.Entries() {
		if x.Cancel != nil && x.Cancel() {
			break
		}
		if err := x.writeEntry(&b, c, e); err != nil {
			return err
		}
		if x.Progress != nil {
			x.Progress(i+1, total)
		}
	}

	b.WriteString("</body>\n</html>\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func (x *HTMLExporter) writeEntry(b *strings.Builder, c *model.Collection, e *model.Entry) error {
	fmt.Fprintf(b, "<h2>%s</h2>\n<dl>\n", html.EscapeString(e.Title()))
	for _, f := range c.Fields() {
		var value string
		if x.FormatValues {
			value = e.FormattedField(f.Name())
		} else {
			value = e.Field(f.Name())
		}
		if value == "" {
			continue
		}
		fmt.Fprintf(b, "<dt>%s</dt>\n", html.EscapeString(f.Title()))
		if f.Type() == model.TypePara {
			b.WriteString("<dd>")
			if err := x.markdown().Convert([]byte(value), b); err != nil {
				return fmt.Errorf("render field %s: %w", f.Name(), err)
			}
			b.WriteString("</dd>\n")
			continue
		}
		fmt.Fprintf(b, "<dd>%s</dd>\n", html.EscapeString(value))
	}
	b.WriteString("</dl>\n")
	return nil
}
