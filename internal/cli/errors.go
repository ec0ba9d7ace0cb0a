// Package cli implements the command-line interface.
package cli

import (
	"errors"

	"github.com/curiocat/curio/internal/index"
	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/translate"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Catalog errors
	ErrCatalogNotFound     = "CATALOG_NOT_FOUND"
	ErrCatalogNotSpecified = "CATALOG_NOT_SPECIFIED"
	ErrConfigInvalid       = "CONFIG_INVALID"

	// Collection errors
	ErrCollectionNotFound = "COLLECTION_NOT_FOUND"
	ErrCollectionExists   = "COLLECTION_EXISTS"
	ErrCollectionInvalid  = "COLLECTION_INVALID"
	ErrTypeUnknown        = "TYPE_UNKNOWN"

	// Field errors
	ErrFieldNotFound  = "FIELD_NOT_FOUND"
	ErrFieldProtected = "FIELD_PROTECTED"
	ErrInvalidValue   = "INVALID_VALUE"

	// Entry errors
	ErrEntryNotFound = "ENTRY_NOT_FOUND"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Translation errors
	ErrImportFailed    = "IMPORT_FAILED"
	ErrFormatVersion   = "FORMAT_VERSION_UNSUPPORTED"
	ErrExportFailed    = "EXPORT_FAILED"
	ErrFormatUnknown   = "FORMAT_UNKNOWN"
	ErrExportUnready   = "EXPORT_PRECONDITION"
	ErrConvertRejected = "CONVERT_REJECTED"

	// Merge errors
	ErrMergeModeInvalid = "MERGE_MODE_INVALID"
	ErrNoUndoJournal    = "NO_UNDO_JOURNAL"

	// Index errors
	ErrIndexError = "INDEX_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// errorCode maps an error to its stable code.
func errorCode(err error) string {
	var parseErr *translate.ParseError
	var versionErr *translate.FormatVersionError
	var exportErr *translate.ExportPreconditionError
	var schemaErr *model.SchemaError
	var protectedErr *model.ProtectedFieldError
	switch {
	case errors.As(err, &versionErr):
		return ErrFormatVersion
	case errors.As(err, &parseErr):
		return ErrImportFailed
	case errors.As(err, &exportErr):
		return ErrExportUnready
	case errors.As(err, &protectedErr):
		return ErrFieldProtected
	case errors.As(err, &schemaErr):
		return ErrCollectionInvalid
	case errors.Is(err, index.ErrCollectionNotFound):
		return ErrCollectionNotFound
	}
	return ErrInternal
}

// Warning codes for non-fatal issues.
const (
	WarnImportMessage = "IMPORT_MESSAGE"
	WarnExportMessage = "EXPORT_MESSAGE"
	WarnDuplicateKey  = "DUPLICATE_KEY"
	WarnValueInvalid  = "VALUE_INVALID"
	WarnIndexStale    = "INDEX_STALE"
)
