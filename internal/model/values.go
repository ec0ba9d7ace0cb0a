package model

import (
	"regexp"
	"strings"
)

// Value syntax shared by every format.
//
// Multi-value fields store their values joined with "; ". Two-column
// table fields join columns with "::" and rows with the line separator
// rune, which never shows up in natural-language values.
const (
	// ValueDelimiter joins multiple values of one field.
	ValueDelimiter = "; "
	// ColumnDelimiter joins the columns of one table row.
	ColumnDelimiter = "::"
	// RowDelimiter joins table rows.
	RowDelimiter = "\u2028"
)

// delimiterRe tolerates sloppy spacing around the semicolon on input.
var delimiterRe = regexp.MustCompile(`\s*;\s*`)

// SplitValues splits a multi-value raw string into its logical values.
// An empty raw string yields no values.
func SplitValues(raw string) []string {
	if raw == "" {
		return nil
	}
	return delimiterRe.Split(raw, -1)
}

// JoinValues is the inverse of SplitValues.
func JoinValues(values []string) string {
	return strings.Join(values, ValueDelimiter)
}

// FixupValue normalizes delimiter spacing in a raw multi-value string so
// that stored values always use the canonical "; " form.
func FixupValue(raw string) string {
	return delimiterRe.ReplaceAllString(raw, ValueDelimiter)
}

// SplitTable splits a table field value into rows.
func SplitTable(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, RowDelimiter)
}

// JoinTable is the inverse of SplitTable.
func JoinTable(rows []string) string {
	return strings.Join(rows, RowDelimiter)
}

// SplitRow splits one table row into columns. Splitting is plain, so an
// empty trailing column survives the round trip.
func SplitRow(row string) []string {
	if row == "" {
		return nil
	}
	return strings.Split(row, ColumnDelimiter)
}

// JoinRow is the inverse of SplitRow.
func JoinRow(columns []string) string {
	return strings.Join(columns, ColumnDelimiter)
}
