package translate

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosimple/slug"

	"github.com/curiocat/curio/internal/buildinfo"
	"github.com/curiocat/curio/internal/model"
)

// QuoteStyle selects how BibTeX field values are delimited.
type QuoteStyle int

const (
	QuoteBraces QuoteStyle = iota
	QuoteQuotes
)

// ParseQuoteStyle resolves "braces" or "quotes".
func ParseQuoteStyle(name string) (QuoteStyle, bool) {
	switch name {
	case "braces":
		return QuoteBraces, true
	case "quotes":
		return QuoteQuotes, true
	}
	return QuoteBraces, false
}

func (s QuoteStyle) String() string {
	if s == QuoteQuotes {
		return "quotes"
	}
	return "braces"
}

func (s QuoteStyle) delims() (string, string) {
	if s == QuoteQuotes {
		return `"`, `"`
	}
	return "{", "}"
}

// BibtexExporter writes a collection as a BibTeX bibliography.
//
// The collection must map exactly one field to the entry-type tag and
// one to the key tag; anything else cannot become a citation record.
type BibtexExporter struct {
	// FormatValues exports display-formatted values.
	FormatValues bool
	// ExpandMacros suppresses @string definitions and writes macro
	// values inline.
	ExpandMacros bool
	// PackageURL wraps URL field values in \url{}.
	PackageURL bool
	// SkipEmptyKeys drops entries without a citation key instead of
	// generating one.
	SkipEmptyKeys bool
	// Style picks braces or quotes around values.
	Style QuoteStyle

	Progress Progress
	Cancel   Cancel

	messages []string
}

// Messages returns non-fatal issues from the last export, such as
// entries skipped for missing an entry type.
func (x *BibtexExporter) Messages() []string { return x.messages }

func (x *BibtexExporter) message(format string, args ...any) {
	x.messages = append(x.messages, fmt.Sprintf(format, args...))
}

func (x *BibtexExporter) Export(c *model.Collection, w io.Writer) error {
	x.messages = nil

	var typeField, keyField string
	var tagged []*model.Field
	for _, f := range c.Fields() {
		switch tag := f.Property(model.PropBibtex); tag {
		case "":
		case "entry-type":
			typeField = f.Name()
		case "key":
			keyField = f.Name()
		default:
			tagged = append(tagged, f)
		}
	}
	if typeField == "" || keyField == "" {
		return &ExportPreconditionError{Format: "bibtex",
			Reason: "collection has no entry-type and key field mapping"}
	}
	if len(tagged) == 0 {
		return &ExportPreconditionError{Format: "bibtex",
			Reason: "collection maps no fields to bibtex tags"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@comment{Generated by curio %s}\n", buildinfo.DisplayVersion())

	var macroNames []string
	if bc := model.BibtexOf(c); bc != nil {
		if pre := bc.Preamble(); pre != "" {
			fmt.Fprintf(&b, "@preamble{%s}\n", pre)
		}
		if !x.ExpandMacros {
			macroNames = bc.MacroNames()
			for _, name := range macroNames {
				if value := bc.Macro(name); value != "" {
					fmt.Fprintf(&b, "@string{%s=%s}\n", name, x.escape(value, macroNames))
				}
			}
		}
	}

	seen := make(map[string]bool)
	total := c.EntryCount()
	for i, e := range c.Entries() {
		if x.Cancel != nil && x.Cancel() {
			break
		}
		x.writeEntry(&b, c, e, typeField, keyField, tagged, macroNames, seen)
		if x.Progress != nil {
			x.Progress(i+1, total)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write bibtex: %w", err)
	}
	return nil
}

func (x *BibtexExporter) writeEntry(b *strings.Builder, c *model.Collection, e *model.Entry,
	typeField, keyField string, tagged []*model.Field, macroNames []string, seen map[string]bool) {

	entryType := e.Field(typeField)
	if entryType == "" {
		x.message("entry %q has no entry type, skipped", e.Title())
		return
	}

	key := e.Field(keyField)
	if key == "" {
		if x.SkipEmptyKeys {
			return
		}
		key = CitationKey(e)
	}
	// colliding keys get successive letter suffixes, in entry order
	unique := key
	for suffix := 'a'; seen[unique]; suffix++ {
		unique = key + string(suffix)
	}
	seen[unique] = true

	fmt.Fprintf(b, "@%s{%s", entryType, unique)
	for _, f := range tagged {
		var value string
		if x.FormatValues {
			value = e.FormattedField(f.Name())
		} else {
			value = e.Field(f.Name())
		}
		if value == "" {
			continue
		}
		// author lists join with "and" per bibtex convention; storage
		// keeps the generic delimiter
		if f.Format() == model.FormatName && f.HasFlag(model.AllowMultiple) {
			value = strings.ReplaceAll(value, model.ValueDelimiter, " and ")
		}
		switch {
		case x.PackageURL && f.Type() == model.TypeURL:
			value = `\url{` + value + `}`
		case f.Type() != model.TypeNumber:
			value = x.escape(value, macroNames)
		}
		fmt.Fprintf(b, ",\n  %s = %s", f.Property(model.PropBibtex), value)
	}
	b.WriteString("\n}\n")
}

// escape wraps a value in the configured delimiters. Tokens between '#'
// concatenation operators that name a known macro stay bare.
func (x *BibtexExporter) escape(value string, macroNames []string) string {
	lq, rq := x.Style.delims()
	if len(macroNames) == 0 {
		return lq + value + rq
	}

	isMacro := func(token string) bool {
		token = strings.TrimSpace(token)
		for _, name := range macroNames {
			if name == token {
				return true
			}
		}
		return false
	}

	tokens := strings.Split(value, "#")
	for i, token := range tokens {
		if !isMacro(token) {
			tokens[i] = lq + token + rq
		}
	}
	out := strings.Join(tokens, "#")
	// '#' inside a non-macro value must stay literal
	return strings.ReplaceAll(out, lq+"#"+rq, "#")
}

// CitationKey derives a citation key from an entry: the first author's
// slugged surname, the title's word initials, and the publication year.
func CitationKey(e *model.Entry) string {
	author := e.Field("author")
	if i := strings.Index(author, ";"); i >= 0 {
		author = author[:i]
	}
	var surname string
	if i := strings.Index(author, ","); i >= 0 {
		surname = author[:i]
	} else if i := strings.LastIndex(author, " "); i >= 0 {
		surname = author[i+1:]
	} else {
		surname = author
	}

	var initials strings.Builder
	for _, word := range strings.Fields(e.Field("title")) {
		r := []rune(word)
		initials.WriteRune(r[0])
	}

	year := e.Field("pub_year")
	if year == "" {
		year = e.Field("cr_year")
	}
	if year == "" {
		year = e.Field("year")
	}
	if i := strings.Index(year, ";"); i >= 0 {
		year = year[:i]
	}
	year = strings.TrimSpace(year)

	return slug.Make(surname) + strings.ToLower(initials.String()) + year
}
