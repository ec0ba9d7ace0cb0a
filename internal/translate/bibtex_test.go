package translate

import (
	"errors"
	"strings"
	"testing"

	"github.com/curiocat/curio/internal/model"
)

func newBibliography(t *testing.T) *model.BibtexCollection {
	t.Helper()
	return model.NewBibtexCollection("Refs", true)
}

func addReference(t *testing.T, bc *model.BibtexCollection, fields map[string]string) *model.Entry {
	t.Helper()
	e := model.NewEntry(bc.Collection)
	for name, value := range fields {
		if !e.SetField(name, value) {
			t.Fatalf("SetField(%q, %q) failed", name, value)
		}
	}
	bc.AddEntry(e)
	return e
}

func exportBibtex(t *testing.T, x *BibtexExporter, c *model.Collection) string {
	t.Helper()
	var b strings.Builder
	if err := x.Export(c, &b); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestBibtexExportPrecondition(t *testing.T) {
	books := model.NewCollection(model.TypeBook, "Books")
	var x BibtexExporter
	var b strings.Builder
	err := x.Export(books, &b)
	var perr *ExportPreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ExportPreconditionError", err)
	}
	if b.Len() != 0 {
		t.Error("failed export must write nothing")
	}
}

func TestBibtexExportRecord(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{
		"entry-type": "article",
		"bibtex-key": "dijkstra1968",
		"title":      "Go To Statement Considered Harmful",
		"author":     "Edsger W. Dijkstra",
		"year":       "1968",
	})

	out := exportBibtex(t, &BibtexExporter{}, bc.Collection)
	if !strings.Contains(out, "@article{dijkstra1968,\n") {
		t.Errorf("missing record header:\n%s", out)
	}
	if !strings.Contains(out, "title = {Go To Statement Considered Harmful}") {
		t.Errorf("missing braced title:\n%s", out)
	}
	// numbers are never escaped
	if !strings.Contains(out, "year = 1968") {
		t.Errorf("year must be bare:\n%s", out)
	}
	if !strings.HasPrefix(out, "@comment{Generated by curio") {
		t.Errorf("missing comment header:\n%s", out)
	}
}

func TestBibtexExportQuoteStyle(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{
		"entry-type": "misc",
		"bibtex-key": "k",
		"title":      "A Title",
	})

	out := exportBibtex(t, &BibtexExporter{Style: QuoteQuotes}, bc.Collection)
	if !strings.Contains(out, `title = "A Title"`) {
		t.Errorf("quotes style not applied:\n%s", out)
	}
}

func TestBibtexExportAuthorJoin(t *testing.T) {
	bc := newBibliography(t)
	e := addReference(t, bc, map[string]string{
		"entry-type": "book",
		"bibtex-key": "kr",
		"author":     "Brian Kernighan; Dennis Ritchie",
	})

	out := exportBibtex(t, &BibtexExporter{}, bc.Collection)
	if !strings.Contains(out, "author = {Brian Kernighan and Dennis Ritchie}") {
		t.Errorf("author list join:\n%s", out)
	}
	// the stored raw value keeps the generic delimiter
	if e.Field("author") != "Brian Kernighan; Dennis Ritchie" {
		t.Errorf("stored author mutated: %q", e.Field("author"))
	}
}

func TestBibtexExportKeyDisambiguation(t *testing.T) {
	bc := newBibliography(t)
	for i := 0; i < 3; i++ {
		addReference(t, bc, map[string]string{
			"entry-type": "misc",
			"author":     "John Smith",
			"year":       "2020",
		})
	}

	out := exportBibtex(t, &BibtexExporter{}, bc.Collection)
	for _, key := range []string{"{smith2020,", "{smith2020a,", "{smith2020b,"} {
		if !strings.Contains(out, key) {
			t.Errorf("missing key %q:\n%s", key, out)
		}
	}
	// deterministic: the first entry wins the bare key
	if strings.Index(out, "{smith2020,") > strings.Index(out, "{smith2020a,") {
		t.Error("disambiguation must follow entry order")
	}
}

func TestBibtexExportGeneratedKeyShape(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{
		"entry-type": "book",
		"author":     "J.R.R. Tolkien",
		"title":      "The Two Towers",
		"year":       "1954",
	})

	out := exportBibtex(t, &BibtexExporter{}, bc.Collection)
	if !strings.Contains(out, "@book{tolkienttt1954,") {
		t.Errorf("generated key:\n%s", out)
	}
}

func TestBibtexExportSkipEmptyKeys(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{"entry-type": "misc", "title": "No Key"})
	addReference(t, bc, map[string]string{"entry-type": "misc", "bibtex-key": "keyed", "title": "Keyed"})

	out := exportBibtex(t, &BibtexExporter{SkipEmptyKeys: true}, bc.Collection)
	if strings.Contains(out, "No Key") {
		t.Errorf("keyless entry not skipped:\n%s", out)
	}
	if !strings.Contains(out, "{keyed,") {
		t.Errorf("keyed entry missing:\n%s", out)
	}
}

func TestBibtexExportSkipsMissingEntryType(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{"bibtex-key": "orphan", "title": "Orphan"})

	x := &BibtexExporter{}
	out := exportBibtex(t, x, bc.Collection)
	if strings.Contains(out, "{orphan,") {
		t.Errorf("typeless entry must be skipped:\n%s", out)
	}
	if len(x.Messages()) != 1 {
		t.Errorf("messages = %v", x.Messages())
	}
}

func TestBibtexExportMacrosAndPreamble(t *testing.T) {
	bc := newBibliography(t)
	bc.AddMacro("acm", "Association for Computing Machinery")
	bc.SetPreamble(`\newcommand{\noop}[1]{}`)
	addReference(t, bc, map[string]string{
		"entry-type": "article",
		"bibtex-key": "x",
		"month":      "jan",
	})

	out := exportBibtex(t, &BibtexExporter{}, bc.Collection)
	if !strings.Contains(out, `@preamble{\newcommand{\noop}[1]{}}`) {
		t.Errorf("preamble missing:\n%s", out)
	}
	if !strings.Contains(out, "@string{acm={Association for Computing Machinery}}") {
		t.Errorf("macro missing:\n%s", out)
	}
	// unexpanded month macros are never written as strings
	if strings.Contains(out, "@string{jan") {
		t.Errorf("empty macro exported:\n%s", out)
	}
	// a value naming a macro stays bare
	if !strings.Contains(out, "month = jan") {
		t.Errorf("macro reference was quoted:\n%s", out)
	}
}

func TestBibtexExportExpandMacros(t *testing.T) {
	bc := newBibliography(t)
	bc.AddMacro("acm", "ACM")
	addReference(t, bc, map[string]string{
		"entry-type": "article",
		"bibtex-key": "x",
		"month":      "jan",
	})

	out := exportBibtex(t, &BibtexExporter{ExpandMacros: true}, bc.Collection)
	if strings.Contains(out, "@string") {
		t.Errorf("@string written despite expansion:\n%s", out)
	}
	// without a macro list, references are plain quoted values
	if !strings.Contains(out, "month = {jan}") {
		t.Errorf("month value:\n%s", out)
	}
}

func TestBibtexExportURLPackage(t *testing.T) {
	bc := newBibliography(t)
	addReference(t, bc, map[string]string{
		"entry-type": "misc",
		"bibtex-key": "x",
		"url":        "https://example.com/paper",
	})

	out := exportBibtex(t, &BibtexExporter{PackageURL: true}, bc.Collection)
	if !strings.Contains(out, `url = \url{https://example.com/paper}`) {
		t.Errorf("url package wrapping:\n%s", out)
	}
}

func TestCitationKeySurnameForms(t *testing.T) {
	bc := newBibliography(t)
	tests := []struct {
		author, title, year, want string
	}{
		{"John Smith", "", "2020", "smith2020"},
		{"Smith, John", "", "2020", "smith2020"},
		{"John Smith; Jane Doe", "", "2020", "smith2020"},
		{"Homer", "The Odyssey", "", "homerto"},
	}
	for _, tt := range tests {
		e := model.NewEntry(bc.Collection)
		e.SetField("author", tt.author)
		e.SetField("title", tt.title)
		e.SetField("year", tt.year)
		if got := CitationKey(e); got != tt.want {
			t.Errorf("CitationKey(%q, %q, %q) = %q, want %q",
				tt.author, tt.title, tt.year, got, tt.want)
		}
	}
}
