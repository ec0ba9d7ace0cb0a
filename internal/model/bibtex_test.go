package model

import "testing"

func TestBibtexDefaultMacros(t *testing.T) {
	bc := NewBibtexCollection("", false)
	if bc.Title() != "Bibliography" {
		t.Errorf("default title = %q", bc.Title())
	}
	names := bc.MacroNames()
	if len(names) != 12 {
		t.Fatalf("macro count = %d, want 12", len(names))
	}
	if names[0] != "jan" || names[11] != "dec" {
		t.Errorf("macro order = %v", names)
	}
	for _, name := range names {
		if bc.Macro(name) != "" {
			t.Errorf("month macro %q should be unexpanded", name)
		}
	}
}

func TestBibtexFieldIndex(t *testing.T) {
	bc := NewBibtexCollection("Refs", true)

	f := bc.FieldByBibtexName("key")
	if f == nil || f.Name() != "bibtex-key" {
		t.Fatalf("FieldByBibtexName(key) = %v", f)
	}
	if bc.FieldByBibtexName("nosuch") != nil {
		t.Error("unmapped tag should return nil")
	}

	// adding a tagged field updates the index
	price, err := NewField("price", "Price", TypeLine)
	if err != nil {
		t.Fatal(err)
	}
	price.SetProperty(PropBibtex, "price")
	if err := bc.AddField(price); err != nil {
		t.Fatal(err)
	}
	if bc.FieldByBibtexName("price") != price {
		t.Error("index missed added field")
	}

	// retagging a field moves the index entry
	updated := price.Clone()
	updated.SetProperty(PropBibtex, "cost")
	if err := bc.ModifyField(updated); err != nil {
		t.Fatal(err)
	}
	if bc.FieldByBibtexName("price") != nil {
		t.Error("stale tag survived modify")
	}
	if bc.FieldByBibtexName("cost") != updated {
		t.Error("new tag missing after modify")
	}

	// removal clears the index entry
	if err := bc.RemoveField("price", false); err != nil {
		t.Fatal(err)
	}
	if bc.FieldByBibtexName("cost") != nil {
		t.Error("tag survived field removal")
	}
}

func TestDuplicateBibtexKeys(t *testing.T) {
	bc := NewBibtexCollection("Refs", true)
	addEntryWithKey := func(key string) *Entry {
		e := NewEntry(bc.Collection)
		e.SetField("bibtex-key", key)
		bc.AddEntry(e)
		return e
	}

	e1 := addEntryWithKey("title1")
	e2 := addEntryWithKey("title1")
	addEntryWithKey("title3")

	dupes := bc.DuplicateBibtexKeys()
	if len(dupes) != 2 {
		t.Fatalf("duplicate count = %d, want 2", len(dupes))
	}
	if dupes[0] != e1 || dupes[1] != e2 {
		t.Error("wrong entries reported as duplicates")
	}
}

func TestDuplicateBibtexKeysNone(t *testing.T) {
	bc := NewBibtexCollection("Refs", true)
	for _, key := range []string{"title1", "title2", "title3"} {
		e := NewEntry(bc.Collection)
		e.SetField("bibtex-key", key)
		bc.AddEntry(e)
	}
	if dupes := bc.DuplicateBibtexKeys(); len(dupes) != 0 {
		t.Errorf("duplicates = %d, want none", len(dupes))
	}
}

func TestDuplicateBibtexKeysCaseSensitive(t *testing.T) {
	bc := NewBibtexCollection("Refs", true)
	for _, key := range []string{"Smith2020", "smith2020"} {
		e := NewEntry(bc.Collection)
		e.SetField("bibtex-key", key)
		bc.AddEntry(e)
	}
	if dupes := bc.DuplicateBibtexKeys(); len(dupes) != 0 {
		t.Errorf("key grouping must be case-sensitive, got %d dupes", len(dupes))
	}
}

func TestConvertBookCollection(t *testing.T) {
	books := NewCollection(TypeBook, "My Books")
	if err := books.AddFields(bookFields()); err != nil {
		t.Fatal(err)
	}
	e := NewEntry(books)
	e.SetField("title", "The Mythical Man-Month")
	e.SetField("author", "Brooks")
	e.SetField("series_num", "7")
	e.SetField("comments", "classic")
	books.AddEntry(e)

	bc, err := ConvertBookCollection(books)
	if err != nil {
		t.Fatal(err)
	}

	// recognized names gained bibtex tags
	if f := bc.FieldByBibtexName("number"); f == nil || f.Name() != "series_num" {
		t.Error("series_num should map to the number tag")
	}
	if f := bc.FieldByBibtexName("note"); f == nil || f.Name() != "comments" {
		t.Error("comments should map to the note tag")
	}
	if f := bc.FieldByBibtexName("year"); f == nil || f.Name() != "cr_year" {
		t.Error("cr_year should map to the year tag")
	}

	// missing required fields were added
	if bc.FieldByBibtexName("entry-type") == nil {
		t.Error("entry-type field missing after conversion")
	}
	if bc.FieldByBibtexName("key") == nil {
		t.Error("key field missing after conversion")
	}

	// referentially complete: every entry came over with values intact
	if bc.EntryCount() != 1 {
		t.Fatalf("entry count = %d, want 1", bc.EntryCount())
	}
	converted := bc.Entries()[0]
	if got := converted.Field("title"); got != "The Mythical Man-Month" {
		t.Errorf("title = %q", got)
	}
	if got := converted.Field("comments"); got != "classic" {
		t.Errorf("comments = %q", got)
	}
	if got := converted.Field("entry-type"); got != "book" {
		t.Errorf("entry-type = %q, want book", got)
	}

	// source untouched
	if books.Entries()[0].Field("entry-type") != "" {
		t.Error("conversion modified the source collection")
	}
}

func TestConvertBookCollectionKeepsBibtexID(t *testing.T) {
	books := NewCollection(TypeBook, "Old Books")
	if err := books.AddFields(bookFields()); err != nil {
		t.Fatal(err)
	}
	bid, err := NewField("bibtex-id", "Bibtex ID", TypeLine)
	if err != nil {
		t.Fatal(err)
	}
	if err := books.AddField(bid); err != nil {
		t.Fatal(err)
	}

	bc, err := ConvertBookCollection(books)
	if err != nil {
		t.Fatal(err)
	}
	// the old bibtex-id plays the key role; no bibtex-key field is added
	if f := bc.FieldByBibtexName("key"); f == nil || f.Name() != "bibtex-id" {
		t.Errorf("key field = %v, want bibtex-id", f)
	}
	if bc.HasField("bibtex-key") {
		t.Error("bibtex-key must not be added when bibtex-id exists")
	}
}

func TestConvertRejectsNonBook(t *testing.T) {
	albums := NewCollection(TypeAlbum, "Music")
	if _, err := ConvertBookCollection(albums); err == nil {
		t.Error("conversion must reject non-book collections")
	}
}

func TestRegistryBuildsEveryType(t *testing.T) {
	r := NewRegistry()
	for _, ctype := range CollectionTypes() {
		c, err := r.New(ctype, "Test", true)
		if err != nil {
			t.Fatalf("New(%v): %v", ctype, err)
		}
		if c.Type() != ctype {
			t.Errorf("type = %v, want %v", c.Type(), ctype)
		}
		if len(c.Fields()) == 0 {
			t.Errorf("%v collection has no default fields", ctype)
		}
		if ctype == TypeBibtex && BibtexOf(c) == nil {
			t.Error("bibtex collection lost its specialization")
		}
	}
}
