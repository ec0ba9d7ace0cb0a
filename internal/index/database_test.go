package index

import (
	"path/filepath"
	"testing"

	"github.com/curiocat/curio/internal/model"
)

func newIndexedBooks(t *testing.T) (*Database, string, *model.Collection) {
	t.Helper()
	d, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })

	r := model.NewRegistry()
	c, err := r.New(model.TypeBook, "My Books", true)
	if err != nil {
		t.Fatal(err)
	}
	add := func(fields map[string]string) {
		e := model.NewEntry(c)
		for name, value := range fields {
			e.SetField(name, value)
		}
		c.AddEntry(e)
	}
	add(map[string]string{
		"title":  "The Dispossessed",
		"author": "Ursula K. Le Guin",
		"genre":  "Science Fiction",
	})
	add(map[string]string{
		"title":  "The Left Hand of Darkness",
		"author": "Ursula K. Le Guin",
		"genre":  "Science Fiction",
	})
	add(map[string]string{
		"title":  "The Name of the Rose",
		"author": "Umberto Eco",
		"genre":  "Mystery; Historical",
	})

	id, err := d.Rebuild("", c)
	if err != nil {
		t.Fatal(err)
	}
	return d, id, c
}

func TestOpenCreatesIndexFile(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if _, err := Open(dir); err == nil {
		// second open of the same file is fine for a single process
	}
	path := filepath.Join(dir, ".curio", "index.db")
	if _, err := d.DB().Exec("SELECT 1"); err != nil {
		t.Fatalf("database %s unusable: %v", path, err)
	}
}

func TestRebuildAssignsIdentity(t *testing.T) {
	d, id, c := newIndexedBooks(t)
	if id == "" {
		t.Fatal("blank identity after rebuild")
	}

	info, err := d.Collection(id)
	if err != nil {
		t.Fatal(err)
	}
	if info.Type != model.TypeBook || info.Title != "My Books" {
		t.Errorf("info = %+v", info)
	}

	// a second rebuild under the same id must not duplicate rows
	if _, err := d.Rebuild(id, c); err != nil {
		t.Fatal(err)
	}
	n, err := d.EntryCount(id)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("entry count = %d, want 3", n)
	}

	infos, err := d.Collections()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Errorf("collection count = %d, want 1", len(infos))
	}
}

func TestCollectionNotFound(t *testing.T) {
	d, _, _ := newIndexedBooks(t)
	if _, err := d.Collection("no-such-id"); err != ErrCollectionNotFound {
		t.Errorf("err = %v, want ErrCollectionNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	d, id, _ := newIndexedBooks(t)

	hits, err := d.Search("le guin")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	for _, hit := range hits {
		if hit.CollectionID != id || hit.FieldName != "author" {
			t.Errorf("unexpected hit %+v", hit)
		}
	}

	// restricted to a field that never matches
	hits, err = d.Search("le guin", "title")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("restricted hits = %d, want 0", len(hits))
	}
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	d, _, c := newIndexedBooks(t)
	e := model.NewEntry(c)
	e.SetField("title", "100% Proof")
	c.AddEntry(e)
	if _, err := d.Rebuild("escapes", c); err != nil {
		t.Fatal(err)
	}

	hits, err := d.Search("100% Proof")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("hits = %d, want exactly the literal match", len(hits))
	}
}

func TestMultiValuesDecomposed(t *testing.T) {
	d, id, _ := newIndexedBooks(t)

	groups, err := d.GroupBy(id, "genre")
	if err != nil {
		t.Fatal(err)
	}
	// "Mystery; Historical" must index as two separate values
	want := map[string]int{"Science Fiction": 2, "Mystery": 1, "Historical": 1}
	if len(groups) != len(want) {
		t.Fatalf("groups = %+v", groups)
	}
	for _, g := range groups {
		if want[g.Value] != g.Count {
			t.Errorf("group %q = %d, want %d", g.Value, g.Count, want[g.Value])
		}
	}
	if groups[0].Value != "Science Fiction" {
		t.Errorf("groups not ordered by count: %+v", groups)
	}
}

func TestDuplicateValues(t *testing.T) {
	d, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	bc := model.NewBibtexCollection("Refs", true)
	for _, key := range []string{"title1", "title1", "title3"} {
		e := model.NewEntry(bc.Collection)
		e.SetField("bibtex-key", key)
		bc.AddEntry(e)
	}
	id, err := d.Rebuild("", bc.Collection)
	if err != nil {
		t.Fatal(err)
	}

	hits, err := d.DuplicateValues(id, "bibtex-key")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Value != "title1" || hits[1].Value != "title1" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestRemove(t *testing.T) {
	d, id, _ := newIndexedBooks(t)
	if err := d.Remove(id); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Collection(id); err != ErrCollectionNotFound {
		t.Errorf("collection survived removal: %v", err)
	}
	hits, err := d.Search("le guin")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Error("field values survived removal")
	}
}
