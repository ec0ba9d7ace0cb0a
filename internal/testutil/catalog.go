// Package testutil provides reusable fixtures for catalog tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/translate"
)

// TestCatalog builds a temporary catalog directory with collection
// files for integration tests.
type TestCatalog struct {
	Path  string
	t     *testing.T
	colls map[string]*model.Collection
	files map[string]string
}

// NewTestCatalog creates a catalog builder. Call Build to write the
// directory.
func NewTestCatalog(t *testing.T) *TestCatalog {
	t.Helper()
	return &TestCatalog{
		t:     t,
		colls: make(map[string]*model.Collection),
		files: make(map[string]string),
	}
}

// WithCollection adds a collection to be written as <name>.curio.
func (tc *TestCatalog) WithCollection(name string, c *model.Collection) *TestCatalog {
	tc.colls[name] = c
	return tc
}

// WithFile adds a raw file, path relative to the catalog root.
func (tc *TestCatalog) WithFile(path, content string) *TestCatalog {
	tc.files[path] = content
	return tc
}

// Build writes the catalog into a temp directory and returns tc.
func (tc *TestCatalog) Build() *TestCatalog {
	tc.t.Helper()
	tc.Path = tc.t.TempDir()

	for name, coll := range tc.colls {
		exporter := &translate.XMLExporter{}
		var buf bytes.Buffer
		if err := exporter.Export(coll, &buf); err != nil {
			tc.t.Fatalf("export %s: %v", name, err)
		}
		tc.writeFile(name+".curio", buf.String())
	}
	for path, content := range tc.files {
		tc.writeFile(path, content)
	}
	return tc
}

// CollectionPath returns the path of a written collection file.
func (tc *TestCatalog) CollectionPath(name string) string {
	return filepath.Join(tc.Path, name+".curio")
}

// Load reads a collection file back from the catalog.
func (tc *TestCatalog) Load(name string) *model.Collection {
	tc.t.Helper()
	f, err := os.Open(tc.CollectionPath(name))
	if err != nil {
		tc.t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	coll, err := translate.NewXMLImporter(f).Collection()
	if err != nil {
		tc.t.Fatalf("parse %s: %v", name, err)
	}
	return coll
}

func (tc *TestCatalog) writeFile(rel, content string) {
	tc.t.Helper()
	full := filepath.Join(tc.Path, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		tc.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		tc.t.Fatalf("write %s: %v", rel, err)
	}
}

// Books returns a small book collection used across tests.
func Books(t *testing.T, title string) *model.Collection {
	t.Helper()
	registry := model.NewRegistry()
	coll, err := registry.New(model.TypeBook, title, true)
	if err != nil {
		t.Fatal(err)
	}

	add := func(values map[string]string) {
		e := model.NewEntry(coll)
		for name, value := range values {
			if !e.SetField(name, value) {
				t.Fatalf("set %s", name)
			}
		}
		coll.AddEntry(e)
	}
	add(map[string]string{
		"title":    "The Dispossessed",
		"author":   "Le Guin, Ursula K.",
		"pub_year": "1974",
	})
	add(map[string]string{
		"title":    "The Left Hand of Darkness",
		"author":   "Le Guin, Ursula K.",
		"pub_year": "1969",
	})
	return coll
}
