package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/curiocat/curio/internal/config"
	"github.com/curiocat/curio/internal/index"
	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/testutil"
)

// runCLI executes the root command against a catalog, resetting
// per-command flag state between runs.
func runCLI(t *testing.T, catalog string, args ...string) error {
	t.Helper()

	// Reset flag globals; cobra keeps values between executions.
	setNew = false
	getRaw = false
	newTitle, newTemplate, newForce = "", "", false
	exportFormat, exportOutput, exportFormatted = "xml", "", false
	mergeMode, mergeUndo = "merge", false
	convertForce = false
	dupesField = ""
	lsFields, lsGroupBy = nil, ""
	searchFields = nil
	jsonOutput = false

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := config.SaveTo(configPath, config.Default()); err != nil {
		t.Fatal(err)
	}

	full := append([]string{"--catalog", catalog, "--config", configPath}, args...)
	rootCmd.SetArgs(full)
	return rootCmd.Execute()
}

func silenceStdout(t *testing.T) {
	t.Helper()
	old := os.Stdout
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = devnull
	t.Cleanup(func() {
		os.Stdout = old
		devnull.Close()
	})
}

func TestInitCreatesCatalog(t *testing.T) {
	silenceStdout(t)
	path := filepath.Join(t.TempDir(), "catalog")
	if err := runCLI(t, path, "init", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(path, ".curio")); err != nil {
		t.Errorf(".curio missing: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(path, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ".curio/") {
		t.Errorf(".gitignore missing index entry:\n%s", data)
	}
}

func TestNewSetGet(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).Build()

	if err := runCLI(t, tc.Path, "new", "book", "books", "--title", "My Books"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, tc.Path, "set", "--new", "books",
		"title=The Dispossessed", "author=Le Guin, Ursula K.", "pub_year=1974"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, tc.Path, "set", "books", "1", "rating=5"); err != nil {
		t.Fatal(err)
	}

	coll := tc.Load("books")
	if coll.Title() != "My Books" {
		t.Errorf("title = %q", coll.Title())
	}
	e := coll.EntryByID(1)
	if e == nil {
		t.Fatal("entry 1 missing")
	}
	if e.Field("rating") != "5" {
		t.Errorf("rating = %q", e.Field("rating"))
	}
	if e.Field("pub_year") != "1974" {
		t.Errorf("pub_year = %q", e.Field("pub_year"))
	}

	if err := runCLI(t, tc.Path, "get", "books", "1", "rating"); err != nil {
		t.Fatal(err)
	}
}

func TestSetRejectsBadChoiceValue(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	err := runCLI(t, tc.Path, "set", "books", "1", "condition=Pristine")
	if err == nil || !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("err = %v", err)
	}
	// The file must be unchanged.
	if v := tc.Load("books").EntryByID(1).Field("condition"); v != "" {
		t.Errorf("condition = %q", v)
	}
}

func TestMergeAndUndo(t *testing.T) {
	silenceStdout(t)
	more, err := model.NewRegistry().New(model.TypeBook, "More", true)
	if err != nil {
		t.Fatal(err)
	}
	e := model.NewEntry(more)
	e.SetField("title", "The Lathe of Heaven")
	more.AddEntry(e)

	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		WithCollection("more", more).
		Build()

	if err := runCLI(t, tc.Path, "merge", "books", "more", "--mode", "append"); err != nil {
		t.Fatal(err)
	}
	if got := tc.Load("books").EntryCount(); got != 3 {
		t.Errorf("entries after merge = %d, want 3", got)
	}
	journal := tc.CollectionPath("books") + ".undo"
	if _, err := os.Stat(journal); err != nil {
		t.Fatalf("undo journal missing: %v", err)
	}

	if err := runCLI(t, tc.Path, "merge", "--undo", "books"); err != nil {
		t.Fatal(err)
	}
	if got := tc.Load("books").EntryCount(); got != 2 {
		t.Errorf("entries after undo = %d, want 2", got)
	}
	if _, err := os.Stat(journal); !os.IsNotExist(err) {
		t.Error("undo journal should be removed")
	}

	err = runCLI(t, tc.Path, "merge", "--undo", "books")
	if err == nil || !strings.Contains(err.Error(), "no undo journal") {
		t.Errorf("second undo err = %v", err)
	}
}

func TestConvertAndExportBibtex(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	if err := runCLI(t, tc.Path, "convert", "books", "refs"); err != nil {
		t.Fatal(err)
	}
	refs := tc.Load("refs")
	if refs.Type() != model.TypeBibtex {
		t.Errorf("converted type = %v", refs.Type())
	}
	if refs.EntryCount() != 2 {
		t.Errorf("converted entries = %d", refs.EntryCount())
	}

	out := filepath.Join(tc.Path, "refs.bib")
	if err := runCLI(t, tc.Path, "export", "refs", "--format", "bibtex", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "@book{") {
		t.Errorf("bibtex output:\n%s", data)
	}
	if !strings.Contains(string(data), "1974") {
		t.Errorf("expected generated citation key with year:\n%s", data)
	}
}

func TestExportBibtexRequiresBibliography(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	err := runCLI(t, tc.Path, "export", "books", "--format", "bibtex", "-o",
		filepath.Join(tc.Path, "out.bib"))
	if err == nil {
		t.Fatal("expected precondition error")
	}
}

func TestReindexAndSearch(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	if err := runCLI(t, tc.Path, "reindex"); err != nil {
		t.Fatal(err)
	}

	db, err := index.Open(tc.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	hits, err := db.Search("le guin")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("hits = %d, want 2", len(hits))
	}

	if err := runCLI(t, tc.Path, "search", "le guin"); err != nil {
		t.Fatal(err)
	}
}

func TestCheckFlagsInvalidValues(t *testing.T) {
	silenceStdout(t)
	books := testutil.Books(t, "Books")
	e := books.EntryByID(1)
	// Bypass CLI validation; a hand-edited file can hold anything.
	if !e.SetField("condition", "Pristine") {
		t.Fatal("set condition")
	}
	tc := testutil.NewTestCatalog(t).WithCollection("books", books).Build()

	err := runCLI(t, tc.Path, "check", "books")
	if err == nil || !strings.Contains(err.Error(), "problems found") {
		t.Errorf("check err = %v", err)
	}
}

func TestDupesReportsSharedKeys(t *testing.T) {
	silenceStdout(t)
	bc := model.NewBibtexCollection("Refs", true)
	key := bc.FieldByBibtexName("key")
	for _, k := range []string{"same", "same", "other"} {
		e := model.NewEntry(bc.Collection)
		e.SetField("title", "T "+k)
		e.SetField(key.Name(), k)
		bc.AddEntry(e)
	}
	tc := testutil.NewTestCatalog(t).WithCollection("refs", bc.Collection).Build()

	if err := runCLI(t, tc.Path, "dupes", "refs"); err != nil {
		t.Fatal(err)
	}
}

func TestRmEntries(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	if err := runCLI(t, tc.Path, "rm", "books", "1"); err != nil {
		t.Fatal(err)
	}
	coll := tc.Load("books")
	if coll.EntryCount() != 1 {
		t.Errorf("entries = %d, want 1", coll.EntryCount())
	}

	err := runCLI(t, tc.Path, "rm", "books", "99")
	if err == nil || !strings.Contains(err.Error(), "no entry") {
		t.Errorf("err = %v", err)
	}
}

func TestLsCollections(t *testing.T) {
	silenceStdout(t)
	tc := testutil.NewTestCatalog(t).
		WithCollection("books", testutil.Books(t, "Books")).
		Build()

	if err := runCLI(t, tc.Path, "ls"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, tc.Path, "ls", "books", "--fields", "title,author"); err != nil {
		t.Fatal(err)
	}
	err := runCLI(t, tc.Path, "ls", "books", "--fields", "nope")
	if err == nil || !strings.Contains(err.Error(), "no field") {
		t.Errorf("err = %v", err)
	}
}
