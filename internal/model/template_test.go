package model

import (
	"os"
	"path/filepath"
	"testing"
)

const gameTemplate = `
fields:
  - name: title
    title: Title
    type: line
    format: title
    flags: [nodelete]
  - name: platform
    title: Platform
    type: choice
    allowed: [PC, Mac, Linux]
  - name: developer
    title: Developer
    type: line
    flags: [multiple, grouped]
    properties:
      bibtex: publisher
`

func TestParseFieldTemplate(t *testing.T) {
	fields, err := ParseFieldTemplate([]byte(gameTemplate))
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 {
		t.Fatalf("field count = %d, want 3", len(fields))
	}

	title := fields[0]
	if title.Format() != FormatTitle || !title.HasFlag(NoDelete) {
		t.Errorf("title field: format=%v flags=%v", title.Format(), title.Flags())
	}

	platform := fields[1]
	if platform.Type() != TypeChoice {
		t.Errorf("platform type = %v", platform.Type())
	}
	if got := platform.Allowed(); len(got) != 3 || got[0] != "PC" {
		t.Errorf("allowed = %v", got)
	}

	dev := fields[2]
	if !dev.HasFlag(AllowMultiple) || !dev.HasFlag(AllowGrouped) {
		t.Errorf("developer flags = %v", dev.Flags())
	}
	if dev.Property(PropBibtex) != "publisher" {
		t.Errorf("developer bibtex property = %q", dev.Property(PropBibtex))
	}
}

func TestParseFieldTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", "fields: []"},
		{"unknown type", "fields:\n  - name: x\n    type: blob"},
		{"unknown flag", "fields:\n  - name: x\n    flags: [sparkly]"},
		{"unknown format", "fields:\n  - name: x\n    format: shouty"},
		{"bad field name", "fields:\n  - name: \"a; b\""},
		{"not yaml", ":\t{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFieldTemplate([]byte(tt.doc)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadFieldTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	if err := os.WriteFile(path, []byte(gameTemplate), 0o644); err != nil {
		t.Fatal(err)
	}
	fields, err := LoadFieldTemplate(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 {
		t.Errorf("field count = %d", len(fields))
	}

	if _, err := LoadFieldTemplate(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file must error")
	}
}

func TestTemplateFieldsBuildCollection(t *testing.T) {
	fields, err := ParseFieldTemplate([]byte(gameTemplate))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCollection(TypeBase, "Games")
	if err := c.AddFields(fields); err != nil {
		t.Fatal(err)
	}
	if c.TitleFieldName() != "title" {
		t.Errorf("TitleFieldName = %q", c.TitleFieldName())
	}
}
