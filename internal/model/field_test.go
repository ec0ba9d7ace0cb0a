package model

import "testing"

func TestNewFieldRejectsBadNames(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		wantErr   bool
	}{
		{"empty", "", true},
		{"delimiter", "a;b", true},
		{"space", "a b", true},
		{"plain", "author", false},
		{"underscore", "pub_year", false},
		{"dash", "bibtex-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.fieldName, "Title", TypeLine)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewField(%q) error = %v, wantErr %v", tt.fieldName, err, tt.wantErr)
			}
		})
	}
}

func TestFieldTypeNormalization(t *testing.T) {
	table2, err := NewField("cast", "Cast", TypeTable2)
	if err != nil {
		t.Fatal(err)
	}
	if table2.Type() != TypeTable {
		t.Errorf("Table2 should normalize to Table, got %v", table2.Type())
	}
	if table2.Property("columns") != "2" {
		t.Errorf("columns property = %q, want 2", table2.Property("columns"))
	}
	if !table2.HasFlag(AllowMultiple) {
		t.Error("tables should always allow multiple values")
	}

	dep, err := NewField("id", "ID", TypeDependent)
	if err != nil {
		t.Fatal(err)
	}
	if dep.Type() != TypeLine || !dep.HasFlag(Derived) {
		t.Errorf("Dependent should normalize to Line+Derived, got %v flags %v", dep.Type(), dep.Flags())
	}

	ro, err := NewField("src", "Source", TypeReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	if ro.Type() != TypeLine || !ro.HasFlag(NoEdit) {
		t.Errorf("ReadOnly should normalize to Line+NoEdit, got %v flags %v", ro.Type(), ro.Flags())
	}

	date, err := NewField("cdate", "Created", TypeDate)
	if err != nil {
		t.Fatal(err)
	}
	if date.Format() != FormatDate {
		t.Errorf("Date format = %v, want FormatDate", date.Format())
	}
	date.SetFormat(FormatTitle)
	if date.Format() != FormatDate {
		t.Error("Date fields must keep FormatDate")
	}

	rating, err := NewField("rating", "Rating", TypeRating)
	if err != nil {
		t.Fatal(err)
	}
	if rating.Property("minimum") != "1" || rating.Property("maximum") != "5" {
		t.Errorf("rating bounds = %q..%q, want 1..5",
			rating.Property("minimum"), rating.Property("maximum"))
	}
}

func TestFieldTableFlagsKeepMultiple(t *testing.T) {
	f, err := NewField("episode", "Episodes", TypeTable)
	if err != nil {
		t.Fatal(err)
	}
	f.SetFlags(AllowGrouped)
	if !f.HasFlag(AllowMultiple) {
		t.Error("SetFlags on a table must preserve AllowMultiple")
	}
}

func TestFieldSingleCategory(t *testing.T) {
	f, err := NewField("comments", "Comments", TypePara)
	if err != nil {
		t.Fatal(err)
	}
	if f.Category() != "Comments" {
		t.Errorf("paragraph category = %q, want title", f.Category())
	}
	f.SetCategory("Other")
	if f.Category() != "Comments" {
		t.Error("single-category field must ignore SetCategory")
	}
	f.SetTitle("Notes")
	if f.Category() != "Notes" {
		t.Error("single-category field category must track the title")
	}
}

func TestFieldPropertyBag(t *testing.T) {
	f, err := NewField("author", "Author", TypeLine)
	if err != nil {
		t.Fatal(err)
	}
	f.SetProperty(PropBibtex, "author")
	if f.Property(PropBibtex) != "author" {
		t.Errorf("property = %q, want author", f.Property(PropBibtex))
	}
	f.SetProperty(PropBibtex, "")
	if f.Property(PropBibtex) != "" {
		t.Error("setting an empty value should delete the key")
	}
	if f.Properties() != nil {
		t.Error("empty bag should report nil")
	}
}

func TestFieldClone(t *testing.T) {
	f, err := NewChoiceField("binding", "Binding", []string{"Hardback", "Paperback"})
	if err != nil {
		t.Fatal(err)
	}
	f.SetProperty("custom", "value")
	c := f.Clone()

	c.SetProperty("custom", "other")
	c.AddAllowed("E-Book")
	if f.Property("custom") != "value" {
		t.Error("clone shares the property bag")
	}
	if len(f.Allowed()) != 2 {
		t.Error("clone shares the allowed list")
	}
}

func TestChoiceFieldDefaultValue(t *testing.T) {
	f, err := NewChoiceField("condition", "Condition", []string{"New", "Used"})
	if err != nil {
		t.Fatal(err)
	}
	f.SetDefaultValue("Mint")
	if f.DefaultValue() != "" {
		t.Error("disallowed default value should be rejected")
	}
	f.SetDefaultValue("New")
	if f.DefaultValue() != "New" {
		t.Errorf("default = %q, want New", f.DefaultValue())
	}
}

func TestChoiceFieldRequiresAllowed(t *testing.T) {
	if _, err := NewField("binding", "Binding", TypeChoice); err == nil {
		t.Error("NewField must refuse the Choice type")
	}
}
