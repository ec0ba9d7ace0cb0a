package model

import (
	"reflect"
	"testing"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"single", []string{"Tolkien"}},
		{"pair", []string{"Kernighan", "Ritchie"}},
		{"empty middle", []string{"a", "", "b"}},
		{"unicode", []string{"Gabriel García Márquez", "坂本龍一"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := JoinValues(tt.values)
			got := SplitValues(raw)
			if !reflect.DeepEqual(got, tt.values) {
				t.Errorf("SplitValues(JoinValues(%v)) = %v", tt.values, got)
			}
		})
	}
}

func TestSplitValuesEmpty(t *testing.T) {
	if got := SplitValues(""); got != nil {
		t.Errorf("SplitValues(\"\") = %v, want nil", got)
	}
}

func TestSplitValuesSloppySpacing(t *testing.T) {
	got := SplitValues("a;b ;  c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitValues = %v, want %v", got, want)
	}
}

func TestFixupValue(t *testing.T) {
	if got := FixupValue("a;b ;c"); got != "a; b; c" {
		t.Errorf("FixupValue = %q, want %q", got, "a; b; c")
	}
}

func TestTableSplitPreservesEmptyColumns(t *testing.T) {
	rows := []string{
		JoinRow([]string{"Aragorn", "Viggo Mortensen"}),
		JoinRow([]string{"Gandalf", ""}),
	}
	raw := JoinTable(rows)

	gotRows := SplitTable(raw)
	if len(gotRows) != 2 {
		t.Fatalf("row count = %d, want 2", len(gotRows))
	}
	cols := SplitRow(gotRows[1])
	if len(cols) != 2 {
		t.Fatalf("column count = %d, want 2 (empty trailing column must survive)", len(cols))
	}
	if cols[0] != "Gandalf" || cols[1] != "" {
		t.Errorf("columns = %v", cols)
	}
}

func TestRowDelimiterNesting(t *testing.T) {
	// rows split first, then columns inside each row
	raw := "a::1" + RowDelimiter + "b::2"
	rows := SplitTable(raw)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if cols := SplitRow(rows[0]); cols[0] != "a" || cols[1] != "1" {
		t.Errorf("first row columns = %v", cols)
	}
}
