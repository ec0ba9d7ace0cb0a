package model

import "testing"

func TestSameEntryBookIdentifier(t *testing.T) {
	c := newBookCollection(t)
	a := NewEntry(c)
	a.SetField("title", "Completely Different Title")
	a.SetField("isbn", "0-13-110362-8")
	b := NewEntry(c)
	b.SetField("title", "Another Title Entirely")
	b.SetField("isbn", "0-13-110362-8")

	if score := c.SameEntry(a, b); score < MatchPerfect {
		t.Errorf("identifier match score = %d, want >= %d", score, MatchPerfect)
	}
}

func TestSameEntryBookWeighted(t *testing.T) {
	c := newBookCollection(t)
	a := NewEntry(c)
	a.SetField("title", "The Dispossessed")
	a.SetField("author", "Ursula K. Le Guin")
	a.SetField("pub_year", "1974")
	b := NewEntry(c)
	b.SetField("title", "the dispossessed")
	b.SetField("author", "ursula k. le guin")
	b.SetField("pub_year", "1974")

	// 3x title + 2x author + year
	if score := c.SameEntry(a, b); score != 600 {
		t.Errorf("weighted score = %d, want 600", score)
	}
}

func TestSameEntryTitleAloneBelowThreshold(t *testing.T) {
	c := newBookCollection(t)
	a := NewEntry(c)
	a.SetField("title", "Collected Poems")
	b := NewEntry(c)
	b.SetField("title", "Collected Poems")

	if score := c.SameEntry(a, b); score >= MatchPerfect {
		t.Errorf("title-only score = %d, must stay below %d", score, MatchPerfect)
	}
}

func TestSameEntryEmptyFieldsScoreNothing(t *testing.T) {
	c := newBookCollection(t)
	a := NewEntry(c)
	b := NewEntry(c)
	if score := c.SameEntry(a, b); score != 0 {
		t.Errorf("empty entries score = %d, want 0", score)
	}
}

func TestSameEntryMismatchedIdentifierFallsBack(t *testing.T) {
	c := newBookCollection(t)
	a := NewEntry(c)
	a.SetField("title", "Dune")
	a.SetField("isbn", "0441013597")
	b := NewEntry(c)
	b.SetField("title", "Dune")
	b.SetField("isbn", "9780441013593")

	// different ISBNs do not disqualify, they just score zero
	if score := c.SameEntry(a, b); score != 300 {
		t.Errorf("score = %d, want title weight only", score)
	}
}

func TestSameEntryGenericPolicy(t *testing.T) {
	c := NewCollection(TypeAlbum, "Music")
	if err := c.AddFields(albumFields()); err != nil {
		t.Fatal(err)
	}
	a := NewEntry(c)
	a.SetField("title", "Kind of Blue")
	a.SetField("artist", "Miles Davis")
	b := NewEntry(c)
	b.SetField("title", "Kind of Blue")
	b.SetField("artist", "Miles Davis")

	if score := c.SameEntry(a, b); score < 400 {
		t.Errorf("generic score = %d, want title triple plus artist", score)
	}
}
