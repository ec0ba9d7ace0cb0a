package model

import "strings"

// Entry similarity scoring used by merge deduplication. Scores are
// approximate by design; the weights below are fixed so merge behavior
// stays stable across releases.
const (
	// MatchPerfect is the score at or above which two entries are
	// treated as the same.
	MatchPerfect = 500
	// matchIdentifier is awarded for an exact match on a unique
	// identifier field (ISBN, LCCN) and outranks everything else.
	matchIdentifier = 1000
	// matchUnit is the unit score for one matching field.
	matchUnit = 100
)

// SameEntry scores how likely two entries describe the same thing.
// Zero means no evidence. The policy is chosen by the collection type;
// types without a specific policy use a generic title comparison.
func (c *Collection) SameEntry(a, b *Entry) int {
	if a == nil || b == nil {
		return 0
	}
	switch c.ctype {
	case TypeBook, TypeComicBook:
		return bookScore(a, b)
	default:
		return genericScore(c, a, b)
	}
}

// genericScore weights the title field triple and every other non-derived
// field single.
func genericScore(c *Collection, a, b *Entry) int {
	score := 3 * fieldScore(a, b, c.TitleFieldName())
	for _, f := range c.fields {
		if f.Name() == c.TitleFieldName() || f.HasFlag(Derived) {
			continue
		}
		score += fieldScore(a, b, f.Name())
		if score >= MatchPerfect {
			return score
		}
	}
	return score
}

// bookScore implements the book policy: an ISBN or LCCN match settles
// it, otherwise a weighted sum of title (3x), author (2x), year and
// binding (1x each).
func bookScore(a, b *Entry) int {
	if identifierMatch(a, b, "isbn") || identifierMatch(a, b, "lccn") {
		return matchIdentifier
	}
	score := 3 * fieldScore(a, b, "title")
	score += 2 * fieldScore(a, b, "author")
	score += fieldScore(a, b, "pub_year")
	score += fieldScore(a, b, "binding")
	return score
}

// identifierMatch requires both entries to carry the identifier.
func identifierMatch(a, b *Entry, name string) bool {
	va, vb := a.Field(name), b.Field(name)
	return va != "" && strings.EqualFold(va, vb)
}

// fieldScore awards the unit score for a case-insensitive exact match of
// non-empty values.
func fieldScore(a, b *Entry, name string) int {
	if name == "" {
		return 0
	}
	va, vb := a.Field(name), b.Field(name)
	if va == "" || vb == "" {
		return 0
	}
	if strings.EqualFold(va, vb) {
		return matchUnit
	}
	return 0
}
