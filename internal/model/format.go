package model

import "strings"

// Display formatting. Formatting derives a display string from a raw
// stored value and never feeds back into storage; round-tripping a
// document always preserves the raw value.

// articles are shifted to the end of a title: "The Two Towers" becomes
// "Two Towers, The".
var articles = []string{"the", "a", "an"}

// surnamePrefixes stay attached to the surname when formatting names.
var surnamePrefixes = []string{"de", "van", "der", "von", "den"}

// FormatValue renders a raw value according to the format flag. Multi
// value handling is the caller's concern; this formats one logical value.
func FormatValue(value string, flag FormatFlag) string {
	switch flag {
	case FormatTitle:
		return formatTitle(value)
	case FormatName:
		return formatName(value)
	case FormatDate:
		return value
	case FormatPlain:
		return capitalize(value)
	default:
		return value
	}
}

// formatTitle capitalizes the title and shifts a leading article to the
// end, after a comma.
func formatTitle(title string) string {
	title = capitalize(title)
	lower := strings.ToLower(title)
	for _, article := range articles {
		prefix := article + " "
		if strings.HasPrefix(lower, prefix) {
			return title[len(prefix):] + ", " + title[:len(article)]
		}
	}
	return title
}

// formatName renders a personal name surname-first. Values already
// containing a comma are taken as "surname, given" and left in order.
func formatName(name string) string {
	name = capitalize(name)
	if strings.Contains(name, ",") {
		return name
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return name
	}
	// keep recognized surname prefixes with the last word
	split := len(words) - 1
	for split > 1 {
		if isSurnamePrefix(words[split-1]) {
			split--
			continue
		}
		break
	}
	surname := strings.Join(words[split:], " ")
	given := strings.Join(words[:split], " ")
	return surname + ", " + given
}

func isSurnamePrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, p := range surnamePrefixes {
		if lower == p {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first letter of every word, leaving
// already-capitalized interior letters alone (McHale stays McHale).
func capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		if start && r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
		start = r == ' ' || r == '-' || r == '.'
	}
	return b.String()
}
