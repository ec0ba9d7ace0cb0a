package ui

import "fmt"

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Successf returns a formatted message with the checkmark symbol.
func Successf(format string, args ...any) string {
	return SymbolSuccess + " " + fmt.Sprintf(format, args...)
}

// Errorf returns a formatted message with the X symbol.
func Errorf(format string, args ...any) string {
	return SymbolError + " " + fmt.Sprintf(format, args...)
}

// Warningf returns a formatted message with the warning symbol.
func Warningf(format string, args ...any) string {
	return SymbolWarning + " " + fmt.Sprintf(format, args...)
}

// Infof returns a formatted message with the info symbol.
func Infof(format string, args ...any) string {
	return SymbolInfo + " " + fmt.Sprintf(format, args...)
}

// Header returns a styled section header.
func Header(msg string) string { return Bold.Render(msg) }

// Title returns an accent-styled collection or entry title.
func Title(title string) string { return Accent.Render(title) }

// Hint returns muted hint text.
func Hint(msg string) string { return Muted.Render(msg) }

// Count returns a count with its singular or plural noun, "3 entries".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
