// Package text provides utilities for text processing and measurement.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Counting runes instead of bytes keeps character budgets correct for
// multi-byte characters such as accented place names and typographic quotes.
//
// Examples:
//
//	CountRunes("hello")   // returns 5
//	CountRunes("café")    // returns 4
//	CountRunes("")        // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes returns text shortened to at most limit runes.
// Text already within the limit is returned unchanged.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
