package scraper

import (
	"html"
	"regexp"
	"strings"
)

var (
	cdataPattern      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Sanitize reduces raw feed text to plain text. The steps run in a fixed
// order: non-breaking-space entities are replaced before entity decoding,
// and again after it, because decoding a double-escaped feed reintroduces
// both the literal entity and U+00A0. Entity decoding must precede
// whitespace collapsing.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = cdataPattern.ReplaceAllString(text, "$1")
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
