package domain

import (
	"html"
	"regexp"
	"strings"
)

var (
	blockBreakRe = regexp.MustCompile(`(?i)<\s*(br\s*/?|/p|/div|/h[1-6]|/li|/blockquote|/pre)\s*>`)
	listItemRe   = regexp.MustCompile(`(?i)<\s*li[^>]*>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// PlainText converts the rendered HTML the backend stores for posts and
// comments into readable plain text.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	s = blockBreakRe.ReplaceAllString(s, "\n")
	s = listItemRe.ReplaceAllString(s, "• ")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t\r")
	}
	s = strings.Join(lines, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Excerpt returns at most n runes of s on one line, with an ellipsis when
// something was cut.
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
