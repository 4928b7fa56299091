package common

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/termblog/domain"
)

// Sanitize turns server HTML into plain text and strips any terminal escape
// sequences smuggled into user content.
func Sanitize(s string) string {
	return ansi.Strip(domain.PlainText(s))
}

// Clamp cuts s to width terminal cells, ending with an ellipsis when cut.
func Clamp(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Wrap word-wraps s to width cells.
func Wrap(s string, width int) string {
	if width < 12 {
		width = 12
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// TruncateLines keeps the first n lines of s, appending an ellipsis line
// when something was dropped.
func TruncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n <= 0 || len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}

// Relative renders a timestamp as "3 minutes ago". Zero times render empty.
func Relative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
