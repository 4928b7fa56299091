package common

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestSanitize_StripsHTMLAndEscapes(t *testing.T) {
	got := Sanitize("<p>hi \x1b[31mred\x1b[0m &amp; bye</p>")
	if got != "hi red & bye" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp("hello", 10); got != "hello" {
		t.Fatalf("short text must be unchanged: %q", got)
	}
	got := Clamp("hello world", 6)
	if ansi.StringWidth(got) > 6 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected clamp: %q", got)
	}
	if Clamp("x", 0) != "" {
		t.Fatalf("zero width must render empty")
	}
}

func TestTruncateLines(t *testing.T) {
	if got := TruncateLines("a\nb\nc", 2); got != "a\nb\n…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateLines("a", 2); got != "a" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestRelativeAndCount(t *testing.T) {
	if Relative(time.Time{}) != "" {
		t.Fatalf("zero time must render empty")
	}
	if got := Relative(time.Now().Add(-2 * time.Hour)); !strings.Contains(got, "hours ago") {
		t.Fatalf("unexpected relative time: %q", got)
	}
	if got := Count(12345); got != "12,345" {
		t.Fatalf("unexpected count: %q", got)
	}
}
