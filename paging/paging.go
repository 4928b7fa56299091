// Package paging drives page index and size for post listings and computes
// the window of page numbers a paginator shows.
package paging

import (
	"slices"

	"github.com/CrestNiraj12/termblog/domain"
)

// WindowSize is the most page numbers a paginator shows at once.
const WindowSize = 5

// VisiblePageNumbers returns a contiguous, increasing window of at most
// windowSize 0-based page numbers centred on current and clamped to
// [0, totalPages-1].
func VisiblePageNumbers(current, totalPages, windowSize int) []int {
	if totalPages <= 0 {
		return nil
	}
	if windowSize <= 0 {
		windowSize = WindowSize
	}
	if totalPages <= windowSize {
		return pageRange(0, totalPages-1)
	}
	start := max(0, current-windowSize/2)
	end := start + windowSize - 1
	if end >= totalPages {
		end = totalPages - 1
		start = max(0, end-windowSize+1)
	}
	return pageRange(start, end)
}

func pageRange(start, end int) []int {
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// Controller holds the listing query and the page being shown. Seq is a
// request generation: every change that triggers a fetch bumps it, and
// responses carrying an older Seq are ignored.
type Controller struct {
	Filter        domain.PostFilter
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
	Seq           int
}

// NewController returns a controller on page 0 with a fixed page size.
func NewController(size int, filter domain.PostFilter) Controller {
	if size <= 0 {
		size = 12
	}
	return Controller{Filter: filter, Size: size}
}

// WithFilter replaces the query and goes back to the first page.
func (c Controller) WithFilter(f domain.PostFilter) Controller {
	c.Filter = f
	c.Page = 0
	c.Seq++
	return c
}

// GoTo moves to page, clamped to the known page range.
func (c Controller) GoTo(page int) Controller {
	if c.TotalPages > 0 {
		page = min(page, c.TotalPages-1)
	}
	c.Page = max(page, 0)
	c.Seq++
	return c
}

// Next moves one page forward when there is one.
func (c Controller) Next() (Controller, bool) {
	if c.Page+1 >= c.TotalPages {
		return c, false
	}
	return c.GoTo(c.Page + 1), true
}

// Prev moves one page back when there is one.
func (c Controller) Prev() (Controller, bool) {
	if c.Page <= 0 {
		return c, false
	}
	return c.GoTo(c.Page - 1), true
}

// Apply records a loaded page. It reports false and leaves the controller
// untouched when seq belongs to a superseded request.
func (c Controller) Apply(page domain.PostPage, seq int) (Controller, bool) {
	if seq != c.Seq {
		return c, false
	}
	c.Page = page.Number
	c.TotalPages = page.TotalPages
	c.TotalElements = page.TotalElements
	return c, true
}

// Window returns the page numbers to show for the current page.
func (c Controller) Window() []int {
	return VisiblePageNumbers(c.Page, c.TotalPages, WindowSize)
}

// HasPrev reports whether there is a page before the current one.
func (c Controller) HasPrev() bool { return c.Page > 0 }

// HasNext reports whether there is a page after the current one.
func (c Controller) HasNext() bool { return c.Page+1 < c.TotalPages }

// SameFilter reports whether two filters select the same posts.
func SameFilter(a, b domain.PostFilter) bool {
	return a.Query == b.Query && a.MinRating == b.MinRating && slices.Equal(a.Topics, b.Topics)
}
