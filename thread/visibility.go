package thread

import (
	"fmt"
	"maps"

	"github.com/CrestNiraj12/termblog/domain"
)

const (
	// RootPageSize is how many root comments each "load more" reveals.
	RootPageSize = 5
	// ReplyPreview is how many replies a collapsed comment shows.
	ReplyPreview = 2
)

// Visibility tracks how many root comments are shown and which comments
// have their replies expanded. It is a value type: every operation returns
// an updated copy and never mutates a map shared with earlier copies.
type Visibility struct {
	visibleRoots int
	expanded     map[domain.ID]bool
}

// NewVisibility returns the initial state: five roots, nothing expanded.
func NewVisibility() Visibility {
	return Visibility{visibleRoots: RootPageSize}
}

// RestoreVisibility rebuilds a state from a visible-root count and the
// expanded comment ids, as carried in a web query string.
func RestoreVisibility(visibleRoots int, expanded []domain.ID) Visibility {
	if visibleRoots < RootPageSize {
		visibleRoots = RootPageSize
	}
	v := Visibility{visibleRoots: visibleRoots}
	for _, id := range expanded {
		if id.IsZero() {
			continue
		}
		if v.expanded == nil {
			v.expanded = make(map[domain.ID]bool)
		}
		v.expanded[id] = true
	}
	return v
}

// VisibleRoots is the current root limit.
func (v Visibility) VisibleRoots() int { return v.visibleRoots }

// ShowMoreRoots reveals the next page of root comments.
func (v Visibility) ShowMoreRoots() Visibility {
	v.visibleRoots += RootPageSize
	return v
}

// ToggleReplies flips whether all replies of a comment are shown.
func (v Visibility) ToggleReplies(id domain.ID) Visibility {
	next := maps.Clone(v.expanded)
	if next == nil {
		next = make(map[domain.ID]bool)
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	v.expanded = next
	return v
}

// Expanded reports whether a comment shows all of its replies.
func (v Visibility) Expanded(id domain.ID) bool { return v.expanded[id] }

// ExpandedIDs returns the expanded comment ids in no particular order.
func (v Visibility) ExpandedIDs() []domain.ID {
	out := make([]domain.ID, 0, len(v.expanded))
	for id := range v.expanded {
		out = append(out, id)
	}
	return out
}

// RootView is one rendered root comment.
type RootView struct {
	Comment domain.Comment
	// Replies holds the replies to render.
	Replies []domain.Comment
	// HiddenReplies is len(Replies of the comment) - ReplyPreview when
	// collapsed, zero otherwise.
	HiddenReplies int
	// ToggleLabel is empty unless the comment has more than ReplyPreview
	// replies.
	ToggleLabel string
	Expanded    bool
}

// Layout is what the comment section renders for a given tree and state.
type Layout struct {
	Roots        []RootView
	HasMoreRoots bool
	Total        int
}

// Layout applies the visibility rules to a tree.
func (v Visibility) Layout(roots []domain.Comment) Layout {
	limit := min(v.visibleRoots, len(roots))
	out := Layout{
		Roots:        make([]RootView, 0, limit),
		HasMoreRoots: len(roots) > v.visibleRoots,
		Total:        Count(roots),
	}
	for _, c := range roots[:limit] {
		out.Roots = append(out.Roots, v.rootView(c))
	}
	return out
}

func (v Visibility) rootView(c domain.Comment) RootView {
	rv := RootView{Comment: c, Replies: c.Replies, Expanded: v.Expanded(c.ID)}
	if len(c.Replies) <= ReplyPreview {
		return rv
	}
	if rv.Expanded {
		rv.ToggleLabel = "hide replies"
		return rv
	}
	rv.Replies = c.Replies[:ReplyPreview]
	rv.HiddenReplies = len(c.Replies) - ReplyPreview
	rv.ToggleLabel = fmt.Sprintf("show %d more replies", rv.HiddenReplies)
	return rv
}
