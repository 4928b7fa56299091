package domain

import "time"

// Comment is a single comment or reply on a post.
//
// Only two levels exist: root comments carry their direct replies in
// Replies; replies never carry nested replies of their own.
type Comment struct {
	ID        ID
	Content   string
	Author    *UserRef // nil when the author was deleted or is anonymous
	ParentID  ID       // empty for root comments
	CreatedAt time.Time

	// Nested-set bounds from the backend. Carried through, never interpreted.
	LeftValue  int
	RightValue int

	Replies []Comment
}

// IsRoot reports whether the comment has no parent.
func (c Comment) IsRoot() bool { return c.ParentID.IsZero() }

// CommentBatch is the comment list of a post in one of two shapes, decided
// once when the response is decoded: NestedComments or FlatComments.
type CommentBatch interface {
	commentBatch()
	Len() int
}

// NestedComments holds root comments whose Replies the server already
// populated.
type NestedComments []Comment

// FlatComments holds roots and replies in one list, linked by ParentID.
type FlatComments []Comment

func (NestedComments) commentBatch() {}
func (FlatComments) commentBatch()   {}

func (n NestedComments) Len() int { return len(n) }
func (f FlatComments) Len() int   { return len(f) }
