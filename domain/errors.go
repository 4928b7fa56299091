package domain

import "errors"

var (
	// ErrUnauthenticated indicates the viewer has no session token.
	ErrUnauthenticated = errors.New("login required")

	// ErrEmptyComment indicates the user submitted a blank comment or reply.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrEmptyTitle indicates a post was submitted without a title.
	ErrEmptyTitle = errors.New("post title cannot be empty")

	// ErrEmptyContent indicates a post was submitted without a body.
	ErrEmptyContent = errors.New("post content cannot be empty")

	// ErrToggleInProgress indicates a follow toggle is already outstanding.
	ErrToggleInProgress = errors.New("follow toggle already in progress")

	// ErrNoSummary indicates the backend returned no AI summary for a post.
	ErrNoSummary = errors.New("no summary available for this post")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)
