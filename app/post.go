package app

import (
	"context"

	"github.com/CrestNiraj12/termblog/domain"
)

// PostService lists, reads, publishes and deletes blog posts.
type PostService interface {
	// ListPosts returns one 0-based page of posts matching the filter.
	ListPosts(ctx context.Context, page, size int, filter domain.PostFilter) (domain.PostPage, error)

	// UserPosts returns one 0-based page of posts written by a user.
	UserPosts(ctx context.Context, userID domain.ID, page, size int) (domain.PostPage, error)

	// PostDetail returns a post with its comments and related posts.
	PostDetail(ctx context.Context, id domain.ID) (domain.PostDetail, error)

	// CreatePost publishes a new post.
	CreatePost(ctx context.Context, post domain.NewPost) (domain.PostSummary, error)

	// DeletePost removes a post owned by the viewer.
	DeletePost(ctx context.Context, id domain.ID) error

	// Topics returns the categories posts can be filed under.
	Topics(ctx context.Context) ([]domain.Topic, error)
}

// CommentService publishes comments and replies.
type CommentService interface {
	// CreateComment posts a comment on postID. An empty parentID creates a
	// root comment.
	CreateComment(ctx context.Context, postID, parentID domain.ID, content string) (domain.Comment, error)
}

// SummaryService fetches AI-generated post summaries.
type SummaryService interface {
	Summary(ctx context.Context, postID domain.ID) (string, error)
}
