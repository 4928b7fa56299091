package domain

import "time"

// PostSummary is a post as it appears in listings and related-post rails.
type PostSummary struct {
	ID            ID
	Title         string
	Excerpt       string
	Cover         string
	Author        *UserRef
	Topics        []string
	ViewsCount    int
	CommentsCount int
	CreatedAt     time.Time
}

// PostDetail is the full post with its comments.
type PostDetail struct {
	ID                  ID
	Title               string
	Content             string
	RawContent          string
	Cover               string
	Author              *UserRef
	Topics              []string
	Tags                []string
	ViewsCount          int
	CommentsCount       int
	HasSensitiveContent bool
	CreatedAt           time.Time
	Comments            CommentBatch
	RelatedPosts        []PostSummary
}

// PostPage is one page of a post listing. Number is 0-based.
type PostPage struct {
	Content       []PostSummary
	TotalPages    int
	Number        int
	Size          int
	TotalElements int
}

// PostFilter narrows a post listing.
type PostFilter struct {
	Query     string
	MinRating int
	Topics    []string
}

// NewPost carries the fields of a post being created.
type NewPost struct {
	Title   string
	Content string
	Topics  []string
	Tags    []string
	Cover   string
}

// Topic is a post category.
type Topic struct {
	ID   ID
	Name string
}
