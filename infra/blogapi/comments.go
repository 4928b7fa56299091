package blogapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/termblog/domain"
)

// commentService implements app.CommentService using the blog API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the blog API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

func (s *commentService) CreateComment(ctx context.Context, postID, parentID domain.ID, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	body := struct {
		Content  string     `json:"content"`
		PID      domain.ID  `json:"pid"`
		ParentID *domain.ID `json:"parentId,omitempty"`
	}{Content: content, PID: postID}
	if !parentID.IsZero() {
		body.ParentID = &parentID
	}

	const path = "/blog/comment"
	data, err := s.client.Post(ctx, path, body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("posting comment: %w", err)
	}
	c, err := decodeEnvelope[wireComment](http.MethodPost, path, data)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("posting comment: %w", err)
	}
	return mapComment(c), nil
}

// summaryService implements app.SummaryService using the blog API.
type summaryService struct {
	client *Client
}

// NewSummaryService creates a SummaryService backed by the blog API.
func NewSummaryService(client *Client) *summaryService {
	return &summaryService{client: client}
}

func (s *summaryService) Summary(ctx context.Context, postID domain.ID) (string, error) {
	if postID.IsZero() {
		return "", fmt.Errorf("invalid post id")
	}
	path := fmt.Sprintf("/blog/post/%s/summary", url.PathEscape(postID.String()))
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("fetching summary: %w", err)
	}
	out, err := decodeEnvelope[struct {
		Summary string `json:"summary"`
	}](http.MethodGet, path, data)
	if err != nil {
		return "", fmt.Errorf("fetching summary: %w", err)
	}
	summary := strings.TrimSpace(unquote(strings.TrimSpace(out.Summary)))
	if summary == "" {
		return "", domain.ErrNoSummary
	}
	return summary, nil
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
