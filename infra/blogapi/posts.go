package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/termblog/domain"
)

// postService implements app.PostService using the blog API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the blog API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func (s *postService) ListPosts(ctx context.Context, page, size int, filter domain.PostFilter) (domain.PostPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 0)))
	q.Set("size", strconv.Itoa(size))
	if query := strings.TrimSpace(filter.Query); query != "" {
		q.Set("query", query)
	}
	if filter.MinRating > 0 {
		q.Set("minRating", strconv.Itoa(filter.MinRating))
	}
	for _, t := range filter.Topics {
		if t = strings.TrimSpace(t); t != "" {
			q.Add("topics", t)
		}
	}
	return s.fetchPage(ctx, "/blog/posts?"+q.Encode())
}

func (s *postService) UserPosts(ctx context.Context, userID domain.ID, page, size int) (domain.PostPage, error) {
	if userID.IsZero() {
		return domain.PostPage{}, fmt.Errorf("invalid user id")
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 0)))
	q.Set("size", strconv.Itoa(size))
	path := fmt.Sprintf("/blog/posts/user/%s?%s", url.PathEscape(userID.String()), q.Encode())
	return s.fetchPage(ctx, path)
}

func (s *postService) fetchPage(ctx context.Context, path string) (domain.PostPage, error) {
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.PostPage{}, fmt.Errorf("fetching posts: %w", err)
	}
	page, err := decodeEnvelope[wirePage](http.MethodGet, path, data)
	if err != nil {
		return domain.PostPage{}, fmt.Errorf("fetching posts: %w", err)
	}
	return mapPage(page), nil
}

func (s *postService) PostDetail(ctx context.Context, id domain.ID) (domain.PostDetail, error) {
	if id.IsZero() {
		return domain.PostDetail{}, fmt.Errorf("invalid post id")
	}
	path := "/blog/post/" + url.PathEscape(id.String())
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.PostDetail{}, fmt.Errorf("fetching post: %w", err)
	}
	post, err := decodeEnvelope[wirePostDetail](http.MethodGet, path, data)
	if err != nil {
		return domain.PostDetail{}, fmt.Errorf("fetching post: %w", err)
	}
	return mapPostDetail(post), nil
}

func (s *postService) CreatePost(ctx context.Context, post domain.NewPost) (domain.PostSummary, error) {
	post.Title = strings.TrimSpace(post.Title)
	post.Content = strings.TrimSpace(post.Content)
	if post.Title == "" {
		return domain.PostSummary{}, domain.ErrEmptyTitle
	}
	if post.Content == "" {
		return domain.PostSummary{}, domain.ErrEmptyContent
	}

	body := struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Topics  []string `json:"topics"`
		Tags    []string `json:"tags"`
		Cover   string   `json:"cover"`
	}{
		Title:   post.Title,
		Content: post.Content,
		Topics:  compact(post.Topics),
		Tags:    compact(post.Tags),
		Cover:   strings.TrimSpace(post.Cover),
	}

	const path = "/blog/post"
	data, err := s.client.Post(ctx, path, body)
	if err != nil {
		return domain.PostSummary{}, fmt.Errorf("publishing post: %w", err)
	}
	raw, err := decodeEnvelope[json.RawMessage](http.MethodPost, path, data)
	if err != nil {
		return domain.PostSummary{}, fmt.Errorf("publishing post: %w", err)
	}

	// The backend answers with either the created post or just its id.
	created := domain.PostSummary{Title: body.Title, Topics: body.Topics, Cover: body.Cover}
	var summary wirePostSummary
	if err := json.Unmarshal(raw, &summary); err == nil && !summary.ID.IsZero() {
		created = mapPostSummary(summary)
	} else {
		var id domain.ID
		if err := json.Unmarshal(raw, &id); err == nil {
			created.ID = id
		}
	}
	return created, nil
}

func (s *postService) DeletePost(ctx context.Context, id domain.ID) error {
	if id.IsZero() {
		return fmt.Errorf("invalid post id")
	}
	path := "/blog/post/" + url.PathEscape(id.String())
	data, err := s.client.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	if _, err := decodeEnvelope[json.RawMessage](http.MethodDelete, path, data); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *postService) Topics(ctx context.Context) ([]domain.Topic, error) {
	const path = "/blog/topics"
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching topics: %w", err)
	}
	topics, err := decodeEnvelope[[]wireTopic](http.MethodGet, path, data)
	if err != nil {
		return nil, fmt.Errorf("fetching topics: %w", err)
	}
	out := make([]domain.Topic, 0, len(topics))
	for _, t := range topics {
		out = append(out, domain.Topic{ID: t.ID, Name: strings.TrimSpace(t.Name)})
	}
	return out, nil
}

// compact trims entries and drops blanks, always returning a non-nil slice.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
