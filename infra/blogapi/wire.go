package blogapi

import (
	"strings"
	"time"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/thread"
)

// wireUser is the backend's UserResponse.
type wireUser struct {
	ID     domain.ID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Bio    string    `json:"bio"`
	Gender string    `json:"gender"`
	DOB    string    `json:"dob"`
}

// wireComment mirrors a comment record. Replies is a pointer so an absent
// field can be told apart from an empty list.
type wireComment struct {
	ID           domain.ID      `json:"id"`
	Content      string         `json:"content"`
	UserResponse *wireUser      `json:"userResponse"`
	ParentID     domain.ID      `json:"parentId"`
	CreatedAt    string         `json:"createdAt"`
	LeftValue    int            `json:"leftValue"`
	RightValue   int            `json:"rightValue"`
	Replies      *[]wireComment `json:"replies"`
}

type wirePostSummary struct {
	ID            domain.ID `json:"id"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Cover         string    `json:"cover"`
	UserResponse  *wireUser `json:"userResponse"`
	Category      []string  `json:"category"`
	ViewsCount    int       `json:"viewsCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     string    `json:"createdAt"`
}

type wirePostDetail struct {
	ID                  domain.ID         `json:"id"`
	Title               string            `json:"title"`
	Content             string            `json:"content"`
	RawContent          string            `json:"rawContent"`
	Cover               string            `json:"cover"`
	UserResponse        *wireUser         `json:"userResponse"`
	Category            []string          `json:"category"`
	Hashtags            []string          `json:"hashtags"`
	ViewsCount          int               `json:"viewsCount"`
	CommentsCount       int               `json:"commentsCount"`
	HasSensitiveContent bool              `json:"hasSensitiveContent"`
	CreatedAt           string            `json:"createdAt"`
	Comments            []wireComment     `json:"comments"`
	RelatedPosts        []wirePostSummary `json:"relatedPosts"`
}

type wirePage struct {
	Content       []wirePostSummary `json:"content"`
	TotalPages    int               `json:"totalPages"`
	Number        int               `json:"number"`
	Size          int               `json:"size"`
	TotalElements int               `json:"totalElements"`
}

type wireTopic struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

// timeLayouts covers RFC 3339 and the zone-less timestamps the backend
// emits for local date-times.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapUserRef(u *wireUser) *domain.UserRef {
	if u == nil {
		return nil
	}
	return &domain.UserRef{ID: u.ID, Name: strings.TrimSpace(u.Name), Avatar: u.Avatar}
}

func mapUserRefs(in []wireUser) []domain.UserRef {
	out := make([]domain.UserRef, 0, len(in))
	for i := range in {
		out = append(out, *mapUserRef(&in[i]))
	}
	return out
}

func mapProfile(u wireUser) domain.Profile {
	return domain.Profile{
		ID:     u.ID,
		Name:   strings.TrimSpace(u.Name),
		Email:  u.Email,
		Avatar: u.Avatar,
		Bio:    u.Bio,
		Gender: u.Gender,
		DOB:    parseTime(u.DOB),
	}
}

func mapComment(c wireComment) domain.Comment {
	out := domain.Comment{
		ID:         c.ID,
		Content:    c.Content,
		Author:     mapUserRef(c.UserResponse),
		ParentID:   c.ParentID,
		CreatedAt:  parseTime(c.CreatedAt),
		LeftValue:  c.LeftValue,
		RightValue: c.RightValue,
	}
	if c.Replies != nil {
		out.Replies = make([]domain.Comment, 0, len(*c.Replies))
		for _, r := range *c.Replies {
			reply := mapComment(r)
			if reply.ParentID.IsZero() {
				reply.ParentID = c.ID
			}
			out.Replies = append(out.Replies, reply)
		}
	}
	return out
}

// mapComments decides the batch shape once, from the first record.
func mapComments(in []wireComment) domain.CommentBatch {
	out := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, mapComment(c))
	}
	return thread.Classify(out, len(in) > 0 && in[0].Replies != nil)
}

func mapPostSummary(p wirePostSummary) domain.PostSummary {
	return domain.PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		Cover:         p.Cover,
		Author:        mapUserRef(p.UserResponse),
		Topics:        p.Category,
		ViewsCount:    p.ViewsCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     parseTime(p.CreatedAt),
	}
}

func mapPostSummaries(in []wirePostSummary) []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(in))
	for _, p := range in {
		out = append(out, mapPostSummary(p))
	}
	return out
}

func mapPostDetail(p wirePostDetail) domain.PostDetail {
	return domain.PostDetail{
		ID:                  p.ID,
		Title:               p.Title,
		Content:             p.Content,
		RawContent:          p.RawContent,
		Cover:               p.Cover,
		Author:              mapUserRef(p.UserResponse),
		Topics:              p.Category,
		Tags:                p.Hashtags,
		ViewsCount:          p.ViewsCount,
		CommentsCount:       p.CommentsCount,
		HasSensitiveContent: p.HasSensitiveContent,
		CreatedAt:           parseTime(p.CreatedAt),
		Comments:            mapComments(p.Comments),
		RelatedPosts:        mapPostSummaries(p.RelatedPosts),
	}
}

func mapPage(p wirePage) domain.PostPage {
	return domain.PostPage{
		Content:       mapPostSummaries(p.Content),
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}
