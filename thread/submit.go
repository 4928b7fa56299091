package thread

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

// Submitter publishes comments and replies and shapes the created record
// for insertion into the local tree.
type Submitter struct {
	comments app.CommentService
	session  app.Session
	logger   *log.Logger
}

// NewSubmitter creates a Submitter. A nil logger logs to the standard logger.
func NewSubmitter(comments app.CommentService, session app.Session, logger *log.Logger) Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return Submitter{comments: comments, session: session, logger: logger}
}

// SubmitRoot publishes a root comment on a post.
func (s Submitter) SubmitRoot(ctx context.Context, postID domain.ID, content string) (domain.Comment, error) {
	return s.submit(ctx, postID, "", content)
}

// SubmitReply publishes a reply to a root comment.
func (s Submitter) SubmitReply(ctx context.Context, postID, parentID domain.ID, content string) (domain.Comment, error) {
	if parentID.IsZero() {
		return domain.Comment{}, fmt.Errorf("reply needs a parent comment")
	}
	return s.submit(ctx, postID, parentID, content)
}

func (s Submitter) submit(ctx context.Context, postID, parentID domain.ID, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if !s.session.Authenticated() {
		return domain.Comment{}, domain.ErrUnauthenticated
	}

	created, err := s.comments.CreateComment(ctx, postID, parentID, content)
	if err != nil {
		s.logger.Printf("comment: post %s parent %q: %v", postID, parentID, err)
		return domain.Comment{}, fmt.Errorf("submitting comment: %w", err)
	}

	viewer := s.session.Viewer
	created.Author = &viewer
	created.ParentID = parentID
	created.Replies = nil
	if created.Content == "" {
		created.Content = content
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	return created, nil
}

// PrependRoot places a freshly created root comment first, regardless of
// the order the server returned the rest in.
func PrependRoot(roots []domain.Comment, c domain.Comment) []domain.Comment {
	if c.Replies == nil {
		c.Replies = []domain.Comment{}
	}
	out := make([]domain.Comment, 0, len(roots)+1)
	out = append(out, c)
	return append(out, roots...)
}

// AttachReply appends a reply to the root it answers. It reports false and
// returns roots unchanged when no root has the reply's parent id.
func AttachReply(roots []domain.Comment, reply domain.Comment) ([]domain.Comment, bool) {
	for i := range roots {
		if roots[i].ID != reply.ParentID {
			continue
		}
		out := make([]domain.Comment, len(roots))
		copy(out, roots)
		replies := make([]domain.Comment, 0, len(out[i].Replies)+1)
		replies = append(replies, out[i].Replies...)
		out[i].Replies = append(replies, reply)
		return out, true
	}
	return roots, false
}
