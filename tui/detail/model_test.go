package detail

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

type stubPosts struct {
	app.PostService
	deleted []domain.ID
}

func (s *stubPosts) PostDetail(_ context.Context, id domain.ID) (domain.PostDetail, error) {
	return domain.PostDetail{ID: id}, nil
}

func (s *stubPosts) DeletePost(_ context.Context, id domain.ID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubComments struct {
	calls int
	err   error
}

func (s *stubComments) CreateComment(_ context.Context, _, _ domain.ID, content string) (domain.Comment, error) {
	s.calls++
	if s.err != nil {
		return domain.Comment{}, s.err
	}
	return domain.Comment{ID: domain.ID("new-" + content), Content: content}, nil
}

type stubFollows struct {
	app.FollowService
	toggles int
	err     error
}

func (s *stubFollows) IsFollowing(context.Context, domain.ID) (bool, error) { return false, nil }

func (s *stubFollows) ToggleFollow(context.Context, domain.ID, bool) (domain.FollowToggle, error) {
	s.toggles++
	return domain.FollowToggle{FollowerID: "me"}, s.err
}

type stubSummaries struct {
	summary string
	err     error
}

func (s stubSummaries) Summary(context.Context, domain.ID) (string, error) { return s.summary, s.err }

var viewer = app.Session{AccessToken: "tok", Viewer: domain.UserRef{ID: "me", Name: "Me"}}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func comment(id, parent string) domain.Comment {
	return domain.Comment{ID: domain.ID(id), ParentID: domain.ID(parent), Content: "comment " + id}
}

type fixture struct {
	posts    *stubPosts
	comments *stubComments
	follows  *stubFollows
}

func newModel(t *testing.T, session app.Session, post domain.PostDetail) (Model, *fixture) {
	t.Helper()
	f := &fixture{posts: &stubPosts{}, comments: &stubComments{}, follows: &stubFollows{}}
	m := New(post.ID, Deps{
		Posts:     f.posts,
		Comments:  f.comments,
		Summaries: stubSummaries{summary: "short"},
		Follows:   f.follows,
		Session:   session,
		Logger:    log.New(io.Discard, "", 0),
	})
	m, _ = m.Update(LoadedMsg{ID: post.ID, Post: post})
	return m, f
}

func samplePost() domain.PostDetail {
	return domain.PostDetail{
		ID:      "p1",
		Title:   "Hello",
		Content: "<p>Body</p>",
		Author:  &domain.UserRef{ID: "author", Name: "Ann"},
		Comments: domain.FlatComments{
			comment("1", ""),
			comment("2", "1"),
			comment("3", "1"),
			comment("4", "1"),
			comment("5", ""),
		},
	}
}

func TestLoaded_BuildsTreeAndRows(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())

	if len(m.roots) != 2 || len(m.roots[0].Replies) != 3 {
		t.Fatalf("unexpected tree: %+v", m.roots)
	}
	rows := m.rows()
	kinds := make([]rowKind, 0, len(rows))
	for _, r := range rows {
		kinds = append(kinds, r.kind)
	}
	want := []rowKind{rootRow, replyRow, replyRow, toggleRow, rootRow}
	if len(kinds) != len(want) {
		t.Fatalf("unexpected rows: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("unexpected rows: %v", kinds)
		}
	}
	if out := m.View(); !strings.Contains(out, "show 1 more replies") {
		t.Fatalf("expected reply affordance in view:\n%s", out)
	}
}

func TestLoaded_IgnoresOtherPost(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())
	m, _ = m.Update(LoadedMsg{ID: "other", Post: domain.PostDetail{ID: "other", Title: "Other"}})
	if m.post.ID != "p1" {
		t.Fatalf("late load for another post must be ignored")
	}
}

func TestToggleRow_ExpandsReplies(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())
	for i := 0; i < 3; i++ {
		m, _ = m.Update(runes("j"))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.vis.Expanded("1") {
		t.Fatal("expected root 1 expanded")
	}
	if out := m.View(); !strings.Contains(out, "hide replies") {
		t.Fatalf("expected collapse affordance:\n%s", out)
	}
}

func TestMoreComments_ShowsNextBatch(t *testing.T) {
	post := samplePost()
	var flat domain.FlatComments
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		flat = append(flat, comment(id, ""))
	}
	post.Comments = flat
	m, _ := newModel(t, viewer, post)

	if len(m.rows()) != 6 {
		t.Fatalf("expected 5 roots plus more row, got %d rows", len(m.rows()))
	}
	m, _ = m.Update(runes("m"))
	if len(m.rows()) != 7 {
		t.Fatalf("expected all 7 roots after load more, got %d rows", len(m.rows()))
	}
}

func TestSubmitRoot_PrependsAndClearsComposer(t *testing.T) {
	m, f := newModel(t, viewer, samplePost())

	m, _ = m.Update(runes("c"))
	if !m.composing {
		t.Fatal("expected composer open")
	}
	m = typeText(m, "nice")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.submittingRoot || cmd == nil {
		t.Fatal("expected submission in flight")
	}

	// A second submit while in flight is ignored.
	m, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if again != nil {
		t.Fatal("duplicate submit must be ignored")
	}

	m, _ = m.Update(cmd())
	if f.comments.calls != 1 {
		t.Fatalf("expected one request, got %d", f.comments.calls)
	}
	if m.roots[0].ID != "new-nice" || domain.DisplayName(m.roots[0].Author) != "Me" {
		t.Fatalf("expected new root first with viewer identity, got %+v", m.roots[0])
	}
	if m.composing || m.composer.Value() != "" {
		t.Fatal("composer must clear and close on success")
	}
}

func TestSubmitRoot_FailureKeepsDraft(t *testing.T) {
	m, f := newModel(t, viewer, samplePost())
	f.comments.err = errors.New("boom")

	m, _ = m.Update(runes("c"))
	m = typeText(m, "draft")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(cmd())

	if len(m.roots) != 2 {
		t.Fatalf("failed submission must not touch the tree")
	}
	if !m.composing || m.composer.Value() != "draft" || m.submittingRoot {
		t.Fatalf("draft must be kept after failure")
	}
}

func TestSubmitRoot_EmptyIsRejectedLocally(t *testing.T) {
	m, f := newModel(t, viewer, samplePost())
	m, _ = m.Update(runes("c"))
	m = typeText(m, "   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || f.comments.calls != 0 {
		t.Fatal("empty comment must not reach the network")
	}
	if m.notice == "" {
		t.Fatal("expected a notice for the empty comment")
	}
}

func TestAnonymousCannotComment(t *testing.T) {
	m, _ := newModel(t, app.Session{}, samplePost())
	m, _ = m.Update(runes("c"))
	if m.composing {
		t.Fatal("anonymous viewer must not open the composer")
	}
	if !strings.Contains(m.View(), "Log in") {
		t.Fatal("expected login hint")
	}
}

func TestSubmitReply_AttachesAndCloses(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())
	m, _ = m.Update(runes("j")) // reply row under root 1
	m, _ = m.Update(runes("r"))
	if m.replyTo != "1" {
		t.Fatalf("reply composer must target the root, got %q", m.replyTo)
	}
	m = typeText(m, "yo")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(cmd())

	replies := m.roots[0].Replies
	if len(replies) != 4 || replies[3].ID != "new-yo" || replies[3].ParentID != "1" {
		t.Fatalf("expected reply appended to root 1, got %+v", replies)
	}
	if !m.replyTo.IsZero() {
		t.Fatal("reply composer must close on success")
	}
	if !m.vis.Expanded("1") {
		t.Fatal("root must expand so the new reply is visible")
	}
}

func TestSubmitReply_FailureKeepsComposerOpen(t *testing.T) {
	m, f := newModel(t, viewer, samplePost())
	f.comments.err = errors.New("boom")
	m, _ = m.Update(runes("r"))
	m = typeText(m, "yo")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(cmd())

	if m.replyTo != "1" || m.replyBox.Value() != "yo" {
		t.Fatal("reply composer must stay open with its draft")
	}
}

func TestFollowAuthor_OptimisticAndRollback(t *testing.T) {
	m, f := newModel(t, viewer, samplePost())
	f.follows.err = errors.New("boom")

	m, cmd := m.Update(runes("f"))
	if !m.author.State().IsFollowing || !m.author.Toggling() {
		t.Fatal("expected optimistic follow")
	}
	m, dup := m.Update(runes("f"))
	if dup != nil {
		t.Fatal("second toggle while in flight must be ignored")
	}

	m, _ = m.Update(cmd())
	if f.follows.toggles != 1 {
		t.Fatalf("expected a single request, got %d", f.follows.toggles)
	}
	if m.author.State().IsFollowing || m.author.Toggling() {
		t.Fatal("failure must roll back")
	}
}

func TestFollowAuthor_AnonymousShowsNotice(t *testing.T) {
	m, f := newModel(t, app.Session{}, samplePost())
	m, cmd := m.Update(runes("f"))
	if cmd != nil || f.follows.toggles != 0 || m.author.State().IsFollowing {
		t.Fatal("anonymous follow must not mutate or send")
	}
	if m.notice == "" {
		t.Fatal("expected login notice")
	}
}

func TestLoadError_ShowsBlockingPanel(t *testing.T) {
	m := New("gone", Deps{Posts: &stubPosts{}, Logger: log.New(io.Discard, "", 0)})
	m, _ = m.Update(LoadedMsg{ID: "gone", Err: domain.ErrNotFound})
	out := m.View()
	if !strings.Contains(out, "does not exist") {
		t.Fatalf("expected not-found panel:\n%s", out)
	}
	m, _ = m.Update(runes("c"))
	if m.composing {
		t.Fatal("no interaction behind the error panel")
	}
}

func TestDeleteOwnPost(t *testing.T) {
	post := samplePost()
	post.Author = &domain.UserRef{ID: "me", Name: "Me"}
	m, f := newModel(t, viewer, post)

	m, _ = m.Update(runes("d"))
	if !m.confirmDelete {
		t.Fatal("expected confirmation prompt")
	}
	m, cmd := m.Update(runes("y"))
	m, out := m.Update(cmd())
	if len(f.posts.deleted) != 1 || f.posts.deleted[0] != "p1" {
		t.Fatalf("expected delete request, got %v", f.posts.deleted)
	}
	if out == nil {
		t.Fatal("expected navigation after delete")
	}
	batch, ok := out().(tea.BatchMsg)
	if !ok || len(batch) != 3 {
		t.Fatalf("unexpected follow-up: %#v", batch)
	}
	if _, ok := batch[0]().(common.PostDeletedMsg); !ok {
		t.Fatal("expected PostDeletedMsg")
	}
}

func TestDeleteIgnoredForOthersPosts(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())
	m, _ = m.Update(runes("d"))
	if m.confirmDelete {
		t.Fatal("only the author may delete")
	}
}

func TestSummary_FetchAndNoSummary(t *testing.T) {
	m, _ := newModel(t, viewer, samplePost())
	m, cmd := m.Update(runes("s"))
	if !m.summaryLoading || cmd == nil {
		t.Fatal("expected summary fetch")
	}
	m, _ = m.Update(cmd())
	if m.summary != "short" || !strings.Contains(m.View(), "AI summary") {
		t.Fatal("expected summary panel")
	}

	m2, _ := newModel(t, viewer, samplePost())
	m2.deps.Summaries = stubSummaries{err: domain.ErrNoSummary}
	m2, cmd = m2.Update(runes("s"))
	m2, _ = m2.Update(cmd())
	if !strings.Contains(m2.View(), "No summary is available") {
		t.Fatal("expected no-summary message")
	}
}
