package compose

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

type stubPosts struct {
	app.PostService
	created []domain.NewPost
	err     error
}

func (s *stubPosts) CreatePost(_ context.Context, p domain.NewPost) (domain.PostSummary, error) {
	s.created = append(s.created, p)
	if s.err != nil {
		return domain.PostSummary{}, s.err
	}
	return domain.PostSummary{ID: "p9", Title: p.Title}, nil
}

type stubEditor struct {
	text string
	err  error
}

func (e stubEditor) Cmd(string, string) (*exec.Cmd, string, error) {
	return exec.Command("true"), "/tmp/draft.md", nil
}

func (e stubEditor) ReadContent(string) (string, error) { return e.text, e.err }

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func tab(m Model, n int) Model {
	for range n {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

func TestDraft_CollectsFields(t *testing.T) {
	m := New(&stubPosts{}, nil, nil, false)
	m = typeText(m, "Hello")
	m = tab(m, 1)
	m = typeText(m, "go, , tui")
	m = tab(m, 1)
	m = typeText(m, "x")
	m = tab(m, 2)
	m = typeText(m, "body")

	d := m.Draft()
	if d.Title != "Hello" || d.Content != "body" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if strings.Join(d.Topics, "|") != "go|tui" || strings.Join(d.Tags, "|") != "x" {
		t.Fatalf("unexpected lists: topics=%v tags=%v", d.Topics, d.Tags)
	}
}

func TestSubmit_EmptyTitleBlocked(t *testing.T) {
	posts := &stubPosts{}
	m := New(posts, nil, nil, false)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("expected no command for an empty title")
	}
	if !strings.Contains(m.View(), domain.ErrEmptyTitle.Error()) {
		t.Fatalf("expected title notice:\n%s", m.View())
	}
}

func TestSubmit_EmptyContentBlocked(t *testing.T) {
	m := New(&stubPosts{}, nil, nil, false)
	m = typeText(m, "Title")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("expected no command for empty content")
	}
	if !strings.Contains(m.View(), domain.ErrEmptyContent.Error()) {
		t.Fatalf("expected content notice:\n%s", m.View())
	}
}

func TestSubmit_PublishesOnce(t *testing.T) {
	posts := &stubPosts{}
	m := New(posts, nil, nil, false)
	m = typeText(m, "Title")
	m = tab(m, 4)
	m = typeText(m, "Body")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected publish command")
	}
	if _, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Fatal("second submit while publishing must be ignored")
	}

	m, out := m.Update(cmd())
	if len(posts.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(posts.created))
	}
	batch, ok := out().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch, got %#v", out())
	}
	created, ok := batch[0]().(common.PostCreatedMsg)
	if !ok || created.Post.ID != "p9" {
		t.Fatalf("expected PostCreatedMsg for p9, got %#v", batch[0]())
	}
	if m.submitting {
		t.Fatal("expected submitting cleared")
	}
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	posts := &stubPosts{err: errors.New("server down")}
	m := New(posts, nil, nil, false)
	m = typeText(m, "Title")
	m = tab(m, 4)
	m = typeText(m, "Body")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, out := m.Update(cmd())
	if out != nil {
		t.Fatal("failure must not leave the form")
	}
	if m.Draft().Title != "Title" || m.Draft().Content != "Body" {
		t.Fatalf("draft lost: %+v", m.Draft())
	}
	if !strings.Contains(m.View(), "server down") {
		t.Fatalf("expected error notice:\n%s", m.View())
	}
}

func TestCancel_EmitsBack(t *testing.T) {
	m := New(&stubPosts{}, nil, nil, false)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected back command")
	}
	if _, ok := cmd().(common.BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %#v", cmd())
	}
}

func TestEditorDraft_LoadedIntoForm(t *testing.T) {
	ed := stubEditor{text: "# From editor\n\nLong body"}
	m := New(&stubPosts{}, ed, nil, true)
	if m.Init() == nil {
		t.Fatal("expected editor launch")
	}

	m, _ = m.Update(editorFinishedMsg{tmpPath: "/tmp/draft.md"})
	d := m.Draft()
	if d.Title != "From editor" || d.Content != "Long body" {
		t.Fatalf("unexpected draft from editor: %+v", d)
	}
}

func TestEditorFailure_ShowsNotice(t *testing.T) {
	m := New(&stubPosts{}, stubEditor{}, nil, true)
	m, _ = m.Update(editorFinishedMsg{err: errors.New("exit status 1")})
	if !strings.Contains(m.View(), "exit status 1") {
		t.Fatalf("expected editor error:\n%s", m.View())
	}
}

func TestView_ShowsTopicHints(t *testing.T) {
	m := New(&stubPosts{}, nil, []domain.Topic{{ID: "1", Name: "Go"}, {ID: "2", Name: "Rust"}}, false)
	if !strings.Contains(m.View(), "Go, Rust") {
		t.Fatalf("expected topic hints:\n%s", m.View())
	}
}
