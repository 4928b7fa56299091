package tui

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/infra/config"
	"github.com/CrestNiraj12/termblog/tui/common"
)

type savedSessions struct {
	saved []app.Session
}

func (s *savedSessions) Save(sess app.Session) error {
	s.saved = append(s.saved, sess)
	return nil
}

var viewer = app.Session{AccessToken: "tok", Viewer: domain.UserRef{ID: "me", Name: "Me"}}

func newApp(t *testing.T, session app.Session) App {
	t.Helper()
	return NewApp(Deps{
		Session:   session,
		PageSize:  5,
		StatePath: filepath.Join(t.TempDir(), "ui_state.json"),
		Logger:    log.New(io.Discard, "", 0),
	})
}

func step(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestOpenPostAndBack(t *testing.T) {
	a := newApp(t, viewer)

	a, cmd := step(t, a, common.OpenPostMsg{ID: "p1"})
	if a.Depth() != 1 {
		t.Fatalf("expected detail pushed, depth=%d", a.Depth())
	}
	if cmd == nil {
		t.Fatal("expected detail init command")
	}
	if _, ok := a.top().(detailScreen); !ok {
		t.Fatalf("expected detail screen on top, got %T", a.top())
	}

	a, _ = step(t, a, common.BackMsg{})
	if a.Depth() != 0 {
		t.Fatalf("expected listing after back, depth=%d", a.Depth())
	}
}

func TestBackOnListingQuits(t *testing.T) {
	a := newApp(t, viewer)
	_, cmd := step(t, a, common.BackMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %#v", cmd())
	}
}

func TestQuitKeyOnlyOnListing(t *testing.T) {
	a := newApp(t, viewer)
	a, _ = step(t, a, common.OpenPostMsg{ID: "p1"})

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected back command from detail")
	}
	if _, ok := cmd().(common.BackMsg); !ok {
		t.Fatalf("q on a pushed screen should go back, got %#v", cmd())
	}
}

func TestComposeRequiresLogin(t *testing.T) {
	a := newApp(t, app.Session{})
	a, _ = step(t, a, common.ComposeMsg{})
	if a.Depth() != 0 {
		t.Fatal("anonymous viewer must not open the compose form")
	}
	if !strings.Contains(a.View(), "Log in to write a post") {
		t.Fatalf("expected login status:\n%s", a.View())
	}
}

func TestOwnProfileRequiresLogin(t *testing.T) {
	a := newApp(t, app.Session{})
	a, _ = step(t, a, common.OpenProfileMsg{})
	if a.Depth() != 0 {
		t.Fatal("anonymous viewer has no own profile")
	}
}

func TestPostCreatedClosesCompose(t *testing.T) {
	a := newApp(t, viewer)
	a, _ = step(t, a, common.ComposeMsg{})
	if _, ok := a.top().(composeScreen); !ok {
		t.Fatalf("expected compose screen, got %T", a.top())
	}

	a, cmd := step(t, a, common.PostCreatedMsg{Post: domain.PostSummary{ID: "p9"}})
	if a.Depth() != 0 {
		t.Fatalf("expected compose closed, depth=%d", a.Depth())
	}
	if cmd == nil {
		t.Fatal("expected listing refresh")
	}
}

func TestFilterChangedPersistsState(t *testing.T) {
	a := newApp(t, viewer)
	_, _ = step(t, a, common.FilterChangedMsg{Filter: domain.PostFilter{Query: "go", Topics: []string{"tui"}}})

	st, err := config.LoadUIState(a.deps.StatePath)
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.Query != "go" || len(st.Topics) != 1 || st.Topics[0] != "tui" {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestProfileUpdatedSavesSession(t *testing.T) {
	saver := &savedSessions{}
	a := NewApp(Deps{Session: viewer, Sessions: saver, Logger: log.New(io.Discard, "", 0)})

	a, _ = step(t, a, common.ProfileUpdatedMsg{Profile: domain.Profile{ID: "me", Name: "Renamed"}})
	if len(saver.saved) != 1 || saver.saved[0].Viewer.Name != "Renamed" {
		t.Fatalf("unexpected saved sessions: %+v", saver.saved)
	}
	if saver.saved[0].AccessToken != "tok" {
		t.Fatal("token must survive a profile update")
	}
	if a.deps.Session.Viewer.Name != "Renamed" {
		t.Fatal("expected in-memory session updated")
	}
}

func TestStatusShownUntilNextKey(t *testing.T) {
	a := newApp(t, viewer)
	a, _ = step(t, a, common.StatusMsg{Text: "Post published."})
	if !strings.Contains(a.View(), "Post published.") {
		t.Fatalf("expected status:\n%s", a.View())
	}
	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if strings.Contains(a.View(), "Post published.") {
		t.Fatal("status should clear on the next key")
	}
}
