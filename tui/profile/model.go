// Package profile shows a user's profile, follow relationships and posts.
package profile

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/follow"
	"github.com/CrestNiraj12/termblog/paging"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// --- Messages ---

type profileLoadedMsg struct {
	ID      domain.ID // requested id, empty for the viewer's own profile
	Profile domain.Profile
	Err     error
}

type statsLoadedMsg struct {
	ID    domain.ID
	Stats domain.FollowStats
	Err   error
}

type statusLoadedMsg struct {
	ID        domain.ID
	Following bool
	Err       error
}

type postsLoadedMsg struct {
	UserID domain.ID
	Seq    int
	Page   domain.PostPage
	Err    error
}

type followResultMsg struct {
	TargetID domain.ID
	Result   domain.FollowToggle
	Err      error
}

type profileSavedMsg struct {
	Update domain.ProfileUpdate
	Err    error
}

// --- Tabs ---

type tab int

const (
	postsTab tab = iota
	followersTab
	followingTab
)

func (t tab) String() string {
	switch t {
	case followersTab:
		return "Followers"
	case followingTab:
		return "Following"
	default:
		return "Posts"
	}
}

const (
	fieldName = iota
	fieldBio
	fieldAvatar
	fieldCount
)

// Deps are the services the profile view talks to.
type Deps struct {
	Posts    app.PostService
	Users    app.UserService
	Follows  app.FollowService
	Session  app.Session
	Logger   *log.Logger
	PageSize int
}

// Model holds the state for the profile view.
type Model struct {
	requested domain.ID
	userID    domain.ID
	deps      Deps
	logger    *log.Logger
	keys      common.KeyMap
	spinner   spinner.Model

	profile domain.Profile
	loading bool
	loadErr error

	follow follow.Reconciler

	tab          tab
	cursor       int
	ctrl         paging.Controller
	items        []domain.PostSummary
	postsLoading bool
	postsErr     error

	editing bool
	inputs  []textinput.Model
	focus   int
	saving  bool

	notice string
	width  int
}

// New creates a profile view for id. An empty id shows the viewer's own
// profile.
func New(id domain.ID, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(common.Accent)

	return Model{
		requested: id,
		userID:    id,
		deps:      deps,
		logger:    deps.Logger,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		loading:   true,
		follow:    follow.New(id),
		ctrl:      paging.NewController(deps.PageSize, domain.PostFilter{}),
	}
}

// Init fetches the profile and, when the id is known, its relations and posts.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchProfile(), m.spinner.Tick}
	if !m.userID.IsZero() {
		cmds = append(cmds, m.fetchRelations()...)
		cmds = append(cmds, m.fetchPosts())
	}
	return tea.Batch(cmds...)
}

// UserID returns the shown user's id once known.
func (m Model) UserID() domain.ID { return m.userID }

// Follow returns the follow state for the shown user.
func (m Model) Follow() follow.Reconciler { return m.follow }

// Capturing reports whether the edit form owns the keyboard.
func (m Model) Capturing() bool { return m.editing }

func (m Model) isOwn() bool {
	return m.requested.IsZero() || m.deps.Session.IsViewer(m.userID)
}

func (m Model) fetchProfile() tea.Cmd {
	users := m.deps.Users
	id := m.requested
	return func() tea.Msg {
		var (
			p   domain.Profile
			err error
		)
		if id.IsZero() {
			p, err = users.Me(context.Background())
		} else {
			p, err = users.UserByID(context.Background(), id)
		}
		return profileLoadedMsg{ID: id, Profile: p, Err: err}
	}
}

// fetchRelations loads follow stats, plus the viewer's follow status when
// the viewer is someone else.
func (m Model) fetchRelations() []tea.Cmd {
	follows := m.deps.Follows
	id := m.userID
	cmds := []tea.Cmd{func() tea.Msg {
		stats, err := follows.FollowStats(context.Background(), id)
		return statsLoadedMsg{ID: id, Stats: stats, Err: err}
	}}
	if m.deps.Session.Authenticated() && !m.isOwn() {
		cmds = append(cmds, func() tea.Msg {
			following, err := follows.IsFollowing(context.Background(), id)
			return statusLoadedMsg{ID: id, Following: following, Err: err}
		})
	}
	return cmds
}

func (m Model) fetchPosts() tea.Cmd {
	posts := m.deps.Posts
	id := m.userID
	ctrl := m.ctrl
	return func() tea.Msg {
		page, err := posts.UserPosts(context.Background(), id, ctrl.Page, ctrl.Size)
		return postsLoadedMsg{UserID: id, Seq: ctrl.Seq, Page: page, Err: err}
	}
}

func (m Model) sendFollowToggle(req follow.Request) tea.Cmd {
	follows := m.deps.Follows
	return func() tea.Msg {
		res, err := follows.ToggleFollow(context.Background(), req.TargetID, req.WasFollowing)
		return followResultMsg{TargetID: req.TargetID, Result: res, Err: err}
	}
}

func (m Model) saveProfile(upd domain.ProfileUpdate) tea.Cmd {
	users := m.deps.Users
	return func() tea.Msg {
		return profileSavedMsg{Update: upd, Err: users.UpdateProfile(context.Background(), upd)}
	}
}

func newInputs(p domain.Profile) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldName].Prompt = "Name:   "
	inputs[fieldName].SetValue(p.Name)
	inputs[fieldBio].Prompt = "Bio:    "
	inputs[fieldBio].CharLimit = 500
	inputs[fieldBio].SetValue(p.Bio)
	inputs[fieldAvatar].Prompt = "Avatar: "
	inputs[fieldAvatar].Placeholder = "https://…"
	inputs[fieldAvatar].SetValue(p.Avatar)
	return inputs
}
