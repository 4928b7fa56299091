package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/infra/config"
	"github.com/CrestNiraj12/termblog/tui/common"
	"github.com/CrestNiraj12/termblog/tui/compose"
	"github.com/CrestNiraj12/termblog/tui/detail"
	"github.com/CrestNiraj12/termblog/tui/posts"
	"github.com/CrestNiraj12/termblog/tui/profile"
)

// SessionSaver persists the viewer session.
type SessionSaver interface {
	Save(app.Session) error
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts     app.PostService
	Comments  app.CommentService
	Summaries app.SummaryService
	Users     app.UserService
	Follows   app.FollowService
	Session   app.Session
	Sessions  SessionSaver
	Editor    compose.Editor
	PageSize  int
	State     config.UIState
	StatePath string
	Logger    *log.Logger
}

// App is the root Bubble Tea model. The post listing is always at the bottom
// of the screen stack; detail, profile and compose screens are pushed on top.
type App struct {
	deps   Deps
	list   posts.Model
	stack  []screen
	keys   common.KeyMap
	status string
	isErr  bool
	size   tea.WindowSizeMsg
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	filter := domain.PostFilter{Query: deps.State.Query, Topics: deps.State.Topics}
	return App{
		deps: deps,
		list: posts.New(deps.Posts, deps.Session, deps.PageSize, filter),
		keys: common.DefaultKeyMap(),
	}
}

// Init starts the listing.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// Depth returns the number of screens above the listing.
func (a App) Depth() int { return len(a.stack) }

func (a App) top() screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a App) capturing() bool {
	if s := a.top(); s != nil {
		return s.capturing()
	}
	return a.list.Capturing()
}

// push opens a screen sized to the current window.
func (a App) push(s screen) (App, tea.Cmd) {
	cmd := s.init()
	if a.size.Width > 0 {
		s, _ = s.update(a.size)
	}
	a.stack = append(a.stack, s)
	a.status = ""
	return a, cmd
}

// Update handles navigation and routes everything else.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = msg
		return a.broadcast(msg)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		a.status = ""
		if a.top() == nil && !a.list.Capturing() {
			if next, cmd, ok := a.listKey(msg); ok {
				return next, cmd
			}
		}
		return a.routeTop(msg)

	case common.OpenPostMsg:
		return a.push(detailScreen{detail.New(msg.ID, detail.Deps{
			Posts:     a.deps.Posts,
			Comments:  a.deps.Comments,
			Summaries: a.deps.Summaries,
			Follows:   a.deps.Follows,
			Session:   a.deps.Session,
			Logger:    a.deps.Logger,
		})})

	case common.OpenProfileMsg:
		if msg.ID.IsZero() && !a.deps.Session.Authenticated() {
			return a.setStatus("Log in to see your profile.", true), nil
		}
		return a.push(profileScreen{profile.New(msg.ID, profile.Deps{
			Posts:    a.deps.Posts,
			Users:    a.deps.Users,
			Follows:  a.deps.Follows,
			Session:  a.deps.Session,
			Logger:   a.deps.Logger,
			PageSize: a.deps.PageSize,
		})})

	case common.ComposeMsg:
		if !a.deps.Session.Authenticated() {
			return a.setStatus("Log in to write a post.", true), nil
		}
		return a.push(composeScreen{compose.New(a.deps.Posts, a.deps.Editor, a.list.Topics(), msg.UseEditor)})

	case common.BackMsg:
		if len(a.stack) == 0 {
			return a, tea.Quit
		}
		a.stack = a.stack[:len(a.stack)-1]
		return a, nil

	case common.StatusMsg:
		return a.setStatus(msg.Text, msg.IsErr), nil

	case common.FilterChangedMsg:
		st := config.UIState{Query: msg.Filter.Query, Topics: msg.Filter.Topics}
		if a.deps.StatePath != "" {
			if err := config.SaveUIState(a.deps.StatePath, st); err != nil {
				a.deps.Logger.Printf("tui: saving ui state: %v", err)
			}
		}
		return a, nil

	case common.PostCreatedMsg:
		if _, ok := a.top().(composeScreen); ok {
			a.stack = a.stack[:len(a.stack)-1]
		}
		var cmd tea.Cmd
		a.list, cmd = a.list.Refresh()
		return a, cmd

	case common.ProfileUpdatedMsg:
		a.deps.Session.Viewer = msg.Profile.Ref()
		a.list = a.list.SetSession(a.deps.Session)
		if a.deps.Sessions != nil {
			if err := a.deps.Sessions.Save(a.deps.Session); err != nil {
				a.deps.Logger.Printf("tui: saving session: %v", err)
			}
		}
		return a, nil
	}

	// Async results carry their own id or sequence guards, so every live
	// screen sees them and screens that did not ask simply ignore them.
	return a.broadcast(msg)
}

// listKey handles the keys that only make sense on the listing.
func (a App) listKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true
	case key.Matches(msg, a.keys.NewPost):
		return a, common.Emit(common.ComposeMsg{}), true
	case key.Matches(msg, a.keys.NewPostEditor):
		return a, common.Emit(common.ComposeMsg{UseEditor: true}), true
	case key.Matches(msg, a.keys.Me):
		return a, common.Emit(common.OpenProfileMsg{}), true
	}
	return a, nil, false
}

func (a App) routeTop(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s := a.top(); s != nil {
		var cmd tea.Cmd
		a.stack[len(a.stack)-1], cmd = s.update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(a.stack)+1)
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	cmds = append(cmds, cmd)
	stack := make([]screen, len(a.stack))
	for i, s := range a.stack {
		stack[i], cmd = s.update(msg)
		cmds = append(cmds, cmd)
	}
	a.stack = stack
	return a, tea.Batch(cmds...)
}

func (a App) setStatus(text string, isErr bool) App {
	a.status = text
	a.isErr = isErr
	return a
}

// View renders the top screen.
func (a App) View() string {
	var s string
	if top := a.top(); top != nil {
		s = top.view()
	} else {
		s = a.list.View()
	}
	if a.status != "" {
		style := common.SuccessStyle
		if a.isErr {
			style = common.ErrorStyle
		}
		s += "\n" + style.Render(a.status)
	}
	return s
}
