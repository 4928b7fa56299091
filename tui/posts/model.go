// Package posts is the paginated post listing with search and topic filter.
package posts

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/paging"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// --- Messages ---

// PageLoadedMsg carries a fetched page tagged with the request generation.
type PageLoadedMsg struct {
	Seq  int
	Page domain.PostPage
	Err  error
}

// TopicsLoadedMsg carries the topic list for the filter picker.
type TopicsLoadedMsg struct {
	Topics []domain.Topic
	Err    error
}

// --- Model ---

// Model holds the state for the post listing.
type Model struct {
	posts   app.PostService
	session app.Session
	ctrl    paging.Controller
	items   []domain.PostSummary
	cursor  int
	loading bool
	err     error
	keys    common.KeyMap
	spinner spinner.Model

	search    textinput.Model
	searching bool

	topics       []domain.Topic
	pickTopics   bool
	topicCursor  int
	topicPending []string // Selection being edited in the picker

	showHints bool
	width     int
	height    int
}

// New creates the listing with a fixed page size and an initial filter.
func New(posts app.PostService, session app.Session, pageSize int, filter domain.PostFilter) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(common.Accent)

	ti := textinput.New()
	ti.Placeholder = "Search posts"
	ti.CharLimit = 120
	ti.Prompt = "/ "
	ti.SetValue(filter.Query)

	return Model{
		posts:   posts,
		session: session,
		ctrl:    paging.NewController(pageSize, filter),
		loading: true,
		keys:    common.DefaultKeyMap(),
		spinner: s,
		search:  ti,
	}
}

// Init starts the first page fetch and loads topics.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(),
		m.fetchTopics(),
		m.spinner.Tick,
	)
}

// Controller exposes the paging state.
func (m Model) Controller() paging.Controller { return m.ctrl }

// Items returns the posts on the current page.
func (m Model) Items() []domain.PostSummary { return m.items }

// Selected returns the post under the cursor.
func (m Model) Selected() (domain.PostSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.PostSummary{}, false
	}
	return m.items[m.cursor], true
}

// Topics returns the loaded topic list.
func (m Model) Topics() []domain.Topic { return m.topics }

// Capturing reports whether a text input currently owns the keyboard.
func (m Model) Capturing() bool { return m.searching || m.pickTopics }

// SetSession replaces the viewer session.
func (m Model) SetSession(s app.Session) Model {
	m.session = s
	return m
}

// Refresh re-fetches the current page.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.ctrl = m.ctrl.GoTo(m.ctrl.Page)
	m.loading = true
	return m, m.fetchPage()
}

// Update handles messages for the listing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		if msg.Seq != m.ctrl.Seq {
			return m, nil // superseded by a newer request
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.ctrl, _ = m.ctrl.Apply(msg.Page, msg.Seq)
		m.err = nil
		m.items = msg.Page.Content
		m.cursor = 0
		return m, nil

	case TopicsLoadedMsg:
		if msg.Err == nil {
			m.topics = msg.Topics
		}
		return m, nil

	case common.PostDeletedMsg:
		m.items = slices.DeleteFunc(slices.Clone(m.items), func(p domain.PostSummary) bool { return p.ID == msg.ID })
		m.cursor = min(m.cursor, max(len(m.items)-1, 0))
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.searching:
			return m.updateSearch(msg)
		case m.pickTopics:
			return m.updateTopicPicker(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.Selected(); ok {
			return m, common.Emit(common.OpenPostMsg{ID: p.ID})
		}

	case key.Matches(msg, m.keys.Author):
		if p, ok := m.Selected(); ok && p.Author != nil && !p.Author.ID.IsZero() {
			return m, common.Emit(common.OpenProfileMsg{ID: p.Author.ID})
		}

	case key.Matches(msg, m.keys.NextPage):
		next, ok := m.ctrl.Next()
		if !ok {
			return m, nil
		}
		m.ctrl = next
		m.loading = true
		return m, m.fetchPage()

	case key.Matches(msg, m.keys.PrevPage):
		prev, ok := m.ctrl.Prev()
		if !ok {
			return m, nil
		}
		m.ctrl = prev
		m.loading = true
		return m, m.fetchPage()

	case key.Matches(msg, m.keys.Refresh):
		return m.Refresh()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.ctrl.Filter.Query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Topics):
		m.pickTopics = true
		m.topicCursor = 0
		m.topicPending = slices.Clone(m.ctrl.Filter.Topics)
		if len(m.topics) == 0 {
			return m, m.fetchTopics()
		}

	case key.Matches(msg, m.keys.ClearFilter):
		if m.ctrl.Filter.Query == "" && len(m.ctrl.Filter.Topics) == 0 {
			return m, nil
		}
		m.search.SetValue("")
		return m.applyFilter(domain.PostFilter{MinRating: m.ctrl.Filter.MinRating})
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.ctrl.Filter.Query)
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		f := m.ctrl.Filter
		f.Query = strings.TrimSpace(m.search.Value())
		return m.applyFilter(f)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateTopicPicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.pickTopics = false
		m.topicPending = nil
	case msg.Type == tea.KeyEnter:
		m.pickTopics = false
		f := m.ctrl.Filter
		f.Topics = m.topicPending
		m.topicPending = nil
		return m.applyFilter(f)
	case msg.String() == " ":
		if m.topicCursor < len(m.topics) {
			name := m.topics[m.topicCursor].Name
			if i := slices.Index(m.topicPending, name); i >= 0 {
				m.topicPending = slices.Delete(slices.Clone(m.topicPending), i, i+1)
			} else {
				m.topicPending = append(slices.Clone(m.topicPending), name)
			}
		}
	case key.Matches(msg, m.keys.Up):
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.topicCursor < len(m.topics)-1 {
			m.topicCursor++
		}
	}
	return m, nil
}

// applyFilter resets to the first page and refetches when the filter
// actually changed.
func (m Model) applyFilter(f domain.PostFilter) (Model, tea.Cmd) {
	if paging.SameFilter(f, m.ctrl.Filter) {
		return m, nil
	}
	m.ctrl = m.ctrl.WithFilter(f)
	m.loading = true
	return m, tea.Batch(
		m.fetchPage(),
		common.Emit(common.FilterChangedMsg{Filter: f}),
	)
}

func (m Model) fetchPage() tea.Cmd {
	posts := m.posts
	ctrl := m.ctrl
	return func() tea.Msg {
		page, err := posts.ListPosts(context.Background(), ctrl.Page, ctrl.Size, ctrl.Filter)
		return PageLoadedMsg{Seq: ctrl.Seq, Page: page, Err: err}
	}
}

func (m Model) fetchTopics() tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		topics, err := posts.Topics(context.Background())
		return TopicsLoadedMsg{Topics: topics, Err: err}
	}
}
