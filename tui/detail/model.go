// Package detail renders a single post with its comment thread.
package detail

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/follow"
	"github.com/CrestNiraj12/termblog/thread"
	"github.com/CrestNiraj12/termblog/tui/common"
)

const commentCharLimit = 2000

// --- Messages ---

// LoadedMsg is sent when the post fetch completes.
type LoadedMsg struct {
	ID   domain.ID
	Post domain.PostDetail
	Err  error
}

type followStatusMsg struct {
	TargetID  domain.ID
	Following bool
	Err       error
}

type followResultMsg struct {
	TargetID domain.ID
	Result   domain.FollowToggle
	Err      error
}

type commentSubmittedMsg struct {
	PostID   domain.ID
	ParentID domain.ID
	Comment  domain.Comment
	Err      error
}

type summaryLoadedMsg struct {
	ID      domain.ID
	Summary string
	Err     error
}

type deleteResultMsg struct {
	ID  domain.ID
	Err error
}

// --- Rows ---

type rowKind int

const (
	rootRow rowKind = iota
	replyRow
	toggleRow
	moreRow
)

// row is one selectable line group in the comment section.
type row struct {
	kind    rowKind
	rootID  domain.ID
	comment domain.Comment
	label   string
}

// --- Model ---

// Deps are the services the detail view talks to.
type Deps struct {
	Posts     app.PostService
	Comments  app.CommentService
	Summaries app.SummaryService
	Follows   app.FollowService
	Session   app.Session
	Logger    *log.Logger
}

// Model holds the state for the post detail view.
type Model struct {
	postID    domain.ID
	deps      Deps
	submitter thread.Submitter
	logger    *log.Logger
	keys      common.KeyMap
	spinner   spinner.Model

	post    domain.PostDetail
	roots   []domain.Comment
	vis     thread.Visibility
	loading bool
	loadErr error
	cursor  int

	composer        textarea.Model
	composing       bool
	submittingRoot  bool
	replyBox        textarea.Model
	replyTo         domain.ID
	submittingReply bool

	author follow.Reconciler

	summary        string
	summaryLoading bool
	summaryErr     error
	showSummary    bool

	showRaw       bool
	confirmDelete bool
	deleting      bool
	notice        string

	width  int
	height int
}

// New creates a detail model for postID.
func New(postID domain.ID, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(common.Accent)

	return Model{
		postID:    postID,
		deps:      deps,
		submitter: thread.NewSubmitter(deps.Comments, deps.Session, deps.Logger),
		logger:    deps.Logger,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		vis:       thread.NewVisibility(),
		loading:   true,
		composer:  newTextarea("Write a comment…"),
		replyBox:  newTextarea("Write a reply…"),
	}
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = commentCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(4)
	return ta
}

// Init starts the post fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPost(), m.spinner.Tick)
}

// PostID returns the id of the shown post.
func (m Model) PostID() domain.ID { return m.postID }

// Capturing reports whether a composer or prompt owns the keyboard.
func (m Model) Capturing() bool {
	return m.composing || !m.replyTo.IsZero() || m.confirmDelete
}

// Roots returns the current comment tree.
func (m Model) Roots() []domain.Comment { return m.roots }

// Visibility returns the comment visibility state.
func (m Model) Visibility() thread.Visibility { return m.vis }

// Author returns the author follow state.
func (m Model) Author() follow.Reconciler { return m.author }

func (m Model) isOwnPost() bool {
	return m.post.Author != nil && m.deps.Session.IsViewer(m.post.Author.ID)
}

// rows flattens the visible comment layout into selectable rows.
func (m Model) rows() []row {
	layout := m.vis.Layout(m.roots)
	out := make([]row, 0, len(layout.Roots)*2+1)
	for _, rv := range layout.Roots {
		out = append(out, row{kind: rootRow, rootID: rv.Comment.ID, comment: rv.Comment})
		for _, r := range rv.Replies {
			out = append(out, row{kind: replyRow, rootID: rv.Comment.ID, comment: r})
		}
		if rv.ToggleLabel != "" {
			out = append(out, row{kind: toggleRow, rootID: rv.Comment.ID, label: rv.ToggleLabel})
		}
	}
	if layout.HasMoreRoots {
		out = append(out, row{kind: moreRow, label: "load more comments"})
	}
	return out
}

func (m Model) selectedRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	m.cursor = min(m.cursor, max(n-1, 0))
}
