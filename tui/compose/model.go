// Package compose is the new post form. Content can be typed inline or
// drafted in $EDITOR.
package compose

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/infra/editor"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// --- Messages ---

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

type publishedMsg struct {
	Post domain.PostSummary
	Err  error
}

// Editor drafts text in an external program.
type Editor interface {
	Cmd(content, heading string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

const (
	fieldTitle = iota
	fieldTopics
	fieldTags
	fieldCover
	fieldContent
	fieldCount
)

// Model holds the state for the compose view.
type Model struct {
	posts  app.PostService
	editor Editor
	keys   common.KeyMap

	inputs  []textinput.Model // title, topics, tags, cover
	content textarea.Model
	focus   int

	topicHints []string
	useEditor  bool
	submitting bool
	notice     string
	isErr      bool
	width      int
}

// New creates a compose form. With useEditor set, Init opens $EDITOR first
// and the draft is loaded into the form when it exits.
func New(posts app.PostService, ed Editor, topics []domain.Topic, useEditor bool) Model {
	inputs := make([]textinput.Model, fieldContent)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldTitle].Prompt = "Title:  "
	inputs[fieldTitle].Placeholder = "A good title"
	inputs[fieldTopics].Prompt = "Topics: "
	inputs[fieldTopics].Placeholder = "comma separated"
	inputs[fieldTags].Prompt = "Tags:   "
	inputs[fieldTags].Placeholder = "comma separated"
	inputs[fieldCover].Prompt = "Cover:  "
	inputs[fieldCover].Placeholder = "https://… (optional)"
	inputs[fieldTitle].Focus()

	ta := textarea.New()
	ta.Placeholder = "Write your post..."
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(10)

	hints := make([]string, 0, len(topics))
	for _, t := range topics {
		hints = append(hints, t.Name)
	}

	return Model{
		posts:      posts,
		editor:     ed,
		keys:       common.DefaultKeyMap(),
		inputs:     inputs,
		content:    ta,
		topicHints: hints,
		useEditor:  useEditor,
	}
}

// Init opens the editor in editor mode, otherwise starts the cursor blink.
func (m Model) Init() tea.Cmd {
	if m.useEditor {
		return m.launchEditor()
	}
	return textinput.Blink
}

// Capturing reports whether the form owns the keyboard. It always does.
func (m Model) Capturing() bool { return true }

// launchEditor suspends the program while $EDITOR runs on the current draft.
func (m Model) launchEditor() tea.Cmd {
	if m.editor == nil {
		return common.Status("No editor configured.", true)
	}
	draft := m.content.Value()
	if title := strings.TrimSpace(m.inputs[fieldTitle].Value()); title != "" {
		draft = "# " + title + "\n\n" + draft
	}
	cmd, tmpPath, err := m.editor.Cmd(draft, "New post. The first line starting with '# ' is the title.")
	if err != nil {
		return common.Status(fmt.Sprintf("Preparing editor: %v", err), true)
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Draft returns the post as currently entered.
func (m Model) Draft() domain.NewPost {
	return domain.NewPost{
		Title:   strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Content: strings.TrimSpace(m.content.Value()),
		Topics:  splitList(m.inputs[fieldTopics].Value()),
		Tags:    splitList(m.inputs[fieldTags].Value()),
		Cover:   strings.TrimSpace(m.inputs[fieldCover].Value()),
	}
}

func (m Model) publish(post domain.NewPost) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		created, err := posts.CreatePost(context.Background(), post)
		return publishedMsg{Post: created, Err: err}
	}
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.content.SetWidth(max(min(msg.Width-6, 96), 20))
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.setNotice("Editor: "+msg.err.Error(), true)
			return m, nil
		}
		text, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.setNotice(err.Error(), true)
			return m, nil
		}
		title, body := editor.SplitDraft(text)
		if title != "" {
			m.inputs[fieldTitle].SetValue(title)
		}
		m.content.SetValue(body)
		m.setNotice("Draft loaded. Review and press ctrl+s to publish.", false)
		return m, nil

	case publishedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.setNotice("Could not publish: "+msg.Err.Error(), true)
			return m, nil
		}
		return m, tea.Batch(
			common.Emit(common.PostCreatedMsg{Post: msg.Post}),
			common.Status("Post published.", false),
		)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.submitting {
			return m, nil
		}
		return m, common.Emit(common.BackMsg{})

	case key.Matches(msg, m.keys.Submit):
		if m.submitting {
			return m, nil
		}
		draft := m.Draft()
		switch {
		case draft.Title == "":
			m.setNotice(domain.ErrEmptyTitle.Error(), true)
			return m, nil
		case draft.Content == "":
			m.setNotice(domain.ErrEmptyContent.Error(), true)
			return m, nil
		}
		m.submitting = true
		m.setNotice("Publishing...", false)
		return m, m.publish(draft)

	case msg.Type == tea.KeyCtrlE:
		return m, m.launchEditor()

	case msg.Type == tea.KeyTab:
		return m.moveFocus(1)

	case msg.Type == tea.KeyShiftTab:
		return m.moveFocus(fieldCount - 1)
	}
	return m.updateFocused(msg)
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	if m.focus == fieldContent {
		m.content.Blur()
	} else {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + delta) % fieldCount
	if m.focus == fieldContent {
		return m, m.content.Focus()
	}
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldContent {
		m.content, cmd = m.content.Update(msg)
	} else {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.isErr = isErr
}

// splitList splits a comma separated field, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
