package detail

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/follow"
	"github.com/CrestNiraj12/termblog/thread"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := max(min(msg.Width-6, 96), 20)
		m.composer.SetWidth(w)
		m.replyBox.SetWidth(w - 4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		if msg.ID != m.postID {
			return m, nil
		}
		return m.handleLoaded(msg)

	case followStatusMsg:
		if msg.TargetID != m.author.State().TargetID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Printf("detail: follow status for %s: %v", msg.TargetID, msg.Err)
			return m, nil
		}
		m.author = m.author.ApplyStatus(msg.Following)
		return m, nil

	case followResultMsg:
		if msg.TargetID != m.author.State().TargetID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Printf("detail: follow toggle for %s: %v", msg.TargetID, msg.Err)
		}
		m.author = m.author.Finish(msg.Result, msg.Err)
		return m, nil

	case commentSubmittedMsg:
		if msg.PostID != m.postID {
			return m, nil
		}
		return m.handleCommentSubmitted(msg)

	case summaryLoadedMsg:
		if msg.ID != m.postID {
			return m, nil
		}
		m.summaryLoading = false
		m.summaryErr = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
		return m, nil

	case deleteResultMsg:
		if msg.ID != m.postID {
			return m, nil
		}
		m.deleting = false
		if msg.Err != nil {
			m.notice = "Could not delete post: " + msg.Err.Error()
			return m, nil
		}
		return m, tea.Batch(
			common.Emit(common.PostDeletedMsg{ID: msg.ID}),
			common.Emit(common.BackMsg{}),
			common.Status("Post deleted.", false),
		)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToInputs(msg)
}

func (m Model) handleLoaded(msg LoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		m.loadErr = msg.Err
		return m, nil
	}
	m.loadErr = nil
	m.post = msg.Post
	m.roots = thread.Build(msg.Post.Comments)
	m.vis = thread.NewVisibility()
	m.cursor = 0

	author := m.post.Author
	if author == nil || author.ID.IsZero() {
		return m, nil
	}
	m.author = follow.New(author.ID)
	if !m.deps.Session.Authenticated() || m.deps.Session.IsViewer(author.ID) {
		return m, nil
	}
	return m, m.fetchFollowStatus(author.ID)
}

func (m Model) handleCommentSubmitted(msg commentSubmittedMsg) (Model, tea.Cmd) {
	if msg.ParentID.IsZero() {
		m.submittingRoot = false
		if msg.Err != nil {
			m.notice = "Comment not posted. Your draft is kept."
			return m, nil
		}
		m.roots = thread.PrependRoot(m.roots, msg.Comment)
		m.post.CommentsCount++
		m.composer.Reset()
		m.composer.Blur()
		m.composing = false
		m.cursor = 0
		m.notice = ""
		return m, nil
	}

	m.submittingReply = false
	if msg.Err != nil {
		m.notice = "Reply not posted. Your draft is kept."
		return m, nil
	}
	roots, ok := thread.AttachReply(m.roots, msg.Comment)
	if ok {
		m.roots = roots
		m.post.CommentsCount++
		for _, r := range roots {
			if r.ID == msg.ParentID && len(r.Replies) > thread.ReplyPreview && !m.vis.Expanded(r.ID) {
				m.vis = m.vis.ToggleReplies(r.ID)
			}
		}
	}
	if m.replyTo == msg.ParentID {
		m.replyBox.Reset()
		m.replyBox.Blur()
		m.replyTo = ""
	}
	m.notice = ""
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case m.confirmDelete:
		return m.handleConfirmDelete(msg)
	case m.composing:
		return m.handleComposerKey(msg)
	case !m.replyTo.IsZero():
		return m.handleReplyKey(msg)
	}

	if m.loadErr != nil {
		switch {
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.loadErr = nil
			return m, m.fetchPost()
		case key.Matches(msg, m.keys.Back):
			return m, common.Emit(common.BackMsg{})
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.showSummary {
			m.showSummary = false
			return m, nil
		}
		return m, common.Emit(common.BackMsg{})

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.fetchPost()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		r, ok := m.selectedRow()
		if !ok {
			break
		}
		switch r.kind {
		case rootRow:
			if len(r.comment.Replies) > thread.ReplyPreview {
				m.vis = m.vis.ToggleReplies(r.rootID)
				m.clampCursor()
			}
		case toggleRow:
			m.vis = m.vis.ToggleReplies(r.rootID)
			m.clampCursor()
		case moreRow:
			m.vis = m.vis.ShowMoreRoots()
		}

	case key.Matches(msg, m.keys.MoreComments):
		m.vis = m.vis.ShowMoreRoots()

	case key.Matches(msg, m.keys.Comment):
		if m.loading {
			break
		}
		if !m.deps.Session.Authenticated() {
			m.notice = "Log in to comment."
			break
		}
		m.composing = true
		m.notice = ""
		return m, m.composer.Focus()

	case key.Matches(msg, m.keys.Reply):
		r, ok := m.selectedRow()
		if !ok || r.kind == moreRow {
			break
		}
		if !m.deps.Session.Authenticated() {
			m.notice = "Log in to reply."
			break
		}
		m.replyTo = r.rootID
		m.notice = ""
		return m, m.replyBox.Focus()

	case key.Matches(msg, m.keys.Follow):
		return m.toggleFollow()

	case key.Matches(msg, m.keys.Summary):
		m.showSummary = !m.showSummary
		if m.showSummary && m.summary == "" && !m.summaryLoading {
			m.summaryLoading = true
			m.summaryErr = nil
			return m, m.fetchSummary()
		}

	case key.Matches(msg, m.keys.Raw):
		if m.post.RawContent != "" {
			m.showRaw = !m.showRaw
		}

	case key.Matches(msg, m.keys.Delete):
		if m.isOwnPost() && !m.deleting {
			m.confirmDelete = true
		}

	case key.Matches(msg, m.keys.Author):
		if a := m.post.Author; a != nil && !a.ID.IsZero() {
			return m, common.Emit(common.OpenProfileMsg{ID: a.ID})
		}
	}
	return m, nil
}

func (m Model) toggleFollow() (Model, tea.Cmd) {
	if m.post.Author == nil || m.post.Author.ID.IsZero() || m.isOwnPost() {
		return m, nil
	}
	next, req, err := m.author.Begin(m.deps.Session)
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		m.notice = "Log in to follow authors."
		return m, nil
	case err != nil:
		return m, nil
	}
	m.author = next
	return m, m.sendFollowToggle(req)
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.composing = false
		m.composer.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.submittingRoot {
			return m, nil
		}
		content := m.composer.Value()
		if strings.TrimSpace(content) == "" {
			m.notice = "Comment cannot be empty."
			return m, nil
		}
		m.submittingRoot = true
		m.notice = ""
		return m, m.submitRoot(content)
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleReplyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !m.submittingReply {
			m.replyTo = ""
			m.replyBox.Blur()
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.submittingReply {
			return m, nil
		}
		content := m.replyBox.Value()
		if strings.TrimSpace(content) == "" {
			m.notice = "Reply cannot be empty."
			return m, nil
		}
		m.submittingReply = true
		m.notice = ""
		return m, m.submitReply(m.replyTo, content)
	}
	var cmd tea.Cmd
	m.replyBox, cmd = m.replyBox.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		m.deleting = true
		return m, m.deletePost()
	case "n", "N", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

// forwardToInputs passes non-key messages such as cursor blinks to the
// focused composer.
func (m Model) forwardToInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.composing:
		m.composer, cmd = m.composer.Update(msg)
	case !m.replyTo.IsZero():
		m.replyBox, cmd = m.replyBox.Update(msg)
	}
	return m, cmd
}
