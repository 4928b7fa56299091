package detail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// View renders the detail view.
func (m Model) View() string {
	width := m.contentWidth()

	if m.loading && m.post.ID.IsZero() {
		return "\n " + m.spinner.View() + " Loading post...\n"
	}
	if m.loadErr != nil {
		return m.renderLoadError(width)
	}

	lines, focus := m.renderBody(width)
	footer := common.StatusBarStyle.Render(m.footer())
	visible := window(lines, focus, m.height-lipgloss.Height(footer))
	return strings.Join(visible, "\n") + "\n" + footer
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(min(m.width-4, 100), 20)
}

func (m Model) renderLoadError(width int) string {
	msg := "This post could not be loaded."
	if errors.Is(m.loadErr, domain.ErrNotFound) {
		msg = "This post does not exist or was removed."
	}
	panel := common.PanelStyle.Width(width).Render(
		common.ErrorStyle.Render(msg) + "\n" +
			common.TimestampStyle.Render(m.loadErr.Error()),
	)
	return "\n" + panel + "\n" + common.StatusBarStyle.Render(common.HelpLine(m.keys.Refresh, m.keys.Back))
}

// renderBody returns the rendered lines and the index of the line that
// should stay on screen: the open composer, else the comment cursor, else -1.
func (m Model) renderBody(width int) ([]string, int) {
	var out []string
	add := func(s string) { out = append(out, strings.Split(s, "\n")...) }

	p := m.post
	add(common.AppTitleStyle.Render(common.Sanitize(p.Title)))
	meta := common.AuthorStyle.Render(domain.DisplayName(p.Author))
	if rel := common.Relative(p.CreatedAt); rel != "" {
		meta += common.TimestampStyle.Render(" · " + rel)
	}
	meta += common.TimestampStyle.Render(fmt.Sprintf(" · %s views", common.Count(p.ViewsCount)))
	if label := m.followLabel(); label != "" {
		meta += "  " + common.LinkStyle.Render(label)
	}
	add(" " + meta)

	if len(p.Topics) > 0 || len(p.Tags) > 0 {
		chips := make([]string, 0, len(p.Topics)+len(p.Tags))
		for _, t := range p.Topics {
			chips = append(chips, common.TopicStyle.Render(t))
		}
		for _, t := range p.Tags {
			chips = append(chips, common.TopicStyle.Render("#"+t))
		}
		add(" " + strings.Join(chips, " "))
	}
	if p.HasSensitiveContent {
		add(" " + common.WarningStyle.Render("⚠ This post may contain sensitive content."))
	}
	add("")

	if m.showSummary {
		add(m.renderSummary(width))
		add("")
	}

	body := p.Content
	if m.showRaw && p.RawContent != "" {
		body = p.RawContent
	}
	add(common.ContentStyle.Render(common.Wrap(common.Sanitize(body), width)))
	add("")

	if len(p.RelatedPosts) > 0 {
		add(common.PostTitleStyle.Render("Related"))
		for _, r := range p.RelatedPosts {
			add("  • " + common.Clamp(common.Sanitize(r.Title), width-4))
		}
		add("")
	}

	focus := m.renderComments(width, add, func() int { return len(out) })
	return out, focus
}

func (m Model) renderComments(width int, add func(string), lineNo func() int) int {
	layout := m.vis.Layout(m.roots)
	add(common.PostTitleStyle.Render(fmt.Sprintf("Comments (%d)", layout.Total)))

	focus := -1
	switch {
	case m.composing:
		focus = lineNo()
		add(m.composer.View())
		status := "ctrl+s: post • esc: close"
		if m.submittingRoot {
			status = "Posting…"
		}
		add(common.TimestampStyle.Render(status))
	case m.deps.Session.Authenticated():
		add(common.TimestampStyle.Render("Press c to comment."))
	default:
		add(common.TimestampStyle.Render("Log in to join the discussion."))
	}
	add("")

	if len(m.roots) == 0 {
		add(common.TimestampStyle.Render("No comments yet."))
		return focus
	}

	for i, r := range m.rows() {
		selected := i == m.cursor && !m.Capturing()
		if i == m.cursor && focus < 0 {
			focus = lineNo()
		}
		add(m.renderRow(r, width, selected))
		if r.kind == rootRow && r.rootID == m.replyTo {
			// The reply composer sits under the root while its replies follow.
			focus = lineNo()
			add(common.ReplyStyle.Render(m.replyBox.View()))
			status := "ctrl+s: reply • esc: close"
			if m.submittingReply {
				status = "Replying…"
			}
			add(common.ReplyStyle.Render(common.TimestampStyle.Render(status)))
		}
	}
	return focus
}

func (m Model) renderRow(r row, width int, selected bool) string {
	prefix := "  "
	if selected {
		prefix = common.CursorStyle.Render("> ")
	}
	switch r.kind {
	case toggleRow, moreRow:
		line := prefix + common.LinkStyle.Render(r.label)
		if r.kind == toggleRow {
			return common.ReplyStyle.Render(line)
		}
		return line
	}

	c := r.comment
	head := common.AuthorStyle.Render(domain.DisplayName(c.Author))
	if rel := common.Relative(c.CreatedAt); rel != "" {
		head += common.TimestampStyle.Render(" · " + rel)
	}
	indent := 2
	if r.kind == replyRow {
		indent = 6
	}
	text := common.ContentStyle.Render(common.Wrap(common.Sanitize(c.Content), width-indent-2))
	block := prefix + head + "\n" + indentLines(text, 2)
	if r.kind == replyRow {
		return common.ReplyStyle.Render(block)
	}
	return block
}

func indentLines(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = pad + ln
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSummary(width int) string {
	var text string
	switch {
	case m.summaryLoading:
		text = m.spinner.View() + " Summarizing…"
	case errors.Is(m.summaryErr, domain.ErrNoSummary):
		text = common.TimestampStyle.Render("No summary is available for this post.")
	case m.summaryErr != nil:
		text = common.ErrorStyle.Render("Summary failed: " + m.summaryErr.Error())
	default:
		text = common.ContentStyle.Render(common.Wrap(common.Sanitize(m.summary), width-4))
	}
	return common.PanelStyle.Width(width).Render(common.PostTitleStyle.Render("AI summary") + "\n" + text)
}

func (m Model) followLabel() string {
	a := m.post.Author
	if a == nil || a.ID.IsZero() || m.isOwnPost() {
		return ""
	}
	if m.author.State().IsFollowing {
		return "[following]"
	}
	return "[f: follow]"
}

func (m Model) footer() string {
	switch {
	case m.confirmDelete:
		return common.ConfirmStyle.Render("Delete this post? (y/n)")
	case m.deleting:
		return "Deleting…"
	}
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(common.ErrorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	k := m.keys
	help := common.HelpLine(k.Up, k.Down, k.Open, k.Comment, k.Reply, k.MoreComments, k.Follow, k.Summary)
	extra := common.HelpLine(k.Author, k.Raw, k.Refresh, k.Back)
	if m.isOwnPost() {
		extra = common.HelpLine(k.Author, k.Raw, k.Delete, k.Refresh, k.Back)
	}
	b.WriteString(help + "\n" + extra)
	return b.String()
}

// window keeps the focus line on screen when the terminal is shorter than
// the rendered page.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= 0 {
		start = max(focus-height/3, 0)
	}
	start = min(start, len(lines)-height)
	return lines[start : start+height]
}
