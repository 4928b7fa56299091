package posts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// View renders the listing.
func (m Model) View() string {
	var b strings.Builder
	width := m.contentWidth()

	b.WriteString(common.AppTitleStyle.Render("termblog"))
	b.WriteString(common.TaglineStyle.Render(m.viewerLine()))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	} else if line := m.filterLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	if m.pickTopics {
		b.WriteString(m.renderTopicPicker())
		return b.String()
	}

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(m.spinner.View() + " Loading posts...")
	case m.err != nil && len(m.items) == 0:
		b.WriteString(common.ErrorStyle.Render("Could not load posts: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(common.TimestampStyle.Render("Press R to retry."))
	case len(m.items) == 0:
		b.WriteString(common.TimestampStyle.Render("No posts found."))
	default:
		for i, p := range m.items {
			b.WriteString(renderPost(p, width, i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderPager())
	if m.loading && len(m.items) > 0 {
		b.WriteString(" " + m.spinner.View())
	}
	if m.err != nil && len(m.items) > 0 {
		b.WriteString("\n" + common.ErrorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(common.StatusBarStyle.Render(m.hints()))
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(m.width-6, 20)
}

func (m Model) viewerLine() string {
	if m.session.Authenticated() {
		return "signed in as " + domain.DisplayName(&m.session.Viewer)
	}
	return "browsing anonymously"
}

func (m Model) filterLine() string {
	f := m.ctrl.Filter
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("search: %q", f.Query))
	}
	for _, t := range f.Topics {
		parts = append(parts, common.TopicStyle.Render(t))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + common.TimestampStyle.Render("  (x to clear)")
}

func renderPost(p domain.PostSummary, width int, selected bool) string {
	title := common.PostTitleStyle.Render(common.Clamp(common.Sanitize(p.Title), width-4))
	meta := common.AuthorStyle.Render(domain.DisplayName(p.Author))
	if rel := common.Relative(p.CreatedAt); rel != "" {
		meta += common.TimestampStyle.Render(" · " + rel)
	}
	meta += common.TimestampStyle.Render(fmt.Sprintf(" · %s views · %s comments",
		common.Count(p.ViewsCount), common.Count(p.CommentsCount)))

	lines := []string{title, meta}
	if ex := common.Sanitize(p.Excerpt); ex != "" {
		lines = append(lines, common.ContentStyle.Render(common.TruncateLines(common.Wrap(ex, width-4), 2)))
	}
	if len(p.Topics) > 0 {
		chips := make([]string, 0, len(p.Topics))
		for _, t := range p.Topics {
			chips = append(chips, common.TopicStyle.Render(t))
		}
		lines = append(lines, strings.Join(chips, " "))
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderPager() string {
	window := m.ctrl.Window()
	if len(window) == 0 {
		return ""
	}
	parts := make([]string, 0, len(window)+2)
	if m.ctrl.HasPrev() {
		parts = append(parts, common.PageStyle.Render("‹"))
	}
	for _, n := range window {
		label := fmt.Sprintf("%d", n+1)
		if n == m.ctrl.Page {
			parts = append(parts, common.CurrentPageStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, common.PageStyle.Render(label))
		}
	}
	if m.ctrl.HasNext() {
		parts = append(parts, common.PageStyle.Render("›"))
	}
	total := common.TimestampStyle.Render(fmt.Sprintf("  %s posts", common.Count(m.ctrl.TotalElements)))
	return strings.Join(parts, "") + total
}

func (m Model) renderTopicPicker() string {
	var b strings.Builder
	b.WriteString(common.PostTitleStyle.Render("Filter by topic"))
	b.WriteString("\n\n")
	if len(m.topics) == 0 {
		b.WriteString(common.TimestampStyle.Render("Loading topics..."))
	}
	for i, t := range m.topics {
		cursor := "  "
		if i == m.topicCursor {
			cursor = common.CursorStyle.Render("> ")
		}
		style := common.TopicStyle
		if slices.Contains(m.topicPending, t.Name) {
			style = common.ActiveTopicStyle
		}
		b.WriteString(cursor + style.Render(t.Name) + "\n")
	}
	b.WriteString(common.StatusBarStyle.Render("space: toggle • enter: apply • esc: cancel"))
	return b.String()
}

func (m Model) hints() string {
	k := m.keys
	if !m.showHints {
		return common.HelpLine(k.Open, k.NextPage, k.PrevPage, k.Search, k.ToggleHints, k.Quit)
	}
	return common.HelpLine(k.Up, k.Down, k.Open, k.Author, k.NextPage, k.PrevPage) + "\n" +
		common.HelpLine(k.Search, k.Topics, k.ClearFilter, k.Refresh, k.NewPost, k.NewPostEditor) + "\n" +
		common.HelpLine(k.Me, k.ToggleHints, k.Quit)
}
