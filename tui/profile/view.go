package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// View renders the profile view.
func (m Model) View() string {
	width := m.contentWidth()
	if m.loading && m.profile.ID.IsZero() {
		return "\n " + m.spinner.View() + " Loading profile...\n"
	}
	if m.loadErr != nil {
		msg := "This profile could not be loaded."
		if errors.Is(m.loadErr, domain.ErrNotFound) {
			msg = "This user does not exist."
		}
		panel := common.PanelStyle.Width(width).Render(
			common.ErrorStyle.Render(msg) + "\n" +
				common.TimestampStyle.Render(m.loadErr.Error()),
		)
		return "\n" + panel + "\n" + common.StatusBarStyle.Render(common.HelpLine(m.keys.Refresh, m.keys.Back))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.renderEditForm(width))
	} else {
		b.WriteString(m.renderTabs())
		b.WriteString("\n\n")
		b.WriteString(m.renderList(width))
	}
	b.WriteString("\n")
	b.WriteString(common.StatusBarStyle.Render(m.footer()))
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(min(m.width-4, 100), 20)
}

func (m Model) renderHeader(width int) string {
	p := m.profile
	st := m.follow.State()

	name := common.Sanitize(p.Name)
	if name == "" {
		name = domain.AnonymousName
	}
	title := common.AppTitleStyle.Render(name)
	if m.isOwn() {
		title += " " + common.TimestampStyle.Render("(you)")
	} else if m.deps.Session.Authenticated() {
		label := "Follow"
		if st.IsFollowing {
			label = "Following"
		}
		if m.follow.Toggling() {
			label += "…"
		}
		title += "  " + common.LinkStyle.Render("["+label+"]")
	}

	lines := []string{title}
	if bio := common.Sanitize(p.Bio); bio != "" {
		lines = append(lines, common.ContentStyle.Render(common.Wrap(bio, width-4)))
	}
	if p.Avatar != "" {
		lines = append(lines, common.TimestampStyle.Render("avatar: "+common.Clamp(p.Avatar, width-12)))
	}
	lines = append(lines, common.TaglineStyle.Render(fmt.Sprintf("%s followers · %s following · %s posts",
		common.Count(st.FollowerCount), common.Count(st.FollowingCount), common.Count(m.ctrl.TotalElements))))
	return common.PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, 3)
	for _, t := range []tab{postsTab, followersTab, followingTab} {
		if t == m.tab {
			parts = append(parts, common.ActiveTopicStyle.Render(t.String()))
		} else {
			parts = append(parts, common.TopicStyle.Render(t.String()))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (m Model) renderList(width int) string {
	st := m.follow.State()
	switch m.tab {
	case followersTab:
		return m.renderUsers(st.Followers, "No followers yet.")
	case followingTab:
		return m.renderUsers(st.Following, "Not following anyone yet.")
	}

	switch {
	case m.postsErr != nil:
		return " " + common.ErrorStyle.Render("Could not load posts: "+m.postsErr.Error())
	case m.postsLoading && len(m.items) == 0:
		return " " + m.spinner.View() + " Loading posts..."
	case len(m.items) == 0:
		return " " + common.TimestampStyle.Render("No posts yet.")
	}

	var b strings.Builder
	for i, p := range m.items {
		cursor := "  "
		style := common.UnselectedStyle
		if i == m.cursor {
			cursor = common.CursorStyle.Render("▸ ")
			style = common.SelectedStyle
		}
		line := common.PostTitleStyle.Render(common.Clamp(common.Sanitize(p.Title), width-24))
		if rel := common.Relative(p.CreatedAt); rel != "" {
			line += common.TimestampStyle.Render(" · " + rel)
		}
		line += common.TimestampStyle.Render(fmt.Sprintf(" · %s comments", common.Count(p.CommentsCount)))
		b.WriteString(style.Render(cursor + line))
		b.WriteString("\n")
	}
	if m.ctrl.TotalPages > 1 {
		b.WriteString(common.PageStyle.Render(fmt.Sprintf(" page %d of %d", m.ctrl.Page+1, m.ctrl.TotalPages)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderUsers(users []domain.UserRef, empty string) string {
	if len(users) == 0 {
		return " " + common.TimestampStyle.Render(empty)
	}
	lines := make([]string, 0, len(users))
	for i, u := range users {
		cursor := "  "
		if i == m.cursor {
			cursor = common.CursorStyle.Render("▸ ")
		}
		lines = append(lines, cursor+common.AuthorStyle.Render(domain.DisplayName(&u)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEditForm(width int) string {
	lines := []string{common.PostTitleStyle.Render("Edit profile")}
	for _, in := range m.inputs {
		in.Width = width - 12
		lines = append(lines, in.View())
	}
	if m.saving {
		lines = append(lines, m.spinner.View()+" Saving...")
	}
	return common.PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) footer() string {
	var parts []string
	if m.notice != "" {
		parts = append(parts, common.WarningStyle.Render(m.notice))
	}
	if m.editing {
		parts = append(parts, common.HelpLine(m.keys.Submit, m.keys.Cancel)+" • tab: next field")
		return strings.Join(parts, "\n")
	}
	bindings := []key.Binding{m.keys.Tab, m.keys.Open}
	if m.tab == postsTab {
		bindings = append(bindings, m.keys.NextPage, m.keys.PrevPage)
	}
	if m.isOwn() {
		bindings = append(bindings, m.keys.Edit)
	} else {
		bindings = append(bindings, m.keys.Follow)
	}
	bindings = append(bindings, m.keys.Refresh, m.keys.Back)
	parts = append(parts, common.HelpLine(bindings...))
	return strings.Join(parts, "\n")
}
