package profile

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/tui/common"
)

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profileLoadedMsg:
		if msg.ID != m.requested {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, nil
		}
		m.loadErr = nil
		m.profile = msg.Profile
		if m.userID.IsZero() && !msg.Profile.ID.IsZero() {
			// Own profile: the id is only known now.
			m.userID = msg.Profile.ID
			m.follow = m.follow.Reset(m.userID)
			cmds := m.fetchRelations()
			return m, tea.Batch(append(cmds, m.fetchPosts())...)
		}
		return m, nil

	case statsLoadedMsg:
		if msg.ID != m.userID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Printf("profile: follow stats for %s: %v", msg.ID, msg.Err)
			return m, nil
		}
		m.follow = m.follow.ApplyStats(msg.Stats)
		m.clampCursor()
		return m, nil

	case statusLoadedMsg:
		if msg.ID != m.userID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Printf("profile: follow status for %s: %v", msg.ID, msg.Err)
			return m, nil
		}
		m.follow = m.follow.ApplyStatus(msg.Following)
		return m, nil

	case followResultMsg:
		if msg.TargetID != m.follow.State().TargetID {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Printf("profile: follow toggle for %s: %v", msg.TargetID, msg.Err)
		}
		m.follow = m.follow.Finish(msg.Result, msg.Err)
		m.clampCursor()
		return m, nil

	case postsLoadedMsg:
		if msg.UserID != m.userID || msg.Seq != m.ctrl.Seq {
			return m, nil
		}
		m.postsLoading = false
		if msg.Err != nil {
			m.postsErr = msg.Err
			return m, nil
		}
		m.ctrl, _ = m.ctrl.Apply(msg.Page, msg.Seq)
		m.postsErr = nil
		m.items = msg.Page.Content
		if m.tab == postsTab {
			m.cursor = 0
		}
		return m, nil

	case profileSavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.notice = "Could not save profile: " + msg.Err.Error()
			return m, nil
		}
		m.editing = false
		m.profile.Name = msg.Update.Name
		m.profile.Bio = msg.Update.Bio
		m.profile.Avatar = msg.Update.Avatar
		m.notice = ""
		return m, tea.Batch(
			common.Emit(common.ProfileUpdatedMsg{Profile: m.profile}),
			common.Status("Profile saved.", false),
		)

	case common.PostDeletedMsg:
		for i, p := range m.items {
			if p.ID == msg.ID {
				m.items = append(m.items[:i:i], m.items[i+1:]...)
				m.clampCursor()
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, common.Emit(common.BackMsg{})

	case m.loadErr != nil:
		if key.Matches(msg, m.keys.Refresh) {
			m.loading = true
			m.loadErr = nil
			return m, m.Init()
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % 3
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()

	case key.Matches(msg, m.keys.NextPage):
		if m.tab != postsTab {
			break
		}
		next, ok := m.ctrl.Next()
		if !ok {
			break
		}
		m.ctrl = next
		m.postsLoading = true
		return m, m.fetchPosts()

	case key.Matches(msg, m.keys.PrevPage):
		if m.tab != postsTab {
			break
		}
		prev, ok := m.ctrl.Prev()
		if !ok {
			break
		}
		m.ctrl = prev
		m.postsLoading = true
		return m, m.fetchPosts()

	case key.Matches(msg, m.keys.Follow):
		return m.toggleFollow()

	case key.Matches(msg, m.keys.Edit):
		if !m.isOwn() || m.loading {
			break
		}
		m.editing = true
		m.inputs = newInputs(m.profile)
		m.focus = fieldName
		m.notice = ""
		return m, m.inputs[m.focus].Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.ctrl = m.ctrl.GoTo(m.ctrl.Page)
		return m, m.Init()
	}
	return m, nil
}

func (m Model) toggleFollow() (Model, tea.Cmd) {
	if m.isOwn() || m.userID.IsZero() {
		return m, nil
	}
	next, req, err := m.follow.Begin(m.deps.Session)
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		m.notice = "Log in to follow users."
		return m, nil
	case err != nil:
		return m, nil
	}
	m.follow = next
	m.notice = ""
	return m, m.sendFollowToggle(req)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !m.saving {
			m.editing = false
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.saving {
			return m, nil
		}
		upd := domain.ProfileUpdate{
			Name:   strings.TrimSpace(m.inputs[fieldName].Value()),
			Bio:    strings.TrimSpace(m.inputs[fieldBio].Value()),
			Avatar: strings.TrimSpace(m.inputs[fieldAvatar].Value()),
		}
		if upd.Name == "" {
			m.notice = "Name cannot be empty."
			return m, nil
		}
		m.saving = true
		return m, m.saveProfile(upd)
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		m.inputs[m.focus].Blur()
		if msg.Type == tea.KeyTab {
			m.focus = (m.focus + 1) % fieldCount
		} else {
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		}
		return m, m.inputs[m.focus].Focus()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) listLen() int {
	st := m.follow.State()
	switch m.tab {
	case followersTab:
		return len(st.Followers)
	case followingTab:
		return len(st.Following)
	default:
		return len(m.items)
	}
}

func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, max(m.listLen()-1, 0))
}

func (m Model) openSelected() tea.Cmd {
	st := m.follow.State()
	switch m.tab {
	case followersTab:
		if m.cursor < len(st.Followers) {
			return common.Emit(common.OpenProfileMsg{ID: st.Followers[m.cursor].ID})
		}
	case followingTab:
		if m.cursor < len(st.Following) {
			return common.Emit(common.OpenProfileMsg{ID: st.Following[m.cursor].ID})
		}
	default:
		if m.cursor < len(m.items) {
			return common.Emit(common.OpenPostMsg{ID: m.items[m.cursor].ID})
		}
	}
	return nil
}
