package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/tui/compose"
	"github.com/CrestNiraj12/termblog/tui/detail"
	"github.com/CrestNiraj12/termblog/tui/profile"
)

// screen is a view that can sit on the navigation stack.
type screen interface {
	init() tea.Cmd
	update(tea.Msg) (screen, tea.Cmd)
	view() string
	capturing() bool
}

type detailScreen struct{ m detail.Model }

func (s detailScreen) init() tea.Cmd   { return s.m.Init() }
func (s detailScreen) view() string    { return s.m.View() }
func (s detailScreen) capturing() bool { return s.m.Capturing() }
func (s detailScreen) update(msg tea.Msg) (screen, tea.Cmd) {
	m, cmd := s.m.Update(msg)
	return detailScreen{m}, cmd
}

type profileScreen struct{ m profile.Model }

func (s profileScreen) init() tea.Cmd   { return s.m.Init() }
func (s profileScreen) view() string    { return s.m.View() }
func (s profileScreen) capturing() bool { return s.m.Capturing() }
func (s profileScreen) update(msg tea.Msg) (screen, tea.Cmd) {
	m, cmd := s.m.Update(msg)
	return profileScreen{m}, cmd
}

type composeScreen struct{ m compose.Model }

func (s composeScreen) init() tea.Cmd   { return s.m.Init() }
func (s composeScreen) view() string    { return s.m.View() }
func (s composeScreen) capturing() bool { return s.m.Capturing() }
func (s composeScreen) update(msg tea.Msg) (screen, tea.Cmd) {
	m, cmd := s.m.Update(msg)
	return composeScreen{m}, cmd
}
