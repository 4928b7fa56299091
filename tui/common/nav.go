package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/domain"
)

// Navigation messages are emitted by views and handled by the root model.

// OpenPostMsg asks the root to show a post.
type OpenPostMsg struct {
	ID domain.ID
}

// OpenProfileMsg asks the root to show a profile. An empty ID means the
// viewer's own profile.
type OpenProfileMsg struct {
	ID domain.ID
}

// ComposeMsg asks the root to open the new post form.
type ComposeMsg struct {
	UseEditor bool
}

// BackMsg returns to the previous view.
type BackMsg struct{}

// StatusMsg sets the transient status bar text.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// FilterChangedMsg reports a new listing filter so it can be persisted.
type FilterChangedMsg struct {
	Filter domain.PostFilter
}

// PostDeletedMsg reports that a post is gone so lists can drop it.
type PostDeletedMsg struct {
	ID domain.ID
}

// PostCreatedMsg reports a newly published post.
type PostCreatedMsg struct {
	Post domain.PostSummary
}

// Emit wraps msg in a command for immediate delivery.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Status is a shortcut for emitting a StatusMsg.
func Status(text string, isErr bool) tea.Cmd {
	return Emit(StatusMsg{Text: text, IsErr: isErr})
}

// ProfileUpdatedMsg reports that the viewer saved their profile.
type ProfileUpdatedMsg struct {
	Profile domain.Profile
}
