package app

import (
	"strings"

	"github.com/CrestNiraj12/termblog/domain"
)

// Session is the viewer's identity, passed explicitly to every component
// that needs it.
type Session struct {
	AccessToken string
	Viewer      domain.UserRef
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

// IsViewer reports whether id belongs to the signed-in user.
func (s Session) IsViewer(id domain.ID) bool {
	return s.Authenticated() && !id.IsZero() && s.Viewer.ID == id
}
