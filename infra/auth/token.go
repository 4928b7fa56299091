package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

// TokenProvider supplies an access token for API authentication. An empty
// token with a nil error means the request goes out unauthenticated.
type TokenProvider interface {
	AccessToken() (string, error)
}

// sessionBlob is the persisted auth state written by the web login flow.
type sessionBlob struct {
	AccessToken string `json:"accessToken"`
	User        *struct {
		ID     domain.ID `json:"id"`
		Name   string    `json:"name"`
		Avatar string    `json:"avatar"`
	} `json:"user"`
}

// FileSessionStore reads the session blob from a JSON file on disk.
type FileSessionStore struct {
	path string
	now  func() time.Time
}

// NewFileSessionStore creates a store backed by path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path, now: time.Now}
}

// Load returns the stored session. A missing file or an expired token is an
// anonymous session, not an error.
func (f *FileSessionStore) Load() (app.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return app.Session{}, nil
	}
	if err != nil {
		return app.Session{}, fmt.Errorf("reading session from %s: %w", f.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return app.Session{}, nil
	}

	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return app.Session{}, fmt.Errorf("parsing session %s: %w", f.path, err)
	}
	s := app.Session{AccessToken: strings.TrimSpace(blob.AccessToken)}
	if s.AccessToken == "" || tokenExpired(s.AccessToken, f.now()) {
		return app.Session{}, nil
	}
	if blob.User != nil {
		s.Viewer = domain.UserRef{ID: blob.User.ID, Name: blob.User.Name, Avatar: blob.User.Avatar}
	}
	return s, nil
}

// Save writes the session back, e.g. after the viewer edits their profile.
func (f *FileSessionStore) Save(s app.Session) error {
	blob := sessionBlob{AccessToken: s.AccessToken}
	blob.User = &struct {
		ID     domain.ID `json:"id"`
		Name   string    `json:"name"`
		Avatar string    `json:"avatar"`
	}{ID: s.Viewer.ID, Name: s.Viewer.Name, Avatar: s.Viewer.Avatar}

	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session to %s: %w", f.path, err)
	}
	return nil
}

// AccessToken returns the stored token, or "" when signed out.
func (f *FileSessionStore) AccessToken() (string, error) {
	s, err := f.Load()
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

// StaticToken is a fixed TokenProvider.
type StaticToken string

// AccessToken returns the token.
func (s StaticToken) AccessToken() (string, error) { return strings.TrimSpace(string(s)), nil }
