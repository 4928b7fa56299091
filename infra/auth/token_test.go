package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristalhq/jwt/v5"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

func TestFileSessionStore_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	blob := `{"accessToken":"  abc123 \n","user":{"id":42,"name":"Thai","avatar":"https://a/x.png"}}`
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatalf("write session failed: %v", err)
	}

	s, err := NewFileSessionStore(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.AccessToken != "abc123" || s.Viewer.ID != "42" || s.Viewer.Name != "Thai" {
		t.Fatalf("unexpected session: %#v", s)
	}
	if !s.Authenticated() || !s.IsViewer("42") {
		t.Fatalf("session should be authenticated as 42")
	}
}

func TestFileSessionStore_MissingIsAnonymous(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "missing.json"))
	s, err := store.Load()
	if err != nil {
		t.Fatalf("missing session must not error: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("missing session must be anonymous")
	}
	tok, err := store.AccessToken()
	if err != nil || tok != "" {
		t.Fatalf("expected empty token, got %q %v", tok, err)
	}
}

func TestFileSessionStore_CorruptAndRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	want := app.Session{AccessToken: "tok", Viewer: domain.UserRef{ID: "7", Name: "N", Avatar: "a"}}
	if err := store.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load()
	if err != nil || got != want {
		t.Fatalf("round trip mismatch: %#v %v", got, err)
	}

	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt session failed: %v", err)
	}
	_, err = store.Load()
	if err == nil || !strings.Contains(err.Error(), "parsing session") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	signer, err := jwt.NewSignerHS(jwt.HS256, []byte("test-secret"))
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	token, err := jwt.NewBuilder(signer).Build(&jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token.String()
}

func TestFileSessionStore_ExpiredJWTIsAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileSessionStore(path)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	expired := app.Session{AccessToken: signedToken(t, now.Add(-time.Hour)), Viewer: domain.UserRef{ID: "42"}}
	if err := store.Save(expired); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	s, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expired token must load as anonymous: %#v", s)
	}

	valid := app.Session{AccessToken: signedToken(t, now.Add(time.Hour)), Viewer: domain.UserRef{ID: "42"}}
	if err := store.Save(valid); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	s, err = store.Load()
	if err != nil || !s.Authenticated() {
		t.Fatalf("valid token must stay authenticated: %#v %v", s, err)
	}
}

func TestTokenExpired_OpaqueTokenNeverExpires(t *testing.T) {
	if tokenExpired("abc123", time.Now()) {
		t.Fatal("opaque token must not be treated as expired")
	}
}
