package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/termblog/domain"
)

// userService implements app.UserService using the blog API.
type userService struct {
	client *Client
}

// NewUserService creates a UserService backed by the blog API.
func NewUserService(client *Client) *userService {
	return &userService{client: client}
}

func (s *userService) UserByID(ctx context.Context, id domain.ID) (domain.Profile, error) {
	if id.IsZero() {
		return domain.Profile{}, fmt.Errorf("invalid user id")
	}
	return s.fetchProfile(ctx, "/user/"+url.PathEscape(id.String()))
}

func (s *userService) Me(ctx context.Context) (domain.Profile, error) {
	return s.fetchProfile(ctx, "/user/me")
}

func (s *userService) fetchProfile(ctx context.Context, path string) (domain.Profile, error) {
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	u, err := decodeEnvelope[wireUser](http.MethodGet, path, data)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	return mapProfile(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) error {
	body := struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
		Bio    string `json:"bio"`
	}{
		Name:   strings.TrimSpace(upd.Name),
		Avatar: strings.TrimSpace(upd.Avatar),
		Bio:    strings.TrimSpace(upd.Bio),
	}
	if body.Name == "" {
		return fmt.Errorf("name is required")
	}

	const path = "/user"
	data, err := s.client.Put(ctx, path, body)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if _, err := decodeEnvelope[json.RawMessage](http.MethodPut, path, data); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}
