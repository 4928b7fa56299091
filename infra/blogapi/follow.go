package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/CrestNiraj12/termblog/domain"
)

// followService implements app.FollowService using the blog API.
type followService struct {
	client *Client
}

// NewFollowService creates a FollowService backed by the blog API.
func NewFollowService(client *Client) *followService {
	return &followService{client: client}
}

func (s *followService) FollowStats(ctx context.Context, userID domain.ID) (domain.FollowStats, error) {
	if userID.IsZero() {
		return domain.FollowStats{}, fmt.Errorf("invalid user id")
	}
	path := "/user/follow/stats/" + url.PathEscape(userID.String())
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.FollowStats{}, fmt.Errorf("fetching follow stats: %w", err)
	}
	stats, err := decodeEnvelope[struct {
		Follower  []wireUser `json:"follower"`
		Following []wireUser `json:"following"`
	}](http.MethodGet, path, data)
	if err != nil {
		return domain.FollowStats{}, fmt.Errorf("fetching follow stats: %w", err)
	}
	return domain.FollowStats{
		Followers: mapUserRefs(stats.Follower),
		Following: mapUserRefs(stats.Following),
	}, nil
}

func (s *followService) IsFollowing(ctx context.Context, userID domain.ID) (bool, error) {
	if userID.IsZero() {
		return false, fmt.Errorf("invalid user id")
	}
	path := "/user/follow/check/" + url.PathEscape(userID.String())
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return false, fmt.Errorf("checking follow status: %w", err)
	}
	following, err := decodeEnvelope[bool](http.MethodGet, path, data)
	if err != nil {
		return false, fmt.Errorf("checking follow status: %w", err)
	}
	return following, nil
}

func (s *followService) ToggleFollow(ctx context.Context, userID domain.ID, currentlyFollowing bool) (domain.FollowToggle, error) {
	if userID.IsZero() {
		return domain.FollowToggle{}, fmt.Errorf("invalid user id")
	}
	body := struct {
		TargetID    domain.ID `json:"targetId"`
		IsFollowing bool      `json:"isFollowing"`
	}{TargetID: userID, IsFollowing: currentlyFollowing}

	const path = "/user/follow/toggle"
	data, err := s.client.Post(ctx, path, body)
	if err != nil {
		return domain.FollowToggle{}, fmt.Errorf("toggling follow: %w", err)
	}
	raw, err := decodeEnvelope[json.RawMessage](http.MethodPost, path, data)
	if err != nil {
		return domain.FollowToggle{}, fmt.Errorf("toggling follow: %w", err)
	}

	var out struct {
		FollowerID domain.ID `json:"followerId"`
	}
	// A null or non-object payload still means success.
	if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return domain.FollowToggle{}, fmt.Errorf("toggling follow: decoding %s %s: %w", http.MethodPost, path, err)
		}
	}
	return domain.FollowToggle{FollowerID: out.FollowerID}, nil
}
