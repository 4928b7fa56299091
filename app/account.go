package app

import (
	"context"

	"github.com/CrestNiraj12/termblog/domain"
)

// UserService reads and updates user profiles.
type UserService interface {
	// UserByID returns a user's public profile.
	UserByID(ctx context.Context, id domain.ID) (domain.Profile, error)

	// Me returns the viewer's own profile.
	Me(ctx context.Context) (domain.Profile, error)

	// UpdateProfile updates the viewer's name, bio and avatar.
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) error
}

// FollowService reads and toggles follow relationships.
type FollowService interface {
	// FollowStats returns the follower and following lists of a user.
	FollowStats(ctx context.Context, userID domain.ID) (domain.FollowStats, error)

	// IsFollowing reports whether the viewer follows userID.
	IsFollowing(ctx context.Context, userID domain.ID) (bool, error)

	// ToggleFollow flips the relationship. currentlyFollowing is the state
	// before the toggle; the backend uses it to decide follow vs unfollow.
	ToggleFollow(ctx context.Context, userID domain.ID, currentlyFollowing bool) (domain.FollowToggle, error)
}
