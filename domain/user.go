package domain

import (
	"strings"
	"time"
)

// AnonymousName is shown for comments and posts whose author is missing.
const AnonymousName = "Anonymous"

// UserRef is the compact user identity embedded in posts, comments and
// follower lists.
type UserRef struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// DisplayName returns the author's name, or the anonymous placeholder when
// the author was deleted or never set.
func DisplayName(u *UserRef) string {
	if u == nil || strings.TrimSpace(u.Name) == "" {
		return AnonymousName
	}
	return u.Name
}

// Initials returns up to two upper-case letters for avatar fallbacks.
func Initials(u *UserRef) string {
	if u == nil {
		return "??"
	}
	r := []rune(strings.TrimSpace(u.Name))
	if len(r) == 0 {
		return "??"
	}
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// Profile is a user's public profile.
type Profile struct {
	ID     ID
	Name   string
	Email  string
	Avatar string
	Bio    string
	Gender string
	DOB    time.Time
}

// Ref returns the compact identity for the profile.
func (p Profile) Ref() UserRef {
	return UserRef{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name   string
	Avatar string
	Bio    string
}

// FollowStats lists the users following and followed by a profile owner.
type FollowStats struct {
	Followers []UserRef
	Following []UserRef
}

// FollowToggle is the backend's answer to a follow toggle request.
type FollowToggle struct {
	// FollowerID is the id of the follower entry affected by the toggle.
	FollowerID ID
}
