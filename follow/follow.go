// Package follow keeps the viewer's follow relationship with a profile
// owner consistent with the follower count and follower list shown for it.
package follow

import (
	"context"
	"slices"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
	"github.com/CrestNiraj12/termblog/optimistic"
)

// State is the follow relationship between the viewer and TargetID.
type State struct {
	TargetID       domain.ID
	IsFollowing    bool
	FollowerCount  int
	FollowingCount int
	Followers      []domain.UserRef
	Following      []domain.UserRef
}

// Request describes the toggle to send. WasFollowing is the state before
// the toggle; the backend uses it to choose follow or unfollow.
type Request struct {
	TargetID     domain.ID
	WasFollowing bool
}

// Reconciler owns a State and guards it against overlapping toggles.
type Reconciler struct {
	state    State
	toggling bool
	pending  optimistic.Transition[State]
	viewer   domain.UserRef
}

// New returns a reconciler for target with nothing loaded yet.
func New(target domain.ID) Reconciler {
	return Reconciler{state: State{TargetID: target}}
}

// State is the state to render.
func (r Reconciler) State() State { return r.state }

// Toggling reports whether a toggle is outstanding.
func (r Reconciler) Toggling() bool { return r.toggling }

// Reset drops all state when the viewer navigates to another profile.
func (r Reconciler) Reset(target domain.ID) Reconciler {
	return New(target)
}

// ApplyStats folds in the follower/following lists. Stats and status come
// from independent requests; either may land first. Stats that land during
// a toggle replace the pre-toggle snapshot and the pending flip is applied
// on top of them again.
func (r Reconciler) ApplyStats(stats domain.FollowStats) Reconciler {
	if r.toggling {
		r.pending = optimistic.Begin(withStats(r.pending.Previous(), stats), flip)
		r.state = r.pending.Tentative()
		return r
	}
	r.state = withStats(r.state, stats)
	return r
}

func withStats(s State, stats domain.FollowStats) State {
	s.Followers = slices.Clone(stats.Followers)
	s.Following = slices.Clone(stats.Following)
	s.FollowerCount = len(stats.Followers)
	s.FollowingCount = len(stats.Following)
	return s
}

// ApplyStatus folds in whether the viewer follows the target. A pending
// toggle already decides that, so status is ignored while toggling.
func (r Reconciler) ApplyStatus(isFollowing bool) Reconciler {
	if r.toggling {
		return r
	}
	r.state.IsFollowing = isFollowing
	return r
}

// Begin starts a toggle. It applies the flip and the follower-count change
// right away and returns the request to send. Unauthenticated viewers get
// domain.ErrUnauthenticated and a second call while one is outstanding gets
// domain.ErrToggleInProgress; neither mutates state.
func (r Reconciler) Begin(session app.Session) (Reconciler, Request, error) {
	if !session.Authenticated() {
		return r, Request{}, domain.ErrUnauthenticated
	}
	if r.toggling {
		return r, Request{}, domain.ErrToggleInProgress
	}
	req := Request{TargetID: r.state.TargetID, WasFollowing: r.state.IsFollowing}
	r.pending = optimistic.Begin(r.state, flip)
	r.state = r.pending.Tentative()
	r.toggling = true
	r.viewer = session.Viewer
	return r, req, nil
}

// Finish settles the outstanding toggle. On success the follower list is
// reconciled with the server result; on failure the exact pre-toggle state
// is restored. Finish without a pending toggle is a no-op.
func (r Reconciler) Finish(result domain.FollowToggle, err error) Reconciler {
	if !r.toggling {
		return r
	}
	if err != nil {
		r.state = r.pending.Rollback()
	} else {
		r.state = r.pending.Commit(reconcileFollowers(r.viewer, result))
	}
	r.toggling = false
	r.pending = optimistic.Transition[State]{}
	return r
}

// Toggle is the synchronous form of Begin/Finish, for callers that can block
// on the request.
func (r Reconciler) Toggle(session app.Session, send func(Request) (domain.FollowToggle, error)) (Reconciler, error) {
	if !session.Authenticated() {
		return r, domain.ErrUnauthenticated
	}
	if r.toggling {
		return r, domain.ErrToggleInProgress
	}
	req := Request{TargetID: r.state.TargetID, WasFollowing: r.state.IsFollowing}
	state, err := optimistic.Run(context.Background(), r.state, flip,
		func(context.Context, optimistic.Transition[State]) (func(State) State, error) {
			result, err := send(req)
			if err != nil {
				return nil, err
			}
			return reconcileFollowers(session.Viewer, result), nil
		})
	r.state = state
	return r, err
}

// flip derives the count change from the state before the toggle.
func flip(s State) State {
	if s.IsFollowing {
		s.FollowerCount = max(s.FollowerCount-1, 0)
	} else {
		s.FollowerCount++
	}
	s.IsFollowing = !s.IsFollowing
	return s
}

func reconcileFollowers(viewer domain.UserRef, result domain.FollowToggle) func(State) State {
	return func(s State) State {
		if s.IsFollowing {
			if !slices.ContainsFunc(s.Followers, func(u domain.UserRef) bool { return u.ID == viewer.ID }) {
				s.Followers = append(slices.Clone(s.Followers), viewer)
			}
			return s
		}
		drop := result.FollowerID
		if drop.IsZero() {
			drop = viewer.ID
		}
		s.Followers = slices.DeleteFunc(slices.Clone(s.Followers), func(u domain.UserRef) bool { return u.ID == drop })
		return s
	}
}
