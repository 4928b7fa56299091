package follow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/domain"
)

var viewer = app.Session{AccessToken: "tok", Viewer: domain.UserRef{ID: "me", Name: "Me"}}

func loaded(following bool, followers ...domain.ID) Reconciler {
	stats := domain.FollowStats{}
	for _, id := range followers {
		stats.Followers = append(stats.Followers, domain.UserRef{ID: id})
	}
	return New("target").ApplyStats(stats).ApplyStatus(following)
}

func ok(r domain.FollowToggle) func(Request) (domain.FollowToggle, error) {
	return func(Request) (domain.FollowToggle, error) { return r, nil }
}

func TestToggle_FollowIncrementsAndAppendsViewer(t *testing.T) {
	r := loaded(false, "a", "b")
	var sent Request
	r, err := r.Toggle(viewer, func(req Request) (domain.FollowToggle, error) {
		sent = req
		return domain.FollowToggle{}, nil
	})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if sent.WasFollowing || sent.TargetID != "target" {
		t.Fatalf("request must carry the pre-toggle state: %#v", sent)
	}
	st := r.State()
	if !st.IsFollowing || st.FollowerCount != 3 || len(st.Followers) != 3 || st.Followers[2].ID != "me" {
		t.Fatalf("unexpected state after follow: %#v", st)
	}
}

func TestToggle_UnfollowRemovesServerFollowerID(t *testing.T) {
	r := loaded(true, "a", "me", "b")
	r, err := r.Toggle(viewer, ok(domain.FollowToggle{FollowerID: "me"}))
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	st := r.State()
	if st.IsFollowing || st.FollowerCount != 2 || len(st.Followers) != 2 {
		t.Fatalf("unexpected state after unfollow: %#v", st)
	}
	for _, f := range st.Followers {
		if f.ID == "me" {
			t.Fatalf("viewer must be removed from followers")
		}
	}
}

func TestToggle_RoundTrip(t *testing.T) {
	start := loaded(false, "a")
	r, _ := start.Toggle(viewer, ok(domain.FollowToggle{}))
	r, _ = r.Toggle(viewer, ok(domain.FollowToggle{FollowerID: "me"}))
	if r.State().IsFollowing != start.State().IsFollowing || r.State().FollowerCount != start.State().FollowerCount {
		t.Fatalf("round trip mismatch: %#v vs %#v", r.State(), start.State())
	}
}

func TestToggle_FailureRollsBackToPreCallState(t *testing.T) {
	r := New("target").ApplyStatus(false)
	r.state.FollowerCount = 10

	r, err := r.Toggle(viewer, ok(domain.FollowToggle{}))
	if err != nil || !r.State().IsFollowing || r.State().FollowerCount != 11 {
		t.Fatalf("first toggle: %#v %v", r.State(), err)
	}

	boom := errors.New("network down")
	r, err = r.Toggle(viewer, func(Request) (domain.FollowToggle, error) { return domain.FollowToggle{}, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected failure to be returned, got %v", err)
	}
	if !r.State().IsFollowing || r.State().FollowerCount != 11 {
		t.Fatalf("rollback must restore the pre-second-call state, got %#v", r.State())
	}
	if r.Toggling() {
		t.Fatalf("guard must be cleared after failure")
	}
}

func TestBegin_GuardsAndAuth(t *testing.T) {
	r := loaded(false)
	if _, _, err := r.Begin(app.Session{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}

	r, _, err := r.Begin(viewer)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if !r.State().IsFollowing || r.State().FollowerCount != 1 {
		t.Fatalf("tentative state must be applied immediately: %#v", r.State())
	}
	again, _, err := r.Begin(viewer)
	if !errors.Is(err, domain.ErrToggleInProgress) {
		t.Fatalf("expected in-progress error, got %v", err)
	}
	if again.State().IsFollowing != r.State().IsFollowing || again.State().FollowerCount != r.State().FollowerCount {
		t.Fatalf("rejected begin must not mutate")
	}
}

func TestApplyStatusWhileToggling_Ignored(t *testing.T) {
	r, _, _ := loaded(false).Begin(viewer)
	r = r.ApplyStatus(false)
	if !r.State().IsFollowing || r.State().FollowerCount != 1 {
		t.Fatalf("late status must not clobber a pending toggle: %#v", r.State())
	}
}

func TestApplyStatsWhileToggling_KeepsCountConsistent(t *testing.T) {
	others := make([]domain.UserRef, 10)
	for i := range others {
		others[i] = domain.UserRef{ID: domain.ID(fmt.Sprintf("u%d", i))}
	}

	r, _, err := New("target").ApplyStatus(false).Begin(viewer)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	r = r.ApplyStats(domain.FollowStats{Followers: others})
	if !r.State().IsFollowing || r.State().FollowerCount != 11 {
		t.Fatalf("stats during toggle must keep the pending flip: %#v", r.State())
	}

	done := r.Finish(domain.FollowToggle{}, nil)
	if !done.State().IsFollowing || done.State().FollowerCount != 11 || len(done.State().Followers) != 11 {
		t.Fatalf("after success want 11 followers, got %#v", done.State())
	}

	failed := r.Finish(domain.FollowToggle{}, errors.New("boom"))
	if failed.State().IsFollowing || failed.State().FollowerCount != 10 || len(failed.State().Followers) != 10 {
		t.Fatalf("rollback must land on the loaded stats, got %#v", failed.State())
	}
}

func TestFinishWithoutPending_NoOp(t *testing.T) {
	r := loaded(true, "x")
	after := r.Finish(domain.FollowToggle{}, errors.New("late"))
	if after.State().IsFollowing != true || after.State().FollowerCount != 1 {
		t.Fatalf("stray finish must not change state")
	}
}

func TestUnfollow_CountNeverNegative(t *testing.T) {
	r := New("t").ApplyStatus(true)
	r, _ = r.Toggle(viewer, ok(domain.FollowToggle{}))
	if r.State().FollowerCount != 0 {
		t.Fatalf("count must clamp at zero, got %d", r.State().FollowerCount)
	}
}
