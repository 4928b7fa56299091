package thread

import (
	"reflect"
	"testing"

	"github.com/CrestNiraj12/termblog/domain"
)

func flat(pairs ...[2]string) domain.FlatComments {
	out := make(domain.FlatComments, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Comment{ID: domain.ID(p[0]), ParentID: domain.ID(p[1]), Content: "c" + p[0]})
	}
	return out
}

func ids(cs []domain.Comment) []domain.ID {
	out := make([]domain.ID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestBuild_FlatAttachesRepliesAndDropsOrphans(t *testing.T) {
	roots := Build(flat([2]string{"1", ""}, [2]string{"2", "1"}, [2]string{"3", "1"}, [2]string{"4", "99"}))
	if len(roots) != 1 || roots[0].ID != "1" {
		t.Fatalf("expected single root 1, got %v", ids(roots))
	}
	if got := ids(roots[0].Replies); !reflect.DeepEqual(got, []domain.ID{"2", "3"}) {
		t.Fatalf("unexpected replies: %v", got)
	}
	if Count(roots) != 3 {
		t.Fatalf("orphan must not be counted, got %d", Count(roots))
	}
}

func TestBuild_PreservesRelativeOrder(t *testing.T) {
	roots := Build(flat(
		[2]string{"r2", "r1"},
		[2]string{"r1", ""},
		[2]string{"b", ""},
		[2]string{"b1", "b"},
		[2]string{"r3", "r1"},
	))
	if got := ids(roots); !reflect.DeepEqual(got, []domain.ID{"r1", "b"}) {
		t.Fatalf("roots out of order: %v", got)
	}
	if got := ids(roots[0].Replies); !reflect.DeepEqual(got, []domain.ID{"r2", "r3"}) {
		t.Fatalf("replies out of order: %v", got)
	}
}

func TestBuild_ReplyToReplyIsDropped(t *testing.T) {
	roots := Build(flat([2]string{"1", ""}, [2]string{"2", "1"}, [2]string{"3", "2"}))
	for _, r := range roots {
		for _, rep := range r.Replies {
			if rep.ID == "3" {
				t.Fatalf("third-level reply must be dropped")
			}
			if len(rep.Replies) != 0 {
				t.Fatalf("replies must not carry nested replies")
			}
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	in := flat([2]string{"1", ""}, [2]string{"2", "1"}, [2]string{"5", ""}, [2]string{"6", "5"}, [2]string{"7", "42"})
	a := Build(in)
	b := Build(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("build must be deterministic:\n%#v\n%#v", a, b)
	}
	if in[1].Replies != nil {
		t.Fatalf("build must not mutate input records")
	}
}

func TestBuild_NestedPassesThrough(t *testing.T) {
	nested := domain.NestedComments{
		{ID: "7", Replies: []domain.Comment{{ID: "8"}, {ID: "9"}}},
		{ID: "5", Replies: []domain.Comment{}},
	}
	got := Build(nested)
	if !reflect.DeepEqual(got, []domain.Comment(nested)) {
		t.Fatalf("nested batch must pass through unchanged")
	}
}

func TestBuild_EmptyAndNil(t *testing.T) {
	if got := Build(domain.FlatComments(nil)); len(got) != 0 {
		t.Fatalf("expected empty tree, got %v", got)
	}
	if got := Build(nil); got != nil {
		t.Fatalf("nil batch should build nil tree")
	}
}

func TestClassify(t *testing.T) {
	records := []domain.Comment{{ID: "1"}}
	if _, ok := Classify(records, true).(domain.NestedComments); !ok {
		t.Fatalf("expected nested batch when replies field is present")
	}
	if _, ok := Classify(records, false).(domain.FlatComments); !ok {
		t.Fatalf("expected flat batch when replies field is absent")
	}
	if _, ok := Classify(nil, true).(domain.FlatComments); !ok {
		t.Fatalf("empty input should classify as flat")
	}
}
