package registry

import (
	"testing"

	"adfilter/internal/domain"
)

type fakePredicate struct {
	name    string
	ignores map[string]bool
}

func (f *fakePredicate) Name() string { return f.name }

func (f *fakePredicate) ShouldIgnore(msg *domain.Message) bool {
	return f.ignores[msg.ID]
}

func TestAddIsIdempotent(t *testing.T) {
	r := New()
	p := &fakePredicate{name: "a"}

	r.Add(p)
	r.Add(p)
	r.Add(&fakePredicate{name: "a"})

	if r.Len() != 1 {
		t.Errorf("Len() = %d after duplicate adds, want 1", r.Len())
	}
}

func TestRemoveLeavesOthers(t *testing.T) {
	r := New()
	r.Add(&fakePredicate{name: "a"})
	r.Add(&fakePredicate{name: "b"})
	r.Add(&fakePredicate{name: "c"})

	r.Remove("b")

	if r.Len() != 2 || r.Contains("b") {
		t.Errorf("after Remove(b): Len=%d Contains(b)=%v", r.Len(), r.Contains("b"))
	}
	if !r.Contains("a") || !r.Contains("c") {
		t.Error("Remove must not touch other predicates")
	}

	// Removing a name that is not registered does nothing.
	r.Remove("b")
	if r.Len() != 2 {
		t.Errorf("Len() = %d after removing absent name, want 2", r.Len())
	}
}

func TestIgnoredByProvenance(t *testing.T) {
	r := New()
	r.Add(&fakePredicate{name: "spam", ignores: map[string]bool{"m1": true}})
	r.Add(&fakePredicate{name: "adverts", ignores: map[string]bool{"m1": true, "m2": true}})

	// First registered predicate wins for m1.
	if name, ok := r.IgnoredBy(&domain.Message{ID: "m1"}); !ok || name != "spam" {
		t.Errorf("IgnoredBy(m1) = %q,%v, want spam,true", name, ok)
	}
	if name, ok := r.IgnoredBy(&domain.Message{ID: "m2"}); !ok || name != "adverts" {
		t.Errorf("IgnoredBy(m2) = %q,%v, want adverts,true", name, ok)
	}
	if _, ok := r.IgnoredBy(&domain.Message{ID: "m3"}); ok {
		t.Error("IgnoredBy(m3) should report not ignored")
	}

	if !r.IsIgnored(&domain.Message{ID: "m2"}) || r.IsIgnored(&domain.Message{ID: "m3"}) {
		t.Error("IsIgnored disagrees with IgnoredBy")
	}
}
