package state

import (
	"testing"

	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/needs"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

func TestEnsureCreatesSatisfiedAgent(t *testing.T) {
	s := NewStore(needs.DefaultThresholds())
	id := uuid.New()

	a := s.Ensure(id)
	if a == nil || a.ID != id {
		t.Fatalf("ensure returned wrong entry")
	}
	if a.Needs.Hunger() != 100 || a.Needs.Thirst() != 100 {
		t.Fatalf("new agents start fully satisfied")
	}
	if a.InPack() {
		t.Fatalf("new agents are packless")
	}

	// Second ensure returns the same entry.
	a.Needs.SetHunger(40)
	if again := s.Ensure(id); again.Needs.Hunger() != 40 {
		t.Fatalf("ensure must not reset existing state")
	}
}

func TestEnsureForUsesGivenThresholds(t *testing.T) {
	s := NewStore(needs.DefaultThresholds())

	custom := needs.DefaultThresholds()
	custom.Hungry = 55
	a := s.EnsureFor(uuid.New(), custom)

	a.Needs.SetHunger(52)
	if !a.Needs.Hungry() {
		t.Fatalf("52 is below the authored cutoff of 55")
	}

	// The store default would not fire at 52.
	b := s.Ensure(uuid.New())
	b.Needs.SetHunger(52)
	if b.Needs.Hungry() {
		t.Fatalf("default cutoff is 50; 52 should not read hungry")
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(needs.DefaultThresholds())
	id := uuid.New()
	s.Ensure(id)
	s.Remove(id)
	if s.Get(id) != nil {
		t.Fatalf("removed agent still present")
	}
	if s.Len() != 0 {
		t.Fatalf("store not empty")
	}
}

func TestNestLifecycle(t *testing.T) {
	var n NestRecord
	if n.Complete() {
		t.Fatalf("empty record cannot be complete")
	}

	loc := vecmath.New(4, 1, 9)
	n.Establish(loc)
	if !n.Active || n.Location != loc {
		t.Fatalf("establish failed: %+v", n)
	}

	n.AddMaterial()
	n.AddMaterial()
	if n.Materials != 2 {
		t.Fatalf("materials: got %d", n.Materials)
	}

	n.AdvanceProgress(60)
	if n.Complete() {
		t.Fatalf("60%% progress is not complete")
	}
	n.AdvanceProgress(70)
	if n.Progress != 100 {
		t.Fatalf("progress must clamp at 100, got %f", n.Progress)
	}
	if !n.Complete() {
		t.Fatalf("full progress should be complete")
	}

	n.Disturb(500)
	if n.LastDisturbedTick != 500 {
		t.Fatalf("disturbance tick not recorded")
	}
	n.Abandon()
	if n.Active || n.Materials != 0 || n.Progress != 0 {
		t.Fatalf("abandon must reset the record: %+v", n)
	}
}
