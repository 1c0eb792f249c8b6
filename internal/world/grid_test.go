package world

import (
	"testing"

	"github.com/neilhuang007/better-ecology-sub002/internal/prey"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// The grid doubles as the selector's population source.
var _ prey.Population = (*Grid)(nil)

func animal(id, species string, x, z float64) *Entity {
	return &Entity{
		ID:      id,
		Species: species,
		Kind:    KindAnimal,
		Pos:     vecmath.New(x, 0, z),
		Health:  10, MaxHealth: 10,
	}
}

func TestGridNearbyOfKind(t *testing.T) {
	g := NewGrid(8)
	g.Insert(animal("r1", "rabbit", 1, 1))
	g.Insert(animal("r2", "rabbit", 5, 0))
	g.Insert(animal("w1", "wolf", 3, 0))
	g.Insert(animal("far", "rabbit", 100, 100))
	g.Insert(&Entity{ID: "grass", Kind: KindPlant, Pos: vecmath.New(2, 0, 0)})

	center := vecmath.New(0, 0, 0)
	got := g.NearbyOfKind(center, 10, KindAnimal, nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 animals, got %d", len(got))
	}
	// Sorted by distance.
	if got[0].ID != "r1" || got[1].ID != "w1" || got[2].ID != "r2" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}

	onlyRabbits := g.NearbyOfKind(center, 10, KindAnimal, func(e *Entity) bool {
		return e.Species == "rabbit"
	})
	if len(onlyRabbits) != 2 {
		t.Fatalf("predicate filter failed, got %d", len(onlyRabbits))
	}

	plants := g.NearbyOfKind(center, 10, KindPlant, nil)
	if len(plants) != 1 || plants[0].ID != "grass" {
		t.Fatalf("kind filter failed")
	}
}

func TestGridNearbySameSpeciesExcludesSelfAndDead(t *testing.T) {
	g := NewGrid(8)
	self := animal("r1", "rabbit", 0, 0)
	dead := animal("r3", "rabbit", 2, 0)
	dead.Dead = true
	g.Insert(self)
	g.Insert(animal("r2", "rabbit", 1, 0))
	g.Insert(dead)
	g.Insert(animal("w1", "wolf", 1, 1))

	got := g.NearbySameSpecies(self, 10)
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("expected only live conspecific r2, got %d results", len(got))
	}
}

func TestGridMovedUpdatesBuckets(t *testing.T) {
	g := NewGrid(8)
	e := animal("r1", "rabbit", 0, 0)
	g.Insert(e)

	oldPos := e.Pos
	e.Pos = vecmath.New(50, 0, 50)
	g.Moved("r1", oldPos)

	if got := g.NearbyOfKind(vecmath.New(0, 0, 0), 5, KindAnimal, nil); len(got) != 0 {
		t.Fatalf("entity still found at old position")
	}
	if got := g.NearbyOfKind(vecmath.New(50, 0, 50), 5, KindAnimal, nil); len(got) != 1 {
		t.Fatalf("entity not found at new position")
	}
}

func TestGridRemove(t *testing.T) {
	g := NewGrid(8)
	g.Insert(animal("r1", "rabbit", 0, 0))
	g.Remove("r1")
	if g.Len() != 0 {
		t.Fatalf("remove failed")
	}
	if _, ok := g.EntityByID("r1"); ok {
		t.Fatalf("lookup should fail after remove")
	}
}

func TestPopulationRatio(t *testing.T) {
	g := NewGrid(8)
	g.SetExpectedPopulation("rabbit", 10)
	for i := 0; i < 3; i++ {
		g.Insert(animal(string(rune('a'+i)), "rabbit", float64(i), 0))
	}

	center := vecmath.New(0, 0, 0)
	if got := g.Ratio("rabbit", center, 20); got != 0.3 {
		t.Fatalf("ratio: got %f want 0.3", got)
	}
	// Species without expectation data reads healthy.
	if got := g.Ratio("deer", center, 20); got != 1 {
		t.Fatalf("unknown species should read 1, got %f", got)
	}
}

func TestDirectNavigatorWalksToTarget(t *testing.T) {
	g := NewGrid(8)
	e := animal("r1", "rabbit", 0, 0)
	e.MaxSpeed = 1
	g.Insert(e)
	nav := NewDirectNavigator(e, g)

	if !nav.MoveTo(vecmath.New(5, 0, 0), 1) {
		t.Fatalf("move request refused")
	}
	if nav.IsIdle() {
		t.Fatalf("navigator should be busy")
	}
	for i := 0; i < 10 && !nav.IsIdle(); i++ {
		nav.Advance()
	}
	if !nav.IsIdle() {
		t.Fatalf("never arrived")
	}
	if e.Pos.Distance(vecmath.New(5, 0, 0)) > 1e-9 {
		t.Fatalf("wrong final position %+v", e.Pos)
	}
	if !e.Vel.IsZero() {
		t.Fatalf("velocity should clear on arrival")
	}
}

func TestVegetationDeterministic(t *testing.T) {
	a := NewVegetation(42, 0)
	b := NewVegetation(42, 0)
	if a.Density(3, 7) != b.Density(3, 7) {
		t.Fatalf("same seed must give same density")
	}
	d := a.Density(12, -4)
	if d < 0 || d > 1 {
		t.Fatalf("density out of range: %f", d)
	}
}
