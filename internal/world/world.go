// Package world defines the collaborator contracts the decision core calls
// through: spatial queries, the navigation executor, and the sensory
// feedback sink. It also provides the in-memory grid implementation used by
// the simulation runner and the end-to-end tests.
package world

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// Kind partitions entities for spatial queries.
type Kind uint8

const (
	KindAnimal Kind = iota
	KindPlant
	KindWater
	KindNestSite
)

// Entity is the minimal view of a simulated thing the core reasons about.
// Position and velocity are owned by the navigation executor; the core only
// reads them.
type Entity struct {
	ID      string
	Species string
	Kind    Kind

	Pos vecmath.Vec3
	Vel vecmath.Vec3

	Height   float64
	Width    float64
	MaxSpeed float64

	Health    float64
	MaxHealth float64

	Juvenile  bool
	Dead      bool
	Protected bool
}

// HealthFrac returns health as a fraction of max, 1 when max is unset.
func (e *Entity) HealthFrac() float64 {
	if e.MaxHealth <= 0 {
		return 1
	}
	return e.Health / e.MaxHealth
}

// Query is the spatial lookup service. Implementations are expected to be
// O(k) in the result size; the core does not care about the index's
// internal structure.
type Query interface {
	// NearbyOfKind returns entities of the kind within radius of center
	// matching the predicate. A nil predicate matches everything.
	NearbyOfKind(center vecmath.Vec3, radius float64, kind Kind, pred func(*Entity) bool) []*Entity
	// NearbySameSpecies returns conspecifics of e within radius, excluding
	// e itself.
	NearbySameSpecies(e *Entity, radius float64) []*Entity
	// EntityByID resolves a reference; ok is false when the entity is gone.
	EntityByID(id string) (*Entity, bool)
	// Ratio reports current over expected population for the species
	// within radius of center. Implementations without expectation data
	// return 1.
	Ratio(species string, center vecmath.Vec3, radius float64) float64
}

// Path is an opaque handle returned by CreatePath. The core only checks it
// for nil.
type Path struct {
	Target vecmath.Vec3
}

// Navigator executes movement intents. The core decides where to go; the
// navigator owns physical movement and collision.
type Navigator interface {
	// MoveTo requests movement toward target at speedMul times base speed.
	// False means no route could even be attempted.
	MoveTo(target vecmath.Vec3, speedMul float64) bool
	// Stop cancels the current movement intent. Safe to call when idle.
	Stop()
	// IsIdle reports whether no movement intent is active.
	IsIdle() bool
	// CreatePath probes reachability without committing to move. Nil means
	// unreachable; callers fall back to a direct MoveTo attempt.
	CreatePath(target vecmath.Vec3) *Path
}

// Feedback is the fire-and-forget sensory sink: sounds, particles,
// animations. Outcomes never influence decisions.
type Feedback interface {
	Emit(effect string, pos vecmath.Vec3)
}

// NullFeedback drops every effect.
type NullFeedback struct{}

func (NullFeedback) Emit(string, vecmath.Vec3) {}
