// Package goal implements the decision core: the goal lifecycle contract,
// the per-agent runner that arbitrates between competing goals, and the
// concrete behaviors built on it. Goals decide; the navigation executor
// moves. All state a goal needs arrives through the Agent context, so
// goals stay testable without a live simulation.
package goal

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

// Status is a goal's per-tick verdict.
type Status uint8

const (
	StatusRunning Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "running"
	}
}

// Flag declares which agent faculties a goal claims while active. Two
// goals with overlapping flags never run concurrently.
type Flag uint8

const (
	FlagMove Flag = 1 << iota
	FlagLook
	FlagTarget
)

// Conflicts reports whether two flag sets overlap.
func (f Flag) Conflicts(other Flag) bool { return f&other != 0 }

// Agent is the full context handed to every goal call. It is rebuilt by
// the host each tick; goals must not retain it across ticks.
type Agent struct {
	Entity  *world.Entity
	State   *state.AgentState
	Config  *species.Config
	Library *species.Library

	Nav      world.Navigator
	Query    world.Query
	Veg      *world.Vegetation
	Feedback world.Feedback

	States *state.Store
	Packs  *pack.Registry
	Hunts  *HuntBoard

	Rand *rand.Rand
	Tick uint64
}

// PackRecord resolves the agent's pack, nil when solitary.
func (a *Agent) PackRecord() *pack.Record {
	if a.Packs == nil || a.State == nil {
		return nil
	}
	return a.Packs.Get(a.State.PackID)
}

// Goal is the lifecycle every behavior implements.
//
// The runner calls CanStart before Start, Tick once per tick while active,
// CanContinue before each Tick, and Stop exactly once per activation (but
// implementations must tolerate redundant Stops). Goals signal completion
// through Tick's status; give-up budgets are the goal's own responsibility.
type Goal interface {
	Name() string
	Flags() Flag

	// Priority ranks the goal against competitors this tick. Zero or
	// negative means the goal does not want to run.
	Priority(a *Agent) float64

	CanStart(a *Agent) bool
	Start(a *Agent)
	Tick(a *Agent) Status
	CanContinue(a *Agent) bool
	Stop(a *Agent)

	// Cooldowns returns the lockout after success and after failure.
	// Failure must be the longer of the two so a failing goal cannot
	// hammer the arbiter.
	Cooldowns() (success, failure uint64)
}

// HuntBoard holds the live pack-hunt coordinators, keyed by pack id. It is
// shared by every member of a pack the same way the pack record is.
type HuntBoard struct {
	hunts map[uuid.UUID]*pack.Hunt
}

func NewHuntBoard() *HuntBoard {
	return &HuntBoard{hunts: make(map[uuid.UUID]*pack.Hunt)}
}

// Get returns the running coordinator for a pack, nil when no hunt is on.
func (b *HuntBoard) Get(packID uuid.UUID) *pack.Hunt {
	if b == nil {
		return nil
	}
	return b.hunts[packID]
}

// Begin installs a coordinator for the pack, replacing any stale one.
func (b *HuntBoard) Begin(packID uuid.UUID, h *pack.Hunt) {
	b.hunts[packID] = h
}

// End removes the pack's coordinator.
func (b *HuntBoard) End(packID uuid.UUID) {
	delete(b.hunts, packID)
}
