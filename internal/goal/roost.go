package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
)

type roostPhase uint8

const (
	roostTravel roostPhase = iota
	roostRest
)

const roostArriveDist = 1.5

// RoostGoal returns the agent to its completed nest and rests there. It
// never competes with survival behaviors; priority stays at the floor.
type RoostGoal struct {
	cfg *species.RoostConfig

	active    bool
	phase     roostPhase
	restUntil uint64
}

func NewRoostGoal(cfg *species.RoostConfig) *RoostGoal {
	return &RoostGoal{cfg: cfg}
}

func (g *RoostGoal) Name() string { return "roost" }
func (g *RoostGoal) Flags() Flag  { return FlagMove }

func (g *RoostGoal) Priority(a *Agent) float64 {
	if !a.State.Nest.Complete() {
		return 0
	}
	if a.State.Needs.Hungry() || a.State.Needs.Thirsty() {
		return 0
	}
	return 0.2
}

func (g *RoostGoal) CanStart(a *Agent) bool {
	return a.State.Nest.Complete()
}

func (g *RoostGoal) Start(a *Agent) {
	g.active = true
	g.phase = roostTravel
}

func (g *RoostGoal) Tick(a *Agent) Status {
	nest := &a.State.Nest
	if !nest.Complete() {
		return StatusFailed
	}

	switch g.phase {
	case roostTravel:
		if a.Entity.Pos.Distance(nest.Location) <= roostArriveDist {
			a.Nav.Stop()
			g.phase = roostRest
			g.restUntil = a.Tick + g.cfg.RestTicks
			a.Feedback.Emit("roost", nest.Location)
			break
		}
		if a.Nav.IsIdle() {
			if !moveOrFail(a, nest.Location, 1) {
				return StatusFailed
			}
		}

	case roostRest:
		if a.Tick >= g.restUntil {
			return StatusSucceeded
		}
	}
	return StatusRunning
}

func (g *RoostGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return !a.State.Needs.UrgentSurvival()
}

func (g *RoostGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *RoostGoal) Cooldowns() (uint64, uint64) {
	// Roosting cannot fail in a way worth punishing, but the invariant
	// that failure outlasts success still holds.
	return g.cfg.CooldownSuccess, g.cfg.CooldownSuccess + 200
}

var _ Goal = (*RoostGoal)(nil)
