package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type bathePhase uint8

const (
	batheTravel bathePhase = iota
	batheBathe
)

const batheArriveDist = 1.5

// BatheGoal is grooming at water. Pure comfort behavior, lowest rung of
// the priority ladder.
type BatheGoal struct {
	cfg *species.BatheConfig

	active     bool
	phase      bathePhase
	batheUntil uint64
	target     vecmath.Vec3
}

func NewBatheGoal(cfg *species.BatheConfig) *BatheGoal {
	return &BatheGoal{cfg: cfg}
}

func (g *BatheGoal) Name() string { return "bathe" }
func (g *BatheGoal) Flags() Flag  { return FlagMove }

func (g *BatheGoal) Priority(a *Agent) float64 {
	if a.State.Needs.Hungry() || a.State.Needs.Thirsty() {
		return 0
	}
	return 0.15
}

func (g *BatheGoal) CanStart(a *Agent) bool {
	return nearestOfKind(a, g.cfg.SearchRadius, world.KindWater, nil) != nil
}

func (g *BatheGoal) Start(a *Agent) {
	g.active = true
	g.phase = batheTravel
	if water := nearestOfKind(a, g.cfg.SearchRadius, world.KindWater, nil); water != nil {
		g.target = water.Pos
		moveOrFail(a, g.target, 1)
	}
}

func (g *BatheGoal) Tick(a *Agent) Status {
	switch g.phase {
	case batheTravel:
		if a.Entity.Pos.Distance(g.target) <= batheArriveDist {
			a.Nav.Stop()
			g.phase = batheBathe
			g.batheUntil = a.Tick + g.cfg.BatheTicks
			a.Feedback.Emit("splash", g.target)
			break
		}
		if a.Nav.IsIdle() {
			return StatusFailed
		}

	case batheBathe:
		if a.Tick >= g.batheUntil {
			return StatusSucceeded
		}
	}
	return StatusRunning
}

func (g *BatheGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return !a.State.Needs.UrgentSurvival()
}

func (g *BatheGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *BatheGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

var _ Goal = (*BatheGoal)(nil)
