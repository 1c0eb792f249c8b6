package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type grazePhase uint8

const (
	grazeSearch grazePhase = iota
	grazeTravel
	grazeEat
)

const (
	grazeArriveDist  = 1.5
	grazeSampleCount = 12
)

// GrazeGoal feeds on vegetation: find a plant entity or a grassy patch,
// travel there, then eat for a fixed duration. Hunger is restored once
// when eating finishes, so an interrupted meal restores nothing.
type GrazeGoal struct {
	cfg *species.GrazeConfig

	active    bool
	phase     grazePhase
	startTick uint64
	eatUntil  uint64
	target    vecmath.Vec3
}

func NewGrazeGoal(cfg *species.GrazeConfig) *GrazeGoal {
	return &GrazeGoal{cfg: cfg}
}

func (g *GrazeGoal) Name() string { return "graze" }
func (g *GrazeGoal) Flags() Flag  { return FlagMove | FlagLook }

func (g *GrazeGoal) Priority(a *Agent) float64 {
	n := a.State.Needs
	if !n.Hungry() {
		return 0
	}
	if n.Starving() {
		return 0.8
	}
	return 0.4 + 0.2*(1-n.Hunger()/100)
}

func (g *GrazeGoal) CanStart(a *Agent) bool {
	return a.State.Needs.Hungry()
}

func (g *GrazeGoal) Start(a *Agent) {
	g.active = true
	g.phase = grazeSearch
	g.startTick = a.Tick
}

func (g *GrazeGoal) Tick(a *Agent) Status {
	if g.cfg.GiveUpTicks > 0 && a.Tick >= g.startTick+g.cfg.GiveUpTicks {
		return StatusFailed
	}

	switch g.phase {
	case grazeSearch:
		if plant := nearestOfKind(a, g.cfg.SearchRadius, world.KindPlant, nil); plant != nil {
			g.target = plant.Pos
		} else if spot, ok := grassySpot(a, g.cfg.SearchRadius, grazeSampleCount); ok {
			g.target = spot
		} else {
			return StatusFailed
		}
		if !moveOrFail(a, g.target, 1) {
			return StatusFailed
		}
		g.phase = grazeTravel

	case grazeTravel:
		if a.Entity.Pos.Distance(g.target) <= grazeArriveDist {
			a.Nav.Stop()
			g.phase = grazeEat
			g.eatUntil = a.Tick + g.cfg.EatTicks
			a.Feedback.Emit("eat", a.Entity.Pos)
		} else if a.Nav.IsIdle() {
			// The navigator gave up before arrival.
			g.phase = grazeSearch
		}

	case grazeEat:
		if a.Tick >= g.eatUntil {
			a.State.Needs.ModifyHunger(g.cfg.Restore)
			return StatusSucceeded
		}
	}
	return StatusRunning
}

func (g *GrazeGoal) CanContinue(a *Agent) bool {
	return !a.Entity.Dead
}

func (g *GrazeGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *GrazeGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

var _ Goal = (*GrazeGoal)(nil)
