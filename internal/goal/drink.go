package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type drinkPhase uint8

const (
	drinkSearch drinkPhase = iota
	drinkTravel
	drinkDrink
)

const drinkArriveDist = 1.5

// DrinkGoal seeks the nearest water and drinks for a fixed duration.
// Thirst restores once at the end, mirroring GrazeGoal.
type DrinkGoal struct {
	cfg *species.DrinkConfig

	active     bool
	phase      drinkPhase
	startTick  uint64
	drinkUntil uint64
	target     vecmath.Vec3
}

func NewDrinkGoal(cfg *species.DrinkConfig) *DrinkGoal {
	return &DrinkGoal{cfg: cfg}
}

func (g *DrinkGoal) Name() string { return "drink" }
func (g *DrinkGoal) Flags() Flag  { return FlagMove | FlagLook }

func (g *DrinkGoal) Priority(a *Agent) float64 {
	n := a.State.Needs
	if !n.Thirsty() {
		return 0
	}
	if n.Dehydrated() {
		return 0.85
	}
	return 0.45 + 0.2*(1-n.Thirst()/100)
}

func (g *DrinkGoal) CanStart(a *Agent) bool {
	if !a.State.Needs.Thirsty() {
		return false
	}
	return nearestOfKind(a, g.cfg.SearchRadius, world.KindWater, nil) != nil
}

func (g *DrinkGoal) Start(a *Agent) {
	g.active = true
	g.phase = drinkSearch
	g.startTick = a.Tick
}

func (g *DrinkGoal) Tick(a *Agent) Status {
	if g.cfg.GiveUpTicks > 0 && a.Tick >= g.startTick+g.cfg.GiveUpTicks {
		return StatusFailed
	}

	switch g.phase {
	case drinkSearch:
		water := nearestOfKind(a, g.cfg.SearchRadius, world.KindWater, nil)
		if water == nil {
			return StatusFailed
		}
		g.target = water.Pos
		if !moveOrFail(a, g.target, 1) {
			return StatusFailed
		}
		g.phase = drinkTravel

	case drinkTravel:
		if a.Entity.Pos.Distance(g.target) <= drinkArriveDist {
			a.Nav.Stop()
			g.phase = drinkDrink
			g.drinkUntil = a.Tick + g.cfg.DrinkTicks
			a.Feedback.Emit("drink", a.Entity.Pos)
		} else if a.Nav.IsIdle() {
			g.phase = drinkSearch
		}

	case drinkDrink:
		if a.Tick >= g.drinkUntil {
			a.State.Needs.ModifyThirst(g.cfg.Restore)
			return StatusSucceeded
		}
	}
	return StatusRunning
}

func (g *DrinkGoal) CanContinue(a *Agent) bool { return !a.Entity.Dead }

func (g *DrinkGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *DrinkGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

var _ Goal = (*DrinkGoal)(nil)
