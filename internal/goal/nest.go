package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type nestPhase uint8

const (
	nestSelectSite nestPhase = iota
	nestTravelToMaterial
	nestCarryMaterial
	nestBuild
	nestDone
)

const nestArriveDist = 1.5

// NestGoal runs the construction loop: pick a site, shuttle materials from
// nearby vegetation one at a time, then build in place until progress
// completes. A predator inside the disturbance radius marks the nest
// disturbed and abandons the attempt; the site is forgotten.
type NestGoal struct {
	cfg       *species.NestConfig
	predators []string

	active    bool
	phase     nestPhase
	startTick uint64
	material  vecmath.Vec3
}

func NewNestGoal(cfg *species.NestConfig, predators []string) *NestGoal {
	return &NestGoal{cfg: cfg, predators: predators}
}

func (g *NestGoal) Name() string { return "nest" }
func (g *NestGoal) Flags() Flag  { return FlagMove | FlagLook }

func (g *NestGoal) Priority(a *Agent) float64 {
	if a.State.Nest.Complete() {
		return 0
	}
	if a.State.Needs.UrgentSurvival() {
		return 0
	}
	if a.State.Nest.Active {
		// Resume an unfinished build ahead of idle socializing.
		return 0.35
	}
	return 0.3
}

func (g *NestGoal) CanStart(a *Agent) bool {
	if a.State.Nest.Complete() {
		return false
	}
	return !a.State.Needs.UrgentSurvival()
}

func (g *NestGoal) Start(a *Agent) {
	g.active = true
	g.startTick = a.Tick
	if a.State.Nest.Active {
		g.phase = nestTravelToMaterial
	} else {
		g.phase = nestSelectSite
	}
}

func (g *NestGoal) Tick(a *Agent) Status {
	if g.cfg.GiveUpTicks > 0 && a.Tick >= g.startTick+g.cfg.GiveUpTicks {
		return StatusFailed
	}

	if threat := nearestPredator(a, g.cfg.DisturbanceRadius, g.predators); threat != nil {
		a.State.Nest.Disturb(a.Tick)
		a.State.Nest.Abandon()
		a.Feedback.Emit("nest_abandoned", a.Entity.Pos)
		return StatusFailed
	}

	nest := &a.State.Nest
	switch g.phase {
	case nestSelectSite:
		site := g.pickSite(a)
		if site == nil {
			return StatusFailed
		}
		nest.Establish(*site)
		g.phase = nestTravelToMaterial

	case nestTravelToMaterial:
		if nest.Materials >= g.cfg.MaterialsNeeded {
			g.phase = nestBuild
			break
		}
		plant := nearestOfKind(a, g.cfg.SearchRadius, world.KindPlant, nil)
		if plant == nil {
			return StatusFailed
		}
		g.material = plant.Pos
		if !moveOrFail(a, g.material, 1) {
			return StatusFailed
		}
		g.phase = nestCarryMaterial

	case nestCarryMaterial:
		if a.Entity.Pos.Distance(g.material) <= nestArriveDist {
			nest.AddMaterial()
			a.Feedback.Emit("gather", a.Entity.Pos)
			if !moveOrFail(a, nest.Location, 1) {
				return StatusFailed
			}
			g.phase = nestTravelToMaterial
		} else if a.Nav.IsIdle() {
			g.phase = nestTravelToMaterial
		}

	case nestBuild:
		if a.Entity.Pos.Distance(nest.Location) > nestArriveDist {
			if !moveOrFail(a, nest.Location, 1) {
				return StatusFailed
			}
			break
		}
		a.Nav.Stop()
		nest.AdvanceProgress(g.cfg.ProgressPerTick)
		if nest.Complete() {
			nest.Quality = 1
			if a.Veg != nil {
				nest.Quality = 0.5 + 0.5*a.Veg.Density(nest.Location.X, nest.Location.Z)
			}
			a.Feedback.Emit("nest_complete", nest.Location)
			g.phase = nestDone
			return StatusSucceeded
		}
	}
	return StatusRunning
}

// pickSite prefers an explicit nest-site entity, falling back to the
// grassiest sampled patch.
func (g *NestGoal) pickSite(a *Agent) *vecmath.Vec3 {
	if site := nearestOfKind(a, g.cfg.SearchRadius, world.KindNestSite, nil); site != nil {
		p := site.Pos
		return &p
	}
	if spot, ok := grassySpot(a, g.cfg.SearchRadius, 16); ok {
		return &spot
	}
	return nil
}

func (g *NestGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return !a.State.Needs.UrgentSurvival()
}

func (g *NestGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *NestGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

var _ Goal = (*NestGoal)(nil)
