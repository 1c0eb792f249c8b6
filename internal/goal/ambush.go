package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type ambushPhase uint8

const (
	ambushWait ambushPhase = iota
	ambushBurst
)

// AmbushGoal is the lie-in-wait predator variant: hold still until prey
// wanders inside the trigger range, then burst at it faster than the
// normal chase. Waiting too long without a trigger fails the attempt.
type AmbushGoal struct {
	huntCfg *species.HuntConfig
	cfg     *species.AmbushConfig

	active    bool
	phase     ambushPhase
	startTick uint64
	targetID  string
}

func NewAmbushGoal(huntCfg *species.HuntConfig, cfg *species.AmbushConfig) *AmbushGoal {
	return &AmbushGoal{huntCfg: huntCfg, cfg: cfg}
}

func (g *AmbushGoal) Name() string { return "ambush" }
func (g *AmbushGoal) Flags() Flag  { return FlagMove | FlagLook | FlagTarget }

// Priority sits just under the active chase: an ambush is worth setting
// up only when hungry but not yet desperate enough to run prey down.
func (g *AmbushGoal) Priority(a *Agent) float64 {
	n := a.State.Needs
	if n.Satisfied() || n.Starving() {
		return 0
	}
	if n.Hungry() {
		return 0.5
	}
	return 0
}

func (g *AmbushGoal) CanStart(a *Agent) bool {
	return a.State.Needs.Hungry() && !a.State.Needs.Satisfied()
}

func (g *AmbushGoal) Start(a *Agent) {
	g.active = true
	g.phase = ambushWait
	g.startTick = a.Tick
	g.targetID = ""
	a.Nav.Stop()
}

func (g *AmbushGoal) Tick(a *Agent) Status {
	switch g.phase {
	case ambushWait:
		if g.cfg.MaxWaitTicks > 0 && a.Tick >= g.startTick+g.cfg.MaxWaitTicks {
			return StatusFailed
		}
		target := g.preyInTrigger(a)
		if target == nil {
			return StatusRunning
		}
		g.targetID = target.ID
		g.phase = ambushBurst
		a.Feedback.Emit("pounce", a.Entity.Pos)
		fallthrough

	case ambushBurst:
		target, ok := a.Query.EntityByID(g.targetID)
		if !ok || target.Dead {
			return StatusFailed
		}
		dist := a.Entity.Pos.Distance(target.Pos)
		if dist <= g.huntCfg.ContactRange {
			a.Nav.Stop()
			target.Dead = true
			target.Health = 0
			a.State.Needs.ModifyHunger(g.huntCfg.RestoreOnKill)
			a.Feedback.Emit("kill", target.Pos)
			return StatusSucceeded
		}
		// The burst only carries so far; prey that slipped back outside
		// twice the trigger range has escaped.
		if dist > g.cfg.TriggerRange*2 {
			return StatusFailed
		}
		if !a.Nav.MoveTo(target.Pos, g.cfg.BurstMultiplier) {
			return StatusFailed
		}
	}
	return StatusRunning
}

func (g *AmbushGoal) preyInTrigger(a *Agent) *world.Entity {
	huntable := make(map[string]bool, len(g.huntCfg.Prey))
	for _, s := range g.huntCfg.Prey {
		huntable[s] = true
	}
	return nearestOfKind(a, g.cfg.TriggerRange, world.KindAnimal, func(e *world.Entity) bool {
		return huntable[e.Species] && !e.Protected && e.ID != a.Entity.ID
	})
}

func (g *AmbushGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return !a.State.Needs.Satisfied()
}

func (g *AmbushGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	g.targetID = ""
	a.Nav.Stop()
}

func (g *AmbushGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

var _ Goal = (*AmbushGoal)(nil)
