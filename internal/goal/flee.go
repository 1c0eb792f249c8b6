package goal

import (
	"math"

	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/steering"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

type fleePhase uint8

const (
	fleeSprint fleePhase = iota
	fleeZigzag
	fleeRecover
)

const (
	zigzagSwitchTicks = 12
	zigzagAngle       = 0.7 // radians off the straight flee line
)

// FleeGoal is the prey evasion behavior. Detection uses a single radius;
// inside the zigzag band the agent weaves to break pursuit prediction,
// otherwise it sprints straight away. After the threat leaves the safe
// radius the agent keeps moving for a recovery window before standing
// down.
type FleeGoal struct {
	cfg *species.FleeConfig

	active    bool
	phase     fleePhase
	startTick uint64
	safeSince uint64
	zigSign   float64
	zigSwitch uint64
}

func NewFleeGoal(cfg *species.FleeConfig) *FleeGoal {
	return &FleeGoal{cfg: cfg}
}

func (g *FleeGoal) Name() string { return "flee" }
func (g *FleeGoal) Flags() Flag  { return FlagMove | FlagLook }

// Priority scales with proximity: a predator at the detection edge barely
// outranks foraging, one at contact range outranks everything.
func (g *FleeGoal) Priority(a *Agent) float64 {
	threat := nearestPredator(a, g.cfg.DetectRadius, g.cfg.Predators)
	if threat == nil {
		if g.active {
			return 0.6
		}
		return 0
	}
	dist := a.Entity.Pos.Distance(threat.Pos)
	closeness := 1 - dist/g.cfg.DetectRadius
	return 0.7 + 0.3*closeness
}

func (g *FleeGoal) CanStart(a *Agent) bool {
	return nearestPredator(a, g.cfg.DetectRadius, g.cfg.Predators) != nil
}

func (g *FleeGoal) Start(a *Agent) {
	g.active = true
	g.phase = fleeSprint
	g.startTick = a.Tick
	g.safeSince = 0
	g.zigSign = 1
	g.zigSwitch = a.Tick + zigzagSwitchTicks
	a.Feedback.Emit("alarm", a.Entity.Pos)
}

func (g *FleeGoal) Tick(a *Agent) Status {
	if g.cfg.GiveUpTicks > 0 && a.Tick >= g.startTick+g.cfg.GiveUpTicks {
		return StatusFailed
	}

	threat := nearestPredator(a, g.cfg.SafeRadius, g.cfg.Predators)
	if threat == nil {
		return g.recover(a)
	}
	g.safeSince = 0

	dist := a.Entity.Pos.Distance(threat.Pos)
	if dist >= g.cfg.ZigzagMin && dist <= g.cfg.ZigzagMax {
		g.phase = fleeZigzag
	} else {
		g.phase = fleeSprint
	}

	away := steering.Flee(a.Entity.Pos, a.Entity.Vel, threat.Pos, a.Entity.MaxSpeed)
	dir := away.Normalize()
	if dir.IsZero() {
		dir = vecmath.Vec3{X: 1}
	}
	if g.phase == fleeZigzag {
		if a.Tick >= g.zigSwitch {
			g.zigSign = -g.zigSign
			g.zigSwitch = a.Tick + zigzagSwitchTicks
		}
		dir = dir.RotateY(g.zigSign * zigzagAngle)
	}

	target := a.Entity.Pos.Add(dir.Scale(math.Max(g.cfg.SafeRadius, 4)))
	if !a.Nav.MoveTo(target, g.cfg.SprintMultiplier) {
		return StatusFailed
	}
	return StatusRunning
}

func (g *FleeGoal) recover(a *Agent) Status {
	if g.phase != fleeRecover {
		g.phase = fleeRecover
		g.safeSince = a.Tick
		a.Nav.Stop()
	}
	if a.Tick >= g.safeSince+g.cfg.RecoverTicks {
		return StatusSucceeded
	}
	return StatusRunning
}

func (g *FleeGoal) CanContinue(a *Agent) bool { return !a.Entity.Dead }

func (g *FleeGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

// Cooldowns: fleeing is reflexive, so both lockouts stay short. Failure is
// still the longer one.
func (g *FleeGoal) Cooldowns() (uint64, uint64) { return 5, 20 }

var _ Goal = (*FleeGoal)(nil)
