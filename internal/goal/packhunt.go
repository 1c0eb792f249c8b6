package goal

import (
	"math"

	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/prey"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
	"github.com/neilhuang007/better-ecology-sub002/internal/steering"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

// memberInfo is one pack member as seen through the state store. Entity
// ids are the uuid string of the agent state.
type memberInfo struct {
	id   string
	rank pack.Rank
}

// packMembers collects the agent's packmates, itself included.
func packMembers(a *Agent) []memberInfo {
	if !a.State.InPack() || a.States == nil {
		return nil
	}
	var members []memberInfo
	a.States.ForEach(func(s *state.AgentState) {
		if s.PackID == a.State.PackID {
			members = append(members, memberInfo{id: s.ID.String(), rank: s.Rank})
		}
	})
	return members
}

func alphaOf(members []memberInfo) (string, bool) {
	for _, m := range members {
		if m.rank == pack.RankAlpha {
			return m.id, true
		}
	}
	return "", false
}

func flankerIDs(members []memberInfo, alphaID string) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.id != alphaID {
			ids = append(ids, m.id)
		}
	}
	return ids
}

func flankConfig(cfg *species.PackConfig) pack.FlankConfig {
	fc := pack.DefaultFlankConfig()
	if cfg == nil {
		return fc
	}
	if cfg.MinAngleDeg > 0 {
		fc.MinAngle = cfg.MinAngleDeg * math.Pi / 180
	}
	if cfg.MaxAngleDeg > 0 {
		fc.MaxAngle = cfg.MaxAngleDeg * math.Pi / 180
	}
	if cfg.FlankDistance > 0 {
		fc.FlankDistance = cfg.FlankDistance
	}
	if cfg.AttackRange > 0 {
		fc.AttackRange = cfg.AttackRange
	}
	return fc
}

// settleKill credits the killer with the full restore, shares half with
// every packmate once per share cooldown, then retires the mark and the
// coordinator so nobody keeps chasing a carcass.
func settleKill(a *Agent, rec *pack.Record, huntCfg *species.HuntConfig, packCfg *species.PackConfig, target *world.Entity) {
	a.State.Needs.ModifyHunger(huntCfg.RestoreOnKill)
	a.Feedback.Emit("kill", target.Pos)

	if rec.CanShare(a.Tick) {
		share := huntCfg.RestoreOnKill * 0.5
		a.States.ForEach(func(s *state.AgentState) {
			if s.PackID == a.State.PackID && s.ID != a.State.ID {
				s.Needs.ModifyHunger(share)
			}
		})
		rec.ArmShareCooldown(a.Tick, packCfg.ShareCooldown)
	}

	rec.ClearTarget()
	a.Hunts.End(a.State.PackID)
}

// PackHuntAlphaGoal is the coordinator's half of a pack hunt. Only the
// alpha selects prey; it marks the target on the shared record, starts the
// hunt coordinator, then shadows the prey at chase distance until the
// flanker quorum is in position, at which point everyone converges.
type PackHuntAlphaGoal struct {
	huntCfg  *species.HuntConfig
	packCfg  *species.PackConfig
	selector *prey.Selector

	active   bool
	targetID string
}

func NewPackHuntAlphaGoal(huntCfg *species.HuntConfig, packCfg *species.PackConfig, pop prey.Population) *PackHuntAlphaGoal {
	return &PackHuntAlphaGoal{
		huntCfg:  huntCfg,
		packCfg:  packCfg,
		selector: prey.NewSelector(selectorConfig(huntCfg), pop),
	}
}

func (g *PackHuntAlphaGoal) Name() string { return "pack_hunt_alpha" }
func (g *PackHuntAlphaGoal) Flags() Flag  { return FlagMove | FlagLook | FlagTarget }

// Priority outranks the solo hunt so a pack alpha always prefers the
// coordinated version.
func (g *PackHuntAlphaGoal) Priority(a *Agent) float64 {
	if !a.State.InPack() || a.State.Rank != pack.RankAlpha {
		return 0
	}
	n := a.State.Needs
	if n.Satisfied() || !n.Hungry() {
		return 0
	}
	if n.Starving() {
		return 0.9
	}
	return 0.6
}

func (g *PackHuntAlphaGoal) CanStart(a *Agent) bool {
	if !a.State.InPack() || a.State.Rank != pack.RankAlpha {
		return false
	}
	rec := a.PackRecord()
	if rec == nil || rec.HasTarget() {
		return false
	}
	if !a.State.Needs.Hungry() {
		return false
	}
	_, ok := g.selectTarget(a)
	return ok
}

func (g *PackHuntAlphaGoal) Start(a *Agent) {
	g.active = true

	rec := a.PackRecord()
	scored, ok := g.selectTarget(a)
	if rec == nil || !ok {
		return
	}
	g.targetID = scored.Candidate.ID
	rec.MarkTarget(scored.Candidate.ID, a.Tick)

	cfg := pack.HuntConfig{
		PositionedQuorum: g.packCfg.PositionedQuorum,
		TimeoutTicks:     g.packCfg.TimeoutTicks,
	}
	a.Hunts.Begin(a.State.PackID, pack.NewHunt(rec, a.Tick, cfg))
	a.Feedback.Emit("howl", a.Entity.Pos)
}

func (g *PackHuntAlphaGoal) Tick(a *Agent) Status {
	rec := a.PackRecord()
	if rec == nil {
		return StatusFailed
	}
	if !rec.HasTarget() {
		// A flanker killed and settled the hunt before this tick.
		if target, ok := a.Query.EntityByID(g.targetID); ok && target.Dead {
			return StatusSucceeded
		}
		return StatusFailed
	}
	hunt := a.Hunts.Get(a.State.PackID)
	if hunt == nil {
		return StatusFailed
	}

	hunt.Advance(a.Tick)
	if hunt.Aborted() {
		return StatusFailed
	}

	target, ok := a.Query.EntityByID(rec.TargetID)
	if !ok {
		rec.ClearTarget()
		return StatusFailed
	}
	if target.Dead {
		// Someone else dropped the marked prey; the pack feeds anyway.
		settleKill(a, rec, g.huntCfg, g.packCfg, target)
		return StatusSucceeded
	}

	dist := a.Entity.Pos.Distance(target.Pos)
	if hunt.Converging() {
		if dist <= g.huntCfg.ContactRange {
			a.Nav.Stop()
			target.Dead = true
			target.Health = 0
			settleKill(a, rec, g.huntCfg, g.packCfg, target)
			return StatusSucceeded
		}
		intercept := steering.PredictIntercept(
			a.Entity.Pos, a.Entity.Vel, target.Pos, target.Vel, g.huntCfg.PredictionCap)
		if !a.Nav.MoveTo(intercept, 1) {
			return StatusFailed
		}
		return StatusRunning
	}

	// Positioning: the alpha holds the prey's attention from chase range
	// without spooking it into a full sprint.
	if dist > g.huntCfg.ChaseRange {
		if !a.Nav.MoveTo(target.Pos, steering.StalkSpeedFactor) {
			return StatusFailed
		}
	} else {
		a.Nav.Stop()
	}
	return StatusRunning
}

func (g *PackHuntAlphaGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return a.State.InPack() && a.State.Rank == pack.RankAlpha
}

func (g *PackHuntAlphaGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()

	// A stopped alpha goal with a live mark means the hunt collapsed; the
	// pack must not chase a mark nobody coordinates.
	if rec := a.PackRecord(); rec != nil && rec.HasTarget() {
		rec.ClearTarget()
		a.Hunts.End(a.State.PackID)
	}
}

func (g *PackHuntAlphaGoal) Cooldowns() (uint64, uint64) {
	return g.huntCfg.CooldownSuccess, g.huntCfg.CooldownFailure
}

func (g *PackHuntAlphaGoal) selectTarget(a *Agent) (prey.Scored, bool) {
	hunter := prey.Hunter{
		ID:       a.Entity.ID,
		Species:  a.Entity.Species,
		Pos:      a.Entity.Pos,
		Vel:      a.Entity.Vel,
		Height:   a.Entity.Height,
		MaxSpeed: a.Entity.MaxSpeed,
	}
	return g.selector.Best(hunter, gatherCandidates(a, g.huntCfg))
}

var _ Goal = (*PackHuntAlphaGoal)(nil)

// PackHuntFlankerGoal is the follower's half: on seeing the alpha's mark,
// take the deterministic flank slot, hold it, report position to the
// coordinator, and converge with the rest once the quorum stands.
type PackHuntFlankerGoal struct {
	huntCfg *species.HuntConfig
	packCfg *species.PackConfig

	active   bool
	targetID string
}

func NewPackHuntFlankerGoal(huntCfg *species.HuntConfig, packCfg *species.PackConfig) *PackHuntFlankerGoal {
	return &PackHuntFlankerGoal{huntCfg: huntCfg, packCfg: packCfg}
}

func (g *PackHuntFlankerGoal) Name() string { return "pack_hunt_flank" }
func (g *PackHuntFlankerGoal) Flags() Flag  { return FlagMove | FlagLook | FlagTarget }

func (g *PackHuntFlankerGoal) Priority(a *Agent) float64 {
	if !g.markVisible(a) {
		return 0
	}
	// Joining the pack's hunt outranks every solo behavior short of
	// fleeing.
	return 0.88
}

func (g *PackHuntFlankerGoal) CanStart(a *Agent) bool {
	return g.markVisible(a)
}

// markVisible reports whether this agent is a non-alpha pack member whose
// record carries a live mark.
func (g *PackHuntFlankerGoal) markVisible(a *Agent) bool {
	if !a.State.InPack() || a.State.Rank == pack.RankAlpha {
		return false
	}
	rec := a.PackRecord()
	return rec != nil && rec.HasTarget()
}

func (g *PackHuntFlankerGoal) Start(a *Agent) {
	g.active = true
}

func (g *PackHuntFlankerGoal) Tick(a *Agent) Status {
	rec := a.PackRecord()
	if rec == nil {
		return StatusFailed
	}
	if !rec.HasTarget() {
		// Another member settled the kill between ticks.
		if target, ok := a.Query.EntityByID(g.targetID); ok && target.Dead {
			return StatusSucceeded
		}
		return StatusFailed
	}
	g.targetID = rec.TargetID

	hunt := a.Hunts.Get(a.State.PackID)
	if hunt == nil || hunt.Aborted() {
		return StatusFailed
	}

	target, ok := a.Query.EntityByID(rec.TargetID)
	if !ok {
		return StatusFailed
	}
	if target.Dead {
		settleKill(a, rec, g.huntCfg, g.packCfg, target)
		return StatusSucceeded
	}

	dist := a.Entity.Pos.Distance(target.Pos)
	if hunt.Converging() {
		if dist <= g.huntCfg.ContactRange {
			a.Nav.Stop()
			target.Dead = true
			target.Health = 0
			settleKill(a, rec, g.huntCfg, g.packCfg, target)
			return StatusSucceeded
		}
		intercept := steering.PredictIntercept(
			a.Entity.Pos, a.Entity.Vel, target.Pos, target.Vel, g.huntCfg.PredictionCap)
		if !a.Nav.MoveTo(intercept, 1) {
			return StatusFailed
		}
		return StatusRunning
	}

	members := packMembers(a)
	alphaID, haveAlpha := alphaOf(members)
	if !haveAlpha {
		return StatusFailed
	}
	alphaEnt, ok := a.Query.EntityByID(alphaID)
	if !ok {
		return StatusFailed
	}

	flankers := flankerIDs(members, alphaID)
	idx := pack.FlankerIndex(flankers, a.Entity.ID)
	if idx < 0 {
		return StatusFailed
	}
	fc := flankConfig(g.packCfg)
	point := pack.FlankPoint(target.Pos, target.Vel, alphaEnt.Pos, idx, len(flankers), fc)

	// Positioned means standing on the assigned flank point, not near the
	// prey itself; the whole point of the band is to hold distance until
	// the quorum stands.
	inPosition := a.Entity.Pos.Distance(point) <= fc.AttackRange
	hunt.ReportPosition(a.Entity.ID, inPosition)

	if inPosition {
		a.Nav.Stop()
	} else if !a.Nav.MoveTo(point, 1) {
		return StatusFailed
	}
	return StatusRunning
}

func (g *PackHuntFlankerGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return a.State.InPack()
}

func (g *PackHuntFlankerGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	a.Nav.Stop()
}

func (g *PackHuntFlankerGoal) Cooldowns() (uint64, uint64) {
	return g.huntCfg.CooldownSuccess, g.huntCfg.CooldownFailure
}

var _ Goal = (*PackHuntFlankerGoal)(nil)
