package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type bondPhase uint8

const (
	bondApproach bondPhase = iota
	bondSocialize
)

const bondReachDist = 2.5

// BondGoal is social grooming with a nearby conspecific. It yields
// immediately to any urgent survival pressure through CanContinue, so a
// starving or hunted animal never stands around socializing.
type BondGoal struct {
	cfg *species.BondConfig

	active    bool
	phase     bondPhase
	partnerID string
	bondUntil uint64
}

func NewBondGoal(cfg *species.BondConfig) *BondGoal {
	return &BondGoal{cfg: cfg}
}

func (g *BondGoal) Name() string { return "bond" }
func (g *BondGoal) Flags() Flag  { return FlagMove | FlagLook }

func (g *BondGoal) Priority(a *Agent) float64 {
	if a.State.Needs.Hungry() || a.State.Needs.Thirsty() {
		return 0
	}
	return 0.25
}

func (g *BondGoal) CanStart(a *Agent) bool {
	if a.State.Needs.UrgentSurvival() {
		return false
	}
	return g.findPartner(a) != nil
}

func (g *BondGoal) Start(a *Agent) {
	g.active = true
	g.phase = bondApproach
	if partner := g.findPartner(a); partner != nil {
		g.partnerID = partner.ID
	}
}

func (g *BondGoal) Tick(a *Agent) Status {
	partner, ok := a.Query.EntityByID(g.partnerID)
	if !ok || partner.Dead {
		return StatusFailed
	}

	switch g.phase {
	case bondApproach:
		if a.Entity.Pos.Distance(partner.Pos) <= bondReachDist {
			a.Nav.Stop()
			g.phase = bondSocialize
			g.bondUntil = a.Tick + g.cfg.BondTicks
			a.Feedback.Emit("bond", a.Entity.Pos)
			break
		}
		if a.Nav.IsIdle() {
			if !moveOrFail(a, partner.Pos, 1) {
				return StatusFailed
			}
		}

	case bondSocialize:
		if a.Entity.Pos.Distance(partner.Pos) > g.cfg.SearchRadius {
			// Partner wandered off mid-session.
			return StatusFailed
		}
		if a.Tick >= g.bondUntil {
			return StatusSucceeded
		}
	}
	return StatusRunning
}

func (g *BondGoal) findPartner(a *Agent) *world.Entity {
	near := a.Query.NearbySameSpecies(a.Entity, g.cfg.SearchRadius)
	if len(near) == 0 {
		return nil
	}
	return near[0]
}

func (g *BondGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	return !a.State.Needs.UrgentSurvival()
}

func (g *BondGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	g.partnerID = ""
	a.Nav.Stop()
}

func (g *BondGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownSuccess + 100
}

var _ Goal = (*BondGoal)(nil)
