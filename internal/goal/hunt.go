package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/prey"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/steering"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

type huntPhase uint8

const (
	huntSelect huntPhase = iota
	huntStalk
	huntChase
	huntPounce
)

// HuntGoal is the solitary predator behavior: pick the cheapest viable
// prey, stalk it at half speed from outside the chase band, run it down
// with intercept prediction inside the band, and pounce at contact range.
type HuntGoal struct {
	cfg      *species.HuntConfig
	selector *prey.Selector
	bands    steering.Bands

	active    bool
	phase     huntPhase
	startTick uint64
	targetID  string
}

func NewHuntGoal(cfg *species.HuntConfig, pop prey.Population) *HuntGoal {
	return &HuntGoal{
		cfg:      cfg,
		selector: prey.NewSelector(selectorConfig(cfg), pop),
		bands:    steering.Bands{Contact: cfg.ContactRange, Chase: cfg.ChaseRange},
	}
}

func selectorConfig(cfg *species.HuntConfig) prey.Config {
	return prey.Config{
		MaxRange:            cfg.MaxRange,
		BaseHandlingTime:    cfg.BaseHandlingTime,
		HandlingSizeFactor:  cfg.HandlingSizeFactor,
		SpeedPenaltyFactor:  cfg.SpeedPenaltyFactor,
		GroupPenaltyFactor:  cfg.GroupPenaltyFactor,
		ProtectionRadius:    cfg.ProtectionRadius,
		ScarcityThreshold:   cfg.ScarcityThreshold,
		SustainabilityFloor: cfg.SustainabilityFloor,
	}
}

func (g *HuntGoal) Name() string { return "hunt" }
func (g *HuntGoal) Flags() Flag  { return FlagMove | FlagLook | FlagTarget }

func (g *HuntGoal) Priority(a *Agent) float64 {
	n := a.State.Needs
	if n.Satisfied() {
		return 0
	}
	if n.Starving() {
		return 0.85
	}
	if n.Hungry() {
		return 0.55
	}
	return 0
}

func (g *HuntGoal) CanStart(a *Agent) bool {
	if a.State.Needs.Satisfied() {
		return false
	}
	if !a.State.Needs.Hungry() {
		return false
	}
	_, ok := g.selectTarget(a)
	return ok
}

func (g *HuntGoal) Start(a *Agent) {
	g.active = true
	g.phase = huntSelect
	g.startTick = a.Tick
	g.targetID = ""
}

func (g *HuntGoal) Tick(a *Agent) Status {
	if g.cfg.GiveUpTicks > 0 && a.Tick >= g.startTick+g.cfg.GiveUpTicks {
		return StatusFailed
	}

	if g.phase == huntSelect {
		scored, ok := g.selectTarget(a)
		if !ok {
			return StatusFailed
		}
		g.targetID = scored.Candidate.ID
		g.phase = huntStalk
	}

	target, ok := a.Query.EntityByID(g.targetID)
	if !ok || target.Dead {
		// Target vanished. A dead target means someone else got the kill,
		// which is still a failed hunt for this agent.
		return StatusFailed
	}

	dist := a.Entity.Pos.Distance(target.Pos)
	switch g.bands.Classify(dist) {
	case steering.BandStalk:
		g.phase = huntStalk
		if !a.Nav.MoveTo(target.Pos, steering.StalkSpeedFactor) {
			return StatusFailed
		}

	case steering.BandChase:
		g.phase = huntChase
		intercept := steering.PredictIntercept(
			a.Entity.Pos, a.Entity.Vel, target.Pos, target.Vel, g.cfg.PredictionCap)
		if !a.Nav.MoveTo(intercept, 1) {
			return StatusFailed
		}

	case steering.BandContact:
		g.phase = huntPounce
		a.Nav.Stop()
		g.kill(a, target)
		return StatusSucceeded
	}
	return StatusRunning
}

func (g *HuntGoal) kill(a *Agent, target *world.Entity) {
	target.Dead = true
	target.Health = 0
	a.State.Needs.ModifyHunger(g.cfg.RestoreOnKill)
	a.Feedback.Emit("kill", target.Pos)
}

func (g *HuntGoal) CanContinue(a *Agent) bool {
	if a.Entity.Dead {
		return false
	}
	// Satiation reached mid-hunt ends it; the kill is no longer worth the
	// energy.
	return !a.State.Needs.Satisfied()
}

func (g *HuntGoal) Stop(a *Agent) {
	if !g.active {
		return
	}
	g.active = false
	g.targetID = ""
	a.Nav.Stop()
}

func (g *HuntGoal) Cooldowns() (uint64, uint64) {
	return g.cfg.CooldownSuccess, g.cfg.CooldownFailure
}

// selectTarget gathers candidates in range and asks the foraging model for
// the cheapest one.
func (g *HuntGoal) selectTarget(a *Agent) (prey.Scored, bool) {
	hunter := prey.Hunter{
		ID:       a.Entity.ID,
		Species:  a.Entity.Species,
		Pos:      a.Entity.Pos,
		Vel:      a.Entity.Vel,
		Height:   a.Entity.Height,
		MaxSpeed: a.Entity.MaxSpeed,
	}
	candidates := gatherCandidates(a, g.cfg)
	return g.selector.Best(hunter, candidates)
}

// gatherCandidates builds the ephemeral candidate list from the spatial
// query, one entry per huntable species member in range.
func gatherCandidates(a *Agent, cfg *species.HuntConfig) []prey.Candidate {
	huntable := make(map[string]bool, len(cfg.Prey))
	for _, s := range cfg.Prey {
		huntable[s] = true
	}

	found := a.Query.NearbyOfKind(a.Entity.Pos, cfg.MaxRange, world.KindAnimal, func(e *world.Entity) bool {
		return huntable[e.Species] && e.ID != a.Entity.ID
	})

	out := make([]prey.Candidate, 0, len(found))
	for _, e := range found {
		out = append(out, prey.Candidate{
			ID:         e.ID,
			Species:    e.Species,
			Pos:        e.Pos,
			Vel:        e.Vel,
			Height:     e.Height,
			Width:      e.Width,
			MaxSpeed:   e.MaxSpeed,
			HealthFrac: e.HealthFrac(),
			Size:       sizeClassOf(a, e.Species),
			Juvenile:   e.Juvenile,
			Dead:       e.Dead,
			Protected:  e.Protected,
			GroupCount: len(a.Query.NearbySameSpecies(e, cfg.ProtectionRadius)),
		})
	}
	return out
}

func sizeClassOf(a *Agent, speciesName string) prey.SizeClass {
	if a.Library == nil {
		return prey.SizeSmall
	}
	cfg := a.Library.Get(speciesName)
	if cfg == nil {
		return prey.SizeSmall
	}
	switch cfg.SizeClass {
	case "large":
		return prey.SizeLarge
	case "medium":
		return prey.SizeMedium
	default:
		return prey.SizeSmall
	}
}

var _ Goal = (*HuntGoal)(nil)
