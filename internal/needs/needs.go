// Package needs models an agent's hunger and thirst reserves. Both are
// satiation scalars in [0,100]: 100 means fully satisfied, 0 means the
// reserve is exhausted. Values decay each simulation tick and are restored
// by discrete events (eating, drinking, a successful hunt).
package needs

const (
	// MinLevel and MaxLevel bound both reserves. Every write clamps.
	MinLevel = 0.0
	MaxLevel = 100.0
)

// Thresholds holds the cutoffs for the predicate helpers. A reserve below
// Hungry/Thirsty makes the matching predicate true; below Starving/Dehydrated
// the condition is critical; above Satisfied/Hydrated the agent will not
// seek food or water at all.
type Thresholds struct {
	Hungry     float64
	Starving   float64
	Satisfied  float64
	Thirsty    float64
	Dehydrated float64
	Hydrated   float64
}

// DefaultThresholds mirrors the tuning shipped with the species configs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Hungry:     50,
		Starving:   20,
		Satisfied:  80,
		Thirsty:    50,
		Dehydrated: 20,
		Hydrated:   80,
	}
}

// State is a single agent's needs. It is exclusively owned by that agent
// and only mutated from the agent's own goal instances.
type State struct {
	hunger float64
	thirst float64
	cfg    Thresholds
}

// New returns a fully satisfied state.
func New(cfg Thresholds) *State {
	return &State{hunger: MaxLevel, thirst: MaxLevel, cfg: cfg}
}

func clampLevel(v float64) float64 {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

func (s *State) Hunger() float64 { return s.hunger }
func (s *State) Thirst() float64 { return s.thirst }

func (s *State) SetHunger(v float64) { s.hunger = clampLevel(v) }
func (s *State) SetThirst(v float64) { s.thirst = clampLevel(v) }

// ModifyHunger applies a delta; the stored value never leaves [0,100].
func (s *State) ModifyHunger(delta float64) { s.hunger = clampLevel(s.hunger + delta) }

// ModifyThirst applies a delta; the stored value never leaves [0,100].
func (s *State) ModifyThirst(delta float64) { s.thirst = clampLevel(s.thirst + delta) }

// Decay applies the per-tick drain to both reserves.
func (s *State) Decay(hungerRate, thirstRate float64) {
	s.hunger = clampLevel(s.hunger - hungerRate)
	s.thirst = clampLevel(s.thirst - thirstRate)
}

func (s *State) Hungry() bool     { return s.hunger < s.cfg.Hungry }
func (s *State) Starving() bool   { return s.hunger < s.cfg.Starving }
func (s *State) Satisfied() bool  { return s.hunger > s.cfg.Satisfied }
func (s *State) Thirsty() bool    { return s.thirst < s.cfg.Thirsty }
func (s *State) Dehydrated() bool { return s.thirst < s.cfg.Dehydrated }
func (s *State) Hydrated() bool   { return s.thirst > s.cfg.Hydrated }

// SurvivalPriority reports urgency in [0,1], driven by the worse of the two
// reserves. This is a cooperative signal: non-survival goals are expected to
// consult it and voluntarily yield, but nothing enforces that beyond
// convention.
func (s *State) SurvivalPriority() float64 {
	worst := s.hunger
	if s.thirst < worst {
		worst = s.thirst
	}
	return 1 - worst/MaxLevel
}

// UrgentSurvival reports whether a non-survival goal should yield.
func (s *State) UrgentSurvival() bool {
	return s.Starving() || s.Dehydrated()
}
