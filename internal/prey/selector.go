// Package prey scores and ranks hunting targets using an optimal-foraging
// model: the cost of a candidate is the time spent subduing and chasing it
// divided by the energy it yields, adjusted by local population health so
// predators switch away from scarce species before driving them extinct.
package prey

import (
	"math"
	"sort"

	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// SizeClass buckets species by body mass for the energy multipliers.
type SizeClass uint8

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
)

// Candidate is an ephemeral view of a potential target. Candidates are
// rebuilt for every evaluation and never persisted.
type Candidate struct {
	ID         string
	Species    string
	Pos        vecmath.Vec3
	Vel        vecmath.Vec3
	Height     float64
	Width      float64
	MaxSpeed   float64
	HealthFrac float64 // 0..1 of max health
	Size       SizeClass
	Juvenile   bool
	Dead       bool
	Protected  bool
	// GroupCount is the number of same-species conspecifics within the
	// protection radius, supplied by the spatial query.
	GroupCount int
}

// Hunter is the predator's view used for relative-size and speed terms.
type Hunter struct {
	ID       string
	Species  string
	Pos      vecmath.Vec3
	Vel      vecmath.Vec3
	Height   float64
	MaxSpeed float64
}

// Config carries the scoring constants. Zero values fall back to the stock
// tuning via Normalized.
type Config struct {
	MaxRange            float64
	BaseHandlingTime    float64
	HandlingSizeFactor  float64
	SpeedPenaltyFactor  float64
	GroupPenaltyFactor  float64
	ProtectionRadius    float64
	ScarcityThreshold   float64 // population ratio below which scores are penalized
	SustainabilityFloor float64 // population ratio below which candidates are vetoed outright
}

// DefaultConfig returns the stock scoring tuning.
func DefaultConfig() Config {
	return Config{
		MaxRange:            32,
		BaseHandlingTime:    2.0,
		HandlingSizeFactor:  1.5,
		SpeedPenaltyFactor:  3.0,
		GroupPenaltyFactor:  0.5,
		ProtectionRadius:    8,
		ScarcityThreshold:   0.4,
		SustainabilityFloor: 0.15,
	}
}

// Normalized fills zero fields from the defaults.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.MaxRange <= 0 {
		c.MaxRange = d.MaxRange
	}
	if c.BaseHandlingTime <= 0 {
		c.BaseHandlingTime = d.BaseHandlingTime
	}
	if c.HandlingSizeFactor <= 0 {
		c.HandlingSizeFactor = d.HandlingSizeFactor
	}
	if c.SpeedPenaltyFactor <= 0 {
		c.SpeedPenaltyFactor = d.SpeedPenaltyFactor
	}
	if c.GroupPenaltyFactor <= 0 {
		c.GroupPenaltyFactor = d.GroupPenaltyFactor
	}
	if c.ProtectionRadius <= 0 {
		c.ProtectionRadius = d.ProtectionRadius
	}
	if c.ScarcityThreshold <= 0 {
		c.ScarcityThreshold = d.ScarcityThreshold
	}
	if c.SustainabilityFloor <= 0 {
		c.SustainabilityFloor = d.SustainabilityFloor
	}
	return c
}

// Population reports local population health for prey switching. Ratio is
// current count over expected count for the species within the radius
// around center; implementations degrade to 1.0 when they have no data.
type Population interface {
	Ratio(species string, center vecmath.Vec3, radius float64) float64
}

// healthyPopulation is the nil fallback: every species looks fine.
type healthyPopulation struct{}

func (healthyPopulation) Ratio(string, vecmath.Vec3, float64) float64 { return 1 }

const (
	sizeMultLarge  = 1.5
	sizeMultMedium = 1.2
	sizeMultSmall  = 0.7

	injuredEnergyMult    = 0.7
	juvenileEnergyMult   = 0.4
	injuredHandlingMult  = 0.6
	juvenileHandlingMult = 0.3

	injuredHealthFrac = 0.5

	// Size-mismatch gates: prey outside these height ratios relative to the
	// hunter is not worth the attempt.
	maxPreyHeightRatio = 1.5
	minPreyHeightRatio = 0.1

	minEnergyGain = 1e-6
)

// Selector evaluates candidates for one hunter.
type Selector struct {
	cfg Config
	pop Population
}

// NewSelector builds a selector. pop may be nil, in which case every
// species is treated as healthy.
func NewSelector(cfg Config, pop Population) *Selector {
	if pop == nil {
		pop = healthyPopulation{}
	}
	return &Selector{cfg: cfg.Normalized(), pop: pop}
}

// Valid applies the rejection filter that runs before any scoring.
func (s *Selector) Valid(h Hunter, c Candidate) bool {
	if c.Dead || c.Protected {
		return false
	}
	if c.ID == h.ID {
		return false
	}
	if h.Pos.Distance(c.Pos) > s.cfg.MaxRange {
		return false
	}
	if h.Height > 0 {
		ratio := c.Height / h.Height
		if ratio > maxPreyHeightRatio || ratio < minPreyHeightRatio {
			return false
		}
	}
	return true
}

// EnergyGain estimates the energy yielded by the candidate. Base gain is
// proportional to bounding volume; species class and condition multipliers
// follow. Juveniles are far easier to catch but yield far less, so the
// juvenile multipliers here and in HandlingTime roughly offset in ranking
// but not in absolute score.
func EnergyGain(c Candidate) float64 {
	volume := c.Height * c.Width * c.Width
	gain := volume * 10

	switch c.Size {
	case SizeLarge:
		gain *= sizeMultLarge
	case SizeMedium:
		gain *= sizeMultMedium
	default:
		gain *= sizeMultSmall
	}

	if c.HealthFrac < injuredHealthFrac {
		gain *= injuredEnergyMult
	}
	if c.Juvenile {
		gain *= juvenileEnergyMult
	}
	return gain
}

// HandlingTime estimates the cost of subduing the candidate once caught.
func (s *Selector) HandlingTime(h Hunter, c Candidate) float64 {
	t := s.cfg.BaseHandlingTime + c.Height*s.cfg.HandlingSizeFactor

	if c.MaxSpeed > h.MaxSpeed {
		t += (c.MaxSpeed - h.MaxSpeed) * s.cfg.SpeedPenaltyFactor
	}
	// Confusion and group-defense effect: each nearby conspecific makes the
	// kill harder.
	t += float64(c.GroupCount) * s.cfg.GroupPenaltyFactor

	if c.HealthFrac < injuredHealthFrac {
		t *= injuredHandlingMult
	}
	if c.Juvenile {
		t *= juvenileHandlingMult
	}
	return t
}

// PursuitTime estimates chase duration. A hunter slower than its prey pays
// an explicit distance-doubling penalty instead of a divide-by-zero chase.
func PursuitTime(h Hunter, c Candidate) float64 {
	dist := h.Pos.Distance(c.Pos)
	closing := h.MaxSpeed - c.MaxSpeed
	if closing > 0 {
		return dist / closing
	}
	return dist * 2
}

// Score is the foraging cost: time invested per unit of energy. Lower is
// better; a candidate yielding no energy scores +Inf.
func (s *Selector) Score(h Hunter, c Candidate) float64 {
	gain := EnergyGain(c)
	if gain < minEnergyGain {
		return math.Inf(1)
	}
	raw := (s.HandlingTime(h, c) + PursuitTime(h, c)) / gain
	ratio := s.pop.Ratio(c.Species, h.Pos, s.cfg.MaxRange)
	return AdjustForScarcity(raw, ratio, s.cfg.ScarcityThreshold)
}

// AdjustForScarcity applies the prey-switching penalty: below the scarcity
// threshold the score is multiplied by (2 - ratio), discouraging hunting of
// depressed populations. Healthy populations (ratio >= 1) pass through
// unchanged, as does anything at or above the threshold.
func AdjustForScarcity(score, ratio, threshold float64) float64 {
	if ratio < threshold {
		return score * (2.0 - ratio)
	}
	return score
}

// Scored pairs a candidate with its final score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// Rank returns every viable candidate in ascending score order. Ties break
// by closest distance, then lowest id, so ranking is deterministic.
func (s *Selector) Rank(h Hunter, candidates []Candidate) []Scored {
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if !s.Valid(h, c) {
			continue
		}
		if s.pop.Ratio(c.Species, h.Pos, s.cfg.MaxRange) < s.cfg.SustainabilityFloor {
			continue
		}
		score := s.Score(h, c)
		if math.IsInf(score, 1) {
			continue
		}
		out = append(out, Scored{Candidate: c, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		di := h.Pos.DistanceSq(out[i].Candidate.Pos)
		dj := h.Pos.DistanceSq(out[j].Candidate.Pos)
		if di != dj {
			return di < dj
		}
		return out[i].Candidate.ID < out[j].Candidate.ID
	})
	return out
}

// Best returns the minimum-score candidate, if any survive the filters.
func (s *Selector) Best(h Hunter, candidates []Candidate) (Scored, bool) {
	ranked := s.Rank(h, candidates)
	if len(ranked) == 0 {
		return Scored{}, false
	}
	return ranked[0], true
}
