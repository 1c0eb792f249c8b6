// Package species holds the authoring configuration for each animal type:
// the named numeric constants (speed modifiers, ranges, durations,
// thresholds) every goal is constructed with. Configs are embedded JSON
// documents validated against an embedded schema at load time; global
// simulation tuning loads from YAML.
package species

import "github.com/neilhuang007/better-ecology-sub002/internal/needs"

// Config is one species' full authoring document.
type Config struct {
	Name      string  `json:"name" jsonschema:"title=Species name,pattern=^[a-z][a-z0-9_]*$"`
	Diet      string  `json:"diet" jsonschema:"enum=herbivore,enum=carnivore,enum=omnivore"`
	SizeClass string  `json:"size_class" jsonschema:"enum=small,enum=medium,enum=large"`
	Height    float64 `json:"height"`
	Width     float64 `json:"width"`
	MaxSpeed  float64 `json:"max_speed"`

	Needs NeedsConfig `json:"needs"`

	Flee   *FleeConfig   `json:"flee,omitempty"`
	Graze  *GrazeConfig  `json:"graze,omitempty"`
	Drink  *DrinkConfig  `json:"drink,omitempty"`
	Hunt   *HuntConfig   `json:"hunt,omitempty"`
	Ambush *AmbushConfig `json:"ambush,omitempty"`
	Nest   *NestConfig   `json:"nest,omitempty"`
	Roost  *RoostConfig  `json:"roost,omitempty"`
	Bathe  *BatheConfig  `json:"bathe,omitempty"`
	Bond   *BondConfig   `json:"bond,omitempty"`
	Pack   *PackConfig   `json:"pack,omitempty"`
}

// NeedsConfig tunes reserve decay and the threshold predicates.
type NeedsConfig struct {
	HungerDecay float64 `json:"hunger_decay"`
	ThirstDecay float64 `json:"thirst_decay"`
	Hungry      float64 `json:"hungry"`
	Starving    float64 `json:"starving"`
	Satisfied   float64 `json:"satisfied"`
	Thirsty     float64 `json:"thirsty"`
	Dehydrated  float64 `json:"dehydrated"`
	Hydrated    float64 `json:"hydrated"`
}

// Thresholds converts the authored cutoffs into the needs model's form.
// Unset fields keep the defaults so sparse documents stay usable.
func (n NeedsConfig) Thresholds() needs.Thresholds {
	t := needs.DefaultThresholds()
	if n.Hungry > 0 {
		t.Hungry = n.Hungry
	}
	if n.Starving > 0 {
		t.Starving = n.Starving
	}
	if n.Satisfied > 0 {
		t.Satisfied = n.Satisfied
	}
	if n.Thirsty > 0 {
		t.Thirsty = n.Thirsty
	}
	if n.Dehydrated > 0 {
		t.Dehydrated = n.Dehydrated
	}
	if n.Hydrated > 0 {
		t.Hydrated = n.Hydrated
	}
	return t
}

// FleeConfig tunes predator evasion. One threshold set: detection at
// DetectRadius, zigzag evasion inside the ZigzagMin..ZigzagMax band,
// straight sprint otherwise.
type FleeConfig struct {
	Predators        []string `json:"predators"`
	DetectRadius     float64  `json:"detect_radius"`
	ZigzagMin        float64  `json:"zigzag_min"`
	ZigzagMax        float64  `json:"zigzag_max"`
	SprintMultiplier float64  `json:"sprint_multiplier"`
	SafeRadius       float64  `json:"safe_radius"`
	GiveUpTicks      uint64   `json:"give_up_ticks"`
	RecoverTicks     uint64   `json:"recover_ticks"`
}

// GrazeConfig tunes feeding on vegetation.
type GrazeConfig struct {
	SearchRadius    float64 `json:"search_radius"`
	EatTicks        uint64  `json:"eat_ticks"`
	Restore         float64 `json:"restore"`
	GiveUpTicks     uint64  `json:"give_up_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
	CooldownFailure uint64  `json:"cooldown_failure"`
}

// DrinkConfig tunes water seeking.
type DrinkConfig struct {
	SearchRadius    float64 `json:"search_radius"`
	DrinkTicks      uint64  `json:"drink_ticks"`
	Restore         float64 `json:"restore"`
	GiveUpTicks     uint64  `json:"give_up_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
	CooldownFailure uint64  `json:"cooldown_failure"`
}

// HuntConfig tunes the stalk/chase/pounce predator goal and its prey
// scoring.
type HuntConfig struct {
	Prey []string `json:"prey"`

	MaxRange     float64 `json:"max_range"`
	ContactRange float64 `json:"contact_range"`
	ChaseRange   float64 `json:"chase_range"`

	PredictionCap float64 `json:"prediction_cap"`
	MaxForce      float64 `json:"max_force"`

	BaseHandlingTime   float64 `json:"base_handling_time"`
	HandlingSizeFactor float64 `json:"handling_size_factor"`
	SpeedPenaltyFactor float64 `json:"speed_penalty_factor"`
	GroupPenaltyFactor float64 `json:"group_penalty_factor"`
	ProtectionRadius   float64 `json:"protection_radius"`

	ScarcityThreshold   float64 `json:"scarcity_threshold"`
	SustainabilityFloor float64 `json:"sustainability_floor"`

	RestoreOnKill   float64 `json:"restore_on_kill"`
	GiveUpTicks     uint64  `json:"give_up_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
	CooldownFailure uint64  `json:"cooldown_failure"`
}

// AmbushConfig tunes the lie-in-wait variant.
type AmbushConfig struct {
	TriggerRange    float64 `json:"trigger_range"`
	BurstMultiplier float64 `json:"burst_multiplier"`
	MaxWaitTicks    uint64  `json:"max_wait_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
	CooldownFailure uint64  `json:"cooldown_failure"`
}

// NestConfig tunes nest site selection and construction.
type NestConfig struct {
	SearchRadius      float64 `json:"search_radius"`
	MaterialsNeeded   int     `json:"materials_needed"`
	ProgressPerTick   float64 `json:"progress_per_tick"`
	DisturbanceRadius float64 `json:"disturbance_radius"`
	GiveUpTicks       uint64  `json:"give_up_ticks"`
	CooldownSuccess   uint64  `json:"cooldown_success"`
	CooldownFailure   uint64  `json:"cooldown_failure"`
}

// RoostConfig tunes returning to the nest to rest.
type RoostConfig struct {
	RestTicks       uint64 `json:"rest_ticks"`
	CooldownSuccess uint64 `json:"cooldown_success"`
}

// BatheConfig tunes water bathing.
type BatheConfig struct {
	SearchRadius    float64 `json:"search_radius"`
	BatheTicks      uint64  `json:"bathe_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
	CooldownFailure uint64  `json:"cooldown_failure"`
}

// BondConfig tunes social bonding with conspecifics.
type BondConfig struct {
	SearchRadius    float64 `json:"search_radius"`
	BondTicks       uint64  `json:"bond_ticks"`
	CooldownSuccess uint64  `json:"cooldown_success"`
}

// PackConfig tunes coordinated pack hunting.
type PackConfig struct {
	FlankDistance    float64 `json:"flank_distance"`
	AttackRange      float64 `json:"attack_range"`
	MinAngleDeg      float64 `json:"min_angle_deg"`
	MaxAngleDeg      float64 `json:"max_angle_deg"`
	PositionedQuorum int     `json:"positioned_quorum"`
	TimeoutTicks     uint64  `json:"timeout_ticks"`
	ShareCooldown    uint64  `json:"share_cooldown"`
}
