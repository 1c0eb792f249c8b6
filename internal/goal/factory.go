package goal

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/prey"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
)

// GoalsFor assembles the goal set a species config declares. Order only
// matters for equal priorities, where earlier wins; the list goes from
// most to least urgent as a readability convention.
func GoalsFor(cfg *species.Config, pop prey.Population) []Goal {
	var goals []Goal

	if cfg.Flee != nil {
		goals = append(goals, NewFleeGoal(cfg.Flee))
	}
	if cfg.Hunt != nil {
		if cfg.Pack != nil {
			goals = append(goals,
				NewPackHuntAlphaGoal(cfg.Hunt, cfg.Pack, pop),
				NewPackHuntFlankerGoal(cfg.Hunt, cfg.Pack))
		}
		goals = append(goals, NewHuntGoal(cfg.Hunt, pop))
		if cfg.Ambush != nil {
			goals = append(goals, NewAmbushGoal(cfg.Hunt, cfg.Ambush))
		}
	}
	if cfg.Graze != nil {
		goals = append(goals, NewGrazeGoal(cfg.Graze))
	}
	if cfg.Drink != nil {
		goals = append(goals, NewDrinkGoal(cfg.Drink))
	}
	if cfg.Nest != nil {
		var predators []string
		if cfg.Flee != nil {
			predators = cfg.Flee.Predators
		}
		goals = append(goals, NewNestGoal(cfg.Nest, predators))
	}
	if cfg.Roost != nil {
		goals = append(goals, NewRoostGoal(cfg.Roost))
	}
	if cfg.Bathe != nil {
		goals = append(goals, NewBatheGoal(cfg.Bathe))
	}
	if cfg.Bond != nil {
		goals = append(goals, NewBondGoal(cfg.Bond))
	}
	return goals
}
