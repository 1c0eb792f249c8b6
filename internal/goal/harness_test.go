package goal

import (
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/needs"
	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

// scenario is the in-memory rig the behavior tests run against: a grid
// world, a state store, and a set of agents stepped through the same
// decide-then-move loop the simulation runner uses.
type scenario struct {
	t *testing.T

	grid     *world.Grid
	store    *state.Store
	packs    *pack.Registry
	hunts    *HuntBoard
	veg      *world.Vegetation
	feedback *world.RecordingFeedback

	tick   uint64
	agents []*scenarioAgent
}

type scenarioAgent struct {
	entity *world.Entity
	st     *state.AgentState
	nav    *world.DirectNavigator
	runner *Runner
	rand   *rand.Rand
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	return &scenario{
		t:        t,
		grid:     world.NewGrid(8),
		store:    state.NewStore(needs.DefaultThresholds()),
		packs:    pack.NewRegistry(),
		hunts:    NewHuntBoard(),
		veg:      world.NewVegetation(42, 0.05),
		feedback: &world.RecordingFeedback{},
	}
}

// addAnimal spawns a library species with a full goal runner.
func (s *scenario) addAnimal(speciesName string, pos vecmath.Vec3) *scenarioAgent {
	s.t.Helper()
	cfg := species.GlobalLibrary.Get(speciesName)
	if cfg == nil {
		s.t.Fatalf("unknown species %q", speciesName)
	}

	id := uuid.New()
	ent := &world.Entity{
		ID:        id.String(),
		Species:   cfg.Name,
		Kind:      world.KindAnimal,
		Pos:       pos,
		Height:    cfg.Height,
		Width:     cfg.Width,
		MaxSpeed:  cfg.MaxSpeed,
		Health:    100,
		MaxHealth: 100,
	}
	s.grid.Insert(ent)

	st := s.store.EnsureFor(id, cfg.Needs.Thresholds())
	ag := &scenarioAgent{
		entity: ent,
		st:     st,
		nav:    world.NewDirectNavigator(ent, s.grid),
		runner: NewRunner(GoalsFor(cfg, s.grid), slog.Default()),
		rand:   rand.New(rand.NewSource(int64(len(s.agents)) + 7)),
	}
	s.agents = append(s.agents, ag)
	return ag
}

// addProp spawns a passive entity: plant, water, nest site, or an animal
// with no brain.
func (s *scenario) addProp(kind world.Kind, speciesName string, pos vecmath.Vec3) *world.Entity {
	ent := &world.Entity{
		ID:        uuid.NewString(),
		Species:   speciesName,
		Kind:      kind,
		Pos:       pos,
		Height:    0.3,
		Width:     0.2,
		MaxSpeed:  1,
		Health:    100,
		MaxHealth: 100,
	}
	s.grid.Insert(ent)
	return ent
}

func (s *scenario) agentCtx(ag *scenarioAgent) *Agent {
	cfg := species.GlobalLibrary.Get(ag.entity.Species)
	return &Agent{
		Entity:   ag.entity,
		State:    ag.st,
		Config:   cfg,
		Library:  species.GlobalLibrary,
		Nav:      ag.nav,
		Query:    s.grid,
		Veg:      s.veg,
		Feedback: s.feedback,
		States:   s.store,
		Packs:    s.packs,
		Hunts:    s.hunts,
		Rand:     ag.rand,
		Tick:     s.tick,
	}
}

// step runs n decide-then-move ticks across every agent, in spawn order.
func (s *scenario) step(n int) {
	for i := 0; i < n; i++ {
		s.tick++
		for _, ag := range s.agents {
			if ag.entity.Dead {
				continue
			}
			ag.runner.Update(s.agentCtx(ag))
		}
		for _, ag := range s.agents {
			ag.nav.Advance()
		}
	}
}

// stepUntil steps until cond holds or maxTicks elapse, reporting whether
// the condition was met.
func (s *scenario) stepUntil(maxTicks int, cond func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return true
		}
		s.step(1)
	}
	return cond()
}
