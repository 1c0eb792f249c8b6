// Command simulate runs the standalone ecology demo: a grid world seeded
// with water, vegetation, and the bundled species, stepped on a fixed tick
// with decisions streamed to websocket observers and agent state persisted
// to sqlite.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/goal"
	"github.com/neilhuang007/better-ecology-sub002/internal/needs"
	"github.com/neilhuang007/better-ecology-sub002/internal/observe"
	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/species"
	"github.com/neilhuang007/better-ecology-sub002/internal/state"
	"github.com/neilhuang007/better-ecology-sub002/internal/state/persist"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

func main() {
	var (
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (defaults used when empty)")
		dbPath     = flag.String("db", "ecology.db", "sqlite database path")
		listenAddr = flag.String("listen", ":8084", "observer websocket listen address")
		maxTicks   = flag.Uint64("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	tun := species.DefaultTuning()
	if *tuningPath != "" {
		loaded, err := species.LoadTuning(*tuningPath)
		if err != nil {
			log.Error("load tuning", "path", *tuningPath, "err", err)
			os.Exit(1)
		}
		tun = loaded
	}

	sim, err := newSimulation(tun, log)
	if err != nil {
		log.Error("build simulation", "err", err)
		os.Exit(1)
	}

	db, err := persist.Open(*dbPath)
	if err != nil {
		log.Error("open database", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Load(sim.store); err != nil {
		log.Error("load persisted state", "err", err)
		os.Exit(1)
	}

	broadcaster := observe.NewBroadcaster(log)
	defer broadcaster.Close()

	httpSrv := &http.Server{Addr: *listenAddr}
	http.HandleFunc("/observe", broadcaster.Handle)
	go func() {
		log.Info("observer stream listening", "addr", *listenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Second / time.Duration(tun.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("simulation running",
		"species", species.GlobalLibrary.Names(),
		"agents", len(sim.agents),
		"tick_rate_hz", tun.TickRateHz)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			sim.step()
			broadcaster.Publish(sim.snapshot())

			if tun.PersistEveryTicks > 0 && sim.tick%tun.PersistEveryTicks == 0 {
				if err := db.Save(sim.store); err != nil {
					log.Error("persist agents", "tick", sim.tick, "err", err)
				}
			}
			if tun.SnapshotEveryTicks > 0 && sim.tick%tun.SnapshotEveryTicks == 0 {
				sim.writeSnapshot(*dbPath + ".snap")
			}
			if *maxTicks > 0 && sim.tick >= *maxTicks {
				break loop
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	httpSrv.Shutdown(shutdownCtx)

	if err := db.Save(sim.store); err != nil {
		log.Error("final persist", "err", err)
	}
	log.Info("simulation stopped", "tick", sim.tick)
}

// simAgent bundles one animal's entity, brain, and executor.
type simAgent struct {
	entity *world.Entity
	st     *state.AgentState
	cfg    *species.Config
	nav    *world.DirectNavigator
	runner *goal.Runner
	rng    *rand.Rand
}

type simulation struct {
	log *slog.Logger
	tun species.Tuning

	grid  *world.Grid
	veg   *world.Vegetation
	store *state.Store
	packs *pack.Registry
	hunts *goal.HuntBoard

	agents []*simAgent
	tick   uint64
}

func newSimulation(tun species.Tuning, log *slog.Logger) (*simulation, error) {
	s := &simulation{
		log:   log,
		tun:   tun,
		grid:  world.NewGrid(tun.CellSize),
		veg:   world.NewVegetation(tun.Seed, tun.VegetationScale),
		store: state.NewStore(needs.DefaultThresholds()),
		packs: pack.NewRegistry(),
		hunts: goal.NewHuntBoard(),
	}

	rng := rand.New(rand.NewSource(tun.Seed))
	s.seedTerrain(rng)

	for name, count := range tun.Spawns {
		cfg := species.GlobalLibrary.Get(name)
		if cfg == nil {
			log.Warn("unknown species in spawn table", "species", name)
			continue
		}
		s.grid.SetExpectedPopulation(cfg.Name, float64(count))
		for i := 0; i < count; i++ {
			s.spawnAnimal(cfg, s.randomPos(rng))
		}
	}

	s.formPacks()
	return s, nil
}

// seedTerrain scatters water pools and plants across the world.
func (s *simulation) seedTerrain(rng *rand.Rand) {
	r := s.tun.WorldRadius
	pools := int(math.Max(4, r/16))
	for i := 0; i < pools; i++ {
		pos := s.randomPos(rng)
		s.grid.Insert(&world.Entity{
			ID:      uuid.NewString(),
			Species: "water",
			Kind:    world.KindWater,
			Pos:     pos,
		})
	}

	plants := int(math.Max(16, r/2))
	for i := 0; i < plants; i++ {
		pos := s.randomPos(rng)
		if !s.veg.Grassy(pos.X, pos.Z) {
			continue
		}
		s.grid.Insert(&world.Entity{
			ID:      uuid.NewString(),
			Species: "grass",
			Kind:    world.KindPlant,
			Pos:     pos,
			Height:  0.2,
			Width:   0.2,
		})
	}
}

func (s *simulation) randomPos(rng *rand.Rand) vecmath.Vec3 {
	r := s.tun.WorldRadius
	return vecmath.Vec3{
		X: (rng.Float64()*2 - 1) * r,
		Z: (rng.Float64()*2 - 1) * r,
	}
}

func (s *simulation) spawnAnimal(cfg *species.Config, pos vecmath.Vec3) {
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
	s.agents = append(s.agents, &simAgent{
		entity: ent,
		st:     st,
		cfg:    cfg,
		nav:    world.NewDirectNavigator(ent, s.grid),
		runner: goal.NewRunner(goal.GoalsFor(cfg, s.grid), s.log),
		rng:    rand.New(rand.NewSource(s.tun.Seed ^ int64(len(s.agents)))),
	})
}

// formPacks groups each pack-capable species into one pack per spawn
// batch, first member promoted to alpha, second to beta.
func (s *simulation) formPacks() {
	byPack := make(map[string][]*simAgent)
	for _, ag := range s.agents {
		if ag.cfg.Pack != nil {
			byPack[ag.cfg.Name] = append(byPack[ag.cfg.Name], ag)
		}
	}
	for name, members := range byPack {
		if len(members) < 2 {
			continue
		}
		rec := s.packs.Create()
		for i, ag := range members {
			ag.st.PackID = rec.ID
			switch i {
			case 0:
				ag.st.Rank = pack.RankAlpha
			case 1:
				ag.st.Rank = pack.RankBeta
			default:
				ag.st.Rank = pack.RankOmega
			}
		}
		s.log.Info("pack formed", "species", name, "members", len(members), "pack", rec.ID)
	}
}

// step runs one tick: needs decay, decisions, then movement.
func (s *simulation) step() {
	s.tick++
	for _, ag := range s.agents {
		if ag.entity.Dead {
			continue
		}
		ag.st.Needs.Decay(ag.cfg.Needs.HungerDecay, ag.cfg.Needs.ThirstDecay)
		ag.runner.Update(&goal.Agent{
			Entity:   ag.entity,
			State:    ag.st,
			Config:   ag.cfg,
			Library:  species.GlobalLibrary,
			Nav:      ag.nav,
			Query:    s.grid,
			Veg:      s.veg,
			Feedback: world.NullFeedback{},
			States:   s.store,
			Packs:    s.packs,
			Hunts:    s.hunts,
			Rand:     ag.rng,
			Tick:     s.tick,
		})
	}
	for _, ag := range s.agents {
		ag.nav.Advance()
	}
}

func (s *simulation) snapshot() observe.TickSnapshot {
	snap := observe.TickSnapshot{Tick: s.tick}
	for _, ag := range s.agents {
		a := observe.AgentSnapshot{
			ID:      ag.entity.ID,
			Species: ag.entity.Species,
			X:       ag.entity.Pos.X,
			Z:       ag.entity.Pos.Z,
			Hunger:  ag.st.Needs.Hunger(),
			Thirst:  ag.st.Needs.Thirst(),
			Goals:   ag.runner.Active(),
			Dead:    ag.entity.Dead,
		}
		if ag.st.InPack() {
			a.PackID = ag.st.PackID.String()
			a.Rank = ag.st.Rank.String()
		}
		snap.Agents = append(snap.Agents, a)
	}
	return snap
}

func (s *simulation) writeSnapshot(path string) {
	f, err := os.Create(path)
	if err != nil {
		s.log.Error("create snapshot", "path", path, "err", err)
		return
	}
	defer f.Close()
	if err := persist.WriteSnapshot(f, s.store, s.tick); err != nil {
		s.log.Error("write snapshot", "path", path, "err", err)
	}
}
