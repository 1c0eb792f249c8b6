package goal

import (
	"math"
	"testing"

	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

func TestHungryHerbivoreGrazes(t *testing.T) {
	s := newScenario(t)
	rabbit := s.addAnimal("rabbit", vecmath.Vec3{})
	s.addProp(world.KindPlant, "grass", vecmath.Vec3{X: 3})

	rabbit.st.Needs.SetHunger(30)

	ok := s.stepUntil(400, func() bool {
		return rabbit.st.Needs.Hunger() > 60
	})
	if !ok {
		t.Fatalf("hunger never restored: %v after %d ticks", rabbit.st.Needs.Hunger(), s.tick)
	}

	if got := rabbit.st.Needs.Hunger(); math.Abs(got-65) > 1e-9 {
		t.Fatalf("restore should apply exactly once: hunger=%v want 65", got)
	}
	if n := s.feedback.Count("eat"); n != 1 {
		t.Fatalf("expected a single eat effect, got %d", n)
	}
}

func TestSatisfiedPredatorNeverHunts(t *testing.T) {
	s := newScenario(t)
	wolf := s.addAnimal("wolf", vecmath.Vec3{})
	rabbit := s.addProp(world.KindAnimal, "rabbit", vecmath.Vec3{X: 5})

	// Freshly spawned state is fully satisfied.
	if !wolf.st.Needs.Satisfied() {
		t.Fatalf("precondition: wolf should be satisfied")
	}

	s.step(100)

	if rabbit.Dead {
		t.Fatalf("satisfied wolf must not kill")
	}
	if n := s.feedback.Count("kill"); n != 0 {
		t.Fatalf("expected zero kill effects, got %d", n)
	}
	for _, name := range wolf.runner.Active() {
		if name == "hunt" || name == "pack_hunt_alpha" {
			t.Fatalf("hunting goal active while satisfied: %s", name)
		}
	}
}

func TestPursuitClosesFromChaseBand(t *testing.T) {
	s := newScenario(t)
	wolf := s.addAnimal("wolf", vecmath.Vec3{})
	rabbit := s.addProp(world.KindAnimal, "rabbit", vecmath.Vec3{X: 5})

	wolf.st.Needs.SetHunger(30)

	ok := s.stepUntil(200, func() bool { return rabbit.Dead })
	if !ok {
		t.Fatalf("wolf never reached contact range; dist=%v",
			wolf.entity.Pos.Distance(rabbit.Pos))
	}
	if wolf.st.Needs.Hunger() <= 30 {
		t.Fatalf("kill should restore hunger, got %v", wolf.st.Needs.Hunger())
	}
	if n := s.feedback.Count("kill"); n != 1 {
		t.Fatalf("expected one kill effect, got %d", n)
	}
}

func TestPackHuntCoordination(t *testing.T) {
	s := newScenario(t)
	alpha := s.addAnimal("wolf", vecmath.Vec3{})
	beta := s.addAnimal("wolf", vecmath.Vec3{X: 2, Z: 2})
	omega := s.addAnimal("wolf", vecmath.Vec3{X: -2, Z: 2})
	rabbit := s.addProp(world.KindAnimal, "rabbit", vecmath.Vec3{X: 10})

	rec := s.packs.Create()
	alpha.st.PackID, alpha.st.Rank = rec.ID, pack.RankAlpha
	beta.st.PackID, beta.st.Rank = rec.ID, pack.RankBeta
	omega.st.PackID, omega.st.Rank = rec.ID, pack.RankOmega

	// Only the alpha is hungry enough to initiate; the others join the
	// hunt purely by seeing the mark.
	alpha.st.Needs.SetHunger(30)
	beta.st.Needs.SetHunger(60)
	omega.st.Needs.SetHunger(60)

	if rec.HasTarget() {
		t.Fatalf("no mark should exist before any decision tick")
	}

	s.step(1)
	if rec.TargetID != rabbit.ID {
		t.Fatalf("alpha should mark the rabbit, got %q", rec.TargetID)
	}

	betaStart := beta.entity.Pos
	omegaStart := omega.entity.Pos

	s.step(10)
	if beta.entity.Pos.Distance(betaStart) == 0 {
		t.Fatalf("beta never moved toward its flank station")
	}
	if omega.entity.Pos.Distance(omegaStart) == 0 {
		t.Fatalf("omega never moved toward its flank station")
	}
	// The two flankers take stations on opposite sides of the prey's
	// heading line, so they must not be converging on the same point.
	if beta.entity.Pos.Distance(omega.entity.Pos) < 2 {
		t.Fatalf("flankers collapsed onto one station: beta=%v omega=%v",
			beta.entity.Pos, omega.entity.Pos)
	}

	ok := s.stepUntil(600, func() bool { return rabbit.Dead })
	if !ok {
		t.Fatalf("pack never completed the hunt")
	}

	if rec.HasTarget() {
		t.Fatalf("mark must clear after the kill")
	}
	if s.hunts.Get(rec.ID) != nil {
		t.Fatalf("coordinator must retire after the kill")
	}
	if beta.st.Needs.Hunger() <= 60 {
		t.Fatalf("kill should be shared with the pack, beta hunger=%v", beta.st.Needs.Hunger())
	}
}

func TestPackHuntMarkClearsWhenAlphaStops(t *testing.T) {
	s := newScenario(t)
	alpha := s.addAnimal("wolf", vecmath.Vec3{})
	s.addProp(world.KindAnimal, "rabbit", vecmath.Vec3{X: 10})

	rec := s.packs.Create()
	alpha.st.PackID, alpha.st.Rank = rec.ID, pack.RankAlpha
	alpha.st.Needs.SetHunger(30)

	s.step(1)
	if !rec.HasTarget() {
		t.Fatalf("alpha should mark the rabbit")
	}

	// The coordinator goes down mid-hunt; nothing may keep chasing a
	// mark nobody coordinates.
	alpha.runner.StopAll(s.agentCtx(alpha))

	if rec.HasTarget() {
		t.Fatalf("a collapsed hunt must release its mark")
	}
	if s.hunts.Get(rec.ID) != nil {
		t.Fatalf("coordinator must retire with the alpha")
	}
}

func TestPackHuntTimesOut(t *testing.T) {
	s := newScenario(t)
	alpha := s.addAnimal("wolf", vecmath.Vec3{})
	rabbit := s.addProp(world.KindAnimal, "rabbit", vecmath.Vec3{X: 10})

	rec := s.packs.Create()
	alpha.st.PackID, alpha.st.Rank = rec.ID, pack.RankAlpha
	alpha.st.Needs.SetHunger(30)

	s.step(1)
	if !rec.HasTarget() {
		t.Fatalf("alpha should mark the rabbit")
	}

	// With no flankers the quorum can never be met; the coordinator must
	// abort at its global timeout and release the mark.
	wolfCfg := s.agentCtx(alpha).Config
	s.step(int(wolfCfg.Pack.TimeoutTicks))

	if rec.HasTarget() {
		t.Fatalf("timed-out hunt must clear the mark")
	}
	if rabbit.Dead {
		t.Fatalf("lone positioning alpha should not complete a pack kill")
	}
}

func TestPreyFleesApproachingPredator(t *testing.T) {
	s := newScenario(t)
	rabbit := s.addAnimal("rabbit", vecmath.Vec3{})
	wolf := s.addProp(world.KindAnimal, "wolf", vecmath.Vec3{X: 10})

	start := rabbit.entity.Pos
	s.step(5)

	if s.feedback.Count("alarm") == 0 {
		t.Fatalf("flee should announce itself")
	}
	after := rabbit.entity.Pos
	if after.Distance(wolf.Pos) <= start.Distance(wolf.Pos) {
		t.Fatalf("rabbit should gain distance from the wolf: %v -> %v",
			start.Distance(wolf.Pos), after.Distance(wolf.Pos))
	}

	ok := s.stepUntil(500, func() bool {
		for _, name := range rabbit.runner.Active() {
			if name == "flee" {
				return false
			}
		}
		return true
	})
	if !ok {
		t.Fatalf("rabbit never stood down after escaping")
	}
}

func TestBondYieldsToUrgentSurvival(t *testing.T) {
	s := newScenario(t)
	a := s.addAnimal("rabbit", vecmath.Vec3{})
	s.addAnimal("rabbit", vecmath.Vec3{X: 1})

	s.step(1)

	bonding := false
	for _, name := range a.runner.Active() {
		if name == "bond" {
			bonding = true
		}
	}
	if !bonding {
		t.Fatalf("content rabbits next to each other should bond, active=%v", a.runner.Active())
	}

	// Starvation is an urgent survival signal; the social goal must yield.
	a.st.Needs.SetHunger(5)
	s.step(1)
	for _, name := range a.runner.Active() {
		if name == "bond" {
			t.Fatalf("bond must yield to urgent survival")
		}
	}
}
