package goal

import (
	"math"

	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
	"github.com/neilhuang007/better-ecology-sub002/internal/world"
)

// nearestOfKind returns the closest live entity of the kind within radius,
// nil when none. The query already sorts by distance with an id tie break,
// so the result is deterministic.
func nearestOfKind(a *Agent, radius float64, kind world.Kind, pred func(*world.Entity) bool) *world.Entity {
	found := a.Query.NearbyOfKind(a.Entity.Pos, radius, kind, func(e *world.Entity) bool {
		if e.Dead {
			return false
		}
		return pred == nil || pred(e)
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// nearestPredator returns the closest listed predator within radius.
func nearestPredator(a *Agent, radius float64, predators []string) *world.Entity {
	if len(predators) == 0 {
		return nil
	}
	byName := make(map[string]bool, len(predators))
	for _, p := range predators {
		byName[p] = true
	}
	return nearestOfKind(a, radius, world.KindAnimal, func(e *world.Entity) bool {
		return byName[e.Species] && e.ID != a.Entity.ID
	})
}

// grassySpot samples random points around the agent and returns the
// densest vegetation hit. ok is false when every sample landed on bare
// ground and there is no vegetation field at all.
func grassySpot(a *Agent, radius float64, samples int) (vecmath.Vec3, bool) {
	if a.Veg == nil {
		return vecmath.Zero, false
	}
	best := vecmath.Zero
	bestDensity := -1.0
	for i := 0; i < samples; i++ {
		angle := a.Rand.Float64() * 2 * math.Pi
		dist := a.Rand.Float64() * radius
		p := vecmath.Vec3{
			X: a.Entity.Pos.X + dist*math.Cos(angle),
			Z: a.Entity.Pos.Z + dist*math.Sin(angle),
		}
		if d := a.Veg.Density(p.X, p.Z); d > bestDensity {
			best, bestDensity = p, d
		}
	}
	if bestDensity < 0 {
		return vecmath.Zero, false
	}
	return best, a.Veg.Grassy(best.X, best.Z) || bestDensity > 0.4
}

// moveOrFail routes toward the target, trying the planner first and
// falling back to a direct attempt. False means movement is impossible.
func moveOrFail(a *Agent, target vecmath.Vec3, speedMul float64) bool {
	if path := a.Nav.CreatePath(target); path != nil {
		return a.Nav.MoveTo(path.Target, speedMul)
	}
	return a.Nav.MoveTo(target, speedMul)
}
