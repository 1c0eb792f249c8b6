// Package steering computes movement forces from (position, velocity) pairs.
// Nothing here mutates world state: every function returns a force vector
// for the caller's navigation layer to apply.
package steering

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

const (
	// arriveSettleDistance is the numerical settle zone: inside it Arrive
	// returns zero force instead of chasing sub-decimal offsets.
	arriveSettleDistance = 0.1

	// closingEpsilon is the minimum closing speed treated as an actual
	// approach when predicting interception.
	closingEpsilon = 1e-3
)

// Seek returns the force steering the agent toward target at maxSpeed.
func Seek(pos, vel, target vecmath.Vec3, maxSpeed float64) vecmath.Vec3 {
	desired := target.Sub(pos).Normalize().Scale(maxSpeed)
	return desired.Sub(vel)
}

// Flee mirrors Seek: the desired velocity points directly away from threat.
func Flee(pos, vel, threat vecmath.Vec3, maxSpeed float64) vecmath.Vec3 {
	desired := pos.Sub(threat).Normalize().Scale(maxSpeed)
	return desired.Sub(vel)
}

// Arrive behaves like Seek outside slowRadius and ramps the desired speed
// linearly down to zero inside it, so agents settle instead of orbiting.
func Arrive(pos, vel, target vecmath.Vec3, maxSpeed, slowRadius float64) vecmath.Vec3 {
	offset := target.Sub(pos)
	dist := offset.Length()
	if dist < arriveSettleDistance {
		return vecmath.Zero
	}
	speed := maxSpeed
	if slowRadius > 0 && dist < slowRadius {
		speed = maxSpeed * dist / slowRadius
	}
	desired := offset.Scale(speed / dist)
	return desired.Sub(vel)
}

// LimitForce clamps the force's magnitude to maxForce without changing its
// direction.
func LimitForce(force vecmath.Vec3, maxForce float64) vecmath.Vec3 {
	return force.Limit(maxForce)
}

// PursuitConfig tunes the constant-bearing interception predictor.
type PursuitConfig struct {
	MaxSpeed      float64
	MaxForce      float64
	PredictionCap float64 // seconds (ticks) of lead time when not closing
}

// Pursue steers toward the predicted interception point of a moving target
// rather than its current position. Closing speed is the negative projection
// of the relative velocity onto the line of sight: when positive the
// interception time is distance over closing speed, capped at twice the
// configured prediction window; when the geometry is not closing the cap
// itself is used. Chasing the current position instead loses against any
// target faster than the prediction window.
func Pursue(pos, vel, targetPos, targetVel vecmath.Vec3, cfg PursuitConfig) vecmath.Vec3 {
	toTarget := targetPos.Sub(pos)
	dist := toTarget.Length()
	if dist == 0 {
		return vecmath.Zero
	}

	los := toTarget.Scale(1 / dist)
	relVel := targetVel.Sub(vel)
	closing := -relVel.Dot(los)

	lead := cfg.PredictionCap
	if closing > closingEpsilon {
		lead = dist / closing
		if max := 2 * cfg.PredictionCap; lead > max {
			lead = max
		}
	}

	predicted := targetPos.Add(targetVel.Scale(lead))
	force := Seek(pos, vel, predicted, cfg.MaxSpeed)
	return LimitForce(force, cfg.MaxForce)
}

// PredictIntercept exposes the raw predicted point, used by pounce goals to
// aim a jump rather than a continuous chase.
func PredictIntercept(pos, vel, targetPos, targetVel vecmath.Vec3, predictionCap float64) vecmath.Vec3 {
	toTarget := targetPos.Sub(pos)
	dist := toTarget.Length()
	if dist == 0 {
		return targetPos
	}
	los := toTarget.Scale(1 / dist)
	relVel := targetVel.Sub(vel)
	closing := -relVel.Dot(los)

	lead := predictionCap
	if closing > closingEpsilon {
		lead = dist / closing
		if max := 2 * predictionCap; lead > max {
			lead = max
		}
	}
	return targetPos.Add(targetVel.Scale(lead))
}
