package pack

import (
	"math"

	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// FlankConfig tunes the surround geometry.
type FlankConfig struct {
	// MinAngle and MaxAngle bound the flanking band, in radians off the
	// prey's heading. Defaults cover [90°, 120°].
	MinAngle float64
	MaxAngle float64
	// FlankDistance is how far from the prey the flank point sits.
	FlankDistance float64
	// AttackRange is the radius inside which a flanker counts as positioned.
	AttackRange float64
}

// DefaultFlankConfig returns the stock surround tuning.
func DefaultFlankConfig() FlankConfig {
	return FlankConfig{
		MinAngle:      90 * math.Pi / 180,
		MaxAngle:      120 * math.Pi / 180,
		FlankDistance: 6,
		AttackRange:   3,
	}
}

// FlankAngles distributes n flankers across the configured band. The band
// is divided evenly; alternating members take the left and right side of
// the prey's heading, so the returned angles alternate in sign. For even n
// exactly half the assignments land on each side.
func FlankAngles(n int, cfg FlankConfig) []float64 {
	if n <= 0 {
		return nil
	}
	angles := make([]float64, n)
	span := cfg.MaxAngle - cfg.MinAngle
	for i := 0; i < n; i++ {
		var frac float64
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		magnitude := cfg.MinAngle + span*frac
		if i%2 == 1 {
			magnitude = -magnitude
		}
		angles[i] = magnitude
	}
	return angles
}

// PreyHeading derives the direction the prey is facing: its velocity when
// moving, otherwise the alpha's bearing to the prey, so a stationary target
// still produces a stable surround.
func PreyHeading(preyPos, preyVel, alphaPos vecmath.Vec3) vecmath.Vec3 {
	heading := preyVel.Horizontal().Normalize()
	if !heading.IsZero() {
		return heading
	}
	return preyPos.Sub(alphaPos).Horizontal().Normalize()
}

// FlankPoint computes the surround position for the flanker at the given
// deterministic index among total flankers.
func FlankPoint(preyPos, preyVel, alphaPos vecmath.Vec3, index, total int, cfg FlankConfig) vecmath.Vec3 {
	if index < 0 || total <= 0 {
		return preyPos
	}
	heading := PreyHeading(preyPos, preyVel, alphaPos)
	if heading.IsZero() {
		// Prey on top of the alpha and not moving: no usable bearing.
		heading = vecmath.New(1, 0, 0)
	}
	angles := FlankAngles(total, cfg)
	angle := angles[index%len(angles)]
	return preyPos.Add(heading.RotateY(angle).Scale(cfg.FlankDistance))
}
