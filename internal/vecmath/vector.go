// Package vecmath provides the 3D vector type shared by the steering,
// targeting, and pack-coordination packages.
package vecmath

import "math"

// Vec3 is an immutable 3D vector. All methods return new values.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Zero is the additive identity.
var Zero = Vec3{}

func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	sq := v.LengthSq()
	if sq == 0 {
		return 0
	}
	return math.Sqrt(sq)
}

func (v Vec3) DistanceSq(o Vec3) float64 {
	return v.Sub(o).LengthSq()
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector. The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	sq := v.LengthSq()
	if sq == 0 {
		return Vec3{}
	}
	inv := 1 / math.Sqrt(sq)
	return Vec3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Limit clamps the vector's magnitude to max without changing its direction.
func (v Vec3) Limit(max float64) Vec3 {
	if max <= 0 {
		return Vec3{}
	}
	sq := v.LengthSq()
	if sq <= max*max {
		return v
	}
	return v.Scale(max / math.Sqrt(sq))
}

// Angle returns the angle between v and o in radians, in [0, pi].
// Either vector being zero yields 0.
func (v Vec3) Angle(o Vec3) float64 {
	lv, lo := v.Length(), o.Length()
	if lv == 0 || lo == 0 {
		return 0
	}
	cos := v.Dot(o) / (lv * lo)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// RotateY rotates v about the vertical axis by rad radians. Positive
// angles rotate counter-clockwise when viewed from above.
func (v Vec3) RotateY(rad float64) Vec3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// Lerp interpolates linearly between v and o. t is clamped to [0, 1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	if t <= 0 {
		return v
	}
	if t >= 1 {
		return o
	}
	return v.Add(o.Sub(v).Scale(t))
}

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
