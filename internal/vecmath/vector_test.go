package vecmath

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func vecsClose(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestAddSubScale(t *testing.T) {
	a := New(1, 2, 3)
	b := New(-4, 0.5, 2)

	if got := a.Add(b); !vecsClose(got, New(-3, 2.5, 5)) {
		t.Fatalf("add: got %+v", got)
	}
	if got := a.Sub(b); !vecsClose(got, New(5, 1.5, 1)) {
		t.Fatalf("sub: got %+v", got)
	}
	if got := a.Scale(2); !vecsClose(got, New(2, 4, 6)) {
		t.Fatalf("scale: got %+v", got)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := Zero.Normalize(); !got.IsZero() {
		t.Fatalf("zero normalize: got %+v", got)
	}
	n := New(3, 0, 4).Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Fatalf("unit length: got %f", n.Length())
	}
	if !vecsClose(n, New(0.6, 0, 0.8)) {
		t.Fatalf("direction: got %+v", n)
	}
}

func TestLimit(t *testing.T) {
	v := New(3, 0, 4)
	if got := v.Limit(10); !vecsClose(got, v) {
		t.Fatalf("limit should leave short vectors alone, got %+v", got)
	}
	clamped := v.Limit(2.5)
	if !almostEqual(clamped.Length(), 2.5) {
		t.Fatalf("clamped length: got %f", clamped.Length())
	}
	// Direction preserved.
	if !vecsClose(clamped.Normalize(), v.Normalize()) {
		t.Fatalf("clamp changed direction: %+v vs %+v", clamped.Normalize(), v.Normalize())
	}
}

func TestDotCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := New(0, 0, 1)

	if got := x.Dot(y); got != 0 {
		t.Fatalf("orthogonal dot: got %f", got)
	}
	if got := x.Cross(y); !vecsClose(got, z) {
		t.Fatalf("x cross y: got %+v", got)
	}
	if got := y.Cross(x); !vecsClose(got, z.Scale(-1)) {
		t.Fatalf("y cross x: got %+v", got)
	}
}

func TestDistance(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 6, 3)
	if got := a.Distance(b); !almostEqual(got, 5) {
		t.Fatalf("distance: got %f", got)
	}
	if got := a.DistanceSq(b); !almostEqual(got, 25) {
		t.Fatalf("distance sq: got %f", got)
	}
}

func TestAngle(t *testing.T) {
	x := New(1, 0, 0)
	cases := []struct {
		name string
		o    Vec3
		want float64
	}{
		{"same", New(2, 0, 0), 0},
		{"orthogonal", New(0, 0, 5), math.Pi / 2},
		{"opposite", New(-1, 0, 0), math.Pi},
		{"zero", Zero, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := x.Angle(tc.o); !almostEqual(got, tc.want) {
				t.Fatalf("angle: got %f want %f", got, tc.want)
			}
		})
	}
}

func TestRotateY(t *testing.T) {
	v := New(1, 0, 0)
	quarter := v.RotateY(math.Pi / 2)
	if !vecsClose(quarter, New(0, 0, -1)) {
		t.Fatalf("quarter turn: got %+v", quarter)
	}
	full := v.RotateY(2 * math.Pi)
	if !vecsClose(full, v) {
		t.Fatalf("full turn: got %+v", full)
	}
	// Vertical component untouched.
	lifted := New(1, 7, 0).RotateY(1.3)
	if !almostEqual(lifted.Y, 7) {
		t.Fatalf("rotate moved Y: got %f", lifted.Y)
	}
	// Magnitude preserved.
	if !almostEqual(lifted.Length(), New(1, 7, 0).Length()) {
		t.Fatalf("rotate changed length")
	}
}

func TestLerp(t *testing.T) {
	a := New(0, 0, 0)
	b := New(10, -2, 4)
	if got := a.Lerp(b, 0); !vecsClose(got, a) {
		t.Fatalf("t=0: got %+v", got)
	}
	if got := a.Lerp(b, 1.5); !vecsClose(got, b) {
		t.Fatalf("t clamped: got %+v", got)
	}
	if got := a.Lerp(b, 0.5); !vecsClose(got, New(5, -1, 2)) {
		t.Fatalf("midpoint: got %+v", got)
	}
}
