package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Vegetation is a noise-driven grass density field used to seed grazing and
// nesting sites in the demo world. Density is deterministic per seed.
type Vegetation struct {
	noise opensimplex.Noise
	scale float64
}

// NewVegetation builds a field from a seed. scale controls patch size;
// zero uses a sensible default.
func NewVegetation(seed int64, scale float64) *Vegetation {
	if scale <= 0 {
		scale = 0.05
	}
	return &Vegetation{noise: opensimplex.NewNormalized(seed), scale: scale}
}

// Density returns grass density in [0,1] at the given ground coordinates.
func (v *Vegetation) Density(x, z float64) float64 {
	return v.noise.Eval2(x*v.scale, z*v.scale)
}

// Grassy reports whether the location supports grazing.
func (v *Vegetation) Grassy(x, z float64) bool {
	return v.Density(x, z) > 0.55
}
