package species

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries the global simulation knobs loaded from tuning.yaml.
type Tuning struct {
	TickRateHz         int     `yaml:"tick_rate_hz"`
	WorldRadius        float64 `yaml:"world_radius"`
	Seed               int64   `yaml:"seed"`
	CellSize           float64 `yaml:"cell_size"`
	SnapshotEveryTicks uint64  `yaml:"snapshot_every_ticks"`
	PersistEveryTicks  uint64  `yaml:"persist_every_ticks"`
	VegetationScale    float64 `yaml:"vegetation_scale"`

	Spawns map[string]int `yaml:"spawns"`
}

// DefaultTuning returns the values used when no tuning file is supplied.
func DefaultTuning() Tuning {
	return Tuning{
		TickRateHz:         20,
		WorldRadius:        128,
		Seed:               1337,
		CellSize:           8,
		SnapshotEveryTicks: 2000,
		PersistEveryTicks:  500,
		VegetationScale:    0.05,
		Spawns: map[string]int{
			"wolf":    4,
			"lynx":    2,
			"rabbit":  12,
			"sparrow": 8,
		},
	}
}

// LoadTuning reads a YAML tuning file, falling back to defaults for any
// field left at zero.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = 20
	}
	if t.CellSize <= 0 {
		t.CellSize = 8
	}
	return t, nil
}
