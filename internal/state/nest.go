package state

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// NestRecord tracks a building-type goal's site. Created on first use,
// reset to empty when abandoned after a disturbance, completed when
// progress reaches 100 with the location still valid.
type NestRecord struct {
	Active   bool
	Location vecmath.Vec3

	Materials int
	Progress  float64 // 0..100
	Quality   float64

	LastDisturbedTick uint64
}

// Establish starts a nest at the location.
func (n *NestRecord) Establish(loc vecmath.Vec3) {
	*n = NestRecord{Active: true, Location: loc}
}

// AddMaterial records one gathered unit.
func (n *NestRecord) AddMaterial() {
	n.Materials++
}

// AdvanceProgress adds build progress, clamped to 100.
func (n *NestRecord) AdvanceProgress(delta float64) {
	n.Progress += delta
	if n.Progress > 100 {
		n.Progress = 100
	}
}

// Complete reports whether construction finished.
func (n *NestRecord) Complete() bool {
	return n.Active && n.Progress >= 100
}

// Disturb marks a disturbance at the given tick.
func (n *NestRecord) Disturb(tick uint64) {
	n.LastDisturbedTick = tick
}

// Abandon resets the record to empty. The location is forgotten.
func (n *NestRecord) Abandon() {
	*n = NestRecord{}
}
