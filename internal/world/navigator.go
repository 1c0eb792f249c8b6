package world

import (
	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

// DirectNavigator is the stub executor used by the simulation runner and
// the scenario tests: it walks the entity straight toward its target each
// Advance call. Real deployments substitute a pathfinding executor; the
// decision core cannot tell the difference.
type DirectNavigator struct {
	entity *Entity
	grid   *Grid

	target   vecmath.Vec3
	speedMul float64
	active   bool
}

// NewDirectNavigator binds a navigator to one entity. grid may be nil when
// bucket maintenance is not needed.
func NewDirectNavigator(entity *Entity, grid *Grid) *DirectNavigator {
	return &DirectNavigator{entity: entity, grid: grid}
}

// MoveTo implements Navigator.
func (n *DirectNavigator) MoveTo(target vecmath.Vec3, speedMul float64) bool {
	if n.entity == nil || n.entity.Dead {
		return false
	}
	if speedMul <= 0 {
		speedMul = 1
	}
	n.target = target
	n.speedMul = speedMul
	n.active = true
	return true
}

// Stop implements Navigator.
func (n *DirectNavigator) Stop() {
	n.active = false
	if n.entity != nil {
		n.entity.Vel = vecmath.Zero
	}
}

// IsIdle implements Navigator.
func (n *DirectNavigator) IsIdle() bool { return !n.active }

// CreatePath implements Navigator. The direct navigator can always attempt
// a straight line.
func (n *DirectNavigator) CreatePath(target vecmath.Vec3) *Path {
	return &Path{Target: target}
}

// Advance moves the entity one tick toward its target. The host simulation
// calls this after the decision pass.
func (n *DirectNavigator) Advance() {
	if !n.active || n.entity == nil || n.entity.Dead {
		return
	}
	step := n.entity.MaxSpeed * n.speedMul
	offset := n.target.Sub(n.entity.Pos)
	dist := offset.Length()
	if dist <= step {
		oldPos := n.entity.Pos
		n.entity.Pos = n.target
		n.entity.Vel = vecmath.Zero
		n.active = false
		if n.grid != nil {
			n.grid.Moved(n.entity.ID, oldPos)
		}
		return
	}
	vel := offset.Scale(step / dist)
	oldPos := n.entity.Pos
	n.entity.Vel = vel
	n.entity.Pos = n.entity.Pos.Add(vel)
	if n.grid != nil {
		n.grid.Moved(n.entity.ID, oldPos)
	}
}

// RecordingFeedback captures emitted effects for assertions.
type RecordingFeedback struct {
	Effects []string
}

// Emit implements Feedback.
func (f *RecordingFeedback) Emit(effect string, _ vecmath.Vec3) {
	f.Effects = append(f.Effects, effect)
}

// Count returns how many times the effect fired.
func (f *RecordingFeedback) Count(effect string) int {
	n := 0
	for _, e := range f.Effects {
		if e == effect {
			n++
		}
	}
	return n
}
