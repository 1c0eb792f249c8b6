package goal

import (
	"log/slog"
	"sort"
)

type activeSlot struct {
	goal     Goal
	priority float64
}

// Runner arbitrates one agent's goals. It owns activation order, flag
// exclusivity, preemption, and post-completion cooldowns; everything else
// lives inside the goals.
//
// Single-threaded by contract: Update is called once per tick from the
// host loop, never concurrently.
type Runner struct {
	goals  []Goal
	active []activeSlot

	// ready maps goal name to the tick at which it may start again.
	ready map[string]uint64

	log *slog.Logger
}

// NewRunner builds a runner over a fixed goal set. The logger may be nil.
func NewRunner(goals []Goal, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		goals: goals,
		ready: make(map[string]uint64),
		log:   log,
	}
}

// Update runs one decision tick: retire finished or invalidated goals,
// tick the survivors, then start the best eligible newcomers and give
// each its first tick, so a started goal acts on the tick it won
// arbitration.
func (r *Runner) Update(a *Agent) {
	r.retire(a)
	r.tickActive(a)
	r.arbitrate(a)
}

// retire drops active goals whose CanContinue turned false. An
// invalidated goal is stopped without a cooldown: the world changed under
// it, which is not the goal's failure.
func (r *Runner) retire(a *Agent) {
	kept := r.active[:0]
	for _, slot := range r.active {
		if slot.goal.CanContinue(a) {
			kept = append(kept, slot)
			continue
		}
		slot.goal.Stop(a)
		r.log.Debug("goal invalidated",
			"agent", a.Entity.ID, "goal", slot.goal.Name(), "tick", a.Tick)
	}
	r.active = kept
}

func (r *Runner) tickActive(a *Agent) {
	kept := r.active[:0]
	for _, slot := range r.active {
		status := slot.goal.Tick(a)
		if status == StatusRunning {
			slot.priority = slot.goal.Priority(a)
			kept = append(kept, slot)
			continue
		}
		slot.goal.Stop(a)
		r.armCooldown(a, slot.goal, status)
		r.log.Debug("goal finished",
			"agent", a.Entity.ID, "goal", slot.goal.Name(),
			"status", status.String(), "tick", a.Tick)
	}
	r.active = kept
}

func (r *Runner) armCooldown(a *Agent, g Goal, status Status) {
	success, failure := g.Cooldowns()
	switch status {
	case StatusSucceeded:
		r.ready[g.Name()] = a.Tick + success
	case StatusFailed:
		r.ready[g.Name()] = a.Tick + failure
	}
}

// arbitrate starts eligible goals in descending priority order. A
// candidate whose flags collide only with strictly lower-priority active
// goals preempts them; preempted goals stop without a cooldown.
func (r *Runner) arbitrate(a *Agent) {
	type candidate struct {
		goal     Goal
		priority float64
	}
	var pending []candidate
	for _, g := range r.goals {
		if r.isActive(g) {
			continue
		}
		if a.Tick < r.ready[g.Name()] {
			continue
		}
		p := g.Priority(a)
		if p <= 0 {
			continue
		}
		if !g.CanStart(a) {
			continue
		}
		pending = append(pending, candidate{goal: g, priority: p})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].priority > pending[j].priority
	})

	for _, c := range pending {
		if !r.claim(a, c.goal, c.priority) {
			continue
		}
		c.goal.Start(a)
		r.log.Debug("goal started",
			"agent", a.Entity.ID, "goal", c.goal.Name(),
			"priority", c.priority, "tick", a.Tick)
		// First tick runs immediately. A goal that resolves on its
		// first tick never enters the active set; it stops and cools
		// down like any other completion.
		status := c.goal.Tick(a)
		if status == StatusRunning {
			r.active = append(r.active, activeSlot{goal: c.goal, priority: c.priority})
			continue
		}
		c.goal.Stop(a)
		r.armCooldown(a, c.goal, status)
		r.log.Debug("goal finished",
			"agent", a.Entity.ID, "goal", c.goal.Name(),
			"status", status.String(), "tick", a.Tick)
	}
}

// claim frees conflicting flags if every holder is strictly lower
// priority. False leaves the active set untouched.
func (r *Runner) claim(a *Agent, g Goal, priority float64) bool {
	flags := g.Flags()
	for _, slot := range r.active {
		if flags.Conflicts(slot.goal.Flags()) && slot.priority >= priority {
			return false
		}
	}
	kept := r.active[:0]
	for _, slot := range r.active {
		if !flags.Conflicts(slot.goal.Flags()) {
			kept = append(kept, slot)
			continue
		}
		slot.goal.Stop(a)
		r.log.Debug("goal preempted",
			"agent", a.Entity.ID, "goal", slot.goal.Name(),
			"by", g.Name(), "tick", a.Tick)
	}
	r.active = kept
	return true
}

func (r *Runner) isActive(g Goal) bool {
	for _, slot := range r.active {
		if slot.goal == g {
			return true
		}
	}
	return false
}

// Active returns the names of currently running goals, in activation
// order.
func (r *Runner) Active() []string {
	names := make([]string, 0, len(r.active))
	for _, slot := range r.active {
		names = append(names, slot.goal.Name())
	}
	return names
}

// ReadyAt reports when the named goal leaves cooldown. Zero when it is
// not cooling down.
func (r *Runner) ReadyAt(name string) uint64 { return r.ready[name] }

// StopAll stops every active goal without cooldowns, used on despawn.
func (r *Runner) StopAll(a *Agent) {
	for _, slot := range r.active {
		slot.goal.Stop(a)
	}
	r.active = r.active[:0]
}
