// Package pack models wolf-style pack membership: a three-level rank order,
// shared pack records looked up by id, and the flanking geometry used when
// the pack surrounds a marked target.
package pack

import (
	"sort"

	"github.com/google/uuid"
)

// Rank is a total order: Alpha > Beta > Omega. Transitions within a modeled
// lifetime are monotonic upward only.
type Rank uint8

const (
	RankOmega Rank = iota
	RankBeta
	RankAlpha
)

func (r Rank) String() string {
	switch r {
	case RankAlpha:
		return "alpha"
	case RankBeta:
		return "beta"
	default:
		return "omega"
	}
}

// Outranks reports whether r is strictly above other.
func (r Rank) Outranks(other Rank) bool { return r > other }

// Promote returns the new rank if the transition is upward, otherwise the
// current rank and false. Demotion is not modeled.
func Promote(current, to Rank) (Rank, bool) {
	if to <= current {
		return current, false
	}
	return to, true
}

// Record is the shared state of one pack. It is owned by no single agent:
// members look it up by id in a Registry and read-modify-write it within a
// single tick.
type Record struct {
	ID uuid.UUID

	// TargetID is the prey marked by the alpha; empty when no hunt is on.
	TargetID string
	// TargetMarkedTick records when the mark was placed, for the
	// coordinator timeout.
	TargetMarkedTick uint64

	// ShareCooldown blocks food sharing until the given tick.
	ShareCooldown uint64
}

// MarkTarget is the alpha's hunt initiation.
func (r *Record) MarkTarget(preyID string, tick uint64) {
	r.TargetID = preyID
	r.TargetMarkedTick = tick
}

// ClearTarget ends the hunt, successful or not.
func (r *Record) ClearTarget() {
	r.TargetID = ""
	r.TargetMarkedTick = 0
}

// HasTarget reports whether a hunt is marked.
func (r *Record) HasTarget() bool { return r.TargetID != "" }

// CanShare reports whether the share cooldown has elapsed.
func (r *Record) CanShare(tick uint64) bool { return tick >= r.ShareCooldown }

// ArmShareCooldown re-arms the sharing cooldown.
func (r *Record) ArmShareCooldown(tick, duration uint64) {
	r.ShareCooldown = tick + duration
}

// Registry maps pack ids to records. Membership is many-agents-to-one-id;
// records are handed out by reference and never copied destructively.
type Registry struct {
	records map[uuid.UUID]*Record
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[uuid.UUID]*Record)}
}

// Create allocates a fresh pack.
func (reg *Registry) Create() *Record {
	rec := &Record{ID: uuid.New()}
	reg.records[rec.ID] = rec
	return rec
}

// Get looks a pack up by id; nil when unknown or when id is uuid.Nil.
func (reg *Registry) Get(id uuid.UUID) *Record {
	if id == uuid.Nil {
		return nil
	}
	return reg.records[id]
}

// Remove deletes a disbanded pack.
func (reg *Registry) Remove(id uuid.UUID) {
	delete(reg.records, id)
}

// FlankerOrder returns member ids in their deterministic flanking order: a
// stable sort by id, so every member derives the same index assignment
// without coordination.
func FlankerOrder(memberIDs []string) []string {
	out := make([]string, len(memberIDs))
	copy(out, memberIDs)
	sort.Strings(out)
	return out
}

// FlankerIndex returns the member's position in the deterministic order,
// or -1 when the id is absent.
func FlankerIndex(memberIDs []string, id string) int {
	for i, m := range FlankerOrder(memberIDs) {
		if m == id {
			return i
		}
	}
	return -1
}
