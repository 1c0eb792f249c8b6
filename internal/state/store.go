// Package state is the typed agent-state store: needs, pack membership,
// and nest records keyed by agent id. It replaces dynamic string-tagged
// attachment lookups with plain structs injected into goals as
// dependencies.
package state

import (
	"github.com/google/uuid"

	"github.com/neilhuang007/better-ecology-sub002/internal/needs"
	"github.com/neilhuang007/better-ecology-sub002/internal/pack"
)

// AgentState is everything persistent the decision core tracks for one
// agent. The agent exclusively owns its entry; pack records live in the
// pack registry and are referenced by id only.
type AgentState struct {
	ID uuid.UUID

	Needs *needs.State

	PackID uuid.UUID // uuid.Nil when not in a pack
	Rank   pack.Rank

	Nest NestRecord
}

// InPack reports pack membership.
func (a *AgentState) InPack() bool { return a.PackID != uuid.Nil }

// Store maps agent ids to their state. Single-threaded by contract: the
// host tick loop is the only writer.
type Store struct {
	agents     map[uuid.UUID]*AgentState
	thresholds needs.Thresholds
}

// NewStore builds an empty store using the given needs thresholds for new
// agents.
func NewStore(thresholds needs.Thresholds) *Store {
	return &Store{
		agents:     make(map[uuid.UUID]*AgentState),
		thresholds: thresholds,
	}
}

// Get returns the agent's state, or nil if unknown.
func (s *Store) Get(id uuid.UUID) *AgentState {
	return s.agents[id]
}

// Ensure returns the agent's state, creating a fresh fully-satisfied entry
// with the store's default thresholds on first use.
func (s *Store) Ensure(id uuid.UUID) *AgentState {
	return s.EnsureFor(id, s.thresholds)
}

// EnsureFor is Ensure with explicit thresholds, used when the agent's
// species authors its own cutoffs. Existing entries keep the thresholds
// they were created with.
func (s *Store) EnsureFor(id uuid.UUID, t needs.Thresholds) *AgentState {
	if a, ok := s.agents[id]; ok {
		return a
	}
	a := &AgentState{
		ID:    id,
		Needs: needs.New(t),
	}
	s.agents[id] = a
	return a
}

// Put installs a loaded state, replacing any existing entry.
func (s *Store) Put(a *AgentState) {
	if a == nil || a.ID == uuid.Nil {
		return
	}
	s.agents[a.ID] = a
}

// Remove drops an agent on death or despawn.
func (s *Store) Remove(id uuid.UUID) {
	delete(s.agents, id)
}

// ForEach visits every entry. Iteration order is unspecified.
func (s *Store) ForEach(visit func(*AgentState)) {
	for _, a := range s.agents {
		visit(a)
	}
}

// Len reports the number of tracked agents.
func (s *Store) Len() int { return len(s.agents) }

// Thresholds exposes the configured needs cutoffs, used when rebuilding
// states from persistence.
func (s *Store) Thresholds() needs.Thresholds { return s.thresholds }
