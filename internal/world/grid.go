package world

import (
	"math"
	"sort"

	"github.com/neilhuang007/better-ecology-sub002/internal/vecmath"
)

const defaultCellSize = 8.0

type cellKey struct {
	X int
	Z int
}

// Grid is a cell-bucketed spatial index over entities, plus per-species
// expected population counts for the prey-switching queries. It implements
// Query.
type Grid struct {
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]string
	entities    map[string]*Entity
	expected    map[string]float64
}

// NewGrid builds an empty index. cellSize <= 0 uses the default.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cells:       make(map[cellKey][]string),
		entities:    make(map[string]*Entity),
		expected:    make(map[string]float64),
	}
}

func (g *Grid) keyFor(pos vecmath.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X * g.invCellSize)),
		Z: int(math.Floor(pos.Z * g.invCellSize)),
	}
}

// Insert adds or replaces an entity.
func (g *Grid) Insert(e *Entity) {
	if e == nil || e.ID == "" {
		return
	}
	if _, exists := g.entities[e.ID]; exists {
		g.Remove(e.ID)
	}
	g.entities[e.ID] = e
	key := g.keyFor(e.Pos)
	g.cells[key] = append(g.cells[key], e.ID)
}

// Remove deletes an entity from the index.
func (g *Grid) Remove(id string) {
	e, ok := g.entities[id]
	if !ok {
		return
	}
	key := g.keyFor(e.Pos)
	bucket := g.cells[key]
	for i, bid := range bucket {
		if bid == id {
			bucket[i] = bucket[len(bucket)-1]
			g.cells[key] = bucket[:len(bucket)-1]
			break
		}
	}
	if len(g.cells[key]) == 0 {
		delete(g.cells, key)
	}
	delete(g.entities, id)
}

// Moved must be called after an entity's position changes so its bucket
// stays current.
func (g *Grid) Moved(id string, oldPos vecmath.Vec3) {
	e, ok := g.entities[id]
	if !ok {
		return
	}
	oldKey := g.keyFor(oldPos)
	newKey := g.keyFor(e.Pos)
	if oldKey == newKey {
		return
	}
	bucket := g.cells[oldKey]
	for i, bid := range bucket {
		if bid == id {
			bucket[i] = bucket[len(bucket)-1]
			g.cells[oldKey] = bucket[:len(bucket)-1]
			break
		}
	}
	if len(g.cells[oldKey]) == 0 {
		delete(g.cells, oldKey)
	}
	g.cells[newKey] = append(g.cells[newKey], id)
}

// SetExpectedPopulation records the expected count of a species for a
// standard search radius, used by Ratio.
func (g *Grid) SetExpectedPopulation(species string, count float64) {
	g.expected[species] = count
}

func (g *Grid) scan(center vecmath.Vec3, radius float64, visit func(*Entity)) {
	minX := int(math.Floor((center.X - radius) * g.invCellSize))
	maxX := int(math.Floor((center.X + radius) * g.invCellSize))
	minZ := int(math.Floor((center.Z - radius) * g.invCellSize))
	maxZ := int(math.Floor((center.Z + radius) * g.invCellSize))
	radiusSq := radius * radius

	for cx := minX; cx <= maxX; cx++ {
		for cz := minZ; cz <= maxZ; cz++ {
			for _, id := range g.cells[cellKey{X: cx, Z: cz}] {
				e := g.entities[id]
				if e == nil {
					continue
				}
				if e.Pos.DistanceSq(center) <= radiusSq {
					visit(e)
				}
			}
		}
	}
}

// NearbyOfKind implements Query. Results are sorted by distance, with id as
// the final tie break, so callers iterate deterministically.
func (g *Grid) NearbyOfKind(center vecmath.Vec3, radius float64, kind Kind, pred func(*Entity) bool) []*Entity {
	var out []*Entity
	g.scan(center, radius, func(e *Entity) {
		if e.Kind != kind {
			return
		}
		if pred != nil && !pred(e) {
			return
		}
		out = append(out, e)
	})
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Pos.DistanceSq(center), out[j].Pos.DistanceSq(center)
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// NearbySameSpecies implements Query.
func (g *Grid) NearbySameSpecies(e *Entity, radius float64) []*Entity {
	if e == nil {
		return nil
	}
	species := e.Species
	self := e.ID
	return g.NearbyOfKind(e.Pos, radius, e.Kind, func(other *Entity) bool {
		return other.Species == species && other.ID != self && !other.Dead
	})
}

// EntityByID implements Query.
func (g *Grid) EntityByID(id string) (*Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Ratio implements Query: live count of the species within the radius
// over the configured expected count. Species without expectation data
// report 1.
func (g *Grid) Ratio(species string, center vecmath.Vec3, radius float64) float64 {
	expected, ok := g.expected[species]
	if !ok || expected <= 0 {
		return 1
	}
	count := 0.0
	g.scan(center, radius, func(e *Entity) {
		if e.Species == species && !e.Dead {
			count++
		}
	})
	return count / expected
}

// Len reports how many entities are indexed.
func (g *Grid) Len() int { return len(g.entities) }
