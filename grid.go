package kaplay

import (
	"math"
	"sort"
)

// Broad-phase spatial index: a uniform hash grid over an unbounded world.
// Every collider's world AABB is hashed into the set of cells it overlaps;
// candidate pairs are all object pairs sharing at least one cell. The grid
// is rebuilt each frame before narrow-phase checks; Clear keeps allocated
// cell capacity.

type cellKey struct {
	cx, cy int32
}

// pairKey identifies an unordered object pair, lower id first.
type pairKey struct {
	a, b uint64
}

func makePairKey(x, y uint64) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

type hashGrid struct {
	cellSize float64
	cells    map[cellKey][]*GameObject
}

func newHashGrid(cellSize float64) *hashGrid {
	return &hashGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*GameObject),
	}
}

// clear empties every cell, keeping allocated capacity.
func (g *hashGrid) clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// insert buckets o into every cell overlapped by bounds.
func (g *hashGrid) insert(o *GameObject, bounds Rect) {
	minCX := int32(math.Floor(bounds.X / g.cellSize))
	maxCX := int32(math.Floor((bounds.X + bounds.Width) / g.cellSize))
	minCY := int32(math.Floor(bounds.Y / g.cellSize))
	maxCY := int32(math.Floor((bounds.Y + bounds.Height) / g.cellSize))
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			key := cellKey{cx, cy}
			g.cells[key] = append(g.cells[key], o)
		}
	}
}

// candidatePairs returns the deduplicated object pairs sharing at least one
// cell, ordered by ascending id pair for deterministic narrow-phase checks.
func (g *hashGrid) candidatePairs() [][2]*GameObject {
	seen := make(map[pairKey]struct{})
	var out [][2]*GameObject
	for _, cell := range g.cells {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				a, b := cell[i], cell[j]
				if a.id > b.id {
					a, b = b, a
				}
				key := pairKey{a.id, b.id}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, [2]*GameObject{a, b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0].id != out[j][0].id {
			return out[i][0].id < out[j][0].id
		}
		return out[i][1].id < out[j][1].id
	})
	return out
}
