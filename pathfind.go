package kaplay

import (
	"container/heap"
	"math"
)

const sqrt2 = math.Sqrt2

// navMap is the cached navigation snapshot: flat per-cell obstacle, cost,
// and edge-mask arrays combined from every tile object in each cell. It is
// rebuilt on the first path request after any structural grid change.
type navMap struct {
	cols, rows int
	blocked    []bool
	cost       []float64
	edges      []EdgeMask
}

func (m *navMap) idx(p TilePos) int {
	return p.Row*m.cols + p.Col
}

func (m *navMap) inBounds(p TilePos) bool {
	return p.Col >= 0 && p.Col < m.cols && p.Row >= 0 && p.Row < m.rows
}

// navSnapshot returns the cached navigation map, rebuilding it when the
// grid has changed since the last build.
func (l *Level) navSnapshot() *navMap {
	if l.nav != nil && l.navBuilt == l.navVersion {
		return l.nav
	}
	m := &navMap{
		cols:    l.cols,
		rows:    l.rows,
		blocked: make([]bool, l.cols*l.rows),
		cost:    make([]float64, l.cols*l.rows),
		edges:   make([]EdgeMask, l.cols*l.rows),
	}
	for i := range m.cost {
		m.cost[i] = 1
	}
	for at, cell := range l.tiles {
		if !m.inBounds(at) {
			continue
		}
		i := m.idx(at)
		for _, obj := range cell {
			comp, ok := obj.Component("tile")
			if !ok {
				continue
			}
			t := comp.(*TileComp)
			if t.IsObstacle {
				m.blocked[i] = true
			}
			if t.Cost > m.cost[i] {
				m.cost[i] = t.Cost
			}
			m.edges[i] |= t.Edges
		}
	}
	l.nav = m
	l.navBuilt = l.navVersion
	return m
}

// NavVersion returns the current navigation version. It moves on every
// structural grid change; agents compare it to decide when to repath.
func (l *Level) NavVersion() uint64 {
	return l.navVersion
}

// PathOpt configures a path request.
type PathOpt struct {
	// AllowDiagonals extends the neighborhood from the 4 orthogonal cells
	// to the 8 surrounding cells.
	AllowDiagonals bool
}

// pathNode is one frontier entry. Duplicates are pushed instead of
// decrease-keyed; stale entries are skipped via the closed set on pop.
type pathNode struct {
	idx int
	g   float64
	f   float64
	h   float64
	seq uint64
}

// pathQueue orders frontier nodes by f, breaking ties by lower h and then
// by insertion order, keeping expansion stable and deterministic.
type pathQueue []*pathNode

func (q pathQueue) Len() int { return len(q) }

func (q pathQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q pathQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *pathQueue) Push(x any) {
	*q = append(*q, x.(*pathNode))
}

func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

// neighborSteps lists the orthogonal steps first, then the diagonal ones.
var neighborSteps = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// stepEdges returns the edge bits blocking an orthogonal step from a cell
// (as seen from the source) and the matching bit on the destination.
func stepEdges(dx, dy int) (from, to EdgeMask) {
	switch {
	case dx == 1:
		return EdgeRight, EdgeLeft
	case dx == -1:
		return EdgeLeft, EdgeRight
	case dy == 1:
		return EdgeBottom, EdgeTop
	default:
		return EdgeTop, EdgeBottom
	}
}

// TilePath runs A* from one tile to another and returns the waypoint
// sequence inclusive of the start tile, or nil when the target is
// unreachable. Unreachability is a normal result, not an error.
//
// A step to a neighbor is excluded when the neighbor is an obstacle, when
// either tile's edge mask blocks the shared side, or, for diagonal steps,
// when both orthogonal cut corners are blocked. Edge weight is the
// destination tile's cost (minimum 1) scaled by the step length, keeping
// diagonal moves admissible under the Euclidean heuristic.
func (l *Level) TilePath(from, to TilePos, opts ...PathOpt) []TilePos {
	var opt PathOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	m := l.navSnapshot()
	if !m.inBounds(from) || !m.inBounds(to) {
		return nil
	}
	if m.blocked[m.idx(from)] || m.blocked[m.idx(to)] {
		return nil
	}
	if from == to {
		return []TilePos{from}
	}

	heuristic := func(p TilePos) float64 {
		return math.Hypot(float64(p.Col-to.Col), float64(p.Row-to.Row))
	}

	n := m.cols * m.rows
	gScore := make([]float64, n)
	cameFrom := make([]int, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	startIdx := m.idx(from)
	gScore[startIdx] = 0
	var seq uint64
	open := &pathQueue{{idx: startIdx, g: 0, h: heuristic(from), f: heuristic(from)}}
	heap.Init(open)

	steps := neighborSteps[:4]
	if opt.AllowDiagonals {
		steps = neighborSteps[:]
	}
	targetIdx := m.idx(to)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true
		if cur.idx == targetIdx {
			return reconstructPath(m, cameFrom, cur.idx)
		}
		curPos := TilePos{cur.idx % m.cols, cur.idx / m.cols}
		for _, step := range steps {
			dx, dy := step[0], step[1]
			next := TilePos{curPos.Col + dx, curPos.Row + dy}
			if !m.inBounds(next) {
				continue
			}
			nextIdx := m.idx(next)
			if m.blocked[nextIdx] || closed[nextIdx] {
				continue
			}
			dist := 1.0
			if dx != 0 && dy != 0 {
				// Diagonal: impassable only when both cut corners are
				// blocked.
				cornerA := TilePos{curPos.Col + dx, curPos.Row}
				cornerB := TilePos{curPos.Col, curPos.Row + dy}
				blockedA := !m.inBounds(cornerA) || m.blocked[m.idx(cornerA)]
				blockedB := !m.inBounds(cornerB) || m.blocked[m.idx(cornerB)]
				if blockedA && blockedB {
					continue
				}
				dist = sqrt2
			} else {
				fromBit, toBit := stepEdges(dx, dy)
				if m.edges[cur.idx]&fromBit != 0 || m.edges[nextIdx]&toBit != 0 {
					continue
				}
			}
			g := cur.g + m.cost[nextIdx]*dist
			if g >= gScore[nextIdx] {
				continue
			}
			gScore[nextIdx] = g
			cameFrom[nextIdx] = cur.idx
			h := heuristic(next)
			seq++
			heap.Push(open, &pathNode{idx: nextIdx, g: g, h: h, f: g + h, seq: seq})
		}
	}
	return nil
}

func reconstructPath(m *navMap, cameFrom []int, idx int) []TilePos {
	var rev []TilePos
	for idx != -1 {
		rev = append(rev, TilePos{idx % m.cols, idx / m.cols})
		idx = cameFrom[idx]
	}
	out := make([]TilePos, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// Path runs TilePath between the tiles containing two world-pixel
// positions and returns the waypoints as world-pixel tile centers, or nil
// when the target is unreachable.
func (l *Level) Path(from, to Vec2, opts ...PathOpt) []Vec2 {
	tiles := l.TilePath(l.Pos2Tile(from), l.Pos2Tile(to), opts...)
	if tiles == nil {
		return nil
	}
	out := make([]Vec2, len(tiles))
	for i, t := range tiles {
		out[i] = l.TileCenter(t)
	}
	return out
}
