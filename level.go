package kaplay

import (
	"fmt"
	"math"
)

// Levels are built from an ordered sequence of equal-length symbol rows.
// Each character maps through the tile table to a component list; the
// spawned tile object sits at tile position * tile size + level origin,
// plus an optional per-tile offset.

// TilePos addresses a tile by integer column and row.
type TilePos struct {
	Col, Row int
}

// EdgeMask marks which sides of a tile are impassable to the pathfinder.
type EdgeMask uint8

const (
	EdgeLeft EdgeMask = 1 << iota
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeNone EdgeMask = 0
)

// LevelOpt configures AddLevel.
type LevelOpt struct {
	// TileWidth and TileHeight are the tile dimensions in pixels.
	TileWidth, TileHeight float64
	// Pos is the level origin in world pixels.
	Pos Vec2
	// Tiles maps a symbol to the component list spawned for it. A space
	// always means an empty cell.
	Tiles map[rune]func() []any
	// WildcardTile handles symbols absent from Tiles; returning nil skips
	// the cell.
	WildcardTile func(sym rune) []any
}

// Level owns a grid of tile metadata and the spawned tile objects, and
// answers pathfinding queries over it. Structural changes (tiles spawned
// or destroyed, obstacle/cost/edge edits) invalidate the cached navigation
// snapshot; the next path request rebuilds it.
type Level struct {
	ctx *Context
	obj *GameObject
	opt LevelOpt

	cols, rows int
	tiles      map[TilePos][]*GameObject
	symbols    map[TilePos]rune

	navVersion uint64
	nav        *navMap
	navBuilt   uint64
}

// AddLevel parses the symbol rows and spawns a level under the root.
// Rows must be equal length and tile dimensions positive.
func (c *Context) AddLevel(rows []string, opt LevelOpt) (*Level, error) {
	if opt.TileWidth <= 0 || opt.TileHeight <= 0 {
		return nil, fmt.Errorf("add level: tile size must be positive, got %gx%g", opt.TileWidth, opt.TileHeight)
	}
	cols := 0
	for i, row := range rows {
		n := len([]rune(row))
		if i == 0 {
			cols = n
		} else if n != cols {
			return nil, fmt.Errorf("add level: row %d has %d symbols, want %d", i, n, cols)
		}
	}
	l := &Level{
		ctx:        c,
		opt:        opt,
		cols:       cols,
		rows:       len(rows),
		tiles:      make(map[TilePos][]*GameObject),
		symbols:    make(map[TilePos]rune),
		navVersion: 1,
	}
	l.obj = c.Add(Pos(opt.Pos.X, opt.Pos.Y), "level")
	for rowIdx, row := range rows {
		for colIdx, sym := range []rune(row) {
			if sym == ' ' {
				continue
			}
			if _, err := l.Spawn(sym, TilePos{colIdx, rowIdx}); err != nil {
				return nil, err
			}
		}
	}
	return l, nil
}

// GameObject returns the level's scene graph node; tiles are its children.
func (l *Level) GameObject() *GameObject {
	return l.obj
}

// Cols returns the grid width in tiles.
func (l *Level) Cols() int { return l.cols }

// Rows returns the grid height in tiles.
func (l *Level) Rows() int { return l.rows }

// TileWidth returns the tile width in pixels.
func (l *Level) TileWidth() float64 { return l.opt.TileWidth }

// TileHeight returns the tile height in pixels.
func (l *Level) TileHeight() float64 { return l.opt.TileHeight }

// Spawn instantiates the component list mapped to sym at the given tile.
// Spawning outside the parsed grid grows the addressable area.
func (l *Level) Spawn(sym rune, at TilePos) (*GameObject, error) {
	var comps []any
	if fn, ok := l.opt.Tiles[sym]; ok {
		comps = fn()
	} else if l.opt.WildcardTile != nil {
		comps = l.opt.WildcardTile(sym)
	} else {
		return nil, fmt.Errorf("spawn: no tile mapping for symbol %q", sym)
	}
	if comps == nil {
		return nil, nil
	}
	return l.spawn(comps, at, sym), nil
}

// SpawnComps instantiates an explicit component list at the given tile.
func (l *Level) SpawnComps(comps []any, at TilePos) *GameObject {
	return l.spawn(comps, at, 0)
}

func (l *Level) spawn(comps []any, at TilePos, sym rune) *GameObject {
	obj := l.obj.Add(comps...)
	tile, ok := obj.Component("tile")
	if !ok {
		t := Tile()
		obj.Use(t)
		tile = t
	}
	tc := tile.(*TileComp)
	tc.level = l
	tc.pos = at
	tc.symbol = sym
	obj.SetPos(Vec2{
		float64(at.Col)*l.opt.TileWidth + tc.Offset.X,
		float64(at.Row)*l.opt.TileHeight + tc.Offset.Y,
	})
	l.tiles[at] = append(l.tiles[at], obj)
	if sym != 0 {
		l.symbols[at] = sym
	}
	if at.Col >= l.cols {
		l.cols = at.Col + 1
	}
	if at.Row >= l.rows {
		l.rows = at.Row + 1
	}
	obj.OnDestroy(func() {
		l.removeTile(at, obj)
	})
	l.invalidateNav()
	return obj
}

func (l *Level) removeTile(at TilePos, obj *GameObject) {
	cell := l.tiles[at]
	for i, o := range cell {
		if o == obj {
			l.tiles[at] = append(cell[:i], cell[i+1:]...)
			break
		}
	}
	if len(l.tiles[at]) == 0 {
		delete(l.tiles, at)
		delete(l.symbols, at)
	}
	l.invalidateNav()
}

// ObjectsAt returns the tile objects occupying the given cell.
func (l *Level) ObjectsAt(at TilePos) []*GameObject {
	cell := l.tiles[at]
	out := make([]*GameObject, len(cell))
	copy(out, cell)
	return out
}

// Tile2Pos converts a tile position to the world-pixel position of its
// top-left corner (the level origin included).
func (l *Level) Tile2Pos(at TilePos) Vec2 {
	return Vec2{
		l.opt.Pos.X + float64(at.Col)*l.opt.TileWidth,
		l.opt.Pos.Y + float64(at.Row)*l.opt.TileHeight,
	}
}

// TileCenter converts a tile position to the world-pixel position of its
// center.
func (l *Level) TileCenter(at TilePos) Vec2 {
	return l.Tile2Pos(at).Add(Vec2{l.opt.TileWidth / 2, l.opt.TileHeight / 2})
}

// Pos2Tile converts a world-pixel position to the tile containing it.
func (l *Level) Pos2Tile(p Vec2) TilePos {
	return TilePos{
		Col: int(math.Floor((p.X - l.opt.Pos.X) / l.opt.TileWidth)),
		Row: int(math.Floor((p.Y - l.opt.Pos.Y) / l.opt.TileHeight)),
	}
}

// Serialize reconstructs the symbol rows of the current grid. Cells spawned
// without a symbol (SpawnComps) and empty cells serialize as spaces.
// Re-parsing the result with the same tile table reproduces the grid.
func (l *Level) Serialize() []string {
	out := make([]string, l.rows)
	for row := 0; row < l.rows; row++ {
		line := make([]rune, l.cols)
		for col := 0; col < l.cols; col++ {
			sym, ok := l.symbols[TilePos{col, row}]
			if !ok {
				sym = ' '
			}
			line[col] = sym
		}
		out[row] = string(line)
	}
	return out
}

// invalidateNav bumps the navigation version, forcing the next path request
// to rebuild the cached snapshot. Agents repath when they observe the bump.
func (l *Level) invalidateNav() {
	l.navVersion++
}

// Tile returns a tile metadata component with defaults: passable, cost
// 0 (treated as the minimum weight by the pathfinder), no blocked edges.
func Tile(opts ...TileOpt) *TileComp {
	t := &TileComp{}
	if len(opts) > 0 {
		t.IsObstacle = opts[0].IsObstacle
		t.Cost = opts[0].Cost
		t.Edges = opts[0].Edges
		t.Offset = opts[0].Offset
	}
	return t
}

// TileOpt configures a tile component.
type TileOpt struct {
	// IsObstacle excludes the tile from pathfinding entirely.
	IsObstacle bool
	// Cost scales the weight of path edges entering this tile; values
	// below 1 (including the 0 default) count as 1.
	Cost float64
	// Edges marks impassable sides of the tile.
	Edges EdgeMask
	// Offset shifts the spawned object from the tile's pixel position.
	Offset Vec2
}

// TileComp carries per-tile metadata consumed by the level's pathfinder.
// Use the Set mutators for changes after spawn so the cached navigation
// snapshot is invalidated.
type TileComp struct {
	IsObstacle bool
	Cost       float64
	Edges      EdgeMask
	Offset     Vec2

	level  *Level
	pos    TilePos
	symbol rune
}

func (t *TileComp) ID() string { return "tile" }

// TilePos returns the tile's grid position.
func (t *TileComp) TilePos() TilePos {
	return t.pos
}

// SetObstacle changes the obstacle flag and invalidates the navigation
// snapshot.
func (t *TileComp) SetObstacle(v bool) {
	t.IsObstacle = v
	t.bump()
}

// SetCost changes the traversal cost and invalidates the navigation
// snapshot.
func (t *TileComp) SetCost(cost float64) {
	t.Cost = cost
	t.bump()
}

// SetEdges changes the impassable-side mask and invalidates the navigation
// snapshot.
func (t *TileComp) SetEdges(edges EdgeMask) {
	t.Edges = edges
	t.bump()
}

func (t *TileComp) bump() {
	if t.level != nil {
		t.level.invalidateNav()
	}
}
