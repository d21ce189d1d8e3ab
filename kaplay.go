// Package kaplay is a 2D game engine runtime: game objects composed from
// components, a per-frame update/draw scheduler, collision detection and
// resolution, simple rigid-body physics, tile-based levels, and grid
// pathfinding.
package kaplay

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Opt configures a Context. The zero value gives a 640x480 world with no
// gravity, a 64-pixel spatial grid, and no-op logging, rendering, and
// storage backends.
type Opt struct {
	// Width and Height of the world viewport in pixels.
	Width, Height float64
	// Gravity applied to non-static bodies, in pixels per second squared.
	Gravity Vec2
	// CellSize of the spatial hash grid used for broad-phase collision
	// pruning.
	CellSize float64
	// Logger receives engine diagnostics and hook-failure reports.
	Logger *zap.Logger
	// Renderer is the draw backend invoked during the draw phase.
	Renderer Renderer
	// Assets resolves sprite names to frame bounds for render areas and
	// default collider shapes.
	Assets AssetResolver
	// Store is the persistent key/value backend behind GetData/SetData.
	Store Store
}

const (
	defaultWidth    = 640
	defaultHeight   = 480
	defaultCellSize = 64
)

// Context is the engine root: it owns the scene graph, the entity registry
// and tag indexes, the frame scheduler, the collision engine, timers, and
// the camera. Create one per game (or per test) with New and tear it down
// with Quit.
type Context struct {
	opt Opt
	log *zap.Logger

	root   *GameObject
	nextID uint64
	objs   map[uint64]*GameObject

	tagIndex     map[string]map[uint64]*GameObject
	indexVersion uint64

	tagEvents tagEventTable

	tasks []task

	grid  *hashGrid
	pairs map[pairKey]struct{}

	gravity Vec2
	cam     *Camera

	renderer Renderer
	assets   AssetResolver
	store    Store

	dt      float64
	elapsed float64
	frame   uint64
	stopped bool
}

// New creates a fresh engine context.
func New(opt Opt) *Context {
	if opt.Width == 0 {
		opt.Width = defaultWidth
	}
	if opt.Height == 0 {
		opt.Height = defaultHeight
	}
	if opt.CellSize == 0 {
		opt.CellSize = defaultCellSize
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Renderer == nil {
		opt.Renderer = NopRenderer{}
	}
	if opt.Store == nil {
		opt.Store = newMemStore()
	}
	c := &Context{
		opt:      opt,
		log:      opt.Logger,
		objs:     make(map[uint64]*GameObject),
		tagIndex: make(map[string]map[uint64]*GameObject),
		grid:     newHashGrid(opt.CellSize),
		pairs:    make(map[pairKey]struct{}),
		gravity:  opt.Gravity,
		renderer: opt.Renderer,
		assets:   opt.Assets,
		store:    opt.Store,
	}
	c.cam = newCamera(c)
	c.root = c.newObject()
	c.register(c.root)
	return c
}

// newObject allocates a bare object with defaults and the next identity.
func (c *Context) newObject() *GameObject {
	c.nextID++
	return &GameObject{
		id:             c.nextID,
		ctx:            c,
		Scale:          Vec2{1, 1},
		Color:          ColorWhite,
		Opacity:        1,
		tags:           make(map[string]struct{}),
		comps:          make(map[string]Comp),
		exists:         true,
		transformDirty: true,
	}
}

// Root returns the scene graph root. The root carries no components and
// cannot be destroyed.
func (c *Context) Root() *GameObject {
	return c.root
}

// Width returns the world viewport width in pixels.
func (c *Context) Width() float64 {
	return c.opt.Width
}

// Height returns the world viewport height in pixels.
func (c *Context) Height() float64 {
	return c.opt.Height
}

// Add creates a game object under the root. Each entry is either a Comp or
// a bare string, which attaches as a tag.
func (c *Context) Add(comps ...any) *GameObject {
	return c.spawn(c.root, comps)
}

// spawn instantiates an object: attach every component in order, run the add
// hooks once the full set is attached, then register tags and link into the
// parent's children.
func (c *Context) spawn(parent *GameObject, comps []any) *GameObject {
	o := c.newObject()
	var added []CompAdder
	for _, entry := range comps {
		switch v := entry.(type) {
		case string:
			o.tags[v] = struct{}{}
		case Comp:
			o.attach(v)
			if adder, ok := v.(CompAdder); ok {
				added = append(added, adder)
			}
		default:
			panic(fmt.Sprintf("kaplay: Add accepts Comps and tag strings, got %T", entry))
		}
	}
	for _, adder := range added {
		adder.Add(o)
	}
	c.register(o)
	o.parent = parent
	parent.children = append(parent.children, o)
	o.Trigger("add")
	return o
}

// register records the object in the live registry and indexes its tags.
func (c *Context) register(o *GameObject) {
	c.objs[o.id] = o
	for tag := range o.tags {
		c.indexOnly(o, tag)
	}
	c.indexVersion++
}

// indexTag adds a tag to the object and, if the object is registered, to the
// context tag index in the same step.
func (c *Context) indexTag(o *GameObject, tag string) {
	o.tags[tag] = struct{}{}
	if _, live := c.objs[o.id]; live {
		c.indexOnly(o, tag)
		c.indexVersion++
	}
}

func (c *Context) indexOnly(o *GameObject, tag string) {
	set := c.tagIndex[tag]
	if set == nil {
		set = make(map[uint64]*GameObject)
		c.tagIndex[tag] = set
	}
	set[o.id] = o
}

func (c *Context) unindexTag(o *GameObject, tag string) {
	if set := c.tagIndex[tag]; set != nil {
		delete(set, o.id)
		if len(set) == 0 {
			delete(c.tagIndex, tag)
		}
	}
	c.indexVersion++
}

// destroy tears down the object and its subtree. Children go first; then the
// object's component destroy hooks run in attachment order, its event
// handles and timers are cancelled, its tags are unindexed, and it is
// unlinked from its parent — all in the same logical step.
func (c *Context) destroy(o *GameObject) {
	c.destroyInner(o)
	if o.parent != nil {
		siblings := o.parent.children
		for i, child := range siblings {
			if child == o {
				o.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		o.parent = nil
	}
}

func (c *Context) destroyInner(o *GameObject) {
	for _, child := range o.Children() {
		if child.exists {
			c.destroyInner(child)
		}
	}
	o.children = nil
	o.Trigger("destroy")
	for _, id := range o.compOrder {
		if d, ok := o.comps[id].(CompDestroyer); ok {
			c.safeHook(o, "destroy", func() { d.Destroy(o) })
		}
	}
	for _, ctl := range o.controllers {
		ctl.Cancel()
	}
	o.controllers = nil
	o.events.clear()
	for tag := range o.tags {
		c.unindexTag(o, tag)
	}
	delete(c.objs, o.id)
	o.exists = false
}

// Destroy removes the object from the scene. Equivalent to obj.Destroy.
func (c *Context) Destroy(o *GameObject) {
	o.Destroy()
}

// DestroyAll destroys every object carrying the tag.
func (c *Context) DestroyAll(tag string) {
	for _, o := range c.taggedSorted(tag) {
		if o.exists {
			o.Destroy()
		}
	}
}

// taggedSorted snapshots the tag index in ascending id order.
func (c *Context) taggedSorted(tag string) []*GameObject {
	set := c.tagIndex[tag]
	out := make([]*GameObject, 0, len(set))
	for _, o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// GetOpt modifies Get behavior.
type GetOpt struct {
	// Recursive extends the search from direct children to the whole
	// subtree.
	Recursive bool
}

// Get returns a snapshot of the root's children carrying the tag, in scene
// graph preorder. With GetOpt.Recursive it covers every descendant.
func (c *Context) Get(tag string, opts ...GetOpt) []*GameObject {
	return c.root.Get(tag, opts...)
}

// Get returns a snapshot of o's children carrying the tag, in scene graph
// preorder. With GetOpt.Recursive it covers every descendant.
func (o *GameObject) Get(tag string, opts ...GetOpt) []*GameObject {
	o.ensureAlive("Get")
	var opt GetOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	var out []*GameObject
	if opt.Recursive {
		var walk func(n *GameObject)
		walk = func(n *GameObject) {
			for _, child := range n.children {
				if child.exists && child.Is(tag) {
					out = append(out, child)
				}
				walk(child)
			}
		}
		walk(o)
		return out
	}
	for _, child := range o.children {
		if child.exists && child.Is(tag) {
			out = append(out, child)
		}
	}
	return out
}

// LiveQuery is a live-updating view over all objects carrying a tag. The
// underlying snapshot is cached and rebuilt only when the tag indexes have
// changed since the last call.
type LiveQuery struct {
	ctx     *Context
	tag     string
	version uint64
	objs    []*GameObject
}

// GetLive returns a live-updating view of the objects carrying the tag.
func (c *Context) GetLive(tag string) *LiveQuery {
	return &LiveQuery{ctx: c, tag: tag}
}

// Objects returns the current members in ascending id order.
func (q *LiveQuery) Objects() []*GameObject {
	// version 0 is never a valid index version, forcing the first build.
	if q.version != q.ctx.indexVersion || q.version == 0 {
		q.objs = q.ctx.taggedSorted(q.tag)
		q.version = q.ctx.indexVersion
	}
	return q.objs
}

// On registers a context-level handler scoped to a tag: cb fires whenever
// any object carrying the tag triggers the named event.
func (c *Context) On(event, tag string, cb func(obj *GameObject, args ...any)) *EventController {
	return c.tagEvents.on(event, tag, cb)
}

// OnUpdate registers a callback run once per frame during the update pass.
func (c *Context) OnUpdate(cb func(dt float64)) *EventController {
	return c.root.OnUpdate(cb)
}

// SetGravity sets the global gravity vector in pixels per second squared.
func (c *Context) SetGravity(g Vec2) {
	c.gravity = g
}

// Gravity returns the global gravity vector.
func (c *Context) Gravity() Vec2 {
	return c.gravity
}

// Cam returns the context camera.
func (c *Context) Cam() *Camera {
	return c.cam
}

// DT returns the delta time of the current frame in seconds.
func (c *Context) DT() float64 {
	return c.dt
}

// Time returns the total elapsed time in seconds.
func (c *Context) Time() float64 {
	return c.elapsed
}

// FrameCount returns the number of completed frames.
func (c *Context) FrameCount() uint64 {
	return c.frame
}

// GetData reads a value from the persistent key/value store.
func (c *Context) GetData(key string) (string, bool) {
	return c.store.Get(key)
}

// SetData writes a value to the persistent key/value store.
func (c *Context) SetData(key, value string) {
	c.store.Set(key, value)
}

// Quit tears the context down: the scene graph is destroyed, scheduled
// tasks are cancelled, and further Step calls are no-ops.
func (c *Context) Quit() {
	if c.stopped {
		return
	}
	c.stopped = true
	for _, child := range c.root.Children() {
		if child.exists {
			child.Destroy()
		}
	}
	c.tasks = nil
	_ = c.log.Sync()
}

// Stopped reports whether Quit has been called.
func (c *Context) Stopped() bool {
	return c.stopped
}
