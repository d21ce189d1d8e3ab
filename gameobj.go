package kaplay

import "fmt"

// canceler is anything with an idempotent Cancel. Object-scoped timers,
// tweens, and event handles are cancelled when the object is destroyed.
type canceler interface {
	Cancel()
}

// GameObject is a node in the scene graph: a bag of attached components, a
// set of tags, and an ordered list of children. A single flat struct carries
// the transform fields directly to avoid capability lookups on the hot path;
// the Pos/Rotate/Scale components initialize these fields and the object
// fields are authoritative afterwards.
//
// Objects are created through Context.Add or GameObject.Add and destroyed
// through Destroy; the context is the sole authority over their lifetime.
type GameObject struct {
	id  uint64
	ctx *Context

	parent   *GameObject
	children []*GameObject

	// Transform (local)
	Pos    Vec2
	Angle  float64 // radians
	Scale  Vec2
	Anchor Vec2 // render/collider origin in [0,1] units, (0,0) = top-left

	// Visibility & scheduling
	Paused bool
	Hidden bool

	Color   Color
	Opacity float64

	fixed bool // excluded from camera composition

	tags      map[string]struct{}
	comps     map[string]Comp
	compOrder []string

	events      eventTable
	controllers []canceler

	// Computed world transform, camera-free. Recomputed top-down during the
	// draw pass and lazily via WorldTransform when dirty.
	transform      Mat
	transformDirty bool

	exists bool
}

// ID returns the object's unique identity. Identities are monotonic and
// never reused while the context lives.
func (o *GameObject) ID() uint64 {
	return o.id
}

// Exists reports whether the object is still live. Destroyed objects return
// false and most other operations on them panic with StaleReferenceError.
func (o *GameObject) Exists() bool {
	return o.exists
}

// Parent returns the object's parent, or nil for the root.
func (o *GameObject) Parent() *GameObject {
	return o.parent
}

// Children returns the object's direct children in attachment order. The
// returned slice is a copy and safe to mutate.
func (o *GameObject) Children() []*GameObject {
	out := make([]*GameObject, len(o.children))
	copy(out, o.children)
	return out
}

func (o *GameObject) ensureAlive(op string) {
	if !o.exists {
		panic(StaleReferenceError{ID: o.id, Op: op})
	}
}

// Add creates a new game object as a child of o. Each entry is either a Comp
// or a bare string, which attaches as a tag. Component add hooks run after
// the full list is attached.
func (o *GameObject) Add(comps ...any) *GameObject {
	o.ensureAlive("Add")
	return o.ctx.spawn(o, comps)
}

// Destroy removes the object and its entire subtree from the scene: destroy
// hooks run in attachment order, tags are unindexed, timers and event
// handles are cancelled, and exists flips to false — all in the same step.
func (o *GameObject) Destroy() {
	o.ensureAlive("Destroy")
	if o == o.ctx.root {
		panic("kaplay: cannot destroy the root object, use Quit")
	}
	o.ctx.destroy(o)
}

// Use attaches a component, or a bare string as a tag. Attaching a component
// whose id collides with an attached one replaces it without running the old
// one's destroy hook (detach explicitly with Unuse for teardown). Panics
// with MissingDependencyError when a required component id is absent.
func (o *GameObject) Use(comp any) {
	o.ensureAlive("Use")
	switch c := comp.(type) {
	case string:
		o.TagWith(c)
	case Comp:
		o.attach(c)
		if adder, ok := c.(CompAdder); ok {
			adder.Add(o)
		}
	default:
		panic(fmt.Sprintf("kaplay: Use accepts a Comp or a tag string, got %T", comp))
	}
}

// attach wires the component into the bag without running its add hook.
func (o *GameObject) attach(c Comp) {
	if req, ok := c.(CompRequirer); ok {
		for _, dep := range req.Require() {
			if _, present := o.comps[dep]; !present {
				panic(MissingDependencyError{Comp: c.ID(), Missing: dep})
			}
		}
	}
	id := c.ID()
	if _, replacing := o.comps[id]; !replacing {
		o.compOrder = append(o.compOrder, id)
	}
	o.comps[id] = c
	o.ctx.indexTag(o, id)
}

// Unuse detaches the component with the given id, running its destroy hook.
// Detaching an id that is not attached is a no-op. Removing a component
// that others depend on is a caller error and is not auto-cascaded.
func (o *GameObject) Unuse(id string) {
	o.ensureAlive("Unuse")
	c, ok := o.comps[id]
	if !ok {
		return
	}
	if d, ok := c.(CompDestroyer); ok {
		d.Destroy(o)
	}
	delete(o.comps, id)
	for i, cid := range o.compOrder {
		if cid == id {
			o.compOrder = append(o.compOrder[:i], o.compOrder[i+1:]...)
			break
		}
	}
	o.ctx.unindexTag(o, id)
	delete(o.tags, id)
}

// Component returns the attached component with the given id. The second
// result is false when no such component is attached; the call never panics
// for a missing capability.
func (o *GameObject) Component(id string) (Comp, bool) {
	c, ok := o.comps[id]
	return c, ok
}

// Is reports whether the object carries the tag. Component ids count as
// tags, so Is("body") reports body attachment.
func (o *GameObject) Is(tag string) bool {
	_, ok := o.tags[tag]
	return ok
}

// TagWith adds tags to the object and indexes them for queries.
func (o *GameObject) TagWith(tags ...string) {
	o.ensureAlive("TagWith")
	for _, tag := range tags {
		o.ctx.indexTag(o, tag)
	}
}

// Untag removes tags from the object. Removing a component id tag this way
// does not detach the component; use Unuse for that.
func (o *GameObject) Untag(tags ...string) {
	o.ensureAlive("Untag")
	for _, tag := range tags {
		if _, has := o.comps[tag]; has {
			continue
		}
		o.ctx.unindexTag(o, tag)
		delete(o.tags, tag)
	}
}

// Tags returns the object's tags in no particular order.
func (o *GameObject) Tags() []string {
	out := make([]string, 0, len(o.tags))
	for tag := range o.tags {
		out = append(out, tag)
	}
	return out
}

// On registers a handler for the named event on this object. Handlers run
// synchronously in registration order when the event triggers; handlers
// registered during a trigger run from the next trigger on.
func (o *GameObject) On(event string, cb func(args ...any)) *EventController {
	o.ensureAlive("On")
	ctl := o.events.on(event, cb)
	o.controllers = append(o.controllers, ctl)
	return ctl
}

// Trigger invokes the handlers registered for the named event, then relays
// to context-level handlers scoped to any of the object's tags.
func (o *GameObject) Trigger(event string, args ...any) {
	o.ensureAlive("Trigger")
	o.events.trigger(event, args...)
	o.ctx.tagEvents.relay(o, event, args...)
}

// OnUpdate registers a callback run every frame during the update pass,
// receiving the frame delta time in seconds.
func (o *GameObject) OnUpdate(cb func(dt float64)) *EventController {
	return o.On("update", func(args ...any) {
		cb(args[0].(float64))
	})
}

// OnDestroy registers a callback run when the object is destroyed.
func (o *GameObject) OnDestroy(cb func()) *EventController {
	return o.On("destroy", func(...any) {
		cb()
	})
}

// SetPos sets the local position and invalidates cached world transforms of
// the object and its subtree.
func (o *GameObject) SetPos(p Vec2) {
	o.Pos = p
	o.MarkDirty()
}

// Move translates the local position by delta.
func (o *GameObject) Move(delta Vec2) {
	o.Pos = o.Pos.Add(delta)
	o.MarkDirty()
}

// SetWorldPos sets the position in world space, mapping it through the
// inverse parent transform into local coordinates.
func (o *GameObject) SetWorldPos(p Vec2) {
	if o.parent != nil {
		p = o.parent.WorldTransform().Invert().Apply(p)
	}
	o.SetPos(p)
}

// SetAngle sets the local rotation in radians.
func (o *GameObject) SetAngle(a float64) {
	o.Angle = a
	o.MarkDirty()
}

// SetScale sets the local scale.
func (o *GameObject) SetScale(s Vec2) {
	o.Scale = s
	o.MarkDirty()
}

// MarkDirty invalidates the cached world transform of the object and every
// descendant. Call after mutating transform fields directly.
func (o *GameObject) MarkDirty() {
	o.transformDirty = true
	for _, child := range o.children {
		child.MarkDirty()
	}
}

// localTransform composes the local matrix from position, rotation, and
// scale in that fixed order.
func (o *GameObject) localTransform() Mat {
	return MatTRS(o.Pos, o.Angle, o.Scale)
}

// WorldTransform returns the object's cached camera-free world transform,
// recomputing it from the ancestor chain when dirty.
func (o *GameObject) WorldTransform() Mat {
	if o.transformDirty {
		return o.CalcTransform()
	}
	return o.transform
}

// CalcTransform recomputes the world transform from the ancestor chain,
// caches it, and returns it.
func (o *GameObject) CalcTransform() Mat {
	if o.parent == nil {
		o.transform = o.localTransform()
	} else {
		o.transform = o.parent.WorldTransform().Mul(o.localTransform())
	}
	o.transformDirty = false
	return o.transform
}

// WorldPos returns the object's position in world space.
func (o *GameObject) WorldPos() Vec2 {
	return o.WorldTransform().Pos()
}

// IsFixed reports whether the object or any ancestor is fixed (excluded
// from camera composition).
func (o *GameObject) IsFixed() bool {
	for n := o; n != nil; n = n.parent {
		if n.fixed {
			return true
		}
	}
	return false
}

// isPaused reports whether the object or any ancestor is paused.
func (o *GameObject) isPaused() bool {
	for n := o; n != nil; n = n.parent {
		if n.Paused {
			return true
		}
	}
	return false
}

// Wait schedules cb once after d seconds. The timer is bound to the object:
// destroying the object cancels it.
func (o *GameObject) Wait(d float64, cb func()) *TimerController {
	o.ensureAlive("Wait")
	ctl := o.ctx.Wait(d, cb)
	o.controllers = append(o.controllers, ctl)
	return ctl
}

// Loop schedules cb every d seconds. The timer is bound to the object:
// destroying the object cancels it.
func (o *GameObject) Loop(d float64, cb func()) *TimerController {
	o.ensureAlive("Loop")
	ctl := o.ctx.Loop(d, cb)
	o.controllers = append(o.controllers, ctl)
	return ctl
}
