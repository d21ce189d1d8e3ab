package kaplay

// AreaOpt configures an Area component.
type AreaOpt struct {
	// Shape is the collider in object-local coordinates. When nil, the
	// shape derives from the object's render bounds: a Rectangle
	// component's size, or the sprite frame bounds from the asset
	// resolver, honoring the object's anchor.
	Shape Shape
	// Offset translates the collider relative to the object origin.
	Offset Vec2
	// CollisionIgnore lists tags whose carriers never resolve against
	// this object (collision events still fire).
	CollisionIgnore []string
}

// Area returns a component that gives the object a collider. Objects with
// areas participate in broad-phase indexing, narrow-phase tests, and
// collide/collideUpdate/collideEnd events; push-apart resolution
// additionally requires a Body on both sides.
func Area(opts ...AreaOpt) *AreaComp {
	a := &AreaComp{}
	if len(opts) > 0 {
		a.Shape = opts[0].Shape
		a.Offset = opts[0].Offset
		a.CollisionIgnore = opts[0].CollisionIgnore
	}
	return a
}

// AreaComp is the collider component. See Area.
type AreaComp struct {
	Shape           Shape
	Offset          Vec2
	CollisionIgnore []string
}

func (a *AreaComp) ID() string { return "area" }

func (a *AreaComp) Require() []string { return []string{"pos"} }

// LocalShape returns the collider in object-local coordinates, deriving it
// from render bounds when no explicit shape was given.
func (a *AreaComp) LocalShape(obj *GameObject) Shape {
	if a.Shape != nil {
		if a.Offset == (Vec2{}) {
			return a.Shape
		}
		return a.Shape.Transform(Mat{1, 0, 0, 1, a.Offset.X, a.Offset.Y})
	}
	var w, h float64
	if c, ok := obj.Component("rect"); ok {
		rc := c.(*RectangleComp)
		w, h = rc.Width, rc.Height
	} else if c, ok := obj.Component("sprite"); ok {
		sc := c.(*SpriteComp)
		w, h = sc.Width, sc.Height
	}
	return Rect{
		X:      -obj.Anchor.X*w + a.Offset.X,
		Y:      -obj.Anchor.Y*h + a.Offset.Y,
		Width:  w,
		Height: h,
	}
}

// WorldShape returns the collider mapped to world space through the
// object's cached world transform.
func (a *AreaComp) WorldShape(obj *GameObject) Shape {
	return a.LocalShape(obj).Transform(obj.WorldTransform())
}

// ignores reports whether any of the other object's tags appear in the
// CollisionIgnore list.
func (a *AreaComp) ignores(other *GameObject) bool {
	for _, tag := range a.CollisionIgnore {
		if other.Is(tag) {
			return true
		}
	}
	return false
}

// OnCollide registers a handler fired the first frame this object overlaps
// another collider.
func (o *GameObject) OnCollide(cb func(other *GameObject, col *Collision)) *EventController {
	return o.On("collide", func(args ...any) {
		cb(args[0].(*GameObject), args[1].(*Collision))
	})
}

// OnCollideUpdate registers a handler fired every frame an overlap persists,
// including the first.
func (o *GameObject) OnCollideUpdate(cb func(other *GameObject, col *Collision)) *EventController {
	return o.On("collideUpdate", func(args ...any) {
		cb(args[0].(*GameObject), args[1].(*Collision))
	})
}

// OnCollideEnd registers a handler fired the first frame a previous overlap
// is gone.
func (o *GameObject) OnCollideEnd(cb func(other *GameObject)) *EventController {
	return o.On("collideEnd", func(args ...any) {
		cb(args[0].(*GameObject))
	})
}

// OnBeforePhysicsResolve registers a handler fired before a pair is pushed
// apart; call PreventResolution on the collision to skip resolution for the
// pair this frame.
func (o *GameObject) OnBeforePhysicsResolve(cb func(col *Collision)) *EventController {
	return o.On("beforePhysicsResolve", func(args ...any) {
		cb(args[0].(*Collision))
	})
}

// OnPhysicsResolve registers a handler fired after a pair has been pushed
// apart.
func (o *GameObject) OnPhysicsResolve(cb func(col *Collision)) *EventController {
	return o.On("physicsResolve", func(args ...any) {
		cb(args[0].(*Collision))
	})
}

// IsColliding reports whether the two objects were overlapping in the most
// recent collision pass.
func (o *GameObject) IsColliding(other *GameObject) bool {
	_, ok := o.ctx.pairs[makePairKey(o.id, other.id)]
	return ok
}

// detectCollisions is the per-frame collision pass: rebuild the broad-phase
// grid, run narrow-phase tests over candidate pairs, resolve overlapping
// solid bodies, and fire collide/collideUpdate/collideEnd transitions.
func (c *Context) detectCollisions() {
	areas := c.taggedSorted("area")
	c.grid.clear()
	shapes := make(map[uint64]Shape, len(areas))
	for _, o := range areas {
		comp, ok := o.comps["area"]
		if !ok {
			continue
		}
		shape := comp.(*AreaComp).WorldShape(o)
		shapes[o.id] = shape
		c.grid.insert(o, shape.Bounds())
	}

	current := make(map[pairKey]struct{})
	for _, pair := range c.grid.candidatePairs() {
		a, b := pair[0], pair[1]
		if !a.exists || !b.exists {
			continue
		}
		disp, overlapping := shapeDisplacement(shapes[a.id], shapes[b.id])
		if !overlapping {
			continue
		}
		key := pairKey{a.id, b.id}
		current[key] = struct{}{}
		_, ongoing := c.pairs[key]

		prevented := false
		col := &Collision{Source: a, Target: b, Displacement: disp, prevented: &prevented}
		c.resolvePair(a, b, col)

		if !ongoing {
			c.safeHook(a, "collide", func() { a.Trigger("collide", b, col) })
			if b.exists {
				c.safeHook(b, "collide", func() { b.Trigger("collide", a, col.Reversed()) })
			}
		}
		if a.exists {
			c.safeHook(a, "collide", func() { a.Trigger("collideUpdate", b, col) })
		}
		if b.exists {
			c.safeHook(b, "collide", func() { b.Trigger("collideUpdate", a, col.Reversed()) })
		}
	}

	for key := range c.pairs {
		if _, still := current[key]; still {
			continue
		}
		a, b := c.objs[key.a], c.objs[key.b]
		if a != nil {
			c.safeHook(a, "collide", func() { a.Trigger("collideEnd", b) })
		}
		if b != nil {
			c.safeHook(b, "collide", func() { b.Trigger("collideEnd", a) })
		}
	}
	c.pairs = current

	c.settleBodies()
}

// resolvePair pushes two overlapping solid bodies apart along the minimum
// translation vector, weighted by inverse mass. Static bodies never move;
// a static/dynamic pair moves the dynamic body by the full displacement.
func (c *Context) resolvePair(a, b *GameObject, col *Collision) {
	abody := bodyOf(a)
	bbody := bodyOf(b)
	if abody == nil || bbody == nil {
		return
	}
	aarea := a.comps["area"].(*AreaComp)
	barea := b.comps["area"].(*AreaComp)
	if aarea.ignores(b) || barea.ignores(a) {
		return
	}
	c.safeHook(a, "resolve", func() { a.Trigger("beforePhysicsResolve", col) })
	c.safeHook(b, "resolve", func() { b.Trigger("beforePhysicsResolve", col.Reversed()) })
	if *col.prevented || !a.exists || !b.exists {
		return
	}

	invA, invB := abody.invMass(), bbody.invMass()
	total := invA + invB
	if total == 0 {
		return
	}
	disp := col.Displacement
	if invA > 0 {
		a.SetPos(a.Pos.Add(disp.Scale(invA / total)))
	}
	if invB > 0 {
		b.SetPos(b.Pos.Sub(disp.Scale(invB / total)))
	}
	col.Resolved = true

	abody.onResolved(c, a, b, col)
	bbody.onResolved(c, b, a, col.Reversed())

	c.safeHook(a, "resolve", func() { a.Trigger("physicsResolve", col) })
	if b.exists {
		c.safeHook(b, "resolve", func() { b.Trigger("physicsResolve", col.Reversed()) })
	}
}

func bodyOf(o *GameObject) *BodyComp {
	if comp, ok := o.comps["body"]; ok {
		return comp.(*BodyComp)
	}
	return nil
}

// settleBodies fires ground/fall transitions once all resolutions for the
// frame are known. Grounded state is derived per frame, never stored across
// frames without rederivation.
func (c *Context) settleBodies() {
	for _, o := range c.taggedSorted("body") {
		body := bodyOf(o)
		if body == nil || !o.exists {
			continue
		}
		if body.groundedNow && !body.grounded {
			platform := body.platform
			c.safeHook(o, "ground", func() { o.Trigger("ground", platform) })
		} else if !body.groundedNow && body.grounded {
			body.platform = nil
			c.safeHook(o, "fall", func() { o.Trigger("fall") })
		}
		if o.exists {
			body.grounded = body.groundedNow
			body.groundedNow = false
		}
	}
}
