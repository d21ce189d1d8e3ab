package kaplay

import "go.uber.org/zap"

// The frame scheduler. Each frame runs two strictly ordered passes over the
// scene graph, depth-first preorder from the root: update, then draw. No
// draw hook runs before every update hook of the frame has completed.
//
// Traversal iterates snapshots of each child list, so objects added or
// destroyed by a hook never corrupt the in-progress walk: children added
// under an already-visited node are first visited next frame, and destroyed
// objects are skipped for every remaining hook of the current frame.

// Step advances the engine by one frame: update pass, collision pass, draw
// pass, in that order.
func (c *Context) Step(dt float64) {
	c.Update(dt)
	c.Draw()
}

// Update runs the scheduled tasks, the camera, the update pass, and the
// collision pass for one frame of dt seconds.
func (c *Context) Update(dt float64) {
	if c.stopped {
		return
	}
	c.dt = dt
	c.elapsed += dt
	c.advanceTasks(dt)
	c.cam.update(dt)
	c.safeHook(c.root, "update", func() { c.root.events.trigger("update", dt) })
	for _, child := range c.root.Children() {
		c.updateObj(child, dt)
	}
	c.detectCollisions()
	c.frame++
}

func (c *Context) updateObj(o *GameObject, dt float64) {
	if !o.exists || o.Paused {
		// A paused subtree skips the update phase entirely; it still draws.
		return
	}
	order := append([]string(nil), o.compOrder...)
	for _, id := range order {
		if !o.exists {
			return
		}
		comp, ok := o.comps[id]
		if !ok {
			continue
		}
		if up, ok := comp.(CompUpdater); ok {
			c.safeHook(o, "update", func() { up.Update(o, dt) })
		}
	}
	if !o.exists {
		return
	}
	c.safeHook(o, "update", func() { o.Trigger("update", dt) })
	for _, child := range o.Children() {
		c.updateObj(child, dt)
	}
}

// Draw runs the draw pass against the configured renderer.
func (c *Context) Draw() {
	c.DrawTo(c.renderer)
}

// DrawTo runs the draw pass against r, computing and caching world
// transforms top-down as it walks.
func (c *Context) DrawTo(r Renderer) {
	if c.stopped {
		return
	}
	c.root.transform = c.root.localTransform()
	c.root.transformDirty = false
	for _, child := range c.root.Children() {
		c.drawObj(child, c.root.transform, r)
	}
}

func (c *Context) drawObj(o *GameObject, parentWorld Mat, r Renderer) {
	if !o.exists {
		return
	}
	o.transform = parentWorld.Mul(o.localTransform())
	o.transformDirty = false
	if o.Hidden {
		// A hidden subtree skips the draw phase; it still updates, and its
		// transforms stay fresh for collision queries.
		for _, child := range o.Children() {
			c.refreshTransform(child, o.transform)
		}
		return
	}
	order := append([]string(nil), o.compOrder...)
	for _, id := range order {
		if !o.exists {
			return
		}
		comp, ok := o.comps[id]
		if !ok {
			continue
		}
		if d, ok := comp.(CompDrawer); ok {
			c.safeHook(o, "draw", func() { d.Draw(o, r) })
		}
	}
	if !o.exists {
		return
	}
	c.safeHook(o, "draw", func() { o.events.trigger("draw") })
	for _, child := range o.Children() {
		c.drawObj(child, o.transform, r)
	}
}

// refreshTransform recomputes cached world transforms under a hidden subtree
// without invoking draw hooks.
func (c *Context) refreshTransform(o *GameObject, parentWorld Mat) {
	if !o.exists {
		return
	}
	o.transform = parentWorld.Mul(o.localTransform())
	o.transformDirty = false
	for _, child := range o.children {
		c.refreshTransform(child, o.transform)
	}
}

// RenderTransform returns the transform the draw backend should use for the
// object: the camera view composed with the world transform, unless the
// object sits in a fixed chain.
func (o *GameObject) RenderTransform() Mat {
	t := o.WorldTransform()
	if o.IsFixed() {
		return t
	}
	return o.ctx.cam.View().Mul(t)
}

// safeHook runs a lifecycle hook and contains any panic it raises: the
// failure is reported through the engine logger and sibling objects still
// run their hooks this frame.
func (c *Context) safeHook(o *GameObject, phase string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			c.log.Error("game object hook panicked",
				zap.Uint64("object", o.id),
				zap.String("phase", phase),
				zap.Any("panic", rec),
			)
		}
	}()
	fn()
}
