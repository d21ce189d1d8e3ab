package kaplay

import (
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// camScroll holds active scroll-to tweens for camera X and Y.
type camScroll struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
}

// Camera controls the view into the scene: position, zoom, and rotation.
// Non-fixed objects compose the camera view into their render transforms;
// fixed objects ignore it. The camera defaults to centering on the middle
// of the world viewport.
type Camera struct {
	ctx *Context

	pos   Vec2 // world-space point the camera centers on
	scale Vec2
	angle float64 // radians, clockwise

	shake       float64
	shakeOffset Vec2

	followTarget *GameObject
	followOffset Vec2
	followLerp   float64

	scroll *camScroll

	view  Mat
	dirty bool
}

func newCamera(ctx *Context) *Camera {
	return &Camera{
		ctx:   ctx,
		pos:   Vec2{ctx.opt.Width / 2, ctx.opt.Height / 2},
		scale: Vec2{1, 1},
		dirty: true,
	}
}

// Pos returns the world-space position the camera centers on.
func (c *Camera) Pos() Vec2 {
	return c.pos
}

// SetPos moves the camera center to p.
func (c *Camera) SetPos(p Vec2) {
	c.pos = p
	c.dirty = true
}

// Scale returns the camera zoom factors.
func (c *Camera) Scale() Vec2 {
	return c.scale
}

// SetScale sets the camera zoom (1 = no zoom, >1 = zoom in).
func (c *Camera) SetScale(s Vec2) {
	c.scale = s
	c.dirty = true
}

// Angle returns the camera rotation in radians.
func (c *Camera) Angle() float64 {
	return c.angle
}

// SetAngle sets the camera rotation in radians.
func (c *Camera) SetAngle(a float64) {
	c.angle = a
	c.dirty = true
}

// Follow makes the camera track a target object with the given offset and
// per-frame lerp factor. A lerp of 1 snaps immediately; lower values give
// smoother following.
func (c *Camera) Follow(obj *GameObject, offset Vec2, lerp float64) {
	c.followTarget = obj
	c.followOffset = offset
	c.followLerp = clamp(lerp, 0, 1)
}

// Unfollow stops tracking the current target object.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// Shake kicks the camera with the given intensity in pixels; the shake
// decays over the following frames.
func (c *Camera) Shake(intensity float64) {
	c.shake += intensity
}

// ScrollTo animates the camera center to the given world position over
// duration seconds. A new ScrollTo replaces an in-flight one.
func (c *Camera) ScrollTo(target Vec2, duration float64, easeFn ease.TweenFunc) {
	c.scroll = &camScroll{
		tweenX: gween.New(float32(c.pos.X), float32(target.X), float32(duration), easeFn),
		tweenY: gween.New(float32(c.pos.Y), float32(target.Y), float32(duration), easeFn),
	}
}

// View returns the camera view matrix mapping world space to screen space.
func (c *Camera) View() Mat {
	if c.dirty {
		center := Vec2{c.ctx.opt.Width / 2, c.ctx.opt.Height / 2}
		eye := c.pos.Add(c.shakeOffset)
		c.view = MatTRS(center, c.angle, c.scale).Mul(Mat{1, 0, 0, 1, -eye.X, -eye.Y})
		c.dirty = false
	}
	return c.view
}

// ToScreen converts a world-space point to screen space.
func (c *Camera) ToScreen(p Vec2) Vec2 {
	return c.View().Apply(p)
}

// ToWorld converts a screen-space point to world space.
func (c *Camera) ToWorld(p Vec2) Vec2 {
	return c.View().Invert().Apply(p)
}

// update advances follow, scroll, and shake. Called once per frame from the
// context update phase.
func (c *Camera) update(dt float64) {
	if c.followTarget != nil {
		if !c.followTarget.Exists() {
			c.followTarget = nil
		} else {
			want := c.followTarget.WorldPos().Add(c.followOffset)
			c.pos = c.pos.Lerp(want, c.followLerp)
			c.dirty = true
		}
	}
	if c.scroll != nil {
		x, doneX := c.scroll.tweenX.Update(float32(dt))
		y, doneY := c.scroll.tweenY.Update(float32(dt))
		c.pos = Vec2{float64(x), float64(y)}
		c.dirty = true
		if doneX && doneY {
			c.scroll = nil
		}
	}
	if c.shake > 0 {
		c.shake -= c.shake * 5 * dt
		if c.shake < 0.05 {
			c.shake = 0
			c.shakeOffset = Vec2{}
		} else {
			c.shakeOffset = Vec2{rand.Float64()*2 - 1, rand.Float64()*2 - 1}.Scale(c.shake)
		}
		c.dirty = true
	}
}
