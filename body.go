package kaplay

// defaultJumpForce is the upward velocity Jump applies when no force is
// configured, in pixels per second.
const defaultJumpForce = 640

// BodyOpt configures a Body component. Zero-valued fields take defaults:
// mass 1, gravity scale 1, jump force 640. Set the corresponding BodyComp
// field after creation to genuinely zero one of them.
type BodyOpt struct {
	// IsStatic marks an infinite-mass body: it never moves during
	// resolution and skips integration.
	IsStatic bool
	// Mass weights push-apart resolution between two dynamic bodies.
	Mass float64
	// JumpForce is the upward velocity applied by Jump.
	JumpForce float64
	// MaxVelocity caps the body's speed when non-zero.
	MaxVelocity float64
	// Drag decays velocity multiplicatively per second.
	Drag float64
	// GravityScale multiplies the global gravity for this body.
	GravityScale float64
}

// Body returns a component that makes the object a solid rigid body:
// gravity and velocity integration, push-apart resolution against other
// bodies, grounded detection, and platform sticking.
func Body(opts ...BodyOpt) *BodyComp {
	b := &BodyComp{
		Mass:            1,
		GravityScale:    1,
		JumpForce:       defaultJumpForce,
		StickToPlatform: true,
	}
	if len(opts) > 0 {
		opt := opts[0]
		b.IsStatic = opt.IsStatic
		if opt.Mass != 0 {
			b.Mass = opt.Mass
		}
		if opt.JumpForce != 0 {
			b.JumpForce = opt.JumpForce
		}
		if opt.GravityScale != 0 {
			b.GravityScale = opt.GravityScale
		}
		b.MaxVelocity = opt.MaxVelocity
		b.Drag = opt.Drag
	}
	return b
}

// BodyComp is the rigid-body component. See Body.
type BodyComp struct {
	// Vel is the current velocity in pixels per second.
	Vel Vec2

	IsStatic        bool
	Mass            float64
	JumpForce       float64
	MaxVelocity     float64
	Drag            float64
	GravityScale    float64
	StickToPlatform bool

	grounded        bool
	groundedNow     bool
	platform        *GameObject
	lastPlatformPos Vec2
}

func (b *BodyComp) ID() string { return "body" }

func (b *BodyComp) Require() []string { return []string{"pos", "area"} }

func (b *BodyComp) invMass() float64 {
	if b.IsStatic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Update integrates the body for one frame: platform sticking, gravity,
// velocity into position, drag decay, and the velocity cap.
func (b *BodyComp) Update(obj *GameObject, dt float64) {
	if b.IsStatic {
		return
	}
	if b.grounded && b.platform != nil && b.StickToPlatform {
		if !b.platform.exists {
			b.platform = nil
		} else {
			delta := b.platform.Pos.Sub(b.lastPlatformPos)
			if delta != (Vec2{}) {
				obj.Move(delta)
			}
			b.lastPlatformPos = b.platform.Pos
		}
	}
	b.Vel = b.Vel.Add(obj.ctx.gravity.Scale(b.GravityScale * dt))
	obj.Move(b.Vel.Scale(dt))
	if b.Drag > 0 {
		b.Vel = b.Vel.Scale(clamp(1-b.Drag*dt, 0, 1))
	}
	if b.MaxVelocity > 0 {
		if l := b.Vel.Len(); l > b.MaxVelocity {
			b.Vel = b.Vel.Scale(b.MaxVelocity / l)
		}
	}
}

// onResolved records grounded state and kills velocity into the contact
// after a resolution this frame. col is seen from obj's side.
func (b *BodyComp) onResolved(c *Context, obj, other *GameObject, col *Collision) {
	if b.IsStatic {
		return
	}
	if col.IsBottom() {
		b.groundedNow = true
		b.platform = other
		b.lastPlatformPos = other.Pos
		if b.Vel.Y > 0 {
			b.Vel.Y = 0
		}
	} else if col.IsTop() && b.Vel.Y < 0 {
		b.Vel.Y = 0
		c.safeHook(obj, "headbutt", func() { obj.Trigger("headbutt") })
	}
}

// Jump sets the vertical velocity to -force, only when currently grounded.
// A zero force uses the configured JumpForce.
func (b *BodyComp) Jump(force float64) {
	if !b.grounded {
		return
	}
	if force == 0 {
		force = b.JumpForce
	}
	b.Vel.Y = -force
	b.grounded = false
	b.platform = nil
}

// IsGrounded reports whether a resolution last frame pushed the body up
// against a platform directly below.
func (b *BodyComp) IsGrounded() bool {
	return b.grounded
}

// IsFalling reports downward motion while airborne.
func (b *BodyComp) IsFalling() bool {
	return !b.grounded && b.Vel.Y > 0
}

// IsJumping reports upward motion while airborne.
func (b *BodyComp) IsJumping() bool {
	return !b.grounded && b.Vel.Y < 0
}

// Platform returns the object the body is currently standing on, or nil.
func (b *BodyComp) Platform() *GameObject {
	return b.platform
}

// Jump makes the object's body jump if it has one and is grounded, going
// through the doubleJump component when attached. An omitted or zero force
// uses the body's configured JumpForce.
func (o *GameObject) Jump(force ...float64) {
	var f float64
	if len(force) > 0 {
		f = force[0]
	}
	if c, ok := o.Component("doubleJump"); ok {
		c.(*DoubleJumpComp).Jump(o, f)
		return
	}
	body := bodyOf(o)
	if body == nil {
		return
	}
	body.Jump(f)
}

// OnGround registers a handler fired when the body lands on a platform.
func (o *GameObject) OnGround(cb func(platform *GameObject)) *EventController {
	return o.On("ground", func(args ...any) {
		platform, _ := args[0].(*GameObject)
		cb(platform)
	})
}

// OnFall registers a handler fired when the body leaves the ground.
func (o *GameObject) OnFall(cb func()) *EventController {
	return o.On("fall", func(...any) {
		cb()
	})
}

// OnHeadbutt registers a handler fired when the body bumps a ceiling while
// moving up.
func (o *GameObject) OnHeadbutt(cb func()) *EventController {
	return o.On("headbutt", func(...any) {
		cb()
	})
}

// DoubleJump returns a component layering a jump counter over Body: the
// body may jump numJumps times before landing again. The counter resets on
// landing. Default 2.
func DoubleJump(numJumps ...int) *DoubleJumpComp {
	n := 2
	if len(numJumps) > 0 && numJumps[0] > 0 {
		n = numJumps[0]
	}
	return &DoubleJumpComp{NumJumps: n}
}

// DoubleJumpComp is the double-jump component. See DoubleJump.
type DoubleJumpComp struct {
	NumJumps  int
	jumpsLeft int
}

func (d *DoubleJumpComp) ID() string { return "doubleJump" }

func (d *DoubleJumpComp) Require() []string { return []string{"body"} }

func (d *DoubleJumpComp) Add(obj *GameObject) {
	d.jumpsLeft = d.NumJumps
	obj.OnGround(func(*GameObject) {
		d.jumpsLeft = d.NumJumps
	})
}

// Jump jumps from the ground or consumes one mid-air jump. A zero force
// uses the body's configured JumpForce.
func (d *DoubleJumpComp) Jump(obj *GameObject, force float64) {
	body := bodyOf(obj)
	if body == nil || d.jumpsLeft <= 0 {
		return
	}
	if force == 0 {
		force = body.JumpForce
	}
	if body.grounded {
		body.Jump(force)
	} else {
		body.Vel.Y = -force
	}
	d.jumpsLeft--
}

// JumpsLeft returns the remaining mid-air jumps before the next landing.
func (d *DoubleJumpComp) JumpsLeft() int {
	return d.jumpsLeft
}
