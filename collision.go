package kaplay

import "math"

// Collision describes one pairwise overlap for one frame. It is created
// fresh each narrow-phase check and not persisted across frames; only the
// pair membership set survives, to detect collide-start and collide-end
// transitions.
type Collision struct {
	// Source is the object the collision is reported to; Target is the
	// other object.
	Source *GameObject
	Target *GameObject
	// Displacement is the minimal translation that separates Source from
	// Target.
	Displacement Vec2
	// Resolved is set once the pair has been pushed apart this frame.
	Resolved bool

	prevented *bool
}

// Reversed returns the collision as seen from the target's side: source and
// target swapped and the displacement negated. The resolution-prevention
// flag is shared between the two views.
func (c *Collision) Reversed() *Collision {
	return &Collision{
		Source:       c.Target,
		Target:       c.Source,
		Displacement: c.Displacement.Scale(-1),
		Resolved:     c.Resolved,
		prevented:    c.prevented,
	}
}

// PreventResolution suppresses the push-apart resolution for this pair for
// this frame. Only meaningful inside a beforePhysicsResolve handler.
func (c *Collision) PreventResolution() {
	if c.prevented != nil {
		*c.prevented = true
	}
}

// Side classification derives from the displacement vector's dominant axis
// and sign. A displacement at exactly 45 degrees classifies as horizontal
// (left/right), not vertical.

// IsLeft reports whether the source collided on its left side (it was
// pushed right to separate).
func (c *Collision) IsLeft() bool {
	return c.Displacement.X > 0 && math.Abs(c.Displacement.X) >= math.Abs(c.Displacement.Y)
}

// IsRight reports whether the source collided on its right side (it was
// pushed left to separate).
func (c *Collision) IsRight() bool {
	return c.Displacement.X < 0 && math.Abs(c.Displacement.X) >= math.Abs(c.Displacement.Y)
}

// IsTop reports whether the source collided on its top side (it was pushed
// down to separate).
func (c *Collision) IsTop() bool {
	return c.Displacement.Y > 0 && math.Abs(c.Displacement.Y) > math.Abs(c.Displacement.X)
}

// IsBottom reports whether the source collided on its bottom side (it was
// pushed up to separate).
func (c *Collision) IsBottom() bool {
	return c.Displacement.Y < 0 && math.Abs(c.Displacement.Y) > math.Abs(c.Displacement.X)
}
