package kaplay

// Transform components. These initialize the owning object's transform
// fields on attach; the object fields are authoritative afterwards (one
// flat struct keeps the scheduler and collision hot paths free of
// capability lookups). The component ids still register as tags, so
// dependency checks and Is("pos") work as usual.

// Pos returns a component that places the object at (x, y) relative to its
// parent.
func Pos(x, y float64) *PosComp {
	return &PosComp{Pos: Vec2{x, y}}
}

// PosComp is the position component. See Pos.
type PosComp struct {
	Pos Vec2
}

func (p *PosComp) ID() string { return "pos" }

func (p *PosComp) Add(obj *GameObject) {
	obj.SetPos(p.Pos)
}

// Rotate returns a component that rotates the object by a radians.
func Rotate(a float64) *RotateComp {
	return &RotateComp{Angle: a}
}

// RotateComp is the rotation component. See Rotate.
type RotateComp struct {
	Angle float64
}

func (r *RotateComp) ID() string { return "rotate" }

func (r *RotateComp) Add(obj *GameObject) {
	obj.SetAngle(r.Angle)
}

// Scale returns a component that scales the object by (x, y).
func Scale(x, y float64) *ScaleComp {
	return &ScaleComp{Scale: Vec2{x, y}}
}

// ScaleComp is the scale component. See Scale.
type ScaleComp struct {
	Scale Vec2
}

func (s *ScaleComp) ID() string { return "scale" }

func (s *ScaleComp) Add(obj *GameObject) {
	obj.SetScale(s.Scale)
}

// Anchor returns a component that sets the object's render and collider
// origin in [0, 1] units: (0, 0) is top-left, (0.5, 0.5) the center.
func Anchor(x, y float64) *AnchorComp {
	return &AnchorComp{Anchor: Vec2{x, y}}
}

// AnchorComp is the anchor component. See Anchor.
type AnchorComp struct {
	Anchor Vec2
}

func (a *AnchorComp) ID() string { return "anchor" }

func (a *AnchorComp) Add(obj *GameObject) {
	obj.Anchor = a.Anchor
}

// Fixed returns a component that excludes the object (and its subtree)
// from camera composition, for UI and HUD elements. A fixed object nested
// under a non-root parent still composes with its parent's transform.
func Fixed() *FixedComp {
	return &FixedComp{}
}

// FixedComp is the fixed component. See Fixed.
type FixedComp struct{}

func (f *FixedComp) ID() string { return "fixed" }

func (f *FixedComp) Add(obj *GameObject) {
	obj.fixed = true
}

// Rectangle returns a component that draws a w x h rectangle and supplies
// the object's render bounds for default collider shapes.
func Rectangle(w, h float64) *RectangleComp {
	return &RectangleComp{Width: w, Height: h}
}

// RectangleComp is the rectangle draw component. See Rectangle.
type RectangleComp struct {
	Width, Height float64
}

func (r *RectangleComp) ID() string { return "rect" }

func (r *RectangleComp) Draw(obj *GameObject, rdr Renderer) {
	t := obj.RenderTransform().Mul(Mat{1, 0, 0, 1,
		-obj.Anchor.X * r.Width, -obj.Anchor.Y * r.Height})
	rdr.DrawRect(t, r.Width, r.Height, obj.Color, obj.Opacity)
}

// Sprite returns a component that draws the named sprite. The frame bounds
// come from the context's asset resolver; they feed default collider
// shapes the same way Rectangle dimensions do.
func Sprite(name string) *SpriteComp {
	return &SpriteComp{Name: name}
}

// SpriteComp is the sprite draw component. See Sprite.
type SpriteComp struct {
	Name          string
	Width, Height float64
}

func (s *SpriteComp) ID() string { return "sprite" }

func (s *SpriteComp) Add(obj *GameObject) {
	if obj.ctx.assets == nil {
		return
	}
	if bounds, ok := obj.ctx.assets.SpriteBounds(s.Name); ok {
		s.Width = bounds.Width
		s.Height = bounds.Height
	}
}

func (s *SpriteComp) Draw(obj *GameObject, rdr Renderer) {
	t := obj.RenderTransform().Mul(Mat{1, 0, 0, 1,
		-obj.Anchor.X * s.Width, -obj.Anchor.Y * s.Height})
	rdr.DrawSprite(t, s.Name, obj.Color, obj.Opacity)
}
