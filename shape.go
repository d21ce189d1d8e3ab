package kaplay

import "math"

// ellipseSegments is the polygon resolution used when an ellipse has to be
// approximated for narrow-phase tests that have no exact ellipse form.
const ellipseSegments = 16

// Shape is one of the closed set of collider shape kinds: Point, Line,
// Circle, Ellipse, Rect, and Polygon. Adding a new kind requires adding its
// pairwise intersection tests in sat.go.
type Shape interface {
	// Bounds returns the axis-aligned bounding box of the shape.
	Bounds() Rect
	// Transform returns a copy of the shape mapped to world space by m.
	Transform(m Mat) Shape
	// Contains reports whether the point p lies inside the shape.
	Contains(p Vec2) bool
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Points returns the four corners in clockwise order starting top-left.
func (r Rect) Points() []Vec2 {
	return []Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// Bounds returns r itself.
func (r Rect) Bounds() Rect {
	return r
}

// Transform maps the rectangle by m. An axis-aligned transform (no rotation)
// yields another Rect; anything else yields the transformed corner Polygon.
func (r Rect) Transform(m Mat) Shape {
	if m[1] == 0 && m[2] == 0 {
		p1 := m.Apply(Vec2{r.X, r.Y})
		p2 := m.Apply(Vec2{r.X + r.Width, r.Y + r.Height})
		return rectFromCorners(p1, p2)
	}
	pts := r.Points()
	for i, p := range pts {
		pts[i] = m.Apply(p)
	}
	return Polygon{Pts: pts}
}

// rectFromCorners builds a Rect from two opposite corners in any orientation.
func rectFromCorners(p1, p2 Vec2) Rect {
	if p2.X < p1.X {
		p1.X, p2.X = p2.X, p1.X
	}
	if p2.Y < p1.Y {
		p1.Y, p2.Y = p2.Y, p1.Y
	}
	return Rect{p1.X, p1.Y, p2.X - p1.X, p2.Y - p1.Y}
}

// Point is a single point collider.
type Point struct {
	Pos Vec2
}

// Bounds returns a zero-size box at the point.
func (p Point) Bounds() Rect {
	return Rect{p.Pos.X, p.Pos.Y, 0, 0}
}

// Transform maps the point by m.
func (p Point) Transform(m Mat) Shape {
	return Point{Pos: m.Apply(p.Pos)}
}

// Contains reports whether q coincides with the point.
func (p Point) Contains(q Vec2) bool {
	return p.Pos == q
}

// Line is a segment collider between two endpoints.
type Line struct {
	P1, P2 Vec2
}

// Bounds returns the axis-aligned box spanned by the endpoints.
func (l Line) Bounds() Rect {
	return rectFromCorners(l.P1, l.P2)
}

// Transform maps both endpoints by m.
func (l Line) Transform(m Mat) Shape {
	return Line{P1: m.Apply(l.P1), P2: m.Apply(l.P2)}
}

// Contains reports whether p lies on the segment (within a small tolerance).
func (l Line) Contains(p Vec2) bool {
	d := l.P2.Sub(l.P1)
	ap := p.Sub(l.P1)
	if math.Abs(d.Cross(ap)) > 1e-9 {
		return false
	}
	t := ap.Dot(d)
	return t >= 0 && t <= d.SqLen()
}

// Circle is a circle collider.
type Circle struct {
	Center Vec2
	Radius float64
}

// Bounds returns the axis-aligned box enclosing the circle.
func (c Circle) Bounds() Rect {
	return Rect{c.Center.X - c.Radius, c.Center.Y - c.Radius, c.Radius * 2, c.Radius * 2}
}

// Transform maps the circle by m. A uniform scale yields another Circle;
// non-uniform scale yields an Ellipse.
func (c Circle) Transform(m Mat) Shape {
	center := m.Apply(c.Center)
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	if math.Abs(sx-sy) < 1e-9 {
		return Circle{Center: center, Radius: c.Radius * sx}
	}
	return Ellipse{Center: center, RadiusX: c.Radius * sx, RadiusY: c.Radius * sy}
}

// Contains reports whether p lies inside the circle.
func (c Circle) Contains(p Vec2) bool {
	return p.SqDist(c.Center) <= c.Radius*c.Radius
}

// Ellipse is an axis-aligned ellipse collider.
type Ellipse struct {
	Center           Vec2
	RadiusX, RadiusY float64
}

// Bounds returns the axis-aligned box enclosing the ellipse.
func (e Ellipse) Bounds() Rect {
	return Rect{e.Center.X - e.RadiusX, e.Center.Y - e.RadiusY, e.RadiusX * 2, e.RadiusY * 2}
}

// Transform maps the ellipse by m. A rotation-free transform yields another
// Ellipse; a rotated transform falls back to the sampled boundary Polygon.
func (e Ellipse) Transform(m Mat) Shape {
	if m[1] == 0 && m[2] == 0 {
		return Ellipse{
			Center:  m.Apply(e.Center),
			RadiusX: e.RadiusX * math.Abs(m[0]),
			RadiusY: e.RadiusY * math.Abs(m[3]),
		}
	}
	poly := e.Polygon()
	for i, p := range poly.Pts {
		poly.Pts[i] = m.Apply(p)
	}
	return poly
}

// Contains reports whether p lies inside the ellipse.
func (e Ellipse) Contains(p Vec2) bool {
	if e.RadiusX == 0 || e.RadiusY == 0 {
		return false
	}
	dx := (p.X - e.Center.X) / e.RadiusX
	dy := (p.Y - e.Center.Y) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// Polygon returns the sampled boundary of the ellipse as a convex polygon.
func (e Ellipse) Polygon() Polygon {
	pts := make([]Vec2, ellipseSegments)
	for i := range pts {
		a := float64(i) / ellipseSegments * 2 * math.Pi
		sin, cos := math.Sincos(a)
		pts[i] = Vec2{e.Center.X + cos*e.RadiusX, e.Center.Y + sin*e.RadiusY}
	}
	return Polygon{Pts: pts}
}

// Polygon is a convex polygon collider. Vertices must be listed in order
// (either winding); narrow-phase tests assume convexity.
type Polygon struct {
	Pts []Vec2
}

// Bounds returns the axis-aligned box enclosing all vertices.
func (p Polygon) Bounds() Rect {
	if len(p.Pts) == 0 {
		return Rect{}
	}
	min, max := p.Pts[0], p.Pts[0]
	for _, pt := range p.Pts[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return Rect{min.X, min.Y, max.X - min.X, max.Y - min.Y}
}

// Transform maps every vertex by m.
func (p Polygon) Transform(m Mat) Shape {
	pts := make([]Vec2, len(p.Pts))
	for i, pt := range p.Pts {
		pts[i] = m.Apply(pt)
	}
	return Polygon{Pts: pts}
}

// Contains reports whether q lies inside the polygon.
func (p Polygon) Contains(q Vec2) bool {
	n := len(p.Pts)
	if n < 3 {
		return false
	}
	// Same-side test against every edge; works for both windings.
	sign := 0.0
	for i := 0; i < n; i++ {
		a := p.Pts[i]
		b := p.Pts[(i+1)%n]
		cross := b.Sub(a).Cross(q.Sub(a))
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}
