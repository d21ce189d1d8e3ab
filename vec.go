package kaplay

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, velocities, and
// directions throughout the API. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// ScaleV returns component-wise v * o.
func (v Vec2) ScaleV(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component) of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// SqLen returns the squared length of v, avoiding the square root.
func (v Vec2) SqLen() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Unit returns v normalized to length 1, or the zero vector if v is zero.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// SqDist returns the squared distance between v and o.
func (v Vec2) SqDist(o Vec2) float64 {
	return v.Sub(o).SqLen()
}

// Lerp returns the linear interpolation from v to o by t in [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Angle returns the angle of v in radians, measured from the positive X axis.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normal returns the perpendicular of v (rotated 90 degrees clockwise in
// screen coordinates).
func (v Vec2) Normal() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Mat is a 2D affine transform matrix.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Mat [6]float64

// MatIdentity is the identity transform.
var MatIdentity = Mat{1, 0, 0, 1, 0, 0}

// MatTRS composes a local transform from position, rotation (radians), and
// scale, in translate -> rotate -> scale order: a point is scaled first, then
// rotated, then translated.
func MatTRS(pos Vec2, rot float64, scale Vec2) Mat {
	sin, cos := math.Sincos(rot)
	return Mat{
		cos * scale.X,
		sin * scale.X,
		-sin * scale.Y,
		cos * scale.Y,
		pos.X,
		pos.Y,
	}
}

// Mul returns m * c, the transform that applies c first and m second.
func (m Mat) Mul(c Mat) Mat {
	return Mat{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Apply transforms the point p by m.
func (m Mat) Apply(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[2]*p.Y + m[4],
		m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyDir transforms the direction d by m, ignoring translation.
func (m Mat) ApplyDir(d Vec2) Vec2 {
	return Vec2{
		m[0]*d.X + m[2]*d.Y,
		m[1]*d.X + m[3]*d.Y,
	}
}

// Invert computes the inverse of m. Returns the identity matrix if m is
// singular (determinant near 0).
func (m Mat) Invert() Mat {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return MatIdentity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	tx := -(a*m[4] + c*m[5])
	ty := -(b*m[4] + d*m[5])
	return Mat{a, b, c, d, tx, ty}
}

// Pos returns the translation component of m.
func (m Mat) Pos() Vec2 {
	return Vec2{m[4], m[5]}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// clamp limits x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
