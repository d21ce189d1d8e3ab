package kaplay

import "math"

// Narrow-phase intersection tests over the closed shape set. Shapes are
// canonicalized to either a circle or a convex polygon (point = 1 vertex,
// line = 2 vertices, rect = 4 corners, ellipse = circle or sampled polygon)
// and dispatched to three kernels: polygon/polygon SAT, circle/polygon, and
// circle/circle.

// TestShapes reports whether two world-space shapes overlap.
func TestShapes(a, b Shape) bool {
	_, ok := shapeDisplacement(a, b)
	return ok
}

// shapeDisplacement returns the minimum translation that moves a out of
// overlap with b, or false if the shapes do not overlap.
//
// Point/point, point/line, and line/line pairs are decided by the exact
// containment and crossing tests: SAT's only candidate axis for collinear
// segments is their shared normal, which never separates them along the
// carrier line. These pairs have no interior and overlap with a zero
// displacement.
func shapeDisplacement(a, b Shape) (Vec2, bool) {
	switch as := a.(type) {
	case Point:
		return Vec2{}, b.Contains(as.Pos)
	case Line:
		if bl, ok := b.(Line); ok {
			return Vec2{}, segmentsIntersect(as.P1, as.P2, bl.P1, bl.P2)
		}
	}
	if bp, ok := b.(Point); ok {
		return Vec2{}, a.Contains(bp.Pos)
	}
	ca, pa, aCircle := satShape(a)
	cb, pb, bCircle := satShape(b)
	switch {
	case aCircle && bCircle:
		return circleCircleMTV(ca, cb)
	case aCircle:
		mtv, ok := circlePolyMTV(ca, pb)
		return mtv, ok
	case bCircle:
		mtv, ok := circlePolyMTV(cb, pa)
		if !ok {
			return Vec2{}, false
		}
		return mtv.Scale(-1), true
	default:
		return polyPolyMTV(pa, pb)
	}
}

// satShape canonicalizes a shape for the SAT kernels.
func satShape(s Shape) (Circle, Polygon, bool) {
	switch v := s.(type) {
	case Circle:
		return v, Polygon{}, true
	case Ellipse:
		if v.RadiusX == v.RadiusY {
			return Circle{Center: v.Center, Radius: v.RadiusX}, Polygon{}, true
		}
		return Circle{}, v.Polygon(), false
	case Rect:
		return Circle{}, Polygon{Pts: v.Points()}, false
	case Line:
		return Circle{}, Polygon{Pts: []Vec2{v.P1, v.P2}}, false
	case Point:
		return Circle{}, Polygon{Pts: []Vec2{v.Pos}}, false
	case Polygon:
		return Circle{}, v, false
	}
	return Circle{}, Polygon{}, false
}

// segmentsIntersect reports whether segments ab and cd cross or touch.
func segmentsIntersect(a, b, c, d Vec2) bool {
	d1 := d.Sub(c).Cross(a.Sub(c))
	d2 := d.Sub(c).Cross(b.Sub(c))
	d3 := b.Sub(a).Cross(c.Sub(a))
	d4 := b.Sub(a).Cross(d.Sub(a))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && (Line{c, d}).Contains(a)) ||
		(d2 == 0 && (Line{c, d}).Contains(b)) ||
		(d3 == 0 && (Line{a, b}).Contains(c)) ||
		(d4 == 0 && (Line{a, b}).Contains(d))
}

// projectPoly projects the polygon's vertices onto axis.
func projectPoly(p Polygon, axis Vec2) (min, max float64) {
	min = p.Pts[0].Dot(axis)
	max = min
	for _, pt := range p.Pts[1:] {
		d := pt.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// polyCenter returns the vertex average, used to orient MTVs.
func polyCenter(p Polygon) Vec2 {
	var c Vec2
	for _, pt := range p.Pts {
		c = c.Add(pt)
	}
	return c.Scale(1 / float64(len(p.Pts)))
}

// polyAxes appends the outward edge normals of p to axes.
func polyAxes(p Polygon, axes []Vec2) []Vec2 {
	n := len(p.Pts)
	if n < 2 {
		return axes
	}
	// A 2-vertex "polygon" (segment) contributes its single normal.
	if n == 2 {
		return append(axes, p.Pts[1].Sub(p.Pts[0]).Normal().Unit())
	}
	for i := 0; i < n; i++ {
		edge := p.Pts[(i+1)%n].Sub(p.Pts[i])
		axes = append(axes, edge.Normal().Unit())
	}
	return axes
}

// polyPolyMTV runs SAT over both polygons' edge normals. Returns the minimum
// translation pushing a out of b.
func polyPolyMTV(a, b Polygon) (Vec2, bool) {
	if len(a.Pts) == 0 || len(b.Pts) == 0 {
		return Vec2{}, false
	}
	axes := polyAxes(a, nil)
	axes = polyAxes(b, axes)
	if len(axes) == 0 {
		// Two points: overlap only when coincident; no meaningful MTV.
		if a.Pts[0] == b.Pts[0] {
			return Vec2{}, true
		}
		return Vec2{}, false
	}
	minOverlap := math.Inf(1)
	var minAxis Vec2
	for _, axis := range axes {
		if axis == (Vec2{}) {
			continue
		}
		minA, maxA := projectPoly(a, axis)
		minB, maxB := projectPoly(b, axis)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap < 0 {
			return Vec2{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
		}
	}
	d := polyCenter(b).Sub(polyCenter(a))
	if minAxis.Dot(d) > 0 {
		minAxis = minAxis.Scale(-1)
	}
	return minAxis.Scale(minOverlap), true
}

// circlePolyMTV tests a circle against a convex polygon. Returns the minimum
// translation pushing the circle out of the polygon.
func circlePolyMTV(c Circle, p Polygon) (Vec2, bool) {
	if len(p.Pts) == 0 {
		return Vec2{}, false
	}
	axes := polyAxes(p, nil)
	// Extra axis from the circle center to the closest vertex covers the
	// corner contact case SAT over edge normals alone misses.
	closest := p.Pts[0]
	closestDist := c.Center.SqDist(closest)
	for _, pt := range p.Pts[1:] {
		if d := c.Center.SqDist(pt); d < closestDist {
			closest = pt
			closestDist = d
		}
	}
	if axis := closest.Sub(c.Center).Unit(); axis != (Vec2{}) {
		axes = append(axes, axis)
	}
	if len(axes) == 0 {
		// Polygon degenerated to a point.
		if c.Contains(p.Pts[0]) {
			return p.Pts[0].Sub(c.Center).Unit().Scale(c.Radius), true
		}
		return Vec2{}, false
	}
	minOverlap := math.Inf(1)
	var minAxis Vec2
	for _, axis := range axes {
		minP, maxP := projectPoly(p, axis)
		center := c.Center.Dot(axis)
		minC, maxC := center-c.Radius, center+c.Radius
		overlap := math.Min(maxC, maxP) - math.Max(minC, minP)
		if overlap < 0 {
			return Vec2{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
		}
	}
	d := polyCenter(p).Sub(c.Center)
	if minAxis.Dot(d) > 0 {
		minAxis = minAxis.Scale(-1)
	}
	return minAxis.Scale(minOverlap), true
}

// circleCircleMTV returns the minimum translation pushing a out of b.
func circleCircleMTV(a, b Circle) (Vec2, bool) {
	delta := a.Center.Sub(b.Center)
	dist := delta.Len()
	overlap := a.Radius + b.Radius - dist
	if overlap < 0 {
		return Vec2{}, false
	}
	if dist == 0 {
		// Coincident centers: push along +X by convention.
		return Vec2{X: overlap}, true
	}
	return delta.Scale(overlap / dist), true
}
