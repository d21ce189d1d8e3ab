package kaplay

import (
	"math"
	"testing"
)

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	cases := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{15, 25}, true},
		{Vec2{10, 20}, true}, // edge counts as inside
		{Vec2{40, 60}, true},
		{Vec2{9, 25}, false},
		{Vec2{15, 61}, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Intersects(Rect{5, 5, 10, 10}) {
		t.Error("overlapping rects should intersect")
	}
	if !r.Intersects(Rect{10, 0, 10, 10}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if r.Intersects(Rect{11, 0, 10, 10}) {
		t.Error("separated rects should not intersect")
	}
}

func TestRectCenterAndPoints(t *testing.T) {
	r := Rect{0, 0, 10, 20}
	assertVec(t, "center", r.Center(), Vec2{5, 10})
	pts := r.Points()
	if len(pts) != 4 {
		t.Fatalf("Points returned %d corners, want 4", len(pts))
	}
	assertVec(t, "top-left", pts[0], Vec2{0, 0})
	assertVec(t, "bottom-right", pts[2], Vec2{10, 20})
}

func TestRectTransformAxisAligned(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	got := r.Transform(MatTRS(Vec2{5, 7}, 0, Vec2{2, 3}))
	rect, ok := got.(Rect)
	if !ok {
		t.Fatalf("axis-aligned transform returned %T, want Rect", got)
	}
	assertNear(t, "x", rect.X, 5)
	assertNear(t, "y", rect.Y, 7)
	assertNear(t, "w", rect.Width, 20)
	assertNear(t, "h", rect.Height, 30)
}

func TestRectTransformRotated(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	got := r.Transform(MatTRS(Vec2{}, math.Pi/4, Vec2{1, 1}))
	poly, ok := got.(Polygon)
	if !ok {
		t.Fatalf("rotated transform returned %T, want Polygon", got)
	}
	if len(poly.Pts) != 4 {
		t.Fatalf("polygon has %d vertices, want 4", len(poly.Pts))
	}
}

// --- Circle & Ellipse ---

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Vec2{5, 5}, Radius: 3}
	if !c.Contains(Vec2{5, 5}) || !c.Contains(Vec2{8, 5}) {
		t.Error("points inside or on the circle should be contained")
	}
	if c.Contains(Vec2{8.1, 5}) {
		t.Error("point outside the circle should not be contained")
	}
}

func TestCircleTransformUniform(t *testing.T) {
	c := Circle{Center: Vec2{1, 1}, Radius: 2}
	got := c.Transform(MatTRS(Vec2{10, 0}, 0, Vec2{3, 3}))
	circle, ok := got.(Circle)
	if !ok {
		t.Fatalf("uniform scale returned %T, want Circle", got)
	}
	assertVec(t, "center", circle.Center, Vec2{13, 3})
	assertNear(t, "radius", circle.Radius, 6)
}

func TestCircleTransformNonUniform(t *testing.T) {
	c := Circle{Center: Vec2{}, Radius: 2}
	got := c.Transform(MatTRS(Vec2{}, 0, Vec2{2, 3}))
	e, ok := got.(Ellipse)
	if !ok {
		t.Fatalf("non-uniform scale returned %T, want Ellipse", got)
	}
	assertNear(t, "rx", e.RadiusX, 4)
	assertNear(t, "ry", e.RadiusY, 6)
}

func TestEllipseContains(t *testing.T) {
	e := Ellipse{Center: Vec2{0, 0}, RadiusX: 4, RadiusY: 2}
	if !e.Contains(Vec2{3.9, 0}) || !e.Contains(Vec2{0, 1.9}) {
		t.Error("points inside the ellipse should be contained")
	}
	if e.Contains(Vec2{3.9, 1.9}) {
		t.Error("corner point outside the ellipse should not be contained")
	}
}

func TestEllipseBounds(t *testing.T) {
	e := Ellipse{Center: Vec2{10, 20}, RadiusX: 3, RadiusY: 5}
	b := e.Bounds()
	assertNear(t, "x", b.X, 7)
	assertNear(t, "y", b.Y, 15)
	assertNear(t, "w", b.Width, 6)
	assertNear(t, "h", b.Height, 10)
}

// --- Line & Point ---

func TestLineContains(t *testing.T) {
	l := Line{P1: Vec2{0, 0}, P2: Vec2{10, 10}}
	if !l.Contains(Vec2{5, 5}) {
		t.Error("midpoint should be on the segment")
	}
	if l.Contains(Vec2{5, 6}) {
		t.Error("off-line point should not be on the segment")
	}
	if l.Contains(Vec2{11, 11}) {
		t.Error("collinear point past the endpoint should not be on the segment")
	}
}

func TestPointShape(t *testing.T) {
	p := Point{Pos: Vec2{3, 4}}
	if !p.Contains(Vec2{3, 4}) || p.Contains(Vec2{3, 5}) {
		t.Error("point contains only itself")
	}
	b := p.Bounds()
	if b.Width != 0 || b.Height != 0 {
		t.Errorf("point bounds = %v, want zero size", b)
	}
}

// --- Polygon ---

func TestPolygonContainsBothWindings(t *testing.T) {
	cw := Polygon{Pts: []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	ccw := Polygon{Pts: []Vec2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}}
	inside := Vec2{5, 5}
	outside := Vec2{15, 5}
	for name, poly := range map[string]Polygon{"cw": cw, "ccw": ccw} {
		if !poly.Contains(inside) {
			t.Errorf("%s: inside point not contained", name)
		}
		if poly.Contains(outside) {
			t.Errorf("%s: outside point contained", name)
		}
	}
}

func TestPolygonBounds(t *testing.T) {
	p := Polygon{Pts: []Vec2{{1, 2}, {5, -3}, {-2, 4}}}
	b := p.Bounds()
	assertNear(t, "x", b.X, -2)
	assertNear(t, "y", b.Y, -3)
	assertNear(t, "w", b.Width, 7)
	assertNear(t, "h", b.Height, 7)
}
