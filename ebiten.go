package kaplay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenRenderer is the shipped Renderer backend. It draws onto the ebiten
// image handed to it each frame and doubles as the AssetResolver for
// sprites registered on it.
type EbitenRenderer struct {
	target  *ebiten.Image
	white   *ebiten.Image
	sprites map[string]*ebiten.Image
}

func NewEbitenRenderer() *EbitenRenderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &EbitenRenderer{
		white:   white,
		sprites: make(map[string]*ebiten.Image),
	}
}

// RegisterSprite makes an image drawable by name through DrawSprite and
// resolvable through SpriteBounds.
func (r *EbitenRenderer) RegisterSprite(name string, img *ebiten.Image) {
	r.sprites[name] = img
}

// SpriteBounds implements AssetResolver.
func (r *EbitenRenderer) SpriteBounds(name string) (Rect, bool) {
	img, ok := r.sprites[name]
	if !ok {
		return Rect{}, false
	}
	b := img.Bounds()
	return Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}, true
}

// SetTarget points subsequent draw calls at an image. The Runner sets it to
// the screen every frame.
func (r *EbitenRenderer) SetTarget(img *ebiten.Image) {
	r.target = img
}

// geoM converts a [6]float64 transform into an ebiten.GeoM.
func geoM(t Mat) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

func scaleColor(op *ebiten.DrawImageOptions, c Color, opacity float64) {
	a := float32(clamp(c.A*opacity, 0, 1))
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

func rgba(c Color, opacity float64) color.RGBA {
	a := clamp(c.A*opacity, 0, 1)
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * a * 255),
		G: uint8(clamp(c.G, 0, 1) * a * 255),
		B: uint8(clamp(c.B, 0, 1) * a * 255),
		A: uint8(a * 255),
	}
}

func (r *EbitenRenderer) DrawRect(t Mat, w, h float64, c Color, opacity float64) {
	if r.target == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Concat(geoM(t))
	scaleColor(&op, c, opacity)
	r.target.DrawImage(r.white, &op)
}

func (r *EbitenRenderer) DrawCircle(t Mat, radius float64, c Color, opacity float64) {
	if r.target == nil {
		return
	}
	// vector helpers work in screen space, so the transform is applied to
	// the center and the radius scaled by the transform's average axis
	// length. Non-uniform scales should go through DrawPolygon.
	center := t.Pos()
	sx := t.ApplyDir(Vec2{1, 0}).Len()
	sy := t.ApplyDir(Vec2{0, 1}).Len()
	rad := radius * (sx + sy) / 2
	vector.DrawFilledCircle(r.target, float32(center.X), float32(center.Y), float32(rad), rgba(c, opacity), true)
}

func (r *EbitenRenderer) DrawLine(t Mat, p1, p2 Vec2, width float64, c Color, opacity float64) {
	if r.target == nil {
		return
	}
	a := t.Apply(p1)
	b := t.Apply(p2)
	vector.StrokeLine(r.target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), rgba(c, opacity), true)
}

func (r *EbitenRenderer) DrawPolygon(t Mat, pts []Vec2, c Color, opacity float64) {
	if r.target == nil || len(pts) < 3 {
		return
	}
	var path vector.Path
	first := t.Apply(pts[0])
	path.MoveTo(float32(first.X), float32(first.Y))
	for _, p := range pts[1:] {
		sp := t.Apply(p)
		path.LineTo(float32(sp.X), float32(sp.Y))
	}
	path.Close()

	verts, inds := path.AppendVerticesAndIndicesForFilling(nil, nil)
	col := rgba(c, opacity)
	for i := range verts {
		verts[i].ColorR = float32(col.R) / 255
		verts[i].ColorG = float32(col.G) / 255
		verts[i].ColorB = float32(col.B) / 255
		verts[i].ColorA = float32(col.A) / 255
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	r.target.DrawTriangles(verts, inds, r.white, op)
}

func (r *EbitenRenderer) DrawSprite(t Mat, name string, c Color, opacity float64) {
	if r.target == nil {
		return
	}
	img, ok := r.sprites[name]
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Concat(geoM(t))
	scaleColor(&op, c, opacity)
	r.target.DrawImage(img, &op)
}

// Runner adapts a Context to the ebiten game loop.
type Runner struct {
	ctx      *Context
	renderer *EbitenRenderer
}

func (g *Runner) Update() error {
	if g.ctx.Stopped() {
		return ebiten.Termination
	}
	g.ctx.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Runner) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.ctx.Draw()
	g.renderer.SetTarget(nil)
}

func (g *Runner) Layout(_, _ int) (int, int) {
	return int(g.ctx.Width()), int(g.ctx.Height())
}

// Run drives the context with the ebiten game loop until Quit is called or
// the window is closed. The context's Renderer must be an EbitenRenderer.
func (c *Context) Run() error {
	er, ok := c.renderer.(*EbitenRenderer)
	if !ok {
		er = NewEbitenRenderer()
		c.renderer = er
		if c.assets == nil {
			c.assets = er
		}
	}
	ebiten.SetWindowSize(int(c.Width()), int(c.Height()))
	return ebiten.RunGame(&Runner{ctx: c, renderer: er})
}
