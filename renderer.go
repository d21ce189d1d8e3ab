package kaplay

// Renderer is the narrow interface the draw phase calls into. The core
// computes world transforms and submits primitives; how they reach pixels
// is the backend's business. EbitenRenderer is the shipped implementation;
// tests use recording stubs.
type Renderer interface {
	// DrawRect draws a w x h rectangle with its top-left at the transform
	// origin.
	DrawRect(t Mat, w, h float64, color Color, opacity float64)
	// DrawCircle draws a circle centered on the transform origin.
	DrawCircle(t Mat, radius float64, color Color, opacity float64)
	// DrawLine draws a segment between two transform-local points.
	DrawLine(t Mat, p1, p2 Vec2, width float64, color Color, opacity float64)
	// DrawPolygon draws a filled convex polygon of transform-local points.
	DrawPolygon(t Mat, pts []Vec2, color Color, opacity float64)
	// DrawSprite draws the named sprite with its top-left at the transform
	// origin.
	DrawSprite(t Mat, name string, color Color, opacity float64)
}

// NopRenderer discards every draw call. It is the default backend, keeping
// the simulation core runnable headless.
type NopRenderer struct{}

func (NopRenderer) DrawRect(Mat, float64, float64, Color, float64)    {}
func (NopRenderer) DrawCircle(Mat, float64, Color, float64)           {}
func (NopRenderer) DrawLine(Mat, Vec2, Vec2, float64, Color, float64) {}
func (NopRenderer) DrawPolygon(Mat, []Vec2, Color, float64)           {}
func (NopRenderer) DrawSprite(Mat, string, Color, float64)            {}

// AssetResolver maps sprite names to frame metadata. The collision engine's
// default-shape-from-render-bounds path and the Sprite component depend on
// it; asset loading and decoding stay outside the core.
type AssetResolver interface {
	// SpriteBounds returns the frame bounds of the named sprite, or false
	// when the sprite is unknown (or still loading).
	SpriteBounds(name string) (Rect, bool)
}

// Store is the persistent key/value collaborator behind GetData/SetData.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// memStore is the default in-process Store.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) Set(key, value string) {
	s.data[key] = value
}
