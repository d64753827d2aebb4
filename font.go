package fontatlas

import (
	"fmt"
	"image"
	"sync"
)

// Bounds is a rectangle given by its edges, in the field order used by the
// msdf-atlas-gen JSON format.
type Bounds struct {
	Left, Bottom, Right, Top float32
}

// Width returns Right - Left.
func (b Bounds) Width() float32 { return b.Right - b.Left }

// Height returns the absolute distance between Top and Bottom.
func (b Bounds) Height() float32 {
	if b.Top > b.Bottom {
		return b.Top - b.Bottom
	}
	return b.Bottom - b.Top
}

// Empty reports whether b has no area.
func (b Bounds) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Metrics describes one glyph slot.
type Metrics struct {
	Rune    rune
	GlyphID uint16

	// Advance is the horizontal pen advance in em units.
	Advance float32

	// Plane is the quad to draw relative to the pen on the baseline, in em
	// units with y up. Zero for blank glyphs.
	Plane Bounds

	// Atlas is the glyph's box in the atlas in pixels with y down, so
	// Top < Bottom. Zero for blank glyphs.
	Atlas Bounds
}

// Bearing returns the offset from the pen position to the top-left corner
// of the glyph quad, in em units with y up.
func (m *Metrics) Bearing() (x, y float32) { return m.Plane.Left, m.Plane.Top }

// Size returns the quad size in em units.
func (m *Metrics) Size() (w, h float32) { return m.Plane.Width(), m.Plane.Height() }

// Blank reports whether the glyph has nothing to draw.
func (m *Metrics) Blank() bool { return m.Plane.Empty() }

// FontMetrics holds font-wide values. Lengths are in em units.
type FontMetrics struct {
	// EmSize is the rasterization size in atlas pixels per em.
	EmSize float32
	// PixelRange is the distance in atlas pixels from the edge to a fully
	// saturated channel value.
	PixelRange float32

	Ascender   float32
	Descender  float32 // negative below the baseline
	LineHeight float32
	XHeight    float32
	CapHeight  float32
}

// KerningPair is an ordered pair of characters.
type KerningPair struct {
	Left, Right rune
}

// Glyph bundles the metrics and UV rectangle of one slot.
type Glyph struct {
	Metrics
	Slot int
	// UV is (u0, v0, u1, v1) with a top-left origin.
	UV [4]float32
}

// Font is a loaded MSDF glyph atlas.
//
// A Font is immutable after loading and safe for concurrent reads. Close
// releases the texture; lookups remain valid but Texture and Atlas are nil
// afterwards.
type Font struct {
	// Texture is the uploaded atlas, nil without a Backend.
	Texture Texture

	// Metrics has one entry per slot.
	Metrics []Metrics

	// UV has four floats per slot: u0, v0, u1, v1.
	UV []float32

	// Atlas is the CPU copy of the atlas. RGB hold distances, A is opaque.
	Atlas *image.RGBA

	FontMetrics FontMetrics

	// Kerning holds pair adjustments in em units. Pairs without an entry
	// have no adjustment.
	Kerning map[KerningPair]float32

	// Name is the family name from the font's name table.
	Name string

	indices [MaxGlyph]int16

	closeOnce sync.Once
}

func newFont() *Font {
	f := &Font{Kerning: make(map[KerningPair]float32)}
	for i := range f.indices {
		f.indices[i] = -1
	}
	return f
}

// addSlot appends a slot for m and its UV rectangle.
func (f *Font) addSlot(m Metrics, uv [4]float32) {
	f.indices[m.Rune] = int16(len(f.Metrics))
	f.Metrics = append(f.Metrics, m)
	f.UV = append(f.UV, uv[:]...)
}

// Index returns the slot for r.
func (f *Font) Index(r rune) (int, bool) {
	if r < 0 || r >= MaxGlyph {
		return 0, false
	}
	i := f.indices[r]
	if i < 0 {
		return 0, false
	}
	return int(i), true
}

// Glyph returns the metrics and UV rectangle for r.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	i, ok := f.Index(r)
	if !ok {
		return Glyph{}, false
	}
	g := Glyph{Metrics: f.Metrics[i], Slot: i}
	copy(g.UV[:], f.UV[i*4:i*4+4])
	return g, true
}

// GlyphCount returns the number of slots.
func (f *Font) GlyphCount() int { return len(f.Metrics) }

// Kern returns the kerning adjustment between a and b in em units.
func (f *Font) Kern(a, b rune) float32 {
	return f.Kerning[KerningPair{a, b}]
}

// Advance measures s in em units: the sum of glyph advances plus kerning.
// Characters without a slot contribute nothing. This is a measurement, not
// layout; newlines and tabs are not interpreted.
func (f *Font) Advance(s string) float32 {
	var total float32
	prev := rune(-1)
	for _, r := range s {
		i, ok := f.Index(r)
		if !ok {
			prev = -1
			continue
		}
		total += f.Metrics[i].Advance
		if prev >= 0 {
			total += f.Kern(prev, r)
		}
		prev = r
	}
	return total
}

// AtlasSize returns the atlas dimensions in pixels.
func (f *Font) AtlasSize() (w, h int) {
	if f.Atlas != nil {
		b := f.Atlas.Bounds()
		return b.Dx(), b.Dy()
	}
	if f.Texture != nil {
		return f.Texture.Size()
	}
	return 0, 0
}

// Close releases the texture and the CPU atlas. It is safe to call more
// than once.
func (f *Font) Close() error {
	f.closeOnce.Do(func() {
		if f.Texture != nil {
			f.Texture.Release()
			f.Texture = nil
		}
		f.Atlas = nil
	})
	return nil
}

// String returns a one-line summary.
func (f *Font) String() string {
	w, h := f.AtlasSize()
	return fmt.Sprintf("fontatlas.Font{name=%q, glyphs=%d, atlas=%dx%d, em=%g, range=%g}",
		f.Name, f.GlyphCount(), w, h, f.FontMetrics.EmSize, f.FontMetrics.PixelRange)
}
