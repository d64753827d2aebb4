package fontatlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sort"

	"golang.org/x/image/draw"
)

// atlasJSON mirrors the msdf-atlas-gen JSON layout so atlases can be
// exchanged with tools built around it.
type atlasJSON struct {
	Atlas   atlasInfo     `json:"atlas"`
	Name    string        `json:"name,omitempty"`
	Metrics metricsJSON   `json:"metrics"`
	Glyphs  []glyphJSON   `json:"glyphs"`
	Kerning []kerningJSON `json:"kerning"`
}

type atlasInfo struct {
	Type string `json:"type"`
	// DistanceRange is the full width of the field in pixels, edge to edge.
	DistanceRange float32 `json:"distanceRange"`
	Size          float32 `json:"size"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	YOrigin       string  `json:"yOrigin"`
}

type metricsJSON struct {
	EmSize             float32 `json:"emSize"`
	LineHeight         float32 `json:"lineHeight"`
	Ascender           float32 `json:"ascender"`
	Descender          float32 `json:"descender"`
	UnderlineY         float32 `json:"underlineY"`
	UnderlineThickness float32 `json:"underlineThickness"`
	XHeight            float32 `json:"xHeight,omitempty"`
	CapHeight          float32 `json:"capHeight,omitempty"`
}

type rectJSON struct {
	Left   float32 `json:"left"`
	Bottom float32 `json:"bottom"`
	Right  float32 `json:"right"`
	Top    float32 `json:"top"`
}

type glyphJSON struct {
	Unicode     int32     `json:"unicode"`
	Advance     float32   `json:"advance"`
	PlaneBounds *rectJSON `json:"planeBounds,omitempty"`
	AtlasBounds *rectJSON `json:"atlasBounds,omitempty"`
}

type kerningJSON struct {
	Unicode1 int32   `json:"unicode1"`
	Unicode2 int32   `json:"unicode2"`
	Advance  float32 `json:"advance"`
}

// WritePNG encodes the CPU atlas as PNG.
func (f *Font) WritePNG(w io.Writer) error {
	if f.Atlas == nil {
		return errors.New("fontatlas: no CPU atlas to encode")
	}
	return png.Encode(w, f.Atlas)
}

// WriteJSON writes the atlas metadata in msdf-atlas-gen's JSON layout with
// a top y origin. Kerning pairs are sorted for stable output.
func (f *Font) WriteJSON(w io.Writer) error {
	aw, ah := f.AtlasSize()
	doc := atlasJSON{
		Atlas: atlasInfo{
			Type:          "msdf",
			DistanceRange: 2 * f.FontMetrics.PixelRange,
			Size:          f.FontMetrics.EmSize,
			Width:         aw,
			Height:        ah,
			YOrigin:       "top",
		},
		Name: f.Name,
		Metrics: metricsJSON{
			EmSize:     1,
			LineHeight: f.FontMetrics.LineHeight,
			Ascender:   f.FontMetrics.Ascender,
			Descender:  f.FontMetrics.Descender,
			XHeight:    f.FontMetrics.XHeight,
			CapHeight:  f.FontMetrics.CapHeight,
		},
		Glyphs:  make([]glyphJSON, 0, len(f.Metrics)),
		Kerning: make([]kerningJSON, 0, len(f.Kerning)),
	}
	for _, m := range f.Metrics {
		g := glyphJSON{Unicode: m.Rune, Advance: m.Advance}
		if !m.Blank() {
			g.PlaneBounds = &rectJSON{m.Plane.Left, m.Plane.Bottom, m.Plane.Right, m.Plane.Top}
			g.AtlasBounds = &rectJSON{m.Atlas.Left, m.Atlas.Bottom, m.Atlas.Right, m.Atlas.Top}
		}
		doc.Glyphs = append(doc.Glyphs, g)
	}
	for p, v := range f.Kerning {
		doc.Kerning = append(doc.Kerning, kerningJSON{Unicode1: p.Left, Unicode2: p.Right, Advance: v})
	}
	sort.Slice(doc.Kerning, func(i, j int) bool {
		a, b := doc.Kerning[i], doc.Kerning[j]
		if a.Unicode1 != b.Unicode1 {
			return a.Unicode1 < b.Unicode1
		}
		return a.Unicode2 < b.Unicode2
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// LoadAtlas rebuilds a Font from a prebuilt PNG atlas and its
// msdf-atlas-gen JSON description, without regenerating any field. Both
// "top" and "bottom" y origins are accepted. Only the backend options
// apply; the texture is uploaded like Load does.
func LoadAtlas(imagePath, jsonPath string, opts ...Option) (*Font, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	imgFile, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: open atlas image: %w", err)
	}
	defer imgFile.Close()
	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: open atlas metadata: %w", err)
	}
	defer jsonFile.Close()

	f, err := decodeAtlas(imgFile, jsonFile)
	if err != nil {
		return nil, err
	}
	if b := cfg.resolveBackend(); b != nil {
		tex, err := b.NewTexture(f.Atlas, "fontatlas: "+f.Name)
		if err != nil {
			return nil, fmt.Errorf("fontatlas: upload atlas: %w", err)
		}
		f.Texture = tex
	}
	Logger().Info("fontatlas: atlas loaded", "image", imagePath, "glyphs", f.GlyphCount())
	return f, nil
}

func decodeAtlas(imgR, jsonR io.Reader) (*Font, error) {
	var doc atlasJSON
	if err := json.NewDecoder(jsonR).Decode(&doc); err != nil {
		return nil, fmt.Errorf("fontatlas: decode atlas metadata: %w", err)
	}
	src, err := png.Decode(imgR)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: decode atlas image: %w", err)
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if doc.Atlas.Width != w || doc.Atlas.Height != h {
		return nil, fmt.Errorf("%w: image is %dx%d, metadata says %dx%d",
			ErrInvalidAtlas, w, h, doc.Atlas.Width, doc.Atlas.Height)
	}
	if doc.Atlas.Size <= 0 {
		return nil, fmt.Errorf("%w: missing atlas size", ErrInvalidAtlas)
	}
	switch doc.Atlas.Type {
	case "", "msdf", "mtsdf":
	default:
		return nil, fmt.Errorf("%w: atlas type %q is not a multi-channel distance field", ErrInvalidAtlas, doc.Atlas.Type)
	}
	atlas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(atlas, atlas.Bounds(), src, src.Bounds().Min, draw.Src)

	// msdf-atlas-gen metrics may be scaled to an arbitrary emSize.
	scale := float32(1)
	if doc.Metrics.EmSize > 0 {
		scale = 1 / doc.Metrics.EmSize
	}
	bottomOrigin := doc.Atlas.YOrigin == "bottom"

	f := newFont()
	f.Name = doc.Name
	f.Atlas = atlas
	f.FontMetrics = FontMetrics{
		EmSize:     doc.Atlas.Size,
		PixelRange: doc.Atlas.DistanceRange / 2,
		Ascender:   doc.Metrics.Ascender * scale,
		Descender:  doc.Metrics.Descender * scale,
		LineHeight: doc.Metrics.LineHeight * scale,
		XHeight:    doc.Metrics.XHeight * scale,
		CapHeight:  doc.Metrics.CapHeight * scale,
	}
	for _, g := range doc.Glyphs {
		r := rune(g.Unicode)
		if r < 0 || r >= MaxGlyph {
			return nil, fmt.Errorf("%w: U+%04X", ErrRuneOutOfRange, r)
		}
		if _, dup := f.Index(r); dup {
			continue
		}
		m := Metrics{Rune: r, Advance: g.Advance * scale}
		var uv [4]float32
		if g.PlaneBounds != nil && g.AtlasBounds != nil {
			pb, ab := *g.PlaneBounds, *g.AtlasBounds
			m.Plane = Bounds{pb.Left * scale, pb.Bottom * scale, pb.Right * scale, pb.Top * scale}
			if bottomOrigin {
				ab.Top, ab.Bottom = float32(h)-ab.Top, float32(h)-ab.Bottom
			}
			m.Atlas = Bounds{ab.Left, ab.Bottom, ab.Right, ab.Top}
			if !insideAtlas(m.Atlas, w, h) {
				return nil, fmt.Errorf("%w: atlas bounds of U+%04X %+v outside %dx%d image",
					ErrInvalidAtlas, r, m.Atlas, w, h)
			}
			uv = atlasUV(m.Atlas, w, h)
		}
		f.addSlot(m, uv)
	}
	for _, k := range doc.Kerning {
		f.Kerning[KerningPair{rune(k.Unicode1), rune(k.Unicode2)}] = k.Advance * scale
	}
	return f, nil
}

// insideAtlas reports whether b, in pixels with y down, is a non-inverted
// rectangle within a w x h image.
func insideAtlas(b Bounds, w, h int) bool {
	return b.Left >= 0 && b.Top >= 0 &&
		b.Right <= float32(w) && b.Bottom <= float32(h) &&
		b.Right >= b.Left && b.Bottom >= b.Top
}
