package fontatlas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas/internal/outline"
	"github.com/gogpu/fontatlas/internal/pack"
	"github.com/gogpu/fontatlas/internal/parallel"
	"github.com/gogpu/fontatlas/msdf"
)

// glyphJob is one character on its way into the atlas.
type glyphJob struct {
	r     rune
	glyph *outline.Glyph

	// Box in pixels relative to the pen, y down, including the field range.
	left, top int
	w, h      int

	pos pack.Point
	bmp *msdf.Bitmap
	err error
}

func (j *glyphJob) blank() bool { return j.w == 0 || j.h == 0 }

// build runs the whole pipeline for one font: parse, extract outlines,
// pack, generate fields, blit, kern and upload.
func build(data []byte, letters string, cfg *config) (*Font, error) {
	start := time.Now()
	log := Logger()

	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	runes, err := parseCharset(letters)
	if err != nil {
		return nil, err
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse font: %w", err)
	}

	var buf sfnt.Buffer
	em := float64(cfg.emSize)
	f := newFont()
	f.Name, _ = sf.Name(&buf, sfnt.NameIDFamily)
	f.FontMetrics, err = fontMetrics(sf, &buf, cfg)
	if err != nil {
		return nil, err
	}

	jobs, err := extractGlyphs(sf, &buf, runes, cfg)
	if err != nil {
		return nil, err
	}

	sizes := make([]pack.Size, len(jobs))
	for i := range jobs {
		sizes[i] = pack.Size{W: jobs[i].w, H: jobs[i].h}
	}
	positions, side, err := pack.Layout(sizes, cfg.padding, 1, cfg.maxAtlasSize)
	if err != nil {
		if errors.Is(err, pack.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %d glyphs at %dpx em, max %dpx", ErrAtlasTooLarge, len(jobs), cfg.emSize, cfg.maxAtlasSize)
		}
		return nil, err
	}

	pool := parallel.NewWorkerPool(cfg.workers)
	defer pool.Close()

	gen := msdf.NewGenerator(msdf.Config{
		Range:           cfg.pixelRange,
		AngleThreshold:  cfg.angleThreshold,
		ErrorCorrection: cfg.errorCorrection,
	})
	work := make([]func(), 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		j.pos = positions[i]
		if j.blank() {
			continue
		}
		work = append(work, func() {
			msdf.ColorEdges(j.glyph.Shape, cfg.angleThreshold)
			proj := msdf.Projection{Scale: 1, Translate: msdf.Vec2{X: float64(-j.left), Y: float64(-j.top)}}
			j.bmp, j.err = gen.Generate(j.glyph.Shape, proj, j.w, j.h)
		})
	}
	pool.ExecuteAll(work)

	atlas := newAtlasImage(side)
	for i := range jobs {
		j := &jobs[i]
		if j.err != nil {
			return nil, fmt.Errorf("fontatlas: generate %q: %w", j.r, j.err)
		}
		m := Metrics{
			Rune:    j.r,
			GlyphID: uint16(j.glyph.ID),
			Advance: float32(j.glyph.Advance / em),
		}
		var uv [4]float32
		if !j.blank() {
			blit(atlas, j.bmp, j.pos)
			m.Plane = Bounds{
				Left:   float32(float64(j.left) / em),
				Bottom: float32(-float64(j.top+j.h) / em),
				Right:  float32(float64(j.left+j.w) / em),
				Top:    float32(-float64(j.top) / em),
			}
			m.Atlas = Bounds{
				Left:   float32(j.pos.X),
				Bottom: float32(j.pos.Y + j.h),
				Right:  float32(j.pos.X + j.w),
				Top:    float32(j.pos.Y),
			}
			uv = atlasUV(m.Atlas, side, side)
			log.Debug("fontatlas: glyph placed", "rune", string(j.r), "x", j.pos.X, "y", j.pos.Y, "w", j.w, "h", j.h)
		}
		f.addSlot(m, uv)
	}
	f.Atlas = atlas

	if cfg.kerning && len(jobs) > 1 {
		placed := make([]rune, len(jobs))
		for i := range jobs {
			placed[i] = jobs[i].r
		}
		f.Kerning, err = kerningTable(data, placed, em, pool)
		if err != nil {
			return nil, err
		}
	}

	if b := cfg.resolveBackend(); b != nil {
		label := "fontatlas: " + f.Name
		tex, err := b.NewTexture(atlas, label)
		if err != nil {
			return nil, fmt.Errorf("fontatlas: upload atlas: %w", err)
		}
		f.Texture = tex
	}

	log.Info("fontatlas: font loaded",
		"name", f.Name,
		"glyphs", f.GlyphCount(),
		"atlas", side,
		"kerning", len(f.Kerning),
		"elapsed", time.Since(start))
	return f, nil
}

// extractGlyphs loads the outline of every rune and computes its box. Runes
// the font does not cover are skipped with a warning, or fail in strict
// mode. sfnt.Buffer is not safe for concurrent use, so extraction is
// sequential; it is cheap next to field generation.
func extractGlyphs(sf *sfnt.Font, buf *sfnt.Buffer, runes []rune, cfg *config) ([]glyphJob, error) {
	em := float64(cfg.emSize)
	jobs := make([]glyphJob, 0, len(runes))
	for _, r := range runes {
		gid, err := outline.Lookup(sf, buf, r)
		if errors.Is(err, outline.ErrNoGlyph) {
			if cfg.strict {
				return nil, &GlyphNotFoundError{Rune: r}
			}
			Logger().Warn("fontatlas: character not in font, skipped", "rune", string(r), "code", int(r))
			continue
		}
		if err != nil {
			return nil, err
		}
		g, err := outline.Extract(sf, buf, gid, em)
		if err != nil {
			return nil, fmt.Errorf("fontatlas: %q: %w", r, err)
		}
		j := glyphJob{r: r, glyph: g}
		if !g.Blank() {
			rng := cfg.pixelRange
			j.left = int(math.Floor(g.Bounds.Min.X - rng))
			j.top = int(math.Floor(g.Bounds.Min.Y - rng))
			j.w = int(math.Ceil(g.Bounds.Max.X+rng)) - j.left
			j.h = int(math.Ceil(g.Bounds.Max.Y+rng)) - j.top
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func fontMetrics(sf *sfnt.Font, buf *sfnt.Buffer, cfg *config) (FontMetrics, error) {
	em := float64(cfg.emSize)
	m, err := sf.Metrics(buf, fixed.Int26_6(em*64), font.HintingNone)
	if err != nil {
		return FontMetrics{}, fmt.Errorf("fontatlas: font metrics: %w", err)
	}
	toEm := func(v fixed.Int26_6) float32 { return float32(float64(v) / 64 / em) }
	return FontMetrics{
		EmSize:     float32(cfg.emSize),
		PixelRange: float32(cfg.pixelRange),
		Ascender:   toEm(m.Ascent),
		Descender:  -toEm(m.Descent),
		LineHeight: toEm(m.Height),
		XHeight:    toEm(m.XHeight),
		CapHeight:  toEm(m.CapHeight),
	}, nil
}

// newAtlasImage returns a side x side atlas with every channel at zero
// distance value (far outside) and opaque alpha.
func newAtlasImage(side int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// bitmapImage wraps an MSDF bitmap as an opaque RGBA image.
func bitmapImage(b *msdf.Bitmap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, o := 0, 0; i < len(b.Pix); i, o = i+3, o+4 {
		img.Pix[o] = b.Pix[i]
		img.Pix[o+1] = b.Pix[i+1]
		img.Pix[o+2] = b.Pix[i+2]
		img.Pix[o+3] = 0xff
	}
	return img
}

func blit(dst *image.RGBA, b *msdf.Bitmap, at pack.Point) {
	src := bitmapImage(b)
	draw.Copy(dst, image.Pt(at.X, at.Y), src, src.Bounds(), draw.Src, nil)
}

// atlasUV converts pixel bounds with y down to normalized UVs.
func atlasUV(b Bounds, w, h int) [4]float32 {
	fw, fh := float32(w), float32(h)
	return [4]float32{b.Left / fw, b.Top / fh, b.Right / fw, b.Bottom / fh}
}
