package msdf

import "math"

// Config holds MSDF generation parameters.
type Config struct {
	// Range is the distance in output pixels mapped to half of the byte
	// span on each side of the edge. Default: 4.
	Range float64

	// AngleThreshold is the turn angle (radians) above which a vertex is
	// treated as a corner by ColorEdges. Default: pi/3.
	AngleThreshold float64

	// ErrorCorrection is the clash threshold in pixels passed to
	// CorrectErrors after generation. Zero disables correction.
	ErrorCorrection float64
}

// DefaultConfig returns the default generation settings.
func DefaultConfig() Config {
	return Config{
		Range:          4,
		AngleThreshold: math.Pi / 3,
	}
}

// Validate checks c and returns a *ConfigError describing the first problem.
func (c *Config) Validate() error {
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	if !(c.AngleThreshold > 0) || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	if c.ErrorCorrection < 0 || math.IsNaN(c.ErrorCorrection) {
		return &ConfigError{Field: "ErrorCorrection", Reason: "must not be negative"}
	}
	return nil
}

// Generator renders shapes into MSDF bitmaps. A Generator holds no mutable
// state and may be shared between goroutines.
type Generator struct {
	config Config
}

// NewGenerator returns a Generator using config.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.config }

// Generate renders shape into a w x h bitmap. proj maps shape coordinates
// to bitmap pixels; sample points are pixel centers. The shape should be
// normalized and colored beforehand. An empty shape yields an all-outside
// bitmap.
func (g *Generator) Generate(shape *Shape, proj Projection, w, h int) (*Bitmap, error) {
	bmp, err := NewBitmap(w, h)
	if err != nil {
		return nil, err
	}
	if shape == nil || shape.Empty() || proj.Scale <= 0 {
		return bmp, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := proj.Unproject(Vec2{float64(x) + 0.5, float64(y) + 0.5})
			r, gr, b := shapeDistance(shape, p)
			bmp.Set(x, y,
				g.encode(r*proj.Scale),
				g.encode(gr*proj.Scale),
				g.encode(b*proj.Scale))
		}
	}

	if g.config.ErrorCorrection > 0 {
		CorrectErrors(bmp, g.config.ErrorCorrection/(2*g.config.Range))
	}
	return bmp, nil
}

// encode maps a pixel distance to a byte: 128 on the edge, above inside.
func (g *Generator) encode(distPx float64) byte {
	v := 0.5 + distPx/(2*g.config.Range)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return byte(math.Round(v * 255))
}

type channelSelection struct {
	best signedDistance
	seg  *Segment
	t    float64
}

func (c *channelSelection) add(sd signedDistance, seg *Segment, t float64) {
	if c.seg == nil || sd.closer(c.best) {
		c.best, c.seg, c.t = sd, seg, t
	}
}

func (c *channelSelection) resolve(p Vec2) float64 {
	if c.seg == nil {
		return -math.MaxFloat64
	}
	return c.seg.pseudoDistance(c.best, c.t, p).dist
}

// shapeDistance returns the per-channel pseudo-distances from p, in shape
// units. Each channel considers only the segments carrying it.
func shapeDistance(s *Shape, p Vec2) (r, g, b float64) {
	var sel [3]channelSelection
	for ci := range s.Contours {
		segs := s.Contours[ci].Segments
		for i := range segs {
			seg := &segs[i]
			sd, t := seg.distance(p)
			if seg.Color&Red != 0 {
				sel[0].add(sd, seg, t)
			}
			if seg.Color&Green != 0 {
				sel[1].add(sd, seg, t)
			}
			if seg.Color&Blue != 0 {
				sel[2].add(sd, seg, t)
			}
		}
	}
	return sel[0].resolve(p), sel[1].resolve(p), sel[2].resolve(p)
}

// CorrectErrors finds neighboring pixels whose channels interpolate to a
// false edge and flattens the offending pixel to its median. threshold is
// the smallest channel jump, as a fraction of the byte range, treated as a
// clash.
func CorrectErrors(b *Bitmap, threshold float64) int {
	if b == nil || threshold <= 0 {
		return 0
	}
	limit := threshold * 255
	var clashes []int
	seen := make([]bool, b.Width*b.Height)
	mark := func(x, y int) {
		i := y*b.Width + x
		if !seen[i] {
			seen[i] = true
			clashes = append(clashes, i)
		}
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.At(x, y)
			a := [3]float64{float64(r), float64(g), float64(bl)}
			if x+1 < b.Width {
				r2, g2, b2 := b.At(x+1, y)
				c := [3]float64{float64(r2), float64(g2), float64(b2)}
				if clash(a, c, limit) {
					mark(x, y)
				}
				if clash(c, a, limit) {
					mark(x+1, y)
				}
			}
			if y+1 < b.Height {
				r2, g2, b2 := b.At(x, y+1)
				c := [3]float64{float64(r2), float64(g2), float64(b2)}
				if clash(a, c, limit) {
					mark(x, y)
				}
				if clash(c, a, limit) {
					mark(x, y+1)
				}
			}
		}
	}
	for _, i := range clashes {
		x, y := i%b.Width, i/b.Width
		m := b.Median(x, y)
		b.Set(x, y, m, m, m)
	}
	return len(clashes)
}

// clash reports whether pixel a disagrees with its neighbor c strongly
// enough in two channels to produce an artifact, and a is the pixel
// farther from the edge.
func clash(a, c [3]float64, limit float64) bool {
	// Order channel pairs by descending difference.
	if math.Abs(c[1]-a[1]) < math.Abs(c[2]-a[2]) {
		a[1], a[2] = a[2], a[1]
		c[1], c[2] = c[2], c[1]
	}
	if math.Abs(c[0]-a[0]) < math.Abs(c[1]-a[1]) {
		a[0], a[1] = a[1], a[0]
		c[0], c[1] = c[1], c[0]
		if math.Abs(c[1]-a[1]) < math.Abs(c[2]-a[2]) {
			a[1], a[2] = a[2], a[1]
			c[1], c[2] = c[2], c[1]
		}
	}
	const mid = 127.5
	return math.Abs(c[1]-a[1]) >= limit &&
		!(c[0] == c[1] && c[0] == c[2]) &&
		math.Abs(a[2]-mid) >= math.Abs(c[2]-mid)
}
