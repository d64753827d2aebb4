package msdf

import "math"

// Vec2 is a point or direction in shape space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(w Vec2) Vec2      { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2      { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(w Vec2) float64   { return v.X*w.X + v.Y*w.Y }
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Unit returns v scaled to length 1, or the zero vector if v is zero.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned box in shape space.
type Rect struct {
	Min, Max Vec2
}

// emptyRect is the identity for Union.
func emptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r encloses no area.
func (r Rect) Empty() bool {
	return !(r.Min.X < r.Max.X) || !(r.Min.Y < r.Max.Y)
}

// Include grows r to contain p.
func (r Rect) Include(p Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing r and s.
func (r Rect) Union(s Rect) Rect {
	if s.Min.X > s.Max.X || s.Min.Y > s.Max.Y {
		return r
	}
	return r.Include(s.Min).Include(s.Max)
}

// Projection maps shape coordinates to bitmap pixels:
// pixel = (shape + Translate) * Scale.
type Projection struct {
	Scale     float64
	Translate Vec2
}

// Unproject maps a bitmap pixel position back to shape space.
func (p Projection) Unproject(px Vec2) Vec2 {
	return Vec2{px.X/p.Scale - p.Translate.X, px.Y/p.Scale - p.Translate.Y}
}

// Project maps a shape-space point to bitmap pixels.
func (p Projection) Project(v Vec2) Vec2 {
	return Vec2{(v.X + p.Translate.X) * p.Scale, (v.Y + p.Translate.Y) * p.Scale}
}

// Bitmap is an encoded three-channel distance field, row-major, 3 bytes per
// pixel.
type Bitmap struct {
	Pix           []byte
	Width, Height int
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(w, h int) (*Bitmap, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyBitmap
	}
	return &Bitmap{Pix: make([]byte, w*h*3), Width: w, Height: h}, nil
}

func (b *Bitmap) offset(x, y int) int { return (y*b.Width + x) * 3 }

// At returns the channel values at (x, y).
func (b *Bitmap) At(x, y int) (r, g, bl byte) {
	o := b.offset(x, y)
	return b.Pix[o], b.Pix[o+1], b.Pix[o+2]
}

// Set stores the channel values at (x, y).
func (b *Bitmap) Set(x, y int, r, g, bl byte) {
	o := b.offset(x, y)
	b.Pix[o], b.Pix[o+1], b.Pix[o+2] = r, g, bl
}

// Median returns the median channel value at (x, y), which approximates the
// single-channel signed distance.
func (b *Bitmap) Median(x, y int) byte {
	r, g, bl := b.At(x, y)
	return median3(r, g, bl)
}

func median3(a, b, c byte) byte {
	return max(min(a, b), min(max(a, b), c))
}

// signedDistance is a distance to a segment plus the tie breaker used when
// two segments are equally close: the absolute cosine between the segment
// direction and the vector to the query point at the segment's endpoint.
type signedDistance struct {
	dist float64
	dot  float64
}

var farAway = signedDistance{dist: -math.MaxFloat64, dot: 1}

// closer reports whether d is nearer to the outline than o.
func (d signedDistance) closer(o signedDistance) bool {
	ad, ao := math.Abs(d.dist), math.Abs(o.dist)
	if ad != ao {
		return ad < ao
	}
	return d.dot < o.dot
}
