package msdf

import "math"

// Contour is a closed loop of segments. The end of each segment coincides
// with the start of the next.
type Contour struct {
	Segments []Segment
}

// area returns the shoelace area of the contour sampled along its segments.
// Positive means the filled side is on the left of travel in a y-down frame.
func (c *Contour) area() float64 {
	var sum float64
	for i := range c.Segments {
		s := &c.Segments[i]
		steps := 1
		if s.Kind != Linear {
			steps = 8
		}
		prev := s.Start()
		for k := 1; k <= steps; k++ {
			p := s.Point(float64(k) / float64(steps))
			sum += prev.Cross(p)
			prev = p
		}
	}
	return sum / 2
}

func (c *Contour) reverse() {
	n := len(c.Segments)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		c.Segments[i], c.Segments[j] = c.Segments[j], c.Segments[i]
	}
	for i := range c.Segments {
		c.Segments[i].Reverse()
	}
}

// Shape is a glyph outline made of closed contours.
type Shape struct {
	Contours []Contour
}

// EdgeCount returns the total number of segments.
func (s *Shape) EdgeCount() int {
	n := 0
	for i := range s.Contours {
		n += len(s.Contours[i].Segments)
	}
	return n
}

// Empty reports whether the shape has no segments.
func (s *Shape) Empty() bool { return s.EdgeCount() == 0 }

// Bounds returns the bounding box of all segments.
func (s *Shape) Bounds() Rect {
	r := emptyRect()
	for i := range s.Contours {
		for j := range s.Contours[i].Segments {
			r = r.Union(s.Contours[i].Segments[j].Bounds())
		}
	}
	return r
}

// Area returns the signed area summed over all contours.
func (s *Shape) Area() float64 {
	var a float64
	for i := range s.Contours {
		a += s.Contours[i].area()
	}
	return a
}

// Normalize orients the shape so the filled region has positive distance.
// TrueType and CFF outlines use opposite winding, so the dominant winding
// is detected from the total area and every contour flipped if needed.
// Contours without segments are dropped.
func (s *Shape) Normalize() {
	kept := s.Contours[:0]
	for _, c := range s.Contours {
		if len(c.Segments) > 0 {
			kept = append(kept, c)
		}
	}
	s.Contours = kept
	if s.Area() >= 0 {
		return
	}
	for i := range s.Contours {
		s.Contours[i].reverse()
	}
}

// Builder accumulates path commands into a Shape. A MoveTo or the first
// drawing command implicitly starts a contour; Close or a new MoveTo ends it
// and inserts a closing line when the pen is away from the start.
type Builder struct {
	shape   Shape
	cur     []Segment
	start   Vec2
	pen     Vec2
	started bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// MoveTo starts a new contour at p.
func (b *Builder) MoveTo(p Vec2) {
	b.Close()
	b.start, b.pen, b.started = p, p, true
}

// LineTo appends a straight segment.
func (b *Builder) LineTo(p Vec2) {
	b.begin()
	if p == b.pen {
		return
	}
	b.cur = append(b.cur, Line(b.pen, p))
	b.pen = p
}

// QuadTo appends a quadratic Bezier segment.
func (b *Builder) QuadTo(c, p Vec2) {
	b.begin()
	if c == b.pen && p == b.pen {
		return
	}
	b.cur = append(b.cur, Quad(b.pen, c, p))
	b.pen = p
}

// CubeTo appends a cubic Bezier segment.
func (b *Builder) CubeTo(c1, c2, p Vec2) {
	b.begin()
	if c1 == b.pen && c2 == b.pen && p == b.pen {
		return
	}
	b.cur = append(b.cur, Cube(b.pen, c1, c2, p))
	b.pen = p
}

// Close ends the current contour.
func (b *Builder) Close() {
	if !b.started {
		return
	}
	if b.pen != b.start && len(b.cur) > 0 && closeEnough(b.pen, b.start) {
		// Snap rounding noise instead of adding a sliver segment.
		last := &b.cur[len(b.cur)-1]
		last.P[last.Kind+1] = b.start
	} else if b.pen != b.start {
		b.cur = append(b.cur, Line(b.pen, b.start))
	}
	if len(b.cur) > 0 {
		b.shape.Contours = append(b.shape.Contours, Contour{Segments: b.cur})
	}
	b.cur = nil
	b.pen = b.start
	b.started = false
}

// Shape closes any open contour and returns the result.
func (b *Builder) Shape() *Shape {
	b.Close()
	s := b.shape
	b.shape = Shape{}
	return &s
}

func (b *Builder) begin() {
	if !b.started {
		b.start, b.started = b.pen, true
	}
}

func closeEnough(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
