package msdf

import "math"

// SegmentKind is the geometric type of a contour segment.
type SegmentKind uint8

const (
	// Linear is a straight line: P[0] to P[1].
	Linear SegmentKind = iota
	// Quadratic is a quadratic Bezier: P[0], control P[1], end P[2].
	Quadratic
	// Cubic is a cubic Bezier: P[0], controls P[1] and P[2], end P[3].
	Cubic
)

func (k SegmentKind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// Channel is a bit mask of the RGB channels a segment contributes to.
type Channel uint8

const (
	Black   Channel = 0
	Red     Channel = 1 << 0
	Green   Channel = 1 << 1
	Blue    Channel = 1 << 2
	Yellow          = Red | Green
	Magenta         = Red | Blue
	Cyan            = Green | Blue
	White           = Red | Green | Blue
)

func (c Channel) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Magenta:
		return "magenta"
	case Cyan:
		return "cyan"
	case White:
		return "white"
	default:
		return "invalid"
	}
}

// Segment is one piece of a contour.
type Segment struct {
	Kind  SegmentKind
	P     [4]Vec2
	Color Channel
}

// Line returns a linear segment.
func Line(a, b Vec2) Segment {
	return Segment{Kind: Linear, P: [4]Vec2{a, b}, Color: White}
}

// Quad returns a quadratic Bezier segment.
func Quad(a, c, b Vec2) Segment {
	return Segment{Kind: Quadratic, P: [4]Vec2{a, c, b}, Color: White}
}

// Cube returns a cubic Bezier segment.
func Cube(a, c1, c2, b Vec2) Segment {
	return Segment{Kind: Cubic, P: [4]Vec2{a, c1, c2, b}, Color: White}
}

// Start returns the first point of s.
func (s *Segment) Start() Vec2 { return s.P[0] }

// End returns the last point of s.
func (s *Segment) End() Vec2 { return s.P[s.Kind+1] }

// Point evaluates s at parameter t in [0, 1].
func (s *Segment) Point(t float64) Vec2 {
	p := s.P
	switch s.Kind {
	case Quadratic:
		u := 1 - t
		return p[0].Scale(u * u).Add(p[1].Scale(2 * u * t)).Add(p[2].Scale(t * t))
	case Cubic:
		u := 1 - t
		return p[0].Scale(u * u * u).
			Add(p[1].Scale(3 * u * u * t)).
			Add(p[2].Scale(3 * u * t * t)).
			Add(p[3].Scale(t * t * t))
	default:
		return p[0].Lerp(p[1], t)
	}
}

// Direction returns the tangent of s at t. Degenerate control points fall
// back to the chord so corners can still be detected.
func (s *Segment) Direction(t float64) Vec2 {
	p := s.P
	var d Vec2
	switch s.Kind {
	case Quadratic:
		d = p[1].Sub(p[0]).Scale(2 * (1 - t)).Add(p[2].Sub(p[1]).Scale(2 * t))
		if d.LenSq() == 0 {
			d = p[2].Sub(p[0])
		}
	case Cubic:
		u := 1 - t
		d = p[1].Sub(p[0]).Scale(3 * u * u).
			Add(p[2].Sub(p[1]).Scale(6 * u * t)).
			Add(p[3].Sub(p[2]).Scale(3 * t * t))
		if d.LenSq() == 0 {
			if t < 0.5 {
				d = p[2].Sub(p[0])
			} else {
				d = p[3].Sub(p[1])
			}
		}
	default:
		d = p[1].Sub(p[0])
	}
	return d
}

// Reverse flips the direction of travel along s.
func (s *Segment) Reverse() {
	n := int(s.Kind) + 1
	for i, j := 0, n; i < j; i, j = i+1, j-1 {
		s.P[i], s.P[j] = s.P[j], s.P[i]
	}
}

// Split3 cuts s into three pieces of equal parameter length.
func (s *Segment) Split3() [3]Segment {
	var out [3]Segment
	for i := range out {
		t0, t1 := float64(i)/3, float64(i+1)/3
		out[i] = s.sub(t0, t1)
	}
	return out
}

// sub returns the part of s between t0 and t1 using de Casteljau blossoming.
func (s *Segment) sub(t0, t1 float64) Segment {
	p := s.P
	switch s.Kind {
	case Quadratic:
		a := s.Point(t0)
		b := s.Point(t1)
		c := blossomQuad(p, t0, t1)
		return Segment{Kind: Quadratic, P: [4]Vec2{a, c, b}, Color: s.Color}
	case Cubic:
		a := s.Point(t0)
		b := s.Point(t1)
		c1 := blossomCubic(p, t0, t0, t1)
		c2 := blossomCubic(p, t0, t1, t1)
		return Segment{Kind: Cubic, P: [4]Vec2{a, c1, c2, b}, Color: s.Color}
	default:
		return Segment{Kind: Linear, P: [4]Vec2{s.Point(t0), s.Point(t1)}, Color: s.Color}
	}
}

func blossomQuad(p [4]Vec2, u, v float64) Vec2 {
	a := p[0].Lerp(p[1], u)
	b := p[1].Lerp(p[2], u)
	return a.Lerp(b, v)
}

func blossomCubic(p [4]Vec2, u, v, w float64) Vec2 {
	a := p[0].Lerp(p[1], u)
	b := p[1].Lerp(p[2], u)
	c := p[2].Lerp(p[3], u)
	ab := a.Lerp(b, v)
	bc := b.Lerp(c, v)
	return ab.Lerp(bc, w)
}

// Bounds returns the tight bounding box of s.
func (s *Segment) Bounds() Rect {
	r := emptyRect().Include(s.Start()).Include(s.End())
	p := s.P
	switch s.Kind {
	case Quadratic:
		for axis := 0; axis < 2; axis++ {
			a0, a1, a2 := comp(p[0], axis), comp(p[1], axis), comp(p[2], axis)
			den := a0 - 2*a1 + a2
			if den == 0 {
				continue
			}
			if t := (a0 - a1) / den; t > 0 && t < 1 {
				r = r.Include(s.Point(t))
			}
		}
	case Cubic:
		for axis := 0; axis < 2; axis++ {
			a0, a1, a2, a3 := comp(p[0], axis), comp(p[1], axis), comp(p[2], axis), comp(p[3], axis)
			qa := -a0 + 3*a1 - 3*a2 + a3
			qb := 2 * (a0 - 2*a1 + a2)
			qc := a1 - a0
			for _, t := range solveQuadratic(qa, qb, qc) {
				if t > 0 && t < 1 {
					r = r.Include(s.Point(t))
				}
			}
		}
	}
	return r
}

func comp(v Vec2, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

// distance returns the signed distance from p to s and the parameter of the
// closest point. The sign is positive on the left of the direction of travel
// in a y-down frame, which is the filled side after Shape.Normalize.
func (s *Segment) distance(p Vec2) (signedDistance, float64) {
	switch s.Kind {
	case Quadratic:
		return s.curveDistance(p, quadCandidates(s.P, p))
	case Cubic:
		return s.curveDistance(p, cubicCandidates(s, p))
	default:
		return lineDistance(s.P[0], s.P[1], p)
	}
}

func lineDistance(a, b, p Vec2) (signedDistance, float64) {
	ab := b.Sub(a)
	ap := p.Sub(a)
	den := ab.LenSq()
	if den == 0 {
		return signedDistance{dist: ap.Len()}, 0
	}
	t := math.Max(0, math.Min(1, ap.Dot(ab)/den))
	diff := p.Sub(a.Add(ab.Scale(t)))
	d := diff.Len()
	if ab.Cross(ap) < 0 {
		d = -d
	}
	var dot float64
	if t == 0 || t == 1 {
		dot = math.Abs(ab.Unit().Dot(diff.Unit()))
	}
	return signedDistance{dist: d, dot: dot}, t
}

func (s *Segment) curveDistance(p Vec2, candidates []float64) (signedDistance, float64) {
	best := farAway
	bestT := 0.0
	check := func(t float64) {
		if t < 0 || t > 1 {
			return
		}
		diff := p.Sub(s.Point(t))
		dir := s.Direction(t)
		d := diff.Len()
		if dir.Cross(diff) < 0 {
			d = -d
		}
		var dot float64
		if t == 0 || t == 1 {
			dot = math.Abs(dir.Unit().Dot(diff.Unit()))
		}
		if sd := (signedDistance{dist: d, dot: dot}); sd.closer(best) {
			best, bestT = sd, t
		}
	}
	check(0)
	check(1)
	for _, t := range candidates {
		check(t)
	}
	return best, bestT
}

// quadCandidates returns the stationary points of |B(t) - p|^2.
func quadCandidates(c [4]Vec2, p Vec2) []float64 {
	q0 := c[0].Sub(p)
	a := c[0].Sub(c[1].Scale(2)).Add(c[2])
	b := c[1].Sub(c[0]).Scale(2)
	return solveCubic(2*a.Dot(a), 3*a.Dot(b), 2*a.Dot(q0)+b.Dot(b), b.Dot(q0))
}

// cubicCandidates seeds Newton iterations along the curve and returns the
// refined parameters.
func cubicCandidates(s *Segment, p Vec2) []float64 {
	const seeds = 8
	out := make([]float64, 0, seeds+1)
	for i := 0; i <= seeds; i++ {
		t := float64(i) / seeds
		for iter := 0; iter < 8; iter++ {
			diff := s.Point(t).Sub(p)
			d1 := s.Direction(t)
			d2 := cubicSecond(s.P, t)
			f := diff.Dot(d1)
			fp := d1.Dot(d1) + diff.Dot(d2)
			if math.Abs(fp) < 1e-12 {
				break
			}
			step := f / fp
			t = math.Max(0, math.Min(1, t-step))
			if math.Abs(step) < 1e-10 {
				break
			}
		}
		out = append(out, t)
	}
	return out
}

func cubicSecond(p [4]Vec2, t float64) Vec2 {
	a := p[2].Sub(p[1].Scale(2)).Add(p[0])
	b := p[3].Sub(p[2].Scale(2)).Add(p[1])
	return a.Scale(6 * (1 - t)).Add(b.Scale(6 * t))
}

// pseudoDistance extends the segment past its endpoints along the end
// tangents. Channel distances use it so that corners stay sharp.
func (s *Segment) pseudoDistance(sd signedDistance, t float64, p Vec2) signedDistance {
	switch t {
	case 0:
		dir := s.Direction(0).Unit()
		aq := p.Sub(s.Start())
		if aq.Dot(dir) < 0 {
			if pd := dir.Cross(aq); math.Abs(pd) <= math.Abs(sd.dist) {
				return signedDistance{dist: pd}
			}
		}
	case 1:
		dir := s.Direction(1).Unit()
		bq := p.Sub(s.End())
		if bq.Dot(dir) > 0 {
			if pd := dir.Cross(bq); math.Abs(pd) <= math.Abs(sd.dist) {
				return signedDistance{dist: pd}
			}
		}
	}
	return sd
}
