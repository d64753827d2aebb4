package msdf

import (
	"math"
	"sort"
	"testing"
)

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		want       []float64
	}{
		{"three roots", 1, -6, 11, -6, []float64{1, 2, 3}},
		{"one root", 1, 0, 0, -8, []float64{2}},
		{"quadratic", 0, 1, -3, 2, []float64{1, 2}},
		{"linear", 0, 0, 2, -4, []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solveCubic(tt.a, tt.b, tt.c, tt.d)
			sort.Float64s(got)
			if len(got) != len(tt.want) {
				t.Fatalf("roots = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("root %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineDistanceSign(t *testing.T) {
	seg := Line(Vec2{0, 0}, Vec2{10, 0})
	tests := []struct {
		p    Vec2
		want float64
	}{
		{Vec2{5, 3}, 3},
		{Vec2{5, -2}, -2},
		{Vec2{-3, 4}, 5},
	}
	for _, tt := range tests {
		sd, _ := seg.distance(tt.p)
		if math.Abs(sd.dist-tt.want) > 1e-9 {
			t.Errorf("distance(%v) = %v, want %v", tt.p, sd.dist, tt.want)
		}
	}
}

func TestPseudoDistanceExtendsLine(t *testing.T) {
	seg := Line(Vec2{0, 0}, Vec2{10, 0})
	p := Vec2{-3, 4}
	sd, tt := seg.distance(p)
	pd := seg.pseudoDistance(sd, tt, p)
	if math.Abs(pd.dist-4) > 1e-9 {
		t.Errorf("pseudo-distance = %v, want 4", pd.dist)
	}
}

func TestQuadraticDistance(t *testing.T) {
	// Apex of this parabola is (10, 5).
	seg := Quad(Vec2{0, 10}, Vec2{10, 0}, Vec2{20, 10})
	sd, tt := seg.distance(Vec2{10, 2})
	if math.Abs(math.Abs(sd.dist)-3) > 1e-6 {
		t.Errorf("|distance| = %v, want 3", math.Abs(sd.dist))
	}
	if math.Abs(tt-0.5) > 1e-6 {
		t.Errorf("t = %v, want 0.5", tt)
	}
}

func TestCubicDistance(t *testing.T) {
	// A straight cubic behaves like a line.
	seg := Cube(Vec2{0, 0}, Vec2{3, 0}, Vec2{7, 0}, Vec2{10, 0})
	sd, _ := seg.distance(Vec2{4, 2})
	if math.Abs(sd.dist-2) > 1e-6 {
		t.Errorf("distance = %v, want 2", sd.dist)
	}
}

func TestSegmentBounds(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want Rect
	}{
		{"line", Line(Vec2{2, 3}, Vec2{-1, 5}), Rect{Vec2{-1, 3}, Vec2{2, 5}}},
		{"quad", Quad(Vec2{0, 10}, Vec2{10, 0}, Vec2{20, 10}), Rect{Vec2{0, 5}, Vec2{20, 10}}},
		{"cubic", Cube(Vec2{0, 10}, Vec2{0, 0}, Vec2{20, 0}, Vec2{20, 10}), Rect{Vec2{0, 2.5}, Vec2{20, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.seg.Bounds()
			if !nearVec(got.Min, tt.want.Min) || !nearVec(got.Max, tt.want.Max) {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSegmentReverse(t *testing.T) {
	seg := Cube(Vec2{0, 0}, Vec2{1, 2}, Vec2{3, 4}, Vec2{5, 6})
	seg.Reverse()
	if seg.Start() != (Vec2{5, 6}) || seg.End() != (Vec2{0, 0}) {
		t.Errorf("reversed endpoints = %v..%v", seg.Start(), seg.End())
	}
	if seg.P[1] != (Vec2{3, 4}) {
		t.Errorf("first control = %v, want {3 4}", seg.P[1])
	}
}

func TestSplit3(t *testing.T) {
	seg := Quad(Vec2{0, 10}, Vec2{10, 0}, Vec2{20, 10})
	parts := seg.Split3()
	if parts[0].Start() != seg.Start() || parts[2].End() != seg.End() {
		t.Fatal("split does not preserve endpoints")
	}
	// The middle third must trace the unsplit curve.
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := parts[1].Point(u)
		want := seg.Point(1.0/3 + u/3)
		if !nearVec(got, want) {
			t.Errorf("middle(%v) = %v, want %v", u, got, want)
		}
	}
}

func TestNormalizeOrientation(t *testing.T) {
	s := squareReversed(0, 0, 10, 10)
	if s.Area() >= 0 {
		t.Fatalf("reversed square area = %v, want negative", s.Area())
	}
	s.Normalize()
	if a := s.Area(); math.Abs(a-100) > 1e-9 {
		t.Errorf("normalized area = %v, want 100", a)
	}
}

func TestBuilderClosesContours(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(Vec2{0, 0})
	b.LineTo(Vec2{10, 0})
	b.LineTo(Vec2{10, 10})
	b.MoveTo(Vec2{20, 20})
	b.LineTo(Vec2{30, 20})
	b.LineTo(Vec2{30, 30})
	s := b.Shape()

	if len(s.Contours) != 2 {
		t.Fatalf("contours = %d, want 2", len(s.Contours))
	}
	for i, c := range s.Contours {
		if len(c.Segments) != 3 {
			t.Errorf("contour %d has %d segments, want 3 with closing line", i, len(c.Segments))
		}
		last := c.Segments[len(c.Segments)-1]
		if last.End() != c.Segments[0].Start() {
			t.Errorf("contour %d is not closed", i)
		}
	}
	if s.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", s.EdgeCount())
	}
}

func nearVec(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}
