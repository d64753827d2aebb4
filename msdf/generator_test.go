package msdf

import (
	"errors"
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) *Shape {
	b := NewBuilder()
	b.MoveTo(Vec2{x0, y0})
	b.LineTo(Vec2{x1, y0})
	b.LineTo(Vec2{x1, y1})
	b.LineTo(Vec2{x0, y1})
	b.Close()
	return b.Shape()
}

func squareReversed(x0, y0, x1, y1 float64) *Shape {
	b := NewBuilder()
	b.MoveTo(Vec2{x0, y0})
	b.LineTo(Vec2{x0, y1})
	b.LineTo(Vec2{x1, y1})
	b.LineTo(Vec2{x1, y0})
	b.Close()
	return b.Shape()
}

func generate(t *testing.T, s *Shape, w, h int) *Bitmap {
	t.Helper()
	s.Normalize()
	ColorEdges(s, math.Pi/3)
	bmp, err := NewGenerator(DefaultConfig()).Generate(s, Projection{Scale: 1, Translate: Vec2{1, 1}}, w, h)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return bmp
}

func TestGenerateSquare(t *testing.T) {
	bmp := generate(t, square(0, 0, 10, 10), 12, 12)

	tests := []struct {
		name   string
		x, y   int
		inside bool
	}{
		{"center", 6, 6, true},
		{"near left edge", 1, 6, true},
		{"outside corner", 0, 0, false},
		{"outside right", 11, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := bmp.Median(tt.x, tt.y)
			if got := m > 128; got != tt.inside {
				t.Errorf("median at (%d,%d) = %d, inside = %v, want %v", tt.x, tt.y, m, got, tt.inside)
			}
		})
	}
}

func TestGenerateMedianMatchesTrueDistance(t *testing.T) {
	bmp := generate(t, square(0, 0, 10, 10), 12, 12)

	// Pixel (1,6) samples shape point (0.5, 5.5), 0.5 px inside the left edge.
	want := 0.5 + 0.5/(2*4.0)
	got := float64(bmp.Median(1, 6)) / 255
	if math.Abs(got-want) > 1.0/255 {
		t.Errorf("median = %.4f, want %.4f", got, want)
	}
}

func TestGenerateWindingIndependent(t *testing.T) {
	a := generate(t, square(0, 0, 10, 10), 12, 12)
	b := generate(t, squareReversed(0, 0, 10, 10), 12, 12)

	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if ma, mb := a.Median(x, y), b.Median(x, y); absDiff(ma, mb) > 1 {
				t.Fatalf("median at (%d,%d): %d vs %d", x, y, ma, mb)
			}
		}
	}
}

func TestGenerateHole(t *testing.T) {
	b := NewBuilder()
	// Outer square, then an inner square wound the other way.
	b.MoveTo(Vec2{0, 0})
	b.LineTo(Vec2{20, 0})
	b.LineTo(Vec2{20, 20})
	b.LineTo(Vec2{0, 20})
	b.Close()
	b.MoveTo(Vec2{6, 6})
	b.LineTo(Vec2{6, 14})
	b.LineTo(Vec2{14, 14})
	b.LineTo(Vec2{14, 6})
	b.Close()
	bmp := generate(t, b.Shape(), 22, 22)

	if m := bmp.Median(3, 11); m <= 128 {
		t.Errorf("ring median = %d, want inside", m)
	}
	if m := bmp.Median(11, 11); m >= 128 {
		t.Errorf("hole median = %d, want outside", m)
	}
}

func TestGenerateQuadraticCurve(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(Vec2{0, 10})
	b.QuadTo(Vec2{10, -10}, Vec2{20, 10})
	b.Close()
	bmp := generate(t, b.Shape(), 22, 12)

	if m := bmp.Median(11, 8); m <= 128 {
		t.Errorf("inside median = %d, want > 128", m)
	}
	if m := bmp.Median(1, 1); m >= 128 {
		t.Errorf("outside median = %d, want < 128", m)
	}
}

func TestGenerateCubicCurve(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(Vec2{0, 10})
	b.CubeTo(Vec2{0, 0}, Vec2{20, 0}, Vec2{20, 10})
	b.Close()
	bmp := generate(t, b.Shape(), 22, 12)

	if m := bmp.Median(11, 9); m <= 128 {
		t.Errorf("inside median = %d, want > 128", m)
	}
	if m := bmp.Median(1, 1); m >= 128 {
		t.Errorf("outside median = %d, want < 128", m)
	}
}

func TestGenerateEmptyShape(t *testing.T) {
	bmp, err := NewGenerator(DefaultConfig()).Generate(&Shape{}, Projection{Scale: 1}, 4, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, v := range bmp.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	_, err := NewGenerator(DefaultConfig()).Generate(square(0, 0, 1, 1), Projection{Scale: 1}, 0, 4)
	if !errors.Is(err, ErrEmptyBitmap) {
		t.Errorf("err = %v, want ErrEmptyBitmap", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"default", func(*Config) {}, ""},
		{"zero range", func(c *Config) { c.Range = 0 }, "Range"},
		{"infinite range", func(c *Config) { c.Range = math.Inf(1) }, "Range"},
		{"zero angle", func(c *Config) { c.AngleThreshold = 0 }, "AngleThreshold"},
		{"angle above pi", func(c *Config) { c.AngleThreshold = 4 }, "AngleThreshold"},
		{"negative correction", func(c *Config) { c.ErrorCorrection = -1 }, "ErrorCorrection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mod(&c)
			err := c.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestCorrectErrors(t *testing.T) {
	bmp, _ := NewBitmap(2, 1)
	// Left pixel sits near the edge; right pixel has two channels flipping
	// sides, which bilinear filtering would turn into a false edge.
	bmp.Set(0, 0, 140, 130, 135)
	bmp.Set(1, 0, 20, 250, 240)

	n := CorrectErrors(bmp, 0.1)
	if n != 1 {
		t.Fatalf("CorrectErrors fixed %d pixels, want 1", n)
	}
	r, g, b := bmp.At(1, 0)
	if r != g || g != b || r != 240 {
		t.Errorf("pixel = (%d,%d,%d), want flattened to median 240", r, g, b)
	}
	if r, g, b := bmp.At(0, 0); r != 140 || g != 130 || b != 135 {
		t.Errorf("near-edge pixel changed to (%d,%d,%d)", r, g, b)
	}
}

func TestCorrectErrorsDisabled(t *testing.T) {
	bmp, _ := NewBitmap(2, 1)
	bmp.Set(1, 0, 20, 250, 240)
	if n := CorrectErrors(bmp, 0); n != 0 {
		t.Errorf("CorrectErrors with zero threshold fixed %d pixels", n)
	}
}

func absDiff(a, b byte) byte {
	if a > b {
		return a - b
	}
	return b - a
}
