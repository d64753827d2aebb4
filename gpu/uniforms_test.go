//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/fontatlas"
	"golang.org/x/image/font/gofont/goregular"
)

func readFloat(buf []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestUniformBytes(t *testing.T) {
	u := Uniforms{
		Transform:  Ortho(200, 100),
		Color:      [4]float32{1, 0.5, 0.25, 1},
		PixelRange: 4,
		AtlasSize:  256,
		Outline:    0.1,
	}
	buf := u.Bytes()
	if len(buf) != UniformSize {
		t.Fatalf("len = %d, want %d", len(buf), UniformSize)
	}
	tests := []struct {
		index int
		want  float32
	}{
		{0, 0.01},  // 2/width
		{5, -0.02}, // -2/height
		{12, -1},   // x translation
		{13, 1},    // y translation
		{17, 0.5},  // color.g
		{20, 4},    // pixel range
		{21, 256},  // atlas size
		{22, 0.1},  // outline
		{23, 0},    // reserved
	}
	for _, tt := range tests {
		if got := readFloat(buf, tt.index); got != tt.want {
			t.Errorf("float %d = %g, want %g", tt.index, got, tt.want)
		}
	}
}

func TestOrthoCorners(t *testing.T) {
	m := Ortho(640, 480)
	apply := func(x, y float32) (float32, float32) {
		return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
	}
	tests := []struct {
		x, y, cx, cy float32
	}{
		{0, 0, -1, 1},
		{640, 480, 1, -1},
		{320, 240, 0, 0},
	}
	for _, tt := range tests {
		cx, cy := apply(tt.x, tt.y)
		if !near(cx, tt.cx) || !near(cy, tt.cy) {
			t.Errorf("(%g,%g) -> (%g,%g), want (%g,%g)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestAppendGlyph(t *testing.T) {
	f, err := fontatlas.LoadBytes(goregular.TTF, "H ", fontatlas.WithKerning(false), fontatlas.WithBackend(nil))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	defer f.Close()

	h, _ := f.Glyph('H')
	vs, ok := AppendGlyph(nil, h, 10, 50, 20)
	if !ok || len(vs) != 4 {
		t.Fatalf("AppendGlyph('H') = %d vertices, %v", len(vs), ok)
	}
	tl, br := vs[0], vs[2]
	if !near(tl.X, 10+h.Plane.Left*20) || !near(tl.Y, 50-h.Plane.Top*20) {
		t.Errorf("top-left = (%g,%g)", tl.X, tl.Y)
	}
	if br.X <= tl.X || br.Y <= tl.Y {
		t.Errorf("bottom-right (%g,%g) not below-right of top-left", br.X, br.Y)
	}
	if tl.U != h.UV[0] || tl.V != h.UV[1] || br.U != h.UV[2] || br.V != h.UV[3] {
		t.Error("vertex UVs do not match the glyph")
	}

	space, _ := f.Glyph(' ')
	if vs2, ok := AppendGlyph(vs, space, 0, 0, 20); ok || len(vs2) != 4 {
		t.Error("blank glyph produced a quad")
	}

	if n := len(VertexBytes(vs)); n != 4*VertexStride {
		t.Errorf("VertexBytes len = %d", n)
	}

	u := NewUniforms(f, 640, 480, [4]float32{1, 1, 1, 1})
	w, _ := f.AtlasSize()
	if u.PixelRange != 4 || u.AtlasSize != float32(w) || u.Transform != Ortho(640, 480) {
		t.Errorf("NewUniforms = %+v", u)
	}
}

func TestQuadIndices(t *testing.T) {
	got := QuadIndices(2)
	want := []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("QuadIndices(2) = %v, want %v", got, want)
		}
	}
}
