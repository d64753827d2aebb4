//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/fontatlas"
)

// UniformSize is the byte size of the shader uniform block: transform
// (mat4x4, 64 bytes), color (vec4, 16 bytes) and params (vec4, 16 bytes).
const UniformSize = 96

// VertexStride is the byte size of one Vertex.
const VertexStride = 16

// Uniforms mirrors the Uniforms struct in msdf_text.wgsl.
type Uniforms struct {
	// Transform maps vertex positions to clip space, column-major.
	Transform [16]float32

	// Color is premultiplied RGBA.
	Color [4]float32

	// PixelRange is the atlas distance range in pixels.
	PixelRange float32

	// AtlasSize is the atlas side length in pixels.
	AtlasSize float32

	// Outline widens (positive) or thins (negative) the glyph, in units of
	// the normalized distance.
	Outline float32
}

// NewUniforms returns uniforms drawing f in color with an orthographic
// projection for a width x height target, y down.
func NewUniforms(f *fontatlas.Font, width, height float32, color [4]float32) Uniforms {
	w, _ := f.AtlasSize()
	return Uniforms{
		Transform:  Ortho(width, height),
		Color:      color,
		PixelRange: float32(f.FontMetrics.PixelRange),
		AtlasSize:  float32(w),
	}
}

// Ortho returns a column-major matrix mapping (0,0)-(width,height), y down,
// to clip space.
func Ortho(width, height float32) [16]float32 {
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// Bytes encodes u in the little-endian layout the shader expects.
func (u *Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range u.Transform {
		put(v)
	}
	for _, v := range u.Color {
		put(v)
	}
	put(u.PixelRange)
	put(u.AtlasSize)
	put(u.Outline)
	return buf
}

// Vertex mirrors VertexInput in msdf_text.wgsl.
type Vertex struct {
	X, Y float32
	U, V float32
}

// AppendGlyph appends the quad for g drawn with its pen at (x, y) on the
// baseline at size pixels per em, y down. The vertices are top-left,
// top-right, bottom-right, bottom-left. Blank glyphs append nothing and
// report false.
func AppendGlyph(dst []Vertex, g fontatlas.Glyph, x, y, size float32) ([]Vertex, bool) {
	if g.Blank() {
		return dst, false
	}
	l := x + g.Plane.Left*size
	r := x + g.Plane.Right*size
	t := y - g.Plane.Top*size
	b := y - g.Plane.Bottom*size
	uv := g.UV
	return append(dst,
		Vertex{l, t, uv[0], uv[1]},
		Vertex{r, t, uv[2], uv[1]},
		Vertex{r, b, uv[2], uv[3]},
		Vertex{l, b, uv[0], uv[3]},
	), true
}

// QuadIndices returns the triangle-list indices for n quads built by
// AppendGlyph.
func QuadIndices(n int) []uint16 {
	idx := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		base := uint16(i * 4)
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return idx
}

// VertexBytes encodes vertices for a vertex buffer.
func VertexBytes(vs []Vertex) []byte {
	buf := make([]byte, len(vs)*VertexStride)
	for i, v := range vs {
		o := i * VertexStride
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(v.U))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(v.V))
	}
	return buf
}
