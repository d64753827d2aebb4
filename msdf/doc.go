// Package msdf generates multi-channel signed distance fields for glyph
// shapes.
//
// A shape is a set of closed contours made of linear, quadratic and cubic
// segments. Each segment carries a channel mask (its "color"). Where two
// segments meet at a sharp corner they are given different masks, so the
// red, green and blue channels each see a slightly different shape. The
// median of the three channels reproduces the true distance away from
// corners and keeps corners sharp when the field is magnified.
//
// # Usage
//
//	b := msdf.NewBuilder()
//	b.MoveTo(msdf.Vec2{X: 0, Y: 0})
//	b.LineTo(msdf.Vec2{X: 10, Y: 0})
//	b.LineTo(msdf.Vec2{X: 10, Y: 10})
//	b.Close()
//	shape := b.Shape()
//
//	shape.Normalize()
//	msdf.ColorEdges(shape, math.Pi/3)
//
//	gen := msdf.NewGenerator(msdf.DefaultConfig())
//	bmp, err := gen.Generate(shape, msdf.Projection{Scale: 1, Translate: msdf.Vec2{X: 4, Y: 4}}, 18, 18)
//
// The encoded bitmap stores 128 on the outline, larger values inside and
// smaller values outside. A fragment shader recovers coverage with
//
//	fn median3(v: vec3<f32>) -> f32 {
//	    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
//	}
package msdf
