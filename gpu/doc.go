//go:build !nogpu

// Package gpu uploads font atlases to textures through the gogpu wgpu HAL.
//
// A Backend wraps a hal.Device and hal.Queue. Init compiles the embedded MSDF
// text shader and creates the bind group layout and sampler a renderer needs
// to draw glyph quads from the atlas:
//
//	b := gpu.NewBackend(device, queue)
//	if err := fontatlas.Init(b); err != nil {
//		return err
//	}
//	f, err := fontatlas.Load("font.ttf", fontatlas.ASCII)
//
// Binding layout used by the shader:
//
//	@group(0) @binding(0) uniforms (Uniforms, 96 bytes)
//	@group(0) @binding(1) atlas texture (RGBA8Unorm)
//	@group(0) @binding(2) linear clamp sampler
package gpu
