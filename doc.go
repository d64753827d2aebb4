// Package fontatlas loads TrueType and OpenType fonts into multi-channel
// signed distance field (MSDF) glyph atlases for GPU text rendering.
//
// # Overview
//
// A Font is built from a font file and the set of characters to rasterize.
// Each character code below MaxGlyph maps to a glyph slot; each slot has
// metrics (advance, plane bounds, atlas bounds) and a UV rectangle inside
// the atlas texture. The atlas stores signed distances in its RGB channels;
// a fragment shader samples it, takes the median of the three channels and
// thresholds at 0.5 to draw sharp glyphs at any scale.
//
// # Quick Start
//
//	// Optional: upload atlases to the GPU.
//	fontatlas.Init(gpu.NewBackend(device, queue))
//
//	f, err := fontatlas.Load("Roboto-Regular.ttf", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	g, ok := f.Glyph('A')
//	// g.UV locates the glyph in f.Texture; g.Metrics.Plane places the quad.
//
//	f.Debug(os.Stdout)
//
// # Units
//
// Metrics are in em units with y pointing up from the baseline, as in the
// msdf-atlas-gen JSON format. Multiply by the desired font size in pixels
// to get screen coordinates. UVs are normalized with a top-left origin.
//
// # Backends
//
// Without a Backend the atlas stays on the CPU (Font.Atlas). The gpu
// package uploads through gogpu/wgpu; the glbackend package (build tag gl)
// uploads through OpenGL.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive load
// summaries and warnings about skipped characters.
package fontatlas
