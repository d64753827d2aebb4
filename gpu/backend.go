//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/msdf_text.wgsl
var msdfTextShaderSource string

var (
	// ErrClosed is returned when using a Backend after Close.
	ErrClosed = errors.New("gpu: backend closed")

	// ErrNilDevice is returned by NewTexture when the backend has no
	// device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrEmptyImage is returned by NewTexture for a zero-sized atlas.
	ErrEmptyImage = errors.New("gpu: empty atlas image")
)

// Backend creates atlas textures on a HAL device. It implements
// fontatlas.Backend and fontatlas.Initializer.
//
// Backend does not own the device or queue; Close only destroys objects the
// backend created itself. Textures stay valid until released.
type Backend struct {
	device hal.Device
	queue  hal.Queue

	mu      sync.Mutex
	ready   bool
	closed  bool
	spirv   []uint32
	shader  hal.ShaderModule
	layout  hal.BindGroupLayout
	sampler hal.Sampler

	handles atomic.Uint64
	live    atomic.Int64
	log     atomic.Pointer[slog.Logger]
}

// NewBackend returns a Backend for device and queue. Call Init (directly or
// through fontatlas.Init) before drawing with ShaderModule or
// BindGroupLayout; NewTexture works without it.
func NewBackend(device hal.Device, queue hal.Queue) *Backend {
	return &Backend{device: device, queue: queue}
}

// SetLogger replaces the logger used by the backend. fontatlas.Init and
// fontatlas.SetLogger call it automatically.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.log.Store(l)
}

func (b *Backend) logger() *slog.Logger {
	if l := b.log.Load(); l != nil {
		return l
	}
	return fontatlas.Logger()
}

// Init compiles the MSDF text shader and creates the bind group layout and
// sampler. Calling Init again after success is a no-op.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if b.ready {
		return nil
	}
	if b.device == nil {
		return ErrNilDevice
	}
	if err := b.createPipelineObjects(); err != nil {
		b.destroyPipelineObjects()
		return err
	}
	b.ready = true
	b.logger().Debug("gpu: msdf text shader ready", "spirv_words", len(b.spirv))
	return nil
}

func (b *Backend) createPipelineObjects() error {
	spirv, err := compileShader(msdfTextShaderSource)
	if err != nil {
		return fmt.Errorf("gpu: compile msdf_text shader: %w", err)
	}
	b.spirv = spirv

	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "msdf_text_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("gpu: create msdf_text shader module: %w", err)
	}
	b.shader = shader

	layout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "msdf_text_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create msdf_text bind group layout: %w", err)
	}
	b.layout = layout

	// Linear filtering keeps the interpolated distance meaningful between
	// texels.
	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "msdf_text_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("gpu: create msdf_text sampler: %w", err)
	}
	b.sampler = sampler
	return nil
}

func (b *Backend) destroyPipelineObjects() {
	if b.sampler != nil {
		b.device.DestroySampler(b.sampler)
		b.sampler = nil
	}
	if b.layout != nil {
		b.device.DestroyBindGroupLayout(b.layout)
		b.layout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	b.spirv = nil
}

// NewTexture uploads img as an RGBA8Unorm texture.
func (b *Backend) NewTexture(img *image.RGBA, label string) (fontatlas.Texture, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if b.device == nil || b.queue == nil {
		return nil, ErrNilDevice
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create texture %q: %w", label, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create texture view %q: %w", label, err)
	}

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		tightPixels(img),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w * 4),
			RowsPerImage: uint32(h),
		},
		&size,
	)

	t := &Texture{
		backend: b,
		tex:     tex,
		view:    view,
		w:       w,
		h:       h,
		handle:  b.handles.Add(1),
	}
	b.live.Add(1)
	b.logger().Debug("gpu: atlas texture uploaded", "label", label, "width", w, "height", h, "handle", t.handle)
	return t, nil
}

// tightPixels returns img's pixels with a stride of exactly 4*width.
func tightPixels(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	row := w * 4
	if img.Stride == row && len(img.Pix) == row*h {
		return img.Pix
	}
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(out[y*row:], img.Pix[off:off+row])
	}
	return out
}

// ShaderModule returns the compiled MSDF text shader, or nil before Init.
// Entry points are vs_main and fs_main.
func (b *Backend) ShaderModule() hal.ShaderModule {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shader
}

// BindGroupLayout returns the layout matching the shader bindings, or nil
// before Init.
func (b *Backend) BindGroupLayout() hal.BindGroupLayout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout
}

// Sampler returns the linear clamp-to-edge atlas sampler, or nil before Init.
func (b *Backend) Sampler() hal.Sampler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sampler
}

// SPIRV returns the compiled shader words, or nil before Init.
func (b *Backend) SPIRV() []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spirv
}

// LiveTextures returns the number of textures not yet released.
func (b *Backend) LiveTextures() int { return int(b.live.Load()) }

// Close destroys the shader module, layout and sampler. Textures created by
// the backend must be released separately. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.device != nil {
		b.destroyPipelineObjects()
	}
	b.ready = false
	if n := b.live.Load(); n > 0 {
		b.logger().Warn("gpu: backend closed with live textures", "count", n)
	}
	return nil
}

// Texture is an atlas texture on the GPU.
type Texture struct {
	backend *Backend
	tex     hal.Texture
	view    hal.TextureView
	w, h    int
	handle  uint64
	once    sync.Once
}

// Handle returns a backend-unique, non-zero identifier.
func (t *Texture) Handle() uint64 { return t.handle }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h int) { return t.w, t.h }

// HalTexture returns the underlying texture, or nil after Release.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// View returns the texture view for bind groups, or nil after Release.
func (t *Texture) View() hal.TextureView { return t.view }

// Release destroys the view and texture. Only the first call has an effect.
func (t *Texture) Release() {
	t.once.Do(func() {
		d := t.backend.device
		if t.view != nil {
			d.DestroyTextureView(t.view)
			t.view = nil
		}
		if t.tex != nil {
			d.DestroyTexture(t.tex)
			t.tex = nil
		}
		t.backend.live.Add(-1)
	})
}

// compileShader compiles WGSL to little-endian SPIR-V words.
func compileShader(wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, errors.New("empty shader source")
	}
	code, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("spir-v length %d is not a multiple of 4", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = uint32(code[i*4]) |
			uint32(code[i*4+1])<<8 |
			uint32(code[i*4+2])<<16 |
			uint32(code[i*4+3])<<24
	}
	return words, nil
}

var (
	_ fontatlas.Backend     = (*Backend)(nil)
	_ fontatlas.Initializer = (*Backend)(nil)
	_ fontatlas.Texture     = (*Texture)(nil)
)
