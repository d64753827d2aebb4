//go:build gl

// Package glbackend uploads font atlases as OpenGL 3.3 core textures.
//
// All calls must happen on the goroutine that owns the current GL context,
// including Texture.Release.
//
//	runtime.LockOSThread()
//	// create window and make its context current
//	if err := fontatlas.Init(glbackend.New()); err != nil {
//		return err
//	}
package glbackend

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/fontatlas"
)

// Backend creates GL textures. It implements fontatlas.Backend and
// fontatlas.Initializer.
type Backend struct {
	once    sync.Once
	initErr error
	log     atomic.Pointer[slog.Logger]
}

// New returns a Backend. Init loads the GL function pointers and must run
// with a current context.
func New() *Backend {
	return &Backend{}
}

// Init loads the OpenGL function pointers once.
func (b *Backend) Init() error {
	b.once.Do(func() {
		if err := gl.Init(); err != nil {
			b.initErr = fmt.Errorf("glbackend: init: %w", err)
			return
		}
		b.logger().Info("glbackend: initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	})
	return b.initErr
}

// SetLogger replaces the backend logger.
func (b *Backend) SetLogger(l *slog.Logger) { b.log.Store(l) }

func (b *Backend) logger() *slog.Logger {
	if l := b.log.Load(); l != nil {
		return l
	}
	return fontatlas.Logger()
}

// NewTexture uploads img as an RGBA8 texture with linear filtering and
// clamp-to-edge wrapping.
func (b *Backend) NewTexture(img *image.RGBA, label string) (fontatlas.Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("glbackend: empty atlas %q", label)
	}
	pix := img.Pix
	if img.Stride != w*4 {
		pix = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			copy(pix[y*w*4:], img.Pix[off:off+w*4])
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return nil, fmt.Errorf("glbackend: upload %q: gl error %#x", label, code)
	}
	b.logger().Debug("glbackend: atlas texture uploaded", "label", label, "id", id, "width", w, "height", h)
	return &Texture{id: id, w: w, h: h}, nil
}

// Texture is a GL texture name.
type Texture struct {
	id   uint32
	w, h int
	once sync.Once
}

// Handle returns the GL texture name.
func (t *Texture) Handle() uint64 { return uint64(t.id) }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h int) { return t.w, t.h }

// Release deletes the texture once.
func (t *Texture) Release() {
	t.once.Do(func() {
		gl.DeleteTextures(1, &t.id)
	})
}

var (
	_ fontatlas.Backend     = (*Backend)(nil)
	_ fontatlas.Initializer = (*Backend)(nil)
	_ fontatlas.Texture     = (*Texture)(nil)
)
