package fontatlas

import (
	"fmt"
	"image"
	"sync/atomic"
)

// Texture is a GPU texture holding an atlas. The graphics driver owns the
// memory; Release frees it and must be safe to call more than once.
type Texture interface {
	// Handle returns the driver-specific name or pointer of the texture.
	Handle() uint64
	// Size returns the texture dimensions in pixels.
	Size() (w, h int)
	// Release frees the texture.
	Release()
}

// Backend uploads atlas images to a graphics API.
type Backend interface {
	NewTexture(img *image.RGBA, label string) (Texture, error)
}

// Initializer is implemented by backends that need one-time setup, such as
// compiling shaders. Init calls it before installing the backend.
type Initializer interface {
	Init() error
}

type backendBox struct {
	b Backend
}

var backendPtr atomic.Pointer[backendBox]

func defaultBackend() Backend {
	if box := backendPtr.Load(); box != nil {
		return box.b
	}
	return nil
}

// Init installs b as the default texture backend for Load. Init(nil)
// resets to CPU-only atlases. If b implements Initializer, its Init runs
// first and a failure leaves the previous backend in place.
//
// Init is safe for concurrent use.
func Init(b Backend) error {
	if b == nil {
		backendPtr.Store(nil)
		Logger().Debug("fontatlas: backend cleared")
		return nil
	}
	if in, ok := b.(Initializer); ok {
		if err := in.Init(); err != nil {
			return fmt.Errorf("fontatlas: init backend: %w", err)
		}
	}
	propagateLogger(b, Logger())
	backendPtr.Store(&backendBox{b: b})
	Logger().Info("fontatlas: backend installed", "backend", fmt.Sprintf("%T", b))
	return nil
}
