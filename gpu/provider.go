//go:build !nogpu

package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when a device provider does not expose HAL objects.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

// halProvider is implemented by providers that share their HAL objects,
// such as a gogpu application window.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewBackendFromProvider returns a Backend sharing the provider's device
// and queue. The provider keeps ownership of both.
func NewBackendFromProvider(p gpucontext.DeviceProvider) (*Backend, error) {
	hp, ok := p.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoHAL
	}
	return NewBackend(device, queue), nil
}
