//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// halMockProvider also shares HAL objects.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *halMockProvider) HalDevice() any { return m.device }
func (m *halMockProvider) HalQueue() any  { return m.queue }

func TestNewBackendFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	b, err := NewBackendFromProvider(&halMockProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewBackendFromProvider: %v", err)
	}
	if b.device != device || b.queue != queue {
		t.Error("backend does not use the provider's device and queue")
	}

	tests := []struct {
		name string
		p    gpucontext.DeviceProvider
	}{
		{"no hal", &mockProvider{}},
		{"wrong device type", &halMockProvider{device: "device", queue: queue}},
		{"nil queue", &halMockProvider{device: device}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBackendFromProvider(tt.p); !errors.Is(err, ErrNoHAL) {
				t.Errorf("err = %v, want ErrNoHAL", err)
			}
		})
	}
}
