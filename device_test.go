package xrframe

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device  gpucontext.Device
	queue   gpucontext.Queue
	adapter gpucontext.Adapter
	format  gputypes.TextureFormat
	info    gpucontext.AdapterInfo

	deviceCalls int
}

func (m *mockProvider) Device() gpucontext.Device {
	m.deviceCalls++
	return m.device
}
func (m *mockProvider) Queue() gpucontext.Queue               { return m.queue }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return m.adapter }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return m.info }

var _ DeviceHandle = (*mockProvider)(nil)

func TestNullDeviceHandle(t *testing.T) {
	var h NullDeviceHandle
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("NullDeviceHandle should return nil device, queue and adapter")
	}
	if h.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want Undefined", h.SurfaceFormat())
	}
	if h.AdapterInfo().Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo().Type = %v, want Software", h.AdapterInfo().Type)
	}
}

func TestQueueClassString(t *testing.T) {
	tests := []struct {
		c    QueueClass
		want string
	}{
		{QueueClassGraphics, "Graphics"},
		{QueueClassCompute, "Compute"},
		{QueueClassCopy, "Copy"},
		{QueueClass(9), "QueueClass(9)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("QueueClass(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestNewDevice(t *testing.T) {
	if _, err := NewDevice(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDevice(nil) = %v, want ErrNilDevice", err)
	}
	if _, err := NewDevice(NullDeviceHandle{}, QueueBinding{Class: numQueueClasses}); err == nil {
		t.Error("NewDevice() with invalid class should fail")
	}
	_, err := NewDevice(NullDeviceHandle{},
		QueueBinding{Class: QueueClassCompute},
		QueueBinding{Class: QueueClassCompute, Index: 1})
	if err == nil {
		t.Error("NewDevice() with duplicate class should fail")
	}
}

func TestDeviceDefaultGraphicsQueue(t *testing.T) {
	d, err := NewDevice(NullDeviceHandle{})
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	b, err := d.GraphicsBinding(QueueClassGraphics)
	if err != nil {
		t.Fatalf("GraphicsBinding(Graphics) error = %v", err)
	}
	if b.QueueFamily != 0 || b.QueueIndex != 0 {
		t.Errorf("binding queue = %d/%d, want 0/0", b.QueueFamily, b.QueueIndex)
	}
	if _, err := d.GraphicsBinding(QueueClassCompute); !errors.Is(err, ErrQueueUnbound) {
		t.Errorf("GraphicsBinding(Compute) = %v, want ErrQueueUnbound", err)
	}
}

func TestDeviceGraphicsBinding(t *testing.T) {
	p := &mockProvider{
		device: "device",
		queue:  "queue",
		format: gputypes.TextureFormatBGRA8UnormSrgb,
		info:   gpucontext.AdapterInfo{Name: "Test GPU", Type: gpucontext.AdapterTypeDiscrete},
	}
	d, err := NewDevice(p,
		QueueBinding{Class: QueueClassGraphics, Family: 0, Index: 0},
		QueueBinding{Class: QueueClassCopy, Family: 2, Index: 1})
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	if d.Handle() != p {
		t.Error("Handle() did not return the provider")
	}

	b, err := d.GraphicsBinding(QueueClassCopy)
	if err != nil {
		t.Fatalf("GraphicsBinding(Copy) error = %v", err)
	}
	if b.Device != "device" || b.Queue != "queue" {
		t.Errorf("binding device/queue = %v/%v", b.Device, b.Queue)
	}
	if b.QueueFamily != 2 || b.QueueIndex != 1 {
		t.Errorf("binding queue = %d/%d, want 2/1", b.QueueFamily, b.QueueIndex)
	}
	if b.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("binding format = %v, want BGRA8UnormSrgb", b.Format)
	}
	if b.AdapterInfo.Name != "Test GPU" {
		t.Errorf("binding adapter = %q, want Test GPU", b.AdapterInfo.Name)
	}

	// Bindings are cached until Shutdown.
	_, _ = d.GraphicsBinding(QueueClassCopy)
	if p.deviceCalls != 1 {
		t.Errorf("Device() calls = %d, want 1", p.deviceCalls)
	}

	d.Shutdown()
	d.Shutdown()
	if _, err := d.GraphicsBinding(QueueClassGraphics); !errors.Is(err, ErrDeviceShutdown) {
		t.Errorf("GraphicsBinding() after Shutdown = %v, want ErrDeviceShutdown", err)
	}
}
