package xrframe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// xrframe RECEIVES the device from the host, it does NOT create one. The
// compositor session is created by the host against the same device, and
// GraphicsBinding describes that device to it.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, so any gogpu
// application or gg renderer can be passed directly.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used with software compositors where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports a software adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeSoftware}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// QueueClass identifies the kind of work submitted to a device queue.
type QueueClass uint8

const (
	// QueueClassGraphics is the queue that renders into swapchain images.
	QueueClassGraphics QueueClass = iota

	// QueueClassCompute is an async compute queue.
	QueueClassCompute

	// QueueClassCopy is a transfer-only queue.
	QueueClassCopy

	numQueueClasses
)

// String returns the queue class name.
func (c QueueClass) String() string {
	switch c {
	case QueueClassGraphics:
		return "Graphics"
	case QueueClassCompute:
		return "Compute"
	case QueueClassCopy:
		return "Copy"
	default:
		return fmt.Sprintf("QueueClass(%d)", c)
	}
}

// QueueBinding locates the device queue used for a queue class.
type QueueBinding struct {
	Class  QueueClass
	Family uint32
	Index  uint32
}

// GraphicsBinding describes the host device to a compositor session for
// one queue class.
type GraphicsBinding struct {
	Device      gpucontext.Device
	Queue       gpucontext.Queue
	Adapter     gpucontext.Adapter
	AdapterInfo gpucontext.AdapterInfo

	// Format is the preferred swapchain image format of the device.
	Format gputypes.TextureFormat

	QueueFamily uint32
	QueueIndex  uint32
}

var (
	// ErrNilDevice is returned by NewDevice for a nil handle.
	ErrNilDevice = errors.New("xrframe: nil device handle")

	// ErrQueueUnbound is returned by GraphicsBinding for a queue class
	// without a QueueBinding.
	ErrQueueUnbound = errors.New("xrframe: queue class not bound")

	// ErrDeviceShutdown is returned by GraphicsBinding after Shutdown.
	ErrDeviceShutdown = errors.New("xrframe: device shut down")
)

// Device pairs a host DeviceHandle with the queues a compositor session
// may submit to. Graphics bindings are built on first use and cached
// until Shutdown.
type Device struct {
	handle   DeviceHandle
	queues   [numQueueClasses]QueueBinding
	bound    [numQueueClasses]bool
	bindings [numQueueClasses]*GraphicsBinding
	closed   bool
}

// NewDevice creates a Device for handle. With no queue bindings, the
// graphics class is bound to family 0, index 0.
func NewDevice(handle DeviceHandle, queues ...QueueBinding) (*Device, error) {
	if handle == nil {
		return nil, ErrNilDevice
	}
	d := &Device{handle: handle}
	if len(queues) == 0 {
		queues = []QueueBinding{{Class: QueueClassGraphics}}
	}
	for _, q := range queues {
		if q.Class >= numQueueClasses {
			return nil, fmt.Errorf("xrframe: invalid queue class %v", q.Class)
		}
		if d.bound[q.Class] {
			return nil, fmt.Errorf("xrframe: queue class %v bound twice", q.Class)
		}
		d.queues[q.Class] = q
		d.bound[q.Class] = true
	}

	info := handle.AdapterInfo()
	Logger().Info("xrframe: device bound",
		slog.String("adapter", info.Name),
		slog.String("type", info.Type.String()),
		slog.String("format", handle.SurfaceFormat().String()))
	return d, nil
}

// Handle returns the host device handle.
func (d *Device) Handle() DeviceHandle { return d.handle }

// GraphicsBinding returns the binding for queue class c.
func (d *Device) GraphicsBinding(c QueueClass) (GraphicsBinding, error) {
	if d.closed {
		return GraphicsBinding{}, ErrDeviceShutdown
	}
	if c >= numQueueClasses || !d.bound[c] {
		return GraphicsBinding{}, fmt.Errorf("%w: %v", ErrQueueUnbound, c)
	}
	if b := d.bindings[c]; b != nil {
		return *b, nil
	}
	q := d.queues[c]
	b := &GraphicsBinding{
		Device:      d.handle.Device(),
		Queue:       d.handle.Queue(),
		Adapter:     d.handle.Adapter(),
		AdapterInfo: d.handle.AdapterInfo(),
		Format:      d.handle.SurfaceFormat(),
		QueueFamily: q.Family,
		QueueIndex:  q.Index,
	}
	d.bindings[c] = b
	return *b, nil
}

// Shutdown drops cached bindings. Later GraphicsBinding calls fail with
// ErrDeviceShutdown. The host device itself is not touched.
func (d *Device) Shutdown() {
	if d.closed {
		return
	}
	d.bindings = [numQueueClasses]*GraphicsBinding{}
	d.closed = true
	Logger().Info("xrframe: device shut down")
}
