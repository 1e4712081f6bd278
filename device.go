package geom

import (
	"errors"
	"sync"
)

// ErrFallbackToHost indicates the device cannot run this operation.
// The caller should transparently fall back to host execution.
var ErrFallbackToHost = errors.New("geom: falling back to host execution")

// ErrNoDevice is returned by device-side operations when no device is
// bound to the polygon and no default device is registered.
var ErrNoDevice = errors.New("geom: no device available")

// Device is an optional compute device that holds mirrors of vertex
// buffers and runs elementwise kernels on them.
//
// When registered via SetDefaultDevice, polygons use the device for
// device-side computation and the coherence protocol moves data between
// the host buffer and the device mirror lazily. If a device operation
// returns ErrFallbackToHost, callers run the host path instead.
//
// Implementations are provided by backend packages. Users opt in through
// the backend registry:
//
//	import _ "github.com/gogpu/geom/backend/soft" // registers the soft device
//
//	dev, err := backend.InitDefault()
type Device interface {
	// Name returns the device name (e.g., "soft", "wgpu").
	Name() string

	// Init initializes device resources. Called once during registration.
	Init() error

	// Close releases device resources.
	Close()

	// CreateBuffer allocates a device mirror holding n vertices.
	// The label shows up in device debugging tools and log output.
	CreateBuffer(label string, n int) (DeviceBuffer, error)
}

// DeviceBuffer is a device-resident mirror of a vertex buffer.
//
// Polygons reach their mirrors only through the coherence protocol; the
// mirror never escapes to callers. Upload and Download move whole buffers:
// the elementwise kernels touch every vertex anyway, so partial transfers
// would never pay for their bookkeeping.
type DeviceBuffer interface {
	// Len returns the number of vertices the mirror holds.
	Len() int

	// Upload copies vertices from host memory into the mirror.
	// len(src) must equal Len.
	Upload(src []Point2D) error

	// Download copies vertices from the mirror into host memory.
	// len(dst) must equal Len.
	Download(dst []Point2D) error

	// Translate displaces every vertex in the mirror by (dx, dy) on the
	// device, with the same wrapping arithmetic as the host kernels.
	// Returns ErrFallbackToHost if the device cannot run the kernel.
	Translate(dx, dy Coordinate) error

	// Release frees the mirror. Safe to call more than once.
	Release()
}

// DeviceProviderAware is an optional interface for devices that can share
// GPU resources with an external provider (e.g., gogpu window).
// When SetDeviceProvider is called, the device reuses the provided GPU
// device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	deviceMu      sync.RWMutex
	defaultDevice Device
)

// SetDefaultDevice registers a compute device for device-side polygon
// operations.
//
// Only one default device can be registered. Subsequent calls replace the
// previous one, which is closed. The device's Init() method is called
// during registration; if Init() fails, the device is not registered and
// the error is returned. Passing nil clears the registration, closes the
// previous device, and returns polygons to host-only operation.
//
// Typical usage goes through the backend registry:
//
//	dev, err := backend.InitDefault()
func SetDefaultDevice(d Device) error {
	if d != nil {
		if err := d.Init(); err != nil {
			return err
		}
		propagateLogger(d, Logger())
	}
	deviceMu.Lock()
	old := defaultDevice
	defaultDevice = d
	deviceMu.Unlock()
	if old != nil && old != d {
		old.Close()
	}
	return nil
}

// DefaultDevice returns the currently registered device, or nil if none.
func DefaultDevice() Device {
	deviceMu.RLock()
	d := defaultDevice
	deviceMu.RUnlock()
	return d
}

// SetDefaultDeviceProvider passes a device provider to the registered
// default device, enabling GPU device sharing. If no device is registered
// or it doesn't support device sharing, this is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any methods
// that return wgpu/hal types.
func SetDefaultDeviceProvider(provider any) error {
	d := DefaultDevice()
	if d == nil {
		return nil
	}
	if dpa, ok := d.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
