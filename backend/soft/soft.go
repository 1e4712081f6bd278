// Package soft provides the software reference device for the geom kernel.
//
// Mirrors live in ordinary host memory and kernels run on the CPU, so the
// full host/device coherence protocol can execute, and be tested, on any
// machine. It is also the fallback device when no GPU is available. Every
// kernel is the same code the host path runs, so results are always
// bit-identical to host execution.
//
// Importing the package registers the device:
//
//	import _ "github.com/gogpu/geom/backend/soft"
package soft

import (
	"fmt"
	"sync"

	"github.com/gogpu/geom"
	"github.com/gogpu/geom/backend"
)

func init() {
	backend.Register(backend.BackendSoft, func() geom.Device {
		return New()
	})
}

// Device is the software reference device. It is safe for concurrent use.
type Device struct {
	mu          sync.Mutex
	initialized bool
	buffers     int // live mirror count, reported on Close for leak spotting
}

var _ geom.Device = (*Device)(nil)

// New creates an uninitialized software device.
func New() *Device {
	return &Device{}
}

// Name returns "soft".
func (d *Device) Name() string {
	return backend.BackendSoft
}

// Init marks the device ready. It cannot fail: there is no hardware to
// probe.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = true
	return nil
}

// Close stops the device from allocating new mirrors. Existing mirrors
// stay usable: they are plain host memory with no resources behind them.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = false
	if d.buffers > 0 {
		geom.Logger().Warn("soft: closing with live buffers", "count", d.buffers)
	}
}

// CreateBuffer allocates a host-memory mirror for n vertices.
func (d *Device) CreateBuffer(label string, n int) (geom.DeviceBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil, backend.ErrNotInitialized
	}
	if n <= 0 {
		return nil, fmt.Errorf("soft: invalid buffer size %d", n)
	}
	d.buffers++
	geom.Logger().Debug("soft: buffer created", "label", label, "vertices", n)
	return &buffer{
		dev:   d,
		label: label,
		data:  make([]geom.Point2D, n),
	}, nil
}

// buffer is a host-memory vertex mirror.
type buffer struct {
	dev      *Device
	label    string
	data     []geom.Point2D
	released bool
}

var _ geom.DeviceBuffer = (*buffer)(nil)

// Len returns the number of vertices the mirror holds.
func (b *buffer) Len() int {
	return len(b.data)
}

// Upload copies vertices from host memory into the mirror.
func (b *buffer) Upload(src []geom.Point2D) error {
	if b.released {
		return fmt.Errorf("soft: upload to released buffer %q", b.label)
	}
	if len(src) != len(b.data) {
		return fmt.Errorf("soft: upload size %d does not match buffer size %d", len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

// Download copies vertices from the mirror into host memory.
func (b *buffer) Download(dst []geom.Point2D) error {
	if b.released {
		return fmt.Errorf("soft: download from released buffer %q", b.label)
	}
	if len(dst) != len(b.data) {
		return fmt.Errorf("soft: download size %d does not match buffer size %d", len(dst), len(b.data))
	}
	copy(dst, b.data)
	return nil
}

// Translate runs the host translate kernel over the mirror.
func (b *buffer) Translate(dx, dy geom.Coordinate) error {
	if b.released {
		return fmt.Errorf("soft: translate on released buffer %q", b.label)
	}
	geom.TranslatePoints(b.data, dx, dy)
	return nil
}

// Release frees the mirror. Safe to call more than once.
func (b *buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.data = nil
	b.dev.mu.Lock()
	b.dev.buffers--
	b.dev.mu.Unlock()
}
