package backend

import (
	"sync"

	"github.com/gogpu/geom"
)

// DeviceFactory creates a new device instance. A factory may return nil
// to signal that its device cannot work in this process (no GPU adapter,
// unsupported platform); selection then moves on to the next backend.
type DeviceFactory func() geom.Device

// registry holds registered device factories.
var (
	registryMu sync.RWMutex
	devices    = make(map[string]DeviceFactory)
	// Priority order for device selection (first available wins).
	// WGPU > Soft (real hardware when present, host memory as fallback).
	devicePriority = []string{BackendWGPU, BackendSoft}
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// If a device with the same name is already registered, it will be replaced.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	devices[name] = factory
}

// Unregister removes a device from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(devices, name)
}

// Available returns a list of registered device names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a device with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := devices[name]
	return ok
}

// Get returns a device instance by name.
// Returns nil if the device is not registered or its factory declines.
func Get(name string) geom.Device {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := devices[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available device based on priority.
// Priority order: wgpu > soft.
// Returns nil if no devices are registered.
func Default() geom.Device {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range devicePriority {
		if factory, ok := devices[name]; ok {
			d := factory()
			if d != nil {
				return d
			}
		}
	}

	// Fallback: return first available
	for _, factory := range devices {
		if d := factory(); d != nil {
			return d
		}
	}

	return nil
}

// MustDefault returns the default device or panics.
func MustDefault() geom.Device {
	d := Default()
	if d == nil {
		panic("backend: no device available")
	}
	return d
}

// InitDefault selects, initializes, and installs a device as the process
// default in one call.
//
// Devices are tried in priority order; one whose Init fails (a GPU
// backend on a machine without an adapter, say) is skipped and the next
// is tried, so the soft fallback still comes up. The winner is installed
// via geom.SetDefaultDevice, which runs its Init. Returns
// ErrBackendNotAvailable when no registered device initializes.
func InitDefault() (geom.Device, error) {
	registryMu.RLock()
	ordered := make([]DeviceFactory, 0, len(devices))
	for _, name := range devicePriority {
		if factory, ok := devices[name]; ok {
			ordered = append(ordered, factory)
		}
	}
	for name, factory := range devices {
		if !priorityListed(name) {
			ordered = append(ordered, factory)
		}
	}
	registryMu.RUnlock()

	var firstErr error
	for _, factory := range ordered {
		d := factory()
		if d == nil {
			continue
		}
		if err := geom.SetDefaultDevice(d); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return d, nil
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrBackendNotAvailable
}

// priorityListed reports whether the name appears in devicePriority.
func priorityListed(name string) bool {
	for _, n := range devicePriority {
		if n == name {
			return true
		}
	}
	return false
}
