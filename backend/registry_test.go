package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/geom"
)

// stubDevice is a minimal geom.Device for exercising the registry without
// pulling in a real backend package.
type stubDevice struct {
	name    string
	initErr error
	closed  bool
}

func (s *stubDevice) Name() string { return s.name }
func (s *stubDevice) Init() error  { return s.initErr }
func (s *stubDevice) Close()       { s.closed = true }

func (s *stubDevice) CreateBuffer(label string, n int) (geom.DeviceBuffer, error) {
	return nil, ErrNotInitialized
}

// resetRegistry swaps in an empty registry for one test. Backends that
// registered themselves via init() are restored afterwards.
func resetRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := devices
	devices = make(map[string]DeviceFactory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		devices = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndGet(t *testing.T) {
	resetRegistry(t)

	want := &stubDevice{name: "stub"}
	Register("stub", func() geom.Device { return want })

	got := Get("stub")
	if got != geom.Device(want) {
		t.Errorf("Get(\"stub\") = %v, want the registered stub", got)
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	resetRegistry(t)

	if got := Get("no-such-backend"); got != nil {
		t.Errorf("Get(\"no-such-backend\") = %v, want nil", got)
	}
}

func TestGetDecliningFactoryReturnsNil(t *testing.T) {
	resetRegistry(t)

	Register("declining", func() geom.Device { return nil })
	if got := Get("declining"); got != nil {
		t.Errorf("Get(\"declining\") = %v, want nil", got)
	}
}

func TestRegisterReplaces(t *testing.T) {
	resetRegistry(t)

	first := &stubDevice{name: "first"}
	second := &stubDevice{name: "second"}
	Register("dup", func() geom.Device { return first })
	Register("dup", func() geom.Device { return second })

	if got := Get("dup"); got != geom.Device(second) {
		t.Errorf("Get(\"dup\") = %v, want the second registration", got)
	}
}

func TestUnregister(t *testing.T) {
	resetRegistry(t)

	Register("transient", func() geom.Device { return &stubDevice{name: "transient"} })
	if !IsRegistered("transient") {
		t.Fatal("IsRegistered(\"transient\") = false after Register")
	}

	Unregister("transient")
	if IsRegistered("transient") {
		t.Error("IsRegistered(\"transient\") = true after Unregister")
	}
	if Get("transient") != nil {
		t.Error("Get(\"transient\") != nil after Unregister")
	}
}

func TestAvailable(t *testing.T) {
	resetRegistry(t)

	if got := Available(); len(got) != 0 {
		t.Fatalf("Available() on empty registry = %v, want none", got)
	}

	Register(BackendSoft, func() geom.Device { return &stubDevice{name: BackendSoft} })
	Register(BackendWGPU, func() geom.Device { return &stubDevice{name: BackendWGPU} })

	got := Available()
	if len(got) != 2 || !slices.Contains(got, BackendSoft) || !slices.Contains(got, BackendWGPU) {
		t.Errorf("Available() = %v, want soft and wgpu", got)
	}
}

func TestDefaultPriority(t *testing.T) {
	resetRegistry(t)

	soft := &stubDevice{name: BackendSoft}
	wgpu := &stubDevice{name: BackendWGPU}
	Register(BackendSoft, func() geom.Device { return soft })
	Register(BackendWGPU, func() geom.Device { return wgpu })

	// Hardware outranks the software fallback.
	if got := Default(); got != geom.Device(wgpu) {
		t.Errorf("Default() = %v, want the wgpu stub", got)
	}
}

func TestDefaultSkipsDecliningFactory(t *testing.T) {
	resetRegistry(t)

	soft := &stubDevice{name: BackendSoft}
	Register(BackendSoft, func() geom.Device { return soft })
	// A wgpu build without an adapter registers a factory that declines.
	Register(BackendWGPU, func() geom.Device { return nil })

	if got := Default(); got != geom.Device(soft) {
		t.Errorf("Default() = %v, want the soft stub", got)
	}
}

func TestDefaultFallsBackToUnlisted(t *testing.T) {
	resetRegistry(t)

	custom := &stubDevice{name: "custom"}
	Register("custom", func() geom.Device { return custom })

	if got := Default(); got != geom.Device(custom) {
		t.Errorf("Default() = %v, want the custom stub", got)
	}
}

func TestDefaultEmptyRegistry(t *testing.T) {
	resetRegistry(t)

	if got := Default(); got != nil {
		t.Errorf("Default() on empty registry = %v, want nil", got)
	}
}

func TestMustDefault(t *testing.T) {
	resetRegistry(t)

	Register(BackendSoft, func() geom.Device { return &stubDevice{name: BackendSoft} })
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if got := MustDefault(); got == nil {
		t.Error("MustDefault() = nil")
	}
}

func TestMustDefaultPanicsWhenEmpty(t *testing.T) {
	resetRegistry(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDefault() did not panic on empty registry")
		}
	}()
	MustDefault()
}

func TestInitDefault(t *testing.T) {
	resetRegistry(t)
	t.Cleanup(func() { _ = geom.SetDefaultDevice(nil) })

	soft := &stubDevice{name: BackendSoft}
	Register(BackendSoft, func() geom.Device { return soft })

	d, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() = %v", err)
	}
	if d != geom.Device(soft) {
		t.Errorf("InitDefault() = %v, want the soft stub", d)
	}
	if geom.DefaultDevice() != geom.Device(soft) {
		t.Error("InitDefault did not install the device as process default")
	}
}

// TestInitDefaultSkipsFailingInit covers the degraded-GPU path: the
// preferred device exists but cannot initialize, so selection moves on.
func TestInitDefaultSkipsFailingInit(t *testing.T) {
	resetRegistry(t)
	t.Cleanup(func() { _ = geom.SetDefaultDevice(nil) })

	soft := &stubDevice{name: BackendSoft}
	Register(BackendSoft, func() geom.Device { return soft })
	Register(BackendWGPU, func() geom.Device {
		return &stubDevice{name: BackendWGPU, initErr: errors.New("no adapter")}
	})

	d, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() = %v", err)
	}
	if d != geom.Device(soft) {
		t.Errorf("InitDefault() = %v, want the soft fallback", d)
	}
}

func TestInitDefaultNothingAvailable(t *testing.T) {
	resetRegistry(t)
	t.Cleanup(func() { _ = geom.SetDefaultDevice(nil) })

	_, err := InitDefault()
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("InitDefault() on empty registry = %v, want ErrBackendNotAvailable", err)
	}

	// Registered but declining factories report the same way.
	Register(BackendWGPU, func() geom.Device { return nil })
	_, err = InitDefault()
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("InitDefault() with declining factory = %v, want ErrBackendNotAvailable", err)
	}
}

// TestInitDefaultReportsFirstInitError distinguishes "nothing registered"
// from "everything failed": the first failure is worth more to the caller
// than the generic sentinel.
func TestInitDefaultReportsFirstInitError(t *testing.T) {
	resetRegistry(t)
	t.Cleanup(func() { _ = geom.SetDefaultDevice(nil) })

	bootErr := errors.New("device lost during boot")
	Register(BackendSoft, func() geom.Device {
		return &stubDevice{name: BackendSoft, initErr: bootErr}
	})

	_, err := InitDefault()
	if !errors.Is(err, bootErr) {
		t.Errorf("InitDefault() = %v, want the underlying init error", err)
	}
}
