package backend

import "errors"

// Names of the built-in device backends.
const (
	// BackendSoft is the software reference device: mirrors live in host
	// memory and kernels run on the CPU. Always available.
	BackendSoft = "soft"

	// BackendWGPU is the GPU compute device backed by gogpu/wgpu.
	// Available when the binary is built with GPU support and an adapter
	// is present.
	BackendWGPU = "wgpu"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)
