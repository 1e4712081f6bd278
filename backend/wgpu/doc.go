// Package wgpu provides a GPU compute device for the geom kernel using
// gogpu/wgpu.
//
// Vertex mirrors live in GPU storage buffers and kernels run as WGSL
// compute shaders through the wgpu HAL. The translate kernel uses i32
// arithmetic, which wraps two's-complement exactly like the host's
// Coordinate type, so device results are bit-identical to host results.
//
// Importing the package registers the device:
//
//	import _ "github.com/gogpu/geom/backend/wgpu"
//
// The factory declines (and selection falls through to the soft backend)
// when no HAL backend is compiled in. Building with the nogpu tag removes
// the GPU code path entirely.
//
// Applications that already own a GPU device, a gogpu window for example,
// can share it instead of opening a second one:
//
//	dev, err := wgpu.Adopt(provider) // provider implements gpucontext.DeviceProvider
//	if err == nil {
//		geom.SetDefaultDevice(dev)
//	}
package wgpu
