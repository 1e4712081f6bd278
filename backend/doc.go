// Package backend provides a pluggable compute device abstraction.
//
// The backend package lets the geom kernel run device-side operations on
// multiple device implementations. The soft backend mirrors buffers in
// host memory and is always available; the wgpu backend dispatches real
// GPU compute via gogpu/wgpu.
//
// # Device Registration
//
// Devices are registered via init() functions and selected at runtime.
// Importing a backend package registers it:
//
//	import (
//		_ "github.com/gogpu/geom/backend/soft"
//		_ "github.com/gogpu/geom/backend/wgpu"
//	)
//
// # Device Selection
//
// Use Default() to get the best available device, or Get() to request a
// specific one by name:
//
//	// Get the default (best available) device
//	d := backend.Default()
//
//	// Or request a specific device
//	d := backend.Get("soft")
//
// # Usage with Polygons
//
// InitDefault wires the selected device into the geom package, after
// which polygons use it for device-side operations:
//
//	dev, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	poly := geom.FromPoints(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
//	if err := poly.TranslateDevice(5, 5); err != nil {
//		poly.Translate(5, 5) // host fallback
//	}
//
// # Available Devices
//
// - "soft": host-memory reference device (always available)
// - "wgpu": GPU compute via gogpu/wgpu (needs GPU support and an adapter)
package backend
