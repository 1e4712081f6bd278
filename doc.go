// Package geom provides a batch-oriented kernel for 2D integer polygons.
//
// # Overview
//
// geom models polygons as closed chains of 32-bit integer vertices. It
// applies uniform operations like translation to whole vertex buffers at
// once and answers signed-area and convexity queries about them. Buffers
// can be mirrored to a compute device: each polygon carries a coherence
// tag recording which copy is current, and every host access runs through
// gates that transfer data lazily, so redundant copies never happen.
//
// # Quick Start
//
//	import "github.com/gogpu/geom"
//
//	square := geom.FromPoints(
//		geom.Pt(0, 0), geom.Pt(1000, 0),
//		geom.Pt(1000, 1000), geom.Pt(0, 1000),
//	)
//
//	square.Translate(100, -150)
//
//	fmt.Println(square.Area())      // 1000000
//	fmt.Println(square.Convexity()) // convex
//
// # Host and Device
//
// Without a device, everything runs on the host and the coherence gates
// cost one branch. To run kernels on a device, register a backend:
//
//	import (
//		"github.com/gogpu/geom/backend"
//
//		_ "github.com/gogpu/geom/backend/soft" // host-memory reference device
//		_ "github.com/gogpu/geom/backend/wgpu" // GPU compute via gogpu/wgpu
//	)
//
//	dev, err := backend.InitDefault()
//	if err != nil { ... }
//	defer dev.Close()
//
//	err = square.TranslateDevice(42, -7) // runs on the device
//	v := square.At(0)                    // downloads lazily, then reads
//
// # Architecture
//
// The module is organized into:
//   - Public API: Point2D, Polygon, Shape2D, SyncStatus, the translate dispatchers
//   - backend: device registry; backend/soft and backend/wgpu implementations
//   - internal/parallel: worker pool and the chunking policy for fork-join batches
//   - svg: minimal polygon fixture loader
//
// # Coordinate System
//
// Coordinates are 32-bit signed integers with wrapping arithmetic. There
// are no fractional positions, so equality is exact and nothing needs an
// epsilon. The grid uses the mathematical orientation: a boundary that
// winds counter-clockwise encloses positive area. Points order
// lexicographically, X before Y.
//
// # Concurrency
//
// Polygons are not safe for concurrent use. The parallel translate
// strategies are internally fork-join: they split the buffer into
// disjoint chunks, fan out across a worker pool, and return only when
// every chunk is done, so to the caller they behave exactly like the
// sequential ones.
package geom

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
