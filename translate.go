package geom

import (
	"runtime"

	"github.com/gogpu/geom/internal/parallel"
)

// ParallelThreshold is the vertex count at which Polygon.Translate starts
// dispatching to the parallel strategy. Below it, forking and joining
// goroutines costs more than translating the buffer outright.
const ParallelThreshold = 4096

// TranslatePoints displaces every point in the slice by (dx, dy),
// sequentially.
//
// One pass, in place, no allocation. Coordinates wrap on overflow. An
// empty slice is a no-op.
func TranslatePoints(pts []Point2D, dx, dy Coordinate) {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}

// TranslatePointsParallel displaces every point in the slice by (dx, dy)
// using a fork-join over contiguous chunks.
//
// The slice is partitioned up front with parallel.ChunkSize, one chunk per
// work item: chunks are disjoint, so workers share no elements and need no
// locks. The call blocks until every chunk is done. Slices too small to
// split run sequentially on the calling goroutine.
//
// The buffer afterwards is bit-identical to what TranslatePoints produces:
// each element depends only on its own prior value, so neither execution
// order nor chunk boundaries can show through.
func TranslatePointsParallel(pts []Point2D, dx, dy Coordinate) {
	size := parallel.ChunkSize(len(pts), runtime.GOMAXPROCS(0))
	ranges := parallel.Chunks(len(pts), size)
	if len(ranges) <= 1 {
		TranslatePoints(pts, dx, dy)
		return
	}

	Logger().Debug("geom: parallel translate",
		"vertices", len(pts), "chunk", size, "chunks", len(ranges))

	work := make([]func(), len(ranges))
	for i, r := range ranges {
		part := pts[r.Lo:r.Hi]
		work[i] = func() {
			TranslatePoints(part, dx, dy)
		}
	}
	parallel.Shared().ExecuteAll(work)
}
