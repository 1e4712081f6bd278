package geom

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// Polygon is a simple polygon: a closed chain of vertices on the integer
// grid.
//
// Consecutive vertices are connected by edges, plus the closing edge from
// the last vertex back to the first, so a polygon has as many edges as
// vertices. Index 0 is the seam where iteration starts; every geometric
// result is independent of where the seam sits. A polygon with fewer than
// three effective vertices is degenerate: it still holds its data but
// encloses nothing.
//
// The polygon owns its vertex storage exclusively. When a compute device
// is registered, a device-side mirror of the buffer may exist too; all
// host access then runs through gates that keep the two copies coherent
// (see SyncStatus). Without a device the gates cost one branch.
//
// A Polygon is not safe for concurrent use; callers serialize access.
// Assignment copies share storage: use Clone for an independent copy.
type Polygon struct {
	vertices []Point2D
	status   SyncStatus
	conv     Convexity // cached classification; ConvexityUnknown until computed

	dev       Device       // bound device, nil means use the process default
	mirror    DeviceBuffer // device-side mirror, nil until first device use
	mirrorDev Device       // device that allocated the mirror
}

// New creates an empty polygon with no reserved storage.
func New() *Polygon {
	return &Polygon{}
}

// WithCapacity creates an empty polygon with storage reserved for exactly
// n vertices: the first n pushes reuse the reservation without growing it.
func WithCapacity(n int) *Polygon {
	return &Polygon{vertices: make([]Point2D, 0, n)}
}

// FromPoints creates a polygon with the given vertices copied, in order,
// into fresh storage.
func FromPoints(pts ...Point2D) *Polygon {
	return &Polygon{vertices: slices.Clone(pts)}
}

// Len returns the number of vertices, which equals the number of edges.
// Len never triggers a device transfer: the count is host metadata.
func (p *Polygon) Len() int {
	return len(p.vertices)
}

// Cap returns the number of vertices the current storage can hold without
// reallocating.
func (p *Polygon) Cap() int {
	return cap(p.vertices)
}

// Reserve grows the storage so that at least n more vertices fit without
// reallocation. It never shrinks, may round up, and does not move any
// vertex data between host and device.
func (p *Polygon) Reserve(n int) {
	if n <= 0 {
		return
	}
	p.vertices = slices.Grow(p.vertices, n)
}

// Push appends a vertex after the seam-relative last vertex, growing the
// storage as needed.
func (p *Polygon) Push(v Point2D) {
	p.syncForWrite()
	p.vertices = append(p.vertices, v)
}

// Pop removes and returns the last vertex. The second result is false
// when the polygon is empty; Pop never panics.
func (p *Polygon) Pop() (Point2D, bool) {
	p.syncForWrite()
	n := len(p.vertices)
	if n == 0 {
		return Point2D{}, false
	}
	v := p.vertices[n-1]
	p.vertices = p.vertices[:n-1]
	return v, true
}

// Insert places v at index i, shifting later vertices one slot toward the
// end. i may equal Len(), which appends. Any other out-of-range index is
// a programming error and panics with the index and the length.
func (p *Polygon) Insert(i int, v Point2D) {
	p.syncForWrite()
	if i < 0 || i > len(p.vertices) {
		panic(fmt.Sprintf("geom: insert index %d out of range with length %d", i, len(p.vertices)))
	}
	p.vertices = slices.Insert(p.vertices, i, v)
}

// Remove deletes the vertex at index i and returns it, shifting later
// vertices one slot toward the seam. Out-of-range indexes are a
// programming error and panic with the index and the length.
func (p *Polygon) Remove(i int) Point2D {
	p.syncForWrite()
	p.boundsCheck(i)
	v := p.vertices[i]
	p.vertices = slices.Delete(p.vertices, i, i+1)
	return v
}

// Clear removes all vertices, leaving a degenerate polygon. The storage
// reservation is kept for reuse.
func (p *Polygon) Clear() {
	p.syncForWrite()
	p.vertices = p.vertices[:0]
}

// At returns the vertex at index i. Out-of-range indexes are a
// programming error and panic with the index and the length; use Get for
// indexes that may be out of range.
func (p *Polygon) At(i int) Point2D {
	p.syncForRead()
	p.boundsCheck(i)
	return p.vertices[i]
}

// Set replaces the vertex at index i. Out-of-range indexes are a
// programming error and panic with the index and the length.
func (p *Polygon) Set(i int, v Point2D) {
	p.syncForWrite()
	p.boundsCheck(i)
	p.vertices[i] = v
}

// Get returns the vertex at index i, or false when i is out of range.
func (p *Polygon) Get(i int) (Point2D, bool) {
	if i < 0 || i >= len(p.vertices) {
		return Point2D{}, false
	}
	p.syncForRead()
	return p.vertices[i], true
}

// GetMut returns a pointer to the vertex at index i for in-place
// mutation, or false when i is out of range. The pointer is only valid
// until the next operation that grows or shrinks the polygon.
func (p *Polygon) GetMut(i int) (*Point2D, bool) {
	if i < 0 || i >= len(p.vertices) {
		return nil, false
	}
	p.syncForWrite()
	return &p.vertices[i], true
}

// Vertices returns the vertex buffer for reading, in seam order. The
// slice aliases the polygon's storage: callers must not modify it and
// must not hold it across mutating operations. Use MutableVertices to
// write.
func (p *Polygon) Vertices() []Point2D {
	p.syncForRead()
	return p.vertices
}

// MutableVertices returns the vertex buffer for in-place modification, in
// seam order. Like Vertices it aliases the polygon's storage; unlike
// Vertices it marks the host copy authoritative, so a stale device mirror
// is refreshed before the next device-side operation.
func (p *Polygon) MutableVertices() []Point2D {
	p.syncForWrite()
	return p.vertices
}

// boundsCheck panics when i does not index an existing vertex.
func (p *Polygon) boundsCheck(i int) {
	if i < 0 || i >= len(p.vertices) {
		panic(fmt.Sprintf("geom: vertex index %d out of range with length %d", i, len(p.vertices)))
	}
}

// Clone returns an independent deep copy with the same vertices in the
// same order. The clone starts host-resident with no device mirror.
func (p *Polygon) Clone() *Polygon {
	p.syncForRead()
	return &Polygon{vertices: slices.Clone(p.vertices)}
}

// Equal reports whether p and q hold identical vertex sequences.
// Coherence state does not participate: polygons are equal when their
// authoritative data is.
func (p *Polygon) Equal(q *Polygon) bool {
	p.syncForRead()
	q.syncForRead()
	return slices.Equal(p.vertices, q.vertices)
}

// Translate displaces every vertex by (dx, dy) on the host, dispatching
// to the parallel strategy when the polygon has at least
// ParallelThreshold vertices and more than one CPU is available. Both
// strategies produce bit-identical buffers; see TranslatePointsParallel.
func (p *Polygon) Translate(dx, dy Coordinate) {
	p.syncForWrite()
	if len(p.vertices) >= ParallelThreshold && runtime.GOMAXPROCS(0) > 1 {
		TranslatePointsParallel(p.vertices, dx, dy)
		return
	}
	TranslatePoints(p.vertices, dx, dy)
}

// TranslateSequential displaces every vertex by (dx, dy) on the host in a
// single pass, regardless of size.
func (p *Polygon) TranslateSequential(dx, dy Coordinate) {
	p.syncForWrite()
	TranslatePoints(p.vertices, dx, dy)
}

// TranslateParallel displaces every vertex by (dx, dy) on the host using
// the chunked fork-join strategy, regardless of size. Buffers below the
// minimum chunk size still run sequentially inside the dispatcher.
func (p *Polygon) TranslateParallel(dx, dy Coordinate) {
	p.syncForWrite()
	TranslatePointsParallel(p.vertices, dx, dy)
}

// Area returns the signed area enclosed by the polygon; see AreaOf.
func (p *Polygon) Area() Area {
	p.syncForRead()
	return AreaOf(p.vertices)
}

// Convexity classifies the polygon as convex, concave, or degenerate; see
// ConvexityOf. The classification is cached and reused until the next
// mutation.
func (p *Polygon) Convexity() Convexity {
	p.syncForRead()
	if p.conv == ConvexityUnknown {
		p.conv = ConvexityOf(p.vertices)
	}
	return p.conv
}

// Winding reports the winding direction of the boundary: +1 counter-
// clockwise, -1 clockwise, 0 degenerate. See WindingOf.
func (p *Polygon) Winding() int {
	p.syncForRead()
	return WindingOf(p.vertices)
}

// String returns a compact vertex listing for diagnostics, e.g.
// "Polygon[(0,0) (1000,0) (1000,1000)]".
func (p *Polygon) String() string {
	p.syncForRead()
	var b strings.Builder
	b.WriteString("Polygon[")
	for i, v := range p.vertices {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%d,%d)", v.X, v.Y)
	}
	b.WriteByte(']')
	return b.String()
}
