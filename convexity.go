package geom

import "fmt"

// Convexity classifies a shape by whether chords between its interior
// points can leave it.
type Convexity int

// Convexity classifications.
const (
	// ConvexityUnknown marks a cached classification that has not been
	// computed yet. It is internal bookkeeping; public APIs never return it.
	ConvexityUnknown Convexity = iota

	// ConvexityConvex means every chord between two interior points stays
	// inside the shape.
	ConvexityConvex

	// ConvexityConcave means at least one chord leaves the shape.
	ConvexityConcave

	// ConvexityDegenerate means the shape has no interior: fewer than
	// three vertices, all vertices collinear, or no extent at all.
	ConvexityDegenerate
)

// String returns the lowercase name of the classification.
func (c Convexity) String() string {
	switch c {
	case ConvexityUnknown:
		return "unknown"
	case ConvexityConvex:
		return "convex"
	case ConvexityConcave:
		return "concave"
	case ConvexityDegenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("Convexity(%d)", int(c))
	}
}

// ConvexityOf classifies a closed chain of vertices.
//
// The walk visits every consecutive vertex triple, including the pairs
// that straddle the seam, and tracks the sign of each turn's cross
// product. Turns that all share one sign make the chain convex; mixed
// signs make it concave; a chain that never turns encloses nothing and
// is degenerate. Collinear runs along an otherwise convex boundary do
// not demote it.
//
// Deltas are widened to 64 bits before multiplying, which is exact for
// edges spanning up to half the coordinate range; longer edges wrap, the
// same trade-off Area makes. The result does not depend on where the seam
// sits or on the winding direction.
func ConvexityOf(vertices []Point2D) Convexity {
	n := len(vertices)
	if n < 3 {
		return ConvexityDegenerate
	}
	var pos, neg int
	for i := range n {
		a := vertices[i]
		b := vertices[(i+1)%n]
		c := vertices[(i+2)%n]
		cross := (int64(b.X)-int64(a.X))*(int64(c.Y)-int64(b.Y)) -
			(int64(b.Y)-int64(a.Y))*(int64(c.X)-int64(b.X))
		switch {
		case cross > 0:
			pos++
		case cross < 0:
			neg++
		}
		if pos > 0 && neg > 0 {
			return ConvexityConcave
		}
	}
	if pos == 0 && neg == 0 {
		return ConvexityDegenerate
	}
	return ConvexityConvex
}
