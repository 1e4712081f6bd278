package geom

import (
	"cmp"
	"fmt"
)

// Point2D is a position on the integer grid.
//
// A point is also the simplest shape: it has no extent, so its area is
// always zero and its convexity is always degenerate. The zero value is
// the origin.
type Point2D struct {
	X, Y Coordinate
}

// Pt is a convenience function to create a Point2D.
func Pt(x, y Coordinate) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the componentwise sum of two points (vector addition).
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the componentwise difference of two points (vector subtraction).
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neg returns the componentwise negation of the point.
// MinCoordinate negates to itself under wrapping.
func (p Point2D) Neg() Point2D {
	return Point2D{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors, widened to 64 bits.
func (p Point2D) Dot(q Point2D) Area {
	return Area(int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y))
}

// Cross returns the 2D cross product (scalar), widened to 64 bits.
// The sign gives the turn direction from p to q: positive is
// counter-clockwise.
func (p Point2D) Cross(q Point2D) Area {
	return Area(int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X))
}

// Less reports whether p orders before q. Points order lexicographically:
// by X first, with Y breaking ties.
func (p Point2D) Less(q Point2D) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Compare returns -1 when p orders before q, +1 when q orders first, and
// 0 when the points are equal. It follows the cmp.Compare convention, so
// point slices sort with slices.SortFunc(pts, Point2D.Compare).
func (p Point2D) Compare(q Point2D) int {
	if c := cmp.Compare(p.X, q.X); c != 0 {
		return c
	}
	return cmp.Compare(p.Y, q.Y)
}

// Translate displaces the point by (dx, dy) in place.
// Coordinates wrap on overflow.
func (p *Point2D) Translate(dx, dy Coordinate) {
	p.X += dx
	p.Y += dy
}

// Area returns 0: a point encloses nothing.
func (p Point2D) Area() Area { return 0 }

// Convexity returns ConvexityDegenerate: a point has no extent.
func (p Point2D) Convexity() Convexity { return ConvexityDegenerate }

// String returns the point as "(x, y)".
func (p Point2D) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
