package geom

// Translatable is the capability of being displaced on the grid.
type Translatable interface {
	// Translate moves the shape by (dx, dy). Coordinates wrap on overflow.
	Translate(dx, dy Coordinate)
}

// Shape2D is a finite shape on the integer grid.
//
// All built-in shapes implement it with pointer receivers, so the
// interface holds *Point2D and *Polygon values.
type Shape2D interface {
	Translatable

	// Area returns the signed surface area. Counter-clockwise boundaries
	// are positive, clockwise negative; the sign distinguishes solids
	// from holes.
	Area() Area

	// Convexity classifies the shape. It reports convex, concave, or
	// degenerate, never unknown.
	Convexity() Convexity
}

// Compile-time interface checks.
var (
	_ Shape2D = (*Point2D)(nil)
	_ Shape2D = (*Polygon)(nil)
)
