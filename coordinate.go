package geom

import "math"

// Coordinate is the position of a point along one axis of the integer grid.
//
// Coordinates are 32-bit signed integers. There are no fractional
// positions: two points are either identical or at least one whole unit
// apart, so equality is exact and never needs an epsilon. The 32-bit width
// also matches the native integer lane of GPU storage buffers, letting
// vertex data move between host and device without conversion.
//
// Arithmetic on Coordinate wraps on overflow, exactly like the underlying
// machine integer. Library code never widens or traps coordinate sums;
// callers that operate near the limits must check their own ranges.
type Coordinate int32

// Coordinate range limits.
const (
	// MinCoordinate is the smallest representable coordinate.
	MinCoordinate Coordinate = math.MinInt32

	// MaxCoordinate is the largest representable coordinate.
	MaxCoordinate Coordinate = math.MaxInt32
)

// Area is the signed surface area of a shape, in grid cells.
//
// Areas are 64-bit so that any polygon with coordinates in the practical
// range fits without overflow. The theoretical worst case over the entire
// 32-bit coordinate domain needs 65 bits; that corner is not covered.
// Like Coordinate, Area wraps on overflow.
type Area int64

// Area range limits.
const (
	// MinArea is the smallest representable area.
	MinArea Area = math.MinInt64

	// MaxArea is the largest representable area.
	MaxArea Area = math.MaxInt64
)
