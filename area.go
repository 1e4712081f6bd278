package geom

// twiceAreaOf returns twice the signed area of the closed chain: the raw
// shoelace sum over every edge, including the closing edge from the last
// vertex back to the first. Keeping the doubled value exact lets callers
// pick their own rounding; on an integer grid it is always an integer
// while the true area may end in one half.
func twiceAreaOf(vertices []Point2D) int64 {
	if len(vertices) < 3 {
		return 0
	}
	var sum int64
	n := len(vertices)
	for i := range n {
		a := vertices[i]
		b := vertices[(i+1)%n]
		sum += int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
	}
	return sum
}

// AreaOf returns the signed area enclosed by the chain of vertices.
//
// The sign follows the winding direction: counter-clockwise is positive,
// clockwise is negative. Self-intersecting chains get the algebraic area,
// with regions weighted by how many times the boundary wraps them. Chains
// of fewer than three vertices enclose nothing and return 0. The half
// unit of a polygon whose doubled area is odd truncates toward zero.
//
// Terms are widened to 64 bits before multiplying; translation does not
// change the result.
func AreaOf(vertices []Point2D) Area {
	return Area(twiceAreaOf(vertices) / 2)
}

// WindingOf reports the winding direction of the chain: +1 for
// counter-clockwise, -1 for clockwise, and 0 for a chain that encloses
// no signed area. It decides on the exact doubled area, so a sliver too
// thin for AreaOf to see still reports its direction.
func WindingOf(vertices []Point2D) int {
	switch sum := twiceAreaOf(vertices); {
	case sum > 0:
		return 1
	case sum < 0:
		return -1
	default:
		return 0
	}
}
