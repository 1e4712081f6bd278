// Package parallel provides the worker pool and chunking policy for
// fork-join geometry batches.
package parallel

// MinChunk is the smallest number of elements a chunk will hold.
// Below roughly this many elements per task, goroutine dispatch costs
// more than the elementwise work itself, so small buffers collapse to a
// single chunk and run sequentially.
const MinChunk = 256

// ChunkSize returns the chunk length for splitting n elements across the
// given number of workers: the larger of MinChunk and ceil(n/workers).
//
// It is a pure function of its arguments, so the policy is testable
// without running anything concurrently. Non-positive n or workers
// return MinChunk.
func ChunkSize(n, workers int) int {
	if n <= 0 || workers < 1 {
		return MinChunk
	}
	even := (n + workers - 1) / workers
	if even < MinChunk {
		return MinChunk
	}
	return even
}

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indexes in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Chunks splits [0, n) into consecutive ranges of the given size; the
// last range may be shorter. The ranges are disjoint and cover exactly
// [0, n), so workers handed different ranges never alias. n <= 0 or
// size <= 0 return nil.
func Chunks(n, size int) []Range {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([]Range, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		out = append(out, Range{Lo: lo, Hi: hi})
	}
	return out
}
