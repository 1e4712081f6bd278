package geom

import (
	"slices"
	"testing"
)

// makeRing builds a deterministic jagged ring of n vertices. The shape is
// irrelevant; the tests only need a buffer whose elements are all distinct
// enough to expose a skipped or double-translated chunk.
func makeRing(n int) []Point2D {
	vs := make([]Point2D, n)
	for i := range vs {
		y := Coordinate((i * 31) % 4096)
		if i%2 == 1 {
			y = -y
		}
		vs[i] = Pt(Coordinate(i%4096), y)
	}
	return vs
}

func TestTranslatePoints(t *testing.T) {
	tests := []struct {
		name   string
		pts    []Point2D
		dx, dy Coordinate
		want   []Point2D
	}{
		{"nil slice", nil, 5, 5, nil},
		{"empty slice", []Point2D{}, 5, 5, []Point2D{}},
		{"single point", []Point2D{Pt(1, 2)}, 10, -20, []Point2D{Pt(11, -18)}},
		{
			"square by (100,-150)",
			ccwSquare1000(),
			100, -150,
			[]Point2D{Pt(100, -150), Pt(1100, -150), Pt(1100, 850), Pt(100, 850)},
		},
		{
			"wraps at max",
			[]Point2D{Pt(MaxCoordinate, MaxCoordinate)},
			1, 1,
			[]Point2D{Pt(MinCoordinate, MinCoordinate)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.pts)
			TranslatePoints(got, tt.dx, tt.dy)
			if !slices.Equal(got, tt.want) {
				t.Errorf("TranslatePoints(%v, %d, %d) = %v, want %v",
					tt.pts, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestTranslatePointsZeroDelta(t *testing.T) {
	pts := makeRing(1000)
	orig := slices.Clone(pts)
	TranslatePoints(pts, 0, 0)
	if !slices.Equal(pts, orig) {
		t.Error("TranslatePoints by (0,0) changed the buffer")
	}
}

func TestTranslatePointsInverseRestores(t *testing.T) {
	pts := makeRing(1000)
	orig := slices.Clone(pts)
	TranslatePoints(pts, 123, -456)
	TranslatePoints(pts, -123, 456)
	if !slices.Equal(pts, orig) {
		t.Error("translate then inverse translate did not restore the buffer")
	}
}

// TestTranslatePointsParallelMatchesSequential is the load-bearing
// parallel test: across sizes straddling the chunking boundaries, the
// parallel kernel must produce a buffer bit-identical to the sequential
// one.
func TestTranslatePointsParallelMatchesSequential(t *testing.T) {
	sizes := []int{0, 1, 255, 256, 257, 512, 4095, 4096, 4097, 10000, 100000}
	for _, n := range sizes {
		seq := makeRing(n)
		par := slices.Clone(seq)

		TranslatePoints(seq, 100, -150)
		TranslatePointsParallel(par, 100, -150)

		if !slices.Equal(seq, par) {
			t.Errorf("size %d: parallel result differs from sequential", n)
		}
	}
}

func TestTranslatePointsParallelWraps(t *testing.T) {
	pts := make([]Point2D, 10000)
	for i := range pts {
		pts[i] = Pt(MaxCoordinate, MinCoordinate)
	}
	TranslatePointsParallel(pts, 1, -1)
	want := Pt(MinCoordinate, MaxCoordinate)
	for i, v := range pts {
		if v != want {
			t.Fatalf("pts[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestTranslatePointsParallelInverseRestores(t *testing.T) {
	pts := makeRing(50000)
	orig := slices.Clone(pts)
	TranslatePointsParallel(pts, 123, -456)
	TranslatePointsParallel(pts, -123, 456)
	if !slices.Equal(pts, orig) {
		t.Error("parallel translate then inverse did not restore the buffer")
	}
}

func TestPolygonTranslateStrategies(t *testing.T) {
	want := []Point2D{Pt(100, -150), Pt(1100, -150), Pt(1100, 850), Pt(100, 850)}

	strategies := []struct {
		name string
		run  func(*Polygon)
	}{
		{"auto", func(p *Polygon) { p.Translate(100, -150) }},
		{"sequential", func(p *Polygon) { p.TranslateSequential(100, -150) }},
		{"parallel", func(p *Polygon) { p.TranslateParallel(100, -150) }},
	}
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			p := FromPoints(ccwSquare1000()...)
			s.run(p)
			if got := p.Vertices(); !slices.Equal(got, want) {
				t.Errorf("vertices after %s translate = %v, want %v", s.name, got, want)
			}
		})
	}
}

// TestPolygonTranslateLarge crosses the dispatch threshold so Translate
// takes the parallel path on multicore machines, and verifies against an
// independently translated clone.
func TestPolygonTranslateLarge(t *testing.T) {
	p := FromPoints(makeRing(ParallelThreshold * 4)...)
	q := p.Clone()

	p.Translate(7, -9)
	q.TranslateSequential(7, -9)

	if !p.Equal(q) {
		t.Error("auto-dispatched translate differs from sequential on the same data")
	}
}

func TestPolygonTranslateEmpty(t *testing.T) {
	p := New()
	p.Translate(100, -150) // must not panic
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}
