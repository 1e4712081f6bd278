package geom

import (
	"math"
	"testing"
)

func TestCoordinateRange(t *testing.T) {
	if MinCoordinate != math.MinInt32 {
		t.Errorf("MinCoordinate = %d, want %d", MinCoordinate, math.MinInt32)
	}
	if MaxCoordinate != math.MaxInt32 {
		t.Errorf("MaxCoordinate = %d, want %d", MaxCoordinate, math.MaxInt32)
	}
}

func TestCoordinateWrapsAtMax(t *testing.T) {
	c := MaxCoordinate
	c++
	if c != MinCoordinate {
		t.Errorf("MaxCoordinate+1 = %d, want wrap to %d", c, MinCoordinate)
	}
}

func TestCoordinateWrapsAtMin(t *testing.T) {
	c := MinCoordinate
	c--
	if c != MaxCoordinate {
		t.Errorf("MinCoordinate-1 = %d, want wrap to %d", c, MaxCoordinate)
	}
}

func TestCoordinateWrapAddition(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want Coordinate
	}{
		{"no overflow", 100, 200, 300},
		{"negative sum", -100, -200, -300},
		{"wrap positive", MaxCoordinate, 1, MinCoordinate},
		{"wrap far positive", MaxCoordinate, MaxCoordinate, -2},
		{"wrap negative", MinCoordinate, -1, MaxCoordinate},
		{"min plus min", MinCoordinate, MinCoordinate, 0},
		{"cancel at edge", MaxCoordinate, MinCoordinate, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a + tt.b; got != tt.want {
				t.Errorf("%d + %d = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAreaRange(t *testing.T) {
	if MinArea != math.MinInt64 {
		t.Errorf("MinArea = %d, want %d", MinArea, int64(math.MinInt64))
	}
	if MaxArea != math.MaxInt64 {
		t.Errorf("MaxArea = %d, want %d", MaxArea, int64(math.MaxInt64))
	}
}

func TestAreaWrapsAtBounds(t *testing.T) {
	a := MaxArea
	a++
	if a != MinArea {
		t.Errorf("MaxArea+1 = %d, want wrap to %d", a, MinArea)
	}
	a = MinArea
	a--
	if a != MaxArea {
		t.Errorf("MinArea-1 = %d, want wrap to %d", a, MaxArea)
	}
}
