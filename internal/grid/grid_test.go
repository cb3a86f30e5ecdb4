package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInBounds(t *testing.T) {
	tests := []struct {
		c    Coord
		want bool
	}{
		{C(0, 0), true},
		{C(49, 49), true},
		{C(25, 25), true},
		{C(-1, 0), false},
		{C(0, -1), false},
		{C(50, 0), false},
		{C(0, 50), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.InBounds(), "InBounds(%v)", tt.c)
	}
}

func TestWorldToCell(t *testing.T) {
	tests := []struct {
		world float64
		want  int
	}{
		{16, 0},
		{48, 1},
		{816, 25},
		{1584, 49},
		{31, 0},
		{32, 1}, // exactly half a cell past center rounds up
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WorldToCell(tt.world), "WorldToCell(%v)", tt.world)
	}
}

func TestCellWorldRoundTrip(t *testing.T) {
	for i := 0; i < Size; i++ {
		assert.Equal(t, i, WorldToCell(CellToWorld(i)))
	}
	assert.Equal(t, Spawn, FromWorld(816, 816))
}

func TestDistances(t *testing.T) {
	a, b := C(2, 3), C(5, 1)
	assert.Equal(t, 3, a.Chebyshev(b))
	assert.Equal(t, 5, a.Manhattan(b))
	assert.Equal(t, 13, a.DistSq(b))
	assert.True(t, a.Adjacent(C(3, 4)))
	assert.True(t, a.Adjacent(a))
	assert.False(t, a.Adjacent(C(4, 3)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, C(0, 49), C(-4, 60).Clamp())
	assert.Equal(t, C(7, 8), C(7, 8).Clamp())
}

func TestDirDeltaOpposite(t *testing.T) {
	start := C(10, 10)
	assert.Equal(t, C(10, 9), start.Step(DirUp))
	assert.Equal(t, C(10, 11), start.Step(DirDown))
	assert.Equal(t, C(9, 10), start.Step(DirLeft))
	assert.Equal(t, C(11, 10), start.Step(DirRight))
	assert.Equal(t, start, start.Step(DirNone))

	for _, d := range Compass {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
		dx, dy := d.Delta()
		assert.Equal(t, d, DirFromDelta(dx, dy))
	}
	assert.Equal(t, DirNone, DirFromDelta(1, 1))
}
