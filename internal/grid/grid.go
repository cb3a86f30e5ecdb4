// Package grid is the fixed 50x50 coordinate space every entity lives in.
// It holds no mutable state and is the single source of truth for bounds.
package grid

import (
	"fmt"
	"math"
)

const (
	// Size is the width and height of the play field in cells.
	Size = 50
	// CellSize is the edge of one cell in world (pixel) units.
	CellSize = 32
	// HalfCell is the offset from a cell's corner to its center.
	HalfCell = CellSize / 2
)

// Spawn is the runner's start cell.
var Spawn = C(25, 25)

// Coord is a cell address. X grows to the right, Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// InBounds reports whether c lies inside [0,Size-1] on both axes.
func (c Coord) InBounds() bool {
	return InBounds(c.X, c.Y)
}

// InBounds reports whether (x, y) is a valid cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring cell in direction d.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Clamp moves c to the nearest in-bounds cell.
func (c Coord) Clamp() Coord {
	return Coord{X: clamp(c.X), Y: clamp(c.Y)}
}

// Chebyshev returns max(|dx|, |dy|) between two cells.
func (c Coord) Chebyshev(o Coord) int {
	dx, dy := abs(c.X-o.X), abs(c.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Manhattan returns |dx| + |dy| between two cells.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// DistSq returns the squared Euclidean distance between two cells.
func (c Coord) DistSq(o Coord) int {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx + dy*dy
}

// Adjacent reports whether o is within Chebyshev distance 1 of c.
// A cell is adjacent to itself.
func (c Coord) Adjacent(o Coord) bool {
	return c.Chebyshev(o) <= 1
}

// WorldToCell converts a world position to a cell index on one axis:
// round((world - HalfCell) / CellSize). Halves round up.
func WorldToCell(world float64) int {
	return int(math.Floor((world-HalfCell)/CellSize + 0.5))
}

// CellToWorld returns the world position of a cell's center on one axis.
func CellToWorld(cell int) float64 {
	return float64(cell*CellSize + HalfCell)
}

// FromWorld converts a world point to the cell containing it.
func FromWorld(x, y float64) Coord {
	return Coord{X: WorldToCell(x), Y: WorldToCell(y)}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= Size {
		return Size - 1
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
