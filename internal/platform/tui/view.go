package tui

import (
	"fmt"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/grid"
)

// cellCols is the number of terminal columns one grid cell takes.
const cellCols = 2

// Glyphs.
const (
	glyphGrid       = '·'
	glyphNode       = '◆'
	glyphDrone      = 'Ø'
	glyphProjectile = '•'
)

// Viewport is the window of grid cells visible on screen.
type Viewport struct {
	Origin     grid.Coord
	Cols, Rows int
}

// ViewportFor centers a cols x rows window on c, clamped to the grid.
func ViewportFor(c grid.Coord, cols, rows int) Viewport {
	cols = core.Clamp(cols, 0, grid.Size)
	rows = core.Clamp(rows, 0, grid.Size)
	return Viewport{
		Origin: grid.C(axisOrigin(c.X, cols), axisOrigin(c.Y, rows)),
		Cols:   cols,
		Rows:   rows,
	}
}

func axisOrigin(center, span int) int {
	return core.Clamp(center-span/2, 0, grid.Size-span)
}

// Contains reports whether c is visible.
func (v Viewport) Contains(c grid.Coord) bool {
	return c.X >= v.Origin.X && c.X < v.Origin.X+v.Cols &&
		c.Y >= v.Origin.Y && c.Y < v.Origin.Y+v.Rows
}

// field maps grid cells to screen positions.
type field struct {
	vp     Viewport
	x0, y0 int
}

func newField(s *core.Screen, center grid.Coord) field {
	rows := s.Height() - 1
	vp := ViewportFor(center, s.Width()/cellCols, rows)
	return field{
		vp: vp,
		x0: (s.Width() - vp.Cols*cellCols) / 2,
		y0: 1 + (rows-vp.Rows)/2,
	}
}

func (f field) set(s *core.Screen, c grid.Coord, r rune, col core.Color) {
	if !f.vp.Contains(c) {
		return
	}
	s.SetColored(f.x0+(c.X-f.vp.Origin.X)*cellCols, f.y0+(c.Y-f.vp.Origin.Y), r, col)
}

// DrawSnapshot draws the HUD, the visible part of the grid and the overlay
// of the current state. Row 0 is the HUD; the field fills the rest.
func DrawSnapshot(s *core.Screen, sn game.Snapshot) {
	s.Clear()
	if s.Width() < cellCols || s.Height() < 2 {
		return
	}

	drawHUD(s, sn)

	f := newField(s, sn.Runner.Pos)
	for y := 0; y < f.vp.Rows; y++ {
		for x := 0; x < f.vp.Cols; x++ {
			f.set(s, f.vp.Origin.Add(x, y), glyphGrid, core.ColorGrid)
		}
	}
	for _, it := range sn.Items {
		f.set(s, it.Pos, glyphNode, core.ColorNode)
	}
	for _, p := range sn.Projectiles {
		f.set(s, p.Pos, glyphProjectile, core.ColorProjectile)
	}
	for _, d := range sn.Drones {
		drawDrone(s, f, d)
	}
	f.set(s, sn.Runner.Pos, runnerGlyph(sn.Runner.Facing), core.ColorRunner)

	if sn.Notice != "" {
		s.DrawTextCentered(f.y0, " "+sn.Notice+" ", core.ColorNotice)
	}

	switch sn.State {
	case core.StatePaused:
		drawOverlay(s, []string{
			"PAUSED",
			"",
			"p resume   esc menu",
		})
	case core.StateVictory:
		lines := []string{
			fmt.Sprintf("LEVEL %d CLEARED", sn.Level),
			"",
			fmt.Sprintf("nodes %d/%d   drones destroyed %d", sn.Collected, sn.Total, sn.DronesDestroyed),
			"",
		}
		if sn.HasNextLevel {
			lines = append(lines, "enter next level   r menu")
		} else {
			lines = append(lines, "ALL LEVELS CLEARED", "enter menu")
		}
		drawOverlay(s, lines)
	case core.StateGameOver:
		drawOverlay(s, []string{
			"CONNECTION LOST",
			"",
			fmt.Sprintf("level %d   nodes %d/%d", sn.Level, sn.Collected, sn.Total),
			"",
			"enter menu",
		})
	}
}

func drawHUD(s *core.Screen, sn game.Snapshot) {
	hud := fmt.Sprintf(" L%d %s  NODES %d/%d  DRONES %d  KILLS %d  %s",
		sn.Level, sn.LevelName, sn.Collected, sn.Total,
		sn.DronesRemaining, sn.DronesDestroyed, sn.Runner.Pos)
	s.DrawTextColored(0, 0, hud, core.ColorHUD)

	clock := fmt.Sprintf("%5.1fs ", sn.Clock.Seconds())
	s.DrawTextColored(s.Width()-len(clock), 0, clock, core.ColorDim)
}

// drawDrone draws the body and, in the cell's second column, the hits left.
func drawDrone(s *core.Screen, f field, d game.DroneView) {
	if !f.vp.Contains(d.Pos) {
		return
	}
	col := bandColor(d.Band)
	f.set(s, d.Pos, glyphDrone, core.ColorDrone)
	x := f.x0 + (d.Pos.X-f.vp.Origin.X)*cellCols + 1
	y := f.y0 + (d.Pos.Y - f.vp.Origin.Y)
	s.SetColored(x, y, rune('0'+entity.MaxHits-d.Hits), col)
}

func bandColor(b game.HealthBand) core.Color {
	switch b {
	case game.BandHigh:
		return core.ColorHealthHigh
	case game.BandMid:
		return core.ColorHealthMid
	default:
		return core.ColorHealthLow
	}
}

func runnerGlyph(d grid.Dir) rune {
	switch d {
	case grid.DirDown:
		return '▼'
	case grid.DirLeft:
		return '◀'
	case grid.DirRight:
		return '▶'
	default:
		return '▲'
	}
}

func drawOverlay(s *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	r := s.Bounds().Centered(w+4, len(lines)+2)
	s.DrawPanel(r, core.ColorOverlay)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorOverlay
		}
		x := r.X + (r.W-len([]rune(l)))/2
		s.DrawTextColored(x, r.Y+1+i, l, c)
	}
}
