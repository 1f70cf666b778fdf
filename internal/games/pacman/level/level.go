// Package level holds the maze grid: cell contents, the derived wall
// geometry, and the movement, visibility and eating queries actors run
// against it.
package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// EmptyName is the name of the blank level used between games.
const EmptyName = "empty"

// Level is a parsed maze. The source rows are kept so the level can be
// regenerated each time it becomes active.
type Level struct {
	name          string
	width, height int
	rows          []string
	cells         [][]Cell // [y][x]

	total     int
	remaining int
	halfSeen  bool
	threeSeen bool
}

// Blank returns a blank 28x31 level.
func Blank() *Level {
	const w, h = 28, 31
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(" ", w)
	}
	lv := &Level{name: EmptyName, width: w, height: h, rows: rows}
	lv.Regenerate()
	return lv
}

// Name returns the level name from its header.
func (lv *Level) Name() string { return lv.name }

// Width returns the number of grid columns.
func (lv *Level) Width() int { return lv.width }

// Height returns the number of grid rows.
func (lv *Level) Height() int { return lv.height }

// PixelWidth returns the board width in pixels.
func (lv *Level) PixelWidth() int { return lv.width * GridSize }

// PixelHeight returns the board height in pixels.
func (lv *Level) PixelHeight() int { return lv.height * GridSize }

// TotalDots returns the number of dots and pellets the level started with.
func (lv *Level) TotalDots() int { return lv.total }

// RemainingDots returns the number of dots and pellets not yet eaten.
func (lv *Level) RemainingDots() int { return lv.remaining }

// IsCleared reports whether every dot and pellet has been eaten.
func (lv *Level) IsCleared() bool { return lv.remaining == 0 }

// Char returns the source character at grid (x, y).
func (lv *Level) Char(x, y int) byte {
	lv.mustOnMap(x, y)
	return lv.rows[y][x]
}

// Rows returns a copy of the source rows.
func (lv *Level) Rows() []string {
	out := make([]string, len(lv.rows))
	copy(out, lv.rows)
	return out
}

// Regenerate rebuilds every cell from the source rows, restoring dots and
// pellets, and recomputes the wall masks.
func (lv *Level) Regenerate() {
	if err := lv.regenerate(); err != nil {
		panic(err)
	}
}

func (lv *Level) regenerate() error {
	lv.cells = make([][]Cell, lv.height)
	lv.total, lv.remaining = 0, 0
	lv.halfSeen, lv.threeSeen = false, false

	for y := 0; y < lv.height; y++ {
		lv.cells[y] = make([]Cell, lv.width)
		for x := 0; x < lv.width; x++ {
			c := NewCell(kindOf(lv.rows[y][x]))
			if c.IsEdible() {
				lv.total++
			}
			lv.cells[y][x] = c
		}
	}
	lv.remaining = lv.total
	return lv.computeMasks()
}

// OnMap reports whether grid (x, y) lies inside the level.
func (lv *Level) OnMap(x, y int) bool {
	return x >= 0 && y >= 0 && x < lv.width && y < lv.height
}

func (lv *Level) mustOnMap(x, y int) {
	if !lv.OnMap(x, y) {
		panic(fmt.Sprintf("level %s: grid cell (%d, %d) outside %dx%d board", lv.name, x, y, lv.width, lv.height))
	}
}

// Cell returns the cell at grid (x, y). Illegal coordinates panic.
func (lv *Level) Cell(x, y int) Cell {
	lv.mustOnMap(x, y)
	return lv.cells[y][x]
}

// SetCell replaces the cell at grid (x, y). Dot counters are left alone,
// so placing food on a running level never raises the remaining count.
func (lv *Level) SetCell(x, y int, c Cell) error {
	if !lv.OnMap(x, y) {
		return fmt.Errorf("level %s: cannot set cell (%d, %d) outside %dx%d board", lv.name, x, y, lv.width, lv.height)
	}
	lv.cells[y][x] = c
	return nil
}

// PutWord writes text as letter cells starting at grid (x, y). Characters
// that fall off the board are dropped.
func (lv *Level) PutWord(text string, x, y int, color core.Color) {
	for i, r := range []rune(text) {
		if !lv.OnMap(x+i, y) {
			continue
		}
		if r == ' ' {
			lv.cells[y][x+i] = Cell{}
			continue
		}
		lv.cells[y][x+i] = NewLetter(r, color)
	}
}

// isObstacle is the bounds-checked obstacle test used by queries.
func (lv *Level) isObstacle(x, y int) bool {
	return lv.OnMap(x, y) && lv.cells[y][x].IsObstacle()
}

// IsObstacle reports whether grid (x, y) is a wall or gate.
func (lv *Level) IsObstacle(x, y int) bool {
	return lv.isObstacle(x, y)
}

// IsWall reports whether grid (x, y) is a wall.
func (lv *Level) IsWall(x, y int) bool {
	return lv.OnMap(x, y) && lv.cells[y][x].Kind == Wall
}

// IsGate reports whether grid (x, y) is a ghost gate.
func (lv *Level) IsGate(x, y int) bool {
	return lv.OnMap(x, y) && lv.cells[y][x].Kind == Gate
}

// Neighbors counts the obstacle cells surrounding grid (x, y).
func (lv *Level) Neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && lv.isObstacle(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// BlinkPellets toggles the visibility of every uneaten power pellet.
func (lv *Level) BlinkPellets() {
	for y := range lv.cells {
		for x := range lv.cells[y] {
			c := &lv.cells[y][x]
			if c.Kind == PowerPellet && !c.Eaten {
				c.Visible = !c.Visible
			}
		}
	}
}

// Mover is what the level needs to know about an actor to answer
// movement questions.
type Mover interface {
	Bounds() core.Rect
	Velocity() move.Move
	Speed() int
	// PassesGates reports whether gate cells are open to the actor.
	PassesGates() bool
}

// WrapRect moves a rectangle that has fully left the board to just inside
// the opposite edge.
func WrapRect(r core.Rect, speed, w, h int) core.Rect {
	switch {
	case r.X <= -r.W:
		r.X = w - speed
	case r.X >= w:
		r.X = -r.W + speed
	}
	switch {
	case r.Y <= -r.H:
		r.Y = h - 1
	case r.Y >= h:
		r.Y = -r.H + speed
	}
	return r
}

// CanMove reports whether the actor could apply m without touching an
// obstacle. The position is wrapped before testing.
func (lv *Level) CanMove(a Mover, m move.Move) bool {
	r := a.Bounds()
	r.X += m.DX
	r.Y += m.DY
	r = WrapRect(r, a.Speed(), lv.PixelWidth(), lv.PixelHeight())
	return !lv.blocked(r, a.PassesGates())
}

// CanMoveDir tests a unit direction scaled by the actor's speed.
func (lv *Level) CanMoveDir(a Mover, dir move.Move) bool {
	return lv.CanMove(a, dir.Times(a.Speed()))
}

// CanKeepMoving tests the actor's current velocity.
func (lv *Level) CanKeepMoving(a Mover) bool {
	return lv.CanMove(a, a.Velocity())
}

// CollidesWithWall reports whether the actor currently overlaps an obstacle.
func (lv *Level) CollidesWithWall(a Mover) bool {
	return lv.blocked(a.Bounds(), a.PassesGates())
}

// blocked checks the 2x2 cells a GridSize box at r can touch.
func (lv *Level) blocked(r core.Rect, passGates bool) bool {
	gx, gy := r.X/GridSize, r.Y/GridSize
	for y := gy; y <= gy+1; y++ {
		for x := gx; x <= gx+1; x++ {
			if !lv.OnMap(x, y) {
				continue
			}
			c := lv.cells[y][x]
			if !c.IsObstacle() || (c.Kind == Gate && passGates) {
				continue
			}
			if c.Bounds(x, y).Intersects(r) {
				return true
			}
		}
	}
	return false
}

// CanSee reports whether the actor has a clear straight line along a row
// or column to grid (x, y).
func (lv *Level) CanSee(a Mover, x, y int) bool {
	r := a.Bounds()
	sx, sy := r.X/GridSize, r.Y/GridSize
	if !lv.OnMap(x, y) || !lv.OnMap(sx, sy) {
		return false
	}
	if sx != x && sy != y {
		return false
	}
	dx, dy := sign(x-sx), sign(y-sy)
	for cx, cy := sx, sy; cx != x || cy != y; cx, cy = cx+dx, cy+dy {
		if lv.isObstacle(cx, cy) {
			return false
		}
	}
	return true
}

// IsInTunnel reports whether the actor overlaps a tunnel cell.
func (lv *Level) IsInTunnel(a Mover) bool {
	r := a.Bounds()
	gx, gy := r.X/GridSize, r.Y/GridSize
	for y := gy - 1; y <= gy+1; y++ {
		for x := gx - 1; x <= gx+1; x++ {
			if lv.OnMap(x, y) && lv.cells[y][x].Kind == Tunnel && lv.cells[y][x].Bounds(x, y).Intersects(r) {
				return true
			}
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
