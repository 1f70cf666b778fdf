package pacman

import (
	"fmt"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
)

// Visual characters for rendering
const (
	DotChar       = '·'
	PelletChar    = '●'
	GateChar      = '─'
	GhostChar     = 'ᗣ'
	GhostEyesChar = '"'
	FruitChar     = '%'
	PlayerClosed  = '●'
)

// Player glyphs by facing.
var playerGlyphs = map[move.Move]rune{
	move.Right: 'ᗧ',
	move.Left:  'ᗤ',
	move.Up:    'ᗢ',
	move.Down:  'ᗜ',
}

// Death animation frames, one per dyingFrameTicks.
var dyingGlyphs = []rune{'◕', '◑', '◔', '○', '·'}

const dyingFrameTicks = 5

// Outline arms of a wall cell.
const (
	armUp = 1 << iota
	armRight
	armDown
	armLeft
)

// outlineGlyphs maps arm bits to a box-drawing rune.
var outlineGlyphs = [16]rune{
	' ', '╵', '╶', '╰', '╷', '│', '╭', '├',
	'╴', '╯', '─', '┴', '╮', '┤', '┬', '┼',
}

// halfBlocks maps (upper, lower) solidity to a block rune for compact mode.
var halfBlocks = [4]rune{' ', '▀', '▄', '█'}

// fruitColors gives each fruit its color.
var fruitColors = map[sprite.FruitKind]core.Color{
	sprite.Cherry:     core.ColorRed,
	sprite.Strawberry: core.ColorBrightRed,
	sprite.Orange:     core.ColorOrange,
	sprite.Apple:      core.ColorGreen,
}

const hudRows = 2 // one above the maze, one below

// layout places the board on the screen. Wide layouts spend two columns
// per cell; compact layouts fold two maze rows into one line.
type layout struct {
	tooSmall     bool
	cellW        int
	rowsPerLine  int
	originX      int
	originY      int
	cols, lines  int
	minW, minH   int
}

func newLayout(screenW, screenH, boardW, boardH int) layout {
	l := layout{cellW: 1, rowsPerLine: 1}
	full := boardH + hudRows
	compact := (boardH+1)/2 + hudRows
	switch {
	case screenH >= full && screenW >= 2*boardW:
		l.cellW = 2
	case screenH >= full && screenW >= boardW:
	case screenH >= compact && screenW >= 2*boardW:
		l.cellW, l.rowsPerLine = 2, 2
	case screenH >= compact && screenW >= boardW:
		l.rowsPerLine = 2
	default:
		l.tooSmall = true
	}
	l.minW, l.minH = boardW, compact
	l.cols = boardW * l.cellW
	l.lines = (boardH + l.rowsPerLine - 1) / l.rowsPerLine
	l.originX = (screenW - l.cols) / 2
	l.originY = (screenH-l.lines-hudRows)/2 + 1
	return l
}

// screenPos converts actor pixels to a screen cell.
func (l layout) screenPos(px, py int) (int, int) {
	var x int
	if l.cellW == 2 {
		x = px / (level.GridSize / 2)
	} else {
		x = (px + level.GridSize/2) / level.GridSize
	}
	y := (py + level.GridSize/2) / (level.GridSize * l.rowsPerLine)
	return l.originX + x, l.originY + y
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		g.drawCenteredBox(dst, "Cannot load mazes", g.loadErr.Error())
		return
	}
	if g.m == nil {
		return
	}

	lv := g.m.Level()
	lay := newLayout(dst.Width(), dst.Height(), lv.Width(), lv.Height())

	// Check for screen too small
	if lay.tooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", lay.minW, lay.minH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst, lay)
	if lay.rowsPerLine == 2 {
		g.renderCompactMaze(dst, lay, lv)
	} else {
		g.renderMaze(dst, lay, lv)
	}
	g.renderFruit(dst, lay)
	g.renderGhosts(dst, lay)
	g.renderPlayer(dst, lay)
	g.renderOverlay(dst, lay, lv)
}

// renderHUD draws the scores above the maze and lives and credits below.
func (g *Game) renderHUD(dst *core.Screen, lay layout) {
	top := lay.originY - 1
	score := fmt.Sprintf("1UP %d", g.m.Score())
	if g.m.IsGameOver() && g.last.Score > 0 {
		score = fmt.Sprintf("1UP %d", g.last.Score)
	}
	dst.DrawTextColored(lay.originX, top, score, core.ColorBrightWhite)
	high := fmt.Sprintf("HIGH %d", g.m.HighScore())
	dst.DrawTextColored(lay.originX+lay.cols-len(high), top, high, core.ColorBrightWhite)

	bottom := lay.originY + lay.lines
	if g.m.IsGameOver() {
		credit := fmt.Sprintf("CREDIT %d", g.m.Credits())
		dst.DrawTextColored(lay.originX, bottom, credit, core.ColorGray)
		hint := "C coin  ENTER start"
		if lay.cols >= len(credit)+len(hint)+1 {
			dst.DrawTextColored(lay.originX+lay.cols-len(hint), bottom, hint, core.ColorGray)
		}
		return
	}

	// Spare lives only.
	for i := 0; i < g.m.Lives(); i++ {
		dst.SetColored(lay.originX+i*2, bottom, playerGlyphs[move.Left], core.ColorBrightYellow)
	}
	lvl := fmt.Sprintf("L%d", g.m.LevelNumber())
	kind := sprite.FruitForLevel(g.m.LevelNumber())
	dst.DrawTextColored(lay.originX+lay.cols-len(lvl), bottom, lvl, core.ColorBrightWhite)
	dst.SetColored(lay.originX+lay.cols-len(lvl)-2, bottom, FruitChar, fruitColors[kind])
}

// renderMaze draws one screen row per grid row.
func (g *Game) renderMaze(dst *core.Screen, lay layout, lv *level.Level) {
	for y := 0; y < lv.Height(); y++ {
		for x := 0; x < lv.Width(); x++ {
			c := lv.Cell(x, y)
			sx, sy := lay.originX+x*lay.cellW, lay.originY+y
			switch c.Kind {
			case level.Wall:
				arms := wallArms(lv, x, y, c.Mask)
				if lay.cellW == 2 {
					dst.SetColored(sx, sy, outlineGlyphs[arms], core.ColorBlue)
					if arms&armRight != 0 {
						dst.SetColored(sx+1, sy, outlineGlyphs[armLeft|armRight], core.ColorBlue)
					}
				} else {
					dst.SetColored(sx, sy, outlineGlyphs[arms], core.ColorBlue)
				}
			case level.Gate:
				for i := 0; i < lay.cellW; i++ {
					dst.SetColored(sx+i, sy, GateChar, core.ColorPink)
				}
			default:
				if r, col, ok := foodGlyph(c); ok {
					dst.SetColored(sx, sy, r, col)
				}
			}
		}
	}
}

// wallArms returns the outline passing through a wall cell. The outline runs
// between solid and clear quadrants of the mask. A wall with no solid
// quadrant is a thin divider and joins its obstacle neighbors instead.
func wallArms(lv *level.Level, x, y, mask int) int {
	if mask == 0 {
		arms := 0
		if lv.IsObstacle(x, y-1) {
			arms |= armUp
		}
		if lv.IsObstacle(x+1, y) {
			arms |= armRight
		}
		if lv.IsObstacle(x, y+1) {
			arms |= armDown
		}
		if lv.IsObstacle(x-1, y) {
			arms |= armLeft
		}
		if arms == 0 {
			arms = armLeft | armRight
		}
		return arms
	}
	solid := func(bit int) bool { return mask&bit != 0 }
	arms := 0
	if solid(level.UpperLeft) != solid(level.UpperRight) {
		arms |= armUp
	}
	if solid(level.UpperRight) != solid(level.LowerRight) {
		arms |= armRight
	}
	if solid(level.LowerLeft) != solid(level.LowerRight) {
		arms |= armDown
	}
	if solid(level.UpperLeft) != solid(level.LowerLeft) {
		arms |= armLeft
	}
	return arms
}

// foodGlyph returns how a non-obstacle cell is drawn, if at all.
func foodGlyph(c level.Cell) (rune, core.Color, bool) {
	switch c.Kind {
	case level.Dot:
		if !c.Eaten && c.Visible {
			return DotChar, core.ColorWhite, true
		}
	case level.PowerPellet:
		if !c.Eaten && c.Visible {
			return PelletChar, core.ColorWhite, true
		}
	case level.Letter:
		if c.Visible && c.Rune != ' ' {
			return c.Rune, c.Color, true
		}
	}
	return 0, core.ColorDefault, false
}

// renderCompactMaze folds two grid rows into each screen row.
func (g *Game) renderCompactMaze(dst *core.Screen, lay layout, lv *level.Level) {
	for line := 0; line < lay.lines; line++ {
		for x := 0; x < lv.Width(); x++ {
			upper := lv.Cell(x, line*2)
			lower := level.Cell{}
			if line*2+1 < lv.Height() {
				lower = lv.Cell(x, line*2+1)
			}
			r, col := compactGlyph(upper, lower)
			sx, sy := lay.originX+x*lay.cellW, lay.originY+line
			for i := 0; i < lay.cellW; i++ {
				if i > 0 && !isBlock(r) {
					break
				}
				dst.SetColored(sx+i, sy, r, col)
			}
		}
	}
}

// compactGlyph merges two vertically stacked cells into one rune. Only the
// wall edge facing a corridor is drawn.
func compactGlyph(upper, lower level.Cell) (rune, core.Color) {
	edge := func(c level.Cell) bool { return c.IsObstacle() && c.Mask != level.Solid }
	if edge(upper) || edge(lower) {
		idx := 0
		if edge(upper) {
			idx |= 1
		}
		if edge(lower) {
			idx |= 2
		}
		col := core.ColorBlue
		if upper.Kind == level.Gate || lower.Kind == level.Gate {
			col = core.ColorPink
		}
		return halfBlocks[idx], col
	}
	// Letters win over food.
	for _, c := range [2]level.Cell{upper, lower} {
		if c.Kind == level.Letter && c.Visible {
			return c.Rune, c.Color
		}
	}
	for _, c := range [2]level.Cell{upper, lower} {
		if c.Kind == level.PowerPellet && !c.Eaten && c.Visible {
			return PelletChar, core.ColorWhite
		}
	}
	up := upper.Kind == level.Dot && !upper.Eaten
	down := lower.Kind == level.Dot && !lower.Eaten
	switch {
	case up && down:
		return ':', core.ColorWhite
	case up:
		return '˙', core.ColorWhite
	case down:
		return '.', core.ColorWhite
	}
	return ' ', core.ColorDefault
}

func isBlock(r rune) bool {
	return r == '▀' || r == '▄' || r == '█'
}

// renderFruit draws the bonus item, or its value just after it was eaten.
func (g *Game) renderFruit(dst *core.Screen, lay layout) {
	f := g.m.Fruit()
	if f == nil || !f.Visible() {
		return
	}
	x, y := lay.screenPos(f.X(), f.Y())
	if f.IsEaten() {
		if f.WasJustEaten() {
			dst.DrawTextColored(x, y, fmt.Sprint(f.Kind().Score()), core.ColorPink)
		}
		return
	}
	col, ok := fruitColors[f.Kind()]
	if !ok {
		col = core.ColorRed
	}
	dst.SetColored(x, y, FruitChar, col)
}

// renderGhosts draws every visible ghost.
func (g *Game) renderGhosts(dst *core.Screen, lay layout) {
	for _, gh := range g.m.Ghosts() {
		if !gh.Visible() {
			continue
		}
		x, y := lay.screenPos(gh.X(), gh.Y())
		switch {
		case gh.WasJustEaten():
			dst.DrawTextColored(x, y, fmt.Sprint(g.m.LastGhostScore()), core.ColorCyan)
		case gh.IsEaten():
			dst.SetColored(x, y, GhostEyesChar, gh.Color())
		default:
			dst.SetColored(x, y, GhostChar, gh.Color())
		}
	}
}

// renderPlayer draws Pac-Man facing his last move, chomping while he eats.
func (g *Game) renderPlayer(dst *core.Screen, lay layout) {
	p := g.m.Player()
	if p == nil || !p.Visible() {
		return
	}
	x, y := lay.screenPos(p.X(), p.Y())
	if !p.IsAlive() {
		frame := p.SinceKilled() / dyingFrameTicks
		if frame < len(dyingGlyphs) {
			dst.SetColored(x, y, dyingGlyphs[frame], core.ColorBrightYellow)
		}
		return
	}

	facing := p.LastMove().Normalize()
	if facing.IsNeutral() {
		facing = p.Velocity().Normalize()
	}
	r, ok := playerGlyphs[facing]
	if !ok {
		r = playerGlyphs[move.Left]
	}
	if p.IsEating() && g.m.Ticks()/4%2 == 1 {
		r = PlayerClosed
	}
	dst.SetColored(x, y, r, core.ColorBrightYellow)
}

// renderOverlay draws READY! at the start of a life and the pause box.
func (g *Game) renderOverlay(dst *core.Screen, lay layout, lv *level.Level) {
	row := lay.originY + lv.Height()*17/31/lay.rowsPerLine
	switch {
	case g.m.IsPaused():
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.m.JustStarted():
		text := "READY!"
		dst.DrawTextColored(lay.originX+(lay.cols-len(text))/2, row, text, core.ColorBrightYellow)
	}
}

// drawCenteredBox draws a box with centered text.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	if limit := w - 4; len(subtitle) > limit && limit > 3 {
		subtitle = subtitle[:limit-3] + "..."
	}
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
