package level

import "github.com/vovakirdan/pacman-arcade/internal/core"

// Notice is something that happened while the player ate.
type Notice int

const (
	NoticeDotEaten Notice = iota
	NoticePelletEaten
	NoticeHalfEaten
	NoticeThreeQuartersEaten
	NoticeCleared
)

// Eater is the player as seen by CheckDotsEaten.
type Eater interface {
	Bounds() core.Rect
	ChompDot()
}

// Sink receives the consequences of eating. The model implements it.
type Sink interface {
	// InProgress reports whether eating should score.
	InProgress() bool
	AddToScore(points int)
	// ChompPellet scares the ghosts.
	ChompPellet()
	Notice(n Notice)
}

// CheckDotsEaten eats every edible cell around the player that its bounds
// overlap. Returns the number of cells eaten.
func (lv *Level) CheckDotsEaten(p Eater, sink Sink) int {
	r := p.Bounds()
	gx, gy := r.X/GridSize, r.Y/GridSize
	eaten := 0

	for x := gx - 1; x <= gx+1; x++ {
		for y := gy - 1; y <= gy+1; y++ {
			if !lv.OnMap(x, y) {
				continue
			}
			c := &lv.cells[y][x]
			if !c.IsEdible() || c.Eaten || !(c.Visible || c.Kind == PowerPellet) {
				continue
			}
			if !c.Bounds(x, y).Intersects(r) {
				continue
			}

			if sink.InProgress() {
				sink.AddToScore(c.Score())
			}
			c.Eaten = true
			c.Visible = false
			eaten++
			p.ChompDot()

			cleared := false
			if lv.remaining > 0 {
				lv.remaining--
				cleared = lv.remaining == 0
			}
			if !lv.threeSeen && lv.total > 0 && lv.remaining*4 <= lv.total {
				lv.threeSeen = true
				sink.Notice(NoticeThreeQuartersEaten)
			}
			if !lv.halfSeen && lv.total > 0 && lv.remaining*2 <= lv.total {
				lv.halfSeen = true
				sink.Notice(NoticeHalfEaten)
			}
			if c.Kind == PowerPellet {
				sink.ChompPellet()
			}
			if cleared {
				sink.Notice(NoticeCleared)
			}
			if c.Kind == PowerPellet {
				sink.Notice(NoticePelletEaten)
			} else {
				sink.Notice(NoticeDotEaten)
			}
		}
	}
	return eaten
}
