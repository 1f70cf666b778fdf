package strategy

import (
	"math/rand"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// chaseOrder breaks ties between equally short routes.
var chaseOrder = [4]move.Move{move.Up, move.Left, move.Down, move.Right}

const unreachable = -1

// Smart follows a shortest path to the target. Distances come from a
// breadth-first search outward from the target cell over the cells the
// actor may enter, so tunnels and gate access are respected.
type Smart struct {
	actor Actor
	dist  [][]int
}

// NewSmart creates a shortest-path chase strategy for a.
func NewSmart(a Actor) *Smart {
	return &Smart{actor: a}
}

// Move implements Strategy.
func (s *Smart) Move(lv *level.Level, target Target) move.Move {
	a := s.actor
	self, to := a.Bounds(), target.Bounds()
	sx, sy := gridOf(self)
	tx, ty := gridOf(to)
	speed := a.Speed()

	// Same cell: close the remaining pixels directly.
	if sx == tx && sy == ty {
		if dx := to.X - self.X; dx != 0 {
			return move.New(dx, 0).Crop(speed)
		}
		if dy := to.Y - self.Y; dy != 0 {
			return move.New(0, dy).Crop(speed)
		}
		return move.Neutral
	}

	if !a.AtJuncture() {
		cur := a.Velocity()
		if !cur.IsNeutral() && lv.CanMove(a, scaled(cur, speed)) {
			return scaled(cur, speed)
		}
		// Stranded between cells: slide back onto the lattice.
		if off := self.X % level.GridSize; off != 0 {
			return move.New(-off, 0).Crop(speed)
		}
		return move.New(0, -(self.Y % level.GridSize)).Crop(speed)
	}

	if !lv.OnMap(tx, ty) {
		return NewSeeker(a).Move(lv, target)
	}
	s.fill(lv, tx, ty)

	best, bestDist := move.Neutral, unreachable
	fallback := move.Neutral
	for _, d := range chaseOrder {
		m := d.Times(speed)
		if !lv.CanMove(a, m) {
			continue
		}
		if fallback.IsNeutral() {
			fallback = m
		}
		nx, ny := wrapCell(lv, sx+d.DX, sy+d.DY)
		if nd := s.dist[ny][nx]; nd != unreachable && (bestDist == unreachable || nd < bestDist) {
			best, bestDist = m, nd
		}
	}
	if best.IsNeutral() {
		return fallback
	}
	return best
}

// fill computes the distance of every cell from (tx, ty).
func (s *Smart) fill(lv *level.Level, tx, ty int) {
	w, h := lv.Width(), lv.Height()
	if len(s.dist) != h || (h > 0 && len(s.dist[0]) != w) {
		s.dist = make([][]int, h)
		for y := range s.dist {
			s.dist[y] = make([]int, w)
		}
	}
	for y := range s.dist {
		for x := range s.dist[y] {
			s.dist[y][x] = unreachable
		}
	}

	gates := s.actor.PassesGates()
	passable := func(x, y int) bool {
		c := lv.Cell(x, y)
		return c.Kind != level.Wall && (c.Kind != level.Gate || gates)
	}

	type cell struct{ x, y int }
	queue := []cell{{tx, ty}}
	s.dist[ty][tx] = 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range chaseOrder {
			nx, ny := wrapCell(lv, p.x+d.DX, p.y+d.DY)
			if s.dist[ny][nx] != unreachable || !passable(nx, ny) {
				continue
			}
			s.dist[ny][nx] = s.dist[p.y][p.x] + 1
			queue = append(queue, cell{nx, ny})
		}
	}
}

func wrapCell(lv *level.Level, x, y int) (int, int) {
	w, h := lv.Width(), lv.Height()
	return (x%w + w) % w, (y%h + h) % h
}

// SquaresAhead is how far in front of the player SmartAhead aims.
const SquaresAhead = 8

// SmartAhead chases a point in front of the target, found by letting a
// scout wander from the target's position for a few squares.
type SmartAhead struct {
	smart *Smart
	rng   *rand.Rand
}

// NewSmartAhead creates an ambushing chase strategy for a.
func NewSmartAhead(a Actor, rng *rand.Rand) *SmartAhead {
	return &SmartAhead{smart: NewSmart(a), rng: rng}
}

// Move implements Strategy.
func (s *SmartAhead) Move(lv *level.Level, target Target) move.Move {
	p := &scout{r: target.Bounds(), speed: 2}
	if v, ok := target.(interface{ Velocity() move.Move }); ok {
		p.v = v.Velocity().Normalize().Times(p.speed)
	}
	turn := NewTurn(p, s.rng)
	for i := 0; i < SquaresAhead*level.GridSize/p.speed; i++ {
		m := turn.Move(lv, nil)
		if !lv.CanMove(p, m) {
			break
		}
		p.step(m, lv)
	}
	return s.smart.Move(lv, p)
}

// scout is a throwaway mover used to look ahead along the maze.
type scout struct {
	r     core.Rect
	v     move.Move
	speed int
}

func (p *scout) Bounds() core.Rect   { return p.r }
func (p *scout) Velocity() move.Move { return p.v }
func (p *scout) Speed() int          { return p.speed }
func (p *scout) PassesGates() bool   { return false }
func (p *scout) LastMove() move.Move { return p.v }

func (p *scout) AtJuncture() bool {
	return p.r.X%level.GridSize == 0 && p.r.Y%level.GridSize == 0
}

func (p *scout) step(m move.Move, lv *level.Level) {
	p.r.X += m.DX
	p.r.Y += m.DY
	p.r = level.WrapRect(p.r, p.speed, lv.PixelWidth(), lv.PixelHeight())
	p.v = m
}

// Respawner is an actor that knows where it comes back to life.
type Respawner interface {
	Actor
	RespawnPosition() (x, y int)
}

// Revive steers an eaten ghost back to its respawn point.
type Revive struct {
	actor Respawner
	smart *Smart
}

// NewRevive creates a revive strategy for a.
func NewRevive(a Respawner) *Revive {
	return &Revive{actor: a, smart: NewSmart(a)}
}

// Move implements Strategy.
func (s *Revive) Move(lv *level.Level, _ Target) move.Move {
	x, y := s.actor.RespawnPosition()
	b := s.actor.Bounds()
	return s.smart.Move(lv, spot{core.NewRect(x, y, b.W, b.H)})
}

// spot is a fixed target.
type spot struct{ r core.Rect }

func (s spot) Bounds() core.Rect { return s.r }
