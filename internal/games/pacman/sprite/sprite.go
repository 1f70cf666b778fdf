// Package sprite implements the actors of the maze: the player, the
// ghosts with their mode state machine, and the bonus fruit.
package sprite

import (
	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// TicksPerSecond is the simulation rate every timer below is expressed in.
const TicksPerSecond = 30

// Size is the default edge length of an actor in pixels.
const Size = level.GridSize

// Status is the mode an actor is in.
type Status int

const (
	Normal Status = iota
	Eaten
	Scared
	Caged
	LeavingCage
	Zombie
	numStatuses
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Eaten:
		return "Eaten"
	case Scared:
		return "Scared"
	case Caged:
		return "Caged"
	case LeavingCage:
		return "LeavingCage"
	case Zombie:
		return "Zombie"
	default:
		return "Unknown"
	}
}

// Bounded is anything with a pixel rectangle.
type Bounded interface {
	Bounds() core.Rect
}

// Sprite is the state every actor shares: where it is, where it started,
// whether it is drawn, and its status.
type Sprite struct {
	rect           core.Rect
	startX, startY int
	visible        bool
	status         Status
}

func newSprite(x, y int) Sprite {
	return Sprite{rect: core.NewRect(x, y, Size, Size), startX: x, startY: y, visible: true}
}

// Bounds returns the pixel rectangle.
func (s *Sprite) Bounds() core.Rect { return s.rect }

// X returns the left edge in pixels.
func (s *Sprite) X() int { return s.rect.X }

// Y returns the top edge in pixels.
func (s *Sprite) Y() int { return s.rect.Y }

// SetPosition moves the sprite without recording a move.
func (s *Sprite) SetPosition(x, y int) {
	s.rect.X, s.rect.Y = x, y
}

// SetStart changes the spawn position.
func (s *Sprite) SetStart(x, y int) {
	s.startX, s.startY = x, y
}

// StartPosition returns the spawn position.
func (s *Sprite) StartPosition() (int, int) { return s.startX, s.startY }

// GridX returns the grid column of the left edge.
func (s *Sprite) GridX() int { return s.rect.X / level.GridSize }

// GridY returns the grid row of the top edge.
func (s *Sprite) GridY() int { return s.rect.Y / level.GridSize }

// AtJuncture reports whether the sprite sits exactly on a grid cell.
func (s *Sprite) AtJuncture() bool {
	return s.rect.X%level.GridSize == 0 && s.rect.Y%level.GridSize == 0
}

// CollidesWith reports whether the two rectangles overlap.
func (s *Sprite) CollidesWith(o Bounded) bool {
	return s.rect.Intersects(o.Bounds())
}

// Visible reports whether the sprite is drawn.
func (s *Sprite) Visible() bool { return s.visible }

// SetVisible shows or hides the sprite.
func (s *Sprite) SetVisible(v bool) { s.visible = v }

// Status returns the current status.
func (s *Sprite) Status() Status { return s.status }

func (s *Sprite) setStatus(st Status) {
	s.status = st
	if st == Normal {
		s.visible = true
	}
}

// Mover is a sprite with a velocity and a queue of forced moves.
type Mover struct {
	Sprite
	speed    int
	velocity move.Move
	last     move.Move
	queue    move.List
}

func newMover(x, y, speed int) Mover {
	return Mover{Sprite: newSprite(x, y), speed: speed}
}

// Speed returns pixels per tick.
func (m *Mover) Speed() int { return m.speed }

// SetSpeed changes the speed and snaps the position to a multiple of it,
// so the sprite keeps landing on grid junctures.
func (m *Mover) SetSpeed(n int) {
	m.speed = n
	if n != 0 {
		m.rect.X = m.rect.X / n * n
		m.rect.Y = m.rect.Y / n * n
	}
}

// Velocity returns the move the sprite intends to keep making.
func (m *Mover) Velocity() move.Move { return m.velocity }

// SetVelocity replaces the intended move.
func (m *Mover) SetVelocity(v move.Move) { m.velocity = v }

// LastMove returns the move most recently executed by Go.
func (m *Mover) LastMove() move.Move { return m.last }

// Go translates the sprite by mv unconditionally and records it as the
// last move. The velocity is not touched.
func (m *Mover) Go(mv move.Move) {
	m.rect.X += mv.DX
	m.rect.Y += mv.DY
	m.last = mv
}

// Wrap brings a sprite that has left the w x h board back in on the
// opposite side.
func (m *Mover) Wrap(w, h int) {
	m.rect = level.WrapRect(m.rect, m.speed, w, h)
}

// Stop clears the velocity.
func (m *Mover) Stop() { m.velocity = move.Neutral }

// IsMoving reports whether the velocity is non-zero.
func (m *Mover) IsMoving() bool { return !m.velocity.IsNeutral() }

// Queue returns the forced-move queue.
func (m *Mover) Queue() *move.List { return &m.queue }

// HasQueuedMoves reports whether forced moves are pending.
func (m *Mover) HasQueuedMoves() bool { return !m.queue.Empty() }

// PopQueued takes the next forced move and makes it the velocity.
func (m *Mover) PopQueued() (move.Move, bool) {
	mv, ok := m.queue.Pop()
	if ok {
		m.velocity = mv
	}
	return mv, ok
}

// KillMoves drops all forced moves.
func (m *Mover) KillMoves() { m.queue.Clear() }

// PassesGates reports whether gates are open to the sprite. Only ghosts
// in some modes may cross them.
func (m *Mover) PassesGates() bool { return false }

// ReturnToStart puts the sprite back at its spawn point and stops it.
func (m *Mover) ReturnToStart() {
	m.SetPosition(m.startX, m.startY)
	m.Stop()
}

// edible tracks how long ago an actor was eaten.
type edible struct {
	score      int
	sinceEaten int
}

// Score returns the points awarded for eating the actor.
func (e *edible) Score() int { return e.score }

// SinceEaten returns the ticks spent in the eaten state.
func (e *edible) SinceEaten() int { return e.sinceEaten }

func (e *edible) tick(eaten bool) {
	if eaten {
		e.sinceEaten++
	}
}
