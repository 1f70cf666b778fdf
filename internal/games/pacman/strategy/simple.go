package strategy

import (
	"math/rand"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// Random keeps going straight and picks a random legal direction at each
// juncture.
type Random struct {
	actor Actor
	rng   *rand.Rand
}

// NewRandom creates a random strategy for a.
func NewRandom(a Actor, rng *rand.Rand) *Random {
	return &Random{actor: a, rng: rng}
}

// Move implements Strategy.
func (s *Random) Move(lv *level.Level, _ Target) move.Move {
	cur := s.actor.Velocity()
	if !s.actor.AtJuncture() && !cur.IsNeutral() {
		return cur
	}
	if legal := legalMoves(lv, s.actor); len(legal) > 0 {
		return pick(s.rng, legal)
	}
	return cur
}

// Turn goes straight between junctures. At a juncture it chooses among
// straight, left and right, and only reverses when nothing else is legal.
type Turn struct {
	actor Actor
	rng   *rand.Rand
}

// NewTurn creates a turn strategy for a.
func NewTurn(a Actor, rng *rand.Rand) *Turn {
	return &Turn{actor: a, rng: rng}
}

// Move implements Strategy.
func (s *Turn) Move(lv *level.Level, _ Target) move.Move {
	a := s.actor
	cur := a.Velocity()
	if cur.IsNeutral() {
		return pick(s.rng, legalMoves(lv, a))
	}
	cur = scaled(cur, a.Speed())
	if !a.AtJuncture() && lv.CanMove(a, cur) {
		return cur
	}

	var options []move.Move
	for _, m := range []move.Move{cur, cur.RotateLeft(), cur.RotateRight()} {
		if lv.CanMove(a, m) {
			options = append(options, m)
		}
	}
	if len(options) == 0 && lv.CanMove(a, cur.Reverse()) {
		options = append(options, cur.Reverse())
	}
	return pick(s.rng, options)
}

// Seeker greedily closes the larger of the two axis distances to the
// target, falling back to the other axis.
type Seeker struct {
	actor Actor
}

// NewSeeker creates a seeker strategy for a.
func NewSeeker(a Actor) *Seeker {
	return &Seeker{actor: a}
}

// Move implements Strategy.
func (s *Seeker) Move(lv *level.Level, target Target) move.Move {
	a := s.actor
	self, to := a.Bounds(), target.Bounds()
	dx, dy := self.X-to.X, self.Y-to.Y

	horizontal := func() move.Move {
		switch {
		case dx > 0 && lv.CanMoveDir(a, move.Left):
			return move.Left
		case dx < 0 && lv.CanMoveDir(a, move.Right):
			return move.Right
		}
		return move.Neutral
	}
	vertical := func() move.Move {
		switch {
		case dy > 0 && lv.CanMoveDir(a, move.Up):
			return move.Up
		case dy < 0 && lv.CanMoveDir(a, move.Down):
			return move.Down
		}
		return move.Neutral
	}

	first, second := horizontal, vertical
	if abs(dx) < abs(dy) {
		first, second = vertical, horizontal
	}
	m := first()
	if m.IsNeutral() {
		m = second()
	}
	return m.Times(a.Speed())
}

// LineOfSight chases the target while it is in plain view and wanders
// like Turn otherwise.
type LineOfSight struct {
	actor Actor
	turn  *Turn
	seek  *Seeker
}

// NewLineOfSight creates a line-of-sight strategy for a.
func NewLineOfSight(a Actor, rng *rand.Rand) *LineOfSight {
	return &LineOfSight{actor: a, turn: NewTurn(a, rng), seek: NewSeeker(a)}
}

// Move implements Strategy.
func (s *LineOfSight) Move(lv *level.Level, target Target) move.Move {
	tx, ty := gridOf(target.Bounds())
	if lv.CanSee(s.actor, tx, ty) {
		return s.seek.Move(lv, target)
	}
	return s.turn.Move(lv, target)
}

// Scared flees: it follows Turn, except that at a juncture where Turn
// would head the same way as a seeker it picks a random direction.
type Scared struct {
	actor  Actor
	turn   *Turn
	seek   *Seeker
	random *Random
}

// NewScared creates a scared strategy for a.
func NewScared(a Actor, rng *rand.Rand) *Scared {
	return &Scared{actor: a, turn: NewTurn(a, rng), seek: NewSeeker(a), random: NewRandom(a, rng)}
}

// Move implements Strategy.
func (s *Scared) Move(lv *level.Level, target Target) move.Move {
	turnMove := s.turn.Move(lv, target)
	seekMove := s.seek.Move(lv, target)
	if s.actor.AtJuncture() && turnMove == seekMove {
		return s.random.Move(lv, target)
	}
	return turnMove
}

// Continue keeps repeating the last executed move while it stays legal.
type Continue struct {
	actor Actor
}

// NewContinue creates a continue strategy for a.
func NewContinue(a Actor) *Continue {
	return &Continue{actor: a}
}

// Move implements Strategy.
func (s *Continue) Move(lv *level.Level, _ Target) move.Move {
	if lv.CanKeepMoving(s.actor) {
		return s.actor.LastMove()
	}
	return move.Neutral
}
