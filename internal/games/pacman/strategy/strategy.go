// Package strategy contains the movement policies ghosts and fruit use to
// pick a move each tick. Every policy instance belongs to exactly one actor
// and may keep private state between calls.
package strategy

import (
	"math/rand"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// Strategy produces the move an actor wants to make this tick.
type Strategy interface {
	Move(lv *level.Level, target Target) move.Move
}

// DeathAware is implemented by strategies that reset when the player dies.
type DeathAware interface {
	PlayerDied()
}

// Target is whatever the actor is chasing or fleeing.
type Target interface {
	Bounds() core.Rect
}

// Actor is the moving sprite a strategy steers.
type Actor interface {
	level.Mover
	LastMove() move.Move
	AtJuncture() bool
}

// legalMoves returns the cardinal directions, scaled by the actor's speed,
// that the level allows from the current position.
func legalMoves(lv *level.Level, a Actor) []move.Move {
	var out []move.Move
	for _, d := range move.Cardinals {
		m := d.Times(a.Speed())
		if lv.CanMove(a, m) {
			out = append(out, m)
		}
	}
	return out
}

func pick(rng *rand.Rand, moves []move.Move) move.Move {
	if len(moves) == 0 {
		return move.Neutral
	}
	return moves[rng.Intn(len(moves))]
}

// scaled rescales a move to the actor's speed along the same direction.
func scaled(m move.Move, speed int) move.Move {
	if m.Magnitude() == speed {
		return m
	}
	return m.Normalize().Times(speed)
}

// gridOf returns the grid cell containing the top-left corner of r.
func gridOf(r core.Rect) (int, int) {
	return r.X / level.GridSize, r.Y / level.GridSize
}

// MoveList returns the moves that carry a sprite moving at speed from
// (fromX, fromY) to (toX, toY): horizontal steps first, then vertical,
// each step at most speed pixels.
func MoveList(speed, fromX, fromY, toX, toY int) *move.List {
	l := &move.List{}
	if speed <= 0 {
		return l
	}
	for x := fromX; x != toX; {
		step := min(speed, abs(toX-x))
		if toX < x {
			step = -step
		}
		l.Push(move.New(step, 0))
		x += step
	}
	for y := fromY; y != toY; {
		step := min(speed, abs(toY-y))
		if toY < y {
			step = -step
		}
		l.Push(move.New(0, step))
		y += step
	}
	return l
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
