package strategy

import (
	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

// Prisoner is a ghost as seen by the cage strategy.
type Prisoner interface {
	Actor
	Caged() bool
	LeavingCage() bool
	// ExitCage ends the cage phase and hands control back to the ghost's
	// normal behavior.
	ExitCage()
}

// Cage bobs a caged ghost up and down, then walks it out through the
// gate along a shortest path once it is allowed to leave.
type Cage struct {
	actor   Prisoner
	goingUp bool
	path    move.List
	planned bool
}

// NewCage creates a cage strategy. goingUp sets the initial bobbing
// direction so neighboring ghosts move out of step.
func NewCage(a Prisoner, goingUp bool) *Cage {
	return &Cage{actor: a, goingUp: goingUp}
}

// Move implements Strategy.
func (s *Cage) Move(lv *level.Level, _ Target) move.Move {
	a := s.actor
	switch {
	case a.Caged():
		s.path.Clear()
		s.planned = false
		return s.bob(lv)
	case a.LeavingCage():
		if !s.planned {
			s.path = *EscapePath(lv, a)
			s.planned = true
		}
		if m, ok := s.path.Pop(); ok {
			return m
		}
		s.planned = false
		a.ExitCage()
		return move.Neutral
	default:
		a.ExitCage()
		return move.Neutral
	}
}

func (s *Cage) bob(lv *level.Level) move.Move {
	a := s.actor
	r := a.Bounds()
	speed := a.Speed()
	up, down := move.Up.Times(speed), move.Down.Times(speed)
	if s.goingUp {
		if lv.CanMove(a, up) && s.rowOpen(lv, r, r.Y-speed) {
			return up
		}
		s.goingUp = false
		return down
	}
	if lv.CanMove(a, down) && s.rowOpen(lv, r, r.Y+speed+r.H-1) {
		return down
	}
	s.goingUp = true
	return up
}

// rowOpen reports whether the pixel row py is free of walls and gates
// across the actor's width. Bobbing ghosts never push into the gate.
func (s *Cage) rowOpen(lv *level.Level, r core.Rect, py int) bool {
	if py < 0 {
		return false
	}
	gy := py / level.GridSize
	for _, px := range []int{r.X, r.X + r.W - 1} {
		gx := px / level.GridSize
		if !lv.OnMap(gx, gy) || lv.IsObstacle(gx, gy) {
			return false
		}
	}
	return true
}

// EscapePath returns the moves that take a from the cage to the first open
// cell beyond a gate: a snap onto the grid lattice, then a breadth-first
// route through the gate. The path is empty when no exit exists.
func EscapePath(lv *level.Level, a Actor) *move.List {
	r := a.Bounds()
	speed := a.Speed()
	gx, gy := gridOf(r)
	path := MoveList(speed, r.X, r.Y, gx*level.GridSize, gy*level.GridSize)
	if !lv.OnMap(gx, gy) || speed <= 0 {
		return path
	}

	type node struct {
		x, y   int
		passed bool
	}
	type link struct {
		from node
		dir  move.Move
	}
	order := [4]move.Move{move.Up, move.Right, move.Left, move.Down}

	start := node{gx, gy, lv.IsGate(gx, gy)}
	prev := map[node]link{start: {}}
	queue := []node{start}
	var goal *node
	for len(queue) > 0 && goal == nil {
		n := queue[0]
		queue = queue[1:]
		for _, d := range order {
			nx, ny := n.x+d.DX, n.y+d.DY
			if !lv.OnMap(nx, ny) || lv.IsWall(nx, ny) {
				continue
			}
			next := node{nx, ny, n.passed || lv.IsGate(nx, ny)}
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = link{from: n, dir: d}
			if next.passed && !lv.IsGate(nx, ny) {
				goal = &next
				break
			}
			queue = append(queue, next)
		}
	}
	if goal == nil {
		return path
	}

	var dirs []move.Move
	for n := *goal; n != start; n = prev[n].from {
		dirs = append(dirs, prev[n].dir)
	}
	steps := level.GridSize / speed
	for i := len(dirs) - 1; i >= 0; i-- {
		path.Add(dirs[i].Times(speed), steps)
	}
	return path
}
