// Package move provides the integer displacement value used by every
// actor in the maze, plus a FIFO of forced moves for scripted playback.
package move

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a displacement in pixels. Moves are plain values and compare with ==.
type Move struct {
	DX, DY int
}

// Cardinal directions and their common multiples.
var (
	Neutral = Move{0, 0}

	Left  = Move{-1, 0}
	Right = Move{1, 0}
	Up    = Move{0, -1}
	Down  = Move{0, 1}

	Left2  = Move{-2, 0}
	Right2 = Move{2, 0}
	Up2    = Move{0, -2}
	Down2  = Move{0, 2}

	Left4  = Move{-4, 0}
	Right4 = Move{4, 0}
	Up4    = Move{0, -4}
	Down4  = Move{0, 4}
)

// Cardinals lists the unit directions in the order strategies consider them.
var Cardinals = [4]Move{Left, Right, Up, Down}

// New creates a move. It never fails.
func New(dx, dy int) Move {
	return Move{DX: dx, DY: dy}
}

// Plus returns m + o.
func (m Move) Plus(o Move) Move {
	return Move{m.DX + o.DX, m.DY + o.DY}
}

// Times scales both components by n.
func (m Move) Times(n int) Move {
	return Move{m.DX * n, m.DY * n}
}

// Reverse returns the opposite move.
func (m Move) Reverse() Move {
	return m.Times(-1)
}

// Magnitude is the larger absolute component.
func (m Move) Magnitude() int {
	return max(abs(m.DX), abs(m.DY))
}

// IsNeutral reports whether m is the zero move.
func (m Move) IsNeutral() bool {
	return m == Neutral
}

// Crop clamps each component to [-f, f].
func (m Move) Crop(f int) Move {
	return Move{crop(m.DX, f), crop(m.DY, f)}
}

// Normalize crops to unit length on each axis.
func (m Move) Normalize() Move {
	return m.Crop(1)
}

// SameDirection reports whether both components have matching signs.
func (m Move) SameDirection(o Move) bool {
	return sign(m.DX) == sign(o.DX) && sign(m.DY) == sign(o.DY)
}

// IsOpposite reports whether o is exactly -m.
func (m Move) IsOpposite(o Move) bool {
	return m.Reverse() == o
}

// IsOppositeDirection compares the normalized moves, ignoring magnitude.
func (m Move) IsOppositeDirection(o Move) bool {
	return m.Normalize().IsOpposite(o.Normalize())
}

// IsCardinal reports whether m points along exactly one axis.
func (m Move) IsCardinal() bool {
	return (m.DX == 0) != (m.DY == 0)
}

// RotateLeft turns a cardinal move a quarter turn counter-clockwise on
// screen (left becomes down), keeping its magnitude. Non-cardinal moves
// are rejected and produce Neutral.
func (m Move) RotateLeft() Move {
	if !m.IsCardinal() {
		return Neutral
	}
	mag := m.Magnitude()
	switch {
	case m.SameDirection(Left):
		return Down.Times(mag)
	case m.SameDirection(Right):
		return Up.Times(mag)
	case m.SameDirection(Up):
		return Left.Times(mag)
	default:
		return Right.Times(mag)
	}
}

// RotateRight is the reverse of RotateLeft.
func (m Move) RotateRight() Move {
	return m.RotateLeft().Reverse()
}

// String formats the move as "(dx, dy)".
func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.DX, m.DY)
}

// Parse reads a move in the "(dx, dy)" form written by String.
// The space after the comma is optional.
func Parse(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Neutral, fmt.Errorf("invalid move %q: missing parentheses", s)
	}
	inner := s[1 : len(s)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return Neutral, fmt.Errorf("invalid move %q: expected two components", s)
	}
	dx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Neutral, fmt.Errorf("invalid move %q: %w", s, err)
	}
	dy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Neutral, fmt.Errorf("invalid move %q: %w", s, err)
	}
	return Move{dx, dy}, nil
}

func crop(v, f int) int {
	if v > f {
		return f
	}
	if v < -f {
		return -f
	}
	return v
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
