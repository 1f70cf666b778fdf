package level

import "github.com/vovakirdan/pacman-arcade/internal/core"

// GridSize is the edge length of one grid cell in pixels.
const GridSize = 8

// Dot geometry and scoring.
const (
	DotSize     = 2
	DotScore    = 10
	PelletScore = 50
)

// Kind identifies what occupies a grid cell.
type Kind int

const (
	Empty Kind = iota
	Wall
	Gate
	Dot
	PowerPellet
	Tunnel
	Letter
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Gate:
		return "Gate"
	case Dot:
		return "Dot"
	case PowerPellet:
		return "PowerPellet"
	case Tunnel:
		return "Tunnel"
	case Letter:
		return "Letter"
	default:
		return "Unknown"
	}
}

// Cell is one grid square. Walls and gates carry a corner mask, letters a
// rune and color, edible cells an eaten flag.
type Cell struct {
	Kind    Kind
	Visible bool
	Eaten   bool
	// Mask has bit 1 set when the upper-left quadrant is solid, 2 upper-right,
	// 4 lower-left, 8 lower-right.
	Mask  int
	Rune  rune
	Color core.Color
}

// NewCell returns a visible cell of the given kind.
func NewCell(k Kind) Cell {
	return Cell{Kind: k, Visible: k != Empty}
}

// NewLetter returns a text annotation cell.
func NewLetter(r rune, color core.Color) Cell {
	return Cell{Kind: Letter, Visible: true, Rune: r, Color: color}
}

// IsObstacle reports whether the cell can block movement.
func (c Cell) IsObstacle() bool {
	return c.Kind == Wall || c.Kind == Gate
}

// IsEdible reports whether the player can eat the cell.
func (c Cell) IsEdible() bool {
	return c.Kind == Dot || c.Kind == PowerPellet
}

// Score is the value of an edible cell.
func (c Cell) Score() int {
	switch c.Kind {
	case Dot:
		return DotScore
	case PowerPellet:
		return PelletScore
	}
	return 0
}

// Bounds returns the pixel rectangle occupied by the cell at grid (x, y).
// Dots are small squares centered in their cell.
func (c Cell) Bounds(x, y int) core.Rect {
	if c.Kind == Dot {
		off := (GridSize - DotSize) / 2
		return core.NewRect(x*GridSize+off, y*GridSize+off, DotSize, DotSize)
	}
	return core.NewRect(x*GridSize, y*GridSize, GridSize, GridSize)
}
