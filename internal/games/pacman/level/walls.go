package level

import "fmt"

// Corner bits of a wall mask.
const (
	UpperLeft  = 1
	UpperRight = 2
	LowerLeft  = 4
	LowerRight = 8
	Solid      = UpperLeft | UpperRight | LowerLeft | LowerRight
)

// computeMasks flood fills the open area and derives the corner mask of
// every wall and gate from its reachable neighbors.
func (lv *Level) computeMasks() error {
	reach := lv.reachable()
	open := func(x, y int) bool {
		return lv.OnMap(x, y) && reach[y][x]
	}

	for y := 0; y < lv.height; y++ {
		for x := 0; x < lv.width; x++ {
			c := &lv.cells[y][x]
			if !c.IsObstacle() {
				continue
			}
			mask := Solid
			if x > 0 && open(x-1, y) {
				mask &^= UpperLeft | LowerLeft
			}
			if x < lv.width-1 && open(x+1, y) {
				mask &^= UpperRight | LowerRight
			}
			if y > 0 && open(x, y-1) {
				mask &^= UpperLeft | UpperRight
			}
			if y < lv.height-1 && open(x, y+1) {
				mask &^= LowerLeft | LowerRight
			}
			if mask == Solid {
				if open(x-1, y-1) {
					mask &^= UpperLeft
				}
				if open(x+1, y-1) {
					mask &^= UpperRight
				}
				if open(x-1, y+1) {
					mask &^= LowerLeft
				}
				if open(x+1, y+1) {
					mask &^= LowerRight
				}
			}
			if mask < 0 || mask > Solid {
				return fmt.Errorf("level %s: wall mask %d at (%d, %d) out of range", lv.name, mask, x, y)
			}
			c.Mask = mask
		}
	}
	return nil
}

// reachable marks every non-obstacle cell connected to the seed cell.
// The seed is the player spawn if there is one, otherwise the first open
// cell in row-major order.
func (lv *Level) reachable() [][]bool {
	reach := make([][]bool, lv.height)
	for y := range reach {
		reach[y] = make([]bool, lv.width)
	}

	sx, sy, ok := lv.seed()
	if !ok {
		return reach
	}

	type point struct{ x, y int }
	stack := []point{{sx, sy}}
	reach[sy][sx] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4]point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := p.x+d.x, p.y+d.y
			if !lv.OnMap(nx, ny) || reach[ny][nx] || lv.cells[ny][nx].IsObstacle() {
				continue
			}
			reach[ny][nx] = true
			stack = append(stack, point{nx, ny})
		}
	}
	return reach
}

func (lv *Level) seed() (x, y int, ok bool) {
	for y := 0; y < lv.height; y++ {
		for x := 0; x < lv.width; x++ {
			if ch := lv.rows[y][x]; ch >= '0' && ch <= '9' {
				return x, y, true
			}
		}
	}
	for y := 0; y < lv.height; y++ {
		for x := 0; x < lv.width; x++ {
			if !lv.cells[y][x].IsObstacle() {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
