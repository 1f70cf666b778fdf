package sprite

import (
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/strategy"
)

// Fruit timing.
const (
	FruitSpeed = 1
	// FruitTicks is how long the fruit stays shown, and then hidden.
	FruitTicks          = 20 * TicksPerSecond
	fruitJustEatenTicks = 2 * TicksPerSecond
)

// FruitKind is the bonus item offered on a level.
type FruitKind int

const (
	Cherry FruitKind = iota
	Strawberry
	Orange
	Apple
)

// String returns the fruit's name.
func (k FruitKind) String() string {
	switch k {
	case Cherry:
		return "cherry"
	case Strawberry:
		return "strawberry"
	case Orange:
		return "orange"
	case Apple:
		return "apple"
	default:
		return "fruit"
	}
}

// Score returns the points the fruit is worth.
func (k FruitKind) Score() int {
	switch k {
	case Cherry:
		return 100
	case Strawberry:
		return 300
	case Orange:
		return 500
	case Apple:
		return 700
	default:
		return 0
	}
}

// FruitForLevel returns the fruit offered on the given level number.
func FruitForLevel(n int) FruitKind {
	switch ((n % 5) + 5) % 5 {
	case 0:
		return Cherry
	case 1:
		return Strawberry
	case 2, 3:
		return Orange
	default:
		return Apple
	}
}

// Fruit appears and disappears on a fixed cycle until it is eaten.
type Fruit struct {
	Mover
	edible
	kind     FruitKind
	counter  int
	strategy strategy.Strategy
}

// NewFruit creates a hidden fruit at (x, y).
func NewFruit(x, y int, kind FruitKind) *Fruit {
	f := &Fruit{Mover: newMover(x, y, FruitSpeed), kind: kind}
	f.score = kind.Score()
	f.visible = false
	return f
}

// Kind returns the fruit type.
func (f *Fruit) Kind() FruitKind { return f.kind }

// SetStrategy makes the fruit move. A nil strategy keeps it still.
func (f *Fruit) SetStrategy(s strategy.Strategy) { f.strategy = s }

// IsEaten reports whether the player has eaten the fruit.
func (f *Fruit) IsEaten() bool { return f.status == Eaten }

// Eat marks the fruit eaten. It stays visible for a moment.
func (f *Fruit) Eat() {
	if f.status == Eaten {
		return
	}
	f.status = Eaten
	f.sinceEaten = 0
}

// WasJustEaten reports whether the fruit was eaten in the last two seconds.
func (f *Fruit) WasJustEaten() bool {
	return f.IsEaten() && f.sinceEaten < fruitJustEatenTicks
}

// Counter returns ticks since the timer was last reset.
func (f *Fruit) Counter() int { return f.counter }

// ResetTimer hides the fruit and restarts its cycle.
func (f *Fruit) ResetTimer() {
	f.counter = 0
	f.visible = false
}

// Update advances the visibility cycle.
func (f *Fruit) Update() {
	f.tick(f.IsEaten())
	f.counter++
	if f.IsEaten() {
		if !f.WasJustEaten() {
			f.visible = false
		}
		return
	}
	switch f.counter % (2 * FruitTicks) {
	case 0:
		f.visible = false
	case FruitTicks:
		f.visible = true
	}
}

// CalculateMove asks the fruit's strategy for a move while it is shown.
func (f *Fruit) CalculateMove(lv *level.Level, target strategy.Target) move.Move {
	if f.strategy == nil || f.IsEaten() || !f.visible {
		return move.Neutral
	}
	return f.strategy.Move(lv, target)
}
