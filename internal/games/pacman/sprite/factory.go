package sprite

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/strategy"
)

// Factory builds actors wired to one model: its random source, its mode
// counts and its tuning.
type Factory struct {
	rng    *rand.Rand
	counts *ModeCounts

	// cageUp alternates the first bob direction of successive ghosts.
	cageUp bool

	MovePercent      int
	MoveAgainPercent int
	WearOffTicks     int

	scripts map[Name]string

	// OnScriptError is called when a ghost script cannot be used; the
	// ghost then keeps its built-in strategy.
	OnScriptError func(Name, error)
}

// NewFactory creates a factory. counts may be nil when nobody needs the
// aggregate.
func NewFactory(rng *rand.Rand, counts *ModeCounts) *Factory {
	return &Factory{
		rng:          rng,
		counts:       counts,
		MovePercent:  100,
		WearOffTicks: 2 * TicksPerSecond,
	}
}

// Counts returns the aggregate the factory's ghosts update.
func (f *Factory) Counts() *ModeCounts { return f.counts }

// SetScript loads the Lua source used as the named ghost's normal strategy.
func (f *Factory) SetScript(n Name, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading ghost script %s: %w", path, err)
	}
	f.SetScriptSource(n, string(src))
	return nil
}

// SetScriptSource is SetScript with the source already in memory.
func (f *Factory) SetScriptSource(n Name, src string) {
	if f.scripts == nil {
		f.scripts = make(map[Name]string)
	}
	f.scripts[n] = src
}

// Player creates the player.
func (f *Factory) Player(x, y int) *Player {
	return NewPlayer(x, y)
}

// Ghost creates a named ghost at (x, y) in Normal mode with its default
// strategies.
func (f *Factory) Ghost(n Name, x, y int) *Ghost {
	g := &Ghost{
		Mover:        newMover(x, y, GhostSpeed),
		name:         n,
		color:        ColorOf(n),
		respawnX:     x,
		respawnY:     y,
		consult:      true,
		rng:          f.rng,
		movePct:      f.MovePercent,
		moveAgainPct: f.MoveAgainPercent,
		wearOffTicks: f.WearOffTicks,
		counts:       f.counts,
	}
	g.score = GhostScore

	g.strategies[slotNormal] = f.normalStrategy(g)
	g.strategies[slotScared] = strategy.NewScared(g, f.rng)
	g.strategies[slotEaten] = strategy.NewRevive(g)
	g.strategies[slotCage] = strategy.NewCage(g, f.cageUp)
	f.cageUp = !f.cageUp
	g.current = g.strategies[slotNormal]

	if g.counts != nil {
		g.counts.add(Normal)
	}
	return g
}

func (f *Factory) normalStrategy(g *Ghost) strategy.Strategy {
	if src, ok := f.scripts[g.name]; ok {
		s, err := strategy.NewScript(g, f.rng, string(g.name)+".lua", src)
		if err == nil {
			return s
		}
		if f.OnScriptError != nil {
			f.OnScriptError(g.name, err)
		}
	}
	switch g.name {
	case Blinky, Clyde:
		return strategy.NewSmart(g)
	case Inky:
		return strategy.NewTurn(g, f.rng)
	case Pinky:
		return strategy.NewLineOfSight(g, f.rng)
	case Funky:
		return strategy.NewSmartAhead(g, f.rng)
	default:
		return strategy.NewRandom(g, f.rng)
	}
}

// Fruit creates the fruit for a level. moving gives it a wandering
// strategy, as in the Mrs Pac-Man mazes.
func (f *Factory) Fruit(x, y int, kind FruitKind, moving bool) *Fruit {
	fr := NewFruit(x, y, kind)
	if moving {
		fr.SetStrategy(strategy.NewTurn(fr, f.rng))
	}
	return fr
}
