package sprite

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/strategy"
)

// Ghost speeds in pixels per tick.
const (
	GhostSpeed       = 2
	GhostSlowSpeed   = 1
	GhostEatenSpeed  = 4
	GhostScore       = 200
	flashPeriodTicks = TicksPerSecond
)

// Name identifies one of the canonical ghosts.
type Name string

const (
	Blinky Name = "blinky"
	Pinky  Name = "pinky"
	Inky   Name = "inky"
	Clyde  Name = "clyde"
	Funky  Name = "funky"
)

// NameForChar maps a level spawn letter to a ghost. Letters other than
// B, P, I and C produce the generic ghost.
func NameForChar(ch byte) Name {
	switch ch {
	case 'B':
		return Blinky
	case 'P':
		return Pinky
	case 'I':
		return Inky
	case 'C':
		return Clyde
	default:
		return Funky
	}
}

// ColorOf returns the body color of the named ghost.
func ColorOf(n Name) core.Color {
	switch n {
	case Blinky:
		return core.ColorRed
	case Pinky:
		return core.ColorPink
	case Inky:
		return core.ColorCyan
	case Clyde:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}

// slot picks which of a ghost's strategies drives a mode.
type slot int

const (
	slotNormal slot = iota
	slotScared
	slotEaten
	slotCage
	numSlots
)

// Ghost is one enemy. It owns one strategy per mode and keeps the
// model's ModeCounts current on every transition.
type Ghost struct {
	Mover
	edible
	name  Name
	color core.Color

	respawnX, respawnY int
	initialDelay       int
	cageCounter        int
	scaredCounter      int
	wearOffTicks       int
	crossedGate        bool

	consult      bool
	strategies   [numSlots]strategy.Strategy
	current      strategy.Strategy
	rng          *rand.Rand
	movePct      int
	moveAgainPct int
	counts       *ModeCounts
}

// Name returns the ghost's identity.
func (g *Ghost) Name() Name { return g.name }

// BodyColor returns the ghost's own color, ignoring its mode.
func (g *Ghost) BodyColor() core.Color { return g.color }

// SetStatus moves the ghost to a new mode. Illegal transitions panic.
func (g *Ghost) SetStatus(to Status) {
	from := g.status
	if from == to {
		if to == Normal {
			g.visible = true
		}
		return
	}
	if !CanTransition(from, to) {
		panic(fmt.Sprintf("ghost %s: illegal transition %v -> %v", g.name, from, to))
	}
	if g.counts != nil {
		g.counts.move(from, to)
	}
	if from == Eaten || to == Eaten {
		g.sinceEaten = 0
	}
	g.setStatus(to)

	switch to {
	case Normal:
		g.SetSpeed(GhostSpeed)
		g.current = g.strategies[slotNormal]
	case Caged, LeavingCage:
		g.SetSpeed(GhostSlowSpeed)
		g.current = g.strategies[slotCage]
	case Eaten:
		g.SetSpeed(GhostEatenSpeed)
		g.current = g.strategies[slotEaten]
		g.scaredCounter = 0
	case Scared:
		g.SetSpeed(GhostSlowSpeed)
		g.current = g.strategies[slotScared]
	case Zombie:
		g.current = nil
		g.consult = false
	}
}

// IsEaten reports whether the ghost is heading home as eyes.
func (g *Ghost) IsEaten() bool { return g.status == Eaten }

// IsZombie reports whether the ghost has left the game logic for good.
func (g *Ghost) IsZombie() bool { return g.status == Zombie }

// InCage reports whether the ghost is caged, leaving, or due to be caged.
func (g *Ghost) InCage() bool {
	return g.cageCounter > 0 || g.status == Caged || g.status == LeavingCage
}

// Caged implements strategy.Prisoner.
func (g *Ghost) Caged() bool { return g.status == Caged }

// LeavingCage implements strategy.Prisoner.
func (g *Ghost) LeavingCage() bool { return g.status == LeavingCage }

// ExitCage implements strategy.Prisoner: the cage counter is cleared and
// the ghost resumes as Scared or Normal.
func (g *Ghost) ExitCage() {
	g.cageCounter = 0
	if g.scaredCounter > 0 {
		g.SetStatus(Scared)
	} else {
		g.SetStatus(Normal)
	}
}

// FollowCageExit ends the cage phase of a ghost driven by forced moves,
// which never consult the cage strategy. The ghost is out once it has
// crossed a gate and sits squarely on the next open cell, the same cell
// EscapePath leads to.
func (g *Ghost) FollowCageExit(lv *level.Level) {
	if g.status != LeavingCage {
		g.crossedGate = false
		return
	}
	x, y := g.X(), g.Y()
	switch {
	case lv.IsGate(x/level.GridSize, y/level.GridSize):
		g.crossedGate = true
	case g.crossedGate && x%level.GridSize == 0 && y%level.GridSize == 0:
		g.crossedGate = false
		g.ExitCage()
	}
}

// IsScared reports whether the ghost is vulnerable.
func (g *Ghost) IsScared() bool {
	return g.scaredCounter > 0 || g.status == Scared
}

// ScaredTicks returns the remaining scare time.
func (g *Ghost) ScaredTicks() int { return g.scaredCounter }

// CageTicks returns the remaining cage delay.
func (g *Ghost) CageTicks() int { return g.cageCounter }

// IsAlmostNotScared reports whether the scare is about to wear off.
func (g *Ghost) IsAlmostNotScared() bool {
	return g.scaredCounter > 0 && g.scaredCounter <= g.wearOffTicks
}

// PassesGates overrides Mover: eaten and caged ghosts may cross gates.
func (g *Ghost) PassesGates() bool {
	return g.IsEaten() || g.InCage()
}

// WasJustEaten reports whether the ghost was eaten within the last second.
func (g *Ghost) WasJustEaten() bool {
	return g.IsEaten() && g.sinceEaten < TicksPerSecond
}

// Scare makes the ghost vulnerable for ticks. Ghosts still in the cage
// keep their mode and only pick up the timer.
func (g *Ghost) Scare(ticks int) {
	if ticks <= 0 {
		panic(fmt.Sprintf("ghost %s: scare time must be positive, got %d", g.name, ticks))
	}
	if g.status == Zombie || g.status == Eaten {
		return
	}
	g.scaredCounter = ticks
	if !g.InCage() {
		g.SetStatus(Scared)
	}
}

// SetCageDelay sets how long the ghost waits in the cage after each reset.
func (g *Ghost) SetCageDelay(ticks int) {
	g.initialDelay = ticks
	g.setCageCounter(ticks)
}

func (g *Ghost) setCageCounter(ticks int) {
	g.cageCounter = ticks
	if ticks > 0 && g.status != Caged {
		g.SetStatus(Caged)
	}
}

// KillCounters clears the scare and cage timers.
func (g *Ghost) KillCounters() {
	g.cageCounter = 0
	g.scaredCounter = 0
}

// ReturnToStart puts the ghost back at its spawn point in the cage.
func (g *Ghost) ReturnToStart() {
	g.Mover.ReturnToStart()
	if g.status == Zombie {
		return
	}
	g.scaredCounter = 0
	g.SetStatus(Normal)
	g.setCageCounter(g.initialDelay)
}

// Revive turns eyes back into a ghost, briefly caged.
func (g *Ghost) Revive() {
	g.SetStatus(Normal)
	g.setCageCounter(max(1, g.cageCounter))
}

// SetRespawn sets where eaten eyes return to.
func (g *Ghost) SetRespawn(x, y int) {
	g.respawnX, g.respawnY = x, y
}

// RespawnPosition implements strategy.Respawner.
func (g *Ghost) RespawnPosition() (int, int) { return g.respawnX, g.respawnY }

// AtRespawn reports whether the ghost is exactly at its respawn point.
func (g *Ghost) AtRespawn() bool {
	return g.rect.X == g.respawnX && g.rect.Y == g.respawnY
}

// MakeZombie removes the ghost from game logic for scripted sequences.
func (g *Ghost) MakeZombie() {
	g.KillCounters()
	g.strategies = [numSlots]strategy.Strategy{}
	g.SetStatus(Zombie)
}

// DisableStrategies stops the ghost from thinking for itself; it then moves
// only by forced moves.
func (g *Ghost) DisableStrategies() {
	g.consult = false
}

// SetNormalStrategy replaces the strategy used in Normal mode.
func (g *Ghost) SetNormalStrategy(s strategy.Strategy) {
	g.strategies[slotNormal] = s
	if g.status == Normal {
		g.current = s
	}
}

// NormalStrategy returns the strategy used in Normal mode.
func (g *Ghost) NormalStrategy() strategy.Strategy { return g.strategies[slotNormal] }

// Strategy returns the strategy for the current mode.
func (g *Ghost) Strategy() strategy.Strategy { return g.current }

// SetMovePercentages sets the chance of moving at all in a tick and of
// taking a second step.
func (g *Ghost) SetMovePercentages(movePct, againPct int) {
	g.movePct, g.moveAgainPct = movePct, againPct
}

// Color returns the color to draw the ghost with.
func (g *Ghost) Color() core.Color {
	switch {
	case g.IsEaten():
		return core.ColorWhite
	case g.IsScared():
		if g.IsAlmostNotScared() && g.scaredCounter%flashPeriodTicks >= flashPeriodTicks/2 {
			return core.ColorBrightWhite
		}
		return core.ColorBlue
	}
	return g.color
}

// PlayerDied tells the normal strategy the player was caught.
func (g *Ghost) PlayerDied() {
	if d, ok := g.strategies[slotNormal].(strategy.DeathAware); ok {
		d.PlayerDied()
	}
}

// Update advances the ghost's timers. Mode timers only run while the
// game is actually moving.
func (g *Ghost) Update(doingMovement bool) {
	g.tick(g.IsEaten())
	if !doingMovement {
		return
	}
	if g.scaredCounter > 0 {
		g.scaredCounter--
		if g.scaredCounter == 0 && g.status == Scared {
			g.SetStatus(Normal)
		}
	}
	if g.cageCounter > 0 && g.status == Caged {
		g.cageCounter--
		if g.cageCounter == 0 {
			g.SetStatus(LeavingCage)
		}
	}
}

// CalculateMove asks the current strategy for a move and stores it as the
// velocity. Only the chasing strategy may take an extra step.
func (g *Ghost) CalculateMove(lv *level.Level, target strategy.Target) move.Move {
	if g.status == Normal {
		if lv.IsInTunnel(g) {
			g.SetSpeed(GhostSlowSpeed)
		} else {
			g.SetSpeed(GhostSpeed)
		}
	}
	if !g.consult || g.current == nil || !g.roll(g.movePct) {
		return move.Neutral
	}
	m := g.current.Move(lv, target)
	if g.current == g.strategies[slotNormal] && g.roll(g.moveAgainPct) {
		m = m.Plus(g.current.Move(lv, target))
	}
	g.SetVelocity(m)
	return m
}

func (g *Ghost) roll(pct int) bool {
	switch {
	case pct >= 100:
		return true
	case pct <= 0:
		return false
	}
	return g.rng.Intn(100) < pct
}

// Close releases strategy resources such as script interpreters.
func (g *Ghost) Close() {
	for _, s := range g.strategies {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

// Release removes the ghost from the mode counts. The ghost must not be
// used afterwards.
func (g *Ghost) Release() {
	if g.counts != nil {
		g.counts.remove(g.status)
		g.counts = nil
	}
	g.Close()
}
