package sprite

import "github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"

// PlayerSpeed is the player's speed in pixels per tick.
const PlayerSpeed = 2

// Player timers, in ticks.
const (
	JustKilledTicks  = TicksPerSecond
	JustRevivedTicks = 2 * TicksPerSecond
	deadCounterReset = 5 * TicksPerSecond
	neverAte         = 9999
)

// Player is Pac-Man.
type Player struct {
	Mover
	alive        bool
	invincible   bool
	sinceKilled  int
	sinceRevived int
	sinceAteDot  int
}

// NewPlayer creates a live player at (x, y) heading left.
func NewPlayer(x, y int) *Player {
	p := &Player{Mover: newMover(x, y, PlayerSpeed), alive: true, sinceAteDot: neverAte}
	p.velocity = move.Left.Times(PlayerSpeed)
	return p
}

// IsAlive reports whether the player is alive.
func (p *Player) IsAlive() bool { return p.alive }

// IsInvincible reports whether ghosts are currently harmless.
func (p *Player) IsInvincible() bool { return p.invincible }

// SetInvincible sets the invincibility flag.
func (p *Player) SetInvincible(v bool) { p.invincible = v }

// SinceKilled returns ticks since the last death.
func (p *Player) SinceKilled() int { return p.sinceKilled }

// SinceRevived returns ticks since the last revival.
func (p *Player) SinceRevived() int { return p.sinceRevived }

// Kill marks the player dead and restarts the death timers.
func (p *Player) Kill() {
	p.alive = false
	p.sinceKilled = 0
	p.sinceRevived = 0
}

// KillCounters pushes both timers past their "just happened" windows.
func (p *Player) KillCounters() {
	p.sinceKilled = deadCounterReset
	p.sinceRevived = deadCounterReset
}

// Revive brings the player back at the spawn point.
func (p *Player) Revive() {
	p.alive = true
	p.ReturnToStart()
	p.velocity = move.Left.Times(PlayerSpeed)
	p.sinceKilled = 0
	p.sinceRevived = 0
}

// WasJustKilled reports whether the player died within the last second.
func (p *Player) WasJustKilled() bool {
	return !p.alive && p.sinceKilled < JustKilledTicks
}

// WasJustRevived reports whether the player came back within the last two
// seconds.
func (p *Player) WasJustRevived() bool {
	return p.alive && p.sinceRevived < JustRevivedTicks
}

// ChompDot records that the player ate something this tick.
func (p *Player) ChompDot() { p.sinceAteDot = 0 }

// IsEating reports whether the mouth animation should be running.
func (p *Player) IsEating() bool {
	return p.sinceAteDot <= p.rect.W/2+1
}

// Update advances the player's timers by one tick.
func (p *Player) Update() {
	if p.alive {
		p.sinceRevived++
	} else {
		p.sinceKilled++
	}
	p.sinceAteDot++
}
