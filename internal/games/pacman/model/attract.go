package model

import (
	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
)

// introGhost is one line of the character roll call.
type introGhost struct {
	name     sprite.Name
	row      int
	at       int // tick the ghost appears; its names follow
	title    string
	nickname string
}

var introGhosts = []introGhost{
	{sprite.Blinky, 4, 1 * UpdatesPerSecond, "-SHADOW", `"BLINKY"`},
	{sprite.Pinky, 7, 3 * UpdatesPerSecond, "-SPEEDY", `"PINKY"`},
	{sprite.Inky, 10, 5 * UpdatesPerSecond, "-BASHFUL", `"INKY"`},
	{sprite.Clyde, 13, 7 * UpdatesPerSecond, "-POKEY", `"CLYDE"`},
}

// Attract timeline, in ticks since the game ended.
const (
	introPointsAt = 9 * UpdatesPerSecond
	introChaseAt  = 11 * UpdatesPerSecond
	// introChaseGhosts is how many roll-call ghosts precede the chase ghosts
	// in the cast.
	introChaseGhosts = 4
)

// updateGameOver runs one tick of the attract sequence: the ghost roll
// call, the point values, a short pellet chase, and finally a recorded
// demo.
func (m *Model) updateGameOver() {
	m.score = 0
	t := m.gameOverTime
	doingMovement := m.isDoingMovement()

	for _, a := range m.cast.movers {
		switch v := a.(type) {
		case *sprite.Player:
			v.Update()
		case *sprite.Ghost:
			v.Update(doingMovement)
		}
	}

	switch {
	case t == 0:
		m.setGameOver()
		m.current.PutWord("CHARACTER / NICKNAME", 7, 2, core.ColorWhite)
	case t == introPointsAt:
		dots := []struct {
			kind  level.Kind
			row   int
			label string
		}{
			{level.Dot, 21, "10 PTS"},
			{level.PowerPellet, 23, "50 PTS"},
		}
		for _, d := range dots {
			_ = m.current.SetCell(10, d.row, level.NewCell(d.kind))
			m.current.PutWord(d.label, 12, d.row, core.ColorWhite)
		}
	case t == introChaseAt:
		m.startChase()
	case t > introChaseAt && t < m.demoTicks():
		if doingMovement {
			m.stepChase()
		}
		if m.updates%blinkPeriod == 0 {
			m.current.BlinkPellets()
		}
	default:
		m.rollCall(t)
	}

	if t == m.demoTicks() {
		m.cast.clearMovers()
		if !m.playRandomDemo() {
			m.setGameOver()
			return
		}
	}

	m.score = 0
	m.gameOverTime++
	m.updates++
}

// rollCall introduces each ghost by name and nickname.
func (m *Model) rollCall(t int) {
	for _, g := range introGhosts {
		switch t {
		case g.at:
			f := sprite.NewFactory(m.rng, m.cast.counts)
			gh := f.Ghost(g.name, 4*level.GridSize, g.row*level.GridSize)
			gh.SetVelocity(move.Right)
			gh.MakeZombie()
			m.cast.addGhost(gh)
		case g.at + UpdatesPerSecond:
			m.current.PutWord(g.title, 7, g.row, sprite.ColorOf(g.name))
		case g.at + UpdatesPerSecond*3/2:
			m.current.PutWord(g.nickname, 18, g.row, sprite.ColorOf(g.name))
		}
	}
}

// startChase sets up the player running left to a pellet and four ghosts
// in pursuit that it then turns on.
func (m *Model) startChase() {
	m.current.PutWord("@ 1980 MIDWAY MFG. CO.", 4, 28, core.ColorPink)
	_ = m.current.SetCell(4, 17, level.NewCell(level.PowerPellet))

	const run = 23 * level.GridSize / sprite.PlayerSpeed
	f := sprite.NewFactory(m.rng, m.cast.counts)

	pac := f.Player(27*level.GridSize, 17*level.GridSize)
	pac.KillCounters()
	pac.Queue().Add(move.Left2, run)
	pac.Queue().Add(move.Right2, 15*level.GridSize/sprite.PlayerSpeed)
	pac.Queue().Push(move.Neutral)
	m.cast.player = pac
	m.cast.movers = append([]actor{pac}, m.cast.movers...)

	for i, n := range []sprite.Name{sprite.Blinky, sprite.Pinky, sprite.Inky, sprite.Clyde} {
		gh := f.Ghost(n, (29+2*i)*level.GridSize, 17*level.GridSize)
		gh.DisableStrategies()
		gh.Queue().Add(move.Left2, run)
		gh.Queue().Add(move.Right, 23*level.GridSize)
		m.cast.addGhost(gh)
	}
}

// stepChase advances the chase: the roll-call ghosts stand still, eaten
// chase ghosts leave once their score has been shown.
func (m *Model) stepChase() {
	c := m.cast
	pac := c.player
	if pac == nil {
		return
	}
	mv, _ := pac.Queue().Pop()
	pac.Go(mv)
	m.current.CheckDotsEaten(pac, m)

	ghosts := append([]*sprite.Ghost(nil), c.ghosts...)
	for i, gh := range ghosts {
		if i < introChaseGhosts {
			gh.KillCounters()
			continue
		}
		if gh.IsEaten() && !gh.WasJustEaten() {
			c.removeGhost(gh)
			continue
		}
		mv, _ := gh.Queue().Pop()
		gh.Go(mv)
		if !gh.IsEaten() && gh.IsScared() && pac.CollidesWith(gh) {
			m.killGhost(gh)
		}
	}
}

// playRandomDemo loads a random demo of the model's variant. It reports
// false when none could be loaded.
func (m *Model) playRandomDemo() bool {
	var candidates []*Demo
	for _, e := range m.demos {
		if e.variant == m.opts.Variant {
			candidates = append(candidates, e.demo)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	d := candidates[m.rng.Intn(len(candidates))]
	if err := m.LoadDemo(d); err != nil {
		m.log.Warn("demo rejected", "demo", d.Name, "err", err)
		return false
	}
	return true
}
