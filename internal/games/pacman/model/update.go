package model

import (
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
)

// blinkPeriod is how often, in ticks, power pellets toggle.
const blinkPeriod = UpdatesPerSecond / 4

// Update advances the game by one tick. Listeners hear about everything
// that happened only after the tick has finished.
func (m *Model) Update() {
	if m.shutdown {
		return
	}
	m.ticks++
	if m.state == GameOver && m.gameOverTime <= m.demoTicks() {
		if m.credits == 0 {
			m.beginTick()
			m.updateGameOver()
			m.notify(EventGameUpdated, nil)
			m.endTick()
		}
		return
	}

	m.beginTick()
	defer m.endTick()

	doingMovement := m.isDoingMovement()
	demoDone := false
	c := m.cast
	pac := c.player
	if pac == nil {
		m.notify(EventGameUpdated, nil)
		return
	}

	if !pac.IsAlive() {
		pac.Update()
		switch pac.SinceKilled() {
		case m.opts.DeathCleanupSeconds * UpdatesPerSecond:
			m.killPlayer()
		case m.opts.DeathReviveSeconds * UpdatesPerSecond:
			if !m.revivePlayer() {
				m.EndGame()
			}
		}
		m.notify(EventGameUpdated, nil)
		return
	}

	for _, a := range c.movers {
		switch v := a.(type) {
		case *sprite.Player:
			v.Update()
			if !v.IsAlive() {
				break
			}
			if doingMovement {
				desired := m.DesiredMove()
				if v.HasQueuedMoves() {
					desired, _ = v.PopQueued()
					if !v.HasQueuedMoves() {
						demoDone = true
					}
				}
				m.tryMove(v, desired)
			}
			m.current.CheckDotsEaten(v, m)

		case *sprite.Ghost:
			v.Update(doingMovement)
			if doingMovement {
				var desired move.Move
				if v.HasQueuedMoves() {
					v.FollowCageExit(m.current)
					desired, _ = v.PopQueued()
				} else {
					desired = v.CalculateMove(m.current, pac)
				}
				m.tryMove(v, desired)
			}
			if v.IsEaten() && v.AtRespawn() {
				v.Revive()
				m.notify(EventGhostRevived, v)
			}
			if v.IsEaten() || v.IsZombie() || !pac.IsAlive() || !pac.CollidesWith(v) {
				break
			}
			if v.IsScared() {
				m.killGhost(v)
				break
			}
			pac.Kill()
			for _, g := range c.ghosts {
				g.PlayerDied()
			}

		case *sprite.Fruit:
			v.Update()
			if doingMovement {
				m.tryMove(v, v.CalculateMove(m.current, pac))
			}
			if !v.IsEaten() && v.Visible() && pac.IsAlive() && pac.CollidesWith(v) {
				m.addToScore(v.Score())
				v.Eat()
				m.notify(EventFruitEaten, v)
			}
		}

		if m.rec != nil && doingMovement {
			m.rec.record(a)
		}
	}

	if pac.IsInvincible() && !m.anyGhostScared() {
		pac.SetInvincible(false)
		m.notify(EventPowerPelletWornOff, nil)
	}

	if doingMovement && m.updates%blinkPeriod == 0 {
		m.current.BlinkPellets()
	}

	wasJustStarted := m.JustStarted()
	if m.state != Paused {
		m.updates++
	}
	if wasJustStarted && !m.JustStarted() && m.fresh {
		m.fresh = false
		if !m.revivePlayer() {
			m.EndGame()
		}
	}

	if m.state == InProgress && m.current.IsCleared() {
		m.gotoRandomValidLevel()
	}
	if demoDone {
		m.setGameOver()
	}
	m.notify(EventGameUpdated, nil)
}

// isDoingMovement reports whether actors move this tick. Everything holds
// still while a ghost is being eaten and around the player's death.
func (m *Model) isDoingMovement() bool {
	for _, g := range m.cast.ghosts {
		if g.WasJustEaten() {
			return false
		}
	}
	if pac := m.cast.player; pac != nil {
		if !pac.IsAlive() || pac.WasJustKilled() || pac.WasJustRevived() {
			return false
		}
	}
	return m.state != Paused && !m.JustStarted()
}

// tryMove applies the desired move if the level allows it, else keeps the
// actor going the way it was, else leaves it in place. A blocked actor
// keeps its velocity so it can resume once the way opens.
func (m *Model) tryMove(a actor, desired move.Move) {
	switch {
	case m.current.CanMove(a, desired):
		a.Go(desired)
		a.SetVelocity(desired)
	case m.current.CanKeepMoving(a):
		a.Go(a.Velocity())
	default:
		a.Go(move.Neutral)
	}
	a.Wrap(m.current.PixelWidth(), m.current.PixelHeight())
}

func (m *Model) anyGhostScared() bool {
	for _, g := range m.cast.ghosts {
		if g.IsScared() {
			return true
		}
	}
	return false
}

// killGhost turns a scared ghost into eyes and scores it. Each ghost eaten
// on one pellet is worth double the last.
func (m *Model) killGhost(g *sprite.Ghost) {
	g.SetStatus(sprite.Eaten)
	points := m.opts.GhostBaseScore << m.ghostPower
	m.ghostPower = min(m.ghostPower+1, m.opts.MaxGhostPower)
	m.addToScore(points)
	m.lastGhost = points
	m.notify(EventGhostEaten, g)
}

// killPlayer clears the board a moment after the player is caught.
func (m *Model) killPlayer() {
	c := m.cast
	if c.fruit != nil {
		c.fruit.ResetTimer()
	}
	m.desired = move.Left
	c.player.SetInvincible(false)
	for _, g := range c.ghosts {
		if g.IsZombie() {
			continue
		}
		g.SetStatus(sprite.Normal)
		g.SetVisible(false)
	}
	m.notify(EventPlayerDeath, c.player)
}

// revivePlayer spends a life to put the player and ghosts back at their
// starts. It reports false when no lives are left.
func (m *Model) revivePlayer() bool {
	if m.lives == 0 {
		return false
	}
	c := m.cast
	if c.fruit != nil {
		c.fruit.ResetTimer()
	}
	m.lives--
	c.player.Revive()
	for _, g := range c.ghosts {
		g.ReturnToStart()
	}
	return true
}

// addToScore adds points, awarding an extra life each time the score
// crosses a multiple of ExtraLifePoints. Nothing scores outside a game.
func (m *Model) addToScore(points int) {
	if m.state == GameOver {
		return
	}
	before := m.score % m.opts.ExtraLifePoints
	m.score += points
	if before+points >= m.opts.ExtraLifePoints {
		m.lives++
		m.log.Debug("extra life", "score", m.score, "lives", m.lives)
		m.notify(EventExtraLife, nil)
	}
}

// AddToScore implements level.Sink.
func (m *Model) AddToScore(points int) { m.addToScore(points) }

// ChompPellet implements level.Sink: the player turns the tables for the
// level's pellet time.
func (m *Model) ChompPellet() {
	c := m.cast
	if c.player != nil {
		c.player.SetInvincible(true)
	}
	m.ghostPower = 0
	ticks := max(1, m.pelletTime*UpdatesPerSecond)
	for _, g := range c.ghosts {
		if g.IsEaten() || g.IsZombie() {
			continue
		}
		g.Scare(ticks)
	}
}

// Notice implements level.Sink.
func (m *Model) Notice(n level.Notice) {
	switch n {
	case level.NoticeDotEaten:
		m.notify(EventDotEaten, nil)
	case level.NoticePelletEaten:
		m.notify(EventPowerPelletEaten, nil)
	case level.NoticeHalfEaten:
		m.notify(EventHalfDotsEaten, nil)
	case level.NoticeThreeQuartersEaten:
		m.notify(EventThreeQuartersDotsEaten, nil)
	case level.NoticeCleared:
		m.log.Debug("level cleared", "name", m.current.Name(), "score", m.score)
		m.notify(EventLevelCleared, nil)
	}
}

func (m *Model) demoTicks() int {
	return m.opts.DemoSeconds * UpdatesPerSecond
}
