package model

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"
)

var (
	ErrNoPlayer = errors.New("level has no player spawn")
	ErrNoGhosts = errors.New("level has no ghost spawns")
)

// actor is any sprite the tick loop moves.
type actor interface {
	level.Mover
	Go(m move.Move)
	SetVelocity(m move.Move)
	LastMove() move.Move
	Wrap(w, h int)
	Queue() *move.List
	HasQueuedMoves() bool
	PopQueued() (move.Move, bool)
}

// cast is everything that moves on the current level.
type cast struct {
	counts *sprite.ModeCounts
	player *sprite.Player
	ghosts []*sprite.Ghost
	fruit  *sprite.Fruit
	// movers holds every actor in update order: the player, the ghosts in
	// the order they appear in the level, then the fruit.
	movers []actor
}

func (c *cast) release() {
	for _, g := range c.ghosts {
		g.Close()
	}
}

func (c *cast) clearMovers() {
	c.release()
	c.counts.Reset()
	c.player = nil
	c.ghosts = nil
	c.fruit = nil
	c.movers = nil
}

func (c *cast) addGhost(g *sprite.Ghost) {
	c.ghosts = append(c.ghosts, g)
	c.movers = append(c.movers, g)
}

func (c *cast) removeGhost(g *sprite.Ghost) {
	for i, o := range c.ghosts {
		if o == g {
			c.ghosts = append(c.ghosts[:i], c.ghosts[i+1:]...)
			break
		}
	}
	for i, o := range c.movers {
		if o == actor(g) {
			c.movers = append(c.movers[:i], c.movers[i+1:]...)
			break
		}
	}
	g.Release()
}

// trackName is the label an actor's moves are stored under in a demo.
func trackName(a actor) string {
	switch v := a.(type) {
	case *sprite.Player:
		return "pacman"
	case *sprite.Ghost:
		return string(v.Name())
	case *sprite.Fruit:
		return v.Kind().String()
	default:
		return "actor"
	}
}

// isGhostSpawn reports whether ch places a ghost. Every letter that is not
// a maze code does, in either case.
func isGhostSpawn(ch byte) bool {
	switch ch {
	case 'X', 'O', 'T', 'F':
		return false
	}
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// countActors returns how many movers a level spawns, failing when the
// level cannot be played.
func countActors(lv *level.Level) (int, error) {
	player, ghosts, fruit := false, 0, 0
	for y := 0; y < lv.Height(); y++ {
		for x := 0; x < lv.Width(); x++ {
			ch := lv.Char(x, y)
			switch {
			case ch >= '0' && ch <= '9':
				player = true
			case ch == 'F':
				fruit = 1
			case isGhostSpawn(ch):
				ghosts++
			}
		}
	}
	if !player {
		return 0, fmt.Errorf("level %q: %w", lv.Name(), ErrNoPlayer)
	}
	if ghosts == 0 {
		return 0, fmt.Errorf("level %q: %w", lv.Name(), ErrNoGhosts)
	}
	return 1 + ghosts + fruit, nil
}

// buildCast creates the actors of lv from its spawn characters. Levels
// without a player, like the attract screen, get an empty cast.
func (m *Model) buildCast(lv *level.Level) (*cast, error) {
	c := &cast{counts: &sprite.ModeCounts{}}
	f := sprite.NewFactory(m.rng, c.counts)
	f.WearOffTicks = m.opts.WearOffSeconds * UpdatesPerSecond
	if m.opts.Difficulty != nil {
		f.MoveAgainPercent = m.opts.Difficulty.MoveAgainPercent(m.levelNumber)
	}
	for n, src := range m.opts.Scripts {
		f.SetScriptSource(n, src)
	}
	f.OnScriptError = func(n sprite.Name, err error) {
		m.log.Warn("ghost script rejected; using built-in strategy", "ghost", n, "err", err)
	}

	type spawn struct {
		ch   byte
		x, y int
	}
	var ghostSpawns, fruitSpawns []spawn
	hasPlayer := false

	for y := 0; y < lv.Height(); y++ {
		for x := 0; x < lv.Width(); x++ {
			ch := lv.Char(x, y)
			switch {
			case ch >= '0' && ch <= '9':
				if hasPlayer {
					continue
				}
				hasPlayer = true
				c.player = f.Player(x*level.GridSize+level.GridSize/2, y*level.GridSize)
				c.movers = append(c.movers, c.player)
			case ch == 'F':
				fruitSpawns = append(fruitSpawns, spawn{ch, x, y})
			case isGhostSpawn(ch):
				ghostSpawns = append(ghostSpawns, spawn{ch, x, y})
			}
		}
	}
	if !hasPlayer {
		return c, nil
	}
	if len(ghostSpawns) == 0 {
		return nil, fmt.Errorf("level %q: %w", lv.Name(), ErrNoGhosts)
	}

	var respawnX, respawnY int
	var respawnFrom sprite.Name
	for i, s := range ghostSpawns {
		name := sprite.NameForChar(s.ch)
		gx, gy := s.x*level.GridSize, s.y*level.GridSize
		g := f.Ghost(name, gx, gy)
		g.SetCageDelay(m.cageDelay(i + 1))
		if respawnFrom != sprite.Pinky {
			respawnX, respawnY, respawnFrom = gx, gy, name
		}

		// Sit between two cells when the neighbour is open.
		if !lv.IsObstacle(s.x+1, s.y) {
			gx += level.GridSize / 2
		}
		if !lv.IsObstacle(s.x, s.y+1) {
			gy += level.GridSize / 2
		}
		g.SetPosition(gx, gy)
		g.SetStart(gx, gy)
		c.addGhost(g)
	}
	if respawnFrom == sprite.Blinky {
		respawnY += 3 * level.GridSize
	}
	for _, g := range c.ghosts {
		g.SetRespawn(respawnX, respawnY)
	}

	if len(fruitSpawns) > 0 {
		s := fruitSpawns[0]
		kind := sprite.FruitForLevel(m.levelNumber)
		c.fruit = f.Fruit(s.x*level.GridSize+level.GridSize/2, s.y*level.GridSize, kind, m.opts.Variant != PacMan)
		c.movers = append(c.movers, c.fruit)
	}
	return c, nil
}

// cageDelay is how long the nth ghost of a level waits before leaving the
// cage. The first ghost starts outside and odd ones leave at once, though
// they still take the cage route out.
func (m *Model) cageDelay(n int) int {
	switch {
	case n%2 == 0:
		return UpdatesPerSecond * n * m.opts.SecondsBetweenGhosts / 2
	case n > 1:
		return 1
	default:
		return 0
	}
}
