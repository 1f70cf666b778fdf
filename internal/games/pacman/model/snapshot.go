package model

import "github.com/vovakirdan/pacman-arcade/internal/games/pacman/sprite"

// ActorState is the visible state of one actor.
type ActorState struct {
	Name        string
	X, Y        int
	Status      string
	Visible     bool
	ScaredTicks int
}

// Snapshot is a copy of the model state between ticks. Two models fed the
// same seed, levels and inputs produce equal snapshots.
type Snapshot struct {
	Tick          uint64
	State         string
	Variant       Variant
	Level         string
	LevelNumber   int
	Score         int
	HighScore     int
	Lives         int
	Credits       int
	GhostPower    int
	RemainingDots int
	TotalDots     int
	Player        *ActorState
	Ghosts        []ActorState
	Fruit         *ActorState
	Modes         map[string]int
}

// Snapshot captures the current state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Tick:          m.ticks,
		State:         m.state.String(),
		Variant:       m.opts.Variant,
		Level:         m.current.Name(),
		LevelNumber:   m.levelNumber,
		Score:         m.score,
		HighScore:     m.HighScore(),
		Lives:         m.lives,
		Credits:       m.credits,
		GhostPower:    m.ghostPower,
		RemainingDots: m.current.RemainingDots(),
		TotalDots:     m.current.TotalDots(),
		Modes:         m.cast.counts.Snapshot(),
	}
	if p := m.cast.player; p != nil {
		status := "Dead"
		if p.IsAlive() {
			status = "Alive"
		}
		s.Player = &ActorState{Name: "pacman", X: p.X(), Y: p.Y(), Status: status, Visible: p.Visible()}
	}
	for _, g := range m.cast.ghosts {
		s.Ghosts = append(s.Ghosts, ghostState(g))
	}
	if f := m.cast.fruit; f != nil {
		s.Fruit = &ActorState{Name: f.Kind().String(), X: f.X(), Y: f.Y(), Status: f.Status().String(), Visible: f.Visible()}
	}
	return s
}

func ghostState(g *sprite.Ghost) ActorState {
	return ActorState{
		Name:        string(g.Name()),
		X:           g.X(),
		Y:           g.Y(),
		Status:      g.Status().String(),
		Visible:     g.Visible(),
		ScaredTicks: g.ScaredTicks(),
	}
}
