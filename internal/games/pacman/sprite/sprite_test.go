package sprite

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/strategy"
)

const tunnelMaze = `t 7 3
XXXXXXX
T     T
XXXXXXX
`

func newTestFactory() *Factory {
	return NewFactory(rand.New(rand.NewSource(7)), &ModeCounts{})
}

// ghostIn returns a ghost forced into status s with consistent counts.
func ghostIn(s Status) (*Ghost, *ModeCounts) {
	f := newTestFactory()
	g := f.Ghost(Blinky, 16, 16)
	f.counts.Reset()
	f.counts.add(s)
	g.status = s
	return g, f.counts
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]Status]bool{
		{Normal, Scared}:      true,
		{Normal, Eaten}:       true,
		{Normal, Caged}:       true,
		{Normal, Zombie}:      true,
		{Scared, Normal}:      true,
		{Scared, Eaten}:       true,
		{Scared, Zombie}:      true,
		{Eaten, Normal}:       true,
		{Eaten, Zombie}:       true,
		{Caged, LeavingCage}:  true,
		{Caged, Normal}:       true,
		{Caged, Eaten}:        true,
		{Caged, Zombie}:       true,
		{LeavingCage, Normal}: true,
		{LeavingCage, Scared}: true,
		{LeavingCage, Eaten}:  true,
		{LeavingCage, Zombie}: true,
	}

	for from := Normal; from < numStatuses; from++ {
		for to := Normal; to < numStatuses; to++ {
			from, to := from, to
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				legal := from == to || allowed[[2]Status{from, to}]
				if CanTransition(from, to) != legal {
					t.Errorf("CanTransition(%v, %v) = %v, expected %v", from, to, !legal, legal)
				}

				g, counts := ghostIn(from)
				if !legal {
					mustPanic(t, "SetStatus", func() { g.SetStatus(to) })
					if g.Status() != from {
						t.Errorf("Status() = %v after rejected transition, expected %v", g.Status(), from)
					}
					return
				}
				g.SetStatus(to)
				if g.Status() != to {
					t.Errorf("Status() = %v, expected %v", g.Status(), to)
				}
				if counts.Count(to) != 1 || counts.Total() != 1 {
					t.Errorf("counts = %v, expected one ghost in %v", counts.Snapshot(), to)
				}
			})
		}
	}
}

func TestGhostSpeedByMode(t *testing.T) {
	tests := []struct {
		to    Status
		speed int
	}{
		{Scared, GhostSlowSpeed},
		{Eaten, GhostEatenSpeed},
		{Caged, GhostSlowSpeed},
	}
	for _, tc := range tests {
		t.Run(tc.to.String(), func(t *testing.T) {
			g, _ := ghostIn(Normal)
			g.SetStatus(tc.to)
			if g.Speed() != tc.speed {
				t.Errorf("Speed() = %d, expected %d", g.Speed(), tc.speed)
			}
		})
	}
}

func TestModeCounts(t *testing.T) {
	f := newTestFactory()
	a := f.Ghost(Blinky, 8, 8)
	b := f.Ghost(Pinky, 16, 8)
	counts := f.Counts()

	if counts.Count(Normal) != 2 || !counts.Threatening() {
		t.Fatalf("counts = %v, expected two threatening ghosts", counts.Snapshot())
	}

	a.Scare(90)
	b.Scare(90)
	if counts.Threatening() {
		t.Errorf("Threatening() = true with every ghost scared")
	}
	if counts.Count(Scared) != 2 {
		t.Errorf("Count(Scared) = %d, expected 2", counts.Count(Scared))
	}

	a.SetStatus(Eaten)
	if counts.Count(Eaten) != 1 || counts.Count(Scared) != 1 {
		t.Errorf("counts = %v after eating one ghost", counts.Snapshot())
	}

	b.Release()
	if counts.Total() != 1 {
		t.Errorf("Total() = %d after Release(), expected 1", counts.Total())
	}
	if counts.Count(Status(42)) != 0 {
		t.Errorf("Count() of an unknown status should be 0")
	}

	mustPanic(t, "remove from an empty mode", func() { counts.remove(Caged) })
}

func TestScareTimer(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.Scare(3)
	if !g.IsScared() || g.Status() != Scared {
		t.Fatalf("Status() = %v after Scare(), expected Scared", g.Status())
	}

	g.Update(false)
	if g.ScaredTicks() != 3 {
		t.Errorf("ScaredTicks() = %d, timers should hold while not moving", g.ScaredTicks())
	}

	for i := 0; i < 3; i++ {
		g.Update(true)
	}
	if g.Status() != Normal || g.IsScared() {
		t.Errorf("Status() = %v after the scare ran out, expected Normal", g.Status())
	}

	mustPanic(t, "Scare(0)", func() { g.Scare(0) })
}

func TestScareIgnoresEatenGhosts(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.SetStatus(Eaten)
	g.Scare(60)
	if g.Status() != Eaten || g.ScaredTicks() != 0 {
		t.Errorf("Scare() changed an eaten ghost: %v, %d", g.Status(), g.ScaredTicks())
	}
}

func TestCageTimer(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.SetCageDelay(3)
	if g.Status() != Caged || !g.PassesGates() {
		t.Fatalf("Status() = %v after SetCageDelay(), expected Caged", g.Status())
	}

	g.Scare(60)
	if g.Status() != Caged {
		t.Errorf("Scare() moved a caged ghost to %v", g.Status())
	}

	for i := 0; i < 3; i++ {
		g.Update(true)
	}
	if g.Status() != LeavingCage {
		t.Fatalf("Status() = %v after the cage delay, expected LeavingCage", g.Status())
	}

	g.ExitCage()
	if g.Status() != Scared {
		t.Errorf("ExitCage() with scare time left = %v, expected Scared", g.Status())
	}
	if g.CageTicks() != 0 || g.InCage() {
		t.Errorf("ghost still counts as caged after ExitCage()")
	}
}

func TestReturnToStart(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.SetCageDelay(5)
	g.ExitCage()
	g.SetPosition(40, 40)
	g.Scare(60)

	g.ReturnToStart()
	if x, y := g.X(), g.Y(); x != 16 || y != 16 {
		t.Errorf("position = (%d, %d), expected (16, 16)", x, y)
	}
	if g.Status() != Caged || g.CageTicks() != 5 || g.ScaredTicks() != 0 {
		t.Errorf("ReturnToStart() = %v cage %d scared %d", g.Status(), g.CageTicks(), g.ScaredTicks())
	}
}

func TestReviveCagesBriefly(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.SetStatus(Eaten)
	g.Revive()
	if g.Status() != Caged || g.CageTicks() != 1 {
		t.Errorf("Revive() = %v with cage %d, expected Caged with 1", g.Status(), g.CageTicks())
	}
	g.Update(true)
	if g.Status() != LeavingCage {
		t.Errorf("Status() = %v one tick after Revive(), expected LeavingCage", g.Status())
	}
}

func TestZombieIsTerminal(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.MakeZombie()
	if !g.IsZombie() {
		t.Fatalf("IsZombie() = false after MakeZombie()")
	}
	g.Scare(30)
	g.ReturnToStart()
	if g.Status() != Zombie {
		t.Errorf("Status() = %v, zombies should stay zombies", g.Status())
	}
	if m := g.CalculateMove(level.Blank(), g); m != move.Neutral {
		t.Errorf("CalculateMove() = %v for a zombie, expected neutral", m)
	}
	mustPanic(t, "SetStatus(Normal) on a zombie", func() { g.SetStatus(Normal) })
}

func TestGhostColor(t *testing.T) {
	g, _ := ghostIn(Normal)
	if g.Color() != core.ColorRed {
		t.Errorf("Color() = %v, expected red", g.Color())
	}

	g.Scare(90)
	if g.Color() != core.ColorBlue {
		t.Errorf("Color() = %v early in the scare, expected blue", g.Color())
	}

	g.Scare(60)
	if g.Color() != core.ColorBlue {
		t.Errorf("Color() = %v at the start of the flash period, expected blue", g.Color())
	}
	g.Update(true)
	if g.Color() != core.ColorBrightWhite {
		t.Errorf("Color() = %v while wearing off, expected bright white", g.Color())
	}

	g.SetStatus(Eaten)
	if g.Color() != core.ColorWhite {
		t.Errorf("Color() = %v for eyes, expected white", g.Color())
	}
}

func TestWasJustEaten(t *testing.T) {
	g, _ := ghostIn(Normal)
	g.SetStatus(Eaten)
	for i := 0; i < TicksPerSecond-1; i++ {
		g.Update(false)
	}
	if !g.WasJustEaten() {
		t.Errorf("WasJustEaten() = false after %d ticks", g.SinceEaten())
	}
	g.Update(false)
	if g.WasJustEaten() {
		t.Errorf("WasJustEaten() = true after %d ticks", g.SinceEaten())
	}
}

func TestCalculateMoveInTunnel(t *testing.T) {
	lv := level.MustParse(tunnelMaze)
	f := newTestFactory()
	g := f.Ghost(Inky, 6, 8)
	g.SetVelocity(move.Right.Times(GhostSpeed))

	g.CalculateMove(lv, g)
	if g.Speed() != GhostSlowSpeed {
		t.Errorf("Speed() = %d in the tunnel, expected %d", g.Speed(), GhostSlowSpeed)
	}

	g.SetPosition(24, 8)
	g.CalculateMove(lv, g)
	if g.Speed() != GhostSpeed {
		t.Errorf("Speed() = %d outside the tunnel, expected %d", g.Speed(), GhostSpeed)
	}
}

func TestMovePercentages(t *testing.T) {
	lv := level.MustParse(tunnelMaze)
	f := newTestFactory()
	g := f.Ghost(Inky, 24, 8)
	g.SetVelocity(move.Right.Times(GhostSpeed))

	g.SetMovePercentages(0, 0)
	if m := g.CalculateMove(lv, g); m != move.Neutral {
		t.Errorf("CalculateMove() = %v with move chance 0, expected neutral", m)
	}

	g.SetMovePercentages(100, 100)
	if m := g.CalculateMove(lv, g); m.Magnitude() != 2*GhostSpeed {
		t.Errorf("CalculateMove() = %v with move-again chance 100, expected a double step", m)
	}
}

func TestMoveAgainOnlyWhileChasing(t *testing.T) {
	lv := level.MustParse(`o 7 7
XXXXXXX
X     X
X     X
X     X
X     X
X     X
XXXXXXX
`)
	g, _ := ghostIn(Normal)
	g.Scare(90)
	g.SetMovePercentages(100, 100)

	for i := 0; i < 20; i++ {
		m := g.CalculateMove(lv, g)
		if m.Magnitude() != GhostSlowSpeed {
			t.Fatalf("CalculateMove() = %v while scared, expected a single step of %d", m, GhostSlowSpeed)
		}
		if m.DX != 0 && m.DY != 0 {
			t.Fatalf("CalculateMove() = %v, expected a cardinal move", m)
		}
	}
}

func TestFollowCageExit(t *testing.T) {
	lv := level.MustParse(`q 5 5
XXXXX
X   X
XX=XX
X   X
XXXXX
`)
	g, _ := ghostIn(LeavingCage)

	steps := []struct {
		x, y int
		want Status
	}{
		{16, 24, LeavingCage},
		{16, 23, LeavingCage},
		{16, 16, LeavingCage},
		{16, 9, LeavingCage},
		{16, 8, Normal},
	}
	for _, st := range steps {
		g.SetPosition(st.x, st.y)
		g.FollowCageExit(lv)
		if g.Status() != st.want {
			t.Errorf("Status() = %v at (%d, %d), expected %v", g.Status(), st.x, st.y, st.want)
		}
	}
}

func TestFollowCageExitNeedsGate(t *testing.T) {
	lv := level.MustParse(`q 5 5
XXXXX
X   X
XX=XX
X   X
XXXXX
`)
	g, _ := ghostIn(LeavingCage)
	g.SetPosition(16, 24)
	g.FollowCageExit(lv)
	g.SetPosition(8, 24)
	g.FollowCageExit(lv)
	if g.Status() != LeavingCage {
		t.Errorf("Status() = %v without crossing the gate, expected LeavingCage", g.Status())
	}
}

func TestFactoryStrategies(t *testing.T) {
	tests := []struct {
		name  Name
		check func(strategy.Strategy) bool
	}{
		{Blinky, func(s strategy.Strategy) bool { _, ok := s.(*strategy.Smart); return ok }},
		{Clyde, func(s strategy.Strategy) bool { _, ok := s.(*strategy.Smart); return ok }},
		{Inky, func(s strategy.Strategy) bool { _, ok := s.(*strategy.Turn); return ok }},
		{Pinky, func(s strategy.Strategy) bool { _, ok := s.(*strategy.LineOfSight); return ok }},
		{Funky, func(s strategy.Strategy) bool { _, ok := s.(*strategy.SmartAhead); return ok }},
	}
	f := newTestFactory()
	for _, tc := range tests {
		t.Run(string(tc.name), func(t *testing.T) {
			g := f.Ghost(tc.name, 8, 8)
			if !tc.check(g.NormalStrategy()) {
				t.Errorf("NormalStrategy() = %T", g.NormalStrategy())
			}
			if g.Strategy() != g.NormalStrategy() {
				t.Errorf("a new ghost should start on its normal strategy")
			}
		})
	}
}

func TestFactoryScripts(t *testing.T) {
	f := newTestFactory()
	var failed []Name
	f.OnScriptError = func(n Name, _ error) { failed = append(failed, n) }

	f.SetScriptSource(Blinky, `function choose(me, target, options) return options[1] end`)
	f.SetScriptSource(Pinky, `function choose(`)

	b := f.Ghost(Blinky, 8, 8)
	defer b.Close()
	if _, ok := b.NormalStrategy().(*strategy.Script); !ok {
		t.Errorf("NormalStrategy() = %T, expected a script", b.NormalStrategy())
	}

	p := f.Ghost(Pinky, 8, 8)
	if _, ok := p.NormalStrategy().(*strategy.LineOfSight); !ok {
		t.Errorf("NormalStrategy() = %T after a broken script, expected the built-in one", p.NormalStrategy())
	}
	if len(failed) != 1 || failed[0] != Pinky {
		t.Errorf("OnScriptError calls = %v, expected [pinky]", failed)
	}

	if err := f.SetScript(Inky, "does-not-exist.lua"); err == nil {
		t.Errorf("SetScript() with a missing file should fail")
	}
}

func TestNameForChar(t *testing.T) {
	tests := []struct {
		ch       byte
		expected Name
	}{
		{'B', Blinky},
		{'P', Pinky},
		{'I', Inky},
		{'C', Clyde},
		{'Z', Funky},
	}
	for _, tc := range tests {
		if got := NameForChar(tc.ch); got != tc.expected {
			t.Errorf("NameForChar(%q) = %v, expected %v", tc.ch, got, tc.expected)
		}
	}
}

func TestPlayerTimers(t *testing.T) {
	p := NewPlayer(40, 24)
	if p.Velocity() != move.Left2 || !p.IsAlive() {
		t.Fatalf("new player = alive %v velocity %v", p.IsAlive(), p.Velocity())
	}

	p.SetPosition(80, 80)
	p.Kill()
	if !p.WasJustKilled() {
		t.Errorf("WasJustKilled() = false right after Kill()")
	}
	for i := 0; i < JustKilledTicks; i++ {
		p.Update()
	}
	if p.WasJustKilled() {
		t.Errorf("WasJustKilled() = true after %d ticks", p.SinceKilled())
	}

	p.Revive()
	if x, y := p.X(), p.Y(); x != 40 || y != 24 {
		t.Errorf("Revive() position = (%d, %d), expected (40, 24)", x, y)
	}
	if !p.WasJustRevived() {
		t.Errorf("WasJustRevived() = false right after Revive()")
	}
	p.KillCounters()
	if p.WasJustRevived() {
		t.Errorf("WasJustRevived() = true after KillCounters()")
	}
}

func TestPlayerEating(t *testing.T) {
	p := NewPlayer(0, 0)
	if p.IsEating() {
		t.Errorf("IsEating() = true before any dot")
	}
	p.ChompDot()
	for i := 0; i <= Size/2+1; i++ {
		if !p.IsEating() {
			t.Errorf("IsEating() = false %d ticks after a dot", i)
		}
		p.Update()
	}
	if p.IsEating() {
		t.Errorf("IsEating() = true long after the last dot")
	}
}

func TestFruitCycle(t *testing.T) {
	fr := NewFruit(8, 8, Strawberry)
	if fr.Visible() || fr.Score() != 300 {
		t.Fatalf("new fruit visible %v score %d", fr.Visible(), fr.Score())
	}

	for i := 0; i < FruitTicks; i++ {
		fr.Update()
	}
	if !fr.Visible() {
		t.Errorf("fruit hidden after %d ticks, expected shown", fr.Counter())
	}
	for i := 0; i < FruitTicks; i++ {
		fr.Update()
	}
	if fr.Visible() {
		t.Errorf("fruit shown after %d ticks, expected hidden", fr.Counter())
	}
}

func TestFruitEaten(t *testing.T) {
	fr := NewFruit(8, 8, Cherry)
	fr.SetVisible(true)
	fr.Eat()
	fr.Update()
	if !fr.Visible() || !fr.WasJustEaten() {
		t.Errorf("eaten fruit should stay visible for a moment")
	}
	for i := 0; i < 2*TicksPerSecond; i++ {
		fr.Update()
	}
	if fr.Visible() {
		t.Errorf("eaten fruit still visible after %d ticks", fr.SinceEaten())
	}
	for i := 0; i < 2*FruitTicks; i++ {
		fr.Update()
	}
	if fr.Visible() {
		t.Errorf("eaten fruit came back")
	}
}

func TestFruitForLevel(t *testing.T) {
	tests := []struct {
		n        int
		expected FruitKind
	}{
		{0, Cherry},
		{1, Strawberry},
		{2, Orange},
		{3, Orange},
		{4, Apple},
		{5, Cherry},
	}
	for _, tc := range tests {
		if got := FruitForLevel(tc.n); got != tc.expected {
			t.Errorf("FruitForLevel(%d) = %v, expected %v", tc.n, got, tc.expected)
		}
	}
}

func TestSetSpeedSnaps(t *testing.T) {
	m := newMover(13, 7, 1)
	m.SetSpeed(2)
	if m.X() != 12 || m.Y() != 6 {
		t.Errorf("SetSpeed(2) position = (%d, %d), expected (12, 6)", m.X(), m.Y())
	}
	m.SetSpeed(4)
	if m.X() != 12 || m.Y() != 4 {
		t.Errorf("SetSpeed(4) position = (%d, %d), expected (12, 4)", m.X(), m.Y())
	}
}

func TestWrapAndQueue(t *testing.T) {
	m := newMover(-8, 8, 2)
	m.Wrap(72, 24)
	if m.X() != 70 {
		t.Errorf("Wrap() X = %d, expected 70", m.X())
	}

	m.Queue().Add(move.Up, 2)
	if !m.HasQueuedMoves() {
		t.Fatalf("HasQueuedMoves() = false after Add()")
	}
	if mv, _ := m.PopQueued(); mv != move.Up || m.Velocity() != move.Up {
		t.Errorf("PopQueued() = %v with velocity %v, expected up", mv, m.Velocity())
	}
	m.KillMoves()
	if m.HasQueuedMoves() {
		t.Errorf("KillMoves() left moves queued")
	}
}
