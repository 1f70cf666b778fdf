package strategy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

const cageMaze = `c 9 8
XXXXXXXXX
X.......X
X.XX=XX.X
X.X   X.X
X.X   X.X
X.XXXXX.X
X.......X
XXXXXXXXX
`

// walker is a minimal actor driven the way the model drives ghosts.
type walker struct {
	r       core.Rect
	v, last move.Move
	speed   int
	gates   bool

	caged, leaving bool
	exits          int
	rx, ry         int
}

func at(gx, gy, speed int) *walker {
	return &walker{r: core.NewRect(gx*level.GridSize, gy*level.GridSize, 8, 8), speed: speed}
}

func (w *walker) Bounds() core.Rect   { return w.r }
func (w *walker) Velocity() move.Move { return w.v }
func (w *walker) Speed() int          { return w.speed }
func (w *walker) PassesGates() bool   { return w.gates }
func (w *walker) LastMove() move.Move { return w.last }
func (w *walker) Caged() bool         { return w.caged }
func (w *walker) LeavingCage() bool   { return w.leaving }
func (w *walker) ExitCage()           { w.exits++; w.caged, w.leaving = false, false }

func (w *walker) RespawnPosition() (int, int) { return w.rx, w.ry }

func (w *walker) AtJuncture() bool {
	return w.r.X%level.GridSize == 0 && w.r.Y%level.GridSize == 0
}

// step applies m when legal, like the model's first fallback.
func (w *walker) step(lv *level.Level, m move.Move) bool {
	if !lv.CanMove(w, m) {
		return false
	}
	w.r.X += m.DX
	w.r.Y += m.DY
	w.v, w.last = m, m
	return true
}

func target(gx, gy int) spot {
	return spot{core.NewRect(gx*level.GridSize, gy*level.GridSize, 8, 8)}
}

func contains(moves []move.Move, m move.Move) bool {
	for _, got := range moves {
		if got == m {
			return true
		}
	}
	return false
}

func TestRandom(t *testing.T) {
	lv := level.MustParse(cageMaze)
	rng := rand.New(rand.NewSource(1))

	w := at(1, 1, 2)
	s := NewRandom(w, rng)
	for i := 0; i < 20; i++ {
		m := s.Move(lv, nil)
		if m != move.Right2 && m != move.Down2 {
			t.Fatalf("Move() at corner = %v, expected Right2 or Down2", m)
		}
	}

	w.r.X += 2
	w.v = move.Right2
	if m := s.Move(lv, nil); m != move.Right2 {
		t.Errorf("Move() between junctures = %v, expected %v", m, move.Right2)
	}
}

func TestTurn(t *testing.T) {
	lv := level.MustParse(cageMaze)
	rng := rand.New(rand.NewSource(1))

	w := at(1, 1, 2)
	w.v = move.Left2
	if m := NewTurn(w, rng).Move(lv, nil); m != move.Down2 {
		t.Errorf("Move() at corner = %v, expected %v", m, move.Down2)
	}

	w = at(1, 1, 2)
	w.r.X += 2
	w.v = move.Right
	if m := NewTurn(w, rng).Move(lv, nil); m != move.Right2 {
		t.Errorf("Move() in corridor = %v, expected rescaled %v", m, move.Right2)
	}

	dead := level.MustParse("d 5 3\nXXXXX\nX..XX\nXXXXX\n")
	w = at(2, 1, 2)
	w.v = move.Right2
	if m := NewTurn(w, rng).Move(dead, nil); m != move.Left2 {
		t.Errorf("Move() at dead end = %v, expected reverse %v", m, move.Left2)
	}

	// Never reverses while another option exists.
	w = at(4, 1, 2)
	w.v = move.Right2
	s := NewTurn(w, rng)
	for i := 0; i < 20; i++ {
		if m := s.Move(lv, nil); m == move.Left2 {
			t.Fatalf("Move() reversed with the corridor open ahead")
		}
	}
}

func TestSeeker(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(1, 1, 2)
	s := NewSeeker(w)

	tests := []struct {
		name     string
		tgt      spot
		expected move.Move
	}{
		{"along row", target(7, 1), move.Right2},
		{"along column", target(1, 6), move.Down2},
		{"larger axis first", target(4, 3), move.Right2},
		{"already there", target(1, 1), move.Neutral},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if m := s.Move(lv, tc.tgt); m != tc.expected {
				t.Errorf("Move() = %v, expected %v", m, tc.expected)
			}
		})
	}
}

func TestLineOfSight(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(1, 1, 2)
	s := NewLineOfSight(w, rand.New(rand.NewSource(3)))
	if m := s.Move(lv, target(7, 1)); m != move.Right2 {
		t.Errorf("Move() with target in view = %v, expected %v", m, move.Right2)
	}
	if m := s.Move(lv, target(4, 6)); m != move.Right2 && m != move.Down2 {
		t.Errorf("Move() with target hidden = %v, expected a legal turn", m)
	}
}

func TestScaredStaysLegal(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(1, 1, 1)
	s := NewScared(w, rand.New(rand.NewSource(5)))
	for i := 0; i < 200; i++ {
		m := s.Move(lv, target(7, 6))
		if !m.IsNeutral() && !w.step(lv, m) {
			t.Fatalf("tick %d: Move() = %v is not legal at %v", i, m, w.r)
		}
	}
}

func TestContinue(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(3, 1, 2)
	w.v, w.last = move.Right2, move.Right2
	s := NewContinue(w)
	if m := s.Move(lv, nil); m != move.Right2 {
		t.Errorf("Move() = %v, expected %v", m, move.Right2)
	}
	w = at(7, 1, 2)
	w.v, w.last = move.Right2, move.Right2
	if m := NewContinue(w).Move(lv, nil); m != move.Neutral {
		t.Errorf("Move() into wall = %v, expected Neutral", m)
	}
}

func TestSmartReachesTarget(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(1, 1, 2)
	s := NewSmart(w)
	goal := target(7, 6)
	for i := 0; i < 100; i++ {
		if w.r == goal.r {
			return
		}
		m := s.Move(lv, goal)
		if !m.IsNeutral() && !w.step(lv, m) {
			t.Fatalf("tick %d: Move() = %v is not legal at %v", i, m, w.r)
		}
	}
	t.Errorf("did not reach %v, stopped at %v", goal.r, w.r)
}

func TestSmartTakesShortestRoute(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(4, 1, 2)
	// Both ways round are open; the target is on the left side.
	if m := NewSmart(w).Move(lv, target(1, 4)); m != move.Left2 {
		t.Errorf("Move() = %v, expected %v", m, move.Left2)
	}
}

func TestReviveEntersCage(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(4, 1, 4)
	w.gates = true
	w.rx, w.ry = 4*level.GridSize+4, 3*level.GridSize
	s := NewRevive(w)
	for i := 0; i < 30; i++ {
		if w.r.X == w.rx && w.r.Y == w.ry {
			return
		}
		m := s.Move(lv, nil)
		if !m.IsNeutral() && !w.step(lv, m) {
			t.Fatalf("tick %d: Move() = %v is not legal at %v", i, m, w.r)
		}
	}
	t.Errorf("did not reach respawn (%d, %d), stopped at %v", w.rx, w.ry, w.r)
}

func TestSmartAheadStaysLegal(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(1, 6, 2)
	s := NewSmartAhead(w, rand.New(rand.NewSource(9)))
	pac := &walker{r: target(7, 1).r, v: move.Left2, speed: 2}
	for i := 0; i < 50; i++ {
		m := s.Move(lv, pac)
		if !m.IsNeutral() && !w.step(lv, m) {
			t.Fatalf("tick %d: Move() = %v is not legal at %v", i, m, w.r)
		}
	}
}

func TestCageBobsBelowGate(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(4, 3, 1)
	w.gates = true
	w.caged = true
	s := NewCage(w, true)
	for i := 0; i < 60; i++ {
		w.step(lv, s.Move(lv, nil))
		if w.r.Y < 3*level.GridSize || w.r.Y > 4*level.GridSize {
			t.Fatalf("tick %d: ghost left the cage interior at y=%d", i, w.r.Y)
		}
	}
	if w.exits != 0 {
		t.Errorf("ExitCage() called %d times while caged", w.exits)
	}
}

func TestCageEscape(t *testing.T) {
	lv := level.MustParse(cageMaze)
	w := at(4, 3, 1)
	w.r.X += 4
	w.gates = true
	w.leaving = true
	s := NewCage(w, false)
	for i := 0; i < 100 && w.leaving; i++ {
		m := s.Move(lv, nil)
		if !m.IsNeutral() && !w.step(lv, m) {
			t.Fatalf("tick %d: escape move %v is not legal at %v", i, m, w.r)
		}
	}
	if w.exits != 1 {
		t.Fatalf("ExitCage() called %d times, expected 1", w.exits)
	}
	if w.r.X != 4*level.GridSize || w.r.Y != level.GridSize {
		t.Errorf("escaped to %v, expected the cell above the gate", w.r)
	}
}

func TestEscapePathWithoutGate(t *testing.T) {
	lv := level.MustParse("s 5 3\nXXXXX\nX...X\nXXXXX\n")
	if p := EscapePath(lv, at(1, 1, 1)); p.Len() != 0 {
		t.Errorf("EscapePath() len = %d, expected 0", p.Len())
	}
}

func TestMoveList(t *testing.T) {
	l := MoveList(2, 0, 0, 5, -3)
	expected := []move.Move{move.New(2, 0), move.New(2, 0), move.New(1, 0), move.New(0, -2), move.New(0, -1)}
	got := l.Moves()
	if len(got) != len(expected) {
		t.Fatalf("MoveList() = %v, expected %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("MoveList()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
	if l := MoveList(2, 0, 0, 0, 5); l.Len() != 3 {
		t.Errorf("MoveList() down len = %d, expected 3", l.Len())
	}
}

func TestScript(t *testing.T) {
	lv := level.MustParse(cageMaze)
	rng := rand.New(rand.NewSource(1))
	src := `
function choose(me, target, options)
  if target.gx > me.gx then return "right" end
  for _, o in ipairs(options) do
    if o == "down" then return "down" end
  end
  return "stay"
end`
	w := at(1, 1, 2)
	s, err := NewScript(w, rng, "chase.lua", src)
	if err != nil {
		t.Fatalf("NewScript() failed: %v", err)
	}
	defer s.Close()

	if m := s.Move(lv, target(7, 1)); m != move.Right2 {
		t.Errorf("Move() = %v, expected %v", m, move.Right2)
	}
	if m := s.Move(lv, target(1, 6)); m != move.Down2 {
		t.Errorf("Move() = %v, expected %v", m, move.Down2)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v, expected nil", s.Err())
	}
}

func TestScriptFallsBack(t *testing.T) {
	lv := level.MustParse(cageMaze)
	rng := rand.New(rand.NewSource(1))

	if _, err := NewScript(at(1, 1, 2), rng, "empty.lua", "x = 1"); err == nil {
		t.Error("NewScript() without choose should fail")
	}
	if _, err := NewScript(at(1, 1, 2), rng, "broken.lua", "function choose("); err == nil {
		t.Error("NewScript() with a syntax error should fail")
	}

	tests := []struct {
		name string
		src  string
	}{
		{"illegal choice", `function choose() return "up" end`},
		{"random is removed", `function choose() return math.random(4) end`},
		{"runtime error", `function choose(me) return me.missing.field end`},
		{"endless loop", `function choose() while true do end end`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := at(1, 1, 2)
			s, err := NewScript(w, rng, tc.name, tc.src)
			if err != nil {
				t.Fatalf("NewScript() failed: %v", err)
			}
			defer s.Close()
			m := s.Move(lv, target(7, 6))
			if !contains([]move.Move{move.Right2, move.Down2}, m) {
				t.Errorf("Move() = %v, expected a legal fallback", m)
			}
			if s.Err() == nil {
				t.Error("Err() = nil, expected the script failure")
			}
		})
	}
}

func TestScriptOverrunIsSwitchedOff(t *testing.T) {
	lv := level.MustParse(cageMaze)
	rng := rand.New(rand.NewSource(1))

	if _, err := NewScript(at(1, 1, 2), rng, "spin.lua", "while true do end"); err == nil {
		t.Error("NewScript() with an endless top-level loop should fail")
	}

	s, err := NewScript(at(1, 1, 2), rng, "slow.lua", `function choose() while true do end end`)
	if err != nil {
		t.Fatalf("NewScript() failed: %v", err)
	}
	defer s.Close()

	s.Move(lv, target(7, 6))
	if s.Err() == nil {
		t.Fatal("Err() = nil after the call ran out of time")
	}
	start := time.Now()
	m := s.Move(lv, target(7, 6))
	if elapsed := time.Since(start); elapsed >= scriptCallTimeout {
		t.Errorf("Move() took %v after the script was switched off", elapsed)
	}
	if !contains([]move.Move{move.Right2, move.Down2}, m) {
		t.Errorf("Move() = %v, expected a legal fallback", m)
	}
}
