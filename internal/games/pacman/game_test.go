package pacman

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/level"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/model"
	"github.com/vovakirdan/pacman-arcade/internal/registry"
)

func newTestGame(t *testing.T, v model.Variant) *Game {
	t.Helper()
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 30, Seed: 42})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"pacman", "Pac-Man"},
		{"mspacman", "Ms. Pac-Man"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.id, err)
			}
			if g.ID() != tt.id || g.Title() != tt.title {
				t.Errorf("game = %s %q, expected %s %q", g.ID(), g.Title(), tt.id, tt.title)
			}
		})
	}
}

func TestStartsInAttractMode(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	st := g.State()
	if !st.GameOver || st.Score != 0 {
		t.Errorf("State() = %+v, expected game over with no score", st)
	}
}

func TestCoinAndStart(t *testing.T) {
	g := newTestGame(t, model.PacMan)

	g.Step(press(core.ActionConfirm))
	if !g.State().GameOver {
		t.Fatal("Confirm without a credit started a game")
	}

	g.Step(press(core.ActionCoin))
	if got := g.Model().Credits(); got != 1 {
		t.Fatalf("Credits() = %d, expected 1", got)
	}
	res := g.Step(press(core.ActionConfirm))
	if res.State.GameOver {
		t.Fatal("Confirm with a credit did not start a game")
	}
	if got := g.Model().Level().Name(); got != "classic" {
		t.Errorf("Level() = %q, expected classic", got)
	}
}

func TestDirectionActions(t *testing.T) {
	g := newTestGame(t, model.MsPacMan)
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))

	tests := []struct {
		action core.Action
		want   string
	}{
		{core.ActionUp, "(0, -1)"},
		{core.ActionRight, "(1, 0)"},
		{core.ActionDown, "(0, 1)"},
		{core.ActionLeft, "(-1, 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			g.Step(press(tt.action))
			if got := g.Model().DesiredMove().Normalize().String(); got != tt.want {
				t.Errorf("DesiredMove() = %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))

	if st := g.Step(press(core.ActionPause)).State; !st.Paused {
		t.Fatalf("State() = %+v after Pause, expected paused", st)
	}
	score := g.Model().Score()
	g.Step(press(core.ActionLeft))
	if g.Model().Score() != score || !g.State().Paused {
		t.Error("paused game kept playing")
	}
	if st := g.Step(press(core.ActionPause)).State; st.Paused {
		t.Errorf("State() = %+v after second Pause, expected running", st)
	}
}

func TestGameOverKeepsFinalScore(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	g.SetPlayerName("  ANN ")
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))

	g.Model().AddToScore(1230)
	if got := g.State().Score; got != 1230 {
		t.Fatalf("State().Score = %d while playing, expected 1230", got)
	}

	g.Model().EndGame()
	st := g.State()
	if !st.GameOver || st.Score != 1230 {
		t.Errorf("State() = %+v, expected game over with 1230", st)
	}
	if got := g.LastResult().Score; got != 1230 {
		t.Errorf("LastResult().Score = %d, expected 1230", got)
	}
	top := g.Model().HighScores().Scores()[0]
	if top.Name != "ANN" || top.Score != 1230 {
		t.Errorf("top high score = %+v, expected ANN 1230", top)
	}

	// A new game clears the reported result.
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))
	if got := g.State().Score; got != 0 {
		t.Errorf("State().Score = %d after restart, expected 0", got)
	}
}

func TestHighScoresSurviveReset(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	g.SetHighScores([]model.HighScore{{Score: 9000, Name: "BOB"}, {Score: 300, Name: "EVE"}})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1})

	if got := g.Model().HighScore(); got != 9000 {
		t.Errorf("HighScore() = %d after Reset, expected 9000", got)
	}
	if got := g.Model().HighScores().Len(); got != 2 {
		t.Errorf("HighScores().Len() = %d, expected 2", got)
	}
}

func TestRenderLayouts(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want string
	}{
		{"wide", 80, 40, "HIGH"},
		{"narrow", 30, 34, "HIGH"},
		{"compact", 80, 24, "HIGH"},
		{"too small", 20, 10, "Window too small"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, model.PacMan)
			g.Step(press(core.ActionCoin))
			g.Step(press(core.ActionConfirm))

			screen := core.NewScreen(tt.w, tt.h)
			g.Render(screen)
			if out := screen.String(); !strings.Contains(out, tt.want) {
				t.Errorf("Render() at %dx%d missing %q:\n%s", tt.w, tt.h, tt.want, out)
			}
		})
	}
}

func TestRenderShowsReady(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))

	screen := core.NewScreen(80, 40)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "READY!") {
		t.Errorf("Render() missing READY! at the start of a game:\n%s", out)
	}
	if !strings.ContainsRune(out, '─') {
		t.Error("Render() drew no maze walls")
	}
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		w, h     int
		tooSmall bool
		cellW    int
		perLine  int
	}{
		{120, 50, false, 2, 1},
		{40, 33, false, 1, 1},
		{80, 24, false, 2, 2},
		{28, 18, false, 1, 2},
		{27, 40, true, 1, 1},
		{80, 17, true, 1, 1},
	}
	for _, tt := range tests {
		l := newLayout(tt.w, tt.h, 28, 31)
		if l.tooSmall != tt.tooSmall {
			t.Errorf("newLayout(%d, %d).tooSmall = %v, expected %v", tt.w, tt.h, l.tooSmall, tt.tooSmall)
			continue
		}
		if tt.tooSmall {
			continue
		}
		if l.cellW != tt.cellW || l.rowsPerLine != tt.perLine {
			t.Errorf("newLayout(%d, %d) = %d cols/cell, %d rows/line, expected %d, %d",
				tt.w, tt.h, l.cellW, l.rowsPerLine, tt.cellW, tt.perLine)
		}
		if l.originX < 0 || l.originY < 1 || l.originY+l.lines >= tt.h {
			t.Errorf("newLayout(%d, %d) places the board off screen: %+v", tt.w, tt.h, l)
		}
	}
}

func TestWallArms(t *testing.T) {
	lv, err := level.Parse(strings.NewReader("box 5 4\nXXXXX\nX0.BX\nX...X\nXXXXX\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '╭'},
		{2, 0, '─'},
		{4, 0, '╮'},
		{0, 2, '│'},
		{0, 3, '╰'},
		{4, 3, '╯'},
	}
	for _, tt := range tests {
		c := lv.Cell(tt.x, tt.y)
		if got := outlineGlyphs[wallArms(lv, tt.x, tt.y, c.Mask)]; got != tt.want {
			t.Errorf("wall at (%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCompactGlyph(t *testing.T) {
	dot := level.NewCell(level.Dot)
	eaten := level.NewCell(level.Dot)
	eaten.Eaten = true
	wall := level.NewCell(level.Wall)
	wall.Mask = level.UpperLeft | level.UpperRight

	tests := []struct {
		name         string
		upper, lower level.Cell
		want         rune
	}{
		{"two dots", dot, dot, ':'},
		{"upper dot", dot, eaten, '˙'},
		{"lower dot", level.Cell{}, dot, '.'},
		{"wall over dot", wall, dot, '▀'},
		{"pellet", level.NewCell(level.PowerPellet), dot, PelletChar},
		{"empty", level.Cell{}, level.Cell{}, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := compactGlyph(tt.upper, tt.lower); got != tt.want {
				t.Errorf("compactGlyph() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestLoadScripts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clyde.lua")
	if err := os.WriteFile(path, []byte("function next_move() return nil end\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	scripts, err := loadScripts(map[string]string{
		"Clyde": path,
		"pinky": filepath.Join(dir, "missing.lua"),
	})
	if err == nil {
		t.Error("loadScripts() ignored a missing file")
	}
	if _, ok := scripts["clyde"]; !ok || len(scripts) != 1 {
		t.Errorf("loadScripts() = %v, expected only clyde", scripts)
	}
}

func TestSetDifficultyOverridesPreset(t *testing.T) {
	g := newTestGame(t, model.PacMan)
	g.SetDifficulty("easy")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1})
	g.Step(press(core.ActionCoin))
	g.Step(press(core.ActionConfirm))

	if got := g.Model().Lives(); got != 5 {
		t.Errorf("Lives() = %d on easy, expected 5", got)
	}
}
