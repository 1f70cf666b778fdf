package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pacman-arcade/internal/storage"
)

func TestOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1ST"},
		{2, "2ND"},
		{3, "3RD"},
		{4, "4TH"},
		{11, "11TH"},
		{12, "12TH"},
		{13, "13TH"},
		{21, "21ST"},
		{102, "102ND"},
		{111, "111TH"},
	}
	for _, tt := range tests {
		if got := ordinal(tt.n); got != tt.want {
			t.Errorf("ordinal(%d) = %q, expected %q", tt.n, got, tt.want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"", 8, "?"},
		{"BOB", 8, "BOB"},
		{"MADELEINE", 8, "MADELEI."},
		{"ÉLODIE", 6, "ÉLODIE"},
	}
	for _, tt := range tests {
		if got := truncateName(tt.name, tt.width); got != tt.want {
			t.Errorf("truncateName(%q, %d) = %q, expected %q", tt.name, tt.width, got, tt.want)
		}
	}
}

func TestScoreboardRows(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{GameID: "pacman", Name: "ALICE", Level: 3, Score: 500},
		{GameID: "pacman", Name: "BOB", Level: 1, Score: 300},
	} {
		if _, err := store.Record(e); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 40, "BOB")
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(Rows()) = %d, expected 2", len(rows))
	}
	if rows[0][0] != "" || rows[0][1] != "1ST" || rows[0][2] != "ALICE" {
		t.Errorf("row 0 = %v, expected unmarked 1ST ALICE", rows[0])
	}
	if rows[1][0] != "*" || rows[1][1] != "2ND" || rows[1][2] != "BOB" {
		t.Errorf("row 1 = %v, expected marked 2ND BOB", rows[1])
	}
	if len(rows[0]) != 6 {
		t.Errorf("len(row) = %d at width 80, expected the date column", len(rows[0]))
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "[PAC-MAN]", "2 games", "best 500"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() does not contain %q", want)
		}
	}

	// The next cabinet has no scores yet
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := len(next.(ScoreboardModel).table.Rows()); got != 0 {
		t.Errorf("len(Rows()) = %d on the second cabinet, expected 0", got)
	}
	if !strings.Contains(next.View(), "Insert a coin") {
		t.Error("View() for an empty cabinet does not invite a coin")
	}
}

func TestScoreboardNarrowDropsDate(t *testing.T) {
	m := NewScoreboardModel(nil, 40, 20, "")
	if got := len(m.table.Columns()); got != 5 {
		t.Errorf("len(Columns()) = %d at width 40, expected 5", got)
	}
}
