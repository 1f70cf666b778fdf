package model

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHighScoreRoundTrip(t *testing.T) {
	var src bytes.Buffer
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&src, "%d\tplayer %d\n", (i*37)%100*10, i)
	}

	l := &HighScoreList{}
	if err := l.Load(&src); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	var out bytes.Buffer
	if err := l.Save(&out); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	again := &HighScoreList{}
	if err := again.Load(&out); err != nil {
		t.Fatalf("Load(Save()) failed: %v", err)
	}
	scores := again.Scores()
	if len(scores) != MaxHighScores {
		t.Fatalf("Len() = %d, expected %d", len(scores), MaxHighScores)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, scores)
		}
	}
	// The two lowest of the twelve inputs, 70 and 0, are dropped.
	if low := scores[len(scores)-1].Score; low != 110 {
		t.Errorf("lowest kept score = %d, expected 110", low)
	}
	if scores[0].Name != "player 8" || scores[0].Score != 960 {
		t.Errorf("top = %+v, expected {960 player 8}", scores[0])
	}
}

func TestHighScoreLoad(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    int
		wantErr bool
	}{
		{"tabs", "200\tAnn\n100\tBob\n", 2, false},
		{"spaces in name", "300   Mary Ann  \n", 1, false},
		{"stops at blank line", "200 Ann\n\n100 Bob\n", 1, false},
		{"missing name", "200\n", 0, true},
		{"bad score", "lots Ann\n", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultHighScores()
			err := l.Load(strings.NewReader(tt.src))
			if tt.wantErr {
				if !errors.Is(err, ErrBadHighScore) {
					t.Errorf("Load() error = %v, expected %v", err, ErrBadHighScore)
				}
				if l.Len() != MaxHighScores {
					t.Errorf("failed Load() changed the list to %d entries", l.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if l.Len() != tt.want {
				t.Errorf("Len() = %d, expected %d", l.Len(), tt.want)
			}
		})
	}
}

func TestHighScoreNameKeepsSpaces(t *testing.T) {
	l := &HighScoreList{}
	if err := l.Load(strings.NewReader("300   Mary Ann\n")); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := l.Scores()[0].Name; got != "Mary Ann" {
		t.Errorf("Name = %q, expected %q", got, "Mary Ann")
	}
}

func TestHighScoreRecord(t *testing.T) {
	l := DefaultHighScores()
	if l.HighScore() != 100 {
		t.Errorf("HighScore() = %d, expected 100", l.HighScore())
	}
	if l.WouldMakeList(10) {
		t.Error("WouldMakeList(10) = true for a tie with the lowest entry")
	}
	if l.Record("Low", 5) {
		t.Error("Record(5) = true on a full list")
	}
	if !l.Record("Ace", 5000) {
		t.Fatal("Record(5000) = false")
	}
	if l.HighScore() != 5000 || l.Len() != MaxHighScores {
		t.Errorf("HighScore() = %d, Len() = %d", l.HighScore(), l.Len())
	}
	if low := l.Scores()[MaxHighScores-1].Score; low != 20 {
		t.Errorf("lowest = %d, expected 20", low)
	}

	empty := NewHighScoreList()
	if empty.HighScore() != 0 {
		t.Errorf("empty HighScore() = %d, expected 0", empty.HighScore())
	}
	if !empty.WouldMakeList(0) {
		t.Error("WouldMakeList(0) = false on an empty list")
	}
}

func TestHighScoreStableOrder(t *testing.T) {
	l := NewHighScoreList()
	l.Record("first", 100)
	l.Record("second", 100)
	got := l.Scores()
	if got[0].Name != "first" || got[1].Name != "second" {
		t.Errorf("ties reordered: %v", got)
	}
}
