package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// MaxHighScores is how many entries a list keeps.
const MaxHighScores = 10

var ErrBadHighScore = errors.New("invalid high score line")

// HighScore is one entry of the table.
type HighScore struct {
	Score int
	Name  string
}

// HighScoreList is the top scores, best first.
type HighScoreList struct {
	scores []HighScore
}

// NewHighScoreList creates a list holding the best of scores.
func NewHighScoreList(scores ...HighScore) *HighScoreList {
	l := &HighScoreList{scores: append([]HighScore(nil), scores...)}
	l.sort()
	return l
}

// DefaultHighScores returns the table a fresh cabinet shows.
func DefaultHighScores() *HighScoreList {
	scores := make([]HighScore, MaxHighScores)
	for i := range scores {
		scores[i] = HighScore{Score: (MaxHighScores - i) * 10, Name: "Marty"}
	}
	return NewHighScoreList(scores...)
}

// Len returns the number of entries.
func (l *HighScoreList) Len() int { return len(l.scores) }

// Scores returns a copy of the entries, best first.
func (l *HighScoreList) Scores() []HighScore {
	return append([]HighScore(nil), l.scores...)
}

// HighScore returns the best score, or 0 for an empty list.
func (l *HighScoreList) HighScore() int {
	if len(l.scores) == 0 {
		return 0
	}
	return l.scores[0].Score
}

// WouldMakeList reports whether score would earn a place.
func (l *HighScoreList) WouldMakeList(score int) bool {
	if len(l.scores) < MaxHighScores {
		return true
	}
	return score > l.scores[len(l.scores)-1].Score
}

// Record adds a score if it makes the list and reports whether it did.
func (l *HighScoreList) Record(name string, score int) bool {
	if !l.WouldMakeList(score) {
		return false
	}
	l.scores = append(l.scores, HighScore{Score: score, Name: name})
	l.sort()
	for _, s := range l.scores {
		if s.Score == score && s.Name == name {
			return true
		}
	}
	return false
}

// Clear empties the list.
func (l *HighScoreList) Clear() { l.scores = nil }

func (l *HighScoreList) sort() {
	sort.SliceStable(l.scores, func(i, j int) bool {
		return l.scores[i].Score > l.scores[j].Score
	})
	if len(l.scores) > MaxHighScores {
		l.scores = l.scores[:MaxHighScores]
	}
}

// Load replaces the list with entries read from r, one "score name" line
// each. Reading stops at the first blank line.
func (l *HighScoreList) Load(r io.Reader) error {
	var scores []HighScore
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			break
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return fmt.Errorf("line %d: %w: %q", line, ErrBadHighScore, text)
		}
		score, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w: %v", line, ErrBadHighScore, err)
		}
		name := strings.TrimSpace(text[len(fields[0]):])
		scores = append(scores, HighScore{Score: score, Name: name})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading high scores: %w", err)
	}
	l.scores = scores
	l.sort()
	return nil
}

// Save writes the list as "score<TAB>name" lines.
func (l *HighScoreList) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range l.scores {
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", s.Score, s.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}
