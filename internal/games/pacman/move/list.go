package move

import (
	"fmt"
	"strings"
)

// List is a FIFO of forced moves. The zero value is an empty list.
type List struct {
	moves []Move
}

// Add appends n copies of m.
func (l *List) Add(m Move, n int) {
	for i := 0; i < n; i++ {
		l.moves = append(l.moves, m)
	}
}

// Push appends a single move.
func (l *List) Push(m Move) {
	l.moves = append(l.moves, m)
}

// Pop removes and returns the oldest move. ok is false when the list is empty.
func (l *List) Pop() (m Move, ok bool) {
	if len(l.moves) == 0 {
		return Neutral, false
	}
	m = l.moves[0]
	l.moves = l.moves[1:]
	return m, true
}

// Len returns the number of queued moves.
func (l *List) Len() int {
	return len(l.moves)
}

// Empty reports whether nothing is queued.
func (l *List) Empty() bool {
	return len(l.moves) == 0
}

// Clear drops all queued moves.
func (l *List) Clear() {
	l.moves = nil
}

// Merge appends every move of o, leaving o unchanged.
func (l *List) Merge(o *List) {
	l.moves = append(l.moves, o.moves...)
}

// Moves returns a copy of the queued moves.
func (l *List) Moves() []Move {
	out := make([]Move, len(l.moves))
	copy(out, l.moves)
	return out
}

// Run is a move repeated Count times.
type Run struct {
	Move  Move
	Count int
}

// Runs collapses consecutive equal moves.
func (l *List) Runs() []Run {
	var runs []Run
	for _, m := range l.moves {
		if n := len(runs); n > 0 && runs[n-1].Move == m {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run{Move: m, Count: 1})
	}
	return runs
}

// String renders the list as tab separated "(dx, dy):count" runs,
// the same layout demo files use.
func (l *List) String() string {
	var b strings.Builder
	for i, r := range l.Runs() {
		if i > 0 {
			b.WriteByte('\t')
		}
		fmt.Fprintf(&b, "%s:%d", r.Move, r.Count)
	}
	return b.String()
}
