package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/pacman-arcade/internal/core"
	"github.com/vovakirdan/pacman-arcade/internal/games/pacman/move"
)

var (
	ErrBadDemoToken = errors.New("bad demo token")
	ErrDemoMismatch = errors.New("demo tracks do not match")
	ErrUnknownLevel = errors.New("demo names an unknown level")
	ErrGameRunning  = errors.New("a game is in progress")
	ErrEmptyDemo    = errors.New("demo has no tracks")
)

// Track is the recorded moves of one actor.
type Track struct {
	Actor string
	Moves move.List
}

// Demo is a recorded game: the level it was played on and one track per
// actor, in the order the level spawns them.
type Demo struct {
	Name   string
	Level  string
	Tracks []Track
}

// ParseDemo reads a demo file: the level name on the first line, then one
// line per actor of tab separated "(dx, dy):count" runs after the actor's
// name. Every track must hold the same number of moves.
func ParseDemo(name string, r io.Reader) (*Demo, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading demo %s: %w", name, err)
		}
		return nil, fmt.Errorf("demo %s: %w", name, ErrEmptyDemo)
	}
	d := &Demo{Name: name, Level: strings.TrimSpace(sc.Text())}
	if d.Level == "" {
		return nil, fmt.Errorf("demo %s: missing level name: %w", name, ErrBadDemoToken)
	}

	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		t := Track{Actor: strings.TrimSpace(fields[0])}
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			mv, n, err := parseRun(f)
			if err != nil {
				return nil, fmt.Errorf("demo %s line %d: %w", name, line, err)
			}
			t.Moves.Add(mv, n)
		}
		d.Tracks = append(d.Tracks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading demo %s: %w", name, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// parseRun splits "(dx, dy):count".
func parseRun(tok string) (move.Move, int, error) {
	i := strings.LastIndexByte(tok, ':')
	if i < 0 {
		return move.Neutral, 0, fmt.Errorf("%w %q: missing count", ErrBadDemoToken, tok)
	}
	mv, err := move.Parse(tok[:i])
	if err != nil {
		return move.Neutral, 0, fmt.Errorf("%w: %v", ErrBadDemoToken, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(tok[i+1:]))
	if err != nil || n < 0 {
		return move.Neutral, 0, fmt.Errorf("%w %q: bad count", ErrBadDemoToken, tok)
	}
	return mv, n, nil
}

// Len returns the number of ticks the demo lasts.
func (d *Demo) Len() int {
	if len(d.Tracks) == 0 {
		return 0
	}
	return d.Tracks[0].Moves.Len()
}

// Validate checks that the demo has tracks of equal length.
func (d *Demo) Validate() error {
	if len(d.Tracks) == 0 {
		return fmt.Errorf("demo %s: %w", d.Name, ErrEmptyDemo)
	}
	want := d.Tracks[0].Moves.Len()
	for _, t := range d.Tracks[1:] {
		if got := t.Moves.Len(); got != want {
			return fmt.Errorf("demo %s: %w: %s has %d moves, %s has %d",
				d.Name, ErrDemoMismatch, d.Tracks[0].Actor, want, t.Actor, got)
		}
	}
	return nil
}

// String renders the demo in the file format ParseDemo reads.
func (d *Demo) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// WriteTo writes the demo in the file format ParseDemo reads.
func (d *Demo) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	c, err := fmt.Fprintln(bw, d.Level)
	n += int64(c)
	if err != nil {
		return n, err
	}
	for _, t := range d.Tracks {
		c, err = fmt.Fprintf(bw, "%s\t%s\n", t.Actor, t.Moves.String())
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// AddDemo makes d available to the attract loop of variant v.
func (m *Model) AddDemo(d *Demo, v Variant) error {
	if err := d.Validate(); err != nil {
		return err
	}
	m.demos = append(m.demos, demoEntry{demo: d, variant: v})
	return nil
}

// Demos returns the names of the demos added for variant v.
func (m *Model) Demos(v Variant) []string {
	var names []string
	for _, e := range m.demos {
		if e.variant == v {
			names = append(names, e.demo.Name)
		}
	}
	return names
}

// ValidateDemo checks that d can be played on this model: its level is
// loaded for the model's variant and has an actor for every track.
func (m *Model) ValidateDemo(d *Demo) error {
	_, _, err := m.demoLevel(d)
	return err
}

func (m *Model) demoLevel(d *Demo) (levelEntry, int, error) {
	if err := d.Validate(); err != nil {
		return levelEntry{}, 0, err
	}
	idx := 0
	for _, e := range m.levels {
		if e.variant != m.opts.Variant {
			continue
		}
		if e.lv.Name() == d.Level {
			if len(d.Tracks) > e.actors {
				return levelEntry{}, 0, fmt.Errorf("demo %s: %w: %d tracks for %d actors on %s",
					d.Name, ErrDemoMismatch, len(d.Tracks), e.actors, d.Level)
			}
			return e, idx, nil
		}
		idx++
	}
	return levelEntry{}, 0, fmt.Errorf("demo %s: %w %q", d.Name, ErrUnknownLevel, d.Level)
}

// LoadDemo switches to the demo's level and queues its moves on the
// actors. Nothing changes when the demo is rejected.
func (m *Model) LoadDemo(d *Demo) error {
	if m.state != GameOver {
		return ErrGameRunning
	}
	e, idx, err := m.demoLevel(d)
	if err != nil {
		return err
	}

	m.levelNumber = idx
	m.setCurrentLevel(e.lv)
	m.current.PutWord("GAME  OVER", 9, 17, core.ColorRed)
	for i, t := range d.Tracks {
		q := m.cast.movers[i].Queue()
		q.Clear()
		q.Merge(&t.Moves)
	}
	m.log.Debug("demo loaded", "demo", d.Name, "level", d.Level, "ticks", d.Len())
	return nil
}

// recorder collects the moves of one level as it is played.
type recorder struct {
	level  string
	index  map[actor]int
	tracks []Track
	armed  bool
}

func newRecorder() *recorder {
	return &recorder{armed: true}
}

func (r *recorder) start(levelName string, movers []actor) {
	r.armed = false
	r.level = levelName
	r.index = make(map[actor]int, len(movers))
	r.tracks = make([]Track, len(movers))
	for i, a := range movers {
		r.index[a] = i
		r.tracks[i].Actor = trackName(a)
	}
}

func (r *recorder) record(a actor) {
	if r.armed {
		return
	}
	if i, ok := r.index[a]; ok {
		r.tracks[i].Moves.Push(a.LastMove())
	}
}

// StartRecording records the next level that starts, until it ends or
// StopRecording is called.
func (m *Model) StartRecording() {
	m.rec = newRecorder()
	m.recDone = nil
}

// IsRecording reports whether a recording is armed or running.
func (m *Model) IsRecording() bool { return m.rec != nil }

// StopRecording ends the recording and returns it. ok is false when
// nothing was captured.
func (m *Model) StopRecording() (*Demo, bool) {
	if m.rec != nil {
		m.finishRecording()
	}
	d := m.recDone
	m.recDone = nil
	return d, d != nil
}

// finishRecording keeps what the recorder captured, if anything.
func (m *Model) finishRecording() {
	r := m.rec
	m.rec = nil
	if r.armed || len(r.tracks) == 0 || r.tracks[0].Moves.Empty() {
		return
	}
	m.recDone = &Demo{Name: "recorded", Level: r.level, Tracks: r.tracks}
}

// armRecording starts an armed recorder on a freshly built level.
func (m *Model) armRecording() {
	if m.rec != nil && m.rec.armed && m.cast.player != nil {
		m.rec.start(m.current.Name(), m.cast.movers)
	}
}
