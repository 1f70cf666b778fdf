package level

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a level: a "<name> <width> <height>" header followed by
// height rows of exactly width characters. Empty lines are skipped.
func Parse(r io.Reader) (*Level, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read level header: %w", err)
		}
		return nil, fmt.Errorf("read level header: empty input")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 3 {
		return nil, fmt.Errorf("level header %q: expected <name> <width> <height>", sc.Text())
	}
	w, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("level %s: bad width: %w", fields[0], err)
	}
	h, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("level %s: bad height: %w", fields[0], err)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("level %s: dimensions %dx%d must be positive", fields[0], w, h)
	}

	var rows []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if len(rows) == h {
			return nil, fmt.Errorf("level %s: more than %d rows", fields[0], h)
		}
		if len(line) != w {
			return nil, fmt.Errorf("level %s: row %d has %d characters, expected %d", fields[0], len(rows), len(line), w)
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read level %s: %w", fields[0], err)
	}
	if len(rows) != h {
		return nil, fmt.Errorf("level %s: got %d rows, expected %d", fields[0], len(rows), h)
	}

	lv := &Level{name: fields[0], width: w, height: h, rows: rows}
	if err := lv.regenerate(); err != nil {
		return nil, err
	}
	return lv, nil
}

// MustParse is like Parse but panics on error. It is meant for embedded
// level data, where a malformed file is a build defect.
func MustParse(s string) *Level {
	lv, err := Parse(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return lv
}

// kindOf maps a level character to the cell it produces. Spawn markers
// (digits and letters) are empty cells.
func kindOf(ch byte) Kind {
	switch ch {
	case 'X':
		return Wall
	case '=':
		return Gate
	case '.':
		return Dot
	case 'O':
		return PowerPellet
	case 'T':
		return Tunnel
	default:
		return Empty
	}
}
