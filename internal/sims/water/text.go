package water

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"water-ca/internal/core"
)

const (
	runeWall   = '#'
	runeEmpty  = '.'
	runeOver   = '+'
	textDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// levelRune renders a water level as a base-36 digit, '.' for dry cells and
// '+' for levels that do not fit a single digit.
func levelRune(level int) byte {
	switch {
	case level <= 0:
		return runeEmpty
	case level < len(textDigits):
		return textDigits[level]
	default:
		return runeOver
	}
}

// WriteText draws the grid one row per line, top row first.
func (e *Engine) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, e.grid.W+1)
	line[e.grid.W] = '\n'
	for y := e.grid.H - 1; y >= 0; y-- {
		for x := 0; x < e.grid.W; x++ {
			c := e.cells[e.grid.Index(x, y)]
			if c.Blocking {
				line[x] = runeWall
				continue
			}
			line[x] = levelRune(c.WaterLevel)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (e *Engine) String() string {
	var sb strings.Builder
	_ = e.WriteText(&sb)
	return sb.String()
}

// ParseRows reads a text drawing, top row first, into a grid and cell
// layout. '#' is a wall, '.' or '0' is dry, and base-36 digits are levels.
func ParseRows(rows []string) (core.Grid, []Cell, error) {
	if len(rows) == 0 {
		return core.Grid{}, nil, fmt.Errorf("%w: no rows", ErrInvalidScenario)
	}
	width := len(rows[0])
	grid, err := core.NewGrid(width, len(rows))
	if err != nil {
		return core.Grid{}, nil, err
	}
	cells := make([]Cell, grid.Len())
	for r, row := range rows {
		if len(row) != width {
			return core.Grid{}, nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidScenario, r, len(row), width)
		}
		y := grid.H - 1 - r
		for x := 0; x < width; x++ {
			c := &cells[grid.Index(x, y)]
			ch := row[x]
			switch {
			case ch == runeWall:
				c.Blocking = true
			case ch == runeEmpty:
			default:
				lvl := strings.IndexByte(textDigits, lower(ch))
				if lvl < 0 {
					return core.Grid{}, nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrInvalidScenario, ch, r, x)
				}
				c.WaterLevel = lvl
				c.Flow = lvl
			}
		}
	}
	return grid, cells, nil
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}
