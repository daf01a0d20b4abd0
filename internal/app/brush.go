package app

import (
	"water-ca/internal/core"
	"water-ca/internal/sims/water"
)

// Button identifies which pointer button is held over the grid.
type Button uint8

const (
	ButtonNone Button = iota
	// ButtonWater fills or drains water.
	ButtonWater
	// ButtonWall places or removes walls.
	ButtonWall
)

type brushMode uint8

const (
	brushSelect brushMode = iota
	brushAdd
	brushRemove
)

func (m brushMode) String() string {
	switch m {
	case brushAdd:
		return "add"
	case brushRemove:
		return "remove"
	default:
		return "select"
	}
}

type cellEditor interface {
	Grid() core.Grid
	MaxWaterLevel() int
	CellState(i int) (water.Cell, error)
	EditCell(i int, edit water.CellEdit) error
}

// Brush turns held pointer buttons into cell edits. The first cell touched
// in a drag decides whether the drag adds or removes; the choice sticks
// until the button is released.
type Brush struct {
	mode brushMode
}

// Release ends the current drag.
func (b *Brush) Release() { b.mode = brushSelect }

// Mode reports the current drag mode.
func (b *Brush) Mode() string { return b.mode.String() }

// Apply edits the cell at (x, y) for the held button. Points outside the grid
// are ignored and leave the drag mode untouched.
func (b *Brush) Apply(ed cellEditor, button Button, x, y int) error {
	grid := ed.Grid()
	if button == ButtonNone {
		b.Release()
		return nil
	}
	if !grid.Contains(x, y) {
		return nil
	}
	i := grid.Index(x, y)
	cell, err := ed.CellState(i)
	if err != nil {
		return err
	}

	switch button {
	case ButtonWater:
		if b.mode == brushSelect {
			b.mode = pick(cell.WaterLevel > 0)
		}
		if cell.Blocking {
			return nil
		}
		if b.mode == brushAdd {
			return ed.EditCell(i, water.SetWaterLevel(ed.MaxWaterLevel()))
		}
		return ed.EditCell(i, water.SetWaterLevel(0))
	case ButtonWall:
		if b.mode == brushSelect {
			b.mode = pick(cell.Blocking)
		}
		return ed.EditCell(i, water.SetBlocking(b.mode == brushAdd))
	}
	return nil
}

func pick(present bool) brushMode {
	if present {
		return brushRemove
	}
	return brushAdd
}

// CellAt maps a screen pixel to grid coordinates for a view drawn at scale
// with row 0 at the bottom.
func CellAt(grid core.Grid, px, py, scale int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	if px < 0 || py < 0 {
		return -1, -1
	}
	return px / scale, grid.H - 1 - py/scale
}
