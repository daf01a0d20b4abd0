package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-ca/internal/sims/water"
)

func newTestEngine(t *testing.T, rows ...string) *water.Engine {
	t.Helper()
	cfg := water.DefaultConfig()
	cfg.Params.Mode = water.ModeStep
	e, err := water.NewEngineFromRows(cfg, rows)
	require.NoError(t, err)
	return e
}

func cellAt(t *testing.T, e *water.Engine, x, y int) water.Cell {
	t.Helper()
	c, err := e.CellState(e.Grid().Index(x, y))
	require.NoError(t, err)
	return c
}

func TestBrushWaterDragFillsThenDrains(t *testing.T) {
	e := newTestEngine(t, "...")
	var b Brush

	require.NoError(t, b.Apply(e, ButtonWater, 0, 0))
	require.NoError(t, b.Apply(e, ButtonWater, 1, 0))
	assert.Equal(t, "add", b.Mode())
	assert.Equal(t, e.MaxWaterLevel(), cellAt(t, e, 0, 0).WaterLevel)
	assert.Equal(t, e.MaxWaterLevel(), cellAt(t, e, 1, 0).Flow)

	b.Release()
	assert.Equal(t, "select", b.Mode())

	// Starting on a wet cell drains for the whole drag.
	require.NoError(t, b.Apply(e, ButtonWater, 1, 0))
	require.NoError(t, b.Apply(e, ButtonWater, 2, 0))
	assert.Equal(t, "remove", b.Mode())
	assert.Zero(t, cellAt(t, e, 1, 0).WaterLevel)
	assert.Zero(t, cellAt(t, e, 2, 0).WaterLevel)
	assert.Equal(t, e.MaxWaterLevel(), cellAt(t, e, 0, 0).WaterLevel)
}

func TestBrushWaterSkipsWalls(t *testing.T) {
	e := newTestEngine(t, "#.")
	var b Brush

	require.NoError(t, b.Apply(e, ButtonWater, 0, 0))
	c := cellAt(t, e, 0, 0)
	assert.True(t, c.Blocking)
	assert.Zero(t, c.WaterLevel)
}

func TestBrushWallDrag(t *testing.T) {
	e := newTestEngine(t, "g.#")
	var b Brush

	require.NoError(t, b.Apply(e, ButtonWall, 0, 0))
	require.NoError(t, b.Apply(e, ButtonWall, 2, 0))
	assert.Equal(t, "add", b.Mode())
	c := cellAt(t, e, 0, 0)
	assert.True(t, c.Blocking)
	assert.Zero(t, c.WaterLevel)
	assert.Zero(t, c.Flow)
	assert.True(t, cellAt(t, e, 2, 0).Blocking)

	require.NoError(t, b.Apply(e, ButtonNone, 0, 0))
	require.NoError(t, b.Apply(e, ButtonWall, 2, 0))
	assert.Equal(t, "remove", b.Mode())
	assert.False(t, cellAt(t, e, 2, 0).Blocking)
}

func TestBrushIgnoresPointsOutsideGrid(t *testing.T) {
	e := newTestEngine(t, "..")
	var b Brush

	require.NoError(t, b.Apply(e, ButtonWall, 5, 0))
	require.NoError(t, b.Apply(e, ButtonWall, -1, -1))
	assert.Equal(t, "select", b.Mode())
	assert.Zero(t, e.TotalWater())
}

func TestCellAtFlipsRows(t *testing.T) {
	e := newTestEngine(t, "...", "...")
	grid := e.Grid()

	x, y := CellAt(grid, 0, 0, 4)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)

	x, y = CellAt(grid, 11, 7, 4)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)

	x, y = CellAt(grid, -3, 2, 4)
	assert.False(t, grid.Contains(x, y))
}
