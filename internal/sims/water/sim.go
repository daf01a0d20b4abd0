package water

import (
	"fmt"

	"water-ca/internal/core"
)

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "water" }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.grid.W, H: e.grid.H} }

// Step advances the simulation by one tick.
func (e *Engine) Step() { e.Advance() }

// Cells exposes the display buffer, refreshed from the current state.
func (e *Engine) Cells() []uint8 {
	e.rebuildDisplay()
	return e.display
}

// Load replaces the cell store with layout and remembers it as the state
// Reset returns to.
func (e *Engine) Load(layout []Cell) error {
	if len(layout) != len(e.cells) {
		return fmt.Errorf("%w: layout has %d cells, grid has %d", ErrInvalidScenario, len(layout), len(e.cells))
	}
	limit := e.cfg.Params.MaxWaterLevel
	for i, c := range layout {
		if c.WaterLevel < 0 || c.WaterLevel > limit {
			return fmt.Errorf("%w: cell %d level %d not in [0,%d]", ErrInvalidWaterLevel, i, c.WaterLevel, limit)
		}
	}
	e.layout = append(e.layout[:0], layout...)
	e.restart()
	copy(e.cells, e.layout)
	for i := range e.cells {
		e.cells[i].Flow = e.cells[i].WaterLevel
		if e.cells[i].Blocking {
			e.cells[i].WaterLevel = 0
			e.cells[i].Flow = 0
		}
	}
	return nil
}

// Reset restores the loaded layout, or seeds random walls and pools when no
// layout was loaded. A zero seed uses the configured seed.
func (e *Engine) Reset(seed int64) {
	if e.layout != nil {
		_ = e.Load(append([]Cell(nil), e.layout...))
		return
	}
	effective := seed
	if effective == 0 {
		effective = e.cfg.Seed
	}
	e.restart()
	for i := range e.cells {
		e.cells[i] = Cell{}
	}
	rng := core.NewRNG(effective)
	e.sprinkleWalls(rng)
	e.seedPools(rng)
}

func (e *Engine) restart() {
	e.search.end(e.cells)
	e.queue.clear()
	e.stats = Stats{}
	e.passTransfers = 0
	e.passClean = false
	e.settled = false
}

func (e *Engine) sprinkleWalls(rng *core.RNG) {
	chance := e.cfg.Params.WallChance
	if chance <= 0 {
		return
	}
	for i := range e.cells {
		if rng.Chance(chance) {
			e.cells[i].Blocking = true
		}
	}
}

// seedPools drops full discs of water into the upper half of the grid.
func (e *Engine) seedPools(rng *core.RNG) {
	count := e.cfg.Params.PoolCount
	if count <= 0 {
		return
	}
	minR := e.cfg.Params.PoolRadiusMin
	maxR := e.cfg.Params.PoolRadiusMax
	if maxR < minR {
		maxR = minR
	}
	w, h := e.grid.W, e.grid.H
	full := e.cfg.Params.MaxWaterLevel
	for p := 0; p < count; p++ {
		cx := rng.IntN(w)
		cy := h/2 + rng.IntN(h-h/2)
		radius := minR + rng.IntN(maxR-minR+1)
		r2 := radius * radius
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := cx+dx, cy+dy
				if !e.grid.Contains(x, y) || dx*dx+dy*dy > r2 {
					continue
				}
				c := &e.cells[e.grid.Index(x, y)]
				if c.Blocking {
					continue
				}
				c.WaterLevel = full
				c.Flow = full
			}
		}
	}
}

func init() {
	core.Register("water", func(cfg map[string]string) (core.Sim, error) {
		c, err := ParseConfigMap(cfg)
		if err != nil {
			return nil, err
		}
		e, err := NewEngine(c)
		if err != nil {
			return nil, err
		}
		e.Reset(c.Seed)
		return e, nil
	})
}
