package water

import "image/color"

const (
	displayLevelMask   = 0x0f
	displayMarkerShift = 4
	displayMarkerMask  = 0x30
	displayBlockingBit = 0x40
	displayFlowBit     = 0x80

	displayLevels = displayLevelMask
)

// marker tags cells taking part in the active search.
type marker uint8

const (
	markerNone marker = iota
	markerVisited
	markerFrontier
	markerTarget
)

var waterPalette = buildWaterPalette()

// Palette exposes the color palette used for rendering the display buffer.
func (e *Engine) Palette() []color.RGBA {
	return waterPalette
}

func buildWaterPalette() []color.RGBA {
	palette := make([]color.RGBA, displayFlowBit<<1)
	for i := range palette {
		level := i & displayLevelMask
		m := marker((i & displayMarkerMask) >> displayMarkerShift)
		blocking := i&displayBlockingBit != 0
		c := paletteColorFor(level, m, blocking)
		if i&displayFlowBit != 0 && !blocking {
			c = blendColors(c, color.NRGBA{R: 0, G: 200, B: 200, A: 255}, 0.35)
		}
		palette[i] = toRGBA(c)
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(level int, m marker, blocking bool) color.NRGBA {
	if blocking {
		return color.NRGBA{R: 20, G: 20, B: 24, A: 255}
	}
	var base color.NRGBA
	switch m {
	case markerTarget:
		base = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	case markerFrontier:
		base = color.NRGBA{R: 100, G: 0, B: 0, A: 255}
	case markerVisited:
		base = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
	default:
		base = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if level == 0 {
		return base
	}
	water := color.NRGBA{R: 0, G: 0, B: 200, A: 255}
	return blendColors(base, water, 0.25+0.65*float64(level)/displayLevels)
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	mix := func(a, b uint8) uint8 { return uint8(float64(a)*inv + float64(b)*w + 0.5) }
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

// quantizeLevel maps [0, capacity] onto [0, 15] so that any water at all shows.
func quantizeLevel(level, capacity int) uint8 {
	if level <= 0 || capacity <= 0 {
		return 0
	}
	q := (level*displayLevels + capacity - 1) / capacity
	if q < 1 {
		q = 1
	}
	if q > displayLevels {
		q = displayLevels
	}
	return uint8(q)
}

// encodeDisplayValue packs a cell for the palette. spent marks water that can
// no longer be pulled through the cell this pass.
func encodeDisplayValue(level uint8, m marker, blocking, spent bool) uint8 {
	if blocking {
		return displayBlockingBit
	}
	v := level&displayLevelMask | uint8(m)<<displayMarkerShift&displayMarkerMask
	if spent {
		v |= displayFlowBit
	}
	return v
}

// DecodeDisplayValue splits a display byte into its quantised level, search
// marker (0 none, 1 visited, 2 frontier, 3 target) and blocking flag.
func DecodeDisplayValue(v uint8) (level uint8, searchMarker uint8, blocking bool) {
	return v & displayLevelMask, (v & displayMarkerMask) >> displayMarkerShift, v&displayBlockingBit != 0
}

// DisplayFlowSpent reports whether a display byte marks a wet cell whose flow
// is below its level.
func DisplayFlowSpent(v uint8) bool { return v&displayFlowBit != 0 }

func flowSpent(c Cell) bool { return c.WaterLevel > 0 && c.Flow < c.WaterLevel }

func (e *Engine) rebuildDisplay() {
	capacity := e.cfg.Params.MaxWaterLevel
	for i, c := range e.cells {
		e.display[i] = encodeDisplayValue(quantizeLevel(c.WaterLevel, capacity), markerNone, c.Blocking, flowSpent(c))
	}
	if !e.search.active() {
		return
	}
	mark := func(i int, m marker) {
		c := e.cells[i]
		e.display[i] = encodeDisplayValue(quantizeLevel(c.WaterLevel, capacity), m, c.Blocking, flowSpent(c))
	}
	for _, i := range e.search.visited {
		mark(i, markerVisited)
	}
	for _, i := range e.search.frontier[e.search.head:] {
		mark(i, markerFrontier)
	}
	mark(e.search.target, markerTarget)
}
