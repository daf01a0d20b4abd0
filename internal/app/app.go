//go:build ebiten

package app

import (
	"water-ca/internal/render"
	"water-ca/internal/sims/water"
	"water-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the water engine to the ebiten.Game interface.
type Game struct {
	engine  *water.Engine
	painter *render.GridPainter
	overlay *ui.Overlay
	brush   Brush

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided engine.
func New(engine *water.Engine, scale int, seed int64) *Game {
	size := engine.Size()
	return &Game{
		engine:  engine,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(),
		scale:   scale,
		seed:    seed,
	}
}

// SetPaused starts or stops automatic ticking.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Reset reinitializes the engine with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.engine.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the engine.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.engine.SetMode(mode); err != nil {
				return err
			}
		}
	}

	g.overlay.Update()
	if err := g.handleMouse(); err != nil {
		return err
	}

	if !g.paused || g.tickOnce {
		g.engine.Advance()
		g.tickOnce = false
	}
	return nil
}

var modeKeys = map[ebiten.Key]water.Mode{
	ebiten.KeyDigit1: water.ModeRealtime,
	ebiten.KeyDigit2: water.ModeResolution,
	ebiten.KeyDigit3: water.ModeStep,
}

func (g *Game) handleMouse() error {
	button := ButtonNone
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		button = ButtonWater
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		button = ButtonWall
	}
	mx, my := ebiten.CursorPosition()
	x, y := CellAt(g.engine.Grid(), mx, my, g.scale)
	return g.brush.Apply(g.engine, button, x, y)
}

// Draw renders the current engine state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.engine.Cells(), g.engine.Palette(), g.scale)
	g.overlay.Draw(screen, ui.Status{
		Mode:      g.engine.Mode(),
		Stats:     g.engine.Stats(),
		Water:     g.engine.TotalWater(),
		Settled:   g.engine.Settled(),
		Paused:    g.paused,
		Brush:     g.brush.Mode(),
		Searching: g.engine.DebugView().HasTarget,
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.engine.Size()
	return s.W * g.scale, s.H * g.scale
}
