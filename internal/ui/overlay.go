//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status panel on top of the grid.
type Overlay struct {
	hidden   bool
	showHelp bool
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the panel (Tab) and the key help (H).
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.hidden = !o.hidden
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the status lines in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image, s Status) {
	if o.hidden {
		return
	}
	lines := s.Lines()
	if o.showHelp {
		lines = append(lines, Help())
	}

	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}
	height := len(lines)*lineHeight + 2*panelPadding

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*panelPadding), float64(height))
	op.ColorScale.Scale(0.06, 0.06, 0.08, 0.75)
	screen.DrawImage(o.pixel, op)

	fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	for i, line := range lines {
		text.Draw(screen, line, face, panelPadding, panelPadding+baseline+i*lineHeight, fg)
	}
}

const (
	panelPadding = 6
	lineHeight   = 16
	baseline     = 11
)
