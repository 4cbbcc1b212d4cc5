//go:build ebiten

package ui

import (
	"image/color"

	"toroid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 12
	lineHeight   = 16
	groupGap     = 6
)

// HUD renders the read-only parameter and stats panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []Line
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width}
}

// Update refreshes the panel contents from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	h.lines = PanelLines(h.sim)
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + 10
	for _, l := range h.lines {
		if y > height {
			break
		}
		switch l.Kind {
		case LineTitle:
			text.Draw(h.panel, l.Label, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
			y += groupGap
		case LineGroup:
			y += groupGap
			text.Draw(h.panel, l.Label, face, panelPadding, y, color.RGBA{R: 140, G: 170, B: 220, A: 255})
		default:
			fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
			if l.Kind == LineStat {
				fg = color.RGBA{R: 190, G: 220, B: 190, A: 255}
			}
			text.Draw(h.panel, l.Label, face, panelPadding, y, fg)
			w := text.BoundString(face, l.Value).Dx()
			text.Draw(h.panel, l.Value, face, h.width-panelPadding-w, y, fg)
		}
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
