//go:build ebiten

package ui

import (
	"image/color"

	"toroid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay highlights the cells the last tick changed. Key 1 toggles it.
type Overlay struct {
	sim     core.Sim
	scale   int
	show    bool
	prev    []uint8
	changed []bool
	img     *ebiten.Image
	buf     []byte
	tint    color.RGBA
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:   sim,
		scale: scale,
		prev:  append([]uint8(nil), sim.Cells()...),
		img:   ebiten.NewImage(size.W, size.H),
		buf:   make([]byte, 4*size.W*size.H),
		tint:  color.RGBA{R: 255, G: 120, B: 40, A: 150},
	}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Observe diffs the sim against the previous observation. Call it after
// every Step.
func (o *Overlay) Observe() {
	o.changed = ChangedMask(o.changed, o.prev, o.sim.Cells())
	o.prev = append(o.prev[:0], o.sim.Cells()...)
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || len(o.changed) != len(o.buf)/4 {
		return
	}
	for i, c := range o.changed {
		col := color.RGBA{}
		if c {
			col = o.tint
		}
		base := i * 4
		o.buf[base+0] = col.R
		o.buf[base+1] = col.G
		o.buf[base+2] = col.B
		o.buf[base+3] = col.A
	}
	o.img.WritePixels(o.buf)
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}
