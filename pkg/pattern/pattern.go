// Package pattern seeds initial states onto anything that exposes a grid
// size and a cell writer.
package pattern

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/ojrac/opensimplex-go"

	"toroid/pkg/core"
)

// Target receives seeded cells.
type Target interface {
	Width() int
	Height() int
	Seed(x, y, v int) error
}

// Pattern writes an initial state onto a Target. rng is the only source of
// randomness a pattern may use, so the same seed always yields the same state.
type Pattern interface {
	Apply(t Target, rng *core.RNG) error
}

// Empty leaves the target untouched.
type Empty struct{}

func (Empty) Apply(Target, *core.RNG) error { return nil }

// Points sets Value at each offset from At. Offsets wrap around the target
// edges so a shape can be placed anywhere.
type Points struct {
	At      image.Point
	Offsets []image.Point
	Value   int
}

func (p Points) Apply(t Target, _ *core.RNG) error {
	v := p.Value
	if v == 0 {
		v = 1
	}
	w, h := t.Width(), t.Height()
	for _, o := range p.Offsets {
		x := core.Wrap(p.At.X+o.X, w)
		y := core.Wrap(p.At.Y+o.Y, h)
		if err := t.Seed(x, y, v); err != nil {
			return err
		}
	}
	return nil
}

// Glider places a south-east travelling glider with its bounding box at at.
func Glider(at image.Point) Points {
	return Points{At: at, Offsets: []image.Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}}
}

// Blinker places a vertical period-2 oscillator whose top cell is at.
func Blinker(at image.Point) Points {
	return Points{At: at, Offsets: []image.Point{{0, 0}, {0, 1}, {0, 2}}}
}

// Blinky fills the grid with a lattice of vertical blinkers, one every
// Stride cells in both directions.
type Blinky struct {
	Stride int
}

func (b Blinky) Apply(t Target, rng *core.RNG) error {
	stride := b.Stride
	if stride < 4 {
		stride = 4
	}
	for y := 1; y+2 < t.Height(); y += stride {
		for x := 1; x < t.Width(); x += stride {
			if err := Blinker(image.Pt(x, y)).Apply(t, rng); err != nil {
				return err
			}
		}
	}
	return nil
}

// Random switches each cell on with probability Density.
type Random struct {
	Density float64
	Value   int
}

func (r Random) Apply(t Target, rng *core.RNG) error {
	v := r.Value
	if v == 0 {
		v = 1
	}
	for y := 0; y < t.Height(); y++ {
		for x := 0; x < t.Width(); x++ {
			if rng.Chance(r.Density) {
				if err := t.Seed(x, y, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Noise samples opensimplex noise at Scale cells per unit and switches on
// every cell whose normalised sample exceeds Threshold. A Value of 0 writes
// the sample itself scaled to [1,255].
type Noise struct {
	Scale     float64
	Threshold float64
	Value     int
}

func (n Noise) Apply(t Target, rng *core.RNG) error {
	scale := n.Scale
	if scale <= 0 {
		scale = 16
	}
	os := opensimplex.New(rng.Source().Int64())
	for y := 0; y < t.Height(); y++ {
		for x := 0; x < t.Width(); x++ {
			s := (os.Eval2(float64(x)/scale, float64(y)/scale) + 1) / 2
			if s <= n.Threshold {
				continue
			}
			v := n.Value
			if v == 0 {
				v = 1 + int(s*254)
			}
			if err := t.Seed(x, y, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pulse sets a single cell, the usual start for a propagation wave.
type Pulse struct {
	At    image.Point
	Value int
}

func (p Pulse) Apply(t Target, rng *core.RNG) error {
	v := p.Value
	if v == 0 {
		v = 255
	}
	return Points{At: p.At, Offsets: []image.Point{{}}, Value: v}.Apply(t, rng)
}

// Parse resolves a pattern name for a w*h grid. Accepted forms are
// "empty", "glider", "blinker", "blinky[:stride]", "random[:density]",
// "noise[:threshold]" and "pulse[:value]". Positional shapes are centred.
func Parse(name string, w, h int) (Pattern, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	centre := image.Pt(w/2, h/2)
	switch kind {
	case "", "empty", "none":
		return Empty{}, nil
	case "glider":
		return Glider(centre.Sub(image.Pt(1, 1))), nil
	case "blinker":
		return Blinker(centre.Sub(image.Pt(0, 1))), nil
	case "blinky":
		b := Blinky{Stride: 6}
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", name, err)
			}
			b.Stride = n
		}
		return b, nil
	case "random":
		r := Random{Density: 0.25}
		if hasArg {
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil || f < 0 || f > 1 {
				return nil, fmt.Errorf("pattern %q: density must be in [0,1]", name)
			}
			r.Density = f
		}
		return r, nil
	case "noise":
		n := Noise{Scale: 16, Threshold: 0.6, Value: 1}
		if hasArg {
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil || f < 0 || f > 1 {
				return nil, fmt.Errorf("pattern %q: threshold must be in [0,1]", name)
			}
			n.Threshold = f
		}
		return n, nil
	case "pulse":
		p := Pulse{At: centre, Value: 255}
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 || n > 255 {
				return nil, fmt.Errorf("pattern %q: value must be in [1,255]", name)
			}
			p.Value = n
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown pattern %q", name)
}
