package core

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalidKernelOffset reports a kernel tap whose offset magnitude reaches
// the grid dimension it is applied to.
var ErrInvalidKernelOffset = errors.New("invalid kernel offset")

// Offset is a position relative to the origin cell.
type Offset struct {
	DX, DY int
}

// Tap is a single weighted kernel element.
type Tap struct {
	Weight float64
	Offset
}

// Tap1D is a kernel element translated into flat index space.
type Tap1D struct {
	Weight float64
	Delta  int
}

// Kernel is an immutable, ordered sequence of weighted offsets. The zero value
// is an empty kernel.
type Kernel struct {
	taps []Tap
}

// NewKernel builds a kernel from caller-supplied taps. The taps are copied and
// trusted; call Validate against a grid size before use.
func NewKernel(taps ...Tap) Kernel {
	return Kernel{taps: append([]Tap(nil), taps...)}
}

// Kernel2D lays out a w*h kernel in row-major order centred on (w>>1, h>>1).
func Kernel2D(w, h int, weights []float64) (Kernel, error) {
	if w <= 0 || h <= 0 {
		return Kernel{}, fmt.Errorf("kernel size %dx%d must be positive", w, h)
	}
	if len(weights) != w*h {
		return Kernel{}, fmt.Errorf("kernel weights length %d does not match %dx%d", len(weights), w, h)
	}
	ow, oh := w>>1, h>>1
	taps := make([]Tap, 0, w*h)
	i := 0
	for dy := -oh; dy < h-oh; dy++ {
		for dx := -ow; dx < w-ow; dx++ {
			taps = append(taps, Tap{Weight: weights[i], Offset: Offset{DX: dx, DY: dy}})
			i++
		}
	}
	return Kernel{taps: taps}, nil
}

// Moore returns the 3x3 neighborhood with unit weights and a zero-weight origin.
func Moore() Kernel {
	k, _ := Kernel2D(3, 3, []float64{1, 1, 1, 1, 0, 1, 1, 1, 1})
	return k
}

// Cardinal returns the four orthogonal neighbors plus a zero-weight origin.
func Cardinal() Kernel {
	return NewKernel(
		Tap{Weight: 1, Offset: Offset{DX: 0, DY: -1}},
		Tap{Weight: 1, Offset: Offset{DX: 1, DY: 0}},
		Tap{Weight: 0, Offset: Offset{DX: 0, DY: 0}},
		Tap{Weight: 1, Offset: Offset{DX: 0, DY: 1}},
		Tap{Weight: 1, Offset: Offset{DX: -1, DY: 0}},
	)
}

// Len returns the number of taps.
func (k Kernel) Len() int { return len(k.taps) }

// At returns the i-th tap.
func (k Kernel) At(i int) Tap { return k.taps[i] }

// Taps returns a copy of the taps.
func (k Kernel) Taps() []Tap { return append([]Tap(nil), k.taps...) }

// Extent returns the largest absolute offset along each axis.
func (k Kernel) Extent() (maxDX, maxDY int) {
	for _, t := range k.taps {
		if a := abs(t.DX); a > maxDX {
			maxDX = a
		}
		if a := abs(t.DY); a > maxDY {
			maxDY = a
		}
	}
	return maxDX, maxDY
}

// Validate checks every tap against a w*h grid. All offending taps are
// reported together.
func (k Kernel) Validate(w, h int) error {
	var err error
	for i, t := range k.taps {
		if abs(t.DX) >= w || abs(t.DY) >= h {
			err = multierr.Append(err, fmt.Errorf("%w: tap %d (%d,%d) on %dx%d grid",
				ErrInvalidKernelOffset, i, t.DX, t.DY, w, h))
		}
	}
	return err
}

// Translate1D converts the kernel into flat index deltas for a row stride.
func (k Kernel) Translate1D(stride int) []Tap1D {
	out := make([]Tap1D, len(k.taps))
	for i, t := range k.taps {
		out[i] = Tap1D{Weight: t.Weight, Delta: t.DX + t.DY*stride}
	}
	return out
}

// Preset names a built-in kernel.
type Preset uint8

const (
	PresetMoore Preset = iota
	PresetCardinal
)

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case PresetMoore:
		return "moore"
	case PresetCardinal:
		return "cardinal"
	}
	return fmt.Sprintf("preset(%d)", uint8(p))
}

// Kernel builds the kernel for the preset.
func (p Preset) Kernel() Kernel {
	if p == PresetCardinal {
		return Cardinal()
	}
	return Moore()
}

// ParsePreset looks up a preset by name.
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "moore":
		return PresetMoore, nil
	case "cardinal", "von-neumann", "vonneumann":
		return PresetCardinal, nil
	}
	return 0, fmt.Errorf("unknown kernel preset %q", name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
