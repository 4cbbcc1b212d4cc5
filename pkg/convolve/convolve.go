// Package convolve applies weighted kernels to a grid to produce per-cell
// neighbor aggregates.
package convolve

import "toroid/pkg/core"

// Reducer folds the weighted samples of one cell into an aggregate.
type Reducer[T any] func(terms []float64) T

// Buffer is caller-owned scratch space reused across cells so convolution
// does not allocate per cell. A Buffer must not be shared between goroutines.
type Buffer struct {
	terms   []float64
	targets []int
}

// NewBuffer sizes a buffer for k.
func NewBuffer(k core.Kernel) *Buffer {
	return &Buffer{
		terms:   make([]float64, 0, k.Len()),
		targets: make([]int, 0, k.Len()),
	}
}

// Terms returns the samples written by the most recent Convolve call.
func (b *Buffer) Terms() []float64 { return b.terms }

// Convolve samples every tap of k around origin, weights it and reduces the
// samples. Under Bounded topology taps that leave the grid are skipped.
func Convolve[T any](k core.Kernel, origin int, g *core.Grid, topo Topology, buf *Buffer, reduce Reducer[T]) T {
	w, h := g.Width(), g.Height()
	x, y := core.ToXY(origin, w)
	cells := g.Cells()
	terms := buf.terms[:0]
	for i := 0; i < k.Len(); i++ {
		tap := k.At(i)
		target, ok := resolve(x, y, tap.Offset, w, h, topo)
		if !ok {
			continue
		}
		terms = append(terms, float64(cells[target])*tap.Weight)
	}
	buf.terms = terms
	return reduce(terms)
}

// SumInline is Convolve with a Sum reducer and no intermediate buffer.
func SumInline(k core.Kernel, origin int, g *core.Grid, topo Topology) float64 {
	w, h := g.Width(), g.Height()
	x, y := core.ToXY(origin, w)
	cells := g.Cells()
	total := 0.0
	for i := 0; i < k.Len(); i++ {
		tap := k.At(i)
		if tap.Weight == 0 {
			continue
		}
		target, ok := resolve(x, y, tap.Offset, w, h, topo)
		if !ok {
			continue
		}
		total += float64(cells[target]) * tap.Weight
	}
	return total
}

// sumFlat is SumInline for an origin whose taps all stay on the grid.
func sumFlat(taps []core.Tap1D, origin int, cells []uint8) float64 {
	total := 0.0
	for _, t := range taps {
		if t.Weight == 0 {
			continue
		}
		total += float64(cells[origin+t.Delta]) * t.Weight
	}
	return total
}

func resolve(x, y int, off core.Offset, w, h int, topo Topology) (int, bool) {
	if topo == Bounded {
		return core.Bounded(x, y, off.DX, off.DY, w, h)
	}
	return core.WrapOffset1D(x, y, off.DX, off.DY, w, h), true
}

// Sum adds all samples.
func Sum(terms []float64) float64 {
	total := 0.0
	for _, v := range terms {
		total += v
	}
	return total
}

// CountNonZero counts samples that are not zero.
func CountNonZero(terms []float64) int {
	n := 0
	for _, v := range terms {
		if v != 0 {
			n++
		}
	}
	return n
}

// Max returns the largest sample, or zero when there are none.
func Max(terms []float64) float64 {
	best := 0.0
	for i, v := range terms {
		if i == 0 || v > best {
			best = v
		}
	}
	return best
}
