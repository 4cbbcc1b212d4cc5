package convolve

import (
	"errors"
	"fmt"

	"toroid/pkg/core"
)

// ErrUnsupportedStrategy reports a strategy that cannot serve the chosen topology.
var ErrUnsupportedStrategy = errors.New("unsupported convolution strategy")

// Engine binds a kernel, topology and strategy to one grid size. It is
// read-only during a scan, so a single Engine may serve several scanning
// goroutines as long as each brings its own Buffer.
type Engine struct {
	kernel   core.Kernel
	w, h     int
	topo     Topology
	strategy Strategy
	spectral *spectral

	// flat holds the kernel as index deltas for cells at least reachX
	// columns and reachY rows away from every edge.
	flat           []core.Tap1D
	reachX, reachY int
}

// NewEngine validates k against a w*h grid and prepares the strategy.
func NewEngine(k core.Kernel, w, h int, topo Topology, strategy Strategy) (*Engine, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", core.ErrInvalidDimension, w, h)
	}
	if err := k.Validate(w, h); err != nil {
		return nil, err
	}
	e := &Engine{kernel: k, w: w, h: h, topo: topo, strategy: strategy, flat: k.Translate1D(w)}
	e.reachX, e.reachY = k.Extent()
	switch strategy {
	case Buffered, Inline:
	case Spectral:
		if topo != Toroidal {
			return nil, fmt.Errorf("%w: %s requires toroidal topology", ErrUnsupportedStrategy, strategy)
		}
		e.spectral = newSpectral(k, w, h)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, strategy)
	}
	return e, nil
}

// Kernel returns the bound kernel.
func (e *Engine) Kernel() core.Kernel { return e.kernel }

// Topology returns the bound topology.
func (e *Engine) Topology() Topology { return e.topo }

// Strategy returns the bound strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Prepare runs once per tick before any Aggregate call. Only the spectral
// strategy has work to do here.
func (e *Engine) Prepare(g *core.Grid) {
	if e.spectral != nil {
		e.spectral.apply(g.Cells())
	}
}

// Aggregate returns the weighted neighbor sum for idx.
func (e *Engine) Aggregate(g *core.Grid, idx int, buf *Buffer) float64 {
	switch e.strategy {
	case Spectral:
		return e.spectral.out[idx]
	case Inline:
		if x, y := core.ToXY(idx, e.w); e.interior(x, y) {
			return sumFlat(e.flat, idx, g.Cells())
		}
		return SumInline(e.kernel, idx, g, e.topo)
	default:
		return Convolve(e.kernel, idx, g, e.topo, buf, Sum)
	}
}

// Neighbors resolves the indices of every non-zero-weight tap around idx into
// buf and returns them. Under Bounded topology off-grid taps are omitted.
func (e *Engine) Neighbors(idx int, buf *Buffer) []int {
	x, y := core.ToXY(idx, e.w)
	targets := buf.targets[:0]
	if e.interior(x, y) {
		for _, t := range e.flat {
			if t.Weight != 0 {
				targets = append(targets, idx+t.Delta)
			}
		}
		buf.targets = targets
		return targets
	}
	for i := 0; i < e.kernel.Len(); i++ {
		tap := e.kernel.At(i)
		if tap.Weight == 0 {
			continue
		}
		if target, ok := resolve(x, y, tap.Offset, e.w, e.h, e.topo); ok {
			targets = append(targets, target)
		}
	}
	buf.targets = targets
	return targets
}

// interior reports whether every tap around (x, y) lands on the grid without
// wrapping, so flat deltas address the same cells as resolved offsets.
func (e *Engine) interior(x, y int) bool {
	return x >= e.reachX && x+e.reachX < e.w && y >= e.reachY && y+e.reachY < e.h
}

// Visit fills s with the view of cell idx that rules evaluate.
func (e *Engine) Visit(g *core.Grid, idx int, buf *Buffer, s *Site) {
	x, y := core.ToXY(idx, e.w)
	*s = Site{
		Index:     idx,
		X:         x,
		Y:         y,
		Value:     g.Cells()[idx],
		Aggregate: e.Aggregate(g, idx, buf),
		engine:    e,
		grid:      g,
		buf:       buf,
	}
}

// Site is the read-only view of a single cell handed to a rule. It is valid
// only until the next Visit with the same Buffer.
type Site struct {
	Index     int
	X, Y      int
	Value     uint8
	Aggregate float64

	engine    *Engine
	grid      *core.Grid
	buf       *Buffer
	neighbors []int
	resolved  bool
}

// Neighbors returns the indices of the cell's non-zero-weight neighbors.
func (s *Site) Neighbors() []int {
	if !s.resolved {
		s.neighbors = s.engine.Neighbors(s.Index, s.buf)
		s.resolved = true
	}
	return s.neighbors
}

// ValueAt reads the committed value of any cell. idx must come from Neighbors
// or otherwise be in range.
func (s *Site) ValueAt(idx int) uint8 { return s.grid.Cells()[idx] }
