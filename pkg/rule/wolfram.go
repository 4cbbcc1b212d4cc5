package rule

import (
	"fmt"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

// WolframKernel reads the three cells above a cell, weighted so that the
// aggregate is the elementary neighborhood index (left<<2 | center<<1 | right).
func WolframKernel() core.Kernel {
	return core.NewKernel(
		core.Tap{Weight: 4, Offset: core.Offset{DX: -1, DY: -1}},
		core.Tap{Weight: 2, Offset: core.Offset{DX: 0, DY: -1}},
		core.Tap{Weight: 1, Offset: core.Offset{DX: 1, DY: -1}},
	)
}

// Wolfram runs a one-dimensional elementary automaton down the grid: row 0
// is the seed and row y settles on generation y after y ticks. Cell values
// must be 0 or 1.
type Wolfram struct {
	Code uint8
}

// Name returns the Wolfram code.
func (r Wolfram) Name() string { return fmt.Sprintf("rule%d", r.Code) }

// Evaluate derives the cell from the row above.
func (r Wolfram) Evaluate(s *convolve.Site, changes *core.ChangeSet) {
	if s.Y == 0 {
		return
	}
	pattern := int(s.Aggregate) & 7
	bit := (r.Code >> uint(pattern)) & 1
	if bit != s.Value {
		changes.Put(s.Index, bit)
	}
}
