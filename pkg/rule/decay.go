package rule

import (
	"math"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

// Decay models a fading wave. Every active cell pushes a fraction of its
// value into neighbors that are currently empty, then fades itself: below
// Threshold it dies, otherwise it keeps floor(v*DecayFactor).
type Decay struct {
	Threshold    uint8
	DecayFactor  float64
	SpreadFactor float64
}

// DefaultDecay returns threshold 16, decay 0.5, spread 0.85.
func DefaultDecay() Decay {
	return Decay{Threshold: 16, DecayFactor: 0.5, SpreadFactor: 0.85}
}

// Name identifies the rule.
func (d Decay) Name() string { return "decay" }

// Evaluate spreads into empty neighbors and then records the self update, so
// the cell's own value is always the last write for its index.
func (d Decay) Evaluate(s *convolve.Site, changes *core.ChangeSet) {
	v := s.Value
	if v == 0 {
		return
	}
	spread := scale(v, d.SpreadFactor)
	if spread > 0 {
		for _, n := range s.Neighbors() {
			if s.ValueAt(n) == 0 {
				changes.Put(n, spread)
			}
		}
	}
	next := uint8(0)
	if v >= d.Threshold {
		next = scale(v, d.DecayFactor)
	}
	put(s, changes, s.Index, next)
}

func scale(v uint8, f float64) uint8 {
	return core.Clamp(int(math.Floor(float64(v) * f)))
}
