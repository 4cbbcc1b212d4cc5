package rule

import (
	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

const (
	BrainReady  = 0
	BrainFiring = 1
	BrainDying  = 2
)

// Brain implements Brian's Brain: firing cells turn refractory, refractory
// cells turn ready, and a ready cell fires with exactly two firing neighbors.
type Brain struct{}

func (Brain) Name() string { return "briansbrain" }

func (Brain) Evaluate(s *convolve.Site, changes *core.ChangeSet) {
	switch s.Value {
	case BrainFiring:
		changes.Put(s.Index, BrainDying)
	case BrainDying:
		changes.Put(s.Index, BrainReady)
	case BrainReady:
		firing := 0
		for _, n := range s.Neighbors() {
			if s.ValueAt(n) == BrainFiring {
				firing++
			}
		}
		if firing == 2 {
			changes.Put(s.Index, BrainFiring)
		}
	}
}
