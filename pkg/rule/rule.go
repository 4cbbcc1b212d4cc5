// Package rule holds the per-cell transition rules evaluated during a scan.
//
// A rule reads one cell through a convolve.Site and records its next state in
// a core.ChangeSet. Rules must only record real changes: a cell that keeps its
// value is never put, so an unchanged generation yields an empty set.
package rule

import (
	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

// Rule decides the next state of a cell from the committed generation.
type Rule interface {
	Name() string
	Evaluate(s *convolve.Site, changes *core.ChangeSet)
}

// put records v for idx unless the cell already holds it.
func put(s *convolve.Site, changes *core.ChangeSet, idx int, v uint8) {
	if s.ValueAt(idx) == v {
		return
	}
	changes.Put(idx, v)
}
