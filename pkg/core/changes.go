package core

import "fmt"

// ChangeSet collects the (index, value) writes produced while scanning one
// generation. Each index appears at most once; a second Put for the same
// index overwrites the first. Storage is dense and sized to the grid so a
// tick never allocates once the set has warmed up.
type ChangeSet struct {
	vals  []uint8
	set   []bool
	order []int
}

// NewChangeSet allocates a change set for a grid of n cells.
func NewChangeSet(n int) *ChangeSet {
	return &ChangeSet{vals: make([]uint8, n), set: make([]bool, n)}
}

// Put records v for idx. idx must be in range; rules only receive indices
// that the convolution engine has already resolved.
func (c *ChangeSet) Put(idx int, v uint8) {
	if !c.set[idx] {
		c.set[idx] = true
		c.order = append(c.order, idx)
	}
	c.vals[idx] = v
}

// Len reports the number of pending writes.
func (c *ChangeSet) Len() int { return len(c.order) }

// Each visits pending writes in first-put order.
func (c *ChangeSet) Each(fn func(idx int, v uint8)) {
	for _, idx := range c.order {
		fn(idx, c.vals[idx])
	}
}

// Merge puts every write of other into c, in other's order.
func (c *ChangeSet) Merge(other *ChangeSet) {
	for _, idx := range other.order {
		c.Put(idx, other.vals[idx])
	}
}

// Reset empties the set while keeping its storage.
func (c *ChangeSet) Reset() {
	for _, idx := range c.order {
		c.set[idx] = false
	}
	c.order = c.order[:0]
}

// Commit applies every pending write to g and empties the set. The set is
// checked against g before anything is written so a mismatch never leaves a
// half-applied generation behind.
func (c *ChangeSet) Commit(g *Grid) error {
	if len(c.set) != g.Len() {
		return fmt.Errorf("%w: change set sized for %d cells, grid has %d", ErrIndexOutOfBounds, len(c.set), g.Len())
	}
	cells := g.Cells()
	for _, idx := range c.order {
		cells[idx] = c.vals[idx]
	}
	c.Reset()
	return nil
}
