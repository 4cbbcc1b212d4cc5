package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension reports a grid constructed with a non-positive width or height.
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrIndexOutOfBounds reports a direct grid access outside [0, width*height).
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Grid stores a 2D grid of byte-sized cell values in row-major order. Index
// idx maps to (idx % width, idx / width).
type Grid struct {
	w, h int
	data []uint8
}

// NewGrid allocates a zero-filled grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	return &Grid{w: w, h: h, data: make([]uint8, w*h)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.data) }

// Cells exposes the backing slice so renderers and the convolution hot path
// can read values directly. It must not be written to while a tick runs.
func (g *Grid) Cells() []uint8 { return g.data }

// At returns the value stored at (x, y).
func (g *Grid) At(x, y int) (uint8, error) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfBounds, x, y, g.w, g.h)
	}
	return g.data[y*g.w+x], nil
}

// AtIndex returns the value stored at the flat index idx.
func (g *Grid) AtIndex(idx int) (uint8, error) {
	if idx < 0 || idx >= len(g.data) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfBounds, idx, len(g.data))
	}
	return g.data[idx], nil
}

// Set stores v at (x, y), clamped to [0, 255].
func (g *Grid) Set(x, y, v int) error {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfBounds, x, y, g.w, g.h)
	}
	g.data[y*g.w+x] = Clamp(v)
	return nil
}

// SetIndex stores v at the flat index idx, clamped to [0, 255].
func (g *Grid) SetIndex(idx, v int) error {
	if idx < 0 || idx >= len(g.data) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfBounds, idx, len(g.data))
	}
	g.data[idx] = Clamp(v)
	return nil
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Population counts non-zero cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clamp bounds v to the cell value domain.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
