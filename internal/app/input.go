package app

import "toroid/internal/core"

// CellAt maps a screen position to a grid cell, reporting false when the
// position lies outside the grid view.
func CellAt(px, py, scale int, size core.Size) (x, y int, ok bool) {
	if scale <= 0 {
		scale = 1
	}
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/scale, py/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

// SeedValue is the value a click writes into the named simulation.
func SeedValue(name string) int {
	if name == "propagation" {
		return 255
	}
	return 1
}
