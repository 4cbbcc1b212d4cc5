package core

// WrapOffset1D resolves the neighbor at (dx, dy) from origin (x, y) on a w*h
// torus and returns it as a flat row-major index. Offsets must satisfy
// |dx| < w and |dy| < h; Kernel.Validate enforces that at construction.
func WrapOffset1D(x, y, dx, dy, w, h int) int {
	return wrapAxis(x, dx, w) + wrapAxis(y, dy, h)*w
}

// WrapOffset is WrapOffset1D returning the 2D coordinate instead of an index.
func WrapOffset(x, y, dx, dy, w, h int) (int, int) {
	return wrapAxis(x, dx, w), wrapAxis(y, dy, h)
}

// wrapAxis folds v+d back into [0, n) with a single correction, which is
// enough because |d| < n.
func wrapAxis(v, d, n int) int {
	s := v + d
	if s < 0 {
		return s + n
	}
	if s >= n {
		return s - n
	}
	return s
}

// Bounded resolves the neighbor at (dx, dy) from (x, y) without wrapping.
// ok is false when the neighbor lies outside the grid.
func Bounded(x, y, dx, dy, w, h int) (idx int, ok bool) {
	nx, ny := x+dx, y+dy
	if nx < 0 || nx >= w || ny < 0 || ny >= h {
		return 0, false
	}
	return nx + ny*w, true
}

// ToXY converts a flat index into its (x, y) coordinate.
func ToXY(idx, w int) (int, int) {
	return idx % w, idx / w
}

// ToIndex converts (x, y) into a flat row-major index.
func ToIndex(x, y, w int) int {
	return x + y*w
}

// Wrap applies full toroidal wrapping to an arbitrary coordinate.
func Wrap(v, n int) int {
	return (v%n + n) % n
}
