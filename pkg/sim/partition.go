package sim

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// ErrBadPartition reports scan regions that overlap or leave cells uncovered.
var ErrBadPartition = errors.New("bad scan partition")

// Partition cuts a w*h grid into at most n full-width row bands of near equal
// height. Earlier bands take the remainder rows.
func Partition(w, h, n int) []image.Rectangle {
	if n < 1 {
		n = 1
	}
	if n > h {
		n = h
	}
	bands := make([]image.Rectangle, 0, n)
	rows, extra := h/n, h%n
	y := 0
	for i := 0; i < n; i++ {
		dy := rows
		if i < extra {
			dy++
		}
		bands = append(bands, image.Rect(0, y, w, y+dy))
		y += dy
	}
	return bands
}

// CheckPartition verifies that rects are non-empty full-width bands that
// cover every row of a w*h grid exactly once.
func CheckPartition(rects []image.Rectangle, w, h int) error {
	if len(rects) == 0 {
		return fmt.Errorf("%w: no regions", ErrBadPartition)
	}
	sorted := append([]image.Rectangle(nil), rects...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min.Y < sorted[j].Min.Y })
	next := 0
	for _, r := range sorted {
		switch {
		case r.Empty():
			return fmt.Errorf("%w: empty region %v", ErrBadPartition, r)
		case r.Min.X != 0 || r.Max.X != w:
			return fmt.Errorf("%w: region %v is not full width %d", ErrBadPartition, r, w)
		case r.Min.Y < next:
			return fmt.Errorf("%w: region %v overlaps row %d", ErrBadPartition, r, r.Min.Y)
		case r.Min.Y > next:
			return fmt.Errorf("%w: rows %d-%d uncovered", ErrBadPartition, next, r.Min.Y-1)
		}
		next = r.Max.Y
	}
	if next != h {
		return fmt.Errorf("%w: rows %d-%d uncovered", ErrBadPartition, next, h-1)
	}
	return nil
}
