// Package raster walks straight segments across integer grids.
package raster

import "image"

// Line returns the Bresenham cells from p0 to p1, both endpoints included.
// Consecutive points differ by at most one unit on each axis.
func Line(p0, p1 image.Point) []image.Point {
	return Append(nil, p0, p1)
}

// Append is Line writing into dst, letting hot paths reuse a scratch slice.
func Append(dst []image.Point, p0, p1 image.Point) []image.Point {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}

	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		dst = append(dst, image.Pt(x, y))
		if x == p1.X && y == p1.Y {
			return dst
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
