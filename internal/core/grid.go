package core

import "image"

// Size describes the dimensions of a row-major simulation grid.
type Size struct {
	W int
	H int
}

// Len returns the number of cells covered by the size.
func (s Size) Len() int { return s.W * s.H }

// Index returns the linear slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Point converts a linear index back into grid coordinates.
func (s Size) Point(i int) image.Point {
	if s.W <= 0 {
		return image.Point{}
	}
	return image.Pt(i%s.W, i/s.W)
}

// Contains reports whether p lies inside the grid.
func (s Size) Contains(p image.Point) bool {
	return p.X >= 0 && p.X < s.W && p.Y >= 0 && p.Y < s.H
}

// Clamp moves p onto the nearest in-bounds cell.
func (s Size) Clamp(p image.Point) image.Point {
	return image.Pt(clampInt(p.X, 0, s.W-1), clampInt(p.Y, 0, s.H-1))
}

// Normalize replaces non-positive dimensions with 1 so every grid has at least
// one cell.
func (s Size) Normalize() Size {
	if s.W <= 0 {
		s.W = 1
	}
	if s.H <= 0 {
		s.H = 1
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
