package app

import "image"

// Stroke tracks a pointer drag so consecutive samples paint connected lines.
type Stroke struct {
	active bool
	last   image.Point
}

// Next records p and returns the segment to paint. The first sample of a
// stroke paints a single point.
func (s *Stroke) Next(p image.Point) (from, to image.Point) {
	from = p
	if s.active {
		from = s.last
	}
	s.active = true
	s.last = p
	return from, p
}

// End finishes the stroke.
func (s *Stroke) End() { s.active = false }

// Active reports whether a stroke is in progress.
func (s *Stroke) Active() bool { return s.active }

// CursorCell converts a cursor position in screen pixels to a grid point.
func CursorCell(x, y, scale int) image.Point {
	if scale <= 0 {
		scale = 1
	}
	return image.Pt(floorDiv(x, scale), floorDiv(y, scale))
}

// BrushForDigit maps keys 1-9 to brush indices.
func BrushForDigit(digit, brushes int) (int, bool) {
	i := digit - 1
	if i < 0 || i >= brushes {
		return 0, false
	}
	return i, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
