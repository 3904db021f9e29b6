package sand

import (
	"image"

	"mad-sand/internal/raster"
)

// resolveMove walks the rasterized path from the cell at i toward its
// velocity target and returns the index where it comes to rest. A blocked
// diagonal step deflects onto (dx,0) and then (0,dy) before giving up.
func (g *Grid) resolveMove(i int, c *Cell) int {
	start := g.size.Point(i)
	dest := g.size.Clamp(start.Add(image.Pt(int(c.VX), int(c.VY))))
	if dest == start {
		return i
	}

	g.path = raster.Append(g.path[:0], start, dest)
	cur := start
	for k := 1; k < len(g.path); k++ {
		step := g.path[k].Sub(g.path[k-1])
		next := cur.Add(step)
		if g.blocked(next) {
			if step.X == 0 || step.Y == 0 {
				break
			}
			if alt := cur.Add(image.Pt(step.X, 0)); !g.blocked(alt) {
				next = alt
			} else if alt := cur.Add(image.Pt(0, step.Y)); !g.blocked(alt) {
				next = alt
			} else {
				break
			}
		}
		cur = next
	}
	return g.size.Index(cur.X, cur.Y)
}

func (g *Grid) blocked(p image.Point) bool {
	if !g.size.Contains(p) {
		return true
	}
	return g.table.Solid(g.cells[g.size.Index(p.X, p.Y)].Material)
}
