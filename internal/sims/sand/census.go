package sand

import "github.com/kamstrup/intmap"

// Census counts cells per material at one point in time.
type Census struct {
	counts  *intmap.Map[Material, int]
	settled int
	total   int
}

// Census counts the current cells by material.
func (g *Grid) Census() Census {
	c := Census{counts: intmap.New[Material, int](int(materialCount)), total: len(g.cells)}
	t := g.threshold()
	for _, cell := range g.cells {
		n, _ := c.counts.Get(cell.Material)
		c.counts.Put(cell.Material, n+1)
		if g.table.Movable(cell.Material) && cell.State(t) == Settled {
			c.settled++
		}
	}
	return c
}

// Count returns the number of cells holding m.
func (c Census) Count(m Material) int {
	if c.counts == nil {
		return 0
	}
	n, _ := c.counts.Get(m)
	return n
}

// Settled returns the number of movable solids at rest.
func (c Census) Settled() int { return c.settled }

// Total returns the number of cells counted.
func (c Census) Total() int { return c.total }

// Present returns the number of distinct materials seen.
func (c Census) Present() int {
	if c.counts == nil {
		return 0
	}
	return c.counts.Len()
}
