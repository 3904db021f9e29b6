package sand

type swap struct {
	src, dst int
}

type freeFallOverride struct {
	index, value int
}

// changeBuffer queues position swaps and free-fall overrides produced during a
// scan. Nothing is applied until flush so every cell reads pre-move positions.
type changeBuffer struct {
	swaps     []swap
	overrides []freeFallOverride
}

func (b *changeBuffer) reset() {
	b.swaps = b.swaps[:0]
	b.overrides = b.overrides[:0]
}

func (b *changeBuffer) swap(src, dst int) {
	b.swaps = append(b.swaps, swap{src: src, dst: dst})
}

func (b *changeBuffer) overrideFreeFall(index, value int) {
	b.overrides = append(b.overrides, freeFallOverride{index: index, value: value})
}

// flush applies swaps in order, then overrides in order. Disturb markers are
// resolved against the post-swap grid before returning so none outlive the
// tick.
func (b *changeBuffer) flush(g *Grid) {
	for _, s := range b.swaps {
		g.cells[s.src], g.cells[s.dst] = g.cells[s.dst], g.cells[s.src]
	}

	marker := 2 * g.threshold()
	for _, o := range b.overrides {
		c := &g.cells[o.index]
		if !g.table.Movable(c.Material) {
			continue
		}
		c.FreeFall = o.value
	}
	for _, o := range b.overrides {
		c := &g.cells[o.index]
		if c.FreeFall != marker || !g.table.Movable(c.Material) {
			continue
		}
		nb := g.Neighbors(o.index)
		c.FreeFall = g.disturbCheck(&nb)
	}
}
