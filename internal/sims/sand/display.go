package sand

import (
	"image/color"

	"mad-sand/internal/render"
)

const (
	displayMaterialMask = 0x7f
	displaySettledBit   = 0x80

	settledShade = 0.85
)

type paletteCache struct {
	colors []color.RGBA
	table  *Table
	tint   bool
}

// Palette maps display values from Cells to colors. Settled movable solids
// are darkened when tinting is enabled.
func (g *Grid) Palette() []color.RGBA {
	tint := g.cfg.Params.Tint
	if g.palette.colors == nil || g.palette.table != g.table || g.palette.tint != tint {
		g.palette = paletteCache{colors: buildPalette(g.table, tint), table: g.table, tint: tint}
	}
	return g.palette.colors
}

func buildPalette(t *Table, tint bool) []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		base := t.Color(Material(i & displayMaterialMask))
		if tint && i&displaySettledBit != 0 {
			base = render.Shade(base, settledShade)
		}
		palette[i] = base
	}
	return palette
}

// Cells returns one display value per cell: the material tag, with the high
// bit set for settled movable solids. The slice is reused between calls.
func (g *Grid) Cells() []uint8 {
	t := g.threshold()
	for i, c := range g.cells {
		v := uint8(c.Material) & displayMaterialMask
		if g.table.Movable(c.Material) && c.State(t) == Settled {
			v |= displaySettledBit
		}
		g.display[i] = v
	}
	return g.display
}

// Render writes the grid as RGBA pixels, 4 bytes per cell in row-major order.
func (g *Grid) Render(buf []byte) {
	render.FillPaletteRGBA(buf, g.Cells(), g.Palette())
}

// RestMask reports per-cell rest progress in [0,1]: FreeFall/T for movable
// solids, 0 elsewhere. The slice is reused between calls.
func (g *Grid) RestMask() []float32 {
	if len(g.restMask) != len(g.cells) {
		g.restMask = make([]float32, len(g.cells))
	}
	t := float32(g.threshold())
	for i, c := range g.cells {
		if !g.table.Movable(c.Material) {
			g.restMask[i] = 0
			continue
		}
		v := float32(c.FreeFall) / t
		if v > 1 {
			v = 1
		}
		g.restMask[i] = v
	}
	return g.restMask
}
