package sand

import (
	"image"
	"testing"
)

func newTestGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 42
	return NewWithConfig(cfg)
}

func newTestGridWithTable(t *testing.T, w, h int, edit func(*Table)) *Grid {
	t.Helper()
	table := *DefaultTable()
	edit(&table)
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 42
	cfg.Materials = &table
	return NewWithConfig(cfg)
}

func setResistance(table *Table, m Material, r float64) {
	table.props[m].InertialResistance = r
}

func fill(g *Grid, m Material) {
	for i := range g.cells {
		g.cells[i] = newCell(m, i)
	}
}

func countMaterial(g *Grid, m Material) int {
	n := 0
	for _, c := range g.cells {
		if c.Material == m {
			n++
		}
	}
	return n
}

func findMaterial(g *Grid, m Material) []image.Point {
	var out []image.Point
	for i, c := range g.cells {
		if c.Material == m {
			out = append(out, g.size.Point(i))
		}
	}
	return out
}
