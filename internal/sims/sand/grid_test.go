package sand

import (
	"image"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridIsAir(t *testing.T) {
	g := newTestGrid(t, 4, 3)
	require.Len(t, g.cells, 12)
	for i, c := range g.cells {
		assert.Equal(t, Air, c.Material)
		assert.Zero(t, c.VX)
		assert.Zero(t, c.VY)
		assert.False(t, c.Grounded)
		assert.Equal(t, i, c.LastIndex)
	}
}

func TestNewGridNormalizesSize(t *testing.T) {
	g := New(0, -4)
	assert.Equal(t, 1, g.Size().W)
	assert.Equal(t, 1, g.Size().H)
	assert.Len(t, g.cells, 1)
}

func TestPlaceOnlyOntoAir(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	p := image.Pt(1, 1)

	g.Place(p, Sand)
	assert.Equal(t, Sand, g.At(p))

	g.Place(p, Stone)
	assert.Equal(t, Sand, g.At(p), "placing onto sand must be a no-op")

	g.Place(image.Pt(0, 0), Stone)
	g.Place(image.Pt(0, 0), Sand)
	assert.Equal(t, Stone, g.At(image.Pt(0, 0)))

	g.Place(image.Pt(-1, 0), Sand)
	g.Place(image.Pt(3, 3), Sand)
	g.Place(image.Pt(2, 2), materialCount)
	assert.Equal(t, Air, g.At(image.Pt(2, 2)))
	assert.Equal(t, 1, countMaterial(g, Sand))
}

func TestPlaceNeverOverwritesNonAir(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	materials := Materials()
	for i := range g.cells {
		g.cells[i] = newCell(materials[i%len(materials)], i)
	}
	before := slices.Clone(g.cells)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			g.Place(image.Pt(x, y), Coal)
		}
	}

	for i, c := range before {
		if c.Material != Air {
			assert.Equal(t, c, g.cells[i], "cell %d was overwritten", i)
		} else {
			assert.Equal(t, Coal, g.cells[i].Material)
		}
	}
}

func TestPlaceLineFillsRow(t *testing.T) {
	g := newTestGrid(t, 6, 1)
	g.PlaceLine(image.Pt(0, 0), image.Pt(5, 0), Sand)

	assert.Equal(t, 6, countMaterial(g, Sand))
	for x := 0; x < 6; x++ {
		assert.Equal(t, Sand, g.At(image.Pt(x, 0)), "x=%d", x)
	}
}

func TestPlaceLineSkipsOutOfBounds(t *testing.T) {
	g := newTestGrid(t, 3, 2)
	g.PlaceLine(image.Pt(-4, 1), image.Pt(7, 1), Dirt)
	assert.Equal(t, 3, countMaterial(g, Dirt))
	for _, p := range findMaterial(g, Dirt) {
		assert.Equal(t, 1, p.Y)
	}
}

func TestSingleGrainFallsAndSettles(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	g.Place(image.Pt(1, 0), Sand)

	g.ExecuteLogic()
	c, _ := g.Cell(image.Pt(1, 0))
	require.Equal(t, Sand, c.Material, "sub-cell velocity must not move the grain")
	assert.InDelta(t, 0.3, c.VY, 1e-9)
	assert.False(t, c.Grounded)
	assert.Zero(t, c.FreeFall)

	tt := g.threshold()
	for i := 0; i < 60; i++ {
		g.ExecuteLogic()
		pts := findMaterial(g, Sand)
		require.Len(t, pts, 1)
		assert.Equal(t, 1, pts[0].X, "a lone grain has no lateral escape")
	}

	c, _ = g.Cell(image.Pt(1, 2))
	require.Equal(t, Sand, c.Material, "grain should rest on the floor")
	assert.True(t, c.Grounded)
	assert.Equal(t, tt, c.FreeFall)
	assert.Equal(t, Settled, c.State(tt))
}

func TestMovesApplyAfterScan(t *testing.T) {
	g := newTestGrid(t, 1, 8)
	g.Place(image.Pt(0, 0), Sand)
	g.Place(image.Pt(0, 1), Sand)
	g.cells[0].VY = 3
	g.cells[1].VY = 3

	g.ExecuteLogic()

	// The upper grain reads the lower grain's starting slot as solid, and
	// the lower grain is not revisited at its destination.
	assert.Equal(t, []image.Point{{0, 0}, {0, 4}}, findMaterial(g, Sand))
	assert.Equal(t, 1, g.Stats().Swaps)
	assert.Equal(t, 1, g.cells[4].LastIndex)
}

func TestFallingGrainMovesOncePerTick(t *testing.T) {
	g := newTestGrid(t, 1, 8)
	g.Place(image.Pt(0, 0), Sand)
	g.cells[0].VY = 2

	g.ExecuteLogic()

	require.Equal(t, []image.Point{{0, 2}}, findMaterial(g, Sand))
	assert.InDelta(t, 2.3, g.cells[2].VY, 1e-9)
	assert.Equal(t, 1, g.Stats().Swaps)
}

func TestGrainDescendsMonotonically(t *testing.T) {
	g := newTestGrid(t, 1, 12)
	g.Place(image.Pt(0, 0), Sand)
	lastY := 0
	for i := 0; i < 40; i++ {
		g.ExecuteLogic()
		pts := findMaterial(g, Sand)
		require.Len(t, pts, 1)
		require.GreaterOrEqual(t, pts[0].Y, lastY)
		lastY = pts[0].Y
	}
	assert.Equal(t, 11, lastY)
}

func TestFreeFallStaysWithinThreshold(t *testing.T) {
	g := newTestGrid(t, 30, 30)
	g.PlaceLine(image.Pt(5, 20), image.Pt(18, 24), Stone)
	g.PlaceLine(image.Pt(20, 12), image.Pt(29, 12), Stone)
	tt := g.threshold()

	for tick := 0; tick < 250; tick++ {
		if tick < 80 {
			g.PlaceLine(image.Pt(8, 0), image.Pt(14, 0), Sand)
			g.PlaceLine(image.Pt(22, 0), image.Pt(24, 0), Dirt)
			g.Place(image.Pt(26, 0), Coal)
		}
		g.ExecuteLogic()
		for i, c := range g.cells {
			if c.FreeFall < 0 || c.FreeFall > tt {
				t.Fatalf("tick %d: cell %d (%s) free_fall %d outside [0,%d]", tick, i, c.Material, c.FreeFall, tt)
			}
		}
	}
}

func TestExecuteLogicConservesMaterial(t *testing.T) {
	g := newTestGrid(t, 24, 24)
	g.PlaceLine(image.Pt(0, 18), image.Pt(23, 18), Stone)
	g.PlaceLine(image.Pt(0, 5), image.Pt(23, 5), Water)
	for y := 0; y < 4; y++ {
		g.PlaceLine(image.Pt(4, y), image.Pt(19, y), Sand)
	}
	g.PlaceLine(image.Pt(2, 8), image.Pt(9, 10), Dirt)

	before := g.Census()
	for i := 0; i < 150; i++ {
		g.ExecuteLogic()
	}
	after := g.Census()
	for _, m := range Materials() {
		assert.Equal(t, before.Count(m), after.Count(m), "material %s", m)
	}
	assert.Equal(t, Stone, g.At(image.Pt(12, 18)), "immovable stone stays put")
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func() [][]Cell {
		g := newTestGrid(t, 20, 20)
		g.PlaceLine(image.Pt(3, 15), image.Pt(16, 17), Stone)
		var frames [][]Cell
		for i := 0; i < 120; i++ {
			if i < 40 {
				g.PlaceLine(image.Pt(8, 0), image.Pt(11, 0), Sand)
			}
			g.ExecuteLogic()
			frames = append(frames, slices.Clone(g.cells))
		}
		return frames
	}

	a := run()
	b := run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("tick %d diverged between identical seeded runs", i)
		}
	}
}

func TestResetClearsAndReseeds(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	paint := func() {
		g.PlaceLine(image.Pt(0, 0), image.Pt(9, 0), Sand)
		for i := 0; i < 30; i++ {
			g.ExecuteLogic()
		}
	}
	paint()
	first := slices.Clone(g.cells)

	g.Reset(0)
	assert.Equal(t, 0, countMaterial(g, Sand))
	assert.Equal(t, uint64(0), g.Stats().Tick)

	paint()
	assert.True(t, slices.Equal(first, g.cells), "reset with the configured seed must replay identically")
}

func TestSandPileComesToRest(t *testing.T) {
	g := newTestGrid(t, 16, 16)
	for y := 0; y < 5; y++ {
		g.PlaceLine(image.Pt(5, y), image.Pt(10, y), Sand)
	}
	settled := false
	for i := 0; i < 3000 && !settled; i++ {
		g.ExecuteLogic()
		settled = g.Census().Settled() == 30
	}
	require.True(t, settled, "pile never came to rest")

	for i := 0; i < 20; i++ {
		g.ExecuteLogic()
		assert.Zero(t, g.Stats().Swaps, "a settled pile must not move")
	}
	assert.Equal(t, 30, countMaterial(g, Sand))
}

func TestStatsReportTick(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	g.Place(image.Pt(1, 0), Sand)
	for i := 0; i < 5; i++ {
		g.ExecuteLogic()
	}
	assert.Equal(t, uint64(5), g.Stats().Tick)
}
