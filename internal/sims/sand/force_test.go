package sand

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// supportedGrid returns a 3x3 grid with a sand cell at the center and the
// given materials in the bottom row.
func supportedGrid(t *testing.T, bottom [3]Material, edit func(*Table)) *Grid {
	t.Helper()
	if edit == nil {
		edit = func(*Table) {}
	}
	g := newTestGridWithTable(t, 3, 3, edit)
	for x, m := range bottom {
		g.Place(image.Pt(x, 2), m)
	}
	return g
}

func TestApplyForcesDrag(t *testing.T) {
	tests := []struct {
		vx, want float64
	}{
		{vx: 3, want: 2.4},
		{vx: -3, want: -2.4},
		{vx: 1.1, want: 0},
		{vx: 1, want: 0},
		{vx: 0.5, want: 0.5},
		{vx: -0.7, want: -0.7},
	}
	for _, tt := range tests {
		g := newTestGrid(t, 3, 3)
		i := g.size.Index(1, 0)
		c := Cell{Material: Sand, VX: tt.vx, LastIndex: i}
		g.applyForces(i, &c)
		assert.InDelta(t, tt.want, c.VX, 1e-9, "vx=%v", tt.vx)
	}
}

func TestApplyForcesFallingAccumulatesGravity(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	i := g.size.Index(1, 0)
	c := Cell{Material: Sand, VY: 0.6, FreeFall: 4, Grounded: true, LastIndex: i}

	g.applyForces(i, &c)

	assert.InDelta(t, 0.9, c.VY, 1e-9)
	assert.Zero(t, c.FreeFall)
	assert.False(t, c.Grounded)
}

func TestApplyForcesLandingKick(t *testing.T) {
	g := supportedGrid(t, [3]Material{Air, Stone, Stone}, nil)
	i := g.size.Index(1, 1)
	c := Cell{Material: Sand, VY: 2, LastIndex: g.size.Index(1, 0)}

	g.applyForces(i, &c)

	assert.True(t, c.Grounded)
	assert.LessOrEqual(t, c.VX, 0.0, "only the left diagonal is open")
	assert.Greater(t, c.VX, -2.0, "kick is bounded by the landing speed")
	assert.InDelta(t, 1.0, c.VY, 1e-9, "grounded cells take their roll speed")
	assert.Zero(t, c.FreeFall, "a cell that just moved does not count towards rest")
}

func TestApplyForcesLandingKickCapped(t *testing.T) {
	g := supportedGrid(t, [3]Material{Stone, Stone, Air}, nil)
	g.cfg.Params.LandingCap = 0.5
	i := g.size.Index(1, 1)
	c := Cell{Material: Sand, VY: 100, LastIndex: g.size.Index(1, 0)}

	g.applyForces(i, &c)

	assert.GreaterOrEqual(t, c.VX, 0.0)
	assert.LessOrEqual(t, c.VX, 0.5)
}

func TestApplyForcesKickGatedByDirection(t *testing.T) {
	g := supportedGrid(t, [3]Material{Air, Stone, Stone}, nil)
	i := g.size.Index(1, 1)
	c := Cell{Material: Sand, VX: 1.5, VY: 2, LastIndex: g.size.Index(1, 0)}

	g.applyForces(i, &c)

	assert.InDelta(t, 1.2, c.VX, 1e-9, "moving right never kicks into the left diagonal")
}

func TestApplyForcesRollsTowardOpenSide(t *testing.T) {
	noFreeze := func(tb *Table) { setResistance(tb, Sand, 0) }

	g := supportedGrid(t, [3]Material{Air, Stone, Stone}, noFreeze)
	i := g.size.Index(1, 1)
	c := Cell{Material: Sand, Grounded: true, LastIndex: g.size.Index(0, 0)}
	g.applyForces(i, &c)
	assert.InDelta(t, -1.0, c.VX, 1e-9)

	g = supportedGrid(t, [3]Material{Stone, Stone, Air}, noFreeze)
	c = Cell{Material: Sand, Grounded: true, LastIndex: g.size.Index(0, 0)}
	g.applyForces(i, &c)
	assert.InDelta(t, 1.0, c.VX, 1e-9)

	g = supportedGrid(t, [3]Material{Air, Stone, Air}, noFreeze)
	c = Cell{Material: Sand, Grounded: true, LastIndex: g.size.Index(0, 0)}
	g.applyForces(i, &c)
	assert.InDelta(t, 1.0, abs(c.VX), 1e-9, "either side may be picked when both are open")
}

func TestApplyForcesInertiaFreezes(t *testing.T) {
	g := supportedGrid(t, [3]Material{Air, Stone, Stone}, func(tb *Table) { setResistance(tb, Sand, 1) })
	i := g.size.Index(1, 1)
	c := Cell{Material: Sand, Grounded: true, LastIndex: g.size.Index(0, 0)}

	g.applyForces(i, &c)

	assert.Equal(t, g.threshold(), c.FreeFall)
	assert.Zero(t, c.VX, "a frozen cell does not roll")
}

func TestApplyForcesCountsRestTicks(t *testing.T) {
	g := supportedGrid(t, [3]Material{Stone, Stone, Stone}, nil)
	i := g.size.Index(1, 1)
	tt := g.threshold()

	c := Cell{Material: Sand, Grounded: true, FreeFall: 3, LastIndex: i}
	g.applyForces(i, &c)
	if c.FreeFall != 4 && c.FreeFall != tt {
		t.Fatalf("free_fall = %d, want 4 or frozen at %d", c.FreeFall, tt)
	}

	c = Cell{Material: Sand, Grounded: true, FreeFall: tt - 1, VX: 0.5, LastIndex: i}
	g.applyForces(i, &c)
	assert.Equal(t, tt, c.FreeFall)
	assert.Zero(t, c.VX, "velocity zeroes once the cell settles")
	assert.Equal(t, Settled, c.State(tt))
}

func TestApplyForcesResolvesDisturbMarker(t *testing.T) {
	g := supportedGrid(t, [3]Material{Stone, Stone, Stone}, nil)
	i := g.size.Index(1, 1)
	tt := g.threshold()

	c := Cell{Material: Sand, Grounded: true, FreeFall: 2 * tt, LastIndex: i}
	g.applyForces(i, &c)
	assert.Equal(t, tt, c.FreeFall)

	g = supportedGrid(t, [3]Material{Air, Stone, Stone}, func(tb *Table) { setResistance(tb, Sand, 0) })
	c = Cell{Material: Sand, Grounded: true, FreeFall: 2 * tt, LastIndex: i}
	g.applyForces(i, &c)
	assert.Equal(t, 1, c.FreeFall, "unsupported cells restart from zero and count this tick")
	assert.InDelta(t, -1.0, c.VX, 1e-9)
}

func TestDisturbCheck(t *testing.T) {
	tests := []struct {
		name   string
		bottom [3]Material
		want   func(tt int) int
	}{
		{name: "stone floor", bottom: [3]Material{Stone, Stone, Stone}, want: func(tt int) int { return tt }},
		{name: "movable support", bottom: [3]Material{Sand, Dirt, Coal}, want: func(tt int) int { return tt }},
		{name: "open left", bottom: [3]Material{Air, Stone, Stone}, want: func(int) int { return 0 }},
		{name: "open below", bottom: [3]Material{Stone, Air, Stone}, want: func(int) int { return 0 }},
		{name: "fluid right", bottom: [3]Material{Stone, Stone, Water}, want: func(int) int { return 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := supportedGrid(t, tc.bottom, nil)
			nb := g.Neighbors(g.size.Index(1, 1))
			assert.Equal(t, tc.want(g.threshold()), g.disturbCheck(&nb))
		})
	}

	t.Run("grid floor supports", func(t *testing.T) {
		g := newTestGrid(t, 3, 3)
		nb := g.Neighbors(g.size.Index(1, 2))
		assert.Equal(t, g.threshold(), g.disturbCheck(&nb))
	})
}

func TestDisturbNeighborsSkipsEnclosedCells(t *testing.T) {
	g := newTestGridWithTable(t, 3, 3, func(tb *Table) { setResistance(tb, Sand, 0) })
	fill(g, Sand)

	nb := g.Neighbors(g.size.Index(1, 1))
	g.disturbNeighbors(&nb)
	assert.Empty(t, g.changes.overrides, "eight movable neighbors means the cell is buried")

	nb = g.Neighbors(g.size.Index(0, 0))
	g.disturbNeighbors(&nb)
	require.Len(t, g.changes.overrides, 3)
	marker := 2 * g.threshold()
	for _, o := range g.changes.overrides {
		assert.Equal(t, marker, o.value)
	}
	assert.ElementsMatch(t, []int{1, 3, 4}, []int{
		g.changes.overrides[0].index,
		g.changes.overrides[1].index,
		g.changes.overrides[2].index,
	})
}

func TestDisturbNeighborsRespectsResistance(t *testing.T) {
	g := newTestGridWithTable(t, 3, 3, func(tb *Table) { setResistance(tb, Sand, 1) })
	g.Place(image.Pt(0, 0), Sand)
	g.Place(image.Pt(2, 2), Sand)

	nb := g.Neighbors(g.size.Index(1, 1))
	g.disturbNeighbors(&nb)
	assert.Empty(t, g.changes.overrides, "fully resistant neighbors never wake")
}

func TestDisturbNeighborsIgnoresImmovable(t *testing.T) {
	g := newTestGridWithTable(t, 3, 3, func(tb *Table) { setResistance(tb, Sand, 0) })
	fill(g, Stone)
	g.cells[g.size.Index(2, 0)] = newCell(Sand, g.size.Index(2, 0))

	nb := g.Neighbors(g.size.Index(1, 1))
	g.disturbNeighbors(&nb)
	require.Len(t, g.changes.overrides, 1)
	assert.Equal(t, g.size.Index(2, 0), g.changes.overrides[0].index)
}

func TestDisturbNeighborsEnclosedThresholdConfigurable(t *testing.T) {
	g := newTestGridWithTable(t, 3, 3, func(tb *Table) { setResistance(tb, Sand, 0) })
	g.Place(image.Pt(0, 0), Sand)
	g.cfg.Params.EnclosedNeighbors = 0

	nb := g.Neighbors(g.size.Index(1, 1))
	g.disturbNeighbors(&nb)
	assert.Empty(t, g.changes.overrides)
}

func TestPhase(t *testing.T) {
	const tt = 10
	tests := []struct {
		name     string
		c        Cell
		grounded bool
		want     State
	}{
		{name: "airborne", c: Cell{}, grounded: false, want: Falling},
		{name: "touchdown", c: Cell{}, grounded: true, want: JustLanded},
		{name: "rolling", c: Cell{Grounded: true, FreeFall: 3}, grounded: true, want: Rolling},
		{name: "settled", c: Cell{Grounded: true, FreeFall: tt}, grounded: true, want: Settled},
		{name: "marker", c: Cell{Grounded: true, FreeFall: 2 * tt}, grounded: true, want: DisturbCheck},
		{name: "lifted", c: Cell{Grounded: true, FreeFall: tt}, grounded: false, want: Falling},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, phase(tc.c, tc.grounded, tt), tc.name)
	}
	assert.Equal(t, "settled", Settled.String())
	assert.Equal(t, "unknown", State(99).String())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
