package sand

import (
	"image"

	"mad-sand/internal/core"
	"mad-sand/internal/raster"
	pcore "mad-sand/pkg/core"
)

// TickStats summarizes the deferred work produced by the last tick.
type TickStats struct {
	Tick     uint64
	Swaps    int
	Disturbs int
}

// Grid is a fixed-size field of cells advanced one tick at a time. It is not
// safe for concurrent use.
type Grid struct {
	cfg   Config
	size  core.Size
	table *Table

	cells   []Cell
	changes changeBuffer
	path    []image.Point
	rng     *pcore.RNG

	tick  uint64
	stats TickStats

	display  []uint8
	restMask []float32
	palette  paletteCache
}

// New returns a grid with the provided dimensions using defaults.
func New(w, h int) *Grid {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an all-air grid configured from cfg.
func NewWithConfig(cfg Config) *Grid {
	size := core.Size{W: cfg.Width, H: cfg.Height}.Normalize()
	cfg.Width, cfg.Height = size.W, size.H
	if cfg.Materials == nil {
		cfg.Materials = DefaultTable()
	}
	if cfg.Params.FreeFallThreshold <= 0 {
		cfg.Params.FreeFallThreshold = DefaultParams().FreeFallThreshold
	}
	g := &Grid{
		cfg:     cfg,
		size:    size,
		table:   cfg.Materials,
		cells:   make([]Cell, size.Len()),
		rng:     pcore.NewRNG(cfg.Seed),
		display: make([]uint8, size.Len()),
	}
	g.Clear()
	return g
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "sand" }

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Table returns the material table in use.
func (g *Grid) Table() *Table { return g.table }

// Config returns the active configuration.
func (g *Grid) Config() Config { return g.cfg }

// Stats reports the deferred work of the most recent tick.
func (g *Grid) Stats() TickStats { return g.stats }

// Cell returns the cell at p.
func (g *Grid) Cell(p image.Point) (Cell, bool) {
	if !g.size.Contains(p) {
		return Cell{}, false
	}
	return g.cells[g.size.Index(p.X, p.Y)], true
}

// At returns the material at p, or Air outside the grid.
func (g *Grid) At(p image.Point) Material {
	c, _ := g.Cell(p)
	return c.Material
}

// Clear fills the grid with air.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = newCell(Air, i)
	}
	g.changes.reset()
	g.stats = TickStats{Tick: g.tick}
}

// Reset clears the grid and reseeds the tick RNG. A zero seed reuses the
// configured seed.
func (g *Grid) Reset(seed int64) {
	if seed == 0 {
		seed = g.cfg.Seed
	}
	g.rng.Seed(seed)
	g.tick = 0
	g.Clear()
}

// Place writes a fresh cell of m at p when the current cell there is air.
// Anything else, including out-of-bounds points and unknown tags, is a no-op.
func (g *Grid) Place(p image.Point, m Material) {
	if m >= materialCount || !g.size.Contains(p) {
		return
	}
	i := g.size.Index(p.X, p.Y)
	if g.cells[i].Material != Air {
		return
	}
	g.cells[i] = newCell(m, i)
}

// PlaceLine places m at every cell of the segment p1-p2 so fast drags leave no
// gaps.
func (g *Grid) PlaceLine(p1, p2 image.Point, m Material) {
	g.path = raster.Append(g.path[:0], p1, p2)
	for _, p := range g.path {
		g.Place(p, m)
	}
}

// ExecuteLogic advances the grid by exactly one tick.
//
// Cells are visited in ascending index order. Each cell's velocity and rest
// state are written back before the next index is read, so later cells see
// earlier updates from the same pass. Position changes are queued and applied
// only after the scan.
func (g *Grid) ExecuteLogic() {
	g.changes.reset()
	for i := range g.cells {
		c := g.cells[i]
		if !g.table.Movable(c.Material) {
			continue
		}
		g.applyForces(i, &c)
		dst := g.resolveMove(i, &c)
		c.LastIndex = i
		g.cells[i] = c
		if dst != i {
			g.changes.swap(i, dst)
		}
	}
	g.tick++
	g.stats = TickStats{
		Tick:     g.tick,
		Swaps:    len(g.changes.swaps),
		Disturbs: len(g.changes.overrides),
	}
	g.changes.flush(g)
}

// Step advances the simulation by one tick.
func (g *Grid) Step() { g.ExecuteLogic() }

func (g *Grid) threshold() int { return g.cfg.Params.FreeFallThreshold }
