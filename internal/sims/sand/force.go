package sand

import "math"

type side uint8

const (
	sideNone side = iota
	sideLeft
	sideRight
)

// applyForces runs the movable-solid rest machine for the cell at index i,
// updating c in place and queueing disturb overrides for neighbors.
func (g *Grid) applyForces(i int, c *Cell) {
	p := &g.cfg.Params
	t := p.FreeFallThreshold
	nb := g.Neighbors(i)

	if c.FreeFall < t {
		g.disturbNeighbors(&nb)
	}
	// flush resolves markers queued during a tick, so this only sees ones
	// written from outside ExecuteLogic.
	if c.FreeFall == 2*t {
		c.FreeFall = g.disturbCheck(&nb)
	}

	bottom := nb.Bottom()
	grounded := !bottom.OK || bottom.Cell.Material != Air

	if math.Abs(c.VX) >= 1 {
		c.VX *= p.Drag
		if math.Abs(c.VX) <= 1 {
			c.VX = 0
		}
	}

	switch phase(*c, grounded, t) {
	case Falling:
		c.VY += p.Gravity
		c.FreeFall = 0
	case JustLanded:
		absorbed := math.Min(p.LandingCap, c.VY*g.rng.Float64())
		left, right := g.freeSides(&nb, c.VX)
		switch g.pickSide(left, right) {
		case sideLeft:
			c.VX = -absorbed
		case sideRight:
			c.VX = absorbed
		}
	case Rolling:
		roll := g.table.RollSpeed(c.Material)
		left, right := g.freeSides(&nb, c.VX)
		if !(left && right) && g.rng.Chance(math.Pow(g.table.Resistance(c.Material), 3)) {
			c.FreeFall = t
			left, right = false, false
		}
		switch g.pickSide(left, right) {
		case sideLeft:
			c.VX = -roll
		case sideRight:
			c.VX = roll
		}
	}

	if grounded {
		c.VY = g.table.RollSpeed(c.Material)
		if c.LastIndex == i {
			c.FreeFall++
			if c.FreeFall >= t {
				c.FreeFall = t
				c.VX = 0
			}
		}
	}
	c.Grounded = grounded
}

// disturbNeighbors gives each movable-solid neighbor a chance, weighted by
// its inertial resistance, to be re-checked after this pass. Cells buried in
// movable solids stay quiet.
func (g *Grid) disturbNeighbors(nb *Neighborhood) {
	count := 0
	for _, n := range nb {
		if n.OK && g.table.Movable(n.Cell.Material) {
			count++
		}
	}
	if count >= g.cfg.Params.EnclosedNeighbors {
		return
	}
	marker := 2 * g.threshold()
	for _, n := range nb {
		if !n.OK || !g.table.Movable(n.Cell.Material) {
			continue
		}
		if g.rng.Chance(1 - g.table.Resistance(n.Cell.Material)) {
			g.changes.overrideFreeFall(n.Index, marker)
		}
	}
}

// disturbCheck resolves a disturb marker: a cell whose three lower slots are
// all solid or off-grid stays at rest, anything else is freed to fall.
func (g *Grid) disturbCheck(nb *Neighborhood) int {
	if g.supports(nb.BottomLeft()) && g.supports(nb.Bottom()) && g.supports(nb.BottomRight()) {
		return g.threshold()
	}
	return 0
}

func (g *Grid) supports(n Neighbor) bool {
	return !n.OK || g.table.Solid(n.Cell.Material)
}

// freeSides reports which lower diagonals are open air, gated by the sign of
// vx so a cell never reverses into the side it is moving away from.
func (g *Grid) freeSides(nb *Neighborhood, vx float64) (left, right bool) {
	left = vx <= 0 && nb.BottomLeft().Is(Air)
	right = vx >= 0 && nb.BottomRight().Is(Air)
	return left, right
}

func (g *Grid) pickSide(left, right bool) side {
	switch {
	case left && right:
		if g.rng.Bool() {
			return sideRight
		}
		return sideLeft
	case left:
		return sideLeft
	case right:
		return sideRight
	default:
		return sideNone
	}
}
