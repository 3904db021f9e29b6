package sand

// Neighborhood slots in sampling order.
const (
	SlotTopLeft = iota
	SlotTop
	SlotTopRight
	SlotLeft
	SlotRight
	SlotBottomLeft
	SlotBottom
	SlotBottomRight
)

// Neighbor is one sampled slot. OK is false when the slot falls outside the
// grid or would wrap across a row boundary.
type Neighbor struct {
	Index int
	Cell  Cell
	OK    bool
}

// Is reports whether the slot is present and holds m.
func (n Neighbor) Is(m Material) bool { return n.OK && n.Cell.Material == m }

// Neighborhood is the 3x3 block around a cell, center excluded.
type Neighborhood [8]Neighbor

func (n *Neighborhood) TopLeft() Neighbor     { return n[SlotTopLeft] }
func (n *Neighborhood) Top() Neighbor         { return n[SlotTop] }
func (n *Neighborhood) TopRight() Neighbor    { return n[SlotTopRight] }
func (n *Neighborhood) Left() Neighbor        { return n[SlotLeft] }
func (n *Neighborhood) Right() Neighbor       { return n[SlotRight] }
func (n *Neighborhood) BottomLeft() Neighbor  { return n[SlotBottomLeft] }
func (n *Neighborhood) Bottom() Neighbor      { return n[SlotBottom] }
func (n *Neighborhood) BottomRight() Neighbor { return n[SlotBottomRight] }

// Neighbors samples the neighborhood of index i from the current grid state.
func (g *Grid) Neighbors(i int) Neighborhood {
	var n Neighborhood
	if i < 0 || i >= len(g.cells) {
		return n
	}
	w, h := g.size.W, g.size.H
	x, y := i%w, i/w
	slot := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if ny >= 0 && ny < h && nx >= 0 && nx < w {
				j := ny*w + nx
				n[slot] = Neighbor{Index: j, Cell: g.cells[j], OK: true}
			}
			slot++
		}
	}
	return n
}
