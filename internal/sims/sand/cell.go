package sand

// Cell is the per-slot simulation state. Cells are owned by a Grid and are
// copied by value when sampled.
type Cell struct {
	Material Material

	VX, VY float64

	// FreeFall counts ticks spent resting or rolling. It saturates at the
	// grid's threshold T; 2T marks a pending disturb check.
	FreeFall int
	Grounded bool

	// LastIndex is the slot this cell occupied at the start of the previous
	// tick.
	LastIndex int
}

func newCell(m Material, index int) Cell {
	return Cell{Material: m, LastIndex: index}
}

// State names the phase of the movable-solid rest machine.
type State uint8

const (
	Falling State = iota
	JustLanded
	Rolling
	Settled
	DisturbCheck
)

func (s State) String() string {
	switch s {
	case Falling:
		return "falling"
	case JustLanded:
		return "just-landed"
	case Rolling:
		return "rolling"
	case Settled:
		return "settled"
	case DisturbCheck:
		return "disturb-check"
	default:
		return "unknown"
	}
}

// State classifies c as of the end of its last tick.
func (c Cell) State(t int) State {
	return phase(c, c.Grounded, t)
}

// phase classifies c for a tick in which its support test returned grounded.
// The stored Grounded flag still holds the previous tick's answer.
func phase(c Cell, grounded bool, t int) State {
	switch {
	case c.FreeFall == 2*t:
		return DisturbCheck
	case !grounded:
		return Falling
	case !c.Grounded:
		return JustLanded
	case c.FreeFall < t:
		return Rolling
	default:
		return Settled
	}
}
