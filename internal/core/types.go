package core

import (
	"image"
	"image/color"
)

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// RGBARenderer is implemented by sims that can write their own pixels. buf
// holds 4 bytes per cell in row-major order.
type RGBARenderer interface {
	Render(buf []byte)
}

// Brush names a paintable value and the color used to preview it.
type Brush struct {
	Name  string
	Value uint8
	Color color.RGBA
}

// Canvas is implemented by sims that accept material painted along pointer
// drags. Points are grid coordinates; points outside the grid are ignored.
type Canvas interface {
	Brushes() []Brush
	PaintLine(from, to image.Point, value uint8)
}

// Clearer is implemented by sims that can empty their cells without
// touching the RNG state.
type Clearer interface {
	Clear()
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
