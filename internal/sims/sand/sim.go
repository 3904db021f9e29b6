package sand

import (
	"image"
	"log/slog"

	"mad-sand/internal/core"
)

// Brushes lists every paintable material.
func (g *Grid) Brushes() []core.Brush {
	var out []core.Brush
	for _, m := range Materials() {
		if m == Air {
			continue
		}
		props := g.table.Props(m)
		out = append(out, core.Brush{Name: props.Name, Value: uint8(m), Color: props.Color})
	}
	return out
}

// PaintLine places the material tagged value along from-to.
func (g *Grid) PaintLine(from, to image.Point, value uint8) {
	g.PlaceLine(from, to, Material(value))
}

var (
	_ core.Sim          = (*Grid)(nil)
	_ core.Canvas       = (*Grid)(nil)
	_ core.RGBARenderer = (*Grid)(nil)
)

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		c, err := FromMap(cfg)
		if err != nil {
			slog.Warn("material table not loaded, using defaults", slog.String("error", err.Error()))
		}
		return NewWithConfig(c)
	})
}
