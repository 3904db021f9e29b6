package sand

import (
	"image"
	"testing"

	"mad-sand/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()["sand"]
	require.True(t, ok)

	sim := factory(map[string]string{"w": "8", "h": "5"})
	assert.Equal(t, "sand", sim.Name())
	assert.Equal(t, core.Size{W: 8, H: 5}, sim.Size())
	assert.Len(t, sim.Cells(), 40)
}

func TestRegisteredFallsBackOnBadTable(t *testing.T) {
	sim := core.Sims()["sand"](map[string]string{"w": "4", "h": "4", "materials": "/does/not/exist.yaml"})
	g, ok := sim.(*Grid)
	require.True(t, ok)
	assert.Equal(t, DefaultTable(), g.Table())
	assert.Equal(t, 4, g.Size().W)
}

func TestBrushes(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	brushes := g.Brushes()
	require.Len(t, brushes, int(materialCount)-1)
	for _, b := range brushes {
		assert.NotEqual(t, uint8(Air), b.Value, "air is not paintable")
		assert.Equal(t, g.Table().Color(Material(b.Value)), b.Color)
		assert.Equal(t, Material(b.Value).String(), b.Name)
	}
}

func TestPaintLine(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	var canvas core.Canvas = g
	canvas.PaintLine(image.Pt(0, 0), image.Pt(4, 4), uint8(Coal))
	assert.Equal(t, 5, countMaterial(g, Coal))
	canvas.PaintLine(image.Pt(0, 4), image.Pt(4, 0), uint8(Sand))
	assert.Equal(t, 4, countMaterial(g, Sand), "the crossing cell is already coal")
}
