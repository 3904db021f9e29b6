//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"mad-sand/internal/core"
	"mad-sand/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type restMaskProvider interface {
	RestMask() []float32
}

var restTint = color.RGBA{R: 64, G: 164, B: 223}

// Overlay draws optional debugging visuals on top of the base simulation:
// the rest mask (toggled with M) and a brush cursor.
type Overlay struct {
	sim      core.Sim
	scale    int
	showRest bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image

	cursor        image.Point
	cursorColor   color.RGBA
	cursorVisible bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showRest = !o.showRest
	}
}

// SetCursor positions the brush cursor in grid coordinates.
func (o *Overlay) SetCursor(p image.Point, col color.RGBA, visible bool) {
	o.cursor = p
	o.cursorColor = col
	o.cursorVisible = visible
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.Len() == 0 {
		return
	}
	if o.showRest {
		if provider, ok := o.sim.(restMaskProvider); ok {
			o.drawMask(screen, size, provider.RestMask())
		}
	}
	if o.cursorVisible && size.Contains(o.cursor) {
		o.drawCursor(screen)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, size core.Size, mask []float32) {
	if len(mask) != size.Len() {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*size.Len())
	}
	render.FillMaskRGBA(o.maskBuf, mask, restTint)
	o.maskImg.WritePixels(o.maskBuf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawCursor(screen *ebiten.Image) {
	s := float64(o.scale)
	x := float64(o.cursor.X) * s
	y := float64(o.cursor.Y) * s
	col := o.cursorColor
	col.A = 180

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
