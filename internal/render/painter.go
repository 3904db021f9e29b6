//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// GridPainter uploads RGBA cell pixels into a single image and draws it
// scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Blit uploads pixels, 4 bytes per cell, and draws them onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, pixels []byte, scale int) {
	if len(pixels) != 4*gp.w*gp.h {
		return
	}
	gp.img.WritePixels(pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
