//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	selectColor = color.RGBA{R: 240, G: 240, B: 250, A: 255}
)

// HUD renders the brush palette and parameter panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     controlSet
	brushes      brushPicker
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width. A
// zero width hides the panel but keeps brush selection working.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{
		sim:      sim,
		width:    width,
		title:    buildTitle(sim),
		controls: newControlSet(sim),
		brushes:  newBrushPicker(sim),
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	next := h.brushes.layout(width, controlsTop+labelBaseline-8)
	h.controls.layout(width, next+8)
	return h
}

// Brushes lists the paintable brushes of the sim.
func (h *HUD) Brushes() []core.Brush {
	if h == nil {
		return nil
	}
	return h.brushes.brushes
}

// Brush returns the selected brush.
func (h *HUD) Brush() (core.Brush, bool) {
	if h == nil {
		return core.Brush{}, false
	}
	return h.brushes.current()
}

// SelectBrush changes the selected brush by index.
func (h *HUD) SelectBrush(i int) {
	if h == nil {
		return
	}
	h.brushes.selectIndex(i)
}

// Update refreshes the cached parameter snapshot from the simulation and handles
// HUD interactions.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.controls.refresh(provider.Parameters())
	}
	h.handleInput()
}

func (h *HUD) handleInput() {
	if h.width <= 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	if i, ok := h.brushes.hit(px, my); ok {
		h.brushes.selectIndex(i)
		return
	}
	if i, dir, ok := h.controls.hit(px, my); ok {
		h.controls.adjust(i, dir)
	}
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	h.drawBrushes()
	h.drawControls()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s Controls", strings.ToUpper(name[:1])+name[1:])
}

func (h *HUD) drawBrushes() {
	brush, ok := h.brushes.current()
	if !ok {
		return
	}
	face := basicfont.Face7x13
	label := fmt.Sprintf("Brush %d: %s", h.brushes.selected+1, brush.Name)
	text.Draw(h.panel, label, face, panelPadding, controlsTop+labelBaseline-14, labelColor)
	for i, rect := range h.brushes.rects {
		if i == h.brushes.selected {
			h.fillRect(rect.Inset(-2), selectColor)
		}
		h.fillRect(rect, h.brushes.brushes[i].Color)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	if len(h.controls.states) == 0 {
		y := controlsTop + infoSpacing
		if len(h.brushes.rects) > 0 {
			y = h.brushes.rects[len(h.brushes.rects)-1].Max.Y + infoSpacing
		}
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y, mutedColor)
		return
	}
	for i := range h.controls.states {
		state := &h.controls.states[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)

		valueColor := labelColor
		if !state.hasValue {
			valueColor = mutedColor
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.controls.canAdjust(i, -1))
		h.drawButton(state.plusRect, "+", h.controls.canAdjust(i, 1))
	}
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
