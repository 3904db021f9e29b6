//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/render"
	"mad-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var monochrome = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim      core.Sim
	canvas   core.Canvas
	renderer core.RGBARenderer
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	logger   *slog.Logger

	pixels []byte
	stroke Stroke

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64, logger *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, hudWidth),
		overlay:  ui.NewOverlay(sim, scale),
		logger:   logger,
		pixels:   make([]byte, 4*size.Len()),
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
	if c, ok := sim.(core.Canvas); ok {
		g.canvas = c
	}
	if r, ok := sim.(core.RGBARenderer); ok {
		g.renderer = r
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.stroke.End()
	g.logger.Info("reset", slog.String("sim", g.sim.Name()), slog.Int64("seed", seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if c, ok := g.sim.(core.Clearer); ok {
			c.Clear()
			g.stroke.End()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			if idx, ok := BrushForDigit(i+1, len(g.hud.Brushes())); ok {
				g.hud.SelectBrush(idx)
			}
		}
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	g.paint()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) paint() {
	mx, my := ebiten.CursorPosition()
	cell := CursorCell(mx, my, g.scale)
	brush, ok := g.hud.Brush()
	g.overlay.SetCursor(cell, brush.Color, ok && mx < g.viewWidth())

	if g.canvas == nil || !ok || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.stroke.End()
		return
	}
	if mx >= g.viewWidth() && !g.stroke.Active() {
		return
	}
	from, to := g.stroke.Next(cell)
	g.canvas.PaintLine(from, to, brush.Value)
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer != nil {
		g.renderer.Render(g.pixels)
	} else {
		render.FillPaletteRGBA(g.pixels, g.sim.Cells(), monochrome)
	}
	g.painter.Blit(screen, g.pixels, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
