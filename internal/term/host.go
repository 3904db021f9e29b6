// Package term runs a simulation inside a terminal using tcell. Each
// terminal cell shows two grid rows with an upper half block: the foreground
// is the top row and the background the bottom row.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"mad-sand/internal/app"
	"mad-sand/internal/core"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Host owns the screen and drives a simulation from terminal input.
type Host struct {
	screen tcell.Screen
	sim    core.Sim
	seed   int64

	canvas   core.Canvas
	renderer core.RGBARenderer
	brushes  []core.Brush
	brush    int

	paused   bool
	stepOnce bool

	stroke app.Stroke

	pixels []byte
	cells  []uint8
}

// New wraps an initialized screen. Painting is enabled when sim implements
// core.Canvas.
func New(screen tcell.Screen, sim core.Sim, seed int64) *Host {
	h := &Host{screen: screen, sim: sim, seed: seed}
	if c, ok := sim.(core.Canvas); ok {
		h.canvas = c
		h.brushes = c.Brushes()
	}
	if r, ok := sim.(core.RGBARenderer); ok {
		h.renderer = r
	}
	return h
}

// Paused reports whether automatic stepping is suspended.
func (h *Host) Paused() bool { return h.paused }

// Brush returns the selected brush.
func (h *Host) Brush() (core.Brush, bool) {
	if len(h.brushes) == 0 {
		return core.Brush{}, false
	}
	return h.brushes[h.brush], true
}

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r == ' ':
		h.paused = !h.paused
	case r == 'n':
		if h.paused {
			h.stepOnce = true
		}
	case r == 'r':
		h.sim.Reset(h.seed)
		h.stroke.End()
	case r == 'c':
		if c, ok := h.sim.(core.Clearer); ok {
			c.Clear()
			h.stroke.End()
		}
	case r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(h.brushes) {
			h.brush = i
		}
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	if h.canvas == nil || len(h.brushes) == 0 {
		return
	}
	if ev.Buttons()&tcell.Button1 == 0 {
		h.stroke.End()
		return
	}
	mx, my := ev.Position()
	from, p := h.stroke.Next(image.Pt(mx, 2*my))
	value := h.brushes[h.brush].Value
	h.canvas.PaintLine(from, p, value)
	h.canvas.PaintLine(from.Add(image.Pt(0, 1)), p.Add(image.Pt(0, 1)), value)
}

// Tick advances the simulation unless paused. A pending single step runs
// even while paused.
func (h *Host) Tick() {
	if h.paused && !h.stepOnce {
		return
	}
	h.stepOnce = false
	h.sim.Step()
}

// Draw paints the grid and status line to the screen back buffer.
func (h *Host) Draw() {
	size := h.sim.Size()
	sw, sh := h.screen.Size()
	rows := (size.H + 1) / 2
	if rows > sh-1 {
		rows = sh - 1
	}
	cols := size.W
	if cols > sw {
		cols = sw
	}

	h.cells = nil
	if h.pixels == nil {
		h.cells = h.sim.Cells()
	}
	h.screen.Clear()
	for ty := 0; ty < rows; ty++ {
		for x := 0; x < cols; x++ {
			top := h.colorAt(size, x, 2*ty)
			bottom := tcell.ColorBlack
			if 2*ty+1 < size.H {
				bottom = h.colorAt(size, x, 2*ty+1)
			}
			h.screen.SetContent(x, ty, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	if rows >= 0 && rows < sh {
		h.drawStatus(rows, sw)
	}
}

func (h *Host) colorAt(size core.Size, x, y int) tcell.Color {
	i := size.Index(x, y)
	if h.pixels != nil {
		b := h.pixels[4*i:]
		return tcell.NewRGBColor(int32(b[0]), int32(b[1]), int32(b[2]))
	}
	if h.cells[i] != 0 {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}

func (h *Host) drawStatus(row, width int) {
	status := h.sim.Name()
	if b, ok := h.Brush(); ok {
		status += fmt.Sprintf(" | brush %d: %s", h.brush+1, b.Name)
	}
	if h.paused {
		status += " | paused"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		h.screen.SetContent(x, row, r, nil, style)
		x++
	}
}

// Frame renders the simulation pixels and draws the screen.
func (h *Host) Frame() {
	if h.renderer != nil {
		n := 4 * h.sim.Size().Len()
		if len(h.pixels) != n {
			h.pixels = make([]byte, n)
		}
		h.renderer.Render(h.pixels)
	}
	h.Draw()
	h.screen.Show()
}

// Run processes input and steps the simulation at tps until the context is
// cancelled or the user quits. The caller owns the screen and must Fini it.
func (h *Host) Run(ctx context.Context, tps int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	step := core.NewFixedStep(tps)
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	h.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if step.ShouldStep() {
				h.Tick()
			}
			h.Frame()
		}
	}
}
