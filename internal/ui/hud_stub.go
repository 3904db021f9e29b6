//go:build !ebiten

package ui

import "mad-sand/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Brushes returns nil in the headless build.
func (h *HUD) Brushes() []core.Brush { return nil }

// Brush reports no selection in the headless build.
func (h *HUD) Brush() (core.Brush, bool) { return core.Brush{}, false }

// SelectBrush is a no-op in the headless build.
func (h *HUD) SelectBrush(int) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
