package sand

import (
	"strconv"

	"mad-sand/internal/core"
)

// Parameters exposes the current tunables for the HUD.
func (g *Grid) Parameters() core.ParameterSnapshot {
	p := g.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", g.size.W),
				intParam("h", "Height", g.size.H),
				int64Param("seed", "Seed", g.cfg.Seed),
				int64Param("tick", "Tick", int64(g.tick)),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				intParam("free_fall_threshold", "Rest threshold", p.FreeFallThreshold),
				floatParam("gravity", "Gravity", p.Gravity),
				floatParam("drag", "Drag", p.Drag),
				floatParam("landing_cap", "Landing kick cap", p.LandingCap),
				intParam("enclosed_neighbors", "Enclosed neighbors", p.EnclosedNeighbors),
			},
		},
		{
			Name: "Display",
			Params: []core.Parameter{
				boolParam("tint", "Tint settled", p.Tint),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (g *Grid) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "free_fall_threshold", Label: "Rest threshold", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 120, HasMax: true},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 2, HasMax: true},
		{Key: "drag", Label: "Drag", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "landing_cap", Label: "Landing kick cap", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 10, HasMax: true},
		{Key: "enclosed_neighbors", Label: "Enclosed neighbors", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 8, HasMax: true},
		{Key: "tint", Label: "Tint settled", Type: core.ParamTypeBool},
	}
}

// SetIntParameter updates integer tunables, clamping to the control bounds.
func (g *Grid) SetIntParameter(key string, value int) bool {
	switch key {
	case "free_fall_threshold":
		t := clampInt(value, 1, 120)
		g.cfg.Params.FreeFallThreshold = t
		for i := range g.cells {
			if g.cells[i].FreeFall > t {
				g.cells[i].FreeFall = t
			}
		}
	case "enclosed_neighbors":
		g.cfg.Params.EnclosedNeighbors = clampInt(value, 0, 8)
	default:
		return false
	}
	return true
}

// SetFloatParameter updates floating point tunables, clamping to the control
// bounds.
func (g *Grid) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "gravity":
		g.cfg.Params.Gravity = clampFloat(value, 0, 2)
	case "drag":
		g.cfg.Params.Drag = clampFloat(value, 0, 1)
	case "landing_cap":
		g.cfg.Params.LandingCap = clampFloat(value, 0, 10)
	default:
		return false
	}
	return true
}

// SetBoolParameter updates boolean tunables.
func (g *Grid) SetBoolParameter(key string, value bool) bool {
	if key != "tint" {
		return false
	}
	g.cfg.Params.Tint = value
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
