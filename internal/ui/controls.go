package ui

import (
	"image"
	"math"
	"strconv"

	"mad-sand/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
	swatchSize     = 18
	swatchGap      = 6
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlSet tracks the HUD-adjustable parameters of one sim and applies
// button presses through whichever setters the sim implements.
type controlSet struct {
	states []controlState
	ints   core.IntParameterSetter
	floats core.FloatParameterSetter
	bools  core.BoolParameterSetter
}

func newControlSet(sim core.Sim) controlSet {
	var cs controlSet
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		cs.states = make([]controlState, len(controls))
		for i, ctrl := range controls {
			cs.states[i] = controlState{control: ctrl, value: "--"}
		}
	}
	cs.ints, _ = sim.(core.IntParameterSetter)
	cs.floats, _ = sim.(core.FloatParameterSetter)
	cs.bools, _ = sim.(core.BoolParameterSetter)
	return cs
}

// layout positions the control rows starting at top within a panel of the
// given width and returns the y coordinate below the last row.
func (cs *controlSet) layout(width, top int) int {
	for i := range cs.states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		cs.states[i].top = rowTop
		cs.states[i].minusRect = minus
		cs.states[i].plusRect = plus
	}
	return top + len(cs.states)*lineHeight
}

func (cs *controlSet) refresh(snapshot core.ParameterSnapshot) {
	for i := range cs.states {
		state := &cs.states[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
		case core.ParamTypeBool:
			parsed, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			state.boolValue = parsed
			state.value = formatBool(parsed)
		default:
			continue
		}
		state.hasValue = true
	}
}

// hit returns the control and direction under the panel-relative point.
func (cs *controlSet) hit(x, y int) (index, direction int, ok bool) {
	for i := range cs.states {
		state := &cs.states[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(x, y, state.minusRect) {
			return i, -1, true
		}
		if pointInRect(x, y, state.plusRect) {
			return i, 1, true
		}
	}
	return 0, 0, false
}

func (cs *controlSet) canAdjust(i, direction int) bool {
	if i < 0 || i >= len(cs.states) || direction == 0 {
		return false
	}
	state := &cs.states[i]
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if cs.ints == nil {
			return false
		}
		return intTarget(state, direction) != state.intValue
	case core.ParamTypeFloat:
		if cs.floats == nil {
			return false
		}
		target := floatTarget(state, direction)
		return math.Abs(target-state.floatValue) >= 1e-9
	case core.ParamTypeBool:
		if cs.bools == nil {
			return false
		}
		return state.boolValue != (direction > 0)
	default:
		return false
	}
}

// adjust applies one button press. Bool controls treat minus as off and plus
// as on.
func (cs *controlSet) adjust(i, direction int) bool {
	if !cs.canAdjust(i, direction) {
		return false
	}
	state := &cs.states[i]
	switch state.control.Type {
	case core.ParamTypeInt:
		target := intTarget(state, direction)
		if !cs.ints.SetIntParameter(state.control.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.value = strconv.Itoa(target)
	case core.ParamTypeFloat:
		target := floatTarget(state, direction)
		if !cs.floats.SetFloatParameter(state.control.Key, target) {
			return false
		}
		state.floatValue = target
		state.value = formatFloat(state.control, target)
	case core.ParamTypeBool:
		target := direction > 0
		if !cs.bools.SetBoolParameter(state.control.Key, target) {
			return false
		}
		state.boolValue = target
		state.value = formatBool(target)
	}
	return true
}

func intTarget(state *controlState, direction int) int {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin {
		if min := int(math.Round(state.control.Min)); target < min {
			target = min
		}
	}
	if state.control.HasMax {
		if max := int(math.Round(state.control.Max)); target > max {
			target = max
		}
	}
	return target
}

func floatTarget(state *controlState, direction int) float64 {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.floatValue + float64(direction)*step
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	return target
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func formatBool(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// brushPicker holds the paintable brushes and the current selection.
type brushPicker struct {
	brushes  []core.Brush
	selected int
	rects    []image.Rectangle
}

func newBrushPicker(sim core.Sim) brushPicker {
	var bp brushPicker
	if canvas, ok := sim.(core.Canvas); ok {
		bp.brushes = canvas.Brushes()
	}
	return bp
}

// layout places swatches in rows starting at top and returns the y below the
// last row.
func (bp *brushPicker) layout(width, top int) int {
	bp.rects = bp.rects[:0]
	if len(bp.brushes) == 0 {
		return top
	}
	perRow := (width - 2*panelPadding + swatchGap) / (swatchSize + swatchGap)
	if perRow < 1 {
		perRow = 1
	}
	for i := range bp.brushes {
		col, row := i%perRow, i/perRow
		x := panelPadding + col*(swatchSize+swatchGap)
		y := top + row*(swatchSize+swatchGap)
		bp.rects = append(bp.rects, image.Rect(x, y, x+swatchSize, y+swatchSize))
	}
	rows := (len(bp.brushes) + perRow - 1) / perRow
	return top + rows*(swatchSize+swatchGap)
}

func (bp *brushPicker) current() (core.Brush, bool) {
	if len(bp.brushes) == 0 {
		return core.Brush{}, false
	}
	return bp.brushes[bp.selected], true
}

func (bp *brushPicker) selectIndex(i int) bool {
	if i < 0 || i >= len(bp.brushes) {
		return false
	}
	bp.selected = i
	return true
}

func (bp *brushPicker) hit(x, y int) (int, bool) {
	for i, r := range bp.rects {
		if pointInRect(x, y, r) {
			return i, true
		}
	}
	return 0, false
}
