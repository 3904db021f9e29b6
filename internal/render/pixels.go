package render

import (
	"image/color"
	"math"
)

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry. Buffers shorter than 4 bytes per
// cell are left untouched.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(buf) < 4*len(cells) {
		return
	}
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Shade scales the color channels of c by factor, leaving alpha alone.
func Shade(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: scaleComponent(c.R, factor),
		G: scaleComponent(c.G, factor),
		B: scaleComponent(c.B, factor),
		A: c.A,
	}
}

func scaleComponent(v uint8, factor float64) uint8 {
	scaled := float64(v)*factor + 0.5
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// FillMaskRGBA writes a translucent tint for each mask intensity in [0,1].
// Zero intensities are fully transparent; brighter cells get both more alpha
// and a brighter tint.
func FillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	if len(buf) < 4*len(mask) {
		return
	}
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := math.Min(math.Max(float64(v), 0), 1)
		if intensity == 0 {
			clear(buf[base : base+4])
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
}
