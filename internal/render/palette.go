package render

import (
	"image/color"

	"github.com/hsluv/hsluv-go"
)

// Palette maps cell values to colors.
type Palette []color.RGBA

// BinaryPalette paints 0 as off and every other value as on.
func BinaryPalette(on, off color.Color) Palette {
	p := make(Palette, 256)
	p[0] = toRGBA(off)
	onRGBA := toRGBA(on)
	for i := 1; i < len(p); i++ {
		p[i] = onRGBA
	}
	return p
}

// IntensityPalette ramps lightness with the cell value at a fixed hue, so
// decaying waves fade towards the background. Value 0 is the background.
func IntensityPalette(hue float64, background color.Color) Palette {
	p := make(Palette, 256)
	p[0] = toRGBA(background)
	for v := 1; v < len(p); v++ {
		p[v] = hsluvRGBA(hue, 90, 15+75*float64(v)/255)
	}
	return p
}

// StatePalette gives each of n discrete states its own evenly spaced hue.
// State 0 is the background.
func StatePalette(n int, background color.Color) Palette {
	if n < 1 {
		n = 1
	}
	p := make(Palette, n)
	p[0] = toRGBA(background)
	for i := 1; i < n; i++ {
		p[i] = hsluvRGBA(360*float64(i-1)/float64(n-1), 100, 70)
	}
	return p
}

func hsluvRGBA(h, s, l float64) color.RGBA {
	r, g, b := hsluv.HsluvToRGB(h, s, l)
	return color.RGBA{
		R: channel(r),
		G: channel(g),
		B: channel(b),
		A: 0xff,
	}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

// ForSim picks a palette by simulation name.
func ForSim(name string) Palette {
	switch name {
	case "propagation":
		return IntensityPalette(250, color.Black)
	case "briansbrain":
		return StatePalette(3, color.Black)
	default:
		return BinaryPalette(color.White, color.Black)
	}
}
