package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{A: 255}, {R: 10, A: 255}}
	buf := make([]byte, 12)
	FillPaletteRGBA(buf, []uint8{0, 1, 200}, pal)
	assert.Equal(t, []byte{0, 0, 0, 255, 10, 0, 0, 255, 10, 0, 0, 255}, buf)

	FillPaletteRGBA(buf, []uint8{0, 1, 200}, nil)
	assert.Equal(t, make([]byte, 12), buf)
}

func luma(c color.RGBA) int { return 299*int(c.R) + 587*int(c.G) + 114*int(c.B) }

func TestIntensityPaletteBrightens(t *testing.T) {
	p := IntensityPalette(250, color.Black)
	require.Len(t, p, 256)
	assert.Equal(t, color.RGBA{A: 255}, p[0])
	assert.Less(t, luma(p[1]), luma(p[128]))
	assert.Less(t, luma(p[128]), luma(p[255]))
	for _, c := range p {
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestStatePaletteDistinct(t *testing.T) {
	p := StatePalette(3, color.Black)
	require.Len(t, p, 3)
	assert.NotEqual(t, p[1], p[2])
	assert.NotEqual(t, p[0], p[1])
}

func TestForSim(t *testing.T) {
	assert.Len(t, ForSim("life"), 256)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, ForSim("life")[1])
	assert.Len(t, ForSim("briansbrain"), 3)
}
