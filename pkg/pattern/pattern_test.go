package pattern

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toroid/pkg/core"
)

type gridTarget struct{ *core.Grid }

func (g gridTarget) Seed(x, y, v int) error { return g.Set(x, y, v) }

func newTarget(t *testing.T, w, h int) gridTarget {
	t.Helper()
	g, err := core.NewGrid(w, h)
	require.NoError(t, err)
	return gridTarget{g}
}

func rng(seed int64) *core.RNG { return core.NewRNG(seed) }

func TestGliderWrapsAroundEdges(t *testing.T) {
	g := newTarget(t, 4, 4)
	require.NoError(t, Glider(image.Pt(2, 2)).Apply(g, rng(1)))
	want := map[[2]int]bool{{3, 2}: true, {0, 3}: true, {2, 0}: true, {3, 0}: true, {0, 0}: true}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v, err := g.At(x, y)
			require.NoError(t, err)
			assert.Equal(t, want[[2]int{x, y}], v == 1, "cell (%d,%d)", x, y)
		}
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a := newTarget(t, 32, 32)
	b := newTarget(t, 32, 32)
	p := Random{Density: 0.5}
	require.NoError(t, p.Apply(a, rng(7)))
	require.NoError(t, p.Apply(b, rng(7)))
	assert.Equal(t, a.Cells(), b.Cells())
	assert.Greater(t, a.Population(), 0)
	assert.Less(t, a.Population(), 32*32)
}

func TestNoiseIsDeterministic(t *testing.T) {
	a := newTarget(t, 24, 24)
	b := newTarget(t, 24, 24)
	p := Noise{Scale: 6, Threshold: 0.5}
	require.NoError(t, p.Apply(a, rng(3)))
	require.NoError(t, p.Apply(b, rng(3)))
	assert.Equal(t, a.Cells(), b.Cells())
	for _, v := range a.Cells() {
		if v != 0 {
			assert.GreaterOrEqual(t, v, uint8(128))
		}
	}
}

func TestBlinkyLattice(t *testing.T) {
	g := newTarget(t, 12, 12)
	require.NoError(t, Blinky{Stride: 6}.Apply(g, rng(0)))
	// Origins (1,1), (7,1), (1,7), (7,7); three cells each.
	assert.Equal(t, 12, g.Population())
	v, _ := g.At(7, 9)
	assert.Equal(t, uint8(1), v)
}

func TestParse(t *testing.T) {
	p, err := Parse("glider", 16, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(7, 7), p.(Points).At)

	p, err = Parse("random:0.4", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, Random{Density: 0.4}, p)

	p, err = Parse("pulse:200", 9, 9)
	require.NoError(t, err)
	assert.Equal(t, Pulse{At: image.Pt(4, 4), Value: 200}, p)

	p, err = Parse("pulse:255", 9, 9)
	require.NoError(t, err)
	assert.Equal(t, 255, p.(Pulse).Value)

	p, err = Parse("", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, Empty{}, p)

	for _, bad := range []string{"spaceship", "random:2", "blinky:x", "noise:-1", "pulse:-5", "pulse:0", "pulse:256"} {
		_, err := Parse(bad, 8, 8)
		assert.Error(t, err, bad)
	}
}
