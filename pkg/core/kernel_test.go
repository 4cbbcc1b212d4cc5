package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestMooreKernelShape(t *testing.T) {
	k := Moore()
	require.Equal(t, 9, k.Len())

	seen := map[Offset]float64{}
	for _, tap := range k.Taps() {
		seen[tap.Offset] = tap.Weight
	}
	require.Len(t, seen, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			w, ok := seen[Offset{DX: dx, DY: dy}]
			require.True(t, ok, "missing offset (%d,%d)", dx, dy)
			if dx == 0 && dy == 0 {
				assert.Equal(t, 0.0, w)
				continue
			}
			assert.Equal(t, 1.0, w)
		}
	}
}

func TestCardinalKernelShape(t *testing.T) {
	k := Cardinal()
	assert.Equal(t, []Tap{
		{Weight: 1, Offset: Offset{DX: 0, DY: -1}},
		{Weight: 1, Offset: Offset{DX: 1, DY: 0}},
		{Weight: 0, Offset: Offset{DX: 0, DY: 0}},
		{Weight: 1, Offset: Offset{DX: 0, DY: 1}},
		{Weight: 1, Offset: Offset{DX: -1, DY: 0}},
	}, k.Taps())
}

func TestKernel2D(t *testing.T) {
	k, err := Kernel2D(3, 1, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []Tap{
		{Weight: 1, Offset: Offset{DX: -1}},
		{Weight: 2, Offset: Offset{DX: 0}},
		{Weight: 3, Offset: Offset{DX: 1}},
	}, k.Taps())

	_, err = Kernel2D(3, 3, []float64{1, 1})
	assert.Error(t, err)
}

func TestKernelIsImmutable(t *testing.T) {
	taps := []Tap{{Weight: 1, Offset: Offset{DX: 1}}}
	k := NewKernel(taps...)
	taps[0].Weight = 9
	out := k.Taps()
	out[0].Weight = 7
	assert.Equal(t, 1.0, k.At(0).Weight)
}

func TestKernelTranslate1D(t *testing.T) {
	k := NewKernel(
		Tap{Weight: 1, Offset: Offset{DX: 1, DY: 1}},
		Tap{Weight: 1, Offset: Offset{DX: 0, DY: -1}},
	)
	assert.Equal(t, []Tap1D{{Weight: 1, Delta: 10}, {Weight: 1, Delta: -9}}, k.Translate1D(9))

	var deltas []int
	for _, tap := range Moore().Translate1D(6) {
		deltas = append(deltas, tap.Delta)
	}
	assert.Equal(t, []int{-7, -6, -5, -1, 0, 1, 5, 6, 7}, deltas)
}

func TestKernelValidate(t *testing.T) {
	assert.NoError(t, Moore().Validate(2, 2))

	k := NewKernel(
		Tap{Weight: 1, Offset: Offset{DX: 3, DY: 0}},
		Tap{Weight: 1, Offset: Offset{DX: 0, DY: 1}},
		Tap{Weight: 1, Offset: Offset{DX: 0, DY: -4}},
	)
	err := k.Validate(3, 4)
	require.ErrorIs(t, err, ErrInvalidKernelOffset)
	assert.Len(t, multierr.Errors(err), 2)

	dx, dy := k.Extent()
	assert.Equal(t, 3, dx)
	assert.Equal(t, 4, dy)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("Moore")
	require.NoError(t, err)
	assert.Equal(t, PresetMoore, p)
	assert.Equal(t, 9, p.Kernel().Len())

	p, err = ParsePreset("cardinal")
	require.NoError(t, err)
	assert.Equal(t, "cardinal", p.String())
	assert.Equal(t, 5, p.Kernel().Len())

	_, err = ParsePreset("hex")
	assert.Error(t, err)
}
