package propagation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"toroid/internal/core"
)

func TestPulseSpreadsAndFades(t *testing.T) {
	s, err := core.New("propagation", map[string]string{"w": "9", "h": "9"})
	require.NoError(t, err)
	at := func(x, y int) uint8 { return s.Cells()[y*9+x] }
	require.Equal(t, uint8(255), at(4, 4))

	s.Step()
	assert.Equal(t, uint8(127), at(4, 4))
	for _, p := range [][2]int{{4, 3}, {5, 4}, {4, 5}, {3, 4}} {
		assert.Equal(t, uint8(216), at(p[0], p[1]), "%v", p)
	}
	assert.Equal(t, uint8(0), at(3, 3))

	// The wave dies out on a bounded grid.
	for i := 0; i < 200; i++ {
		s.Step()
	}
	assert.Equal(t, make([]uint8, 81), s.Cells())
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{"threshold": "20", "decay": "0.25", "spread": "0.5"})
	require.NoError(t, err)
	assert.Equal(t, uint8(20), c.Decay.Threshold)
	assert.Equal(t, 0.25, c.Decay.DecayFactor)
	assert.Equal(t, 0.5, c.Decay.SpreadFactor)

	_, err = FromMap(map[string]string{"threshold": "300", "decay": "2", "spread": "x"})
	assert.Len(t, multierr.Errors(err), 3)
}

func TestParameters(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)
	decay := p.Parameters().Groups[1]
	assert.Equal(t, "16", decay.Params[0].Value)
	assert.Equal(t, "0.5", decay.Params[1].Value)
	assert.Equal(t, "0.85", decay.Params[2].Value)
}
