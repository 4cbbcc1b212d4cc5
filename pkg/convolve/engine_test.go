package convolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toroid/pkg/core"
)

func TestNewEngineValidatesKernel(t *testing.T) {
	k := core.NewKernel(core.Tap{Weight: 1, Offset: core.Offset{DX: 4}})
	_, err := NewEngine(k, 4, 4, Toroidal, Buffered)
	assert.ErrorIs(t, err, core.ErrInvalidKernelOffset)

	_, err = NewEngine(core.Moore(), 0, 4, Toroidal, Buffered)
	assert.ErrorIs(t, err, core.ErrInvalidDimension)
}

func TestSpectralRequiresTorus(t *testing.T) {
	_, err := NewEngine(core.Moore(), 8, 8, Bounded, Spectral)
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
}

func TestStrategiesAgreeOnTorus(t *testing.T) {
	weighted, err := core.Kernel2D(3, 3, []float64{1, 2, 1, 2, 0, 2, 1, 2, 1})
	require.NoError(t, err)
	kernels := map[string]core.Kernel{
		"moore":    core.Moore(),
		"cardinal": core.Cardinal(),
		"weighted": weighted,
		"skewed": core.NewKernel(
			core.Tap{Weight: 0.5, Offset: core.Offset{DX: 2, DY: -1}},
			core.Tap{Weight: 3, Offset: core.Offset{DX: -3, DY: 2}},
		),
	}
	// Odd and non-square sizes exercise the real FFT on both axes.
	for _, size := range [][2]int{{8, 8}, {12, 7}, {5, 9}} {
		g := randomGrid(t, size[0], size[1], uint64(size[0]*31+size[1]))
		for name, k := range kernels {
			engines := map[Strategy]*Engine{}
			for _, s := range []Strategy{Buffered, Inline, Spectral} {
				e, err := NewEngine(k, size[0], size[1], Toroidal, s)
				require.NoError(t, err)
				e.Prepare(g)
				engines[s] = e
			}
			buf := NewBuffer(k)
			for idx := 0; idx < g.Len(); idx++ {
				want := engines[Buffered].Aggregate(g, idx, buf)
				assert.Equal(t, want, engines[Inline].Aggregate(g, idx, buf), "%s %v inline idx %d", name, size, idx)
				assert.InDelta(t, want, engines[Spectral].Aggregate(g, idx, buf), 1e-9, "%s %v spectral idx %d", name, size, idx)
			}
		}
	}
}

func TestInteriorDeltasMatchResolvedOffsets(t *testing.T) {
	skewed := core.NewKernel(
		core.Tap{Weight: 0.5, Offset: core.Offset{DX: 2, DY: -1}},
		core.Tap{Weight: 0, Offset: core.Offset{DX: 1, DY: 1}},
		core.Tap{Weight: 3, Offset: core.Offset{DX: -1, DY: 1}},
	)
	g := randomGrid(t, 9, 7, 5)
	for _, k := range []core.Kernel{core.Moore(), core.Cardinal(), skewed} {
		for _, topo := range []Topology{Toroidal, Bounded} {
			e, err := NewEngine(k, 9, 7, topo, Inline)
			require.NoError(t, err)
			buf := NewBuffer(k)
			interior := 0
			for idx := 0; idx < g.Len(); idx++ {
				x, y := core.ToXY(idx, 9)
				if e.interior(x, y) {
					interior++
				}
				assert.Equal(t, SumInline(k, idx, g, topo), e.Aggregate(g, idx, buf), "%s idx %d", topo, idx)

				var want []int
				for i := 0; i < k.Len(); i++ {
					tap := k.At(i)
					if tap.Weight == 0 {
						continue
					}
					if target, ok := resolve(x, y, tap.Offset, 9, 7, topo); ok {
						want = append(want, target)
					}
				}
				assert.Equal(t, want, append([]int(nil), e.Neighbors(idx, buf)...), "%s idx %d", topo, idx)
			}
			assert.Greater(t, interior, 0)
			assert.Less(t, interior, g.Len())
		}
	}
}

func TestEngineNeighborsSkipZeroWeightTaps(t *testing.T) {
	e, err := NewEngine(core.Cardinal(), 5, 5, Toroidal, Buffered)
	require.NoError(t, err)
	buf := NewBuffer(core.Cardinal())
	assert.Equal(t, []int{20, 1, 5, 4}, e.Neighbors(0, buf))

	flat, err := NewEngine(core.Cardinal(), 5, 5, Bounded, Inline)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, flat.Neighbors(0, buf))
}

func TestVisitFillsSite(t *testing.T) {
	g := newGrid(t, 5, 5, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})
	e, err := NewEngine(core.Moore(), 5, 5, Toroidal, Buffered)
	require.NoError(t, err)
	buf := NewBuffer(core.Moore())

	var s Site
	e.Visit(g, 0, buf, &s)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0, s.X)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, uint8(0), s.Value)
	assert.Equal(t, 3.0, s.Aggregate)
	assert.Len(t, s.Neighbors(), 8)
	assert.Equal(t, uint8(1), s.ValueAt(6))
}
