package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

// scan evaluates r over every cell of g and returns the collected changes.
func scan(t *testing.T, g *core.Grid, k core.Kernel, topo convolve.Topology, r Rule) map[int]uint8 {
	t.Helper()
	e, err := convolve.NewEngine(k, g.Width(), g.Height(), topo, convolve.Buffered)
	require.NoError(t, err)
	buf := convolve.NewBuffer(k)
	cs := core.NewChangeSet(g.Len())
	var site convolve.Site
	for idx := 0; idx < g.Len(); idx++ {
		e.Visit(g, idx, buf, &site)
		r.Evaluate(&site, cs)
	}
	out := map[int]uint8{}
	cs.Each(func(idx int, v uint8) { out[idx] = v })
	return out
}

func grid(t *testing.T, w, h int, cells map[[2]int]uint8) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	require.NoError(t, err)
	for p, v := range cells {
		require.NoError(t, g.Set(p[0], p[1], int(v)))
	}
	return g
}

func TestParseLife(t *testing.T) {
	l, err := ParseLife("B3/S23")
	require.NoError(t, err)
	assert.Equal(t, Conway(), l)
	assert.Equal(t, "B3/S23", l.Name())

	l, err = ParseLife("s23/b36")
	require.NoError(t, err)
	assert.Equal(t, "B36/S23", l.Name())

	for _, bad := range []string{"", "B3", "B3/X23", "B3/B2", "Bx/S2"} {
		_, err := ParseLife(bad)
		assert.Error(t, err, bad)
	}

	_, err = NewLife([]int{64}, nil)
	assert.Error(t, err)
}

func TestConwayEmitsOnlyTransitions(t *testing.T) {
	// Blinker: the ends die, two cells are born, the centre survives silently.
	g := grid(t, 5, 5, map[[2]int]uint8{{1, 2}: 1, {2, 2}: 1, {3, 2}: 1})
	got := scan(t, g, core.Moore(), convolve.Toroidal, Conway())
	assert.Equal(t, map[int]uint8{
		core.ToIndex(2, 1, 5): 1,
		core.ToIndex(1, 2, 5): 0,
		core.ToIndex(3, 2, 5): 0,
		core.ToIndex(2, 3, 5): 1,
	}, got)
}

func TestConwayDeadGridIsSilent(t *testing.T) {
	g := grid(t, 6, 6, nil)
	assert.Empty(t, scan(t, g, core.Moore(), convolve.Toroidal, Conway()))
}

func TestDecaySpreadsIntoEmptyNeighbors(t *testing.T) {
	g := grid(t, 5, 5, map[[2]int]uint8{{2, 2}: 200, {3, 2}: 40})
	got := scan(t, g, core.Cardinal(), convolve.Bounded, DefaultDecay())

	// 200 spreads 170 to its three empty neighbours and halves itself.
	assert.Equal(t, uint8(170), got[core.ToIndex(2, 1, 5)])
	assert.Equal(t, uint8(170), got[core.ToIndex(1, 2, 5)])
	assert.Equal(t, uint8(100), got[core.ToIndex(2, 2, 5)])
	// 40 spreads 34 into its own empty neighbours and skips the occupied one.
	assert.Equal(t, uint8(34), got[core.ToIndex(3, 1, 5)])
	assert.Equal(t, uint8(34), got[core.ToIndex(4, 2, 5)])
	assert.Equal(t, uint8(34), got[core.ToIndex(3, 3, 5)])
	assert.Equal(t, uint8(170), got[core.ToIndex(2, 3, 5)])
	assert.Equal(t, uint8(20), got[core.ToIndex(3, 2, 5)])
	assert.Len(t, got, 8)
}

func TestDecayBelowThresholdDies(t *testing.T) {
	g := grid(t, 3, 3, map[[2]int]uint8{{1, 1}: 15})
	got := scan(t, g, core.Cardinal(), convolve.Toroidal, DefaultDecay())
	assert.Equal(t, uint8(0), got[4])
	assert.Equal(t, uint8(12), got[1])
}

func TestDecaySelfUpdateIsLastWrite(t *testing.T) {
	// A weighted origin tap makes the cell its own neighbour; the spread must
	// not overwrite the self update.
	g := grid(t, 2, 1, map[[2]int]uint8{{0, 0}: 100})
	k := core.NewKernel(
		core.Tap{Weight: 1, Offset: core.Offset{DX: 0}},
		core.Tap{Weight: 1, Offset: core.Offset{DX: 1}},
		core.Tap{Weight: 1, Offset: core.Offset{DX: -1}},
	)
	got := scan(t, g, k, convolve.Toroidal, DefaultDecay())
	assert.Equal(t, map[int]uint8{1: 85, 0: 50}, got)
}

func TestBrain(t *testing.T) {
	g := grid(t, 5, 5, map[[2]int]uint8{
		{1, 1}: BrainFiring,
		{2, 1}: BrainFiring,
		{4, 4}: BrainDying,
	})
	got := scan(t, g, core.Moore(), convolve.Toroidal, Brain{})
	assert.Equal(t, uint8(BrainDying), got[core.ToIndex(1, 1, 5)])
	assert.Equal(t, uint8(BrainDying), got[core.ToIndex(2, 1, 5)])
	assert.Equal(t, uint8(BrainReady), got[core.ToIndex(4, 4, 5)])
	// Cells touching both firing cells fire.
	assert.Equal(t, uint8(BrainFiring), got[core.ToIndex(1, 0, 5)])
	assert.Equal(t, uint8(BrainFiring), got[core.ToIndex(2, 2, 5)])
	_, touched := got[core.ToIndex(0, 1, 5)]
	assert.False(t, touched, "one firing neighbour is not enough")
}

func TestWolframRule90(t *testing.T) {
	g := grid(t, 7, 4, map[[2]int]uint8{{3, 0}: 1})
	e, err := convolve.NewEngine(WolframKernel(), 7, 4, convolve.Toroidal, convolve.Inline)
	require.NoError(t, err)
	buf := convolve.NewBuffer(WolframKernel())
	cs := core.NewChangeSet(g.Len())
	r := Wolfram{Code: 90}
	var site convolve.Site
	for tick := 0; tick < 4; tick++ {
		for idx := 0; idx < g.Len(); idx++ {
			e.Visit(g, idx, buf, &site)
			r.Evaluate(&site, cs)
		}
		require.NoError(t, cs.Commit(g))
	}
	assert.Equal(t, []uint8{
		0, 0, 0, 1, 0, 0, 0,
		0, 0, 1, 0, 1, 0, 0,
		0, 1, 0, 0, 0, 1, 0,
		1, 0, 1, 0, 1, 0, 1,
	}, g.Cells())
	assert.Equal(t, "rule90", r.Name())
}
