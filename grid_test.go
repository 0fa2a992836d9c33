package cajal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridPageIndexTranslation(t *testing.T) {
	g := newGrid(3)

	idx, lx, ly := g.pageIndex(0, 0)
	require.Equal(t, 0, idx)
	require.EqualValues(t, 0, lx)
	require.EqualValues(t, 0, ly)

	idx, lx, ly = g.pageIndex(pageWidth, 0)
	require.Equal(t, 1, idx)
	require.EqualValues(t, 0, lx)
	require.EqualValues(t, 0, ly)

	idx, lx, ly = g.pageIndex(pageWidth+5, pageWidth*2+7)
	require.Equal(t, 1+2*3, idx)
	require.EqualValues(t, 5, lx)
	require.EqualValues(t, 7, ly)
}

func TestGridCrossPageGrowthRouting(t *testing.T) {
	g := newGrid(2)

	// A BODY at the east edge of page (0,0), local (63, 32), growing East
	// must appear as an AXON at global (64, 32) on the neighboring page,
	// with its gate pointing back West.
	originIdx := xyToZ(pageWidth-1, 32)
	g.pages[0].Cells[originIdx].SetCellType(TypeBody)
	g.pages[0].Cells[originIdx].SetChromosome(ChromoEast)
	g.pages[0].Cells[originIdx].SetStim(true)
	g.pages[0].Active.Insert(originIdx)

	g.GrowStep()

	grown := g.GetCell(pageWidth, 32)
	require.Equal(t, TypeAxon, grown.GetCellType())
	require.Equal(t, West, grown.GetGate())
	require.True(t, grown.GetStim())
}

func TestGridOuterRingNeverGrows(t *testing.T) {
	g := newGrid(2)
	g.seed([]int64{7, 8, 9}, 0.08)
	g.Grow()

	for x := uint32(0); x < g.dimension; x++ {
		top := g.GetCell(x, 0)
		bottom := g.GetCell(x, g.dimension-1)
		require.NotEqual(t, TypeAxon, top.GetCellType())
		require.NotEqual(t, TypeDendrite, top.GetCellType())
		require.NotEqual(t, TypeAxon, bottom.GetCellType())
		require.NotEqual(t, TypeDendrite, bottom.GetCellType())
	}
	for y := uint32(0); y < g.dimension; y++ {
		left := g.GetCell(0, y)
		right := g.GetCell(g.dimension-1, y)
		require.NotEqual(t, TypeAxon, left.GetCellType())
		require.NotEqual(t, TypeDendrite, left.GetCellType())
		require.NotEqual(t, TypeAxon, right.GetCellType())
		require.NotEqual(t, TypeDendrite, right.GetCellType())
	}
}

func countCellTypes(g *Grid) (axons, dendrites, bodies int) {
	for x := uint32(0); x < g.dimension; x++ {
		for y := uint32(0); y < g.dimension; y++ {
			switch g.GetCell(x, y).GetCellType() {
			case TypeAxon:
				axons++
			case TypeDendrite:
				dendrites++
			case TypeBody:
				bodies++
			}
		}
	}
	return
}

func TestGridGrowthIsDeterministic(t *testing.T) {
	seed := []int64{42, 1, 7}

	g1 := newGrid(2)
	g1.seed(seed, 0.05)
	g1.Grow()
	a1, d1, b1 := countCellTypes(g1)

	g2 := newGrid(2)
	g2.seed(seed, 0.05)
	g2.Grow()
	a2, d2, b2 := countCellTypes(g2)

	require.Equal(t, a1, a2)
	require.Equal(t, d1, d2)
	require.Equal(t, b1, b2)
}

func TestGridDrainGrowthDropsOuterRingWrites(t *testing.T) {
	g := newGrid(2)

	g.pages[0].RemoteChanges = append(g.pages[0].RemoteChanges, remoteChange{
		GlobalX: 0, GlobalY: 10, CellType: TypeAxon, TravelDir: West, Stim: true,
	})
	g.drainGrowth()

	for _, p := range g.pages {
		require.Empty(t, p.Changes, "a write to the outer ring (x=0) must be dropped")
	}
}

func TestGridSetInputAndGetCell(t *testing.T) {
	g := newGrid(2)
	g.SetInput(70, 5, 100)

	cell := g.GetCell(70, 5)
	require.EqualValues(t, MaxSignal, cell.GetSignal())
}

func TestGridSignalStepRoutesAcrossPages(t *testing.T) {
	g := newGrid(2)

	originIdx := xyToZ(pageWidth-1, 10)
	g.pages[0].Cells[originIdx].SetCellType(TypeBody)
	g.pages[0].Cells[originIdx].SetGate(East)
	g.pages[0].Cells[originIdx].SetThreshold(1)
	g.pages[0].Cells[originIdx].SetSignal(9)
	g.pages[0].Cells[originIdx].SetStim(true)
	g.pages[0].Active.Insert(originIdx)

	neighborIdx := xyToZ(0, 10)
	g.pages[1].Cells[neighborIdx].SetCellType(TypeDendrite)

	g.SignalStep()

	require.EqualValues(t, 9, g.GetCell(pageWidth, 10).GetSignal())
}
