package cajal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigShape(t *testing.T) {
	cfg := DefaultConfig()
	require.EqualValues(t, 10, cfg.Size)
	require.InDelta(t, 0.05, cfg.Density, 1e-9)
	require.Nil(t, cfg.Seed)
}

func TestNewPanicsOnInvalidSize(t *testing.T) {
	require.Panics(t, func() {
		New(Config{Size: 0, Density: 0.05})
	})
}

func TestNewPanicsOnInvalidDensity(t *testing.T) {
	require.Panics(t, func() {
		New(Config{Size: 2, Density: -0.1})
	})
	require.Panics(t, func() {
		New(Config{Size: 2, Density: 1.1})
	})
}

func TestNewSeedsAndReportsDimension(t *testing.T) {
	c := New(Config{Size: 2, Density: 0.05, Seed: []int64{1, 2, 3}})
	require.EqualValues(t, 2*pageWidth, c.Dimension())
	require.Greater(t, c.Memory(), uint64(0))
}

func TestFacadeGrowAndSignalSmoke(t *testing.T) {
	c := New(Config{Size: 2, Density: 0.05, Seed: []int64{9, 9, 9}})

	c.Grow()
	require.Zero(t, c.GrowStep(), "grow should already be at a fixed point")

	c.SetInput(10, 10, 20)
	cell := c.GetCell(10, 10)
	require.EqualValues(t, MaxSignal, cell.GetSignal())

	c.Signal()
	require.Zero(t, c.SignalStep(), "signal should already be at a fixed point")
}

func TestFacadeGetCellWithinBoundsSucceeds(t *testing.T) {
	c := New(Config{Size: 1, Density: 0.05})

	cell := c.GetCell(5, 5)
	require.True(t, cell.GetCellType() == TypeEmpty || cell.GetCellType() == TypeBody ||
		cell.GetCellType() == TypeAxon || cell.GetCellType() == TypeDendrite)
}

func TestCellViewAccessorsMatchUnderlyingCell(t *testing.T) {
	var cell Cell
	cell.SetCellType(TypeAxon)
	cell.SetGate(East)
	cell.SetChromosome(ChromoNorth)
	cell.SetThreshold(12)
	cell.SetSignal(4)
	cell.SetStim(true)

	view := CellView{cell: cell}
	require.Equal(t, TypeAxon, view.GetCellType())
	require.Equal(t, East, view.GetGate())
	require.Equal(t, ChromoNorth, view.GetChromosome())
	require.EqualValues(t, 12, view.GetThreshold())
	require.EqualValues(t, 4, view.GetSignal())
	require.True(t, view.GetStim())
	require.True(t, view.ChromosomeContains(ChromoNorth))
	require.False(t, view.ChromosomeContains(ChromoEast))
}
