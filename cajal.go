package cajal

import "github.com/golang/glog"

// Config parameterizes a Cajal simulation.
type Config struct {
	// Size is S, the number of pages per side (S >= 1).
	Size uint32
	// Density is the fraction, in [0, 1], of each page seeded as BODY.
	Density float64
	// Seed is a variable-length sequence of integers seeding the RNG.
	Seed []int64
}

// DefaultConfig returns the same default shape the original's Grid::default
// used (size=10, density=0.05, empty seed).
func DefaultConfig() Config {
	return Config{Size: 10, Density: 0.05, Seed: nil}
}

// Cajal is a thin handle binding a Grid with its resolved configuration. It
// is the library's sole entry point (spec §6).
type Cajal struct {
	grid *Grid
	cfg  Config
}

// New constructs a Cajal simulation and seeds its grid. Size and density are
// programmer preconditions, not recoverable errors (see SPEC_FULL.md
// "Error handling"): out-of-domain values panic rather than silently
// clamping, since a library has no log sink to fail into.
func New(cfg Config) *Cajal {
	if cfg.Size < 1 {
		panic("cajal: Config.Size must be >= 1")
	}
	if cfg.Density < 0 || cfg.Density > 1 {
		panic("cajal: Config.Density must be within [0, 1]")
	}

	grid := newGrid(cfg.Size)
	grid.seed(cfg.Seed, cfg.Density)

	return &Cajal{grid: grid, cfg: cfg}
}

// Grow runs growth to a fixed point (until a step activates no new cells).
func (c *Cajal) Grow() {
	c.grid.Grow()
}

// GrowStep runs a single growth step and returns the number of newly
// activated cells.
func (c *Cajal) GrowStep() int {
	return c.grid.GrowStep()
}

// Signal runs signal propagation to a fixed point.
func (c *Cajal) Signal() {
	c.grid.Signal()
}

// SignalStep runs a single signal step and returns the new active-cell
// count.
func (c *Cajal) SignalStep() int {
	return c.grid.SignalStep()
}

// SetInput sets the signal level at global (x, y), clamped to MaxSignal.
func (c *Cajal) SetInput(x, y uint32, value int) {
	if x >= c.grid.dimension || y >= c.grid.dimension {
		glog.Fatalf("cajal: SetInput(%d, %d) out of bounds for dimension %d", x, y, c.grid.dimension)
	}
	c.grid.SetInput(x, y, value)
}

// CellView is a read-only view of a single cell's decoded fields.
type CellView struct {
	cell Cell
}

func (v CellView) GetCellType() CellType     { return v.cell.GetCellType() }
func (v CellView) GetGate() Gate             { return v.cell.GetGate() }
func (v CellView) GetChromosome() Chromosome { return v.cell.GetChromosome() }
func (v CellView) GetThreshold() uint8       { return v.cell.GetThreshold() }
func (v CellView) GetSignal() uint8          { return v.cell.GetSignal() }
func (v CellView) GetStim() bool             { return v.cell.GetStim() }

func (v CellView) ChromosomeContains(f Chromosome) bool {
	return v.cell.ChromosomeContains(f)
}

// GetCell returns a read-only view of the cell at global (x, y).
func (c *Cajal) GetCell(x, y uint32) CellView {
	if x >= c.grid.dimension || y >= c.grid.dimension {
		glog.Fatalf("cajal: GetCell(%d, %d) out of bounds for dimension %d", x, y, c.grid.dimension)
	}
	return CellView{cell: c.grid.GetCell(x, y)}
}

// Dimension returns the grid's total side length (Size * page width).
func (c *Cajal) Dimension() uint32 {
	return c.grid.dimension
}

// Memory approximates the simulation's footprint in bytes, mirroring the
// original's ReportMemory trait.
func (c *Cajal) Memory() uint64 {
	return c.grid.memory()
}
