package cajal

import "math/rand"

// pageWidth is the side length of a page tile (W in the spec). This module
// targets the W=64 configuration (pageSize=4096 cells); the W=256
// alternative the spec also allows is a straight recompile with this
// constant changed (pageSize below follows from it) — Go constants aren't generic over
// this the way the original's build-time parameter was, so a page-width
// swap is a source edit, same as flipping a #define would be.
const pageWidth = 64
const pageSize = pageWidth * pageWidth

// cardinalDirections lists the four cardinal gates in a fixed order, used
// wherever the spec iterates "for each direction d in {N,S,E,W}".
var cardinalDirections = [4]Gate{North, South, East, West}

// remoteChange is a cross-page growth event: a page asks the grid to grow
// a cell at a global coordinate owned by another page.
type remoteChange struct {
	GlobalX, GlobalY uint32
	CellType         CellType
	TravelDir        Gate
	Stim             bool
}

// remoteSignal is a cross-page signal-forwarding event.
type remoteSignal struct {
	GlobalX, GlobalY uint32
	Strength         uint8
	Stim             bool
	OriginType       CellType
}

// localSignal is a pending signal delivery, either produced locally by this
// page's own signalStep (Remote == false, From is a genuine origin cell) or
// injected by the grid's remote drain (Remote == true, From == To since the
// real origin lives on another page's index space and isn't transmitted).
type localSignal struct {
	FromX, FromY uint32
	ToIndex      uint32
	Strength     uint8
	Stim         bool
	OriginType   CellType
	Remote       bool
}

// Page is a fixed W*W tile of cells, the unit of parallel work for both the
// growth and signal phases. Its change/signal queues live for exactly one
// step: populated during a parallel kernel, drained by the grid, then
// cleared at reconciliation.
type Page struct {
	Width int
	Cells []Cell

	Active  *activeSet
	Changes map[uint32]Cell

	RemoteChanges []remoteChange
	LocalSignal   []localSignal
	RemoteSignal  []remoteSignal

	OffsetX, OffsetY uint32

	// Dimension is the owning grid's total side length (S*W). A page needs
	// it to tell a page-internal growth target that happens to land
	// on the grid's outer ring apart from an ordinary in-page write: both
	// paths reach addChange/the Changes map, but only the ring write must
	// be dropped.
	Dimension uint32
}

// newPage allocates an empty page at the given global top-left offset,
// within a grid of the given total dimension.
func newPage(offsetX, offsetY, dimension uint32) *Page {
	return &Page{
		Width:   pageWidth,
		Cells:   make([]Cell, pageSize),
		Active:  newActiveSet(pageSize),
		Changes: make(map[uint32]Cell),

		OffsetX:   offsetX,
		OffsetY:   offsetY,
		Dimension: dimension,
	}
}

// Seed deterministically populates the page from a per-page RNG derived
// from (seed, offsetX, offsetY).
func (p *Page) Seed(seed []int64, density float64) {
	rng := rand.New(rand.NewSource(derivePageSeed(seed, p.OffsetX, p.OffsetY)))
	p.seed(rng, density)
}

// GetCell returns the cell at page-local (x, y).
func (p *Page) GetCell(x, y uint32) Cell {
	return p.Cells[xyToZ(x, y)]
}

// SetInput directly sets the signal level at page-local (x, y), clamped to
// MaxSignal, and marks the cell active.
func (p *Page) SetInput(x, y uint32, v int) {
	idx := xyToZ(x, y)
	p.Cells[idx].SetSignal(v)
	p.Active.Insert(idx)
}

// onOuterRing reports whether page-local (lx, ly) maps to the grid's global
// outer ring. Only the leftmost/rightmost/topmost/bottommost pages can ever
// answer true; for every other page this is always false.
func (p *Page) onOuterRing(lx, ly uint32) bool {
	gx := p.OffsetX + lx
	gy := p.OffsetY + ly
	return gx == 0 || gx == p.Dimension-1 || gy == 0 || gy == p.Dimension-1
}

// growStep runs the page-local growth kernel: for every active cell, for
// every direction its chromosome allows, attempt a local grow or emit a
// remote-change event. A grown cell takes the grower's cell type, except
// that a BODY grows an AXON. It does not mutate p.Cells except for reads;
// all writes land in p.Changes / p.RemoteChanges for reconciliation.
func (p *Page) growStep() {
	w := uint32(p.Width)
	p.Active.Each(func(i uint32) {
		cell := p.Cells[i]
		ctype := cell.GetCellType()
		if ctype == TypeBody {
			ctype = TypeAxon
		}
		chromo := cell.GetChromosome()
		x, y := zToXY(i)

		for _, d := range cardinalDirections {
			if !chromo.Contains(GateChromosome(d)) {
				continue
			}

			if inBoundsLocal(x, y, d, w) {
				nx, ny := stepCoord(x, y, d)
				if p.onOuterRing(nx, ny) {
					continue
				}
				target := xyToZ(nx, ny)
				if p.Cells[target].GetCellType() != TypeEmpty {
					continue
				}
				var change Cell
				change.SetCellType(ctype)
				change.SetGate(d.Opposite())
				change.SetStim(cell.GetStim())
				p.Changes[target] = change
				continue
			}

			gx := int64(p.OffsetX) + int64(x)
			gy := int64(p.OffsetY) + int64(y)
			switch d {
			case North:
				gy++
			case South:
				gy--
			case East:
				gx++
			case West:
				gx--
			}
			if gx < 0 || gy < 0 {
				continue
			}
			p.RemoteChanges = append(p.RemoteChanges, remoteChange{
				GlobalX:   uint32(gx),
				GlobalY:   uint32(gy),
				CellType:  ctype,
				TravelDir: d,
				Stim:      cell.GetStim(),
			})
		}
	})
}

// addChange is called during the grid's serial drain to deliver a cross-page
// growth event addressed to this page's local (lx, ly). It inserts into
// Changes only if the target cell is currently EMPTY; last writer within a
// drain pass wins.
func (p *Page) addChange(lx, ly uint32, ct CellType, travelDir Gate, stim bool) {
	idx := xyToZ(lx, ly)
	if p.Cells[idx].GetCellType() != TypeEmpty {
		return
	}
	var change Cell
	change.SetCellType(ct)
	change.SetGate(travelDir.Opposite())
	change.SetStim(stim)
	p.Changes[idx] = change
}

// reconcileGrowth applies all pending changes, rebuilds Active from the
// newly-grown cells, and clears the change/remote-change queues.
func (p *Page) reconcileGrowth() {
	p.Active.Clear()
	for target, change := range p.Changes {
		p.Cells[target].SetCellType(change.GetCellType())
		p.Cells[target].SetGate(change.GetGate())
		p.Cells[target].SetStim(change.GetStim())
		p.Active.Insert(target)
	}
	clear(p.Changes)
	p.RemoteChanges = p.RemoteChanges[:0]
}

// signalStep runs the page-local signal kernel: for every active cell that
// has reached its threshold, forward its signal along its gate (BODY,
// DENDRITE) or along every non-gate cardinal direction (AXON), either as a
// same-page localSignal or a cross-page remoteSignal.
//
// A cell whose threshold exceeds MaxSignal can never fire through natural
// accumulation — only set_input (which clamps to MaxSignal) can push it
// over. This is preserved spec behavior, not a bug.
func (p *Page) signalStep() {
	w := uint32(p.Width)
	p.Active.Each(func(i uint32) {
		cell := p.Cells[i]
		if int(cell.GetSignal()) < int(cell.GetThreshold()) {
			return
		}
		ctype := cell.GetCellType()
		x, y := zToXY(i)

		var dirs []Gate
		switch ctype {
		case TypeBody, TypeDendrite:
			dirs = []Gate{cell.GetGate()}
		case TypeAxon:
			gateDir := cell.GetGate()
			for _, d := range cardinalDirections {
				if d != gateDir {
					dirs = append(dirs, d)
				}
			}
		default:
			return
		}

		for _, d := range dirs {
			if inBoundsLocal(x, y, d, w) {
				nx, ny := stepCoord(x, y, d)
				target := xyToZ(nx, ny)
				if p.Cells[target].GetCellType() == TypeEmpty {
					continue
				}
				p.LocalSignal = append(p.LocalSignal, localSignal{
					FromX:      x,
					FromY:      y,
					ToIndex:    target,
					Strength:   cell.GetSignal(),
					Stim:       cell.GetStim(),
					OriginType: ctype,
				})
				continue
			}

			gx := int64(p.OffsetX) + int64(x)
			gy := int64(p.OffsetY) + int64(y)
			switch d {
			case North:
				gy++
			case South:
				gy--
			case East:
				gx++
			case West:
				gx--
			}
			if gx < 0 || gy < 0 {
				continue
			}
			p.RemoteSignal = append(p.RemoteSignal, remoteSignal{
				GlobalX:    uint32(gx),
				GlobalY:    uint32(gy),
				Strength:   cell.GetSignal(),
				Stim:       cell.GetStim(),
				OriginType: ctype,
			})
		}
	})
}

// addSignal is called during the grid's serial drain to deliver a cross-page
// signal event addressed to this page's local (lx, ly). It inserts into
// LocalSignal only if the target cell is not EMPTY. The injected entry's
// origin type is always AXON (remote signals only matter across
// axon/dendrite boundaries) and it carries no real same-page origin, so its
// From equals its To — which also correctly forces the (AXON, AXON)
// direction-of-travel check into the degenerate/reject path on the
// receiving side.
func (p *Page) addSignal(lx, ly uint32, strength uint8, stim bool) {
	idx := xyToZ(lx, ly)
	if p.Cells[idx].GetCellType() == TypeEmpty {
		return
	}
	p.LocalSignal = append(p.LocalSignal, localSignal{
		FromX:      lx,
		FromY:      ly,
		ToIndex:    idx,
		Strength:   strength,
		Stim:       stim,
		OriginType: TypeAxon,
		Remote:     true,
	})
}

// travelDirection returns the single cardinal step from (fx,fy) to (tx,ty),
// and false if the two coordinates are not exactly one cardinal step apart.
func travelDirection(fx, fy, tx, ty uint32) (Gate, bool) {
	dx := int64(tx) - int64(fx)
	dy := int64(ty) - int64(fy)
	switch {
	case dx == 0 && dy == 1:
		return North, true
	case dx == 0 && dy == -1:
		return South, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == -1 && dy == 0:
		return West, true
	default:
		return 0, false
	}
}

// reconcileSignal applies all pending signal deliveries, rebuilds Active
// from the cells that received them, and clears the signal queues.
func (p *Page) reconcileSignal() {
	p.Active.Clear()
	for _, s := range p.LocalSignal {
		target := &p.Cells[s.ToIndex]
		targetType := target.GetCellType()

		switch {
		case s.OriginType == TypeAxon && targetType == TypeAxon:
			tx, ty := zToXY(s.ToIndex)
			dir, ok := travelDirection(s.FromX, s.FromY, tx, ty)
			if ok && dir == target.GetGate() {
				target.AddSignal(int(s.Strength))
			}
		case s.OriginType == TypeAxon && (targetType == TypeDendrite || targetType == TypeBody):
			if s.Stim {
				target.AddSignal(int(s.Strength))
			} else {
				target.SubSignal(int(s.Strength))
			}
		case (s.OriginType == TypeDendrite || s.OriginType == TypeBody) &&
			(targetType == TypeDendrite || targetType == TypeBody || targetType == TypeAxon):
			target.AddSignal(int(s.Strength))
		}

		if !s.Remote {
			p.Cells[xyToZ(s.FromX, s.FromY)].SetSignal(0)
		}
		p.Active.Insert(s.ToIndex)
	}

	p.LocalSignal = p.LocalSignal[:0]
	p.RemoteSignal = p.RemoteSignal[:0]
}

// memory approximates this page's footprint in bytes, following the shape
// of the original's ReportMemory trait (cell storage + active-set size +
// pending-change bookkeeping), not a precise accounting.
func (p *Page) memory() uint64 {
	cells := uint64(len(p.Cells)) * 4
	active := uint64(len(p.Active.words)) * 8
	changes := uint64(len(p.Changes)) * 12
	return cells + active + changes
}
