package cajal

import (
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// Grid owns an S*S arrangement of pages. It dispatches the grow/signal
// kernels to pages in parallel, drains each page's remote queue on a single
// goroutine, routes every remote event to its owning page, and finally
// triggers a parallel reconciliation pass. Exactly one of these phases is
// ever in flight at a time.
type Grid struct {
	pages        []*Page
	pagesPerSide uint32
	dimension    uint32

	// drainMu guards nothing page-internal (pages are disjoint during a
	// kernel phase); it exists purely so Grid's own bookkeeping during the
	// serial drain can be called from a single place without ambiguity,
	// mirroring step_par.go's rowLocks discipline of guarding only the
	// shared resource that actually needs it.
	drainMu sync.Mutex
}

// newGrid allocates an S*S grid of empty pages at their proper offsets.
func newGrid(size uint32) *Grid {
	dimension := size * pageWidth
	pages := make([]*Page, size*size)
	for py := uint32(0); py < size; py++ {
		for px := uint32(0); px < size; px++ {
			pages[px+py*size] = newPage(px*pageWidth, py*pageWidth, dimension)
		}
	}
	return &Grid{
		pages:        pages,
		pagesPerSide: size,
		dimension:    dimension,
	}
}

// inStrictInterior reports whether a global coordinate is strictly inside
// the grid's outer ring (excludes both x/y == 0 and x/y == dimension-1).
func (g *Grid) inStrictInterior(gx, gy uint32) bool {
	return gx > 0 && gx < g.dimension-1 && gy > 0 && gy < g.dimension-1
}

// seed seeds every page deterministically from (seed, page offset).
func (g *Grid) seed(seed []int64, density float64) {
	glog.V(1).Infof("cajal: seeding grid with %d pages per side (%d pages), dimension=%d",
		g.pagesPerSide, len(g.pages), g.dimension)
	for _, p := range g.pages {
		p.Seed(seed, density)
	}
}

// pageIndex returns the owning page's slice index and local coordinates for
// a global (gx, gy).
func (g *Grid) pageIndex(gx, gy uint32) (pageIdx int, lx, ly uint32) {
	px := gx / pageWidth
	py := gy / pageWidth
	return int(px + py*g.pagesPerSide), gx % pageWidth, gy % pageWidth
}

// forEachPage runs fn once per page, in parallel, and waits for all to
// finish before returning. This is the page-parallel fork-join primitive
// spec §5 calls for ("data-parallel fork-join across pages using a
// work-stealing thread pool"); golang.org/x/sync/errgroup schedules the
// goroutines and its Wait() is the barrier.
func (g *Grid) forEachPage(fn func(p *Page)) {
	var eg errgroup.Group
	for _, p := range g.pages {
		p := p
		eg.Go(func() error {
			fn(p)
			return nil
		})
	}
	_ = eg.Wait()
}

// GrowStep runs one page-parallel growth kernel pass, drains cross-page
// growth events, reconciles, and returns the number of newly activated
// cells for this step (the associative sum of each page's Changes size
// after the kernel and the cross-page drain, before reconciliation clears
// it).
func (g *Grid) GrowStep() int {
	g.forEachPage(func(p *Page) {
		p.growStep()
	})

	g.drainGrowth()

	total := 0
	for _, p := range g.pages {
		total += len(p.Changes)
	}

	g.forEachPage(func(p *Page) {
		p.reconcileGrowth()
	})

	glog.V(2).Infof("cajal: grow_step activated %d cells", total)
	return total
}

// Grow repeats GrowStep until it returns 0.
func (g *Grid) Grow() {
	for {
		if g.GrowStep() == 0 {
			return
		}
	}
}

// drainGrowth serially routes every page's pending remote-change events to
// their owning page. The remote-change queues themselves are cleared later,
// by each page's reconcileGrowth. Cross-page
// writes to the grid's outer ring (x/y == 0 or x/y == dimension-1) are
// dropped by inStrictInterior.
func (g *Grid) drainGrowth() {
	g.drainMu.Lock()
	defer g.drainMu.Unlock()

	for _, p := range g.pages {
		for _, c := range p.RemoteChanges {
			if !g.inStrictInterior(c.GlobalX, c.GlobalY) {
				continue
			}
			idx, lx, ly := g.pageIndex(c.GlobalX, c.GlobalY)
			g.pages[idx].addChange(lx, ly, c.CellType, c.TravelDir, c.Stim)
		}
	}
}

// SignalStep runs one page-parallel signal kernel pass, drains cross-page
// signal events, reconciles, and returns the new active-cell count.
func (g *Grid) SignalStep() int {
	g.forEachPage(func(p *Page) {
		p.signalStep()
	})

	g.drainSignal()

	g.forEachPage(func(p *Page) {
		p.reconcileSignal()
	})

	total := 0
	for _, p := range g.pages {
		total += p.Active.Len()
	}
	glog.V(2).Infof("cajal: signal_step active count now %d", total)
	return total
}

// Signal repeats SignalStep until it returns 0.
func (g *Grid) Signal() {
	for {
		if g.SignalStep() == 0 {
			return
		}
	}
}

func (g *Grid) drainSignal() {
	g.drainMu.Lock()
	defer g.drainMu.Unlock()

	for _, p := range g.pages {
		for _, s := range p.RemoteSignal {
			if !g.inStrictInterior(s.GlobalX, s.GlobalY) {
				continue
			}
			idx, lx, ly := g.pageIndex(s.GlobalX, s.GlobalY)
			g.pages[idx].addSignal(lx, ly, s.Strength, s.Stim)
		}
		p.RemoteSignal = p.RemoteSignal[:0]
	}
}

// SetInput sets the signal level at global (gx, gy), clamped to MaxSignal.
func (g *Grid) SetInput(gx, gy uint32, v int) {
	idx, lx, ly := g.pageIndex(gx, gy)
	g.pages[idx].SetInput(lx, ly, v)
}

// GetCell returns the cell at global (gx, gy).
func (g *Grid) GetCell(gx, gy uint32) Cell {
	idx, lx, ly := g.pageIndex(gx, gy)
	return g.pages[idx].GetCell(lx, ly)
}

// memory sums each page's approximate memory footprint in parallel, the
// same parallel-map-then-reduce shape GrowStep/SignalStep use for their own
// page-parallel work.
func (g *Grid) memory() uint64 {
	sums := make([]uint64, len(g.pages))
	var eg errgroup.Group
	for i, p := range g.pages {
		i, p := i, p
		eg.Go(func() error {
			sums[i] = p.memory()
			return nil
		})
	}
	_ = eg.Wait()

	var total uint64
	for _, s := range sums {
		total += s
	}
	return total
}
