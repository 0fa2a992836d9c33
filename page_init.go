package cajal

import "math/rand"

// rotateSecondary is the fixed rotation table used to derive a body's
// secondary axon direction from its primary one. Taken verbatim per the
// spec's Open Questions note — not assumed to be a generic +90deg rotation,
// just this literal table.
func rotateSecondary(g Gate) Gate {
	switch g {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		glogFatalInvalidGate(g)
		return g
	}
}

// stepCoord returns the page-local coordinate one step away from (x, y) in
// direction d, per the coordinate system NORTH=y+1, SOUTH=y-1, EAST=x+1,
// WEST=x-1.
func stepCoord(x, y uint32, d Gate) (nx, ny uint32) {
	switch d {
	case North:
		return x, y + 1
	case South:
		return x, y - 1
	case East:
		return x + 1, y
	case West:
		return x - 1, y
	default:
		glogFatalInvalidGate(d)
		return x, y
	}
}

// inBoundsLocal reports whether moving from (x, y) in direction d stays
// within a page of the given width.
func inBoundsLocal(x, y uint32, d Gate, width uint32) bool {
	switch d {
	case North:
		return y < width-1
	case South:
		return y > 0
	case East:
		return x < width-1
	case West:
		return x > 0
	default:
		glogFatalInvalidGate(d)
		return false
	}
}

// seed deterministically populates a freshly-allocated page: every cell
// first gets a random chromosome/gate/threshold, then a density-controlled
// number of bodies are placed with their initial axon/dendrite growth.
func (p *Page) seed(rng *rand.Rand, density float64) {
	for i := range p.Cells {
		p.Cells[i].SetChromosome(RandomChromosome(rng))
		p.Cells[i].SetGate(RandomGate(rng))
		p.Cells[i].SetThreshold(int(RandomThreshold(rng, 4)))
	}

	bodyCount := int(float64(len(p.Cells))*density + 0.5)
	w := uint32(p.Width)

	for n := 0; n < bodyCount; n++ {
		x := uint32(1 + rng.Intn(int(w)-2))
		y := uint32(1 + rng.Intn(int(w)-2))
		idx := xyToZ(x, y)

		stim := rng.Intn(2) == 1
		p.Cells[idx].SetCellType(TypeBody)
		p.Cells[idx].SetStim(stim)

		axonDir := p.Cells[idx].GetGate()
		secondaryDir := rotateSecondary(axonDir)
		dendrite1 := axonDir.Opposite()
		dendrite2 := secondaryDir.Opposite()

		p.growLocalSeed(x, y, axonDir, TypeAxon, stim)
		p.growLocalSeed(x, y, secondaryDir, TypeAxon, stim)
		p.growLocalSeed(x, y, dendrite1, TypeDendrite, false)
		p.growLocalSeed(x, y, dendrite2, TypeDendrite, false)
	}
}

// growLocalSeed attempts to grow a single new cell from (x, y) toward
// direction d during page seeding. Bodies are placed at least one cell from
// every page edge, so the move itself is always in-bounds; on a grid-edge
// page that still lets a body one cell off the page border reach the grid's
// own outer ring, which seeding must respect exactly like growStep does.
func (p *Page) growLocalSeed(x, y uint32, d Gate, cellType CellType, stim bool) {
	nx, ny := stepCoord(x, y, d)
	if p.onOuterRing(nx, ny) {
		return
	}
	target := xyToZ(nx, ny)
	if p.Cells[target].GetCellType() != TypeEmpty {
		return
	}
	p.Cells[target].SetCellType(cellType)
	p.Cells[target].SetGate(d.Opposite())
	p.Cells[target].SetStim(stim)
	p.Active.Insert(target)
}

// derivePageSeed mixes the grid-level seed with a page's offset so that
// per-page RNGs are independent yet overall results stay globally
// deterministic. Mirrors step_par.go's per-segment seed derivation
// (stepSeed + int64(i)) generalized to a 2-D page offset.
func derivePageSeed(seed []int64, offsetX, offsetY uint32) int64 {
	h := int64(1469598103934665603) // FNV-ish offset basis, kept in 63 bits
	mix := func(v int64) {
		h ^= v
		h *= 1099511628211
	}
	mix(int64(offsetX))
	mix(int64(offsetY))
	for _, s := range seed {
		mix(s)
	}
	if h < 0 {
		h = -h
	}
	return h
}
