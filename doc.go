// Package cajal simulates a 2-D cellular automaton modeling a Cajal-style
// neural substrate: a dense grid of cells that are EMPTY or part of a neuron
// (BODY, AXON, or DENDRITE). A seeded population of bodies grows axons and
// dendrites outward across the grid according to per-cell "chromosome"
// growth masks, and once the network has settled, signals can be injected
// and propagated along it with threshold accumulation and inhibitory
// ("stim"=false) effects.
//
// The grid is tiled into fixed-size square pages so that growth and signal
// steps can run page-parallel; cross-page effects are carried as value-typed
// remote events and applied during a serial drain between parallel phases.
package cajal
