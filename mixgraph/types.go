package mixgraph

import (
	"errors"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/tempo"
)

// Sentinel errors for graph construction.
var (
	// ErrBadTolerance indicates a negative tempo tolerance.
	ErrBadTolerance = errors.New("mixgraph: tempo tolerance must be non-negative")

	// ErrBadEnergyStep indicates a negative maximum energy step.
	ErrBadEnergyStep = errors.New("mixgraph: max energy step must be non-negative")

	// ErrUnknownLevel indicates a harmonic level outside Strict..Relaxed.
	ErrUnknownLevel = errors.New("mixgraph: unknown harmonic level")
)

// Edge is a permitted transition between two tracks.
type Edge struct {
	// From and To are indices into the track slice the graph was built from.
	From, To int

	// Harmonic reports whether the keys are compatible at the configured level.
	Harmonic bool

	// TempoDiff is the minimum BPM gap over the considered interpretations.
	TempoDiff float64
}

// Options controls which transitions become edges.
type Options struct {
	TempoTolerance    float64
	AllowHalftime     bool
	Level             harmonic.Level
	EnforceEnergyFlow bool

	// MaxEnergyStep bounds the energy increase along an edge when energy flow
	// is enforced. Zero means any non-negative increase is allowed.
	MaxEnergyStep int
}

// DefaultOptions returns tolerance 10, halftime on, Strict level, energy flow enforced.
func DefaultOptions() Options {
	return Options{
		TempoTolerance:    tempo.DefaultTolerance,
		AllowHalftime:     true,
		Level:             harmonic.Strict,
		EnforceEnergyFlow: true,
	}
}

// Graph is an immutable adjacency-list view of the compatibility relation.
type Graph struct {
	n   int
	out [][]Edge // out[i]: edges leaving i, ascending by To
	in  [][]int  // in[j]: sources of edges entering j, ascending
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Out returns the edges leaving u. The slice must not be modified.
func (g *Graph) Out(u int) []Edge { return g.out[u] }

// In returns the sources of edges entering v. The slice must not be modified.
func (g *Graph) In(v int) []int { return g.in[v] }

// Size returns the number of edges.
func (g *Graph) Size() int {
	m := 0
	for _, row := range g.out {
		m += len(row)
	}

	return m
}

// Edge returns the edge u→v if it exists.
func (g *Graph) Edge(u, v int) (Edge, bool) {
	row := g.out[u]
	lo, hi := 0, len(row)
	for lo < hi {
		mid := (lo + hi) / 2
		if row[mid].To < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(row) && row[lo].To == v {
		return row[lo], true
	}

	return Edge{}, false
}

// Edges returns all edges ordered by (From, To).
func (g *Graph) Edges() []Edge {
	all := make([]Edge, 0, g.Size())
	for _, row := range g.out {
		all = append(all, row...)
	}

	return all
}
