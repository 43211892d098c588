package mixgraph

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/tempo"
	"github.com/katalvlaran/mixpath/track"
)

// Build evaluates the tempo, energy and key predicates for every ordered pair
// of distinct tracks and returns the resulting graph.
//
// Keys are parsed once per track; a key that does not parse makes every edge
// touching that track non-harmonic.
func Build(ctx context.Context, tracks []track.Track, opts Options) (*Graph, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := len(tracks)
	keys := make([]harmonic.Key, n)
	keyOK := make([]bool, n)
	for i := range tracks {
		k, err := harmonic.ParseKey(tracks[i].Key)
		keys[i], keyOK[i] = k, err == nil
	}

	g := &Graph{
		n:   n,
		out: make([][]Edge, n),
		in:  make([][]int, n),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.out[i] = buildRow(i, tracks, keys, keyOK, opts)

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("mixgraph: build interrupted: %w", err)
	}

	for _, row := range g.out {
		for _, e := range row {
			g.in[e.To] = append(g.in[e.To], e.From)
		}
	}

	return g, nil
}

// buildRow computes the outgoing edges of track i in ascending target order.
func buildRow(i int, tracks []track.Track, keys []harmonic.Key, keyOK []bool, opts Options) []Edge {
	var row []Edge
	a := tracks[i]
	for j := range tracks {
		if j == i {
			continue
		}
		b := tracks[j]
		if !tempo.Compatible(a.BPM, b.BPM, opts.TempoTolerance, opts.AllowHalftime) {
			continue
		}
		if opts.EnforceEnergyFlow && !energyStepOK(a.Energy, b.Energy, opts.MaxEnergyStep) {
			continue
		}
		row = append(row, Edge{
			From:      i,
			To:        j,
			Harmonic:  keyOK[i] && keyOK[j] && keys[i].CompatibleWith(keys[j], opts.Level),
			TempoDiff: tempo.Difference(a.BPM, b.BPM, opts.AllowHalftime),
		})
	}

	return row
}

// energyStepOK reports whether moving from energy a to b respects the flow rule.
func energyStepOK(a, b, maxStep int) bool {
	if b < a {
		return false
	}

	return maxStep <= 0 || b-a <= maxStep
}

func (o Options) validate() error {
	if o.TempoTolerance < 0 {
		return ErrBadTolerance
	}
	if o.MaxEnergyStep < 0 {
		return ErrBadEnergyStep
	}
	if !o.Level.Valid() {
		return ErrUnknownLevel
	}

	return nil
}
