package optimize

import (
	"github.com/katalvlaran/mixpath/mixgraph"
	"github.com/katalvlaran/mixpath/track"
)

// reconstruct cuts the tour open at the anchor. succ has one entry per track
// plus the anchor at index len(tracks); excluded tracks are self-loops.
// Playlist order follows succ from the anchor until it returns to the anchor.
func reconstruct(tracks []track.Track, g *mixgraph.Graph, succ []int) ([]track.Track, []Transition) {
	anchor := len(tracks)
	if len(succ) != anchor+1 {
		return nil, nil
	}

	var (
		playlist []track.Track
		order    []int
		seen     = make([]bool, anchor)
	)
	for v := succ[anchor]; v != anchor; v = succ[v] {
		// A malformed successor array must not loop forever.
		if v < 0 || v > anchor || seen[v] {
			break
		}
		seen[v] = true
		order = append(order, v)
		playlist = append(playlist, tracks[v])
	}
	if len(order) < 2 {
		return playlist, nil
	}

	transitions := make([]Transition, 0, len(order)-1)
	for i := 1; i < len(order); i++ {
		u, v := order[i-1], order[i]
		tr := Transition{From: tracks[u], To: tracks[v]}
		if e, ok := g.Edge(u, v); ok {
			tr.Harmonic = e.Harmonic
			tr.TempoCompatible = true
			tr.TempoDiff = e.TempoDiff
		}
		transitions = append(transitions, tr)
	}

	return playlist, transitions
}
