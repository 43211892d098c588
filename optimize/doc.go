// Package optimize selects and orders tracks into the best playlist allowed by
// pairwise mixing rules.
//
// # Model
//
// The track set becomes a directed compatibility graph (package mixgraph).
// A playlist is a simple path in that graph. To search over "best simple path
// through any subset of vertices" the engine adds a virtual anchor vertex with
// free edges to and from every track and looks for a single closed tour
//
//	anchor → t₁ → t₂ → … → tₖ → anchor
//
// where every excluded track keeps an implicit self-loop. Cutting the tour at
// the anchor yields the playlist. Constraints are expressed on the tour:
//
//   - forced start: the anchor's successor is fixed;
//   - forced end: the fixed track's successor is the anchor;
//   - exact length: the tour visits min(L, N) tracks;
//   - harmonic budget: at most limit non-harmonic edges between tracks, where
//     limit = 0 if MaxViolationPct == 0, else max(1, ⌊N·MaxViolationPct⌋);
//   - duration budget: total duration ≤ MaxDuration, compared on seconds
//     scaled by 100 and truncated.
//
// # Objective
//
// Each included track scores BaseWeight + ⌊EnergyWeight·energy⌋. Requested
// must-include tracks add a bonus larger than any playlist of ordinary tracks
// can score, so they are included whenever some feasible tour contains them.
// Must-include is best effort: an id no feasible tour can reach is dropped
// without error.
//
// # Search
//
// A greedy pass seeds an incumbent, then a depth-first branch-and-bound
// explores tours from the anchor. The upper bound at a node adds, over
// unvisited tracks still reachable from the current end of the path, the best
// weights that fit the remaining slots and (fractionally) the remaining
// duration. The bound is admissible, so an exhausted search is optimal.
//
// The search runs until it is exhausted, Options.TimeLimit expires, or ctx is
// done. Expiry is never an error: the result carries StatusFeasible with the
// best tour found, or StatusUnknown when none was found.
//
// Several tours may share the optimal score; any one of them may be returned.
//
// # Concurrency
//
// An Optimizer holds only immutable configuration. Optimize may be called
// concurrently from multiple goroutines.
package optimize
