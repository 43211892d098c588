// Package mixgraph builds the directed compatibility graph over a track list.
//
// Vertices are track indices 0..N-1. An edge i→j exists when track j may be
// played directly after track i:
//
//   - the tempos are compatible (see package tempo), and
//   - when energy flow is enforced, energy[j] ≥ energy[i], and additionally
//     energy[j]−energy[i] ≤ MaxEnergyStep when a positive step is configured.
//
// Harmonic compatibility does not gate an edge. It is recorded on the edge
// (Edge.Harmonic) so that the optimizer can count violations against a budget.
//
// Rows are built concurrently; each goroutine owns one adjacency row, so the
// build needs no locks. A built Graph is read-only and safe to share.
//
// Complexity:
//   - Build: O(N²) predicate evaluations.
//   - Memory: O(N + E).
package mixgraph
