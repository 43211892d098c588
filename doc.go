// Package mixpath orders tracks into playlists that mix cleanly, picking the
// longest sequence whose neighbours agree on tempo, key and energy.
//
// 🚀 What is mixpath?
//
//	A small, dependency-light toolkit that brings together:
//		• Tempo predicates: direct and halftime/doubletime BPM matches
//		• Key-wheel predicates: Camelot notation at three strictness levels
//		• Compatibility graphs: every mixable ordered pair, built in parallel
//		• Playlist search: exact branch-and-bound over anchor tours
//		• Statistics: coverage, harmonic share and BPM range of the result
//
// ✨ Why an anchor tour?
//
//   - A virtual anchor with free edges to and from every track turns "best
//     simple path through a subset" into "best single circuit through the
//     anchor"; cutting the circuit at the anchor yields the playlist.
//   - Excluded tracks are self-loops, so every feasible tour is one playlist.
//
// Packages, leaf first:
//
//	harmonic/   key parsing, wheel distance, compatibility, key names
//	tempo/      BPM compatibility and minimum tempo difference
//	track/      validated Track entity with functional options
//	mixgraph/   directed compatibility graph + reachability scans
//	optimize/   constrained playlist search, reconstruction, statistics
//
// Quick example:
//
//	intro(8A,124,e3) ─► build(9A,126,e5) ─► peak(9B,128,e7)
//
//	every hop is harmonic at the strict level, within 10 BPM, and never
//	drops energy, so the optimizer returns all three in that order.
//
//	go install github.com/katalvlaran/mixpath/cmd/mixpath@latest
package mixpath
