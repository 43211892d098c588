// Package tempo decides whether two tempos can be beat-matched.
//
// Two tempos are compatible when they differ by at most a tolerance, either
// directly or, when halftime mixing is allowed, after halving the faster
// track or doubling the slower one. Both functions order their arguments by
// magnitude first, so Compatible(a, b) == Compatible(b, a) and
// Difference(a, b) == Difference(b, a).
//
//	tempo.Compatible(128, 130, 10, false) // true: 2 BPM apart
//	tempo.Compatible(128, 64, 10, true)   // true: 64 doubled is 128
//	tempo.Compatible(70, 128, 10, true)   // true: 128 halved is 64
//	tempo.Difference(140, 68, true)       // 2: 140 halved is 70
package tempo

import "math"

// DefaultTolerance is the BPM tolerance used when none is configured.
const DefaultTolerance = 10.0

// ordered returns (faster, slower).
func ordered(a, b float64) (float64, float64) {
	if a >= b {
		return a, b
	}

	return b, a
}

// Compatible reports whether tempos a and b are within tolerance of each
// other. With allowHalftime, half the faster tempo or double the slower one
// may match the other tempo instead.
func Compatible(a, b, tolerance float64, allowHalftime bool) bool {
	hi, lo := ordered(a, b)
	if hi-lo <= tolerance {
		return true
	}
	if !allowHalftime {
		return false
	}

	return math.Abs(lo-hi/2) <= tolerance || math.Abs(hi-2*lo) <= tolerance
}

// Difference returns the smallest BPM gap between a and b over the
// interpretations Compatible considers: the direct gap, and with
// allowHalftime also the halftime and doubletime gaps.
func Difference(a, b float64, allowHalftime bool) float64 {
	hi, lo := ordered(a, b)
	direct := hi - lo
	if !allowHalftime {
		return direct
	}

	return math.Min(direct, math.Min(math.Abs(lo-hi/2), math.Abs(hi-2*lo)))
}
