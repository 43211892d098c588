// Package harmonic decides whether two tracks may be mixed safely by key.
//
// Keys use wheel notation: an hour 1..12 followed by a letter, A for minor
// and B for major ("8A", "12B"). Two keys are compared by their circular hour
// distance on the wheel and by whether they share a letter.
//
// Compatibility rules, evaluated in order:
//
//	distance 0                 → compatible at every level
//	distance 1, same letter    → compatible at every level
//	distance 1, other letter   → Moderate, Relaxed
//	distance 3 (any letter)    → Relaxed
//	otherwise                  → incompatible
//
// Levels form a chain: Strict ⊂ Moderate ⊂ Relaxed. At Strict every key has
// exactly four partners (itself, ±1 hour on the same letter, and the same
// hour on the other letter).
//
// Predicates never fail: a key that does not parse is simply incompatible
// with everything. Use ParseKey when the caller needs the error.
//
//	ok := harmonic.IsCompatible("8A", "9B", harmonic.Moderate) // true
//	keys, _ := harmonic.CompatibleKeys("8A", harmonic.Strict)  // [7A 8A 8B 9A]
package harmonic
