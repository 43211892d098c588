package harmonic

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by key and level parsing.
var (
	// ErrInvalidKey indicates a key string that is too short or has a non-numeric hour.
	ErrInvalidKey = errors.New("harmonic: invalid key")

	// ErrInvalidLetter indicates a key letter other than A or B.
	ErrInvalidLetter = errors.New("harmonic: key letter must be A or B")

	// ErrHourOutOfRange indicates a key hour outside 1..12.
	ErrHourOutOfRange = errors.New("harmonic: key hour must be 1-12")

	// ErrUnknownLevel indicates a level name that is not strict, moderate or relaxed.
	ErrUnknownLevel = errors.New("harmonic: unknown level")

	// ErrUnknownMusicalKey indicates a key name with no wheel equivalent.
	ErrUnknownMusicalKey = errors.New("harmonic: unknown musical key")
)

// Hours is the number of positions on the key wheel.
const Hours = 12

// Level selects which key relationships count as safe transitions.
type Level int

const (
	// Strict accepts the same key, ±1 hour on the same letter and the relative major/minor.
	Strict Level = iota

	// Moderate adds ±1 hour on the other letter.
	Moderate

	// Relaxed adds ±3 hours on either letter.
	Relaxed
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case Strict:
		return "strict"
	case Moderate:
		return "moderate"
	case Relaxed:
		return "relaxed"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= Strict && l <= Relaxed
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "moderate":
		return Moderate, nil
	case "relaxed":
		return Relaxed, nil
	default:
		return Strict, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Letter is the mode half of a wheel key.
type Letter byte

const (
	// Minor is the inner ring of the wheel.
	Minor Letter = 'A'

	// Major is the outer ring of the wheel.
	Major Letter = 'B'
)

// Key is a parsed wheel key.
type Key struct {
	Hour   int
	Letter Letter
}

// String renders the key in canonical notation, e.g. "8A".
func (k Key) String() string {
	return fmt.Sprintf("%d%c", k.Hour, k.Letter)
}
