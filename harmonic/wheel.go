package harmonic

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseKey parses wheel notation into a Key.
// Surrounding whitespace is ignored and the letter is case-insensitive.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	letter := Letter(s[len(s)-1])
	if letter != Minor && letter != Major {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}

	hour, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Key{}, fmt.Errorf("%w: hour %q", ErrInvalidKey, s[:len(s)-1])
	}
	if hour < 1 || hour > Hours {
		return Key{}, fmt.Errorf("%w: got %d", ErrHourOutOfRange, hour)
	}

	return Key{Hour: hour, Letter: letter}, nil
}

// Normalize returns the canonical form of a wheel key ("  8a" → "8A").
func Normalize(s string) (string, error) {
	k, err := ParseKey(s)
	if err != nil {
		return "", err
	}

	return k.String(), nil
}

// Distance returns the circular distance between two wheel hours (0..6).
func Distance(h1, h2 int) int {
	d := h1 - h2
	if d < 0 {
		d = -d
	}
	d %= Hours
	if Hours-d < d {
		return Hours - d
	}

	return d
}

// CompatibleWith reports whether k may be followed by other at the given level.
func (k Key) CompatibleWith(other Key, level Level) bool {
	d := Distance(k.Hour, other.Hour)
	sameLetter := k.Letter == other.Letter

	switch {
	case d == 0:
		return true
	case d == 1 && sameLetter:
		return true
	case level == Strict:
		return false
	case d == 1:
		return true
	default:
		return level == Relaxed && d == 3
	}
}

// IsCompatible reports whether keys a and b are harmonically compatible.
// A key that fails to parse is incompatible with everything.
func IsCompatible(a, b string, level Level) bool {
	ka, err := ParseKey(a)
	if err != nil {
		return false
	}
	kb, err := ParseKey(b)
	if err != nil {
		return false
	}

	return ka.CompatibleWith(kb, level)
}

// AllKeys returns the 24 wheel keys ordered by hour, minor before major.
func AllKeys() []Key {
	keys := make([]Key, 0, 2*Hours)
	for h := 1; h <= Hours; h++ {
		keys = append(keys, Key{Hour: h, Letter: Minor}, Key{Hour: h, Letter: Major})
	}

	return keys
}

// CompatibleKeys lists every wheel key that key may transition to at level,
// in AllKeys order. The key itself is always included.
func CompatibleKeys(key string, level Level) ([]string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}

	var out []string
	for _, cand := range AllKeys() {
		if k.CompatibleWith(cand, level) {
			out = append(out, cand.String())
		}
	}

	return out, nil
}
