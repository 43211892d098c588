package harmonic

import (
	"fmt"
	"strings"
)

// wheelByTonic maps a tonic spelling to its wheel hour for the major (B) and
// minor (A) rings. Enharmonic spellings share an entry.
var wheelByTonic = map[string][2]int{
	//        major, minor
	"B":  {1, 10},
	"F#": {2, 11},
	"GB": {2, 11},
	"DB": {3, 12},
	"C#": {3, 12},
	"AB": {4, 1},
	"G#": {4, 1},
	"EB": {5, 2},
	"D#": {5, 2},
	"BB": {6, 3},
	"A#": {6, 3},
	"F":  {7, 4},
	"C":  {8, 5},
	"G":  {9, 6},
	"D":  {10, 7},
	"A":  {11, 8},
	"E":  {12, 9},
}

// FromMusicalKey converts a conventional key name into wheel notation.
//
// Accepted forms: "Am", "A Minor", "A Min", "C", "C Major", "C Maj", with
// sharps (#) or flats (b). Strings already in wheel notation are returned in
// canonical form.
func FromMusicalKey(name string) (string, error) {
	if k, err := ParseKey(name); err == nil {
		return k.String(), nil
	}

	s := strings.ToUpper(strings.TrimSpace(name))
	minor := false
	for _, suffix := range []string{" MINOR", " MIN", "M"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			minor = true
			break
		}
	}
	if !minor {
		for _, suffix := range []string{" MAJOR", " MAJ"} {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
				break
			}
		}
	}

	hours, ok := wheelByTonic[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMusicalKey, name)
	}
	if minor {
		return Key{Hour: hours[1], Letter: Minor}.String(), nil
	}

	return Key{Hour: hours[0], Letter: Major}.String(), nil
}
