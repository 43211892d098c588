package optimize

import (
	"github.com/katalvlaran/mixpath/track"
)

// computeStatistics summarizes a reconstructed playlist.
func computeStatistics(total int, playlist []track.Track, transitions []Transition) Statistics {
	s := Statistics{
		TotalInputTracks: total,
		PlaylistLength:   len(playlist),
	}
	for _, tr := range transitions {
		if tr.Harmonic {
			s.HarmonicTransitions++
		} else {
			s.NonHarmonicTransitions++
		}
	}
	if len(playlist) == 0 {
		return s
	}

	s.MinBPM, s.MaxBPM = playlist[0].BPM, playlist[0].BPM
	var sum float64
	for _, t := range playlist {
		sum += t.BPM
		s.MinBPM = min(s.MinBPM, t.BPM)
		s.MaxBPM = max(s.MaxBPM, t.BPM)
	}
	s.AvgBPM = sum / float64(len(playlist))

	return s
}
