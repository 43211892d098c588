// Package track defines the Track entity consumed by the playlist optimizer.
//
// A Track carries the mixing attributes the optimizer reasons about (key,
// tempo, energy, duration) plus passthrough metadata for collaborators that
// load or export playlists. Tracks are validated once, at construction, and
// are plain values afterwards: copying a Track never shares mutable state.
//
//	t, err := track.New("intro", "8A", 124,
//	    track.WithEnergy(3),
//	    track.WithDuration(312),
//	    track.WithTitle("Intro"),
//	)
//
// Validation failures wrap ErrInvalidTrack so callers can test with errors.Is.
package track
