package track_test

import (
	"testing"

	"github.com/katalvlaran/mixpath/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsAndNormalization(t *testing.T) {
	tr, err := track.New("t1", " 8a", 128)
	require.NoError(t, err)
	assert.Equal(t, "t1", tr.ID)
	assert.Equal(t, "8A", tr.Key)
	assert.Equal(t, 128.0, tr.BPM)
	assert.Equal(t, track.DefaultEnergy, tr.Energy)
	assert.Equal(t, 0.0, tr.Duration)
}

func TestNew_Options(t *testing.T) {
	tr, err := track.New("t1", "12B", 174,
		track.WithEnergy(9),
		track.WithDuration(301.5),
		track.WithPath("/music/a.flac"),
		track.WithTitle("Night Drive"),
		track.WithArtist("Kaito"),
		track.WithCatalogID("rb-42"),
	)
	require.NoError(t, err)
	assert.Equal(t, 9, tr.Energy)
	assert.Equal(t, 301.5, tr.Duration)
	assert.Equal(t, "/music/a.flac", tr.Path)
	assert.Equal(t, "rb-42", tr.CatalogID)
	assert.Equal(t, "Kaito - Night Drive", tr.DisplayName())
}

func TestNew_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		id   string
		key  string
		bpm  float64
		opts []track.Option
		msg  string
	}{
		{"empty id", "", "8A", 120, nil, "id cannot be empty"},
		{"blank id", "   ", "8A", 120, nil, "id cannot be empty"},
		{"bad key", "x", "8C", 120, nil, "invalid key"},
		{"short key", "x", "8", 120, nil, "invalid key"},
		{"zero bpm", "x", "8A", 0, nil, "bpm must be positive"},
		{"negative bpm", "x", "8A", -3, nil, "bpm must be positive"},
		{"energy high", "x", "8A", 120, []track.Option{track.WithEnergy(11)}, "energy must be between 1 and 10"},
		{"energy low", "x", "8A", 120, []track.Option{track.WithEnergy(0)}, "energy must be between 1 and 10"},
		{"negative duration", "x", "8A", 120, []track.Option{track.WithDuration(-1)}, "duration cannot be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := track.New(tc.id, tc.key, tc.bpm, tc.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, track.ErrInvalidTrack)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestValidate_Literal(t *testing.T) {
	ok := track.Track{ID: "a", Key: "1B", BPM: 90, Energy: 1}
	assert.NoError(t, ok.Validate())

	bad := track.Track{ID: "a", Key: "1B", BPM: 90}
	assert.ErrorIs(t, bad.Validate(), track.ErrInvalidTrack, "zero energy is out of range")
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { track.MustNew("", "8A", 120) })
	assert.NotPanics(t, func() { track.MustNew("a", "8A", 120) })
}

func TestDisplayName_Fallbacks(t *testing.T) {
	assert.Equal(t, "id-1", track.MustNew("id-1", "8A", 120).DisplayName())
	assert.Equal(t, "Solo", track.MustNew("id-1", "8A", 120, track.WithTitle("Solo")).DisplayName())
}
