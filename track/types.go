package track

import "errors"

// ErrInvalidTrack is wrapped by every validation failure returned from New and Validate.
var ErrInvalidTrack = errors.New("track: invalid track")

// Energy bounds and default.
const (
	MinEnergy     = 1
	MaxEnergy     = 10
	DefaultEnergy = 5
)

// Track is an immutable description of a mixable track.
//
// ID must be unique within one optimization call. Key is stored in canonical
// wheel notation (e.g. "8A"). Duration is in seconds.
type Track struct {
	ID       string  `json:"id" yaml:"id" toml:"id" validate:"required"`
	Key      string  `json:"key" yaml:"key" toml:"key" validate:"required,camelot"`
	BPM      float64 `json:"bpm" yaml:"bpm" toml:"bpm" validate:"gt=0"`
	Energy   int     `json:"energy" yaml:"energy" toml:"energy" validate:"min=1,max=10"`
	Duration float64 `json:"duration" yaml:"duration" toml:"duration" validate:"gte=0"`

	// Passthrough metadata; never read by the optimizer.
	Path      string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Artist    string `json:"artist,omitempty" yaml:"artist,omitempty" toml:"artist,omitempty"`
	CatalogID string `json:"catalog_id,omitempty" yaml:"catalog_id,omitempty" toml:"catalog_id,omitempty"`
}

// Option sets an optional Track attribute in New.
type Option func(*Track)

// WithEnergy sets the energy level (1..10). Default is 5.
func WithEnergy(e int) Option {
	return func(t *Track) { t.Energy = e }
}

// WithDuration sets the duration in seconds. Default is 0.
func WithDuration(seconds float64) Option {
	return func(t *Track) { t.Duration = seconds }
}

// WithPath sets the audio file location.
func WithPath(p string) Option {
	return func(t *Track) { t.Path = p }
}

// WithTitle sets the display title.
func WithTitle(s string) Option {
	return func(t *Track) { t.Title = s }
}

// WithArtist sets the display artist.
func WithArtist(s string) Option {
	return func(t *Track) { t.Artist = s }
}

// WithCatalogID sets the identifier of the track in an external catalog.
func WithCatalogID(id string) Option {
	return func(t *Track) { t.CatalogID = id }
}

// DisplayName returns "Artist - Title" when both are known, otherwise the ID.
func (t Track) DisplayName() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.ID
	}
}
