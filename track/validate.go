package track

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/mixpath/harmonic"
)

// trackValidate is shared by all Track validations; validator caches struct metadata.
var trackValidate *validator.Validate

func init() {
	trackValidate = validator.New()
	if err := trackValidate.RegisterValidation("camelot", validateCamelot); err != nil {
		panic(fmt.Sprintf("track: registering camelot validation: %v", err))
	}
}

// validateCamelot accepts any string harmonic.ParseKey accepts.
func validateCamelot(fl validator.FieldLevel) bool {
	_, err := harmonic.ParseKey(fl.Field().String())

	return err == nil
}

// New builds a validated Track. The key is normalized to canonical wheel
// notation; energy defaults to DefaultEnergy.
func New(id, key string, bpm float64, opts ...Option) (Track, error) {
	t := Track{
		ID:     strings.TrimSpace(id),
		Key:    key,
		BPM:    bpm,
		Energy: DefaultEnergy,
	}
	for _, opt := range opts {
		opt(&t)
	}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	t.Key, _ = harmonic.Normalize(t.Key)

	return t, nil
}

// MustNew is New for fixtures and examples; it panics on invalid input.
func MustNew(id, key string, bpm float64, opts ...Option) Track {
	t, err := New(id, key, bpm, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Validate checks every field constraint and reports the first offending
// field. The error wraps ErrInvalidTrack.
func (t Track) Validate() error {
	err := trackValidate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %q: %s", ErrInvalidTrack, t.ID, describe(fe))
	}

	return fmt.Errorf("%w: %v", ErrInvalidTrack, err)
}

// describe renders a field error in the vocabulary of the domain.
func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "ID":
		return "id cannot be empty"
	case "Key":
		return fmt.Sprintf("invalid key %q", fe.Value())
	case "BPM":
		return fmt.Sprintf("bpm must be positive, got %v", fe.Value())
	case "Energy":
		return fmt.Sprintf("energy must be between %d and %d, got %v", MinEnergy, MaxEnergy, fe.Value())
	case "Duration":
		return fmt.Sprintf("duration cannot be negative, got %v", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
