package optimize

import (
	"errors"
	"time"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/tempo"
	"github.com/katalvlaran/mixpath/track"
)

// Sentinel errors returned by New for inconsistent Options.
var (
	// ErrBadTolerance indicates a negative TempoTolerance.
	ErrBadTolerance = errors.New("optimize: tempo tolerance must be non-negative")

	// ErrBadViolationPct indicates MaxViolationPct outside [0, 1].
	ErrBadViolationPct = errors.New("optimize: max violation pct must be within [0, 1]")

	// ErrBadDuration indicates a NaN or infinite MaxDuration.
	ErrBadDuration = errors.New("optimize: max duration must be finite")

	// ErrBadEnergyWeight indicates a negative or non-finite EnergyWeight.
	ErrBadEnergyWeight = errors.New("optimize: energy weight must be a non-negative number")

	// ErrBadEnergyStep indicates a negative MaxEnergyStep.
	ErrBadEnergyStep = errors.New("optimize: max energy step must be non-negative")

	// ErrBadTimeLimit indicates a non-positive TimeLimit.
	ErrBadTimeLimit = errors.New("optimize: time limit must be positive")

	// ErrBadBaseWeight indicates a BaseWeight below 1.
	ErrBadBaseWeight = errors.New("optimize: base weight must be at least 1")

	// ErrUnknownLevel indicates a HarmonicLevel outside Strict..Relaxed.
	ErrUnknownLevel = errors.New("optimize: unknown harmonic level")
)

// Status tags how a Result was produced.
type Status string

const (
	// StatusOptimal: the search was exhausted; the playlist is optimal.
	StatusOptimal Status = "optimal"

	// StatusFeasible: the budget expired; the playlist is the best tour found.
	StatusFeasible Status = "feasible"

	// StatusEmptyInput: no tracks were given.
	StatusEmptyInput Status = "empty_input"

	// StatusSingleTrack: one track was given and returned as is.
	StatusSingleTrack Status = "single_track"

	// StatusInvalidInput: an unknown start/end id or duplicate track ids; no search ran.
	StatusInvalidInput Status = "invalid_input"

	// StatusInfeasible: the search was exhausted without finding any tour.
	StatusInfeasible Status = "infeasible"

	// StatusUnknown: the budget expired before any tour was found.
	StatusUnknown Status = "unknown"
)

// Solved reports whether s carries a searched, non-empty playlist.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Defaults.
const (
	DefaultMaxViolationPct = 0.10
	DefaultTimeLimit       = 60 * time.Second
	DefaultBaseWeight      = 100
)

// Options configures an Optimizer. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// TempoTolerance is the maximum BPM gap between adjacent tracks.
	TempoTolerance float64

	// AllowHalftime also accepts halftime/doubletime tempo matches.
	AllowHalftime bool

	// HarmonicLevel selects which key transitions are safe.
	HarmonicLevel harmonic.Level

	// MaxViolationPct sizes the budget of non-harmonic transitions, in [0, 1].
	MaxViolationPct float64

	// MaxDuration caps the playlist length in seconds; ≤ 0 disables the cap.
	MaxDuration float64

	// EnforceEnergyFlow requires non-decreasing energy along the playlist.
	EnforceEnergyFlow bool

	// MaxEnergyStep, when positive and energy flow is enforced, also bounds
	// each energy increase.
	MaxEnergyStep int

	// EnergyWeight rewards higher-energy tracks in the objective.
	EnergyWeight float64

	// TimeLimit bounds the search wall time.
	TimeLimit time.Duration

	// BaseWeight is the objective reward per included track.
	BaseWeight int64
}

// DefaultOptions returns tolerance 10, halftime on, Strict level, 10% harmonic
// violations, no duration cap, energy flow enforced, a 60s budget.
func DefaultOptions() Options {
	return Options{
		TempoTolerance:    tempo.DefaultTolerance,
		AllowHalftime:     true,
		HarmonicLevel:     harmonic.Strict,
		MaxViolationPct:   DefaultMaxViolationPct,
		EnforceEnergyFlow: true,
		TimeLimit:         DefaultTimeLimit,
		BaseWeight:        DefaultBaseWeight,
	}
}

// Request carries the per-call constraints of one optimization.
type Request struct {
	// StartID, when set, must be the first track.
	StartID string

	// EndID, when set, must be the last track.
	EndID string

	// MustInclude lists ids to include when any feasible tour allows it.
	MustInclude []string

	// TargetLength, when positive, fixes the playlist length to min(TargetLength, N).
	TargetLength int
}

// Transition describes two adjacent tracks of a playlist.
type Transition struct {
	From, To        track.Track
	Harmonic        bool
	TempoCompatible bool
	TempoDiff       float64
}

// Statistics summarizes a playlist.
type Statistics struct {
	TotalInputTracks       int     `json:"total_input_tracks"`
	PlaylistLength         int     `json:"playlist_length"`
	HarmonicTransitions    int     `json:"harmonic_transitions"`
	NonHarmonicTransitions int     `json:"non_harmonic_transitions"`
	AvgBPM                 float64 `json:"avg_bpm"`
	MinBPM                 float64 `json:"min_bpm"`
	MaxBPM                 float64 `json:"max_bpm"`
}

// CoveragePct is the share of input tracks that made it into the playlist.
func (s Statistics) CoveragePct() float64 {
	if s.TotalInputTracks == 0 {
		return 0
	}

	return float64(s.PlaylistLength) / float64(s.TotalInputTracks) * 100
}

// HarmonicPct is the share of harmonic transitions; 100 when there are none.
func (s Statistics) HarmonicPct() float64 {
	total := s.HarmonicTransitions + s.NonHarmonicTransitions
	if total == 0 {
		return 100
	}

	return float64(s.HarmonicTransitions) / float64(total) * 100
}

// Result is the outcome of one Optimize call.
type Result struct {
	Playlist    []track.Track
	Transitions []Transition
	Statistics  Statistics
	Status      Status
	SolveTime   time.Duration

	// RunID correlates the result with its log lines and trace span.
	RunID string

	// SearchNodes is the number of branch-and-bound nodes expanded.
	SearchNodes int64
}

// IDs returns the playlist track ids in order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Playlist))
	for i, t := range r.Playlist {
		ids[i] = t.ID
	}

	return ids
}

// TotalDuration returns the summed playlist duration in seconds.
func (r Result) TotalDuration() float64 {
	var d float64
	for _, t := range r.Playlist {
		d += t.Duration
	}

	return d
}
