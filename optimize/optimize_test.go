package optimize_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/optimize"
	"github.com/katalvlaran/mixpath/track"
)

// ---------------------------
// Local helpers.
// ---------------------------

func mk(id, key string, bpm float64, opts ...track.Option) track.Track {
	return track.MustNew(id, key, bpm, opts...)
}

func energy(e int) track.Option { return track.WithEnergy(e) }

func seconds(d float64) track.Option { return track.WithDuration(d) }

// same returns n interchangeable tracks t0..t{n-1}.
func same(n int) []track.Track {
	out := make([]track.Track, n)
	for i := range out {
		out[i] = mk(fmt.Sprintf("t%d", i), "8A", 128)
	}

	return out
}

func run(t *testing.T, opts optimize.Options, tracks []track.Track, req optimize.Request) optimize.Result {
	t.Helper()
	o, err := optimize.New(opts)
	require.NoError(t, err)

	return o.Optimize(context.Background(), tracks, req)
}

// ---------------------------
// Configuration.
// ---------------------------

func TestNew_RejectsBadOptions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*optimize.Options)
		want   error
	}{
		{"negative tolerance", func(o *optimize.Options) { o.TempoTolerance = -1 }, optimize.ErrBadTolerance},
		{"pct above one", func(o *optimize.Options) { o.MaxViolationPct = 1.5 }, optimize.ErrBadViolationPct},
		{"negative pct", func(o *optimize.Options) { o.MaxViolationPct = -0.1 }, optimize.ErrBadViolationPct},
		{"negative energy weight", func(o *optimize.Options) { o.EnergyWeight = -2 }, optimize.ErrBadEnergyWeight},
		{"negative energy step", func(o *optimize.Options) { o.MaxEnergyStep = -1 }, optimize.ErrBadEnergyStep},
		{"zero time limit", func(o *optimize.Options) { o.TimeLimit = 0 }, optimize.ErrBadTimeLimit},
		{"zero base weight", func(o *optimize.Options) { o.BaseWeight = 0 }, optimize.ErrBadBaseWeight},
		{"unknown level", func(o *optimize.Options) { o.HarmonicLevel = harmonic.Level(9) }, optimize.ErrUnknownLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := optimize.DefaultOptions()
			tc.mutate(&opts)
			_, err := optimize.New(opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := optimize.DefaultOptions()
	assert.Equal(t, 10.0, opts.TempoTolerance)
	assert.True(t, opts.AllowHalftime)
	assert.Equal(t, harmonic.Strict, opts.HarmonicLevel)
	assert.Equal(t, 0.10, opts.MaxViolationPct)
	assert.True(t, opts.EnforceEnergyFlow)
	assert.Equal(t, 60*time.Second, opts.TimeLimit)

	o, err := optimize.New(opts)
	require.NoError(t, err)
	assert.Equal(t, opts, o.Options())
}

func TestViolationLimit(t *testing.T) {
	assert.Equal(t, 0, optimize.ViolationLimit(10, 0))
	assert.Equal(t, 1, optimize.ViolationLimit(3, 0.1), "floor below one is raised to one")
	assert.Equal(t, 1, optimize.ViolationLimit(10, 0.1))
	assert.Equal(t, 2, optimize.ViolationLimit(25, 0.1))
	assert.Equal(t, 5, optimize.ViolationLimit(5, 1))
}

// ---------------------------
// Trivial cases.
// ---------------------------

func TestOptimize_EmptyInput(t *testing.T) {
	res := run(t, optimize.DefaultOptions(), nil, optimize.Request{})
	assert.Equal(t, optimize.StatusEmptyInput, res.Status)
	assert.Empty(t, res.Playlist)
	assert.Empty(t, res.Transitions)
	assert.Zero(t, res.Statistics.TotalInputTracks)
	assert.Zero(t, res.Statistics.CoveragePct())
	assert.NotEmpty(t, res.RunID)
}

func TestOptimize_SingleTrack(t *testing.T) {
	only := mk("solo", "5B", 122, seconds(300))
	res := run(t, optimize.DefaultOptions(), []track.Track{only}, optimize.Request{})

	assert.Equal(t, optimize.StatusSingleTrack, res.Status)
	require.Equal(t, []track.Track{only}, res.Playlist)
	assert.Empty(t, res.Transitions)
	st := res.Statistics
	assert.Equal(t, 1, st.TotalInputTracks)
	assert.Equal(t, 1, st.PlaylistLength)
	assert.Equal(t, 122.0, st.AvgBPM)
	assert.Equal(t, 122.0, st.MinBPM)
	assert.Equal(t, 122.0, st.MaxBPM)
	assert.Equal(t, 100.0, st.HarmonicPct())
	assert.Equal(t, 100.0, st.CoveragePct())
}

func TestOptimize_InvalidInput(t *testing.T) {
	tracks := same(3)
	cases := []struct {
		name   string
		tracks []track.Track
		req    optimize.Request
	}{
		{"unknown start", tracks, optimize.Request{StartID: "nope"}},
		{"unknown end", tracks, optimize.Request{EndID: "nope"}},
		{"unknown start on single track", tracks[:1], optimize.Request{StartID: "nope"}},
		{"duplicate ids", append(same(2), mk("t0", "9A", 120)), optimize.Request{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, optimize.DefaultOptions(), tc.tracks, tc.req)
			assert.Equal(t, optimize.StatusInvalidInput, res.Status)
			assert.Empty(t, res.Playlist)
			assert.Zero(t, res.SearchNodes, "no search attempted")
		})
	}
}

// ---------------------------
// Core search.
// ---------------------------

func TestOptimize_AllCompatible(t *testing.T) {
	tracks := same(6)
	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 6)
	assert.ElementsMatch(t, tracks, res.Playlist)
	assert.Len(t, res.Transitions, 5)
	assert.Equal(t, 5, res.Statistics.HarmonicTransitions)
	assert.Equal(t, 100.0, res.Statistics.CoveragePct())
	assert.Positive(t, res.SearchNodes)
}

func TestOptimize_TransitionsMatchPlaylist(t *testing.T) {
	tracks := []track.Track{
		mk("a", "8A", 120, energy(3)),
		mk("b", "9A", 124, energy(4)),
		mk("c", "9B", 126, energy(5)),
		mk("d", "10B", 250, energy(6)),
	}
	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{})
	require.True(t, res.Status.Solved())

	require.Len(t, res.Transitions, len(res.Playlist)-1)
	for i, tr := range res.Transitions {
		assert.Equal(t, res.Playlist[i], tr.From)
		assert.Equal(t, res.Playlist[i+1], tr.To)
		assert.True(t, tr.TempoCompatible)
		assert.Equal(t, harmonic.IsCompatible(tr.From.Key, tr.To.Key, harmonic.Strict), tr.Harmonic)
		assert.LessOrEqual(t, tr.TempoDiff, 10.0)
		assert.GreaterOrEqual(t, tr.To.Energy, tr.From.Energy)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, res.IDs(), "126→250 mixes as doubletime")
}

func TestOptimize_ForcedStartEnd(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.EnforceEnergyFlow = false
	tracks := same(4)

	res := run(t, opts, tracks, optimize.Request{StartID: "t2", EndID: "t0"})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	require.Len(t, res.Playlist, 4)
	assert.Equal(t, "t2", res.Playlist[0].ID)
	assert.Equal(t, "t0", res.Playlist[3].ID)
}

func TestOptimize_ForcedStartEndPinsOrder(t *testing.T) {
	tracks := []track.Track{
		mk("peak", "8A", 128, energy(8)),
		mk("warm", "8A", 126, energy(3)),
		mk("build", "8A", 127, energy(5)),
	}
	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{StartID: " warm ", EndID: "peak"})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"warm", "build", "peak"}, res.IDs())
}

func TestOptimize_ForcedEndUnreachable(t *testing.T) {
	tracks := []track.Track{
		mk("hot", "8A", 128, energy(7)),
		mk("cold", "8A", 128, energy(2)),
	}
	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{StartID: "hot", EndID: "cold"})

	assert.Equal(t, optimize.StatusInfeasible, res.Status)
	assert.Empty(t, res.Playlist)
	assert.Empty(t, res.Transitions)
}

func TestOptimize_StartEqualsEnd(t *testing.T) {
	res := run(t, optimize.DefaultOptions(), same(3), optimize.Request{StartID: "t1", EndID: "t1"})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"t1"}, res.IDs())
}

func TestOptimize_TargetLength(t *testing.T) {
	tracks := same(5)

	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{TargetLength: 3})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 3)

	res = run(t, optimize.DefaultOptions(), tracks, optimize.Request{TargetLength: 50})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 5, "target is capped at N")

	res = run(t, optimize.DefaultOptions(), tracks, optimize.Request{TargetLength: 0})
	assert.Len(t, res.Playlist, 5, "zero means unconstrained")
}

func TestOptimize_TargetLengthUnreachable(t *testing.T) {
	tracks := []track.Track{
		mk("a", "8A", 128),
		mk("b", "8A", 128),
		mk("far", "8A", 90),
	}
	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{TargetLength: 3})

	assert.Equal(t, optimize.StatusInfeasible, res.Status)
	assert.Empty(t, res.Playlist)
}

func TestOptimize_DurationBudget(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.MaxDuration = 400
	tracks := []track.Track{
		mk("a", "8A", 128, seconds(180)),
		mk("b", "8A", 128, seconds(180)),
		mk("c", "8A", 128, seconds(180)),
	}
	res := run(t, opts, tracks, optimize.Request{})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 2)
	assert.LessOrEqual(t, res.TotalDuration(), 400.0)
}

func TestOptimize_DurationBudgetPrefersShortTracks(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.EnforceEnergyFlow = false
	opts.MaxDuration = 600
	tracks := []track.Track{
		mk("long", "8A", 128, seconds(420)),
		mk("s1", "8A", 128, seconds(200)),
		mk("s2", "8A", 128, seconds(200)),
		mk("s3", "8A", 128, seconds(199.999)),
	}
	res := run(t, opts, tracks, optimize.Request{})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.ElementsMatch(t, []string{"s1", "s2", "s3"}, res.IDs())
	assert.LessOrEqual(t, res.TotalDuration(), 600.0)
}

func TestOptimize_EnergyFlow(t *testing.T) {
	tracks := []track.Track{
		mk("e4", "8A", 128, energy(4)),
		mk("e1", "8A", 128, energy(1)),
		mk("e2", "8A", 128, energy(2)),
	}

	res := run(t, optimize.DefaultOptions(), tracks, optimize.Request{})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"e1", "e2", "e4"}, res.IDs())

	opts := optimize.DefaultOptions()
	opts.MaxEnergyStep = 1
	res = run(t, opts, tracks, optimize.Request{})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"e1", "e2"}, res.IDs(), "+2 and +3 steps are too steep")
}

func TestOptimize_EnergyWeight(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.TempoTolerance = 5
	opts.EnergyWeight = 10
	tracks := []track.Track{
		mk("start", "8A", 120, energy(5)),
		mk("high", "8A", 122, energy(8)),
		mk("low", "8A", 150, energy(2)),
	}
	res := run(t, opts, tracks, optimize.Request{})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"start", "high"}, res.IDs())
}

func TestOptimize_EnergyWeightBreaksLengthTies(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.EnforceEnergyFlow = false
	opts.EnergyWeight = 10
	tracks := []track.Track{
		mk("mid", "8A", 128, energy(7)),
		mk("soft", "8A", 128, energy(3)),
		mk("loud", "8A", 128, energy(9)),
	}
	res := run(t, opts, tracks, optimize.Request{TargetLength: 2})

	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.ElementsMatch(t, []string{"mid", "loud"}, res.IDs())
}

func TestOptimize_ViolationBudget(t *testing.T) {
	tracks := []track.Track{
		mk("a", "8A", 128),
		mk("b", "8A", 128),
		mk("clash", "3B", 128),
	}

	opts := optimize.DefaultOptions()
	opts.MaxViolationPct = 0
	res := run(t, opts, tracks, optimize.Request{})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.ElementsMatch(t, []string{"a", "b"}, res.IDs())
	assert.Zero(t, res.Statistics.NonHarmonicTransitions)

	opts.MaxViolationPct = 0.1
	res = run(t, opts, tracks, optimize.Request{})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 3, "one clash allowed by the minimum budget")
	assert.Equal(t, 1, res.Statistics.NonHarmonicTransitions)
	assert.Equal(t, 2, res.Statistics.HarmonicTransitions+res.Statistics.NonHarmonicTransitions)
}

func TestOptimize_LevelWidensHarmonicEdges(t *testing.T) {
	tracks := []track.Track{
		mk("a", "8A", 128),
		mk("b", "9B", 128),
	}
	opts := optimize.DefaultOptions()
	opts.MaxViolationPct = 0

	res := run(t, opts, tracks, optimize.Request{})
	assert.Len(t, res.Playlist, 1, "8A→9B clashes at strict")

	opts.HarmonicLevel = harmonic.Moderate
	res = run(t, opts, tracks, optimize.Request{})
	assert.Len(t, res.Playlist, 2)
	assert.Equal(t, 100.0, res.Statistics.HarmonicPct())
}

func TestOptimize_MustInclude(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.MaxViolationPct = 0
	tracks := []track.Track{
		mk("a", "8A", 128),
		mk("b", "8A", 128),
		mk("c", "8A", 128),
		mk("island", "3B", 128),
	}

	res := run(t, opts, tracks, optimize.Request{})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, res.IDs())

	// Inclusion outweighs any length trade-off.
	res = run(t, opts, tracks, optimize.Request{MustInclude: []string{"island"}})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Equal(t, []string{"island"}, res.IDs())

	// Infeasible inclusion is dropped silently.
	res = run(t, opts, tracks, optimize.Request{StartID: "a", MustInclude: []string{"island", "ghost"}})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, res.IDs())
	assert.Equal(t, "a", res.Playlist[0].ID)
}

func TestOptimize_MustIncludeAmongEqualTours(t *testing.T) {
	tracks := []track.Track{
		mk("a", "8A", 128, seconds(200)),
		mk("b", "8A", 128, seconds(200)),
		mk("c", "8A", 128, seconds(200)),
	}
	opts := optimize.DefaultOptions()
	opts.MaxDuration = 450

	res := run(t, opts, tracks, optimize.Request{MustInclude: []string{"c"}})
	require.Equal(t, optimize.StatusOptimal, res.Status)
	assert.Len(t, res.Playlist, 2)
	assert.Contains(t, res.IDs(), "c")
}

// ---------------------------
// Budget and cancellation.
// ---------------------------

func TestOptimize_CancelledContext(t *testing.T) {
	o, err := optimize.New(optimize.DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := o.Optimize(ctx, same(4), optimize.Request{})

	assert.Equal(t, optimize.StatusUnknown, res.Status)
	assert.Empty(t, res.Playlist)
}

func TestOptimize_TimeLimitReturnsIncumbent(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.EnforceEnergyFlow = false
	opts.MaxDuration = 1000
	opts.TimeLimit = time.Nanosecond

	tracks := make([]track.Track, 60)
	for i := range tracks {
		d := 100 + float64(i*37%91)
		tracks[i] = mk(fmt.Sprintf("t%02d", i), "8A", 128, seconds(d))
	}
	res := run(t, opts, tracks, optimize.Request{})

	require.Equal(t, optimize.StatusFeasible, res.Status)
	assert.NotEmpty(t, res.Playlist)
	assert.LessOrEqual(t, res.TotalDuration(), 1000.0)
}

func TestOptimize_ConcurrentCalls(t *testing.T) {
	opts := optimize.DefaultOptions()
	opts.EnforceEnergyFlow = false
	o, err := optimize.New(opts)
	require.NoError(t, err)

	tracks := []track.Track{
		mk("a", "8A", 124),
		mk("b", "9A", 126),
		mk("c", "9B", 128),
		mk("d", "10B", 130),
		mk("e", "3A", 50),
	}

	var eg errgroup.Group
	results := make([]optimize.Result, 8)
	for i := range results {
		eg.Go(func() error {
			results[i] = o.Optimize(context.Background(), tracks, optimize.Request{})

			return nil
		})
	}
	require.NoError(t, eg.Wait())

	seen := map[string]bool{}
	for _, res := range results {
		assert.Equal(t, optimize.StatusOptimal, res.Status)
		assert.Len(t, res.Playlist, 4)
		assert.False(t, seen[res.RunID], "run ids are unique")
		seen[res.RunID] = true
	}
}
