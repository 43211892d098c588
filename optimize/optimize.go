package optimize

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/mixpath/internal/telemetry"
	"github.com/katalvlaran/mixpath/mixgraph"
	"github.com/katalvlaran/mixpath/track"
)

// Optimizer selects and orders playlists under a fixed Options value.
// It holds no per-call state and is safe for concurrent use.
type Optimizer struct {
	opts   Options
	logger *slog.Logger
}

// New validates opts and returns an Optimizer bound to them.
func New(opts Options) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Optimizer{
		opts:   opts,
		logger: slog.Default().With(slog.String("component", "optimizer")),
	}, nil
}

// Options returns the configuration the Optimizer was built with.
func (o *Optimizer) Options() Options { return o.opts }

// Optimize returns the best playlist drawn from tracks under req.
//
// It never fails: configuration problems of the request (unknown start/end
// ids, duplicate track ids) and search outcomes are reported through
// Result.Status. Cancelling ctx behaves like an expired time budget.
func (o *Optimizer) Optimize(ctx context.Context, tracks []track.Track, req Request) Result {
	began := time.Now()
	runID := uuid.NewString()

	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, "optimize.Optimizer.Optimize",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("tracks", len(tracks)),
			attribute.Int("target_length", req.TargetLength),
		),
	)
	defer span.End()

	logger := o.logger.With(slog.String("run_id", runID))
	res := o.solve(ctx, logger, tracks, req)
	res.RunID = runID
	res.SolveTime = time.Since(began)
	res.Statistics = computeStatistics(len(tracks), res.Playlist, res.Transitions)

	span.SetAttributes(
		attribute.String("status", string(res.Status)),
		attribute.Int("playlist_length", len(res.Playlist)),
		attribute.Int64("search_nodes", res.SearchNodes),
	)
	switch res.Status {
	case StatusInfeasible, StatusUnknown, StatusInvalidInput:
		span.SetStatus(codes.Error, string(res.Status))
	}
	telemetry.ObserveOptimize(string(res.Status), res.SolveTime, res.SearchNodes, len(res.Playlist))

	logger.Info("optimization finished",
		slog.String("status", string(res.Status)),
		slog.Int("tracks", len(tracks)),
		slog.Int("playlist_length", len(res.Playlist)),
		slog.Int64("search_nodes", res.SearchNodes),
		slog.Duration("elapsed", res.SolveTime),
	)

	return res
}

// solve handles the trivial cases and runs the search for the general one.
func (o *Optimizer) solve(ctx context.Context, logger *slog.Logger, tracks []track.Track, req Request) Result {
	n := len(tracks)
	if n == 0 {
		return Result{Status: StatusEmptyInput}
	}

	index := make(map[string]int, n)
	for i, t := range tracks {
		if _, dup := index[t.ID]; dup {
			logger.Warn("duplicate track id", slog.String("id", t.ID))

			return Result{Status: StatusInvalidInput}
		}
		index[t.ID] = i
	}

	start, end := -1, -1
	if id := strings.TrimSpace(req.StartID); id != "" {
		i, ok := index[id]
		if !ok {
			logger.Warn("unknown start track", slog.String("id", id))

			return Result{Status: StatusInvalidInput}
		}
		start = i
	}
	if id := strings.TrimSpace(req.EndID); id != "" {
		i, ok := index[id]
		if !ok {
			logger.Warn("unknown end track", slog.String("id", id))

			return Result{Status: StatusInvalidInput}
		}
		end = i
	}

	if n == 1 {
		return Result{Playlist: []track.Track{tracks[0]}, Status: StatusSingleTrack}
	}

	deadline := time.Now().Add(o.opts.TimeLimit)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	g, err := mixgraph.Build(ctx, tracks, o.opts.graphOptions())
	if err != nil {
		logger.Warn("graph build aborted", slog.Any("error", err))

		return Result{Status: StatusUnknown}
	}
	logger.Debug("compatibility graph built",
		slog.Int("vertices", g.Order()),
		slog.Int("edges", g.Size()),
	)

	in := instance{
		g:         g,
		weight:    o.weights(logger, tracks, index, req.MustInclude),
		dur:       make([]int64, n),
		maxDur:    -1,
		violLimit: ViolationLimit(n, o.opts.MaxViolationPct),
		start:     start,
		end:       end,
	}
	for i, t := range tracks {
		in.dur[i] = scaledDuration(t.Duration)
	}
	if o.opts.MaxDuration > 0 {
		in.maxDur = scaledDuration(o.opts.MaxDuration)
	}
	if req.TargetLength > 0 {
		in.target = min(req.TargetLength, n)
	}

	e := newEngine(ctx, in, deadline)
	exhausted := e.run()

	res := Result{SearchNodes: e.steps}
	switch {
	case e.foundAny && exhausted:
		res.Status = StatusOptimal
	case e.foundAny:
		res.Status = StatusFeasible
	case exhausted:
		res.Status = StatusInfeasible
	default:
		res.Status = StatusUnknown
	}
	if !e.foundAny {
		logger.Warn("no playlist satisfies the constraints", slog.String("status", string(res.Status)))

		return res
	}

	res.Playlist, res.Transitions = reconstruct(tracks, g, e.tour())

	return res
}

// weights returns the objective reward of every track. Must-include ids earn
// a bonus larger than the reward of any playlist without them.
func (o *Optimizer) weights(logger *slog.Logger, tracks []track.Track, index map[string]int, mustInclude []string) []int64 {
	n := len(tracks)
	w := make([]int64, n)
	for i, t := range tracks {
		w[i] = o.opts.BaseWeight + o.energyTerm(t.Energy)
	}
	if len(mustInclude) == 0 {
		return w
	}

	bonus := int64(n)*(o.opts.BaseWeight+o.energyTerm(track.MaxEnergy)) + 1
	for _, id := range mustInclude {
		i, ok := index[strings.TrimSpace(id)]
		if !ok {
			logger.Warn("unknown must-include track skipped", slog.String("id", id))
			continue
		}
		if w[i] < bonus {
			w[i] += bonus
		}
	}

	return w
}

func (o *Optimizer) energyTerm(energy int) int64 {
	return int64(o.opts.EnergyWeight * float64(energy))
}
