package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/katalvlaran/mixpath/optimize"
)

type transitionView struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Harmonic  bool    `json:"harmonic"`
	TempoDiff float64 `json:"tempo_diff"`
}

type resultView struct {
	RunID       string              `json:"run_id"`
	Status      optimize.Status     `json:"status"`
	SolveTimeMS int64               `json:"solve_time_ms"`
	Playlist    []string            `json:"playlist"`
	Transitions []transitionView    `json:"transitions"`
	Statistics  optimize.Statistics `json:"statistics"`
	CoveragePct float64             `json:"coverage_pct"`
	HarmonicPct float64             `json:"harmonic_pct"`
	DurationSec float64             `json:"duration_sec"`
}

func newResultView(res optimize.Result) resultView {
	view := resultView{
		RunID:       res.RunID,
		Status:      res.Status,
		SolveTimeMS: res.SolveTime.Milliseconds(),
		Playlist:    res.IDs(),
		Transitions: make([]transitionView, len(res.Transitions)),
		Statistics:  res.Statistics,
		CoveragePct: res.Statistics.CoveragePct(),
		HarmonicPct: res.Statistics.HarmonicPct(),
		DurationSec: res.TotalDuration(),
	}
	for i, tr := range res.Transitions {
		view.Transitions[i] = transitionView{
			From:      tr.From.ID,
			To:        tr.To.ID,
			Harmonic:  tr.Harmonic,
			TempoDiff: tr.TempoDiff,
		}
	}

	return view
}

func writeJSON(w io.Writer, res optimize.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newResultView(res))
}

func writeText(w io.Writer, res optimize.Result) error {
	fmt.Fprintf(w, "status: %s (%s)\n", res.Status, res.SolveTime.Round(time.Millisecond))
	if len(res.Playlist) == 0 {
		fmt.Fprintln(w, "no playlist")

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tKEY\tBPM\tENERGY\tTITLE")
	for i, t := range res.Playlist {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d\t%s\n", i+1, t.ID, t.Key, t.BPM, t.Energy, t.DisplayName())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	st := res.Statistics
	fmt.Fprintf(w, "tracks: %d/%d (%.0f%%)  harmonic: %d/%d (%.0f%%)  bpm: %.1f avg, %.1f..%.1f\n",
		st.PlaylistLength, st.TotalInputTracks, st.CoveragePct(),
		st.HarmonicTransitions, st.HarmonicTransitions+st.NonHarmonicTransitions, st.HarmonicPct(),
		st.AvgBPM, st.MinBPM, st.MaxBPM)

	return nil
}
