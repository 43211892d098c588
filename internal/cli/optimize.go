package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/mixpath/internal/config"
	"github.com/katalvlaran/mixpath/internal/trackfile"
	"github.com/katalvlaran/mixpath/optimize"
)

// optionFlags maps command flags onto config keys.
var optionFlags = map[string]string{
	"tolerance":     "tempo_tolerance",
	"halftime":      "allow_halftime",
	"level":         "harmonic_level",
	"violations":    "max_violation_pct",
	"max-duration":  "max_duration",
	"energy-flow":   "enforce_energy_flow",
	"energy-step":   "max_energy_step",
	"energy-weight": "energy_weight",
	"time-limit":    "time_limit",
}

func newOptimizeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <tracks-file>",
		Short: "Build the best playlist from a track list",
		Long: "Reads tracks from a .json, .yaml or .toml file and prints the longest\n" +
			"playlist that respects the tempo, key, energy and duration constraints.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			opts, err := cfg.ToOptions()
			if err != nil {
				return err
			}
			tracks, err := trackfile.Load(args[0])
			if err != nil {
				return err
			}

			o, err := optimize.New(opts)
			if err != nil {
				return err
			}
			req, err := requestFromFlags(cmd)
			if err != nil {
				return err
			}
			res := o.Optimize(cmd.Context(), tracks, req)

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), res)
			case "text":
				return writeText(cmd.OutOrStdout(), res)
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	d := optimize.DefaultOptions()
	f := cmd.Flags()
	f.String("start", "", "id of the opening track")
	f.String("end", "", "id of the closing track")
	f.StringSlice("include", nil, "ids to include when possible (repeatable)")
	f.Int("length", 0, "exact playlist length (0 = as long as possible)")
	f.String("format", "text", "output format: text or json")

	f.Float64("tolerance", d.TempoTolerance, "maximum BPM gap between adjacent tracks")
	f.Bool("halftime", d.AllowHalftime, "accept halftime/doubletime tempo matches")
	f.String("level", d.HarmonicLevel.String(), "harmonic level: strict, moderate or relaxed")
	f.Float64("violations", d.MaxViolationPct, "share of non-harmonic transitions allowed, 0..1")
	f.Float64("max-duration", d.MaxDuration, "playlist duration cap in seconds (0 = none)")
	f.Bool("energy-flow", d.EnforceEnergyFlow, "require non-decreasing energy")
	f.Int("energy-step", d.MaxEnergyStep, "largest energy increase per transition (0 = any)")
	f.Float64("energy-weight", d.EnergyWeight, "objective reward per energy point")
	f.Duration("time-limit", d.TimeLimit, "search time budget")

	for flag, key := range optionFlags {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func requestFromFlags(cmd *cobra.Command) (optimize.Request, error) {
	var (
		req optimize.Request
		err error
	)
	f := cmd.Flags()
	if req.StartID, err = f.GetString("start"); err != nil {
		return req, err
	}
	if req.EndID, err = f.GetString("end"); err != nil {
		return req, err
	}
	if req.MustInclude, err = f.GetStringSlice("include"); err != nil {
		return req, err
	}
	if req.TargetLength, err = f.GetInt("length"); err != nil {
		return req, err
	}

	return req, nil
}
