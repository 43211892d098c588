// Package cli wires the mixpath commands onto cobra.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/mixpath/internal/config"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around a private viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "mixpath",
		Short:         "Harmonic playlist optimizer",
		Long:          "mixpath orders tracks into the longest playlist whose transitions mix cleanly by tempo, key and energy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cmd, v); err != nil {
				return err
			}
			initLogging(cmd.ErrOrStderr(), v.GetBool("verbose"))

			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file (default .mixpath.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newOptimizeCmd(v), newKeysCmd())

	return root
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName(".mixpath")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// It's fine if no config file is found; we use defaults.
		_ = v.ReadInConfig()
	}

	config.BindEnv(v)

	return nil
}

func initLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
