package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mixpath/harmonic"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <key>",
		Short: "List keys that mix with the given key",
		Long:  "Accepts wheel notation (8A) or a conventional key name (Am, F# Major).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, _ := cmd.Flags().GetString("level")
			level, err := harmonic.ParseLevel(lvl)
			if err != nil {
				return err
			}
			key, err := harmonic.FromMusicalKey(args[0])
			if err != nil {
				return err
			}
			keys, err := harmonic.CompatibleKeys(key, level)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", key, level, strings.Join(keys, " "))

			return nil
		},
	}
	cmd.Flags().String("level", harmonic.Strict.String(), "harmonic level: strict, moderate or relaxed")

	return cmd
}
