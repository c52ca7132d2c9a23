package main

import (
	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Int("delta", 0, "Window half-width (overrides config)")
	cmd.Flags().String("ordering", "", "Offset ordering: rows|cols|rows_cols (overrides config)")
}

// configWithFlags returns a copy of cfg with the flags the user set applied.
func configWithFlags(cmd *cobra.Command, cfg *internal.Config) (*internal.Config, error) {
	out := *cfg
	flags := cmd.Flags()

	if flags.Changed("delta") {
		out.Window.Delta, _ = flags.GetInt("delta")
	}
	if flags.Changed("ordering") {
		s, _ := flags.GetString("ordering")
		o, err := internal.ParseOrdering(s)
		if err != nil {
			return nil, err
		}
		out.Window.Ordering = o
	}
	if flags.Lookup("compression") != nil && flags.Changed("compression") {
		out.Output.Compression, _ = flags.GetString("compression")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		out.Workers, _ = flags.GetInt("workers")
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		out.Strict, _ = flags.GetBool("strict")
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
