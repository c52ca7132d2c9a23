package main

import (
	"fmt"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func NewOffsetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offsets",
		Short: "Print the window offsets",
		Long:  `Print the relative window offsets in feature order, one "row, col" per line.`,
		Args:  cobra.NoArgs,
		RunE:  runOffsets,
	}

	cmd.Flags().Int("delta", 1, "Window half-width")
	cmd.Flags().String("ordering", string(internal.OrderRows), "Offset ordering: rows|cols|rows_cols")
	return cmd
}

func runOffsets(cmd *cobra.Command, _ []string) error {
	delta, _ := cmd.Flags().GetInt("delta")
	ordering, _ := cmd.Flags().GetString("ordering")

	if delta < 0 {
		return internal.ErrInvalidDelta
	}
	o, err := internal.ParseOrdering(ordering)
	if err != nil {
		return err
	}
	offsets, err := o.Offsets(delta)
	if err != nil {
		return err
	}

	for _, off := range offsets {
		fmt.Fprintf(cmd.OutOrStdout(), "%d, %d\n", off.Row, off.Col)
	}
	return nil
}
