package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize a dataset file",
		Long:  `Read a dataset written by create and print its row count, width and label balance.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	cmd.Flags().String("compression", "", "Compression (default: from file extension)")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]
	compression, _ := cmd.Flags().GetString("compression")
	if compression == "" {
		compression = internal.CompressionFromPath(path)
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	st, err := internal.ReadStats(f, compression)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"rows":       st.Rows,
			"width":      st.Width,
			"mean_label": st.MeanLabel,
			"positive":   st.Positive,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "rows:       %d\n", st.Rows)
	fmt.Fprintf(w, "features:   %d\n", st.Width)
	fmt.Fprintf(w, "mean label: %.4f\n", st.MeanLabel)
	fmt.Fprintf(w, "positive:   %.4f\n", st.Positive)
	return nil
}
