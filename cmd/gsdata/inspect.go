package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func NewInspectCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "Print the samples of one image pair",
		Long:  `Load a single image pair by name and print its first samples.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeInspectRunner(load),
	}

	addWindowFlags(cmd)
	cmd.Flags().Int("limit", 5, "Number of samples to print (0 for all)")
	return cmd
}

func makeInspectRunner(load appLoader) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := load(cmd)
		if err != nil {
			return err
		}

		cfg, err := configWithFlags(cmd, a.cfg)
		if err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		out, err := a.uc.InspectPair.Execute(cmd.Context(), internal.InspectPairInput{
			Config: cfg, Name: args[0], Limit: limit,
		})
		if err != nil {
			return fmt.Errorf("inspect pair: %w", err)
		}

		if asJSON {
			return outputInspectJSON(cmd, out)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s + %s: %d samples, %d features\n",
			out.Pair.ColorPath, out.Pair.MaskPath, out.Total, out.Width)
		for idx, s := range out.Samples {
			fmt.Fprintf(w, "%d %s label=%s [%s]\n", idx, s.Center, formatFloat(s.Label), formatFeatures(s.Features))
		}
		return nil
	}
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 4, 32)
}

func formatFeatures(fs []float32) string {
	parts := make([]string, len(fs))
	for i, v := range fs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

func outputInspectJSON(cmd *cobra.Command, out *internal.InspectPairOutput) error {
	samples := make([]map[string]any, len(out.Samples))
	for i, s := range out.Samples {
		samples[i] = map[string]any{
			"row":      s.Center.Row,
			"col":      s.Center.Col,
			"label":    s.Label,
			"features": s.Features,
		}
	}

	data := map[string]any{
		"name":    out.Pair.Name,
		"color":   out.Pair.ColorPath,
		"mask":    out.Pair.MaskPath,
		"total":   out.Total,
		"width":   out.Width,
		"samples": samples,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
