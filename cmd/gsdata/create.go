package main

import (
	"encoding/json"
	"fmt"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func NewCreateCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the training dataset",
		Long: `Extract one row per interior pixel of every image pair: the window
features of the color image followed by the alpha value of the mask.`,
		RunE: makeCreateRunner(load),
	}

	addWindowFlags(cmd)
	cmd.Flags().String("compression", "", "Output compression: none|zstd|lz4 (overrides config)")
	cmd.Flags().Int("workers", 0, "Parallel image decoders (overrides config)")
	cmd.Flags().Bool("strict", false, "Fail on the first broken image pair")
	cmd.Flags().Bool("stdout", false, "Write the dataset to stdout instead of a file")
	return cmd
}

func makeCreateRunner(load appLoader) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := load(cmd)
		if err != nil {
			return err
		}

		out, err := runCreate(cmd, a)
		if err != nil {
			return err
		}

		toStdout, _ := cmd.Flags().GetBool("stdout")
		if toStdout {
			return nil
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return outputCreateJSON(cmd, out)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows (%d features) from %d pairs to %s\n",
			out.Rows, out.Width, out.Pairs, out.Path)
		for _, pe := range out.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "skipped %s: %v\n", pe.Pair.Name, pe.Err)
		}
		return nil
	}
}

func runCreate(cmd *cobra.Command, a *app) (*internal.CreateDatasetOutput, error) {
	cfg, err := configWithFlags(cmd, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	input := internal.CreateDatasetInput{Config: cfg}
	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		input.Output = cmd.OutOrStdout()
	}

	out, err := a.uc.CreateDataset.Execute(cmd.Context(), input)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return out, nil
}

func outputCreateJSON(cmd *cobra.Command, out *internal.CreateDatasetOutput) error {
	skipped := make(map[string]string, len(out.Skipped))
	for _, pe := range out.Skipped {
		skipped[pe.Pair.Name] = pe.Err.Error()
	}

	data := map[string]any{
		"path":    out.Path,
		"pairs":   out.Pairs,
		"rows":    out.Rows,
		"width":   out.Width,
		"skipped": skipped,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
