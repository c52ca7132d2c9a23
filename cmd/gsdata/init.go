package main

import (
	"fmt"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a dataset workspace",
		Long:  `Create a .gsdata directory with a default gsdata.yaml.`,
		RunE:  makeInitRunner(load),
	}

	cmd.Flags().String("images", "", "Image directory to record in the config")
	return cmd
}

func makeInitRunner(load appLoader) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := load(cmd)
		if err != nil {
			return err
		}

		if err := a.ws.Init(); err != nil {
			return err
		}

		cfg := internal.DefaultConfig()
		if dir, _ := cmd.Flags().GetString("images"); dir != "" {
			cfg.Images.Dir = dir
		}
		if err := internal.SaveConfig(a.ws, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace at %s\n", a.ws.DataPath())
		return nil
	}
}
