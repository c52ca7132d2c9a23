package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, load appLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gsdata",
		Short:         "Green-screen keying training data",
		Long:          `Extract per-pixel window features and alpha labels from color/mask image pairs.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if load != nil {
		addSubcommands(rootCmd, load)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("root", "", "Workspace root (default: current directory)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("log-json", false, "Log in JSON format")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command, load appLoader) {
	root.AddCommand(
		NewInitCmd(load),
		NewCreateCmd(load),
		NewInspectCmd(load),
		NewOffsetsCmd(),
		NewStatsCmd(),
		NewWatchCmd(load),
	)
}
