package main

import (
	"github.com/4thel00z/greenscreen/internal"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

type app struct {
	ws     internal.Workspace
	cfg    *internal.Config
	logger *internal.Logger
	uc     *internal.UseCases
}

// appLoader builds the app for the command being run.
type appLoader func(cmd *cobra.Command) (*app, error)

func newApp(ws internal.Workspace, cfg *internal.Config, fsFor func(*internal.Config) billy.Filesystem, logger *internal.Logger) *app {
	return &app{
		ws:     ws,
		cfg:    cfg,
		logger: logger,
		uc:     internal.NewUseCases(ws, fsFor, logger),
	}
}

func loadApp(cmd *cobra.Command) (*app, error) {
	root, _ := cmd.Flags().GetString("root")
	level, _ := cmd.Flags().GetString("log-level")
	asJSON, _ := cmd.Flags().GetBool("log-json")

	ws, err := internal.NewWorkspace(root)
	if err != nil {
		return nil, err
	}

	cfg, err := internal.LoadConfig(ws)
	if err != nil {
		return nil, err
	}

	logger := internal.NewWriterLogger(cmd.ErrOrStderr(), internal.ParseLevel(level), asJSON)
	fsFor := func(c *internal.Config) billy.Filesystem {
		return osfs.New(ws.ImageDir(c))
	}

	return newApp(ws, cfg, fsFor, logger), nil
}
