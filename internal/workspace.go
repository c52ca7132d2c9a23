package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

const WorkspaceDir = ".gsdata"

// Workspace is the directory tree a dataset run works in. Root is always given
// explicitly; nothing is derived from the home directory.
type Workspace struct {
	Root string
}

func NewWorkspace(root string) (Workspace, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Workspace{}, fmt.Errorf("get working directory: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve workspace root: %w", err)
	}
	return Workspace{Root: abs}, nil
}

func (w Workspace) DataPath() string {
	return filepath.Join(w.Root, WorkspaceDir)
}

func (w Workspace) ConfigPath() string {
	return filepath.Join(w.DataPath(), "gsdata.yaml")
}

func (w Workspace) IgnorePath() string {
	return filepath.Join(w.Root, IgnoreFilename)
}

// ImageDir resolves a configured image directory against the root.
func (w Workspace) ImageDir(cfg *Config) string {
	return w.resolve(cfg.Images.Dir)
}

// OutputPath is where the dataset file is written. An empty output dir means
// the workspace data directory.
func (w Workspace) OutputPath(cfg *Config) string {
	dir := w.DataPath()
	if cfg.Output.Dir != "" {
		dir = w.resolve(cfg.Output.Dir)
	}
	return filepath.Join(dir, cfg.Output.Name)
}

func (w Workspace) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(w.Root, p)
}

// Init creates the data directory. It fails if the workspace already exists.
func (w Workspace) Init() error {
	if _, err := os.Stat(w.DataPath()); err == nil {
		return fmt.Errorf("already initialized at %s", w.DataPath())
	}
	if err := os.MkdirAll(w.DataPath(), 0755); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}
	return nil
}
