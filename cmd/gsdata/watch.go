package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the dataset when images change",
		Long:  `Watch the image directory and re-run create after changes settle.`,
		RunE:  makeWatchRunner(load),
	}

	addWindowFlags(cmd)
	cmd.Flags().String("compression", "", "Output compression: none|zstd|lz4 (overrides config)")
	cmd.Flags().Int("workers", 0, "Parallel image decoders (overrides config)")
	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(load appLoader) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		a, err := load(cmd)
		if err != nil {
			return err
		}

		imageDir := a.ws.ImageDir(a.cfg)
		if _, err := os.Stat(imageDir); err != nil {
			return fmt.Errorf("image directory: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(imageDir); err != nil {
			return fmt.Errorf("watch %s: %w", imageDir, err)
		}
		if err := watcher.Add(a.ws.Root); err != nil {
			return fmt.Errorf("watch %s: %w", a.ws.Root, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", imageDir)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event, imageDir, a.ws.IgnorePath(), a.ws.OutputPath(a.cfg)) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				out, createErr := runCreate(cmd, a)
				if createErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", createErr)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d rows from %d pairs\n",
					time.Now().Format(time.TimeOnly), out.Rows, out.Pairs)
			}
		}
	}
}

// shouldIgnoreEvent keeps content changes inside the image directory and
// edits of the ignore file. The dataset itself never triggers a rebuild.
func shouldIgnoreEvent(event fsnotify.Event, imageDir, ignorePath, outputPath string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}

	if strings.HasPrefix(event.Name, outputPath) {
		return true
	}

	if event.Name == ignorePath {
		return false
	}

	return filepath.Dir(event.Name) != filepath.Clean(imageDir) ||
		strings.HasPrefix(filepath.Base(event.Name), ".")
}
