package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func writeTestPair(t *testing.T, dir, name string, rows, cols int) {
	t.Helper()
	colorImg := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	maskImg := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			colorImg.SetNRGBA(x, y, color.NRGBA{R: uint8(10 * x), G: uint8(10 * y), B: 200, A: 255})
			a := uint8(0)
			if y >= rows/2 {
				a = 255
			}
			maskImg.SetNRGBA(x, y, color.NRGBA{G: 255, A: a})
		}
	}
	writeTestPNG(t, filepath.Join(dir, "bsp"+name+"_0.png"), colorImg)
	writeTestPNG(t, filepath.Join(dir, "bsp"+name+"_1.png"), maskImg)
}

// setupCmdTest creates a workspace with two 6x8 image pairs and returns a
// loader bound to it.
func setupCmdTest(t *testing.T) (internal.Workspace, appLoader) {
	t.Helper()
	ws := internal.Workspace{Root: t.TempDir()}
	require.NoError(t, ws.Init())

	cfg := internal.DefaultConfig()
	cfg.Images.Dim = internal.Dim{Rows: 6, Cols: 8}
	cfg.Window.Delta = 1
	cfg.Workers = 2
	require.NoError(t, internal.SaveConfig(ws, cfg))

	imageDir := ws.ImageDir(cfg)
	writeTestPair(t, imageDir, "1", 6, 8)
	writeTestPair(t, imageDir, "2", 6, 8)

	load := func(*cobra.Command) (*app, error) {
		cfg, err := internal.LoadConfig(ws)
		if err != nil {
			return nil, err
		}
		fsFor := func(c *internal.Config) billy.Filesystem { return osfs.New(ws.ImageDir(c)) }
		return newApp(ws, cfg, fsFor, internal.NoopLogger()), nil
	}
	return ws, load
}
