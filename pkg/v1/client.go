package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ErrNoDim is returned by WriteDataset when no image shape was configured.
var ErrNoDim = errors.New("dataset needs an image shape, use WithDim")

// Client extracts training samples from color/mask image pairs.
type Client struct {
	cfg     clientConfig
	fsys    billy.Filesystem
	window  internal.WindowConfig
	offsets []internal.Coord
}

// New creates a new Client with the given options. The default window has
// delta 1 and row-major ordering.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		dir:      ".",
		delta:    1,
		ordering: string(internal.OrderRows),
		workers:  4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.delta < 0 {
		return nil, internal.ErrInvalidDelta
	}
	ordering, err := internal.ParseOrdering(cfg.ordering)
	if err != nil {
		return nil, err
	}
	if _, err := internal.ParseCompression(cfg.compression); err != nil {
		return nil, err
	}
	if cfg.rows != 0 || cfg.cols != 0 {
		if _, err := internal.NewDim(cfg.rows, cfg.cols); err != nil {
			return nil, err
		}
	}

	offsets, err := ordering.Offsets(cfg.delta)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:     cfg,
		fsys:    osfs.New(cfg.dir),
		window:  internal.WindowConfig{Delta: cfg.delta, Ordering: ordering},
		offsets: offsets,
	}, nil
}

// Offsets returns the window offsets in feature order.
func (c *Client) Offsets() []Offset {
	out := make([]Offset, len(c.offsets))
	for i, o := range c.offsets {
		out[i] = Offset{Row: o.Row, Col: o.Col}
	}
	return out
}

// FeatureLen is the feature vector length for images with the given number
// of channels.
func (c *Client) FeatureLen(channels int) int {
	return internal.FeatureLen(channels, c.offsets)
}

// Samples loads one image pair and returns its samples in row-major order.
// The sequence is single-pass and stops early when ctx is done.
func (c *Client) Samples(ctx context.Context, colorPath, maskPath string) (iter.Seq[Sample], error) {
	color, mask, err := c.loadPair(colorPath, maskPath)
	if err != nil {
		return nil, err
	}

	if color.Rows != mask.Rows || color.Cols != mask.Cols {
		return nil, fmt.Errorf("samples: %w", &internal.ImagePairShapeMismatchError{Color: color.Dim(), Mask: mask.Dim()})
	}

	consumed := false
	return func(yield func(Sample) bool) {
		if consumed {
			return
		}
		consumed = true
		it, err := internal.GenerateSamplesWithOffsets(color, mask, c.window.Delta, c.offsets)
		if err != nil {
			return
		}
		for s := range it.All() {
			if ctx.Err() != nil {
				return
			}
			if !yield(Sample{Row: s.Center.Row, Col: s.Center.Col, Features: s.Features, Label: s.Label}) {
				return
			}
		}
	}, nil
}

func (c *Client) loadPair(colorPath, maskPath string) (*internal.Image, *internal.Image, error) {
	var color, mask *internal.Image
	var err error
	if c.hasDim() {
		dim := internal.Dim{Rows: c.cfg.rows, Cols: c.cfg.cols}
		color, mask, err = internal.LoadPair(c.fsys, internal.ImagePair{ColorPath: colorPath, MaskPath: maskPath}, dim)
		if err != nil {
			return nil, nil, fmt.Errorf("load pair: %w", err)
		}
		return color, mask, nil
	}

	color, err = internal.ReadImage(c.fsys, colorPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load color image: %w", err)
	}
	full, err := internal.ReadImage(c.fsys, maskPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load mask image: %w", err)
	}
	mask, err = full.Channel(-1)
	if err != nil {
		return nil, nil, fmt.Errorf("load mask image: %w", err)
	}
	return color, mask, nil
}

func (c *Client) hasDim() bool {
	return c.cfg.rows > 0 && c.cfg.cols > 0
}

// WriteDataset writes the samples of every pair in imageDir, named
// bsp{name}_0.png / bsp{name}_1.png, to w as CSV rows. imageDir is resolved
// against the client directory.
func (c *Client) WriteDataset(ctx context.Context, imageDir string, w io.Writer) (*DatasetResult, error) {
	if !c.hasDim() {
		return nil, ErrNoDim
	}

	if !filepath.IsAbs(imageDir) {
		imageDir = filepath.Join(c.cfg.dir, imageDir)
	}
	ws := internal.Workspace{Root: imageDir}
	cfg := internal.DefaultConfig()
	cfg.Images.Dir = ws.Root
	cfg.Images.Dim = internal.Dim{Rows: c.cfg.rows, Cols: c.cfg.cols}
	cfg.Window = c.window
	cfg.Output.Compression = c.cfg.compression
	cfg.Workers = c.cfg.workers

	logger := internal.NoopLogger()
	if c.cfg.logger != nil {
		logger = &internal.Logger{Logger: c.cfg.logger}
	}

	fsFor := func(*internal.Config) billy.Filesystem { return osfs.New(ws.Root) }
	uc := internal.NewCreateDatasetUseCase(ws, fsFor, logger)

	out, err := uc.Execute(ctx, internal.CreateDatasetInput{Config: cfg, Output: w})
	if err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}

	res := &DatasetResult{Pairs: out.Pairs, Rows: out.Rows, Width: out.Width}
	if len(out.Skipped) > 0 {
		res.Skipped = make(map[string]string, len(out.Skipped))
		for _, pe := range out.Skipped {
			res.Skipped[pe.Pair.Name] = pe.Err.Error()
		}
	}
	return res, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}
