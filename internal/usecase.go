package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"
)

// Use case input/output DTOs

type CreateDatasetInput struct {
	Config *Config
	// Output overrides the configured dataset file.
	Output io.Writer
}

type CreateDatasetOutput struct {
	Path    string
	Pairs   int
	Rows    int
	Width   int
	Skipped []*PairError
}

type InspectPairInput struct {
	Config *Config
	Name   string
	Limit  int
}

type InspectPairOutput struct {
	Pair    ImagePair
	Width   int
	Total   int
	Samples []Sample
}

// Use cases

type UseCases struct {
	CreateDataset *CreateDatasetUseCase
	InspectPair   *InspectPairUseCase
}

// NewUseCases wires the use cases for a workspace. fsFor opens the image
// directory of a config.
func NewUseCases(ws Workspace, fsFor func(*Config) billy.Filesystem, logger *Logger) *UseCases {
	return &UseCases{
		CreateDataset: NewCreateDatasetUseCase(ws, fsFor, logger),
		InspectPair:   NewInspectPairUseCase(fsFor),
	}
}

type CreateDatasetUseCase struct {
	ws     Workspace
	fsFor  func(*Config) billy.Filesystem
	logger *Logger
}

func NewCreateDatasetUseCase(ws Workspace, fsFor func(*Config) billy.Filesystem, logger *Logger) *CreateDatasetUseCase {
	if logger == nil {
		logger = NoopLogger()
	}
	return &CreateDatasetUseCase{
		ws:     ws,
		fsFor:  fsFor,
		logger: logger,
	}
}

// Execute writes one row per interior pixel of every image pair. Pairs are
// decoded in parallel but written in name order, so the output only depends
// on the inputs. A pair that fails to load is skipped unless Strict is set.
func (uc *CreateDatasetUseCase) Execute(ctx context.Context, input CreateDatasetInput) (*CreateDatasetOutput, error) {
	cfg := input.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	offsets, err := cfg.Window.Ordering.Offsets(cfg.Window.Delta)
	if err != nil {
		return nil, err
	}

	fsys := uc.fsFor(cfg)
	ignore, err := NewIgnoreMatcher(uc.ws.IgnorePath())
	if err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}

	pairs, missing, err := DiscoverPairs(fsys, cfg.Images, ignore)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 && cfg.Strict {
		return nil, missing[0]
	}
	for _, pe := range missing {
		uc.logger.LogPair(ctx, pe.Pair.Name, 0, pe.Err)
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	out := &CreateDatasetOutput{Skipped: missing, Width: -1}
	var file *os.File

	compression, _ := ParseCompression(cfg.Output.Compression)
	w := input.Output
	if w == nil {
		out.Path = uc.outputPath(cfg, compression)
		if err := os.MkdirAll(filepath.Dir(out.Path), 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
		f, err := os.Create(out.Path)
		if err != nil {
			return nil, fmt.Errorf("create dataset file: %w", err)
		}
		file = f
		w = f
	}

	dw, err := NewDatasetWriter(w, compression)
	if err != nil {
		if file != nil {
			_ = file.Close()
			_ = os.Remove(out.Path)
		}
		return nil, err
	}

	runErr := uc.run(ctx, cfg, fsys, pairs, offsets, dw, out)
	if closeErr := dw.Close(); runErr == nil {
		runErr = closeErr
	}
	if file != nil {
		// The file must be closed before it can be removed on Windows.
		if closeErr := file.Close(); runErr == nil && closeErr != nil {
			runErr = fmt.Errorf("close dataset file: %w", closeErr)
		}
	}
	out.Rows = dw.Rows()

	uc.logger.LogDataset(ctx, out.Path, out.Pairs, len(out.Skipped), out.Rows, runErr)
	if runErr != nil {
		if out.Path != "" {
			_ = os.Remove(out.Path)
		}
		return nil, runErr
	}
	return out, nil
}

func (uc *CreateDatasetUseCase) outputPath(cfg *Config, compression string) string {
	path := uc.ws.OutputPath(cfg)
	if ext := Extension(compression); ext != "" && !strings.HasSuffix(path, ext) {
		path += ext
	}
	return path
}

type loadedPair struct {
	color *Image
	mask  *Image
	err   error
}

func (uc *CreateDatasetUseCase) run(
	ctx context.Context,
	cfg *Config,
	fsys billy.Filesystem,
	pairs []ImagePair,
	offsets []Coord,
	dw *DatasetWriter,
	out *CreateDatasetOutput,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := max(cfg.Workers, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	slots := make([]chan loadedPair, len(pairs))
	for i := range slots {
		slots[i] = make(chan loadedPair, 1)
	}

	// Bounds the number of decoded pairs waiting to be written.
	tokens := make(chan struct{}, 2*workers)

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, pair := range pairs {
			select {
			case tokens <- struct{}{}:
			case <-gctx.Done():
				return
			}
			g.Go(func() error {
				color, mask, err := LoadPair(fsys, pair, cfg.Images.Dim)
				slots[i] <- loadedPair{color: color, mask: mask, err: err}
				return nil
			})
		}
	}()

	err := uc.consume(ctx, cfg, pairs, offsets, slots, tokens, dw, out)

	cancel()
	<-launched
	_ = g.Wait()
	return err
}

func (uc *CreateDatasetUseCase) consume(
	ctx context.Context,
	cfg *Config,
	pairs []ImagePair,
	offsets []Coord,
	slots []chan loadedPair,
	tokens chan struct{},
	dw *DatasetWriter,
	out *CreateDatasetOutput,
) error {
	for i, pair := range pairs {
		var lp loadedPair
		select {
		case <-ctx.Done():
			return ctx.Err()
		case lp = <-slots[i]:
			<-tokens
		}

		n, err := uc.writePair(ctx, cfg, lp, offsets, dw, out)
		if err != nil {
			var pe *PairError
			if !errors.As(err, &pe) {
				return err
			}
			pe.Pair = pair
			if cfg.Strict {
				return pe
			}
			uc.logger.LogPair(ctx, pair.Name, 0, pe.Err)
			out.Skipped = append(out.Skipped, pe)
			continue
		}

		uc.logger.LogPair(ctx, pair.Name, n, nil)
		out.Pairs++
	}
	return nil
}

// writePair returns a *PairError for problems confined to the pair. Any other
// error aborts the run.
func (uc *CreateDatasetUseCase) writePair(
	ctx context.Context,
	cfg *Config,
	lp loadedPair,
	offsets []Coord,
	dw *DatasetWriter,
	out *CreateDatasetOutput,
) (int, error) {
	if lp.err != nil {
		return 0, &PairError{Err: lp.err}
	}

	it, err := GenerateSamplesWithOffsets(lp.color, lp.mask, cfg.Window.Delta, offsets)
	if err != nil {
		return 0, &PairError{Err: err}
	}
	defer it.Stop()

	if out.Width < 0 {
		out.Width = it.Width()
	} else if it.Width() != out.Width {
		return 0, &PairError{Err: fmt.Errorf("%w: got %d features, want %d", ErrRowWidth, it.Width(), out.Width)}
	}

	n := 0
	for it.Next() {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		if err := dw.Write(it.Sample()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type InspectPairUseCase struct {
	fsFor func(*Config) billy.Filesystem
}

func NewInspectPairUseCase(fsFor func(*Config) billy.Filesystem) *InspectPairUseCase {
	return &InspectPairUseCase{fsFor: fsFor}
}

// Execute loads one pair and returns its first Limit samples. A zero Limit
// returns all of them.
func (uc *InspectPairUseCase) Execute(ctx context.Context, input InspectPairInput) (*InspectPairOutput, error) {
	cfg := input.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	offsets, err := cfg.Window.Ordering.Offsets(cfg.Window.Delta)
	if err != nil {
		return nil, err
	}

	pair := PairFor(cfg.Images, input.Name)
	color, mask, err := LoadPair(uc.fsFor(cfg), pair, cfg.Images.Dim)
	if err != nil {
		return nil, &PairError{Pair: pair, Err: err}
	}

	it, err := GenerateSamplesWithOffsets(color, mask, cfg.Window.Delta, offsets)
	if err != nil {
		return nil, &PairError{Pair: pair, Err: err}
	}
	defer it.Stop()

	out := &InspectPairOutput{Pair: pair, Width: it.Width(), Total: it.Len()}
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Samples = append(out.Samples, it.Sample())
		if input.Limit > 0 && len(out.Samples) >= input.Limit {
			break
		}
	}
	return out, nil
}
