package v1

import "log/slog"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	dir         string
	delta       int
	rows, cols  int
	ordering    string
	compression string
	workers     int
	logger      *slog.Logger
}

// WithDir sets the directory relative image paths are resolved against.
func WithDir(dir string) Option {
	return func(c *clientConfig) {
		c.dir = dir
	}
}

// WithDelta sets the window half-width.
func WithDelta(delta int) Option {
	return func(c *clientConfig) {
		c.delta = delta
	}
}

// WithDim makes every loaded image be checked against rows x cols.
func WithDim(rows, cols int) Option {
	return func(c *clientConfig) {
		c.rows = rows
		c.cols = cols
	}
}

// WithOrdering selects the feature ordering: "rows", "cols" or "rows_cols".
func WithOrdering(ordering string) Option {
	return func(c *clientConfig) {
		c.ordering = ordering
	}
}

// WithCompression sets the dataset compression: "none", "zstd" or "lz4".
func WithCompression(compression string) Option {
	return func(c *clientConfig) {
		c.compression = compression
	}
}

// WithWorkers sets how many image pairs are decoded in parallel.
func WithWorkers(n int) Option {
	return func(c *clientConfig) {
		c.workers = n
	}
}

// WithLogger routes dataset logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
