package internal

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionLZ4  = "lz4"
)

// ParseCompression normalizes a compression name. Empty means none.
func ParseCompression(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd, "zst":
		return CompressionZstd, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCodec, s)
}

// CompressionFromPath picks the codec from a file extension.
func CompressionFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	}
	return CompressionNone
}

// Extension is the file suffix appended for a compression.
func Extension(compression string) string {
	switch compression {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	}
	return ""
}

// DatasetWriter writes samples as CSV rows of features followed by the label.
type DatasetWriter struct {
	buf   *bufio.Writer
	csv   *csv.Writer
	codec io.WriteCloser
	row   []string
	width int
	rows  int
}

func NewDatasetWriter(w io.Writer, compression string) (*DatasetWriter, error) {
	c, err := ParseCompression(compression)
	if err != nil {
		return nil, err
	}

	dw := &DatasetWriter{width: -1}
	switch c {
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		dw.codec = enc
		w = enc
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		dw.codec = lw
		w = lw
	}

	dw.buf = bufio.NewWriterSize(w, 64*1024)
	dw.csv = csv.NewWriter(dw.buf)
	return dw, nil
}

// Write appends one sample. All samples of a dataset must have the same
// feature length.
func (dw *DatasetWriter) Write(s Sample) error {
	if dw.width < 0 {
		dw.width = len(s.Features)
	} else if len(s.Features) != dw.width {
		return fmt.Errorf("%w: got %d features, want %d", ErrRowWidth, len(s.Features), dw.width)
	}

	dw.row = dw.row[:0]
	for _, v := range s.Features {
		dw.row = append(dw.row, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	dw.row = append(dw.row, strconv.FormatFloat(float64(s.Label), 'g', -1, 32))

	if err := dw.csv.Write(dw.row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	dw.rows++
	return nil
}

func (dw *DatasetWriter) Rows() int {
	return dw.rows
}

// Close flushes buffered rows and finishes the compressed stream. It does not
// close the underlying writer.
func (dw *DatasetWriter) Close() error {
	dw.csv.Flush()
	if err := dw.csv.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	if err := dw.buf.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if dw.codec != nil {
		if err := dw.codec.Close(); err != nil {
			return fmt.Errorf("close compressor: %w", err)
		}
	}
	return nil
}

// DatasetReader reads rows written by DatasetWriter.
type DatasetReader struct {
	csv   *csv.Reader
	zr    *zstd.Decoder
	width int
}

func NewDatasetReader(r io.Reader, compression string) (*DatasetReader, error) {
	c, err := ParseCompression(compression)
	if err != nil {
		return nil, err
	}

	dr := &DatasetReader{width: -1}
	switch c {
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		dr.zr = zr
		r = zr
	case CompressionLZ4:
		r = lz4.NewReader(r)
	}

	dr.csv = csv.NewReader(bufio.NewReaderSize(r, 64*1024))
	dr.csv.ReuseRecord = true
	return dr, nil
}

// Read returns the next sample, or io.EOF at the end of the dataset.
func (dr *DatasetReader) Read() (Sample, error) {
	rec, err := dr.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Sample{}, io.EOF
		}
		if errors.Is(err, csv.ErrFieldCount) {
			return Sample{}, fmt.Errorf("%w: %w", ErrRowWidth, err)
		}
		return Sample{}, fmt.Errorf("read row: %w", err)
	}
	if len(rec) < 2 {
		return Sample{}, fmt.Errorf("%w: row has %d fields", ErrRowWidth, len(rec))
	}
	if dr.width < 0 {
		dr.width = len(rec) - 1
	}

	s := Sample{Features: make([]float32, len(rec)-1)}
	for i, field := range rec {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return Sample{}, fmt.Errorf("parse field %d: %w", i, err)
		}
		if i == len(rec)-1 {
			s.Label = float32(v)
		} else {
			s.Features[i] = float32(v)
		}
	}
	return s, nil
}

// Width is the feature length seen on the first row, or -1 before any row.
func (dr *DatasetReader) Width() int {
	return dr.width
}

func (dr *DatasetReader) Close() error {
	if dr.zr != nil {
		dr.zr.Close()
	}
	return nil
}

// DatasetStats summarizes a dataset.
type DatasetStats struct {
	Rows      int
	Width     int
	MeanLabel float64
	Positive  float64
}

// ReadStats reads the whole dataset. Labels >= 0.5 count as positive.
func ReadStats(r io.Reader, compression string) (*DatasetStats, error) {
	dr, err := NewDatasetReader(r, compression)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	st := &DatasetStats{Width: -1}
	var sum float64
	var pos int
	for {
		s, err := dr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", st.Rows+1, err)
		}
		st.Rows++
		sum += float64(s.Label)
		if s.Label >= 0.5 {
			pos++
		}
	}

	st.Width = dr.Width()
	if st.Rows > 0 {
		st.MeanLabel = sum / float64(st.Rows)
		st.Positive = float64(pos) / float64(st.Rows)
	}
	return st, nil
}
