package internal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDim     = errors.New("dimension must be positive")
	ErrInvalidDelta   = errors.New("delta must not be negative")
	ErrInvalidChannel = errors.New("channel out of range")
	ErrUnknownOrder   = errors.New("unknown offset ordering")
	ErrMissingMask    = errors.New("mask image not found")
	ErrNoPairs        = errors.New("no image pairs found")
	ErrRowWidth       = errors.New("inconsistent dataset row width")
	ErrUnknownCodec   = errors.New("unknown compression")
)

// DimensionMismatchError is returned when a loaded image does not have the
// expected shape.
type DimensionMismatchError struct {
	Path     string
	Actual   Dim
	Expected Dim
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("illegal dimension of image %s: %d/%d, expected: %d/%d",
		e.Path, e.Actual.Rows, e.Actual.Cols, e.Expected.Rows, e.Expected.Cols)
}

// ImagePairShapeMismatchError is returned when the color and mask image of a
// pair disagree in shape.
type ImagePairShapeMismatchError struct {
	Color Dim
	Mask  Dim
}

func (e *ImagePairShapeMismatchError) Error() string {
	return fmt.Sprintf("image pair shape mismatch: color %d/%d, mask %d/%d",
		e.Color.Rows, e.Color.Cols, e.Mask.Rows, e.Mask.Cols)
}
