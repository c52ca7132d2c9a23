package internal

import (
	"fmt"
	"iter"
)

// Sample is one training example: the window features around a pixel and the
// mask value at that pixel.
type Sample struct {
	Center   Coord
	Features []float32
	Label    float32
}

// SampleIterator produces the samples of one image pair on demand. It is
// single-pass: once exhausted it stays exhausted. Call GenerateSamples again
// to start over.
type SampleIterator struct {
	color   *Image
	mask    *Image
	offsets []Coord
	delta   int
	width   int
	total   int

	row, col int
	cur      Sample
	done     bool
}

// GenerateSamples streams one sample per interior pixel of the pair, in
// row-major order, using the square window of half-width delta. The label is
// the last channel of mask at the center pixel.
func GenerateSamples(color, mask *Image, delta int) (*SampleIterator, error) {
	if delta < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	return GenerateSamplesWithOffsets(color, mask, delta, SquareOffsets(delta))
}

// GenerateSamplesWithOffsets is GenerateSamples with a caller supplied offset
// list. Every offset must stay within delta of the center.
func GenerateSamplesWithOffsets(color, mask *Image, delta int, offsets []Coord) (*SampleIterator, error) {
	if delta < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelta, delta)
	}
	if color.Rows != mask.Rows || color.Cols != mask.Cols {
		return nil, &ImagePairShapeMismatchError{Color: color.Dim(), Mask: mask.Dim()}
	}

	total := InteriorCount(color.Rows, color.Cols, delta)
	return &SampleIterator{
		color:   color,
		mask:    mask,
		offsets: offsets,
		delta:   delta,
		width:   FeatureLen(color.Channels, offsets),
		total:   total,
		row:     delta,
		col:     delta,
		done:    total == 0,
	}, nil
}

// Next advances to the next sample and reports whether there is one.
func (it *SampleIterator) Next() bool {
	if it.done {
		return false
	}
	c := Coord{Row: it.row, Col: it.col}
	it.col++
	if it.col >= it.color.Cols-it.delta {
		it.col = it.delta
		it.row++
	}
	if c.Row >= it.color.Rows-it.delta {
		it.done = true
		return false
	}

	features := make([]float32, it.width)
	ExtractFeaturesInto(features, it.color, c, it.offsets)
	it.cur = Sample{
		Center:   c,
		Features: features,
		Label:    it.mask.Value(c.Row, c.Col, it.mask.Channels-1),
	}
	return true
}

// Sample returns the sample produced by the last successful Next.
func (it *SampleIterator) Sample() Sample {
	return it.cur
}

// Width is the feature vector length of every sample.
func (it *SampleIterator) Width() int {
	return it.width
}

// Len is the total number of samples the iterator yields from the start.
func (it *SampleIterator) Len() int {
	return it.total
}

// Stop ends the iterator early. Further calls to Next return false.
// Dropping an iterator without calling Stop is fine.
func (it *SampleIterator) Stop() {
	it.done = true
}

// All consumes the iterator as a range-over-func sequence.
func (it *SampleIterator) All() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		defer it.Stop()
		for it.Next() {
			if !yield(it.cur) {
				return
			}
		}
	}
}
