package internal

import (
	"fmt"
	"iter"
	"slices"
)

// Coord is a pixel position, or a relative offset when used in an offset
// list.
type Coord struct {
	Row int
	Col int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// InteriorCoordinates yields every (i, j) with i in [delta, rows-delta) and
// j in [delta, cols-delta), row-major. The sequence is empty when the margin
// leaves no interior or delta is negative.
func InteriorCoordinates(rows, cols, delta int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		if delta < 0 {
			return
		}
		for i := delta; i < rows-delta; i++ {
			for j := delta; j < cols-delta; j++ {
				if !yield(Coord{Row: i, Col: j}) {
					return
				}
			}
		}
	}
}

// InteriorCount is the number of coordinates InteriorCoordinates yields.
func InteriorCount(rows, cols, delta int) int {
	if delta < 0 {
		return 0
	}
	r, c := rows-2*delta, cols-2*delta
	if r <= 0 || c <= 0 {
		return 0
	}
	return r * c
}

func squareRows(delta int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := -delta; i <= delta; i++ {
			for j := -delta; j <= delta; j++ {
				if !yield(Coord{Row: i, Col: j}) {
					return
				}
			}
		}
	}
}

func squareCols(delta int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := -delta; i <= delta; i++ {
			for j := -delta; j <= delta; j++ {
				if !yield(Coord{Row: j, Col: i}) {
					return
				}
			}
		}
	}
}

// SquareOffsets returns the (2*delta+1)^2 offsets of a square window,
// outer loop over rows.
func SquareOffsets(delta int) []Coord {
	return slices.AppendSeq(make([]Coord, 0, windowSize(delta)), squareRows(delta))
}

// SquareOffsetsTransposed covers the same window as SquareOffsets with the
// components of every offset swapped, giving a column-first traversal.
func SquareOffsetsTransposed(delta int) []Coord {
	return slices.AppendSeq(make([]Coord, 0, windowSize(delta)), squareCols(delta))
}

// CombinedOffsets is SquareOffsets followed by SquareOffsetsTransposed.
func CombinedOffsets(delta int) []Coord {
	orderings := []func(int) iter.Seq[Coord]{squareRows, squareCols}
	all := Flatten(func(f func(int) iter.Seq[Coord]) iter.Seq[Coord] {
		return f(delta)
	}, slices.Values(orderings))
	return slices.AppendSeq(make([]Coord, 0, 2*windowSize(delta)), all)
}

func windowSize(delta int) int {
	if delta < 0 {
		return 0
	}
	side := 2*delta + 1
	return side * side
}

// Ordering selects how window offsets are laid out in a feature vector.
type Ordering string

const (
	OrderRows     Ordering = "rows"
	OrderCols     Ordering = "cols"
	OrderRowsCols Ordering = "rows_cols"
)

func ParseOrdering(s string) (Ordering, error) {
	switch o := Ordering(s); o {
	case OrderRows, OrderCols, OrderRowsCols:
		return o, nil
	case "":
		return OrderRows, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

func (o Ordering) Offsets(delta int) ([]Coord, error) {
	switch o {
	case OrderRows, "":
		return SquareOffsets(delta), nil
	case OrderCols:
		return SquareOffsetsTransposed(delta), nil
	case OrderRowsCols:
		return CombinedOffsets(delta), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, string(o))
}
