package internal

import "fmt"

// Dim is the rows/cols shape of an image.
type Dim struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

func NewDim(rows, cols int) (Dim, error) {
	d := Dim{Rows: rows, Cols: cols}
	if err := d.Validate(); err != nil {
		return Dim{}, err
	}
	return d, nil
}

func (d Dim) Validate() error {
	if d.Rows <= 0 || d.Cols <= 0 {
		return fmt.Errorf("%w: %d/%d", ErrInvalidDim, d.Rows, d.Cols)
	}
	return nil
}

func (d Dim) String() string {
	return fmt.Sprintf("<Dim rows:%d cols:%d>", d.Rows, d.Cols)
}
