package internal

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/go-git/go-billy/v5"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a rectangular array of normalized samples in [0,1], stored
// row-major with interleaved channels.
type Image struct {
	Rows     int
	Cols     int
	Channels int
	Pix      []float32
}

func NewImage(rows, cols, channels int) *Image {
	return &Image{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		Pix:      make([]float32, rows*cols*channels),
	}
}

func (img *Image) Dim() Dim {
	return Dim{Rows: img.Rows, Cols: img.Cols}
}

func (img *Image) offset(row, col int) int {
	return (row*img.Cols + col) * img.Channels
}

// At returns the channel values of the pixel at (row, col). The slice aliases
// the image buffer.
func (img *Image) At(row, col int) []float32 {
	i := img.offset(row, col)
	return img.Pix[i : i+img.Channels : i+img.Channels]
}

func (img *Image) Value(row, col, ch int) float32 {
	return img.Pix[img.offset(row, col)+ch]
}

func (img *Image) Set(row, col int, values ...float32) {
	copy(img.Pix[img.offset(row, col):], values[:min(len(values), img.Channels)])
}

// Channel returns a single-channel copy of channel ch. Negative ch counts
// from the last channel, so Channel(-1) is the alpha channel of an RGBA image.
func (img *Image) Channel(ch int) (*Image, error) {
	if ch < 0 {
		ch += img.Channels
	}
	if ch < 0 || ch >= img.Channels {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidChannel, ch, img.Channels)
	}

	out := NewImage(img.Rows, img.Cols, 1)
	for i := range out.Pix {
		out.Pix[i] = img.Pix[i*img.Channels+ch]
	}
	return out, nil
}

// Decode reads an encoded image and converts it to normalized samples.
// Grayscale sources have one channel, opaque color sources three (RGB) and
// sources with transparency four (RGBA, not premultiplied).
func Decode(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(src), nil
}

func FromImage(src image.Image) *Image {
	b := src.Bounds()
	out := NewImage(b.Dy(), b.Dx(), channelCount(src))

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(src, x, y)
			if out.Channels == 1 {
				g := color.Gray16Model.Convert(c).(color.Gray16)
				out.Pix[i] = float32(g.Y) / 0xffff
				i++
				continue
			}
			n := toNRGBA64(c)
			out.Pix[i] = float32(n.R) / 0xffff
			out.Pix[i+1] = float32(n.G) / 0xffff
			out.Pix[i+2] = float32(n.B) / 0xffff
			if out.Channels == 4 {
				out.Pix[i+3] = float32(n.A) / 0xffff
			}
			i += out.Channels
		}
	}
	return out
}

// nrgbaAt reads non-premultiplied sources directly so that color values
// under zero alpha survive.
func nrgbaAt(src image.Image, x, y int) color.Color {
	switch m := src.(type) {
	case *image.NRGBA:
		return m.NRGBAAt(x, y)
	case *image.NRGBA64:
		return m.NRGBA64At(x, y)
	}
	return src.At(x, y)
}

func channelCount(src image.Image) int {
	switch m := src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return 4
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}

// ReadImage decodes the image at path without any shape check.
func ReadImage(fsys billy.Filesystem, path string) (*Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadImage decodes the image at path and checks that its shape equals dim.
func LoadImage(fsys billy.Filesystem, path string, dim Dim) (*Image, error) {
	img, err := ReadImage(fsys, path)
	if err != nil {
		return nil, err
	}

	if img.Rows != dim.Rows || img.Cols != dim.Cols {
		return nil, &DimensionMismatchError{Path: path, Actual: img.Dim(), Expected: dim}
	}
	return img, nil
}

func toNRGBA64(c color.Color) color.NRGBA64 {
	if n, ok := c.(color.NRGBA); ok {
		return color.NRGBA64{
			R: uint16(n.R) * 0x101,
			G: uint16(n.G) * 0x101,
			B: uint16(n.B) * 0x101,
			A: uint16(n.A) * 0x101,
		}
	}
	return color.NRGBA64Model.Convert(c).(color.NRGBA64)
}
