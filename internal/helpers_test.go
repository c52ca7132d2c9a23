package internal

import (
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, fsys billy.Filesystem, name string, img image.Image) {
	t.Helper()
	f, err := fsys.Create(name)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// gradientColor is an opaque RGB image whose red channel encodes the pixel
// position.
func gradientColor(rows, cols int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(y*cols + x), G: 0, B: 255, A: 255})
		}
	}
	return img
}

// checkerMask is a transparency mask with alpha 255 on even columns and 0 on
// odd ones.
func checkerMask(rows, cols int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a := uint8(0)
			if x%2 == 0 {
				a = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 255, B: 0, A: a})
		}
	}
	return img
}

func writePair(t *testing.T, fsys billy.Filesystem, cfg ImagesConfig, name string, rows, cols int) {
	t.Helper()
	colorName, maskName := cfg.PairNames(name)
	writePNG(t, fsys, colorName, gradientColor(rows, cols))
	writePNG(t, fsys, maskName, checkerMask(rows, cols))
}

func filledImage(rows, cols, channels int, v float32) *Image {
	img := NewImage(rows, cols, channels)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// smallConfig is the default config scaled down to 6x8 images.
func smallConfig(delta int) *Config {
	cfg := DefaultConfig()
	cfg.Images.Dim = Dim{Rows: 6, Cols: 8}
	cfg.Window.Delta = delta
	cfg.Workers = 2
	return cfg
}
