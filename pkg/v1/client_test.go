package v1

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/4thel00z/greenscreen/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// setupClientTest writes pair "1" (5x5, gray 128 / fully opaque mask) and
// pair "2" (5x5) into a temp dir.
func setupClientTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, name := range []string{"1", "2"} {
		gray := image.NewGray(image.Rect(0, 0, 5, 5))
		mask := image.NewNRGBA(image.Rect(0, 0, 5, 5))
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				gray.SetGray(x, y, color.Gray{Y: 255})
				mask.SetNRGBA(x, y, color.NRGBA{A: uint8(255 * (x % 2))})
			}
		}
		writePNG(t, filepath.Join(dir, "bsp"+name+"_0.png"), gray)
		writePNG(t, filepath.Join(dir, "bsp"+name+"_1.png"), mask)
	}
	return dir
}

func TestNewDefaults(t *testing.T) {
	client, err := New()
	require.NoError(t, err)
	defer client.Close()

	offsets := client.Offsets()
	require.Len(t, offsets, 9)
	assert.Equal(t, Offset{Row: -1, Col: -1}, offsets[0])
	assert.Equal(t, Offset{Row: 1, Col: 1}, offsets[8])
	assert.Equal(t, 36, client.FeatureLen(4))
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithDelta(-1))
	assert.ErrorIs(t, err, internal.ErrInvalidDelta)

	_, err = New(WithOrdering("spiral"))
	assert.ErrorIs(t, err, internal.ErrUnknownOrder)

	_, err = New(WithDim(0, 5))
	assert.ErrorIs(t, err, internal.ErrInvalidDim)

	_, err = New(WithCompression("bz2"))
	assert.ErrorIs(t, err, internal.ErrUnknownCodec)
}

func TestCombinedOrdering(t *testing.T) {
	client, err := New(WithDelta(1), WithOrdering("rows_cols"))
	require.NoError(t, err)

	offsets := client.Offsets()
	require.Len(t, offsets, 18)
	assert.Equal(t, Offset{Row: 0, Col: -1}, offsets[9+1])
}

func TestSamples(t *testing.T) {
	dir := setupClientTest(t)
	client, err := New(WithDir(dir), WithDelta(1), WithDim(5, 5))
	require.NoError(t, err)

	seq, err := client.Samples(context.Background(), "bsp1_0.png", "bsp1_1.png")
	require.NoError(t, err)

	samples := slices.Collect(seq)
	require.Len(t, samples, 9)
	for _, s := range samples {
		require.Len(t, s.Features, 9)
		for _, v := range s.Features {
			assert.Equal(t, float32(1), v)
		}
		assert.Equal(t, float32(s.Col%2), s.Label)
	}
	assert.Equal(t, 1, samples[0].Row)
	assert.Equal(t, 3, samples[8].Col)

	assert.Empty(t, slices.Collect(seq), "sequence is single-pass")
}

func TestSamplesUnrangedSequencesHoldNothing(t *testing.T) {
	dir := setupClientTest(t)
	client, err := New(WithDir(dir), WithDelta(1), WithDim(5, 5))
	require.NoError(t, err)

	before := runtime.NumGoroutine()
	for range 50 {
		_, err := client.Samples(context.Background(), "bsp1_0.png", "bsp1_1.png")
		require.NoError(t, err)
	}
	for range 50 {
		seq, err := client.Samples(context.Background(), "bsp1_0.png", "bsp1_1.png")
		require.NoError(t, err)
		for range seq {
			break
		}
	}

	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestSamplesWithoutDimChecksPairShape(t *testing.T) {
	dir := setupClientTest(t)
	writePNG(t, filepath.Join(dir, "small.png"), image.NewGray(image.Rect(0, 0, 4, 5)))

	client, err := New(WithDir(dir))
	require.NoError(t, err)

	_, err = client.Samples(context.Background(), "bsp1_0.png", "small.png")
	var mismatch *internal.ImagePairShapeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestSamplesDimMismatch(t *testing.T) {
	dir := setupClientTest(t)
	client, err := New(WithDir(dir), WithDim(6, 5))
	require.NoError(t, err)

	_, err = client.Samples(context.Background(), "bsp1_0.png", "bsp1_1.png")
	var mismatch *internal.DimensionMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestSamplesStopsOnCancel(t *testing.T) {
	dir := setupClientTest(t)
	client, err := New(WithDir(dir), WithDim(5, 5))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	seq, err := client.Samples(ctx, "bsp1_0.png", "bsp1_1.png")
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 2 {
			cancel()
		}
	}
	assert.Equal(t, 2, n)
}

func TestWriteDataset(t *testing.T) {
	dir := setupClientTest(t)
	client, err := New(WithDir(dir), WithDim(5, 5), WithWorkers(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := client.WriteDataset(context.Background(), ".", &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Pairs)
	assert.Equal(t, 18, res.Rows)
	assert.Equal(t, 9, res.Width)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "1,1,1,1,1,1,1,1,1,1", strings.SplitN(buf.String(), "\n", 2)[0])
}

func TestWriteDatasetNeedsDim(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	_, err = client.WriteDataset(context.Background(), t.TempDir(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoDim)
}
