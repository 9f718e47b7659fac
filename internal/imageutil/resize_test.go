package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_KeepsSmallImage(t *testing.T) {
	out, err := Normalize(encodePNG(t, 40, 20), nil)
	require.NoError(t, err)

	assert.Equal(t, 40, out.Width)
	assert.Equal(t, 20, out.Height)
	assert.Equal(t, "png", out.Format)

	decoded, format, err := image.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 40, decoded.Bounds().Dx())
}

func TestNormalize_ShrinksAndConvertsJPEG(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 300, 150))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	out, err := Normalize(buf.Bytes(), &ResizeConfig{MaxDimension: 100})
	require.NoError(t, err)

	assert.Equal(t, "jpeg", out.Format)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, cfg.Width)
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"), nil)
	assert.Error(t, err)

	_, err = Normalize(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestDecoders_RejectOversizedImages(t *testing.T) {
	// An all-zero grayscale PNG compresses to a few kilobytes.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 6000, 5000))))
	huge := buf.Bytes()

	_, err := Normalize(huge, nil)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = ResizeImage(huge, nil)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestResizeImage(t *testing.T) {
	small := encodePNG(t, 10, 10)
	out, err := ResizeImage(small, &ResizeConfig{MaxDimension: 20})
	require.NoError(t, err)
	assert.Equal(t, small, out)

	out, err = ResizeImage(encodePNG(t, 40, 80), &ResizeConfig{MaxDimension: 20, OutputFormat: "png"})
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestResizeImage_ConvertsSmallJPEGToPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4)), nil))

	out, err := ResizeImageReader(&buf, &ResizeConfig{MaxDimension: 100, OutputFormat: "png"})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(2000, 10, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)

	w, h = fitWithin(50, 60, 0)
	assert.Equal(t, 50, w)
	assert.Equal(t, 60, h)
}
