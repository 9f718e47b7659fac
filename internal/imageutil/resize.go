package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder for logos
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder for logos
)

// DefaultMaxDimension is the default maximum dimension for resizing
const DefaultMaxDimension = 1024

// MaxPixels bounds width*height of any image we agree to decode. A small
// compressed file can declare dimensions that need gigabytes once decoded.
const MaxPixels = 25_000_000

var (
	// ErrEmptyImage is returned when no image bytes were supplied
	ErrEmptyImage = errors.New("empty image data")
	// ErrImageTooLarge is returned when the declared dimensions exceed MaxPixels
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// ResizeConfig holds configuration for image resizing
type ResizeConfig struct {
	MaxDimension int    // Maximum width or height (default 1024)
	Quality      int    // JPEG quality 1-100 (default 85)
	OutputFormat string // "png" or "jpeg" (default "png")
}

// DefaultConfig returns default resize configuration
func DefaultConfig() *ResizeConfig {
	return &ResizeConfig{
		MaxDimension: DefaultMaxDimension,
		Quality:      85,
		OutputFormat: "png",
	}
}

// Image is a decoded and re-encoded picture ready for embedding
type Image struct {
	Data   []byte // 8-bit, non-interlaced PNG
	Width  int
	Height int
	Format string // format of the source bytes
}

// Normalize decodes imageData in any registered format (PNG, JPEG, GIF,
// WebP), shrinks it to the configured max dimension and re-encodes it as an
// 8-bit RGBA PNG. PDF writers only understand a subset of PNG, so every logo
// goes through here first.
func Normalize(imageData []byte, config *ResizeConfig) (*Image, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := checkDimensions(imageData); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	newWidth, newHeight := fitWithin(bounds.Dx(), bounds.Dy(), config.MaxDimension)

	dst := image.NewNRGBA(image.Rect(0, 0, newWidth, newHeight))
	if newWidth == bounds.Dx() && newHeight == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		// Use high-quality resampling (CatmullRom is similar to Lanczos)
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Image{
		Data:   buf.Bytes(),
		Width:  newWidth,
		Height: newHeight,
		Format: format,
	}, nil
}

// ResizeImage resizes an image if it exceeds the max dimension while maintaining aspect ratio
func ResizeImage(imageData []byte, config *ResizeConfig) ([]byte, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := checkDimensions(imageData); err != nil {
		return nil, err
	}

	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	fits := width <= config.MaxDimension && height <= config.MaxDimension

	// Small images already in the requested format are returned untouched
	if fits && (config.OutputFormat == "" || sameFormat(config.OutputFormat, format)) {
		return imageData, nil
	}

	newWidth, newHeight := fitWithin(width, height, config.MaxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	if fits {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	outputFormat := config.OutputFormat
	if outputFormat == "" {
		outputFormat = format // Use original format if not specified
	}

	switch outputFormat {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: config.Quality})
	default:
		err = png.Encode(&buf, dst)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// ResizeImageReader resizes an image from an io.Reader
func ResizeImageReader(r io.Reader, config *ResizeConfig) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return ResizeImage(data, config)
}

// checkDimensions reads only the image header and rejects pictures whose
// pixel count is above MaxPixels.
func checkDimensions(imageData []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}

func sameFormat(a, b string) bool {
	canon := func(f string) string {
		f = strings.ToLower(f)
		if f == "jpg" {
			return "jpeg"
		}
		return f
	}
	return canon(a) == canon(b)
}

// fitWithin scales width and height down so neither exceeds max,
// keeping the aspect ratio. A non-positive max disables scaling.
func fitWithin(width, height, max int) (int, int) {
	if max <= 0 || (width <= max && height <= max) {
		return width, height
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = max
		newHeight = int(float64(height) * float64(max) / float64(width))
	} else {
		newHeight = max
		newWidth = int(float64(width) * float64(max) / float64(height))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	return newWidth, newHeight
}
