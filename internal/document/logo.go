package document

import (
	"bytes"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/ridwanfathin/gst-invoice-service/internal/imageutil"
)

const (
	logoImageName = "logo"
	// logos larger than this are downsampled before embedding
	logoMaxPixels = 1024
	// pixels are treated as points when sizing the logo on the page
	mmPerPoint = 25.4 / 72
)

type logoImage struct {
	name   string
	width  int
	height int
}

// prepareLogo normalises the raw upload and registers it with the document
func prepareLogo(pdf *gofpdf.Fpdf, raw []byte) (*logoImage, error) {
	img, err := imageutil.Normalize(raw, &imageutil.ResizeConfig{MaxDimension: logoMaxPixels})
	if err != nil {
		return nil, err
	}

	pdf.RegisterImageOptionsReader(logoImageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img.Data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return nil, err
	}

	return &logoImage{name: logoImageName, width: img.Width, height: img.Height}, nil
}

// size scales the logo down, never up, to fit within maxW x maxH mm while
// preserving its aspect ratio.
func (i *logoImage) size(maxW, maxH float64) (float64, float64) {
	w := float64(i.width) * mmPerPoint
	h := float64(i.height) * mmPerPoint
	scale := math.Min(1, math.Min(maxW/w, maxH/h))
	return w * scale, h * scale
}
