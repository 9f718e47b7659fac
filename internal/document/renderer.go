// Package document lays out a computed invoice as a fixed-format A4 PDF.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/money"
)

const (
	coreFontFamily = "Helvetica"
	utf8FontFamily = "InvoiceSans"

	// DefaultCourtesyLine is printed at the bottom left of the last page
	DefaultCourtesyLine = "Thank you for your business."
)

// ErrRendererUnavailable wraps any failure of the startup self check
var ErrRendererUnavailable = errors.New("pdf renderer unavailable")

// Options configures a Renderer
type Options struct {
	// FontPath is an optional TrueType font used for all text. Without it
	// the built-in Helvetica is used and the currency is labelled "INR".
	FontPath string
	// BoldFontPath defaults to FontPath
	BoldFontPath string
	// CourtesyLine defaults to DefaultCourtesyLine
	CourtesyLine string
	// Compress enables stream compression in the output
	Compress bool
	Creator  string
	Logger   zerolog.Logger
}

// Document is a rendered invoice
type Document struct {
	Content      []byte
	Pages        int
	LogoEmbedded bool
}

// Renderer produces invoice PDFs. It holds no per-document state and is
// safe for concurrent use.
type Renderer struct {
	opts Options
	tr   func(string) string
}

// NewRenderer validates the drawing setup by rendering a blank page.
// Callers should treat an error as fatal at startup.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.CourtesyLine == "" {
		opts.CourtesyLine = DefaultCourtesyLine
	}
	if opts.Creator == "" {
		opts.Creator = "gst-invoice-service"
	}
	if opts.FontPath != "" {
		if opts.BoldFontPath == "" {
			opts.BoldFontPath = opts.FontPath
		}
		for _, p := range []string{opts.FontPath, opts.BoldFontPath} {
			if _, err := os.Stat(p); err != nil {
				return nil, fmt.Errorf("%w: font %s: %v", ErrRendererUnavailable, p, err)
			}
		}
	}

	r := &Renderer{opts: opts}
	r.tr = gofpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")

	pdf := r.newPDF()
	pdf.AddPage()
	pdf.SetFont(r.fontFamily(), "", 9)
	pdf.Text(margin, margin, r.text(opts.CourtesyLine))
	if err := pdf.Output(io.Discard); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}

	return r, nil
}

// Render lays out the invoice. An undecodable logo is logged and skipped;
// any other failure returns an error and no output.
func (r *Renderer) Render(company domain.CompanyInfo, meta domain.InvoiceMeta, breakdown domain.TotalsBreakdown, tax domain.TaxConfig, logo []byte) (*Document, error) {
	pdf := r.newPDF()
	pdf.SetTitle("Invoice "+meta.Number, true)
	pdf.SetSubject(company.Name, true)

	l := &layout{
		pdf:       pdf,
		r:         r,
		company:   company,
		meta:      meta,
		breakdown: breakdown,
		tax:       tax,
	}

	if len(logo) > 0 {
		img, err := prepareLogo(pdf, logo)
		if err != nil {
			r.opts.Logger.Warn().Err(err).
				Str("invoice_number", meta.Number).
				Int("logo_bytes", len(logo)).
				Msg("logo could not be decoded, rendering without it")
		} else {
			l.logo = img
		}
	}

	l.draw()

	if pdf.Err() {
		return nil, fmt.Errorf("render invoice %s: %w", meta.Number, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write invoice %s: %w", meta.Number, err)
	}

	return &Document{
		Content:      buf.Bytes(),
		Pages:        l.pages,
		LogoEmbedded: l.logo != nil,
	}, nil
}

func (r *Renderer) newPDF() *gofpdf.Fpdf {
	fontDir := ""
	if r.opts.FontPath != "" {
		fontDir = filepath.Dir(r.opts.FontPath)
	}

	pdf := gofpdf.New("P", "mm", "A4", fontDir)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.opts.Compress)
	pdf.SetCreator(r.opts.Creator, true)
	pdf.AliasNbPages("")

	if r.opts.FontPath != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", filepath.Base(r.opts.FontPath))
		pdf.AddUTF8Font(utf8FontFamily, "B", relativeTo(fontDir, r.opts.BoldFontPath))
	}
	return pdf
}

func (r *Renderer) fontFamily() string {
	if r.opts.FontPath != "" {
		return utf8FontFamily
	}
	return coreFontFamily
}

// currencyLabel is the symbol when a Unicode font is loaded, else the code
func (r *Renderer) currencyLabel() string {
	if r.opts.FontPath != "" {
		return money.CurrencySymbol
	}
	return money.CurrencyCode
}

// text converts UTF-8 input for the built-in fonts, which use cp1252
func (r *Renderer) text(s string) string {
	if r.opts.FontPath != "" {
		return s
	}
	return r.tr(s)
}

func relativeTo(dir, p string) string {
	if rel, err := filepath.Rel(dir, p); err == nil {
		return rel
	}
	return p
}
