package document

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	return r
}

func testCompany() domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:    "Fablaundry",
		Email:   "info@fablaundry.in",
		Phone:   "+91 80 1234 5678",
		Address: "12 MG Road\nBengaluru 560001",
	}
}

func testMeta() domain.InvoiceMeta {
	return domain.InvoiceMeta{
		Number:  "INV-20250101120000",
		Date:    domain.DateOnly{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		Project: "Annual Maintenance",
	}
}

func pngLogo(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 6, G: 182, B: 212, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func render(t *testing.T, lines []domain.LineItem, tax domain.TaxConfig, discount domain.DiscountConfig, logo []byte) *Document {
	t.Helper()
	b := domain.ComputeTotals(lines, tax.Rate, discount)
	doc, err := newTestRenderer(t).Render(testCompany(), testMeta(), b, tax, logo)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")), "output must be a PDF")
	require.True(t, bytes.Contains(doc.Content, []byte("%%EOF")), "PDF must be complete")
	return doc
}

func contains(doc *Document, s string) bool {
	return bytes.Contains(doc.Content, []byte(s))
}

func TestRender_SplitGST(t *testing.T) {
	lines := []domain.LineItem{{Description: "Service A", Quantity: 2, UnitPrice: 500}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), nil)

	assert.Equal(t, 1, doc.Pages)
	assert.False(t, doc.LogoEmbedded)

	for _, s := range []string{
		"(Fablaundry)",
		"(12 MG Road)",
		"(Bengaluru 560001)",
		"(Email: info@fablaundry.in)",
		"(Phone: +91 80 1234 5678)",
		"(Invoice)",
		"(Invoice #: INV-20250101120000)",
		"(Date: 2025-01-01)",
		"(Project: Annual Maintenance)",
		"(Description)",
		"(Service A)",
		"(2)",
		"(500.00)",
		"(1000.00)",
		`(Discount \(INR\))`,
		"(-0.00)",
		`(CGST \(9%\))`,
		`(SGST \(9%\))`,
		"(90.00)",
		`(Total \(INR\))`,
		"(1180.00)",
		"(Thank you for your business.)",
		"(Authorized signatory)",
		"(Page 1 of 1)",
	} {
		assert.Truef(t, contains(doc, s), "expected %s in document", s)
	}
	assert.False(t, contains(doc, `(GST \(18%\))`))
}

func TestRender_CombinedGST(t *testing.T) {
	lines := []domain.LineItem{{Description: "Item", Quantity: 1, UnitPrice: 100}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST5, Split: false}, domain.FixedDiscount(150), nil)

	assert.True(t, contains(doc, `(GST \(5%\))`))
	assert.False(t, contains(doc, "(CGST"))
	assert.True(t, contains(doc, "(-150.00)"))
	assert.True(t, contains(doc, "(0.00)"))
}

func TestRender_EmptyLines(t *testing.T) {
	doc := render(t, nil, domain.TaxConfig{Rate: domain.GST0, Split: false}, domain.NoDiscount(), nil)

	assert.Equal(t, 1, doc.Pages)
	assert.True(t, contains(doc, "(Description)"))
	assert.True(t, contains(doc, `(Subtotal \(INR\))`))
	assert.True(t, contains(doc, `(GST \(0%\))`))
	assert.True(t, contains(doc, "(0.00)"))
	assert.True(t, contains(doc, "(Authorized signatory)"))
}

func TestRender_QuantityAndPlaceholder(t *testing.T) {
	lines := []domain.LineItem{
		{Description: "", Quantity: 2.5, UnitPrice: 10},
		{Description: "   ", Quantity: 3, UnitPrice: 1.1},
	}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), nil)

	assert.True(t, contains(doc, "(-)"))
	assert.True(t, contains(doc, "(2.5)"))
	assert.True(t, contains(doc, "(25.00)"))
	assert.True(t, contains(doc, "(3)"))
	assert.True(t, contains(doc, "(3.30)"))
	assert.False(t, contains(doc, "(3.0)"))
}

func TestRender_WithLogo(t *testing.T) {
	lines := []domain.LineItem{{Description: "Item", Quantity: 1, UnitPrice: 1}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), pngLogo(t, 120, 60))

	assert.True(t, doc.LogoEmbedded)
	assert.True(t, contains(doc, "/Subtype /Image"))
}

func TestRender_CorruptLogoIsSkipped(t *testing.T) {
	lines := []domain.LineItem{{Description: "Item", Quantity: 1, UnitPrice: 1}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), []byte("\x89PNG not really"))

	assert.False(t, doc.LogoEmbedded)
	assert.False(t, contains(doc, "/Subtype /Image"))
	assert.True(t, contains(doc, "(Fablaundry)"))
}

func TestRender_OversizedLogoIsSkipped(t *testing.T) {
	var huge bytes.Buffer
	require.NoError(t, png.Encode(&huge, image.NewGray(image.Rect(0, 0, 6000, 5000))))

	lines := []domain.LineItem{{Description: "Item", Quantity: 1, UnitPrice: 1}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), huge.Bytes())

	assert.False(t, doc.LogoEmbedded)
	assert.False(t, contains(doc, "/Subtype /Image"))
}

func TestRender_PaginatesLongTables(t *testing.T) {
	lines := make([]domain.LineItem, 80)
	for i := range lines {
		lines[i] = domain.LineItem{Description: fmt.Sprintf("Line %02d", i+1), Quantity: 1, UnitPrice: 10}
	}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: true}, domain.NoDiscount(), nil)

	require.Greater(t, doc.Pages, 1)
	assert.Equal(t, doc.Pages, bytes.Count(doc.Content, []byte("(Description) Tj")), "header row repeats on every page")
	assert.Equal(t, 1, bytes.Count(doc.Content, []byte("(Authorized signatory)")), "footer only on the last page")
	assert.True(t, contains(doc, "(Line 80)"))
	assert.True(t, contains(doc, fmt.Sprintf("(Page %d of %d)", doc.Pages, doc.Pages)))
	assert.True(t, contains(doc, "(944.00)"))
}

func TestRender_SplitsRowTallerThanPage(t *testing.T) {
	desc := strings.Repeat("maintenance\n", 399) + "handover"
	lines := []domain.LineItem{{Description: desc, Quantity: 3, UnitPrice: 41.5}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST0, Split: false}, domain.NoDiscount(), nil)

	require.Greater(t, doc.Pages, 2)
	assert.True(t, contains(doc, "(handover) Tj"))
	assert.Equal(t, 399, bytes.Count(doc.Content, []byte("(maintenance) Tj")))
	assert.Equal(t, doc.Pages, bytes.Count(doc.Content, []byte("(Description) Tj")), "header row repeats on every page")
	assert.Equal(t, 1, bytes.Count(doc.Content, []byte("(41.50) Tj")), "numeric cells only on the first piece")
	assert.Equal(t, 1, bytes.Count(doc.Content, []byte("(Authorized signatory)")))
}

func TestRender_LongAddressContinuesOnNextPage(t *testing.T) {
	company := testCompany()
	var addr []string
	for i := 1; i <= 100; i++ {
		addr = append(addr, fmt.Sprintf("Address line %03d", i))
	}
	company.Address = strings.Join(addr, "\n")

	lines := []domain.LineItem{{Description: "Item", Quantity: 1, UnitPrice: 1}}
	tax := domain.TaxConfig{Rate: domain.GST18, Split: true}
	doc, err := newTestRenderer(t).Render(company, testMeta(), domain.ComputeTotals(lines, tax.Rate, domain.NoDiscount()), tax, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, doc.Pages, 2)
	assert.True(t, contains(doc, "(Address line 100)"))
	assert.True(t, contains(doc, "(Phone: +91 80 1234 5678)"))
	assert.Equal(t, 1, bytes.Count(doc.Content, []byte("(Invoice #: INV-20250101120000)")))
	assert.Equal(t, 1, bytes.Count(doc.Content, []byte("(Authorized signatory)")))
}

func TestLinesFitting(t *testing.T) {
	assert.Equal(t, 1, linesFitting(rowHeight(1)))
	assert.Equal(t, 10, linesFitting(rowHeight(10)))
	assert.Less(t, linesFitting(2), 1)
}

func TestRender_WrapsLongDescriptions(t *testing.T) {
	long := "Annual maintenance contract covering website hosting, Python backend support, security patching and quarterly reviews"
	lines := []domain.LineItem{{Description: long, Quantity: 1, UnitPrice: 100}}
	doc := render(t, lines, domain.TaxConfig{Rate: domain.GST18, Split: false}, domain.NoDiscount(), nil)

	assert.False(t, contains(doc, "("+long+")"), "long description must wrap")
	assert.True(t, contains(doc, "(Annual maintenance contract"))
}

func TestRender_ContactPerson(t *testing.T) {
	meta := testMeta()
	meta.ContactPerson = "Laraib"
	b := domain.ComputeTotals(nil, domain.GST18, domain.NoDiscount())

	doc, err := newTestRenderer(t).Render(domain.CompanyInfo{}, meta, b, domain.TaxConfig{Rate: domain.GST18}, nil)
	require.NoError(t, err)
	assert.True(t, contains(doc, "(Contact: Laraib)"))
	assert.False(t, contains(doc, "(Email:"))
}

func TestNewRenderer_MissingFontIsFatal(t *testing.T) {
	_, err := NewRenderer(Options{FontPath: filepath.Join(t.TempDir(), "missing.ttf")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRendererUnavailable)
}

func TestLogoSize(t *testing.T) {
	wide := &logoImage{width: 1000, height: 100}
	w, h := wide.size(logoMaxWidth, logoMaxHeight)
	assert.InDelta(t, logoMaxWidth, w, 0.001)
	assert.InDelta(t, 6.0, h, 0.001)

	small := &logoImage{width: 72, height: 36}
	w, h = small.size(logoMaxWidth, logoMaxHeight)
	assert.InDelta(t, 25.4, w, 0.001)
	assert.InDelta(t, 12.7, h, 0.001)
}
