package document

import (
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/money"
)

// Page geometry in millimetres (A4 portrait)
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0

	logoMaxWidth  = 60.0
	logoMaxHeight = 30.0
	logoGap       = 4.0
	nameGap       = 6.0

	headerMinHeight = 14.0
	smallLine       = 4.0
	tableGap        = 10.0

	cellPadding    = 1.5
	textLineHeight = 4.0
	minRowHeight   = 7.0

	footerY     = pageHeight - 22.0
	tableBottom = footerY - 8.0
	pageNumberY = pageHeight - 10.0

	// 0.4pt grid
	gridLineWidth = 0.4 * 25.4 / 72
)

var columnWidths = [4]float64{90, 20, 30, 30}

type rgb struct{ r, g, b int }

var (
	gridColor   = rgb{0xe6, 0xee, 0xf8}
	headerFill  = rgb{0xf0, 0xf7, 0xff}
	textColor   = rgb{0, 0, 0}
	mutedColour = rgb{0x55, 0x55, 0x55}
)

type align int

const (
	alignLeft align = iota
	alignRight
)

// tableRow is one row of the line-item table. Column 0 wraps.
type tableRow struct {
	cells [4]string
	align [4]align
	bold  [4]bool
	fill  bool
}

type layout struct {
	pdf       *gofpdf.Fpdf
	r         *Renderer
	company   domain.CompanyInfo
	meta      domain.InvoiceMeta
	breakdown domain.TotalsBreakdown
	tax       domain.TaxConfig
	logo      *logoImage

	y     float64
	pages int
}

func (l *layout) draw() {
	l.pdf.SetFooterFunc(l.drawPageNumber)
	l.addPage()

	metaBottom := l.drawMetaBlock()
	leftBottom := l.drawHeaderBand()

	if l.pages > 1 {
		l.y = leftBottom + tableGap
	} else {
		l.y = math.Max(leftBottom, metaBottom) + tableGap
	}
	l.drawTable()
	l.drawFooter()
}

func (l *layout) addPage() {
	l.pdf.AddPage()
	l.pages++
	l.y = margin
	l.setColor(textColor)
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(l.r.fontFamily(), style, size)
}

func (l *layout) setColor(c rgb) {
	l.pdf.SetTextColor(c.r, c.g, c.b)
}

func (l *layout) text(x, y float64, s string) {
	l.pdf.Text(x, y, l.r.text(s))
}

func (l *layout) rightText(right, y float64, s string) {
	s = l.r.text(s)
	l.pdf.Text(right-l.pdf.GetStringWidth(s), y, s)
}

// drawHeaderBand draws logo, company name and contact lines on the left
// and returns the y position below them.
func (l *layout) drawHeaderBand() float64 {
	x := margin
	top := margin

	var logoW, logoH float64
	if l.logo != nil {
		w, h := l.logo.size(logoMaxWidth, logoMaxHeight)
		l.pdf.ImageOptions(l.logo.name, x, top, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		logoW = w
		logoH = h + logoGap
	}

	l.font("B", 16)
	if l.logo != nil {
		l.text(x+logoW+nameGap, top+logoH/2, l.company.Name)
	} else {
		l.text(x, top+5, l.company.Name)
	}

	y := top + math.Max(logoH, headerMinHeight)

	var contact []string
	if addr := strings.TrimRight(l.company.Address, "\r\n "); addr != "" {
		for _, line := range strings.Split(addr, "\n") {
			contact = append(contact, strings.TrimRight(line, "\r "))
		}
	}
	if l.company.Email != "" {
		contact = append(contact, "Email: "+l.company.Email)
	}
	if l.company.Phone != "" {
		contact = append(contact, "Phone: "+l.company.Phone)
	}

	l.font("", 9)
	for _, line := range contact {
		if y > tableBottom {
			l.addPage()
			l.font("", 9)
			y = margin + smallLine
		}
		l.text(x, y, line)
		y += smallLine
	}
	if l.company.Phone != "" {
		y += 2
	}
	return y
}

// drawMetaBlock draws the right-aligned invoice metadata and returns the
// y position below it.
func (l *layout) drawMetaBlock() float64 {
	right := pageWidth - margin
	y := margin + 4

	l.font("B", 12)
	l.rightText(right, y, "Invoice")

	l.font("", 9)
	y += 5
	l.rightText(right, y, "Invoice #: "+l.meta.Number)
	y += smallLine
	l.rightText(right, y, "Date: "+l.meta.Date.String())
	y += smallLine
	l.rightText(right, y, "Project: "+l.meta.Project)
	if l.meta.ContactPerson != "" {
		y += smallLine
		l.rightText(right, y, "Contact: "+l.meta.ContactPerson)
	}
	return y + smallLine
}

func (l *layout) drawTable() {
	l.pdf.SetLineWidth(gridLineWidth)
	l.pdf.SetDrawColor(gridColor.r, gridColor.g, gridColor.b)
	l.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)

	l.drawRow(l.headerRow(), false)
	for _, row := range l.itemRows() {
		l.drawRow(row, true)
	}
	for _, row := range l.totalRows() {
		l.drawRow(row, true)
	}
}

func (l *layout) headerRow() tableRow {
	cur := l.r.currencyLabel()
	return tableRow{
		cells: [4]string{"Description", "Qty", fmt.Sprintf("Unit Price (%s)", cur), fmt.Sprintf("Total (%s)", cur)},
		bold:  [4]bool{true, true, true, true},
		fill:  true,
	}
}

func (l *layout) itemRows() []tableRow {
	rows := make([]tableRow, 0, len(l.breakdown.Lines))
	for _, line := range l.breakdown.Lines {
		rows = append(rows, tableRow{
			cells: [4]string{
				line.DisplayDescription(),
				money.FormatQuantity(line.Quantity),
				money.FormatAmount(line.UnitPriceDecimal()),
				money.FormatAmount(line.Total),
			},
			align: [4]align{alignLeft, alignRight, alignRight, alignRight},
		})
	}
	return rows
}

func (l *layout) totalRows() []tableRow {
	cur := l.r.currencyLabel()
	b := l.breakdown

	row := func(label, value string) tableRow {
		return tableRow{
			cells: [4]string{"", "", label, value},
			align: [4]align{alignLeft, alignRight, alignRight, alignRight},
		}
	}

	rows := []tableRow{
		row(fmt.Sprintf("Subtotal (%s)", cur), money.FormatAmount(b.Subtotal)),
		row(fmt.Sprintf("Discount (%s)", cur), money.FormatNegated(b.DiscountAmount)),
		row(fmt.Sprintf("Taxable Value (%s)", cur), money.FormatAmount(b.TaxableValue)),
	}

	if l.tax.Split {
		cgst, sgst := b.SplitTax()
		half := b.TaxRate.HalfLabel()
		rows = append(rows,
			row(fmt.Sprintf("CGST (%s)", half), money.FormatAmount(cgst)),
			row(fmt.Sprintf("SGST (%s)", half), money.FormatAmount(sgst)),
		)
	} else {
		rows = append(rows, row(fmt.Sprintf("GST (%s)", b.TaxRate.Label()), money.FormatAmount(b.TaxAmount)))
	}

	grand := row(fmt.Sprintf("Total (%s)", cur), money.FormatAmount(b.GrandTotal))
	grand.bold[2], grand.bold[3] = true, true
	return append(rows, grand)
}

// drawRow draws a bordered row, starting a new page first when the row
// would run into the footer zone. Body rows repeat the header on the new page.
// A row taller than a whole page is split across pages; the numeric cells
// appear only on its first piece.
func (l *layout) drawRow(row tableRow, repeatHeader bool) {
	l.font("", 9)
	lines := l.wrap(row.cells[0], columnWidths[0]-2*cellPadding, row.bold[0])

	// where rows start on a fresh page
	top := margin
	if repeatHeader {
		top += minRowHeight
	}

	for {
		height := rowHeight(len(lines))
		if l.y+height <= tableBottom {
			l.drawCells(row, lines, height)
			return
		}
		if l.y > top && height <= tableBottom-top {
			l.newTablePage(repeatHeader)
			continue
		}

		n := linesFitting(tableBottom - l.y)
		if n < 1 {
			l.newTablePage(repeatHeader)
			continue
		}
		l.drawCells(row, lines[:n], rowHeight(n))
		lines = lines[n:]
		row.cells[1], row.cells[2], row.cells[3] = "", "", ""
		l.newTablePage(repeatHeader)
	}
}

func (l *layout) newTablePage(repeatHeader bool) {
	l.addPage()
	l.pdf.SetLineWidth(gridLineWidth)
	l.pdf.SetDrawColor(gridColor.r, gridColor.g, gridColor.b)
	l.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	if repeatHeader {
		l.drawRow(l.headerRow(), false)
	}
}

func (l *layout) drawCells(row tableRow, descLines []string, height float64) {
	x := margin
	style := "D"
	if row.fill {
		style = "FD"
	}

	for i, w := range columnWidths {
		l.pdf.Rect(x, l.y, w, height, style)

		if row.bold[i] {
			l.font("B", 9)
		} else {
			l.font("", 9)
		}

		if i == 0 {
			ty := l.y + cellPadding + textLineHeight - 1
			for _, line := range descLines {
				l.pdf.Text(x+cellPadding, ty, line)
				ty += textLineHeight
			}
		} else if row.cells[i] != "" {
			s := l.r.text(row.cells[i])
			ty := l.y + cellPadding + textLineHeight - 1
			tx := x + cellPadding
			if row.align[i] == alignRight {
				tx = x + w - cellPadding - l.pdf.GetStringWidth(s)
			}
			l.pdf.Text(tx, ty, s)
		}
		x += w
	}

	l.y += height
}

func rowHeight(lines int) float64 {
	return math.Max(minRowHeight, float64(lines)*textLineHeight+2*cellPadding)
}

// linesFitting is the number of wrapped lines a row can hold in space mm.
func linesFitting(space float64) int {
	return int(math.Floor((space - 2*cellPadding) / textLineHeight))
}

// wrap splits s into lines no wider than width in the current font.
// Words longer than a line are broken by rune.
func (l *layout) wrap(s string, width float64, bold bool) []string {
	if bold {
		l.font("B", 9)
	}
	defer l.font("", 9)

	s = l.r.text(s)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, word := range words {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if l.pdf.GetStringWidth(candidate) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			cur = ""
			for _, part := range l.breakWord(word, width) {
				if cur != "" {
					lines = append(lines, cur)
				}
				cur = part
			}
		}
		lines = append(lines, cur)
	}
	return lines
}

func (l *layout) breakWord(word string, width float64) []string {
	if l.pdf.GetStringWidth(word) <= width {
		return []string{word}
	}
	var parts []string
	cur := ""
	for _, unit := range l.units(word) {
		next := cur + unit
		if cur != "" && l.pdf.GetStringWidth(next) > width {
			parts = append(parts, cur)
			next = unit
		}
		cur = next
	}
	return append(parts, cur)
}

// units splits s into drawable characters: runes for a Unicode font, bytes
// for the cp1252 encoded built-in fonts.
func (l *layout) units(s string) []string {
	var out []string
	if l.r.opts.FontPath != "" {
		for _, r := range s {
			out = append(out, string(r))
		}
		return out
	}
	for i := 0; i < len(s); i++ {
		out = append(out, s[i:i+1])
	}
	return out
}

func (l *layout) drawFooter() {
	l.font("", 9)
	l.setColor(textColor)
	l.text(margin, footerY, l.r.opts.CourtesyLine)
	l.rightText(pageWidth-margin, footerY, "Authorized signatory")
}

func (l *layout) drawPageNumber() {
	l.font("", 7)
	l.setColor(mutedColour)
	label := fmt.Sprintf("Page %d of {nb}", l.pdf.PageNo())
	w := l.pdf.GetStringWidth(label)
	l.pdf.Text((pageWidth-w)/2, pageNumberY, label)
	l.setColor(textColor)
}
