package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
	"github.com/ridwanfathin/gst-invoice-service/internal/money"
)

// LineItemDTO represents a single invoice row as submitted by the form
type LineItemDTO struct {
	Description string        `json:"description"`
	Quantity    LenientNumber `json:"quantity" swaggertype:"number"`
	UnitPrice   LenientNumber `json:"unit_price" swaggertype:"number"`
}

// DiscountDTO selects one discount variant: none, percentage or fixed
type DiscountDTO struct {
	Type  string        `json:"type" binding:"omitempty,discount_type" example:"percentage"`
	Value LenientNumber `json:"value" swaggertype:"number"`
}

// TaxDTO selects the GST rate and CGST/SGST presentation.
// Missing values default to 18% and split.
type TaxDTO struct {
	Rate  *int  `json:"rate" binding:"omitempty,gst_rate" example:"18"`
	Split *bool `json:"split" example:"true"`
}

// InvoiceMetaDTO carries the metadata block fields
type InvoiceMetaDTO struct {
	Number        string `json:"number" example:"INV-20250101120000"`
	Date          string `json:"date" binding:"omitempty,datetime=2006-01-02" example:"2025-01-01"` // Format: YYYY-MM-DD
	Project       string `json:"project"`
	ContactPerson string `json:"contact_person"`
}

// CompanyDTO carries the issuing company header fields
type CompanyDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// InvoiceRequest is the full form snapshot used for totals and rendering
type InvoiceRequest struct {
	CompanyID string         `json:"company_id,omitempty"`
	Company   CompanyDTO     `json:"company"`
	Invoice   InvoiceMetaDTO `json:"invoice"`
	Items     []LineItemDTO  `json:"items"`
	Discount  DiscountDTO    `json:"discount"`
	Tax       TaxDTO         `json:"tax"`
}

// ToDomain converts the request into a domain draft. Numbers were already
// coerced while decoding; only the GST rate, discount type and date can fail.
func (r *InvoiceRequest) ToDomain(now time.Time) (*domain.InvoiceDraft, error) {
	rate := domain.DefaultGSTRate
	if r.Tax.Rate != nil {
		parsed, err := domain.ParseGSTRate(*r.Tax.Rate)
		if err != nil {
			return nil, err
		}
		rate = parsed
	}

	split := true
	if r.Tax.Split != nil {
		split = *r.Tax.Split
	}

	discount, err := r.Discount.toDomain()
	if err != nil {
		return nil, err
	}

	meta := domain.InvoiceMeta{
		Number:        strings.TrimSpace(r.Invoice.Number),
		Project:       r.Invoice.Project,
		ContactPerson: r.Invoice.ContactPerson,
	}
	if meta.Number == "" {
		meta.Number = domain.NewInvoiceNumber(now)
	}
	if r.Invoice.Date == "" {
		meta.Date = domain.DateOnly{Time: now}
	} else {
		date, err := time.Parse(domain.DateLayout, r.Invoice.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid invoice date %q: expected YYYY-MM-DD", r.Invoice.Date)
		}
		meta.Date = domain.DateOnly{Time: date}
	}

	lines := make([]domain.LineItem, len(r.Items))
	for i, item := range r.Items {
		lines[i] = domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity.Float64(),
			UnitPrice:   item.UnitPrice.Float64(),
		}
	}

	return &domain.InvoiceDraft{
		CompanyID: strings.TrimSpace(r.CompanyID),
		Company:   r.Company.ToDomain(),
		Meta:      meta,
		Lines:     lines,
		Discount:  discount,
		Tax:       domain.TaxConfig{Rate: rate, Split: split},
	}, nil
}

func (d DiscountDTO) toDomain() (domain.DiscountConfig, error) {
	switch domain.DiscountKind(strings.ToLower(strings.TrimSpace(d.Type))) {
	case "", domain.DiscountNone:
		return domain.NoDiscount(), nil
	case domain.DiscountPercentage:
		return domain.PercentageDiscount(clampPercent(d.Value.Float64())), nil
	case domain.DiscountFixed:
		return domain.FixedDiscount(d.Value.Float64()), nil
	default:
		return domain.DiscountConfig{}, fmt.Errorf("unknown discount type %q", d.Type)
	}
}

// LineTotalDTO is a computed row formatted for display
type LineTotalDTO struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// TotalsDisplayDTO mirrors the summary panel of the form
type TotalsDisplayDTO struct {
	Subtotal     string `json:"subtotal"`
	Discount     string `json:"discount"`
	TaxableValue string `json:"taxable_value"`
	Tax          string `json:"tax"`
	GrandTotal   string `json:"grand_total"`
}

// TotalsResponse is the breakdown returned by the totals preview endpoint
type TotalsResponse struct {
	Currency     string           `json:"currency" example:"INR"`
	Lines        []LineTotalDTO   `json:"lines"`
	Subtotal     string           `json:"subtotal" example:"1000.00"`
	Discount     string           `json:"discount" example:"0.00"`
	TaxableValue string           `json:"taxable_value" example:"1000.00"`
	TaxRate      int              `json:"tax_rate" example:"18"`
	TaxAmount    string           `json:"tax_amount" example:"180.00"`
	Split        bool             `json:"split"`
	CGST         string           `json:"cgst,omitempty" example:"90.00"`
	SGST         string           `json:"sgst,omitempty" example:"90.00"`
	GrandTotal   string           `json:"grand_total" example:"1180.00"`
	Display      TotalsDisplayDTO `json:"display"`
}

// NewTotalsResponse formats a breakdown for the API
func NewTotalsResponse(b domain.TotalsBreakdown, tax domain.TaxConfig) *TotalsResponse {
	resp := &TotalsResponse{
		Currency:     money.CurrencyCode,
		Lines:        make([]LineTotalDTO, len(b.Lines)),
		Subtotal:     money.FormatAmount(b.Subtotal),
		Discount:     money.FormatAmount(b.DiscountAmount),
		TaxableValue: money.FormatAmount(b.TaxableValue),
		TaxRate:      int(b.TaxRate),
		TaxAmount:    money.FormatAmount(b.TaxAmount),
		Split:        tax.Split,
		GrandTotal:   money.FormatAmount(b.GrandTotal),
	}

	for i, line := range b.Lines {
		resp.Lines[i] = LineTotalDTO{
			Description: line.DisplayDescription(),
			Quantity:    money.FormatQuantity(line.Quantity),
			UnitPrice:   money.FormatAmount(line.UnitPriceDecimal()),
			Total:       money.FormatAmount(line.Total),
		}
	}

	taxLine := fmt.Sprintf("GST (%s) = %s %s", b.TaxRate.Label(), money.CurrencySymbol, money.FormatAmount(b.TaxAmount))
	if tax.Split {
		cgst, sgst := b.SplitTax()
		resp.CGST = money.FormatAmount(cgst)
		resp.SGST = money.FormatAmount(sgst)
		taxLine += fmt.Sprintf(" → CGST %s %s + SGST %s %s",
			money.CurrencySymbol, resp.CGST, money.CurrencySymbol, resp.SGST)
	}

	resp.Display = TotalsDisplayDTO{
		Subtotal:     money.FormatGrouped(b.Subtotal),
		Discount:     money.FormatGrouped(b.DiscountAmount),
		TaxableValue: money.FormatGrouped(b.TaxableValue),
		Tax:          taxLine,
		GrandTotal:   money.FormatGrouped(b.GrandTotal),
	}
	return resp
}

// InvoiceNumberResponse carries a freshly generated invoice number
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number" example:"INV-20250101120000"`
}

// GSTRatesResponse lists the GST schedule
type GSTRatesResponse struct {
	Rates   []int `json:"rates" example:"0,5,18,40"`
	Default int   `json:"default" example:"18"`
}
