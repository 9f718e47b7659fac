package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

var fixedNow = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func decodeRequest(t *testing.T, body string) *InvoiceRequest {
	t.Helper()
	var req InvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestInvoiceRequest_ToDomainDefaults(t *testing.T) {
	req := decodeRequest(t, `{"items":[{"description":"Service A","quantity":2,"unit_price":"500"}]}`)

	draft, err := req.ToDomain(fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "INV-20250102150405", draft.Meta.Number)
	assert.Equal(t, "2025-01-02", draft.Meta.Date.String())
	assert.Equal(t, domain.GST18, draft.Tax.Rate)
	assert.True(t, draft.Tax.Split)
	assert.Equal(t, domain.DiscountNone, draft.Discount.Kind)
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, 500.0, draft.Lines[0].UnitPrice)
}

func TestInvoiceRequest_ToDomainExplicit(t *testing.T) {
	req := decodeRequest(t, `{
		"company": {"name": "Fablaundry"},
		"invoice": {"number": " INV-7 ", "date": "2024-12-31", "project": "AMC"},
		"items": [{"description": "x", "quantity": "oops", "unit_price": 10}],
		"discount": {"type": "Percentage", "value": 250},
		"tax": {"rate": 5, "split": false}
	}`)

	draft, err := req.ToDomain(fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "INV-7", draft.Meta.Number)
	assert.Equal(t, "2024-12-31", draft.Meta.Date.String())
	assert.Equal(t, domain.GST5, draft.Tax.Rate)
	assert.False(t, draft.Tax.Split)
	assert.Equal(t, domain.PercentageDiscount(100), draft.Discount)
	assert.Equal(t, 0.0, draft.Lines[0].Quantity)
	assert.Equal(t, "Fablaundry", draft.Company.Name)
}

func TestInvoiceRequest_ToDomainErrors(t *testing.T) {
	_, err := decodeRequest(t, `{"tax":{"rate":12}}`).ToDomain(fixedNow)
	assert.ErrorIs(t, err, domain.ErrInvalidGSTRate)

	_, err = decodeRequest(t, `{"discount":{"type":"coupon","value":5}}`).ToDomain(fixedNow)
	assert.Error(t, err)

	_, err = decodeRequest(t, `{"invoice":{"date":"31-12-2024"}}`).ToDomain(fixedNow)
	assert.Error(t, err)
}

func TestNewTotalsResponse(t *testing.T) {
	lines := []domain.LineItem{
		{Description: "Service A", Quantity: 2, UnitPrice: 500},
		{Description: "", Quantity: 1.5, UnitPrice: 10},
	}
	tax := domain.TaxConfig{Rate: domain.GST18, Split: true}
	b := domain.ComputeTotals(lines, tax.Rate, domain.NoDiscount())

	resp := NewTotalsResponse(b, tax)

	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "1015.00", resp.Subtotal)
	assert.Equal(t, "182.70", resp.TaxAmount)
	assert.Equal(t, "91.35", resp.CGST)
	assert.Equal(t, "91.35", resp.SGST)
	assert.Equal(t, "1197.70", resp.GrandTotal)
	assert.Equal(t, "1,197.70", resp.Display.GrandTotal)
	assert.Contains(t, resp.Display.Tax, "GST (18%)")
	assert.Contains(t, resp.Display.Tax, "CGST")

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "2", resp.Lines[0].Quantity)
	assert.Equal(t, "1000.00", resp.Lines[0].Total)
	assert.Equal(t, "-", resp.Lines[1].Description)
	assert.Equal(t, "1.5", resp.Lines[1].Quantity)
	assert.Equal(t, "15.00", resp.Lines[1].Total)
}

func TestNewTotalsResponse_Combined(t *testing.T) {
	tax := domain.TaxConfig{Rate: domain.GST0, Split: false}
	b := domain.ComputeTotals(nil, tax.Rate, domain.NoDiscount())

	resp := NewTotalsResponse(b, tax)

	assert.Empty(t, resp.CGST)
	assert.Empty(t, resp.SGST)
	assert.Equal(t, "0.00", resp.GrandTotal)
	assert.NotContains(t, resp.Display.Tax, "CGST")
}

func TestNewTotalsResponse_BlankDescriptionAndHalfPaiseSplit(t *testing.T) {
	tax := domain.TaxConfig{Rate: domain.GST5, Split: true}
	lines := []domain.LineItem{{Description: "   ", Quantity: 1, UnitPrice: 1}}

	resp := NewTotalsResponse(domain.ComputeTotals(lines, tax.Rate, domain.NoDiscount()), tax)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "-", resp.Lines[0].Description)
	assert.Equal(t, "0.05", resp.TaxAmount)
	assert.Equal(t, "0.03", resp.CGST)
	assert.Equal(t, "0.03", resp.SGST)
}
