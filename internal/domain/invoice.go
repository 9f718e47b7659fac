package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date format printed on invoices and accepted over the API
const DateLayout = "2006-01-02"

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}

// String formats the date as YYYY-MM-DD
func (d DateOnly) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// LineItem represents a single row of the invoice table
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// NewLineItem returns a row with the defaults a fresh form row starts with
func NewLineItem() LineItem {
	return LineItem{Quantity: 1, UnitPrice: 0}
}

// DisplayDescription is the description as printed; blank or
// whitespace-only descriptions become "-".
func (l LineItem) DisplayDescription() string {
	if strings.TrimSpace(l.Description) == "" {
		return "-"
	}
	return l.Description
}

// CompanyInfo is the issuing company printed in the header band
type CompanyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// IsEmpty reports whether no company field has been supplied
func (c CompanyInfo) IsEmpty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == "" && c.Address == ""
}

// InvoiceMeta holds the metadata block of the invoice.
// Number is treated as an opaque string.
type InvoiceMeta struct {
	Number        string   `json:"number"`
	Date          DateOnly `json:"date"`
	Project       string   `json:"project"`
	ContactPerson string   `json:"contact_person,omitempty"`
}

// NewInvoiceNumber builds the timestamp-derived default invoice number.
// Callers generate it once per session and pass it along like any other
// user supplied number.
func NewInvoiceNumber(now time.Time) string {
	return "INV-" + now.Format("20060102150405")
}

// InvoiceDraft is everything needed to compute and render one invoice
type InvoiceDraft struct {
	CompanyID string
	Company   CompanyInfo
	Meta      InvoiceMeta
	Lines     []LineItem
	Discount  DiscountConfig
	Tax       TaxConfig
}

// Totals runs the totals engine over the draft's line items
func (d *InvoiceDraft) Totals() TotalsBreakdown {
	return ComputeTotals(d.Lines, d.Tax.Rate, d.Discount)
}
