package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidGSTRate is returned when a rate outside the GST schedule is requested
var ErrInvalidGSTRate = errors.New("gst rate must be one of 0, 5, 18, 40")

// GSTRate is a percentage from the fixed GST schedule
type GSTRate int

// GST schedule
const (
	GST0  GSTRate = 0
	GST5  GSTRate = 5
	GST18 GSTRate = 18
	GST40 GSTRate = 40
)

// DefaultGSTRate is the rate preselected for a new invoice
const DefaultGSTRate = GST18

// GSTRates returns the schedule in ascending order
func GSTRates() []GSTRate {
	return []GSTRate{GST0, GST5, GST18, GST40}
}

// Valid reports whether r is part of the GST schedule
func (r GSTRate) Valid() bool {
	switch r {
	case GST0, GST5, GST18, GST40:
		return true
	}
	return false
}

// ParseGSTRate converts a raw percentage into a scheduled rate
func ParseGSTRate(v int) (GSTRate, error) {
	r := GSTRate(v)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidGSTRate, v)
	}
	return r, nil
}

// Percent returns the rate as a float percentage
func (r GSTRate) Percent() float64 {
	return float64(r)
}

// Label formats the rate for display, e.g. "18%"
func (r GSTRate) Label() string {
	return strconv.Itoa(int(r)) + "%"
}

// HalfLabel formats half the rate, as shown on CGST/SGST rows, e.g. "2.5%"
func (r GSTRate) HalfLabel() string {
	return strconv.FormatFloat(float64(r)/2, 'f', -1, 64) + "%"
}

// TaxConfig selects the GST rate and whether the tax is presented as
// equal CGST/SGST halves
type TaxConfig struct {
	Rate  GSTRate `json:"rate"`
	Split bool    `json:"split"`
}

// DiscountKind identifies the active discount variant
type DiscountKind string

// Discount variants
const (
	DiscountNone       DiscountKind = "none"
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Valid reports whether k is a known discount variant
func (k DiscountKind) Valid() bool {
	switch k {
	case DiscountNone, DiscountPercentage, DiscountFixed:
		return true
	}
	return false
}

// DiscountConfig is exactly one discount variant with its value.
// Percentage values are 0-100, fixed values are currency amounts.
type DiscountConfig struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// NoDiscount returns the empty discount
func NoDiscount() DiscountConfig {
	return DiscountConfig{Kind: DiscountNone}
}

// PercentageDiscount returns a percentage discount
func PercentageDiscount(p float64) DiscountConfig {
	return DiscountConfig{Kind: DiscountPercentage, Value: p}
}

// FixedDiscount returns a fixed amount discount
func FixedDiscount(amount float64) DiscountConfig {
	return DiscountConfig{Kind: DiscountFixed, Value: amount}
}
