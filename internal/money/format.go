// Package money formats amounts and quantities the way they appear on an
// invoice.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency conventions for the single supported locale
const (
	CurrencyCode   = "INR"
	CurrencySymbol = "₹"
)

var displayPrinter = message.NewPrinter(language.English)

// FormatAmount renders d with exactly two decimal digits, e.g. "1180.00".
// Halves round away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatNegated renders d as a negative amount, e.g. "-30.00"
func FormatNegated(d decimal.Decimal) string {
	return "-" + FormatAmount(d.Abs())
}

// FormatGrouped renders d with thousands separators, e.g. "1,180.00".
// Digits come from the decimal itself, so large amounts stay exact.
func FormatGrouped(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(whole) + "." + frac
}

// groupThousands inserts commas into an unsigned run of digits
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return displayPrinter.Sprintf("%d", n)
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatQuantity prints whole quantities without a decimal point and
// fractional ones with their shortest exact representation.
func FormatQuantity(q float64) string {
	if q == math.Trunc(q) && !math.IsInf(q, 0) {
		return strconv.FormatFloat(q, 'f', 0, 64)
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}
