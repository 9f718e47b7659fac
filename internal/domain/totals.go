package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places amounts are rounded to
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ComputedLine is a line item together with its full precision total
type ComputedLine struct {
	LineItem
	Total decimal.Decimal
}

// UnitPriceDecimal returns the unit price as a decimal
func (l ComputedLine) UnitPriceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(l.UnitPrice)
}

// TotalsBreakdown is the itemised result of ComputeTotals.
// All amounts except the per-line totals are rounded to MoneyPlaces.
type TotalsBreakdown struct {
	Lines          []ComputedLine
	TaxRate        GSTRate
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableValue   decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// SplitTax returns the CGST and SGST halves. Each half is TaxAmount / 2
// and is not rounded on its own, so the two always add back up exactly.
func (b TotalsBreakdown) SplitTax() (cgst, sgst decimal.Decimal) {
	half := b.TaxAmount.Div(two)
	return half, half
}

// ComputeTotals turns a snapshot of line items plus discount and tax
// configuration into a totals breakdown. It has no side effects and does
// not keep a reference to lines.
//
// Line items are expected to be coerced already (see model.LenientNumber);
// any negative or non-finite quantity or price left is treated as zero.
func ComputeTotals(lines []LineItem, rate GSTRate, discount DiscountConfig) TotalsBreakdown {
	computed := make([]ComputedLine, 0, len(lines))
	subtotal := decimal.Zero

	for _, item := range lines {
		qty := amountOrZero(item.Quantity)
		price := amountOrZero(item.UnitPrice)
		lineTotal := qty.Mul(price)

		computed = append(computed, ComputedLine{
			LineItem: LineItem{
				Description: item.Description,
				Quantity:    qty.InexactFloat64(),
				UnitPrice:   price.InexactFloat64(),
			},
			Total: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	discountAmount := resolveDiscount(subtotal, discount)

	taxable := subtotal.Sub(discountAmount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	taxAmount := taxable.Mul(decimal.NewFromInt(int64(rate))).Div(hundred)

	taxableRounded := taxable.Round(MoneyPlaces)
	taxRounded := taxAmount.Round(MoneyPlaces)

	return TotalsBreakdown{
		Lines:          computed,
		TaxRate:        rate,
		Subtotal:       subtotal.Round(MoneyPlaces),
		DiscountAmount: discountAmount.Round(MoneyPlaces),
		TaxableValue:   taxableRounded,
		TaxAmount:      taxRounded,
		GrandTotal:     taxableRounded.Add(taxRounded),
	}
}

// resolveDiscount applies at most one discount variant. A fixed amount is
// not clamped to the subtotal here; the taxable value is clamped instead.
func resolveDiscount(subtotal decimal.Decimal, discount DiscountConfig) decimal.Decimal {
	switch discount.Kind {
	case DiscountPercentage:
		return subtotal.Mul(amountOrZero(discount.Value)).Div(hundred)
	case DiscountFixed:
		return amountOrZero(discount.Value)
	default:
		return decimal.Zero
	}
}

func amountOrZero(v float64) decimal.Decimal {
	if !isUsableAmount(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// isUsableAmount reports whether v is a finite, non-negative number
func isUsableAmount(v float64) bool {
	return v == v && v >= 0 && v <= maxAmount
}

// maxAmount bounds inputs well inside the float64 range so NaN/Inf never
// reach decimal conversion.
const maxAmount = 1e15
