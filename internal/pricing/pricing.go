// Package pricing computes booking line and booking totals.
//
// Every function here is pure. Create and patch call the same functions so the
// stored totals are always derived from the stored inputs.
package pricing

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money crosses the wire as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

type PriceType string

const (
	PriceTypeFixed   PriceType = "fixed"
	PriceTypePerUnit PriceType = "per_unit"
	PriceTypePerHour PriceType = "per_hour"
	PriceTypeCustom  PriceType = "custom"
)

// Valid reports whether t is one of the known price types.
func (t PriceType) Valid() bool {
	switch t {
	case PriceTypeFixed, PriceTypePerUnit, PriceTypePerHour, PriceTypeCustom:
		return true
	default:
		return false
	}
}

// Line is the pricing input of a single booking item. Zero values stand in
// for missing numbers.
type Line struct {
	Type        PriceType
	UnitPrice   decimal.Decimal
	Units       decimal.Decimal
	CustomPrice decimal.Decimal
	Discount    decimal.Decimal
}

// LineTotal returns the line total after the line discount, never below zero.
// Unknown types are priced like custom.
func LineTotal(line Line) decimal.Decimal {
	var base decimal.Decimal
	switch line.Type {
	case PriceTypeFixed:
		base = line.UnitPrice
	case PriceTypePerUnit, PriceTypePerHour:
		base = line.UnitPrice.Mul(line.Units)
	default:
		base = line.CustomPrice
	}
	return NonNegative(base.Sub(line.Discount))
}

// Totals sums the line totals into a subtotal and applies the booking level
// discount.
func Totals(lineTotals []decimal.Decimal, discount decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	return subtotal, Total(subtotal, discount)
}

// Total is max(0, subtotal - discount).
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	return NonNegative(subtotal.Sub(discount))
}

func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
