// Package pricing is the single authoritative place where order totals are
// computed. Every surface that shows a subtotal, tax or total (cart view,
// checkout, receipts) goes through here so the numbers can never disagree.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/xsevenai/pos-api/models"
)

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.NewFromFloat(0.08)

var (
	ErrNegativeDiscount = errors.New("discount cannot be negative")
	ErrDiscountTooLarge = errors.New("discount exceeds order total")
)

// Totals is the computed money breakdown of a cart or order. Amounts are
// rounded to 2 decimal places, half up.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Subtotal sums unit price times quantity across all line items, exactly.
func Subtotal(items []models.CartLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.UnitPrice)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Tax is TaxRate applied to a subtotal, unrounded.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// ValidateDiscount checks a discount against the payable amount: it must sit
// in [0, subtotal+tax].
func ValidateDiscount(subtotal decimal.Decimal, discount float64) error {
	d := decimal.NewFromFloat(discount)
	if d.IsNegative() {
		return ErrNegativeDiscount
	}
	if d.GreaterThan(subtotal.Add(Tax(subtotal))) {
		return ErrDiscountTooLarge
	}
	return nil
}

// Compute derives the full breakdown for a cart with the given discount.
// The discount is assumed to be validated already; Compute itself never
// produces a negative total for a valid discount.
func Compute(items []models.CartLineItem, discount float64) Totals {
	subtotal := Subtotal(items)
	tax := Tax(subtotal)
	d := decimal.NewFromFloat(discount)
	total := subtotal.Add(tax).Sub(d)

	return Totals{
		Subtotal: round2(subtotal),
		Tax:      round2(tax),
		Discount: round2(d),
		Total:    round2(total),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
