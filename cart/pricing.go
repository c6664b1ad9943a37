package cart

import "math"

// Fixed pricing policy: orders over the threshold ship free, everything else
// pays the flat rate; tax is a flat percentage of the subtotal.
const (
	FreeShippingThreshold = 100.0
	FlatShippingRate      = 9.99
	TaxRate               = 0.08
)

// OrderTotals is the full price breakdown derived from a cart subtotal. It is
// computed on demand, never stored alongside the cart.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Totals derives shipping, tax, and the grand total from a subtotal. Amounts
// are rounded to cents.
func Totals(subtotal float64) OrderTotals {
	shipping := FlatShippingRate
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := roundCents(subtotal * TaxRate)
	return OrderTotals{
		Subtotal: roundCents(subtotal),
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCents(subtotal + shipping + tax),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
