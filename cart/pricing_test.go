package cart

import "testing"

func TestTotalsBelowFreeShippingThreshold(t *testing.T) {
	got := Totals(80.00)

	if got.Shipping != 9.99 {
		t.Fatalf("shipping: got %v want 9.99", got.Shipping)
	}
	if got.Tax != 6.40 {
		t.Fatalf("tax: got %v want 6.40", got.Tax)
	}
	if got.Total != 96.39 {
		t.Fatalf("total: got %v want 96.39", got.Total)
	}
}

func TestTotalsAboveFreeShippingThreshold(t *testing.T) {
	got := Totals(120.00)

	if got.Shipping != 0 {
		t.Fatalf("shipping: got %v want 0", got.Shipping)
	}
	if got.Tax != 9.60 {
		t.Fatalf("tax: got %v want 9.60", got.Tax)
	}
	if got.Total != 129.60 {
		t.Fatalf("total: got %v want 129.60", got.Total)
	}
}

func TestTotalsAtExactThresholdStillShips(t *testing.T) {
	// The policy is strictly greater than the threshold.
	got := Totals(100.00)
	if got.Shipping != 9.99 {
		t.Fatalf("shipping at threshold: got %v want 9.99", got.Shipping)
	}
}
