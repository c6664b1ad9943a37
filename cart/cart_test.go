package cart

import (
	"testing"

	"vitrina/models"
)

func product(id string, price float64) models.Product {
	return models.Product{ProductID: id, Name: "Product " + id, Price: price, InStock: true}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	s := NewStore()
	p := product("p1", 10)

	if _, err := s.AddItem("u1", p, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	snap, err := s.AddItem("u1", p, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", snap.Items[0].Quantity)
	}
	if snap.ItemCount != 5 {
		t.Fatalf("expected itemCount 5, got %d", snap.ItemCount)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	s := NewStore()
	if _, err := s.AddItem("u1", product("p1", 10), 0); err != ErrBadQuantity {
		t.Fatalf("expected ErrBadQuantity, got %v", err)
	}
	if _, err := s.AddItem("u1", product("p1", 10), -3); err != ErrBadQuantity {
		t.Fatalf("expected ErrBadQuantity, got %v", err)
	}
}

func TestSetQuantityZeroRemovesLineItem(t *testing.T) {
	s := NewStore()
	if _, err := s.AddItem("u1", product("p1", 25), 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	snap := s.SetQuantity("u1", "p1", 0)
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(snap.Items))
	}
	if snap.ItemCount != 0 || snap.Subtotal != 0 {
		t.Fatalf("expected zero aggregates, got count=%d subtotal=%v", snap.ItemCount, snap.Subtotal)
	}
}

func TestAggregatesNeverDrift(t *testing.T) {
	s := NewStore()
	pa := product("a", 12.5)
	pb := product("b", 3.25)
	pc := product("c", 99.99)

	s.AddItem("u1", pa, 2)
	s.AddItem("u1", pb, 1)
	s.AddItem("u1", pc, 4)
	s.SetQuantity("u1", "b", 7)
	s.RemoveItem("u1", "c")
	s.AddItem("u1", pa, 1)
	snap := s.SetQuantity("u1", "a", 3)

	wantCount := 0
	wantSubtotal := 0.0
	for _, item := range snap.Items {
		wantCount += item.Quantity
		wantSubtotal += item.Product.Price * float64(item.Quantity)
	}
	if snap.ItemCount != wantCount {
		t.Fatalf("itemCount drifted: got %d want %d", snap.ItemCount, wantCount)
	}
	if snap.Subtotal != roundCents(wantSubtotal) {
		t.Fatalf("subtotal drifted: got %v want %v", snap.Subtotal, roundCents(wantSubtotal))
	}
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem("u1", product("p1", 10), 1)

	snap := s.RemoveItem("u1", "nope")
	if len(snap.Items) != 1 {
		t.Fatalf("expected cart untouched, got %d items", len(snap.Items))
	}
}

func TestClearResetsAggregates(t *testing.T) {
	s := NewStore()
	s.AddItem("u1", product("p1", 10), 3)
	s.AddItem("u1", product("p2", 5), 1)

	snap := s.Clear("u1")
	if len(snap.Items) != 0 || snap.ItemCount != 0 || snap.Subtotal != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.AddItem("u1", product("p1", 10), 1)
	s.AddItem("u2", product("p1", 10), 5)

	if got := s.ItemQuantity("u1", "p1"); got != 1 {
		t.Fatalf("u1 quantity: got %d want 1", got)
	}
	if got := s.ItemQuantity("u2", "p1"); got != 5 {
		t.Fatalf("u2 quantity: got %d want 5", got)
	}
}

func TestSubscriberSeesEveryMutation(t *testing.T) {
	s := NewStore()
	var seen []models.CartSnapshot
	s.Subscribe(func(snap models.CartSnapshot) {
		seen = append(seen, snap)
	})

	s.AddItem("u1", product("p1", 10), 2)
	s.SetQuantity("u1", "p1", 4)
	s.RemoveItem("u1", "p1")
	s.Clear("u1")

	if len(seen) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(seen))
	}
	if seen[1].ItemCount != 4 {
		t.Fatalf("second snapshot itemCount: got %d want 4", seen[1].ItemCount)
	}
	if seen[3].ItemCount != 0 {
		t.Fatalf("final snapshot should be empty, got %d", seen[3].ItemCount)
	}
}

func TestRestoreRecomputesAggregates(t *testing.T) {
	s := NewStore()

	// Persisted aggregates are deliberately wrong; Restore must not trust them.
	stale := models.CartSnapshot{
		UserID: "u1",
		Items: []models.CartItem{
			{ProductID: "p1", Product: product("p1", 20), Quantity: 2},
		},
		Subtotal:  999,
		ItemCount: 99,
	}

	snap := s.Restore(stale)
	if snap.Subtotal != 40 {
		t.Fatalf("subtotal: got %v want 40", snap.Subtotal)
	}
	if snap.ItemCount != 2 {
		t.Fatalf("itemCount: got %d want 2", snap.ItemCount)
	}
}
