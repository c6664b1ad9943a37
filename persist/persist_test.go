package persist

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySlotsRoundTrip(t *testing.T) {
	s := NewMemorySlots()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get: %q, %v", got, err)
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemorySlotsTTLExpiry(t *testing.T) {
	s := NewMemorySlots()
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	time.Sleep(40 * time.Millisecond)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}

	// A plain Set clears any previous deadline.
	if err := s.SetWithTTL(ctx, "k2", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	if err := s.Set(ctx, "k2", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, err := s.Get(ctx, "k2"); err != nil {
		t.Fatalf("expected k2 to survive, got %v", err)
	}
}

func TestSlotNamesAreNamespaced(t *testing.T) {
	if CartSlot("u1") == SessionSlot("u1") {
		t.Fatal("cart and session slots must not collide")
	}
	if OrderSlot("x") == CartSlot("x") {
		t.Fatal("order and cart slots must not collide")
	}
}
