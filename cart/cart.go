package cart

import (
	"errors"
	"sync"
	"time"

	"vitrina/models"
)

var ErrBadQuantity = errors.New("quantity must be at least 1")

// Store owns every user's cart line items and their derived aggregates.
// Aggregates are recomputed from scratch after each mutation so they can
// never drift from the line items.
//
// The store enforces purchasability nowhere: an out-of-stock product is
// accepted optimistically and checkout is where enforcement would live.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem

	// onChange receives a snapshot after every mutation. Persistence hangs
	// off this hook so the transition logic stays storage-free.
	onChange func(models.CartSnapshot)
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]models.CartItem)}
}

// Subscribe registers the post-mutation snapshot hook. One subscriber is
// enough for this store; the last registration wins.
func (s *Store) Subscribe(fn func(models.CartSnapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// AddItem inserts a line item for the product or, when one exists, increments
// its quantity. At most one line item per product identity.
func (s *Store) AddItem(userID string, product models.Product, quantity int) (models.CartSnapshot, error) {
	if quantity < 1 {
		return models.CartSnapshot{}, ErrBadQuantity
	}

	s.mu.Lock()
	items := s.carts[userID]
	found := false
	for i := range items {
		if items[i].ProductID == product.ProductID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: product.ProductID,
			Product:   product,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}
	s.carts[userID] = items
	snap := s.snapshotLocked(userID)
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return snap, nil
}

// SetQuantity overwrites a line item's quantity. A quantity of zero or less
// removes the line item instead of persisting a non-positive value.
func (s *Store) SetQuantity(userID, productID string, quantity int) models.CartSnapshot {
	if quantity <= 0 {
		return s.RemoveItem(userID, productID)
	}

	s.mu.Lock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	s.carts[userID] = items
	snap := s.snapshotLocked(userID)
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return snap
}

// RemoveItem deletes the line item if present. Removing an absent item is a
// no-op, not an error.
func (s *Store) RemoveItem(userID, productID string) models.CartSnapshot {
	s.mu.Lock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	s.carts[userID] = items
	snap := s.snapshotLocked(userID)
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return snap
}

// Clear empties the cart; both aggregates reset to zero.
func (s *Store) Clear(userID string) models.CartSnapshot {
	s.mu.Lock()
	delete(s.carts, userID)
	snap := s.snapshotLocked(userID)
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return snap
}

// Restore replaces a user's cart with a persisted snapshot. Aggregates are
// recomputed rather than trusted, so a stale or hand-edited snapshot cannot
// introduce drift.
func (s *Store) Restore(snap models.CartSnapshot) models.CartSnapshot {
	s.mu.Lock()
	if len(snap.Items) == 0 {
		delete(s.carts, snap.UserID)
	} else {
		s.carts[snap.UserID] = append([]models.CartItem(nil), snap.Items...)
	}
	out := s.snapshotLocked(snap.UserID)
	s.mu.Unlock()
	return out
}

// Snapshot returns the current state of one user's cart.
func (s *Store) Snapshot(userID string) models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(userID)
}

// ItemQuantity reports the quantity of one product in the cart, zero when
// absent.
func (s *Store) ItemQuantity(userID, productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.carts[userID] {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (s *Store) snapshotLocked(userID string) models.CartSnapshot {
	items := append([]models.CartItem(nil), s.carts[userID]...)
	if items == nil {
		items = []models.CartItem{}
	}

	subtotal := 0.0
	count := 0
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
		count += item.Quantity
	}

	return models.CartSnapshot{
		UserID:    userID,
		Items:     items,
		Subtotal:  roundCents(subtotal),
		ItemCount: count,
	}
}
