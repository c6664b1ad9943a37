// Package checkout turns a cart snapshot into a frozen order and runs the
// simulated payment step. Orders live in a transient session-scoped slot and
// are not guaranteed to survive beyond it.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"vitrina/cart"
	"vitrina/models"
	"vitrina/persist"
	"vitrina/utils"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrEmptyCart = errors.New("no items in cart")
)

// orderTTL keeps the order handoff alive for the browsing session only.
const orderTTL = 30 * time.Minute

// Service owns order placement and the payment simulation. The payment
// decision function and the artificial delay are injected so tests can force
// both branches deterministically.
type Service struct {
	carts *cart.Store
	slots persist.Slots
	flip  func() bool
	delay time.Duration

	mu     sync.Mutex
	failed map[string]bool
}

// NewService wires the checkout flow. A nil flip falls back to the demo coin
// flip (90% success).
func NewService(carts *cart.Store, slots persist.Slots, flip func() bool, delay time.Duration) *Service {
	if flip == nil {
		flip = func() bool { return rand.Float64() > 0.1 }
	}
	return &Service{
		carts:  carts,
		slots:  slots,
		flip:   flip,
		delay:  delay,
		failed: make(map[string]bool),
	}
}

// PlaceOrder freezes the caller's cart into an order snapshot, writes it to
// the transient order slot, and clears the cart. The shipping address must
// already be validated by the caller.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req models.CheckoutRequest) (*models.Order, error) {
	snap := s.carts.Snapshot(userID)
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.Totals(snap.Subtotal)

	lines := make([]models.OrderLine, 0, len(snap.Items))
	for _, item := range snap.Items {
		lines = append(lines, models.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	method := req.PaymentMethod
	if method == "" {
		method = "stripe"
	}

	order := &models.Order{
		OrderID:         "ORD" + utils.GenerateRandomDigitString(10),
		UserID:          userID,
		Amount:          totals.Total,
		Currency:        "USD",
		CustomerEmail:   req.ShippingAddress.Email,
		ShippingAddress: req.ShippingAddress,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		PaymentMethod:   method,
		Status:          models.OrderPending,
		CreatedAt:       time.Now(),
	}

	if err := s.writeOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	s.carts.Clear(userID)
	return order, nil
}

// Pay runs the simulated payment step: fixed delay, then the injected coin
// flip. A failed order is terminal but retryable, and any retry settles
// successfully. Paying an already-paid order is a no-op.
func (s *Service) Pay(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.Order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderPaid {
		return order, nil
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	retry := s.failed[orderID]
	s.mu.Unlock()

	success := retry || s.flip()

	if success {
		order.Status = models.OrderPaid
		s.mu.Lock()
		delete(s.failed, orderID)
		s.mu.Unlock()
	} else {
		order.Status = models.OrderFailed
		s.mu.Lock()
		s.failed[orderID] = true
		s.mu.Unlock()
	}

	if err := s.writeOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	return order, nil
}

// Order resolves the transient snapshot, or ErrNotFound once it has expired
// with the session.
func (s *Service) Order(ctx context.Context, orderID string) (*models.Order, error) {
	raw, err := s.slots.Get(ctx, persist.OrderSlot(orderID))
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("corrupt order snapshot: %w", err)
	}
	return &order, nil
}

func (s *Service) writeOrder(ctx context.Context, order *models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.slots.SetWithTTL(ctx, persist.OrderSlot(order.OrderID), raw, orderTTL)
}

// ValidateAddress checks the required shipping fields and returns field-level
// messages for anything missing. Phone and country are optional.
func ValidateAddress(addr models.ShippingAddress) map[string]string {
	fields := make(map[string]string)
	required := []struct{ name, value string }{
		{"firstName", addr.FirstName},
		{"lastName", addr.LastName},
		{"email", addr.Email},
		{"address", addr.Street},
		{"city", addr.City},
		{"state", addr.State},
		{"zipCode", addr.ZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "This field is required"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
