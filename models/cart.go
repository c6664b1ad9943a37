package models

import "time"

// CartItem represents a single line item in a user's cart: one product
// paired with a quantity of at least 1.
type CartItem struct {
	ProductID string    `json:"productId"`
	Product   Product   `json:"product"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartSnapshot is the full state of one user's cart after a mutation.
// Subtotal and ItemCount are derived aggregates, recomputed from the line
// items on every change.
type CartSnapshot struct {
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"itemCount"`
}
