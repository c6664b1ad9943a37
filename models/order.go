package models

import "time"

// Order lifecycle states.
const (
	OrderPending = "pending"
	OrderPaid    = "paid"
	OrderFailed  = "failed"
)

// ShippingAddress is the address block collected at checkout. Street carries
// the free-form street line; the JSON key matches the checkout form field.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Street    string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country,omitempty"`
}

// OrderLine is one frozen product line of an order snapshot.
type OrderLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is the frozen record of a completed checkout, handed to the
// confirmation view through the transient order slot.
type Order struct {
	OrderID         string          `json:"orderId"`
	UserID          string          `json:"userId"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	CustomerEmail   string          `json:"customerEmail"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderLine     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Tax             float64         `json:"tax"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CheckoutRequest is the payload for placing an order.
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}
