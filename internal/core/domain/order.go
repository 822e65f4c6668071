package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Delivered and Cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyOrder = errors.New("order has no items")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidID = errors.New("invalid identifier")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// KnownStatus reports whether s is one of the enumerated order statuses.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased product captured at order
// time. It is never re-derived from the live product record.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
	ImageURL  string  `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
}

// ShippingAddress is the delivery destination. Every field is required,
// including the contact email so guest orders stay reachable.
type ShippingAddress struct {
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Address   string `json:"address" bson:"address"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Zip       string `json:"zip" bson:"zip"`
	Country   string `json:"country" bson:"country"`
	Email     string `json:"email" bson:"email"`
}

// PaymentInfo holds the non-sensitive remainder of the payment input. Full
// card numbers and verification codes are stripped before this struct is
// built and must never be persisted.
type PaymentInfo struct {
	Method string `json:"method" bson:"method"`
	Last4  string `json:"last4,omitempty" bson:"last4,omitempty"`
}

// StatusChange records a single transition in the order's history.
type StatusChange struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

// Order is the aggregate persisted at checkout. UserID is empty for guest
// orders.
type Order struct {
	ID              string          `json:"_id" bson:"_id,omitempty"`
	UserID          string          `json:"user,omitempty" bson:"user,omitempty"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shipping_address"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo" bson:"payment_info"`
	TotalAmount     float64         `json:"totalAmount" bson:"total_amount"`
	Status          OrderStatus     `json:"status" bson:"status"`
	StatusHistory   []StatusChange  `json:"statusHistory" bson:"status_history"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updated_at"`
}
