package ports

import (
	"context"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
)

// OrderItemInput is one line of a checkout request.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
	ImageURL  string
}

// ShippingAddressInput carries the delivery destination.
type ShippingAddressInput struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string
	Email     string
}

// PaymentInput is the raw payment data as submitted by the client. Only the
// method tag and the last four card digits survive into persistence; the
// card number and verification code are dropped by the service.
type PaymentInput struct {
	Method     string
	CardNumber string
	CVC        string
}

// CreateOrderInput carries everything needed to place an order. UserID is
// empty for guest checkout.
type CreateOrderInput struct {
	UserID          string
	Items           []OrderItemInput
	ShippingAddress ShippingAddressInput
	TotalAmount     float64
	Payment         PaymentInput
}

// OrderService defines checkout, order retrieval and fulfillment status
// updates.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// ListUserOrders fails with domain.ErrForbidden when callerID != userID.
	// Results are ordered newest first.
	ListUserOrders(ctx context.Context, callerID, userID string) ([]domain.Order, error)
	// GetOrder fails with domain.ErrForbidden when the order has an owner
	// other than callerID. Guest orders are readable by any caller.
	GetOrder(ctx context.Context, callerID, orderID string) (*domain.Order, error)
	// UpdateStatus validates the lifecycle transition and fails with
	// domain.ErrInvalidTransition when the state machine forbids it.
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByUser returns the user's orders sorted by creation time descending.
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// SetStatus atomically updates the status, bumps updated_at and appends a
	// history entry, returning the updated document.
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
