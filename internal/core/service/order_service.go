package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

const defaultPaymentMethod = "credit_card"

// OrderService implements checkout, order retrieval with ownership checks,
// and fulfillment status transitions.
type OrderService struct {
	orders ports.OrderRepository
	log    zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, log: log}
}

// CreateOrder persists a new order with status Pending. Line items are stored
// as submitted, as immutable snapshots of the purchased products. The total
// is taken from the caller without cross-checking against the item sum.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			ImageURL:  it.ImageURL,
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID: in.UserID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			FirstName: in.ShippingAddress.FirstName,
			LastName:  in.ShippingAddress.LastName,
			Address:   in.ShippingAddress.Address,
			City:      in.ShippingAddress.City,
			State:     in.ShippingAddress.State,
			Zip:       in.ShippingAddress.Zip,
			Country:   in.ShippingAddress.Country,
			Email:     in.ShippingAddress.Email,
		},
		PaymentInfo:   sanitizePayment(in.Payment),
		TotalAmount:   in.TotalAmount,
		Status:        domain.StatusPending,
		StatusHistory: []domain.StatusChange{{Status: domain.StatusPending, Timestamp: now}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to place order")
		return nil, err
	}

	s.log.Info().
		Str("order_id", created.ID).
		Str("user_id", created.UserID).
		Int("items", len(created.Items)).
		Msg("order placed")
	return created, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, callerID, userID string) ([]domain.Order, error) {
	if callerID != userID {
		return nil, domain.ErrForbidden
	}
	return s.orders.FindByUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Guest orders carry no owner and are readable by any caller holding
	// the id.
	if order.UserID != "" && order.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	// transport validates the enum too; re-check so other callers cannot
	// write a status outside the lifecycle
	if !domain.KnownStatus(next) {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.orders.SetStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")
	return updated, nil
}

// sanitizePayment reduces the raw payment input to the method tag and the
// last four card digits. The full card number and CVC never leave this
// function.
func sanitizePayment(p ports.PaymentInput) domain.PaymentInfo {
	method := strings.TrimSpace(p.Method)
	if method == "" {
		method = defaultPaymentMethod
	}

	info := domain.PaymentInfo{Method: method}
	digits := digitsOnly(p.CardNumber)
	if len(digits) >= 4 {
		info.Last4 = digits[len(digits)-4:]
	}
	return info
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
