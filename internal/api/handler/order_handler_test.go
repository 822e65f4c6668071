package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aurelia-jewels/storefront-api/internal/api/middleware"
	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

type stubOrderService struct {
	createFn       func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error)
	listFn         func(ctx context.Context, callerID, userID string) ([]domain.Order, error)
	getFn          func(ctx context.Context, callerID, orderID string) (*domain.Order, error)
	updateStatusFn func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderService) ListUserOrders(ctx context.Context, callerID, userID string) ([]domain.Order, error) {
	return s.listFn(ctx, callerID, userID)
}

func (s *stubOrderService) GetOrder(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	return s.getFn(ctx, callerID, orderID)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatusFn(ctx, orderID, next)
}

const validOrderBody = `{
	"items": [
		{"productId": "p1", "name": "Pearl Strand", "quantity": 1, "price": 129.5}
	],
	"shippingAddress": {
		"firstName": "Alice", "lastName": "Smith", "address": "1 Main St",
		"city": "Springfield", "state": "IL", "zip": "62704",
		"country": "US", "email": "alice@example.com"
	},
	"totalAmount": 129.5,
	"paymentInfo": {"cardNumber": "4242 4242 4242 4242", "cvc": "123"}
}`

func TestOrderHandler_Create_Guest(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		createFn: func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
			if in.UserID != "" {
				t.Fatalf("expected guest order, got user %q", in.UserID)
			}
			return &domain.Order{ID: "o1", Status: domain.StatusPending}, nil
		},
	}
	h := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Order placed successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Create_Authenticated(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		createFn: func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
			if in.UserID != "u1" {
				t.Fatalf("expected user u1, got %q", in.UserID)
			}
			return &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}, nil
		},
	}
	h := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_EmptyItems(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(&stubOrderService{
		createFn: func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
			t.Fatal("service should not be reached without items")
			return nil, nil
		},
	})

	body := strings.NewReader(`{
		"items": [],
		"shippingAddress": {
			"firstName": "Alice", "lastName": "Smith", "address": "1 Main St",
			"city": "Springfield", "state": "IL", "zip": "62704",
			"country": "US", "email": "alice@example.com"
		},
		"totalAmount": 0
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["error"] != "validation_error" {
		t.Fatalf("expected validation_error tag, got %+v", resp)
	}
}

func TestOrderHandler_ListForUser_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		listFn: func(ctx context.Context, callerID, userID string) ([]domain.Order, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/user/u2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("u2")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.ListForUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Unauthorized to view these orders" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		getFn: func(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	h := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/656a2c0a9f1b2c3d4e5f6a7b", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("656a2c0a9f1b2c3d4e5f6a7b")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
			return nil, domain.ErrInvalidTransition
		},
	}
	h := NewOrderHandler(stub)

	body := strings.NewReader(`{"status":"Delivered"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Invalid status transition" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(&stubOrderService{
		updateStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
			t.Fatal("service should not be reached for an unknown status")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"status":"Teleported"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderHandler_UpdateStatus_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubOrderService{
		updateStatusFn: func(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
			if orderID != "o1" || next != domain.StatusProcessing {
				t.Fatalf("unexpected args: %s %s", orderID, next)
			}
			return &domain.Order{ID: "o1", Status: domain.StatusProcessing}, nil
		},
	}
	h := NewOrderHandler(stub)

	body := strings.NewReader(`{"status":"Processing"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	c.Set(middleware.CtxUserID, "u1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
