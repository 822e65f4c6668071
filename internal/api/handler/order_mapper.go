package handler

import (
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

func toCreateOrderInput(req createOrderRequest, userID string) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     *it.Price,
			ImageURL:  it.ImageURL,
		}
	}

	return ports.CreateOrderInput{
		UserID: userID,
		Items:  items,
		ShippingAddress: ports.ShippingAddressInput{
			FirstName: req.ShippingAddress.FirstName,
			LastName:  req.ShippingAddress.LastName,
			Address:   req.ShippingAddress.Address,
			City:      req.ShippingAddress.City,
			State:     req.ShippingAddress.State,
			Zip:       req.ShippingAddress.Zip,
			Country:   req.ShippingAddress.Country,
			Email:     req.ShippingAddress.Email,
		},
		TotalAmount: *req.TotalAmount,
		Payment: ports.PaymentInput{
			Method:     req.PaymentInfo.Method,
			CardNumber: req.PaymentInfo.CardNumber,
			CVC:        req.PaymentInfo.CVC,
		},
	}
}
