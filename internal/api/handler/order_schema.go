package handler

// Request DTOs for the order endpoints. These are intentionally separate from
// ports/domain types so the JSON contract is not coupled to internal service
// changes.

type orderItemRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Name      string   `json:"name"      validate:"required"`
	Quantity  int      `json:"quantity"  validate:"required,min=1"`
	Price     *float64 `json:"price"     validate:"required,gte=0"`
	ImageURL  string   `json:"imageUrl"`
}

type shippingAddressRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Address   string `json:"address"   validate:"required"`
	City      string `json:"city"      validate:"required"`
	State     string `json:"state"     validate:"required"`
	Zip       string `json:"zip"       validate:"required"`
	Country   string `json:"country"   validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
}

// paymentInfoRequest accepts what a checkout form submits. Only the method
// and the trailing four card digits survive into the persisted order.
type paymentInfoRequest struct {
	Method     string `json:"method"`
	CardNumber string `json:"cardNumber"`
	CVC        string `json:"cvc"`
}

type createOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shippingAddress" validate:"required"`
	Items           []orderItemRequest     `json:"items"           validate:"required,min=1,dive"`
	TotalAmount     *float64               `json:"totalAmount"     validate:"required,gte=0"`
	PaymentInfo     paymentInfoRequest     `json:"paymentInfo"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}
