package model

import "github.com/google/uuid"

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" validate:"required,max=500"`
	City            string             `json:"city" validate:"required,max=100"`
	Country         string             `json:"country" validate:"required,max=100"`
	PostalCode      string             `json:"postal_code" validate:"required,max=20"`
	PhoneNumber     string             `json:"phone_number" validate:"required,max=20"`
	PaymentID       string             `json:"payment_id" validate:"required,max=255"`
	PaymentStatus   string             `json:"payment_status" validate:"required,max=50"`
	TaxPrice        float64            `json:"tax_price" validate:"gte=0"`
	ShippingPrice   float64            `json:"shipping_price" validate:"gte=0"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered"`
}

type OrderListResponse struct {
	Orders      []Order `json:"orders"`
	TotalAmount float64 `json:"total_amount"`
}
