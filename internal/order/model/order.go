package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status string    `gorm:"type:varchar(20);not null;default:processing;index" json:"status"`

	ShippingAddress string `gorm:"type:varchar(500);not null" json:"shipping_address"`
	City            string `gorm:"type:varchar(100);not null" json:"city"`
	Country         string `gorm:"type:varchar(100);not null" json:"country"`
	PostalCode      string `gorm:"type:varchar(20);not null" json:"postal_code"`
	PhoneNumber     string `gorm:"type:varchar(20);not null" json:"phone_number"`

	PaymentID     string     `gorm:"type:varchar(255);not null" json:"payment_id"`
	PaymentStatus string     `gorm:"type:varchar(50);not null" json:"payment_status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	ItemsPrice    float64 `gorm:"not null" json:"items_price"`
	TaxPrice      float64 `gorm:"not null" json:"tax_price"`
	ShippingPrice float64 `gorm:"not null" json:"shipping_price"`
	TotalPrice    float64 `gorm:"not null" json:"total_price"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the product's name and price at purchase time, so a
// later catalog edit cannot change what the customer agreed to pay.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
