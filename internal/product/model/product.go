package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(255);index" json:"slug"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null;default:1" json:"stock"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Ratings      float64 `gorm:"not null;default:0" json:"ratings"`
	NumOfReviews int     `gorm:"not null;default:0" json:"num_of_reviews"`

	Reviews []Review `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Review is one user's rating of a product. A user gets at most one review
// per product; submitting again replaces the rating and comment in place.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	Name      string    `gorm:"type:varchar(30);not null" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
