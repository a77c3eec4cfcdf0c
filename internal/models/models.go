package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog read model. The cart never writes it.
type Product struct {
	ID    uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name  string          `gorm:"not null"                          json:"name"`
	Slug  string          `gorm:"uniqueIndex;not null"              json:"slug"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"price"`
}

func (Product) TableName() string {
	return "products"
}

// CartItem is one cart entry: a user, a product and a quantity. There is at
// most one row per (user_id, product_id).
type CartItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint            `gorm:"uniqueIndex:idx_cart_user_product;not null"      json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:CASCADE"                     json:"-"`
	Quantity  decimal.Decimal `gorm:"type:numeric(10,1);not null;check:quantity > 0"  json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
