package models

import "time"

type Cart struct {
	CartID    uint           `gorm:"primaryKey" json:"cart_id"`
	UserID    string         `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartLineItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CartLineItem is one product/quantity pair within a cart. The
// (cart_id, product_id) pair is unique: adding a product that is already in
// the cart bumps the existing line instead of creating a duplicate.
type CartLineItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	CartID      uint      `gorm:"index;uniqueIndex:idx_cart_product" json:"-"`
	ProductID   string    `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	ProductName string    `json:"name"`
	UnitPrice   float64   `json:"price"`
	Quantity    int       `json:"quantity"` // always >= 1 while the line exists
	AddedAt     time.Time `json:"added_at"`
}
