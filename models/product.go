package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string         `gorm:"primaryKey" json:"id"` // e.g. "P001"
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Available   bool           `gorm:"default:true" json:"available"`
	Stock       int            `json:"stock"`
	Image       string         `json:"image"`
	Categories  []Category     `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// InStock reports whether the product can be added to a cart at all.
func (p Product) InStock() bool {
	return p.Available && p.Stock > 0
}

// DefaultCatalog is seeded into an empty products table so a fresh register
// has something to sell.
var DefaultCatalog = []Product{
	{ID: "P001", Name: "Classic Burger", Description: "Beef patty, lettuce, tomato", Price: 12.99, Available: true, Stock: 50},
	{ID: "P002", Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: 14.50, Available: true, Stock: 30},
	{ID: "P003", Name: "Caesar Salad", Description: "Romaine, parmesan, croutons", Price: 9.75, Available: true, Stock: 25},
	{ID: "P004", Name: "French Fries", Description: "Crispy golden fries", Price: 2.99, Available: true, Stock: 100},
	{ID: "P005", Name: "Chocolate Shake", Description: "Hand-spun with whipped cream", Price: 5.25, Available: false, Stock: 0},
}

// SeedCatalog inserts DefaultCatalog when no products exist yet.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&DefaultCatalog).Error
}
