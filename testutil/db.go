// Package testutil holds shared test fixtures: an isolated in-memory
// database migrated to the current schema, plus a few record builders.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a fresh in-memory SQLite database with all tables migrated.
// Each call gets its own named shared-cache DB so parallel tests do not
// collide.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartLineItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QRFile{},
	))

	return db
}

// CreateUser inserts a user with an empty cart and returns it.
func CreateUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()

	user := models.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  "Test User",
		Role:  "staff",
		Cart:  models.Cart{},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateProduct inserts a product and returns it.
func CreateProduct(t *testing.T, db *gorm.DB, id string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     price,
		Available: stock > 0,
		Stock:     stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// AddCartLine attaches a line item directly to the user's cart.
func AddCartLine(t *testing.T, db *gorm.DB, userID string, product models.Product, qty int) {
	t.Helper()

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", userID).First(&cart).Error)
	require.NoError(t, db.Create(&models.CartLineItem{
		CartID:      cart.CartID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    qty,
		AddedAt:     time.Now(),
	}).Error)
}
