package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses (kitchen flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Accepted by staff
	OrderStatusPreparing OrderStatus = "preparing" // In the kitchen
	OrderStatusReady     OrderStatus = "ready"     // Ready for pickup/serving
	OrderStatusCompleted OrderStatus = "completed" // Handed over to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before completion

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer

	// Payment methods accepted at the register
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Ref           string        `gorm:"uniqueIndex;not null" json:"ref"` // client-generated UUID, idempotency key
	UserID        string        `gorm:"not null" json:"user_id"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	TableNumber   string        `json:"table_number,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderItem snapshots the product at checkout time so later price edits do
// not rewrite past orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"name"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
