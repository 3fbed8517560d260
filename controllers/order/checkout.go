package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xsevenai/pos-api/models"
	"github.com/xsevenai/pos-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentGateway is the slice of the wallet client checkout needs.
type PaymentGateway interface {
	CreatePayment(orderRef string, amount float64, description string) (string, error)
}

type CheckoutRequest struct {
	OrderRef      string  `json:"order_ref" binding:"required,uuid4"` // client-generated, idempotency key
	PaymentMethod string  `json:"payment_method" binding:"required"`  // cash, card or wallet
	Discount      float64 `json:"discount"`
	TableNumber   string  `json:"table_number"`
}

type CheckoutResponse struct {
	Order      models.Order `json:"order"`
	PaymentURL string       `json:"payment_url,omitempty"` // wallet orders only
	Replayed   bool         `json:"replayed,omitempty"`    // true when the ref was already submitted
}

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrGateway              = errors.New("payment gateway failure")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Map string to PaymentMethod
func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch models.PaymentMethod(method) {
	case models.PaymentMethodCash:
		return models.PaymentMethodCash, nil
	case models.PaymentMethodCard:
		return models.PaymentMethodCard, nil
	case models.PaymentMethodWallet:
		return models.PaymentMethodWallet, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// initialPaymentStatus: card is settled at the terminal before the request is
// made; cash is collected at the register; wallet waits for the gateway webhook.
func initialPaymentStatus(method models.PaymentMethod) models.PaymentStatus {
	if method == models.PaymentMethodCard {
		return models.PaymentStatusPaid
	}
	return models.PaymentStatusPending
}

// Checkout turns the user's cart into an order, exactly once per order ref.
//
// Submitting the same ref again returns the already-created order untouched,
// so a client retrying after a network blip cannot double-charge. On any
// failure (bad discount, stock, gateway) no order is created and the cart is
// left intact.
func Checkout(db *gorm.DB, gateway PaymentGateway, userID string, req CheckoutRequest) (CheckoutResponse, error) {
	// Replay of an already-submitted ref short-circuits before any validation:
	// the first submission's outcome is the outcome.
	if existing, ok := orderByRef(db, req.OrderRef); ok {
		return CheckoutResponse{Order: existing, Replayed: true}, nil
	}

	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return CheckoutResponse{}, err
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return CheckoutResponse{}, err
	}
	if len(cart.Items) == 0 {
		return CheckoutResponse{}, ErrEmptyCart
	}

	subtotal := pricing.Subtotal(cart.Items)
	if err := pricing.ValidateDiscount(subtotal, req.Discount); err != nil {
		return CheckoutResponse{}, err
	}
	totals := pricing.Compute(cart.Items, req.Discount)

	// Wallet payments register with the gateway first: if the gateway is
	// unreachable no order exists, so there is no half-submitted state.
	// The inverse can still happen: when the transaction below fails the
	// hosted session is left unpaid at the gateway until it expires, and the
	// webhook for it never finds an order.
	var paymentURL string
	if method == models.PaymentMethodWallet {
		description := fmt.Sprintf("POS order %s", req.OrderRef)
		paymentURL, err = gateway.CreatePayment(req.OrderRef, totals.Total, description)
		if err != nil {
			return CheckoutResponse{}, fmt.Errorf("%w: %v", ErrGateway, err)
		}
	}

	order := models.Order{
		Ref:           req.OrderRef,
		UserID:        userID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: method,
		Status:        models.OrderStatusPending,
		PaymentStatus: initialPaymentStatus(method),
		TableNumber:   req.TableNumber,
		CreatedAt:     time.Now(),
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range cart.Items {
			var product models.Product
			q := tx
			// SQLite (used in tests) has no SELECT ... FOR UPDATE
			if tx.Dialector.Name() != "sqlite" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			// Deduct stock
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			// Snapshot the line for the order
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartLineItem{}).Error
	})
	if txErr != nil {
		// A concurrent submission of the same ref may have won the unique
		// index race; that order is the canonical result.
		if existing, ok := orderByRef(db, req.OrderRef); ok {
			return CheckoutResponse{Order: existing, Replayed: true}, nil
		}
		return CheckoutResponse{}, txErr
	}

	return CheckoutResponse{Order: order, PaymentURL: paymentURL}, nil
}

func orderByRef(db *gorm.DB, ref string) (models.Order, bool) {
	var order models.Order
	err := db.Preload("Items").Where("ref = ?", ref).First(&order).Error
	return order, err == nil
}

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB, gateway PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		resp, err := Checkout(db, gateway, userID, req)
		if err != nil {
			c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
			return
		}

		if !resp.Replayed {
			broadcastNewOrder(resp.Order)
			c.JSON(http.StatusCreated, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrNegativeDiscount), errors.Is(err, pricing.ErrDiscountTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPaymentMethod):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
