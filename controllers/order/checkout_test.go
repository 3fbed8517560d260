package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xsevenai/pos-api/models"
	"github.com/xsevenai/pos-api/pricing"
	"github.com/xsevenai/pos-api/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGateway struct {
	url   string
	err   error
	calls int
}

func (f *fakeGateway) CreatePayment(orderRef string, amount float64, description string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// seedCheckout sets up the prop-6 cart: 2x12.99 + 1x2.99.
func seedCheckout(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.CreateUser(t, db, "u1")
	p1 := testutil.CreateProduct(t, db, "P001", 12.99, 10)
	p4 := testutil.CreateProduct(t, db, "P004", 2.99, 10)
	testutil.AddCartLine(t, db, "u1", p1, 2)
	testutil.AddCartLine(t, db, "u1", p4, 1)
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.Stock
}

func cartLines(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", userID).First(&cart).Error)
	var n int64
	require.NoError(t, db.Model(&models.CartLineItem{}).Where("cart_id = ?", cart.CartID).Count(&n).Error)
	return n
}

func TestCheckoutCash(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	resp, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "cash",
		Discount:      5.00,
	})
	require.NoError(t, err)

	order := resp.Order
	assert.Equal(t, 28.97, order.Subtotal)
	assert.Equal(t, 2.32, order.Tax)
	assert.Equal(t, 5.00, order.Discount)
	assert.Equal(t, 26.29, order.Total) // 31.29 - 5.00
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	// Stock deducted, cart cleared
	assert.Equal(t, 8, stockOf(t, db, "P001"))
	assert.Equal(t, 9, stockOf(t, db, "P004"))
	assert.EqualValues(t, 0, cartLines(t, db, "u1"))
}

func TestCheckoutCardIsSettled(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	resp, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, resp.Order.PaymentStatus)
	assert.Equal(t, 31.29, resp.Order.Total) // no discount
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateUser(t, db, "u1")

	_, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDiscountBounds(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	// payable is 31.2876; 31.29 is already too much
	_, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "cash",
		Discount:      31.29,
	})
	assert.ErrorIs(t, err, pricing.ErrDiscountTooLarge)

	_, err = Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "cash",
		Discount:      -1,
	})
	assert.ErrorIs(t, err, pricing.ErrNegativeDiscount)

	// nothing was charged or cleared
	assert.Equal(t, 10, stockOf(t, db, "P001"))
	assert.EqualValues(t, 2, cartLines(t, db, "u1"))
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	_, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "iou",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateUser(t, db, "u1")
	p := testutil.CreateProduct(t, db, "P001", 12.99, 1)
	testutil.AddCartLine(t, db, "u1", p, 2)

	_, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// rollback: stock untouched, no order row
	assert.Equal(t, 1, stockOf(t, db, "P001"))
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestCheckoutIdempotentReplay(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)
	ref := uuid.NewString()

	first, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      ref,
		PaymentMethod: "cash",
		Discount:      5.00,
	})
	require.NoError(t, err)
	require.False(t, first.Replayed)

	// Retrying the same ref returns the same order and charges nothing more,
	// even though the cart is now empty and the discount differs.
	second, err := Checkout(db, &fakeGateway{}, "u1", CheckoutRequest{
		OrderRef:      ref,
		PaymentMethod: "card",
		Discount:      0,
	})
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 26.29, second.Order.Total)

	assert.Equal(t, 8, stockOf(t, db, "P001"))

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCheckoutWalletGatewayFailure(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	gateway := &fakeGateway{err: errors.New("connection refused")}
	_, err := Checkout(db, gateway, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "wallet",
	})
	assert.ErrorIs(t, err, ErrGateway)

	// No half-submitted state: cart intact, stock intact, no order
	assert.Equal(t, 10, stockOf(t, db, "P001"))
	assert.EqualValues(t, 2, cartLines(t, db, "u1"))
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestCheckoutWalletSuccess(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCheckout(t, db)

	gateway := &fakeGateway{url: "https://pay.example/abc"}
	resp, err := Checkout(db, gateway, "u1", CheckoutRequest{
		OrderRef:      uuid.NewString(),
		PaymentMethod: "wallet",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, "https://pay.example/abc", resp.PaymentURL)
	assert.Equal(t, models.PaymentStatusPending, resp.Order.PaymentStatus)
}

func TestCheckoutHandlerStatusCodes(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateUser(t, db, "u1")

	do := func(body CheckoutRequest) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		buf, _ := json.Marshal(body)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders/checkout", bytes.NewReader(buf))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", "u1")
		CheckoutHandler(db, &fakeGateway{})(c)
		return w
	}

	// empty cart
	w := do(CheckoutRequest{OrderRef: uuid.NewString(), PaymentMethod: "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// malformed ref never reaches the core
	w = do(CheckoutRequest{OrderRef: "not-a-uuid", PaymentMethod: "cash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// oversized discount
	p := testutil.CreateProduct(t, db, "P001", 12.99, 10)
	testutil.AddCartLine(t, db, "u1", p, 1)
	w = do(CheckoutRequest{OrderRef: uuid.NewString(), PaymentMethod: "cash", Discount: 1000})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// success
	w = do(CheckoutRequest{OrderRef: uuid.NewString(), PaymentMethod: "cash"})
	assert.Equal(t, http.StatusCreated, w.Code)
}
