package adminController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xsevenai/pos-api/models"
	"github.com/xsevenai/pos-api/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedOrder(t *testing.T, db *gorm.DB, ref string, total, tax, discount float64, method models.PaymentMethod, status models.OrderStatus, age time.Duration) {
	t.Helper()

	order := models.Order{
		Ref:           ref,
		UserID:        "u1",
		Subtotal:      total - tax + discount,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
		PaymentMethod: method,
		Status:        status,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     time.Now().Add(-age),
		Items: []models.OrderItem{
			{ProductID: "P001", ProductName: "Classic Burger", UnitPrice: 12.99, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestSalesSummary(t *testing.T) {
	db := testutil.OpenDB(t)

	seedOrder(t, db, "r1", 31.29, 2.32, 0, models.PaymentMethodCash, models.OrderStatusCompleted, time.Hour)
	seedOrder(t, db, "r2", 26.29, 2.32, 5, models.PaymentMethodCard, models.OrderStatusPending, 2*time.Hour)
	// cancelled orders are excluded
	seedOrder(t, db, "r3", 99.99, 7.41, 0, models.PaymentMethodCash, models.OrderStatusCancelled, time.Hour)
	// too old for the 7-day window
	seedOrder(t, db, "r4", 50.00, 3.70, 0, models.PaymentMethodWallet, models.OrderStatusCompleted, 10*24*time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/analytics/summary?days=7", nil)
	SalesSummaryHandler(db)(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary         salesSummary    `json:"summary"`
		ByPaymentMethod []methodRevenue `json:"by_payment_method"`
		TopProducts     []topProduct    `json:"top_products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.EqualValues(t, 2, resp.Summary.OrderCount)
	assert.InDelta(t, 57.58, resp.Summary.GrossRevenue, 0.001)
	assert.InDelta(t, 4.64, resp.Summary.TaxCollected, 0.001)
	assert.InDelta(t, 5.00, resp.Summary.DiscountGiven, 0.001)

	assert.Len(t, resp.ByPaymentMethod, 2)

	require.NotEmpty(t, resp.TopProducts)
	assert.Equal(t, "P001", resp.TopProducts[0].ProductID)
	assert.EqualValues(t, 4, resp.TopProducts[0].Quantity)
}

func TestSalesSummaryBadDays(t *testing.T) {
	db := testutil.OpenDB(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/analytics/summary?days=zero", nil)
	SalesSummaryHandler(db)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
