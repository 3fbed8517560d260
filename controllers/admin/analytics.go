package adminController

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/gorm"
)

type salesSummary struct {
	OrderCount    int64   `json:"order_count"`
	GrossRevenue  float64 `json:"gross_revenue"`
	TaxCollected  float64 `json:"tax_collected"`
	DiscountGiven float64 `json:"discount_given"`
}

type methodRevenue struct {
	PaymentMethod string  `json:"payment_method"`
	OrderCount    int64   `json:"order_count"`
	Revenue       float64 `json:"revenue"`
}

type topProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"name"`
	Quantity    int64  `json:"quantity"`
}

// GET /admin/analytics/summary?days=N
//
// Aggregates the order history for the dashboard: totals, revenue split by
// payment method and the best-selling products. Cancelled orders are
// excluded.
func SalesSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
		if err != nil || days < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return
		}
		since := time.Now().AddDate(0, 0, -days)

		var summary salesSummary
		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND status <> ?", since, models.OrderStatusCancelled).
			Select("COUNT(*) AS order_count, COALESCE(SUM(total),0) AS gross_revenue, COALESCE(SUM(tax),0) AS tax_collected, COALESCE(SUM(discount),0) AS discount_given").
			Scan(&summary).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate orders"})
			return
		}

		var byMethod []methodRevenue
		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND status <> ?", since, models.OrderStatusCancelled).
			Select("payment_method, COUNT(*) AS order_count, COALESCE(SUM(total),0) AS revenue").
			Group("payment_method").
			Scan(&byMethod).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate payment methods"})
			return
		}

		var top []topProduct
		if err := db.Model(&models.OrderItem{}).
			Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS quantity").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.created_at >= ? AND orders.status <> ?", since, models.OrderStatusCancelled).
			Group("order_items.product_id, order_items.product_name").
			Order("quantity DESC").
			Limit(10).
			Scan(&top).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate top products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"since":             since,
			"summary":           summary,
			"by_payment_method": byMethod,
			"top_products":      top,
		})
	}
}
