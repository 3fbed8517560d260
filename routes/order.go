package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/xsevenai/pos-api/controllers/order"
	"github.com/xsevenai/pos-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg Config) {
	orders := r.Group("/orders")
	{
		// Checkout: turn the current cart into an order (JWT-protected)
		orders.POST("/checkout", middleware.ValidateToken, orderControllers.CheckoutHandler(db, cfg.Wallet))

		// Fetch orders for the calling user
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))

		// websocket endpoint for the kitchen display's live order feed
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		// Admin lifecycle management
		admin := orders.Group("")
		admin.Use(middleware.ValidateAPIKey)
		{
			// Fetch all orders
			admin.GET("/", orderControllers.GetAllOrdersHandler(db))

			// Fetch one order by id or ref
			admin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

			// Update order status (e.g., preparing, ready)
			admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

			// Update payment status (e.g., paid, refunded)
			admin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

			// Delete an order
			admin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}
	}
}
