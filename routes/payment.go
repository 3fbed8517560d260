package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/xsevenai/pos-api/controllers/payment"
	"github.com/xsevenai/pos-api/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: middleware handles sandbox/prod verification
		payment.POST("/webhook",
			middleware.WalletWebhookAuth(),
			paymentControllers.WalletWebhookHandler(db),
		)
	}
}
