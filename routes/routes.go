package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/xsevenai/pos-api/controllers/order"
	"gorm.io/gorm"
)

// Config carries the wiring the route groups need beyond the DB handle.
type Config struct {
	QRUploadDir   string
	PublicBaseURL string
	Wallet        orderControllers.PaymentGateway
}

// SetupRoutes is the single entry-point that wires up Auth, User, Admin,
// Order and Payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg Config) {
	// Public Auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (API-Key-protected)
	SetupAdminRoutes(r, db, cfg)

	// Order routes (checkout, lifecycle, live feed)
	SetupOrderRoutes(r, db, cfg)

	// Wallet payment webhook
	SetupPaymentRoutes(r, db)
}
