package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/xsevenai/pos-api/controllers/admin"
	cartControllers "github.com/xsevenai/pos-api/controllers/cart"
	productcontroller "github.com/xsevenai/pos-api/controllers/product"
	qrcontroller "github.com/xsevenai/pos-api/controllers/qr"
	userControllers "github.com/xsevenai/pos-api/controllers/user"
	"github.com/xsevenai/pos-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Menu Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── QR Codes (menus & tables) ───────────
		qrAdmin := adminGroup.Group("/qr")
		{
			qrAdmin.POST("", qrcontroller.GenerateQRHandler(db, cfg.QRUploadDir, cfg.PublicBaseURL))
			qrAdmin.GET("", qrcontroller.ListQRFilesHandler(db))
			qrAdmin.DELETE("/:id", qrcontroller.DeleteQRFileHandler(db, cfg.QRUploadDir))
		}

		// ─────────── Analytics Dashboard ───────────
		adminGroup.GET("/analytics/summary", adminController.SalesSummaryHandler(db))

		// ─────────── Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
