package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xsevenai/pos-api/auth"
	"github.com/xsevenai/pos-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/guest", auth.CreateGuestUser(db))

		// Password reset needs a valid bearer token
		authGroup.POST("/reset-password", middleware.ValidateToken, auth.ResetPassword(db))
	}
}
