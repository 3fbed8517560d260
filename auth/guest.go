package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/gorm"
)

// POST /auth/guest
//
// Guest sessions let a register run a cart without a named account. They are
// ordinary users with role "guest" and a 24h expiry, so the cart and checkout
// paths do not fork.
func CreateGuestUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {

		guestID := "guest_" + generateRandomString(16)
		expiresAt := time.Now().Add(guestTokenTTL)

		guest := models.User{
			ID:        guestID,
			Email:     guestID + "@guest.local",
			Role:      "guest",
			Cart:      models.Cart{},
			ExpiresAt: &expiresAt,
		}

		if err := db.Create(&guest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		// Issue JWT for guest
		token, err := issueToken(guestID, "guest", guestTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": expiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
