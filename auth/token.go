package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	userTokenTTL  = 7 * 24 * time.Hour
	guestTokenTTL = 24 * time.Hour
)

func issueToken(userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
