package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// WalletWebhookAuth verifies the wallet gateway webhook signature, skips
// the check in sandbox/dev mode.
func WalletWebhookAuth() gin.HandlerFunc {
	secretKey := os.Getenv("WALLET_WEBHOOK_SECRET")
	mode := strings.ToLower(os.Getenv("WALLET_MODE"))

	return func(c *gin.Context) {
		if mode == "sandbox" || mode == "dev" {
			fmt.Println("Sandbox/dev mode: skipping wallet webhook signature verification")
			c.Next()
			return
		}

		// Without a secret no webhook can be trusted
		if secretKey == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "wallet webhook is not configured"})
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Wallet-Signature")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body for signature verification"})
			c.Abort()
			return
		}
		// Restore the body for the handler
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(secretKey))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(calculated)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
