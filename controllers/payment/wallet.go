package paymentControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xsevenai/pos-api/models"
	"gorm.io/gorm"
)

// WalletClient talks to the hosted wallet gateway. Checkout uses it for
// "wallet" orders; cash and card never leave the register.
type WalletClient struct {
	StoreID  int
	AuthKey  string
	APIURL   string
	TestMode int
	HTTP     *http.Client
}

// walletResponse represents the gateway response
type walletResponse struct {
	Payment struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"payment"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewWalletClientFromEnv picks the production endpoint, test mode if needed.
func NewWalletClientFromEnv() (*WalletClient, error) {
	storeID, _ := strconv.Atoi(os.Getenv("WALLET_STORE_ID"))
	authKey := os.Getenv("WALLET_AUTH_KEY")
	apiURL := os.Getenv("WALLET_API_URL")
	testMode := 0

	mode := os.Getenv("WALLET_MODE")
	if mode == "sandbox" || mode == "dev" {
		testMode = 1 // use test mode even on live endpoint
	}

	if storeID == 0 || authKey == "" || apiURL == "" {
		return nil, fmt.Errorf("wallet gateway configuration missing")
	}
	return &WalletClient{
		StoreID:  storeID,
		AuthKey:  authKey,
		APIURL:   apiURL,
		TestMode: testMode,
		HTTP:     &http.Client{},
	}, nil
}

// CreatePayment registers the order with the gateway and returns the hosted
// payment URL the customer's wallet app should open.
func (w *WalletClient) CreatePayment(orderRef string, amount float64, description string) (string, error) {
	payload := map[string]interface{}{
		"method":  "create",
		"store":   w.StoreID,
		"authkey": w.AuthKey,
		"payment": map[string]interface{}{
			"ref":         orderRef,
			"test":        w.TestMode,
			"amount":      fmt.Sprintf("%.2f", amount),
			"currency":    currency(),
			"description": description,
		},
		"return": map[string]string{
			"authorised": os.Getenv("WALLET_SUCCESS_URL"),
			"declined":   os.Getenv("WALLET_FAILURE_URL"),
			"cancelled":  os.Getenv("WALLET_CANCEL_URL"),
		},
	}

	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", w.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach wallet gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wallet gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var walletResp walletResponse
	if err := json.Unmarshal(body, &walletResp); err != nil {
		return "", fmt.Errorf("failed to parse wallet gateway response: %v", err)
	}

	if walletResp.Error != nil {
		return "", fmt.Errorf("wallet gateway error: %s", walletResp.Error.Message)
	}

	if walletResp.Payment.URL == "" {
		return "", fmt.Errorf("wallet gateway returned empty payment URL")
	}

	return walletResp.Payment.URL, nil
}

func currency() string {
	if c := os.Getenv("WALLET_CURRENCY"); c != "" {
		return c
	}
	return "USD"
}

type webhookInput struct {
	OrderRef string `json:"order_ref" binding:"required"`
	Status   string `json:"status" binding:"required"` // "authorised", "declined" or "cancelled"
}

// POST /payment/webhook
//
// The gateway confirms or declines a wallet payment here. The order already
// exists (created at checkout with payment pending); this only settles it.
func WalletWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input webhookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("ref = ?", input.OrderRef).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for ref " + input.OrderRef})
			return
		}

		updates := map[string]interface{}{}
		switch input.Status {
		case "authorised":
			updates["payment_status"] = models.PaymentStatusPaid
			updates["status"] = models.OrderStatusConfirmed
		case "declined":
			updates["payment_status"] = models.PaymentStatusFailed
		case "cancelled":
			updates["payment_status"] = models.PaymentStatusFailed
			updates["status"] = models.OrderStatusCancelled
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status: " + input.Status})
			return
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment status recorded"})
	}
}
