package paymentControllers

import "fmt"

// Gateway abstracts the wallet provider so checkout can run without one
// configured (and tests can stub it).
type Gateway interface {
	CreatePayment(orderRef string, amount float64, description string) (string, error)
}

// DisabledGateway rejects every wallet payment. Used when the gateway env
// configuration is absent; cash and card checkouts are unaffected.
type DisabledGateway struct{}

func (DisabledGateway) CreatePayment(string, float64, string) (string, error) {
	return "", fmt.Errorf("wallet gateway is not configured")
}
