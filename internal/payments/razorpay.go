package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrNotConfigured = errors.New("razorpay client not configured")

// Razorpay creates checkout orders and verifies the signature returned by the checkout.
type Razorpay struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	r := &Razorpay{keyID: keyID, keySecret: keySecret}
	if keyID != "" && keySecret != "" {
		r.client = razorpay.NewClient(keyID, keySecret)
	}
	return r
}

func (r *Razorpay) Configured() bool { return r.client != nil }

// KeyID is handed to the browser checkout.
func (r *Razorpay) KeyID() string { return r.keyID }

// CreateOrder registers an amount in paise and returns the Razorpay order id.
func (r *Razorpay) CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (string, error) {
	if r.client == nil {
		return "", ErrNotConfigured
	}

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
		"notes":    notes,
	}
	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}
	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order response has no id")
	}
	return id, nil
}

// VerifySignature checks HMAC-SHA256(orderID|paymentID) against the key secret.
func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if r.keySecret == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(r.keySecret, orderID, paymentID)), []byte(signature))
}

// Sign computes the checkout signature for an order and payment pair.
func Sign(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}
