package clients

import (
	"os"

	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// RazorpayClientWrapper is the gateway surface the booking and payment
// controllers depend on. The interface keeps gateway calls mockable in
// tests.
type RazorpayClientWrapper interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// RazorpayClient implements RazorpayClientWrapper using the Razorpay SDK.
type RazorpayClient struct {
	Client    *razorpay.Client
	keySecret string
}

// NewRazorpayClient builds the SDK-backed client with the given key pair.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// NewRazorpayClientFromEnv builds the client from RAZORPAY_KEY_ID and
// RAZORPAY_KEY_SECRET, or returns nil when the gateway is not configured so
// callers can run without payments in development.
func NewRazorpayClientFromEnv() RazorpayClientWrapper {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil
	}
	return NewRazorpayClient(keyID, keySecret)
}

// CreateOrder creates a new order in Razorpay. The nil second argument is
// for optional headers, which basic order creation does not need.
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

// VerifyPaymentSignature checks the checkout signature Razorpay returns for
// a captured payment against the order and payment ids.
func (r *RazorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}
