package payment_controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Request validation happens before any database access, so these
	// tests run against a controller with no pool behind it.
	controller := &PaymentController{}

	r := gin.New()
	r.POST("/pay", controller.ConfirmBooking)
	r.GET("/myBookings", controller.MyBookings)
	r.DELETE("/deleteMyBooking", controller.CancelBooking)
	return r
}

func TestConfirmBookingRejectsBadBookingID(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{"/pay", "/pay?bookingId=not-a-uuid"} {
		req, err := http.NewRequest(http.MethodPost, target, nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "target %s", target)
		assert.Contains(t, w.Body.String(), "bookingId")
	}
}

// stubGateway stands in for the Razorpay client; Valid controls whether
// signature verification passes.
type stubGateway struct {
	Valid bool
}

func (s stubGateway) CreateOrder(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{"id": "order_stub"}, nil
}

func (s stubGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return s.Valid
}

func confirmWithGateway(t *testing.T, gateway stubGateway, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller := &PaymentController{Razorpay: gateway}
	r := gin.New()
	r.POST("/pay", controller.ConfirmBooking)

	req, err := http.NewRequest(http.MethodPost, "/pay?bookingId="+uuid.Must(uuid.NewV7()).String(), strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmBookingRequiresProofWhenGatewayConfigured(t *testing.T) {
	t.Run("EmptyBody", func(t *testing.T) {
		w := confirmWithGateway(t, stubGateway{Valid: true}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMissingPaymentProof.Error())
	})

	t.Run("PartialProof", func(t *testing.T) {
		w := confirmWithGateway(t, stubGateway{Valid: true},
			`{"razorpay_order_id":"order_123","razorpay_payment_id":"pay_456"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMissingPaymentProof.Error())
	})
}

func TestConfirmBookingRejectsBadSignature(t *testing.T) {
	w := confirmWithGateway(t, stubGateway{Valid: false},
		`{"razorpay_order_id":"order_123","razorpay_payment_id":"pay_456","razorpay_signature":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrInvalidPaymentProof.Error())
}

func TestCancelBookingRejectsBadBookingID(t *testing.T) {
	r := newTestRouter(t)

	req, err := http.NewRequest(http.MethodDelete, "/deleteMyBooking?bookingId=42", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyBookingsRejectsBadUserID(t *testing.T) {
	r := newTestRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/myBookings?userId=nope", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userId")
}
