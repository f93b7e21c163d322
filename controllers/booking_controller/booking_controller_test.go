package booking_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joy095/roomstay/middlewares/auth"
)

func bookRoom(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Binding and date validation run before any database access.
	controller := &BookingController{}
	r := gin.New()
	r.POST("/book-room", controller.BookRoom)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/book-room", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validRequest() BookingDetailsRequest {
	return BookingDetailsRequest{
		UserID:            uuid.Must(uuid.NewV7()),
		HotelID:           uuid.Must(uuid.NewV7()),
		RoomID:            uuid.Must(uuid.NewV7()),
		CustomerRoomCount: 2,
		CustomerDayCount:  3,
		CheckInDate:       "2026-10-01",
		CheckOutDate:      "2026-10-04",
	}
}

func TestBookRoomRequiresCallerIdentity(t *testing.T) {
	req := validRequest()
	req.UserID = uuid.Nil
	w := bookRoom(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing caller identity")
}

func TestBookRoomTakesIdentityFromGateway(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := &BookingController{}
	r := gin.New()
	r.Use(auth.GatewayIdentity())
	r.POST("/book-room", controller.BookRoom)

	// No user_id in the body and a malformed date: getting the date error
	// back means the header identity satisfied the caller check.
	body := validRequest()
	body.UserID = uuid.Nil
	body.CheckInDate = "bogus"
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/book-room", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.Must(uuid.NewV7()).String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "check_in_date")

	// Without the header the middleware rejects outright.
	req2, err := http.NewRequest(http.MethodPost, "/book-room", bytes.NewReader(payload))
	require.NoError(t, err)
	req2.Header.Set("Content-Type", "application/json")

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestBookRoomRejectsMissingFields(t *testing.T) {
	w := bookRoom(t, gin.H{"hotel_id": uuid.Must(uuid.NewV7())})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestBookRoomRejectsZeroRoomCount(t *testing.T) {
	req := validRequest()
	req.CustomerRoomCount = 0
	w := bookRoom(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookRoomRejectsMalformedDates(t *testing.T) {
	req := validRequest()
	req.CheckInDate = "01-10-2026"
	w := bookRoom(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "check_in_date")
}

func TestBookRoomRejectsInvertedStay(t *testing.T) {
	req := validRequest()
	req.CheckInDate = "2026-10-04"
	req.CheckOutDate = "2026-10-01"
	w := bookRoom(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "check_out_date must be after check_in_date")
}

func TestBookRoomRejectsZeroNightStay(t *testing.T) {
	req := validRequest()
	req.CheckOutDate = req.CheckInDate
	w := bookRoom(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
