package booking_models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	checkIn := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC)
	userID, hotelID, roomID := uuid.New(), uuid.New(), uuid.New()

	booking, err := NewBooking(userID, hotelID, roomID, 2, 3, checkIn, checkOut, 150.0)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, hotelID, booking.HotelID)
	assert.Equal(t, roomID, booking.RoomID)
	assert.Equal(t, 2, booking.NumOfRooms)
	assert.Equal(t, 3, booking.NumOfDays)

	// 2 rooms x 3 days x 150 = 900; the GST field stores the grand total.
	assert.InDelta(t, 900.0, booking.TotalAmount, 1e-9)
	assert.InDelta(t, 900.0*1.12, booking.GSTAmount, 1e-9)
}

func TestNewBookingGSTFieldIncludesSubtotal(t *testing.T) {
	booking, err := NewBooking(uuid.New(), uuid.New(), uuid.New(), 1, 1,
		time.Now(), time.Now().AddDate(0, 0, 1), 1000.0)
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, booking.TotalAmount, 1e-9)
	assert.InDelta(t, 1120.0, booking.GSTAmount, 1e-9,
		"gst field stores total plus GST, not the GST delta")
}
