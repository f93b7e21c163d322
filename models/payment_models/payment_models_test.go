package payment_models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joy095/roomstay/models/booking_models"
	"github.com/joy095/roomstay/models/hotel_models"
)

func TestNewPayment(t *testing.T) {
	checkIn := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)

	booking, err := booking_models.NewBooking(uuid.New(), uuid.New(), uuid.New(),
		2, 2, checkIn, checkOut, 250.0)
	require.NoError(t, err)

	room := &hotel_models.Room{ID: booking.RoomID, RoomType: "Deluxe", RoomCount: 4, RoomRate: 250.0}
	hotel := &hotel_models.Hotel{
		ID:        booking.HotelID,
		HotelName: "Grand Hotel",
		Images:    []string{"front.jpg", "lobby.jpg"},
		Rooms:     []hotel_models.Room{*room},
	}

	payment, err := NewPayment(booking, hotel, room, hotel.Images[0])
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, payment.ID)
	assert.Equal(t, booking.ID, payment.BookingID)
	assert.Equal(t, booking.UserID, payment.UserID)
	assert.Equal(t, "Grand Hotel", payment.HotelName)
	assert.Equal(t, "Deluxe", payment.RoomName)
	assert.Equal(t, "front.jpg", payment.HotelImage)
	assert.False(t, payment.PaymentStatus, "new payments start unpaid")
	assert.Nil(t, payment.BookingConfirmedAt)

	// The payment snapshots the booking's grand total: subtotal plus the
	// GST-inclusive figure.
	assert.InDelta(t, booking.TotalAmount+booking.GSTAmount, payment.TotalAmount, 1e-9)
	assert.Equal(t, booking.NumOfRooms, payment.NumOfRooms)
	assert.Equal(t, booking.NumOfDays, payment.NumOfDays)
	assert.True(t, payment.CheckInDate.Equal(checkIn))
	assert.True(t, payment.CheckOutDate.Equal(checkOut))
}
