package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/joy095/roomstay/logger"
)

// GSTRate is the fixed surcharge applied to a booking subtotal.
const GSTRate = 0.12

var ErrBookingNotFound = errors.New("booking not found")

// Booking is the draft reservation a customer creates before paying.
// GSTAmount stores the grand total including GST, not the GST delta alone;
// downstream payment snapshots depend on that arithmetic.
type Booking struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	HotelID      uuid.UUID `json:"hotel_id"`
	RoomID       uuid.UUID `json:"room_id"`
	NumOfRooms   int       `json:"num_of_rooms"`
	NumOfDays    int       `json:"num_of_days"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	TotalAmount  float64   `json:"total_amount"`
	GSTAmount    float64   `json:"gst_amount"`
}

// NewBooking builds a draft booking and computes its amounts from the
// nightly rate: rooms x days x rate, plus GST on top for the grand total.
func NewBooking(userID, hotelID, roomID uuid.UUID, numOfRooms, numOfDays int,
	checkIn, checkOut time.Time, roomRate float64) (*Booking, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}

	totalAmount := float64(numOfRooms) * float64(numOfDays) * roomRate
	return &Booking{
		ID:           id,
		UserID:       userID,
		HotelID:      hotelID,
		RoomID:       roomID,
		NumOfRooms:   numOfRooms,
		NumOfDays:    numOfDays,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalAmount:  totalAmount,
		GSTAmount:    totalAmount + totalAmount*GSTRate,
	}, nil
}

// CreateBooking inserts the draft booking inside the caller's transaction.
func CreateBooking(ctx context.Context, tx pgx.Tx, booking *Booking) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (
			id, user_id, hotel_id, room_id, num_of_rooms, num_of_days,
			check_in_date, check_out_date, total_amount, gst_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		booking.ID, booking.UserID, booking.HotelID, booking.RoomID,
		booking.NumOfRooms, booking.NumOfDays,
		booking.CheckInDate, booking.CheckOutDate,
		booking.TotalAmount, booking.GSTAmount)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking %s: %v", booking.ID, err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created for room %s", booking.ID, booking.RoomID)
	return nil
}

// GetBookingByID fetches a booking inside the caller's transaction.
func GetBookingByID(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*Booking, error) {
	var b Booking
	err := tx.QueryRow(ctx, `
		SELECT id, user_id, hotel_id, room_id, num_of_rooms, num_of_days,
		       check_in_date, check_out_date, total_amount, gst_amount
		FROM bookings WHERE id = $1`, bookingID).
		Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.NumOfRooms, &b.NumOfDays,
			&b.CheckInDate, &b.CheckOutDate, &b.TotalAmount, &b.GSTAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &b, nil
}

// DeleteBooking removes the booking row inside the caller's transaction.
func DeleteBooking(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}
