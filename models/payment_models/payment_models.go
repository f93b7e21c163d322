package payment_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/models/booking_models"
	"github.com/joy095/roomstay/models/hotel_models"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment tracks the paid/unpaid side of a booking. It is created together
// with its booking (PaymentStatus false) and the two rows live and die as a
// pair keyed by BookingID. TotalAmount snapshots the booking's grand total
// including GST at creation time.
type Payment struct {
	ID                 uuid.UUID  `json:"id"`
	BookingID          uuid.UUID  `json:"booking_id"`
	HotelID            uuid.UUID  `json:"hotel_id"`
	HotelName          string     `json:"hotel_name"`
	HotelImage         string     `json:"hotel_image"`
	UserID             uuid.UUID  `json:"user_id"`
	RoomID             uuid.UUID  `json:"room_id"`
	RoomName           string     `json:"room_name"`
	GatewayOrderID     string     `json:"gateway_order_id,omitempty"`
	TotalAmount        float64    `json:"total_amount"`
	NumOfRooms         int        `json:"num_of_rooms"`
	NumOfDays          int        `json:"num_of_days"`
	PaymentStatus      bool       `json:"payment_status"`
	CheckInDate        time.Time  `json:"check_in_date"`
	CheckOutDate       time.Time  `json:"check_out_date"`
	BookingConfirmedAt *time.Time `json:"booking_confirmed_at,omitempty"`
}

// NewPayment builds the unpaid payment row for a freshly drafted booking,
// denormalizing the hotel and room display fields the my-bookings page shows.
func NewPayment(booking *booking_models.Booking, hotel *hotel_models.Hotel, room *hotel_models.Room, hotelImage string) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment: %w", err)
	}

	return &Payment{
		ID:           id,
		BookingID:    booking.ID,
		HotelID:      booking.HotelID,
		HotelName:    hotel.HotelName,
		HotelImage:   hotelImage,
		UserID:       booking.UserID,
		RoomID:       booking.RoomID,
		RoomName:     room.RoomType,
		TotalAmount:  booking.TotalAmount + booking.GSTAmount,
		NumOfRooms:   booking.NumOfRooms,
		NumOfDays:    booking.NumOfDays,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
	}, nil
}

// CreatePayment inserts the payment inside the caller's transaction.
func CreatePayment(ctx context.Context, tx pgx.Tx, p *Payment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO payments (
			id, booking_id, hotel_id, hotel_name, hotel_image, user_id,
			room_id, room_name, gateway_order_id, total_amount,
			num_of_rooms, num_of_days, payment_status,
			check_in_date, check_out_date, booking_confirmed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.BookingID, p.HotelID, p.HotelName, p.HotelImage, p.UserID,
		p.RoomID, p.RoomName, p.GatewayOrderID, p.TotalAmount,
		p.NumOfRooms, p.NumOfDays, p.PaymentStatus,
		p.CheckInDate, p.CheckOutDate, p.BookingConfirmedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment for booking %s: %v", p.BookingID, err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	logger.InfoLogger.Infof("Payment %s created for booking %s", p.ID, p.BookingID)
	return nil
}

// GetPaymentByBookingID fetches the payment for a booking with a row lock,
// serializing confirm and cancel for the same booking.
func GetPaymentByBookingID(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) (*Payment, error) {
	var p Payment
	err := tx.QueryRow(ctx, `
		SELECT id, booking_id, hotel_id, hotel_name, hotel_image, user_id,
		       room_id, room_name, gateway_order_id, total_amount,
		       num_of_rooms, num_of_days, payment_status,
		       check_in_date, check_out_date, booking_confirmed_at
		FROM payments WHERE booking_id = $1 FOR UPDATE`, bookingID).
		Scan(&p.ID, &p.BookingID, &p.HotelID, &p.HotelName, &p.HotelImage, &p.UserID,
			&p.RoomID, &p.RoomName, &p.GatewayOrderID, &p.TotalAmount,
			&p.NumOfRooms, &p.NumOfDays, &p.PaymentStatus,
			&p.CheckInDate, &p.CheckOutDate, &p.BookingConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment for booking %s: %w", bookingID, err)
	}
	return &p, nil
}

// MarkPaid flips the payment to paid and stamps the confirmation time,
// inside the caller's transaction.
func MarkPaid(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, confirmedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET payment_status = TRUE, booking_confirmed_at = $2
		WHERE booking_id = $1`, bookingID, confirmedAt)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid for booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// DeletePayment removes the payment row inside the caller's transaction.
func DeletePayment(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete payment for booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// GetPaymentsByUserID returns all of a user's payments, drafts included,
// newest booking first.
func GetPaymentsByUserID(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) ([]Payment, error) {
	rows, err := db.Query(ctx, `
		SELECT id, booking_id, hotel_id, hotel_name, hotel_image, user_id,
		       room_id, room_name, gateway_order_id, total_amount,
		       num_of_rooms, num_of_days, payment_status,
		       check_in_date, check_out_date, booking_confirmed_at
		FROM payments WHERE user_id = $1 ORDER BY check_in_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for user %s: %w", userID, err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.HotelID, &p.HotelName, &p.HotelImage,
			&p.UserID, &p.RoomID, &p.RoomName, &p.GatewayOrderID, &p.TotalAmount,
			&p.NumOfRooms, &p.NumOfDays, &p.PaymentStatus,
			&p.CheckInDate, &p.CheckOutDate, &p.BookingConfirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
