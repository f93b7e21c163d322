package payment_controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/joy095/roomstay/models/booking_models"
	"github.com/joy095/roomstay/models/hotel_models"
	"github.com/joy095/roomstay/models/payment_models"
)

// lifecycleStore is the transactional surface the confirm and cancel
// sequences run against. txStore backs it with a database transaction.
type lifecycleStore interface {
	PaymentForUpdate(ctx context.Context, bookingID uuid.UUID) (*payment_models.Payment, error)
	Booking(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error)
	LockRoom(ctx context.Context, roomID uuid.UUID) (*hotel_models.Room, error)
	AppendReservation(ctx context.Context, roomID uuid.UUID, ri hotel_models.ReservationInterval) error
	RemoveReservation(ctx context.Context, roomID, bookingID uuid.UUID) (int64, error)
	MarkPaid(ctx context.Context, bookingID uuid.UUID, confirmedAt time.Time) error
	DeleteBooking(ctx context.Context, bookingID uuid.UUID) error
	DeletePayment(ctx context.Context, bookingID uuid.UUID) error
}

// confirmBooking marks the payment paid and appends exactly one reservation
// interval for the booking, with the room locked for the duration of the
// store's transaction. An already-paid booking fails with
// ErrAlreadyConfirmed before the ledger is touched.
func confirmBooking(ctx context.Context, s lifecycleStore, bookingID uuid.UUID, confirmedAt time.Time) (*payment_models.Payment, *booking_models.Booking, error) {
	payment, err := s.PaymentForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if payment.PaymentStatus {
		return nil, nil, ErrAlreadyConfirmed
	}

	room, err := s.LockRoom(ctx, payment.RoomID)
	if err != nil {
		return nil, nil, err
	}
	booking, err := s.Booking(ctx, payment.BookingID)
	if err != nil {
		return nil, nil, err
	}

	err = s.AppendReservation(ctx, room.ID, hotel_models.ReservationInterval{
		BookingID:    booking.ID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		RoomCount:    booking.NumOfRooms,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := s.MarkPaid(ctx, bookingID, confirmedAt); err != nil {
		return nil, nil, err
	}

	payment.PaymentStatus = true
	payment.BookingConfirmedAt = &confirmedAt
	return payment, booking, nil
}

// cancelBooking deletes the booking and payment pair. A confirmed booking
// gives back its ledger interval first; drafts never held one, so their
// cancellation does not touch the ledger at all.
func cancelBooking(ctx context.Context, s lifecycleStore, bookingID uuid.UUID) (*payment_models.Payment, *booking_models.Booking, error) {
	payment, err := s.PaymentForUpdate(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	booking, err := s.Booking(ctx, payment.BookingID)
	if err != nil {
		return nil, nil, err
	}

	if payment.PaymentStatus {
		room, err := s.LockRoom(ctx, payment.RoomID)
		if err != nil {
			return nil, nil, err
		}
		if _, err := s.RemoveReservation(ctx, room.ID, booking.ID); err != nil {
			return nil, nil, err
		}
	}

	if err := s.DeleteBooking(ctx, booking.ID); err != nil {
		return nil, nil, err
	}
	if err := s.DeletePayment(ctx, bookingID); err != nil {
		return nil, nil, err
	}
	return payment, booking, nil
}

// txStore adapts a pgx transaction to lifecycleStore.
type txStore struct {
	tx pgx.Tx
}

func (s txStore) PaymentForUpdate(ctx context.Context, bookingID uuid.UUID) (*payment_models.Payment, error) {
	return payment_models.GetPaymentByBookingID(ctx, s.tx, bookingID)
}

func (s txStore) Booking(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error) {
	return booking_models.GetBookingByID(ctx, s.tx, bookingID)
}

func (s txStore) LockRoom(ctx context.Context, roomID uuid.UUID) (*hotel_models.Room, error) {
	return hotel_models.LockRoom(ctx, s.tx, roomID)
}

func (s txStore) AppendReservation(ctx context.Context, roomID uuid.UUID, ri hotel_models.ReservationInterval) error {
	return hotel_models.AppendReservation(ctx, s.tx, roomID, ri)
}

func (s txStore) RemoveReservation(ctx context.Context, roomID, bookingID uuid.UUID) (int64, error) {
	return hotel_models.RemoveReservation(ctx, s.tx, roomID, bookingID)
}

func (s txStore) MarkPaid(ctx context.Context, bookingID uuid.UUID, confirmedAt time.Time) error {
	return payment_models.MarkPaid(ctx, s.tx, bookingID, confirmedAt)
}

func (s txStore) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return booking_models.DeleteBooking(ctx, s.tx, bookingID)
}

func (s txStore) DeletePayment(ctx context.Context, bookingID uuid.UUID) error {
	return payment_models.DeletePayment(ctx, s.tx, bookingID)
}
