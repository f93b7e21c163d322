package payment_controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/roomstay/clients"
	redisclient "github.com/joy095/roomstay/config/redis"
	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/middlewares/auth"
	"github.com/joy095/roomstay/models/booking_models"
	"github.com/joy095/roomstay/models/customer_models"
	"github.com/joy095/roomstay/models/hotel_models"
	"github.com/joy095/roomstay/models/payment_models"
	"github.com/joy095/roomstay/utils/mail"
)

// PaymentController drives the booking's payment lifecycle: a draft becomes
// confirmed when paid, and either state can be cancelled. Confirmation is
// the only point where capacity is reserved in the room's ledger; drafts
// never occupy ledger capacity.
type PaymentController struct {
	DB       *pgxpool.Pool
	Razorpay clients.RazorpayClientWrapper
}

// NewPaymentController creates a new instance of PaymentController.
func NewPaymentController(db *pgxpool.Pool, razorpay clients.RazorpayClientWrapper) (*PaymentController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	return &PaymentController{DB: db, Razorpay: razorpay}, nil
}

// ConfirmPaymentRequest carries the gateway proof for a completed checkout.
// All three fields travel together; the body may be omitted entirely only
// when no gateway is configured.
type ConfirmPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (r *ConfirmPaymentRequest) complete() bool {
	return r.RazorpayOrderID != "" && r.RazorpayPaymentID != "" && r.RazorpaySignature != ""
}

// ConfirmBooking marks the payment paid and appends exactly one reservation
// interval to the room's ledger, both inside one transaction with the room
// row locked. Confirming an already-confirmed booking fails instead of
// double-reserving. With a gateway configured, the checkout proof is
// mandatory and verified before anything is read.
func (pc *PaymentController) ConfirmBooking(c *gin.Context) {
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if pc.Razorpay != nil {
		if !req.complete() {
			respondPaymentError(c, ErrMissingPaymentProof)
			return
		}
		if !pc.Razorpay.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			respondPaymentError(c, ErrInvalidPaymentProof)
			return
		}
	}

	ctx := c.Request.Context()

	tx, err := pc.DB.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start confirmation"})
		return
	}
	defer tx.Rollback(ctx)

	payment, booking, err := confirmBooking(ctx, txStore{tx}, bookingID, time.Now())
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	hotel, err := hotel_models.GetHotelByID(ctx, pc.DB, payment.HotelID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	customer, err := customer_models.GetCustomerByID(ctx, pc.DB, payment.UserID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit confirmation"})
		return
	}

	pc.invalidateSearchCache(ctx, hotel.City)
	if err := mail.SendPaymentConfirmation(customer, booking, hotel, payment); err != nil {
		logger.ErrorLogger.Errorf("Payment confirmation email for booking %s failed: %v", bookingID, err)
	}

	c.JSON(http.StatusOK, payment)
}

// CancelBooking reverses a booking. Confirmed bookings give back their
// ledger interval and are charged by proximity to check-in; drafts are
// simply deleted. Both paths remove the booking and payment rows together.
func (pc *PaymentController) CancelBooking(c *gin.Context) {
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	tx, err := pc.DB.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start cancellation"})
		return
	}
	defer tx.Rollback(ctx)

	payment, booking, err := cancelBooking(ctx, txStore{tx}, bookingID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	var hotelCity string
	if payment.PaymentStatus {
		hotel, err := hotel_models.GetHotelByID(ctx, pc.DB, payment.HotelID)
		if err != nil {
			respondPaymentError(c, err)
			return
		}
		hotelCity = hotel.City
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit cancellation"})
		return
	}

	if !payment.PaymentStatus {
		c.JSON(http.StatusOK, gin.H{"message": "Booking details deleted"})
		return
	}

	pc.invalidateSearchCache(ctx, hotelCity)

	days := payment_models.DaysUntil(time.Now(), booking.CheckInDate)
	charge := payment_models.CancellationCharge(booking.TotalAmount, days)
	refund := booking.TotalAmount - charge

	logger.InfoLogger.Infof("Booking %s cancelled %d day(s) before check-in, charge %v", bookingID, days, charge)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Cancelled booking and the amount refunded will be %v", refund),
	})
}

// MyBookings returns all of a user's payments, confirmed and draft. The
// caller identity forwarded by the gateway wins over the userId query
// parameter.
func (pc *PaymentController) MyBookings(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		var err error
		userID, err = uuid.Parse(c.Query("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing userId"})
			return
		}
	}

	payments, err := payment_models.GetPaymentsByUserID(c.Request.Context(), pc.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	bookingID, err := uuid.Parse(c.Query("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing bookingId"})
		return uuid.Nil, false
	}
	return bookingID, true
}

func (pc *PaymentController) invalidateSearchCache(ctx context.Context, city string) {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return
	}
	if err := hotel_models.InvalidateCityCache(ctx, rdb, city); err != nil {
		logger.ErrorLogger.Errorf("Search cache invalidation failed for %q: %v", city, err)
	}
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment_models.ErrPaymentNotFound),
		errors.Is(err, booking_models.ErrBookingNotFound),
		errors.Is(err, hotel_models.ErrHotelNotFound),
		errors.Is(err, hotel_models.ErrRoomNotFound),
		errors.Is(err, customer_models.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidPaymentProof), errors.Is(err, ErrMissingPaymentProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.ErrorLogger.Errorf("Payment operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment operation failed"})
	}
}
