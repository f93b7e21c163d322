package booking_controller

import (
	"context"
	"errors"
	"math"
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

const dateLayout = "2006-01-02"

// BookingController drafts bookings: it validates capacity, writes the
// booking and its unpaid payment in one transaction, and creates the
// gateway order the later confirmation will settle.
type BookingController struct {
	DB       *pgxpool.Pool
	Razorpay clients.RazorpayClientWrapper
}

// NewBookingController creates a new instance of BookingController. The
// Razorpay client may be nil when no gateway is configured; bookings then
// carry no gateway order.
func NewBookingController(db *pgxpool.Pool, razorpay clients.RazorpayClientWrapper) *BookingController {
	return &BookingController{DB: db, Razorpay: razorpay}
}

type BookingDetailsRequest struct {
	UserID            uuid.UUID `json:"user_id"`
	HotelID           uuid.UUID `json:"hotel_id" binding:"required"`
	RoomID            uuid.UUID `json:"room_id" binding:"required"`
	CustomerRoomCount int       `json:"customer_room_count" binding:"required,min=1"`
	CustomerDayCount  int       `json:"customer_day_count" binding:"required,min=1"`
	CheckInDate       string    `json:"check_in_date" binding:"required"`
	CheckOutDate      string    `json:"check_out_date" binding:"required"`
}

// BookRoom drafts a booking. The room check here is against the room's
// static unit count only; the interval-aware availability check belongs to
// search and to confirmation, which is when capacity is actually reserved.
func (bc *BookingController) BookRoom(c *gin.Context) {
	var req BookingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// The gateway-verified identity wins over whatever the body carries.
	if userID, ok := auth.UserID(c); ok {
		req.UserID = userID
	}
	if req.UserID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing caller identity"})
		return
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in_date, want YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out_date, want YYYY-MM-DD"})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out_date must be after check_in_date"})
		return
	}

	ctx := c.Request.Context()

	hotel, err := hotel_models.GetHotelByID(ctx, bc.DB, req.HotelID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	customer, err := customer_models.GetCustomerByID(ctx, bc.DB, req.UserID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	room, err := hotel.FindRoom(req.RoomID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if room.RoomCount < req.CustomerRoomCount {
		respondBookingError(c, ErrRoomUnavailable)
		return
	}
	if len(hotel.Images) == 0 {
		respondBookingError(c, ErrNoHotelImages)
		return
	}

	if err := customer_models.AddRecentVisit(ctx, bc.DB, customer, hotel.ID); err != nil {
		logger.ErrorLogger.Errorf("Failed to record recent visit for customer %s: %v", customer.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer profile"})
		return
	}

	booking, err := booking_models.NewBooking(req.UserID, req.HotelID, req.RoomID,
		req.CustomerRoomCount, req.CustomerDayCount, checkIn, checkOut, room.RoomRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to draft booking"})
		return
	}

	payment, err := payment_models.NewPayment(booking, hotel, room, hotel.Images[0])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to draft payment"})
		return
	}

	// Gateway order first: if the gateway is down nothing has been written
	// yet and the whole operation aborts cleanly.
	if bc.Razorpay != nil {
		orderID, err := bc.createGatewayOrder(booking.ID, payment.TotalAmount)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to create gateway order for booking %s: %v", booking.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
			return
		}
		payment.GatewayOrderID = orderID
	}

	tx, err := bc.DB.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start booking"})
		return
	}
	defer tx.Rollback(ctx)

	if err := booking_models.CreateBooking(ctx, tx, booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	if err := payment_models.CreatePayment(ctx, tx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment"})
		return
	}
	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit booking"})
		return
	}

	// Post-commit hooks. A failed email never unwinds the booking.
	bc.invalidateSearchCache(ctx, hotel.City)
	if err := mail.SendBookingConfirmation(customer, booking, hotel, room); err != nil {
		logger.ErrorLogger.Errorf("Booking confirmation email for %s failed: %v", booking.ID, err)
	}

	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) createGatewayOrder(bookingID uuid.UUID, amount float64) (string, error) {
	order, err := bc.Razorpay.CreateOrder(map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)), // paise
		"currency": "INR",
		"receipt":  bookingID.String(),
	})
	if err != nil {
		return "", err
	}
	orderID, _ := order["id"].(string)
	return orderID, nil
}

func (bc *BookingController) invalidateSearchCache(ctx context.Context, city string) {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return
	}
	if err := hotel_models.InvalidateCityCache(ctx, rdb, city); err != nil {
		logger.ErrorLogger.Errorf("Search cache invalidation failed for %q: %v", city, err)
	}
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hotel_models.ErrHotelNotFound),
		errors.Is(err, hotel_models.ErrRoomNotFound),
		errors.Is(err, customer_models.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoHotelImages):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.ErrorLogger.Errorf("Booking failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book room"})
	}
}
