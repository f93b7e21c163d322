package hotel_controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	redisclient "github.com/joy095/roomstay/config/redis"
	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/models/hotel_models"
)

const dateLayout = "2006-01-02"

// HotelController manages the hotel catalog and the search endpoint.
type HotelController struct {
	DB *pgxpool.Pool
}

// NewHotelController creates a new instance of HotelController.
func NewHotelController(db *pgxpool.Pool) *HotelController {
	return &HotelController{DB: db}
}

type RoomRequest struct {
	RoomType          string  `json:"room_type" binding:"required"`
	RoomSpecification string  `json:"room_specification"`
	RoomCount         int     `json:"room_count" binding:"required,min=1"`
	RoomRate          float64 `json:"room_rate" binding:"required,gt=0"`
}

type HotelRequest struct {
	HotelName         string        `json:"hotel_name" binding:"required"`
	HotelType         string        `json:"hotel_type" binding:"required"`
	City              string        `json:"city" binding:"required"`
	Rating            float64       `json:"rating" binding:"gte=0,lte=5"`
	OverallReview     string        `json:"overall_review"`
	NumReviews        int           `json:"num_reviews" binding:"gte=0"`
	PriceStartingFrom int           `json:"price_starting_from" binding:"gte=0"`
	Overview          string        `json:"overview"`
	LocationFeatures  []string      `json:"location_features"`
	Amenities         []string      `json:"amenities"`
	Images            []string      `json:"images" binding:"required,min=1"`
	Rooms             []RoomRequest `json:"rooms" binding:"required,min=1,dive"`
}

type ReviewRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Rating     float64   `json:"rating" binding:"required,gt=0,lte=5"`
	Comment    string    `json:"comment"`
}

// SearchHotels narrows hotels by city, amenities and rating, then reports
// which rooms of the surviving hotels can take the requested unit count over
// the requested dates. Hotels without an available room still appear in the
// hotel list; callers cross-reference available_room_ids.
func (hc *HotelController) SearchHotels(c *gin.Context) {
	city := c.Query("cityName")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cityName is required"})
		return
	}

	params := hotel_models.SearchParams{City: city}
	if v := c.Query("checkInDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkInDate, want YYYY-MM-DD"})
			return
		}
		params.CheckInDate = &t
	}
	if v := c.Query("checkOutDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOutDate, want YYYY-MM-DD"})
			return
		}
		params.CheckOutDate = &t
	}
	params.CountOfRooms, _ = strconv.Atoi(c.DefaultQuery("countOfRooms", "1"))
	params.PriceRangeMin, _ = strconv.Atoi(c.Query("priceRangeMin"))
	params.PriceRangeMax, _ = strconv.Atoi(c.Query("priceRangeMax"))
	params.Rating, _ = strconv.ParseFloat(c.Query("rating"), 64)
	if v := c.Query("amenities"); v != "" {
		params.Amenities = strings.Split(v, ",")
	}

	ctx := c.Request.Context()
	hotels, err := hc.cityHotels(ctx, city)
	if err != nil {
		logger.ErrorLogger.Errorf("Hotel search failed for city %q: %v", city, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hotel search failed"})
		return
	}

	c.JSON(http.StatusOK, hotel_models.FilterHotels(hotels, params))
}

// cityHotels serves the city stage of the search from the Redis cache when
// possible and falls back to the database.
func (hc *HotelController) cityHotels(ctx context.Context, city string) ([]hotel_models.Hotel, error) {
	rdb, rdbErr := redisclient.GetRedisClient(ctx)
	if rdbErr == nil {
		if hotels, ok := hotel_models.GetCachedCityHotels(ctx, rdb, city); ok {
			return hotels, nil
		}
	}

	hotels, err := hotel_models.GetHotelsByCity(ctx, hc.DB, city)
	if err != nil {
		return nil, err
	}
	if rdbErr == nil {
		hotel_models.CacheCityHotels(ctx, rdb, city, hotels)
	}
	return hotels, nil
}

// GetAllHotels lists every hotel without room details.
func (hc *HotelController) GetAllHotels(c *gin.Context) {
	hotels, err := hotel_models.GetAllHotels(c.Request.Context(), hc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list hotels: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hotels"})
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GetHotel returns one hotel with rooms and ledgers.
func (hc *HotelController) GetHotel(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}
	hotel, err := hotel_models.GetHotelByID(c.Request.Context(), hc.DB, hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// CreateHotel adds a hotel with its initial room types.
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	hotel := req.toHotel()
	created, err := hotel_models.CreateHotel(c.Request.Context(), hc.DB, hotel)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create hotel: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hotel"})
		return
	}

	hc.invalidateSearchCache(c.Request.Context(), created.City)
	c.JSON(http.StatusOK, created)
}

// UpdateHotel overwrites a hotel's descriptive fields.
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := hotel_models.GetHotelByID(ctx, hc.DB, hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}

	hotel := req.toHotel()
	hotel.ID = hotelID
	if err := hotel_models.UpdateHotel(ctx, hc.DB, hotel); err != nil {
		respondHotelError(c, err)
		return
	}

	hc.invalidateSearchCache(ctx, existing.City)
	if hotel.City != existing.City {
		hc.invalidateSearchCache(ctx, hotel.City)
	}
	c.JSON(http.StatusOK, hotel)
}

// DeleteHotel removes a hotel and, through cascade, its rooms and ledgers.
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	existing, err := hotel_models.GetHotelByID(ctx, hc.DB, hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	if err := hotel_models.DeleteHotel(ctx, hc.DB, hotelID); err != nil {
		respondHotelError(c, err)
		return
	}

	hc.invalidateSearchCache(ctx, existing.City)
	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted successfully"})
}

// AddRoom appends a room type to a hotel.
func (hc *HotelController) AddRoom(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := hotel_models.GetHotelByID(ctx, hc.DB, hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}

	room := &hotel_models.Room{
		RoomType:          req.RoomType,
		RoomSpecification: req.RoomSpecification,
		RoomCount:         req.RoomCount,
		RoomRate:          req.RoomRate,
	}
	created, err := hotel_models.AddRoom(ctx, hc.DB, hotelID, room)
	if err != nil {
		respondHotelError(c, err)
		return
	}

	hc.invalidateSearchCache(ctx, existing.City)
	c.JSON(http.StatusOK, created)
}

// GetReviews lists a hotel's guest reviews with reviewer names.
func (hc *HotelController) GetReviews(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := hotel_models.GetHotelByID(ctx, hc.DB, hotelID); err != nil {
		respondHotelError(c, err)
		return
	}
	reviews, err := hotel_models.GetReviews(ctx, hc.DB, hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// AddReview attaches a guest review to a hotel.
func (hc *HotelController) AddReview(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := hotel_models.GetHotelByID(ctx, hc.DB, hotelID); err != nil {
		respondHotelError(c, err)
		return
	}

	review := &hotel_models.GuestReview{
		HotelID:     hotelID,
		CustomerID:  req.CustomerID,
		GuestRating: req.Rating,
		Comment:     req.Comment,
	}
	created, err := hotel_models.AddReview(ctx, hc.DB, review)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteReview removes one review from a hotel.
func (hc *HotelController) DeleteReview(c *gin.Context) {
	hotelID, ok := hotelIDParam(c)
	if !ok {
		return
	}
	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	if err := hotel_models.DeleteReview(c.Request.Context(), hc.DB, hotelID, reviewID); err != nil {
		respondHotelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (r *HotelRequest) toHotel() *hotel_models.Hotel {
	hotel := &hotel_models.Hotel{
		HotelName:         r.HotelName,
		HotelType:         r.HotelType,
		City:              r.City,
		Rating:            r.Rating,
		OverallReview:     r.OverallReview,
		NumReviews:        r.NumReviews,
		PriceStartingFrom: r.PriceStartingFrom,
		Overview:          r.Overview,
		LocationFeatures:  r.LocationFeatures,
		Amenities:         r.Amenities,
		Images:            r.Images,
	}
	for _, room := range r.Rooms {
		hotel.Rooms = append(hotel.Rooms, hotel_models.Room{
			RoomType:          room.RoomType,
			RoomSpecification: room.RoomSpecification,
			RoomCount:         room.RoomCount,
			RoomRate:          room.RoomRate,
		})
	}
	return hotel
}

func hotelIDParam(c *gin.Context) (uuid.UUID, bool) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return uuid.Nil, false
	}
	return hotelID, true
}

func (hc *HotelController) invalidateSearchCache(ctx context.Context, city string) {
	rdb, err := redisclient.GetRedisClient(ctx)
	if err != nil {
		return
	}
	if err := hotel_models.InvalidateCityCache(ctx, rdb, city); err != nil {
		logger.ErrorLogger.Errorf("Search cache invalidation failed for %q: %v", city, err)
	}
}

func respondHotelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hotel_models.ErrHotelNotFound),
		errors.Is(err, hotel_models.ErrRoomNotFound),
		errors.Is(err, hotel_models.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.ErrorLogger.Errorf("Hotel operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hotel operation failed"})
	}
}
