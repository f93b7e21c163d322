package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/roomstay/config/db"
	"github.com/joy095/roomstay/controllers/hotel_controller"
	middleware "github.com/joy095/roomstay/middlewares"
)

func RegisterHotelRoutes(router *gin.Engine) {
	hotelController := hotel_controller.NewHotelController(db.DB)

	hotels := router.Group("/api/v1/hotels")
	{
		hotels.GET("", hotelController.GetAllHotels)
		hotels.GET("/search", middleware.NewRateLimiter("30-1m", "hotelSearch"), hotelController.SearchHotels)
		hotels.GET("/:id", hotelController.GetHotel)
		hotels.POST("", hotelController.CreateHotel)
		hotels.PUT("/:id", hotelController.UpdateHotel)
		hotels.DELETE("/:id", hotelController.DeleteHotel)

		hotels.POST("/:id/rooms", hotelController.AddRoom)

		hotels.GET("/:id/reviews", hotelController.GetReviews)
		hotels.POST("/:id/reviews", hotelController.AddReview)
		hotels.DELETE("/:id/reviews/:reviewId", hotelController.DeleteReview)
	}
}
