package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/roomstay/clients"
	"github.com/joy095/roomstay/config/db"
	"github.com/joy095/roomstay/controllers/booking_controller"
	middleware "github.com/joy095/roomstay/middlewares"
	"github.com/joy095/roomstay/middlewares/auth"
)

func RegisterBookingRoutes(router *gin.Engine) {
	bookingController := booking_controller.NewBookingController(db.DB, clients.NewRazorpayClientFromEnv())

	// Protected routes
	protected := router.Group("/api/v1/booking")
	protected.Use(auth.GatewayIdentity())
	{
		protected.POST("/book-room", middleware.NewRateLimiter("10-1m", "bookRoom"), bookingController.BookRoom)
	}
}
