package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/joy095/roomstay/clients"
	"github.com/joy095/roomstay/config/db"
	"github.com/joy095/roomstay/controllers/payment_controller"
	"github.com/joy095/roomstay/middlewares/auth"
)

func RegisterPaymentRoutes(router *gin.Engine) {
	controller, err := payment_controller.NewPaymentController(db.DB, clients.NewRazorpayClientFromEnv())
	if err != nil {
		panic(fmt.Errorf("failed to initialize payment controller: %w", err))
	}

	// All routes within this group are protected by the gateway identity middleware
	protected := router.Group("/api/v1/payment")
	protected.Use(auth.GatewayIdentity())
	{
		protected.POST("/pay", controller.ConfirmBooking)
		protected.GET("/myBookings", controller.MyBookings)
		protected.DELETE("/deleteMyBooking", controller.CancelBooking)
	}
}
