package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/joy095/roomstay/config/db"
	"github.com/joy095/roomstay/controllers/customer_controller"
	"github.com/joy095/roomstay/middlewares/auth"
)

func RegisterCustomerRoutes(router *gin.Engine) {
	customerController := customer_controller.NewCustomerController(db.DB)

	customerGroup := router.Group("/api/v1/customer")
	{
		customerGroup.POST("/register", customerController.Register)

		customerGroup.Use(auth.GatewayIdentity())
		{
			customerGroup.GET("/:id", customerController.Profile)
		}
	}
}
