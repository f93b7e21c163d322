package customer_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/models/customer_models"
)

// CustomerController exposes the guest profile operations the booking flow
// relies on. Authentication lives upstream; identity arrives as ids.
type CustomerController struct {
	DB *pgxpool.Pool
}

func NewCustomerController(db *pgxpool.Pool) *CustomerController {
	return &CustomerController{DB: db}
}

type RegisterCustomerRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// Register creates a customer profile.
func (cc *CustomerController) Register(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := customer_models.GetCustomerByEmail(ctx, cc.DB, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "customer already exists"})
		return
	} else if !errors.Is(err, customer_models.ErrCustomerNotFound) {
		logger.ErrorLogger.Errorf("Failed to check customer email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register customer"})
		return
	}

	customer, err := customer_models.CreateCustomer(ctx, cc.DB, req.UserName, req.Email)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Profile returns a customer by id, recent visits included.
func (cc *CustomerController) Profile(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	customer, err := customer_models.GetCustomerByID(c.Request.Context(), cc.DB, customerID)
	if err != nil {
		if errors.Is(err, customer_models.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}
