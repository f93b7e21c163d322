package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joy095/roomstay/config"
	"github.com/joy095/roomstay/config/db"
	redisclient "github.com/joy095/roomstay/config/redis"
	"github.com/joy095/roomstay/logger"
	"github.com/joy095/roomstay/middlewares/cors"
	"github.com/joy095/roomstay/routes"
)

func init() {
	// Initialize loggers before using
	logger.InitLoggers()

	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redisclient.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	router := gin.Default()
	router.Use(cors.CorsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterHotelRoutes(router)
	routes.RegisterCustomerRoutes(router)
	routes.RegisterBookingRoutes(router)
	routes.RegisterPaymentRoutes(router)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.InfoLogger.Infof("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Errorf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}
	logger.InfoLogger.Info("Server stopped")
}
