package main

import (
	"log"
	"net/http"
	"os"

	"roomstay/config"
	"roomstay/jobs"
	"roomstay/models"
	"roomstay/routes"
	"roomstay/services"
	"roomstay/services/logger"
	"roomstay/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(&models.RoomType{}, &models.Reservation{}); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	bookingService := services.NewBookingService(services.BookingServiceOptions{
		RoomTypes:    services.NewGormRoomTypeStore(config.DB),
		Reservations: services.NewGormReservationStore(config.DB),
		Mailer:       services.NewMailService(),
		Broadcaster:  notification.NewMelodyService(m),
		Logger:       logger.NewDefaultLogger(logger.InfoLevel),
	})
	jobs.SetStayCompleter(bookingService)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m, bookingService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
