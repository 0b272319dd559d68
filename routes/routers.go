package routes

import (
	"context"
	"net/http"

	"roomstay/config"
	"roomstay/controllers"
	middlewares "roomstay/middleware"
	"roomstay/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody, bookingService *services.BookingService) {

	reservationStore := services.NewGormReservationStore(db)
	bookingController := controllers.NewBookingController(bookingService, reservationStore)
	roomTypeController := controllers.NewRoomTypeController(db, bookingService.Availability())

	router.Use(middlewares.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())

	v1.GET("/roomtypes", roomTypeController.GetRoomTypes)
	v1.GET("/roomtypes/:id", roomTypeController.GetRoomTypeDetail)
	v1.POST("/roomtypes", middlewares.AuthMiddleware(1, 2), roomTypeController.CreateRoomType)
	v1.PUT("/roomtypeUpdate", middlewares.AuthMiddleware(1, 2), roomTypeController.UpdateRoomType)
	v1.PUT("/roomtypeBookable", middlewares.AuthMiddleware(1, 2), roomTypeController.ChangeRoomTypeBookable)
	v1.GET("/checkRoomType", roomTypeController.GetRoomTypeCalendar)

	v1.POST("/booking", bookingController.CreateBooking)
	v1.GET("/booking", middlewares.AuthMiddleware(1, 2), bookingController.GetBookings)
	v1.GET("/booking/:id", bookingController.GetBookingDetail)
	v1.GET("/bookingLookup", bookingController.LookupBooking)
	v1.PUT("/bookingCancel", bookingController.CancelBooking)

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "roomtypes"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"url":     resp.SecureURL,
		})
	})
}
