package controllers

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"roomstay/config"
	"roomstay/constants"
	"roomstay/dto"
	"roomstay/errors"
	"roomstay/models"
	"roomstay/response"
	"roomstay/services"
	"roomstay/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoomTypeController struct {
	db           *gorm.DB
	availability *services.AvailabilityService
}

func NewRoomTypeController(db *gorm.DB, availability *services.AvailabilityService) *RoomTypeController {
	return &RoomTypeController{
		db:           db,
		availability: availability,
	}
}

func convertToRoomTypeResponse(roomType models.RoomType) dto.RoomTypeResponse {
	return dto.RoomTypeResponse{
		ID:              roomType.ID,
		Name:            roomType.Name,
		Description:     roomType.Description,
		NightlyRate:     roomType.NightlyRate,
		CapacityPerUnit: roomType.CapacityPerUnit,
		TotalUnits:      roomType.TotalUnits,
		IsBookable:      roomType.IsBookable,
		Avatar:          roomType.Avatar,
		Img:             roomType.Img,
		NumBed:          roomType.NumBed,
		NumTolet:        roomType.NumTolet,
		Acreage:         roomType.Acreage,
		CreatedAt:       roomType.CreatedAt,
		UpdatedAt:       roomType.UpdatedAt,
	}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	cacheKey := "roomtypes:all"

	var roomTypes []models.RoomType

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &roomTypes); err != nil || len(roomTypes) == 0 {
		if err := ctrl.db.Find(&roomTypes).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, roomTypes, 60*time.Minute); err != nil {
			fmt.Printf("Lỗi khi lưu danh sách loại phòng vào Redis: %v\n", err)
		}
	}

	// Tìm gần đúng theo tên nếu có query
	if query := c.Query("name"); query != "" {
		roomTypes = services.SearchRoomTypes(roomTypes, query)
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	page := 0
	limit := 10
	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	total := len(roomTypes)
	start := page * limit
	end := start + limit
	if start >= total {
		roomTypes = []models.RoomType{}
	} else if end > total {
		roomTypes = roomTypes[start:]
	} else {
		roomTypes = roomTypes[start:end]
	}

	roomTypeResponses := make([]dto.RoomTypeResponse, 0, len(roomTypes))
	for _, roomType := range roomTypes {
		roomTypeResponses = append(roomTypeResponses, convertToRoomTypeResponse(roomType))
	}

	response.SuccessWithPagination(c, roomTypeResponses, page, limit, total)
}

func (ctrl *RoomTypeController) GetRoomTypeDetail(c *gin.Context) {
	roomTypeID := c.Param("id")

	var roomType models.RoomType
	if err := ctrl.db.Where("id = ?", roomTypeID).First(&roomType).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToRoomTypeResponse(roomType))
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var request dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateStruct(&request); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	roomType := models.RoomType{
		Name:            request.Name,
		Description:     request.Description,
		NightlyRate:     request.NightlyRate,
		CapacityPerUnit: request.CapacityPerUnit,
		TotalUnits:      request.TotalUnits,
		IsBookable:      true,
		Avatar:          request.Avatar,
		NumBed:          request.NumBed,
		NumTolet:        request.NumTolet,
		Acreage:         request.Acreage,
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctrl.db.Create(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateCatalogCache()
	response.Success(c, convertToRoomTypeResponse(roomType))
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	var request dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := ctrl.db.First(&roomType, request.ID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if request.Name != "" {
		roomType.Name = request.Name
	}
	if request.Description != "" {
		roomType.Description = request.Description
	}
	if request.NightlyRate > 0 {
		roomType.NightlyRate = request.NightlyRate
	}
	if request.CapacityPerUnit > 0 {
		roomType.CapacityPerUnit = request.CapacityPerUnit
	}
	if request.TotalUnits > 0 {
		roomType.TotalUnits = request.TotalUnits
	}
	if request.Avatar != "" {
		roomType.Avatar = request.Avatar
	}
	if request.NumBed > 0 {
		roomType.NumBed = request.NumBed
	}
	if request.NumTolet > 0 {
		roomType.NumTolet = request.NumTolet
	}
	if request.Acreage > 0 {
		roomType.Acreage = request.Acreage
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctrl.db.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateCatalogCache()
	response.Success(c, convertToRoomTypeResponse(roomType))
}

// ChangeRoomTypeBookable bật/tắt nhận đặt cho một loại phòng
func (ctrl *RoomTypeController) ChangeRoomTypeBookable(c *gin.Context) {
	var request dto.BookableRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := ctrl.db.First(&roomType, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	roomType.IsBookable = request.IsBookable
	if err := ctrl.db.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctrl.invalidateCatalogCache()
	response.Success(c, gin.H{"message": "Trạng thái nhận đặt đã được cập nhật"})
}

// GetRoomTypeCalendar trả về lịch phòng trống theo tháng cho một loại phòng.
// Chỉ để hiển thị, không dùng thay cho xét duyệt đặt phòng.
func (ctrl *RoomTypeController) GetRoomTypeCalendar(c *gin.Context) {
	roomTypeID, err := strconv.ParseUint(c.Query("roomTypeId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "roomTypeId không hợp lệ")
		return
	}

	parsedDate, err := time.Parse(constants.DateLayout, c.Query("date"))
	if err != nil {
		response.BadRequest(c, "Dữ liệu date không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := ctrl.db.First(&roomType, uint(roomTypeID)).Error; err != nil {
		response.NotFound(c)
		return
	}

	// Cửa sổ là cả tháng chứa ngày yêu cầu
	firstDay := time.Date(parsedDate.Year(), parsedDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := firstDay.AddDate(0, 1, 0)

	occupancy, err := ctrl.availability.DailyOccupancy(roomType.ID, firstDay, nextMonth)
	if err != nil {
		response.ServerError(c)
		return
	}

	var calendar []dto.CalendarDayResponse
	for day := firstDay; day.Before(nextMonth); day = day.AddDate(0, 0, 1) {
		committed := occupancy[day]
		calendar = append(calendar, dto.CalendarDayResponse{
			Date:      day.Format(constants.DateLayout),
			Committed: committed,
			Available: roomType.TotalUnits - committed,
		})
	}

	response.Success(c, calendar)
}

func (ctrl *RoomTypeController) invalidateCatalogCache() {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "roomtypes:all")
}
