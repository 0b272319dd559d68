package controllers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"roomstay/config"
	"roomstay/constants"
	"roomstay/dto"
	"roomstay/errors"
	"roomstay/models"
	"roomstay/response"
	"roomstay/services"
	"roomstay/utils"
	"roomstay/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookingService *services.BookingService
	reservations   services.ReservationStore
}

func NewBookingController(bookingService *services.BookingService, reservations services.ReservationStore) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		reservations:   reservations,
	}
}

func convertToReservationResponse(r models.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:        r.ID,
		Reference: r.Reference,
		RoomType: dto.BookingRoomTypeResponse{
			ID:     r.RoomType.ID,
			Name:   r.RoomType.Name,
			Avatar: r.RoomType.Avatar,
		},
		CheckInDate:   r.CheckInDate.Format(constants.DateLayout),
		CheckOutDate:  r.CheckOutDate.Format(constants.DateLayout),
		NumberOfUnits: r.NumberOfUnits,
		GuestCount:    r.GuestCount,
		ChildCount:    r.ChildCount,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		Status:        r.Status,
		Pricing: dto.PricingResponse{
			NightlyRate: r.NightlyRate,
			Nights:      r.Nights,
			BasePrice:   r.BasePrice,
			TaxAmount:   r.TaxAmount,
			TotalPrice:  r.TotalPrice,
		},
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// rejectionStatus ánh xạ mã từ chối sang HTTP status
func rejectionStatus(reason errors.ErrorCode) int {
	switch reason {
	case errors.ErrCodeRoomUnavailable:
		return http.StatusNotFound
	case errors.ErrCodeInventoryConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateBookingRequest(&request); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	checkInDate, err := time.Parse(constants.DateLayout, request.CheckInDate)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}

	checkOutDate, err := time.Parse(constants.DateLayout, request.CheckOutDate)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	decision, err := ctrl.bookingService.EvaluateBookingRequest(services.BookingRequest{
		RoomTypeID:    request.RoomTypeID,
		CheckInDate:   checkInDate,
		CheckOutDate:  checkOutDate,
		NumberOfUnits: request.NumberOfUnits,
		GuestCount:    request.GuestCount,
		ChildCount:    request.ChildCount,
		GuestName:     request.GuestName,
		GuestEmail:    request.GuestEmail,
		GuestPhone:    request.GuestPhone,
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeStorageUnavailable {
			response.ServiceUnavailable(c)
			return
		}
		response.ServerError(c)
		return
	}

	if !decision.Accepted {
		utils.LogInfo("Từ chối đặt phòng loại %d (%s): %s", request.RoomTypeID, decision.Reason, decision.Message)
		response.Rejection(c, rejectionStatus(decision.Reason), string(decision.Reason), decision.Message, decision.ConflictDetail)
		return
	}

	reservation, err := ctrl.reservations.GetByID(decision.Reservation.ID)
	if err != nil {
		response.ServerError(c)
		return
	}

	// Xóa cache danh sách đặt phòng
	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "reservations:all")
	}

	utils.LogInfo("Đơn %s được chấp nhận, tổng tiền %.0f", reservation.Reference, reservation.TotalPrice)
	response.Success(c, convertToReservationResponse(*reservation))
}

func (ctrl *BookingController) GetBookingDetail(c *gin.Context) {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	reservation, err := ctrl.reservations.GetByID(uint(reservationID))
	if err != nil {
		if stderrors.Is(err, errors.ErrReservationNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, convertToReservationResponse(*reservation))
}

// LookupBooking tra cứu reservation theo mã đặt phòng
func (ctrl *BookingController) LookupBooking(c *gin.Context) {
	reference := strings.TrimSpace(c.Query("reference"))
	if reference == "" {
		response.BadRequest(c, "Thiếu mã đặt phòng")
		return
	}

	reservation, err := ctrl.reservations.GetByReference(reference)
	if err != nil {
		if stderrors.Is(err, errors.ErrReservationNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, convertToReservationResponse(*reservation))
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	cacheKey := "reservations:all"

	var allReservations []models.Reservation

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	// Lấy dữ liệu từ Redis Cache, nếu không có thì truy vấn DB
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allReservations); err != nil || len(allReservations) == 0 {
		allReservations, err = ctrl.reservations.List()
		if err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allReservations, 10*time.Minute); err != nil {
			fmt.Printf("Lỗi khi lưu danh sách đặt phòng vào Redis: %v\n", err)
		}
	}

	// Lấy các tham số filter từ query
	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	phoneStr := c.Query("phoneNumber")
	statusFilter := c.Query("status")
	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")

	// Xử lý phân trang
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

	// Áp dụng bộ lọc
	filtered := make([]models.Reservation, 0)
	for _, reservation := range allReservations {
		if phoneStr != "" && !strings.Contains(strings.ToLower(reservation.GuestPhone), strings.ToLower(phoneStr)) {
			continue
		}
		if statusFilter != "" {
			parsedStatus, err := strconv.Atoi(statusFilter)
			if err == nil && reservation.Status != parsedStatus {
				continue
			}
		}
		if fromDateStr != "" {
			fromDate, err := time.Parse(constants.DateLayout, fromDateStr)
			if err != nil {
				response.BadRequest(c, "Sai định dạng fromDate")
				return
			}
			if reservation.CheckInDate.Before(fromDate) {
				continue
			}
		}
		if toDateStr != "" {
			toDate, err := time.Parse(constants.DateLayout, toDateStr)
			if err != nil {
				response.BadRequest(c, "Sai định dạng toDate")
				return
			}
			if reservation.CheckInDate.After(toDate) {
				continue
			}
		}
		filtered = append(filtered, reservation)
	}

	totalFiltered := len(filtered)

	// Xếp theo update mới nhất
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})

	// Áp dụng phân trang
	start := page * limit
	end := start + limit
	if start >= totalFiltered {
		filtered = []models.Reservation{}
	} else if end > totalFiltered {
		filtered = filtered[start:]
	} else {
		filtered = filtered[start:end]
	}

	reservationResponses := make([]dto.ReservationResponse, 0, len(filtered))
	for _, reservation := range filtered {
		reservationResponses = append(reservationResponses, convertToReservationResponse(reservation))
	}

	response.SuccessWithPagination(c, reservationResponses, page, limit, totalFiltered)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	var request dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := ctrl.bookingService.Cancel(request.ID, request.Reason)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrReservationNotFound):
			response.NotFound(c)
		case stderrors.Is(err, errors.ErrStatusFinal):
			response.Conflict(c, "Đơn đã hủy hoặc đã hoàn thành")
		case stderrors.Is(err, errors.ErrCancellationClosed):
			response.BadRequest(c, "Đã quá hạn hủy, liên hệ Admin để được hỗ trợ")
		default:
			response.ServerError(c)
		}
		return
	}

	rdb, redisErr := config.ConnectRedis()
	if redisErr == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "reservations:all")
	}

	response.Success(c, convertToReservationResponse(*reservation))
}
