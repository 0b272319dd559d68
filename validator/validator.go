package validator

import (
	"regexp"
	"time"

	"roomstay/constants"
	"roomstay/dto"
	"roomstay/errors"
	"roomstay/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// ValidateStruct chạy các rule tag trên struct bất kỳ
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}
	return nil
}

// ValidateRoomType validate thông tin loại phòng
func ValidateRoomType(roomType *models.RoomType) error {
	if roomType.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên loại phòng không được để trống", nil)
	}

	if err := roomType.ValidateInventory(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Tồn kho loại phòng không hợp lệ", err)
	}

	if roomType.CapacityPerUnit < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Sức chứa mỗi phòng phải lớn hơn 0", nil)
	}

	return nil
}

// ValidateBookingRequest validate request đặt phòng trước khi đưa vào xét duyệt
func ValidateBookingRequest(req *dto.CreateBookingRequest) error {
	if req.RoomTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID loại phòng không được để trống", nil)
	}

	checkInDate, err := time.Parse(constants.DateLayout, req.CheckInDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận phòng không hợp lệ", err)
	}

	checkOutDate, err := time.Parse(constants.DateLayout, req.CheckOutDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả phòng không hợp lệ", err)
	}

	if !checkOutDate.After(checkInDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	if req.GuestCount < 1 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số khách phải lớn hơn 0", nil)
	}

	if req.ChildCount < 0 || req.ChildCount > req.GuestCount {
		return errors.NewAppError(errors.ErrCodeValidation, "Số trẻ em không hợp lệ", nil)
	}

	if req.GuestName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách không được để trống", nil)
	}

	if req.GuestPhone == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số điện thoại khách không được để trống", nil)
	}

	if !isValidPhone(req.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeValidation, "Số điện thoại khách không hợp lệ", nil)
	}

	if req.GuestEmail != "" && !isValidEmail(req.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeValidation, "Email khách không hợp lệ", nil)
	}

	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}
