package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Admission rejection codes
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeUnitCountInvalid ErrorCode = "UNIT_COUNT_INVALID"
	ErrCodeInventoryConflict ErrorCode = "INVENTORY_CONFLICT"

	// Cancellation codes
	ErrCodeCancellationClosed ErrorCode = "CANCELLATION_CLOSED"
	ErrCodeStatusFinal        ErrorCode = "STATUS_FINAL"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Internal errors
	ErrCodeReferenceGeneration ErrorCode = "REFERENCE_GENERATION_FAILED"
	ErrCodeStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

var (
	// RoomType errors
	ErrRoomTypeNotFound = errors.New("room type not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInventoryConflict   = errors.New("insufficient available units")
	ErrReferenceCollision  = errors.New("reservation reference already exists")
	ErrStatusFinal         = errors.New("reservation already cancelled or completed")
	ErrCancellationClosed  = errors.New("cancellation window has closed")
)
