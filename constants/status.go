package constants

import "time"

// Pricing
const (
	// TaxRate thuế cố định áp lên giá cơ bản
	TaxRate = 0.18
)

// Booking
const (
	// ReferencePrefix tiền tố mã đặt phòng
	ReferencePrefix = "RSV"
	// ReferenceRetries số lần sinh lại mã khi bị trùng
	ReferenceRetries = 3
	// CancellationLeadTime thời gian tối thiểu trước check-in để được hủy đơn
	CancellationLeadTime = 24 * time.Hour
)

// DateLayout định dạng ngày trên API
const DateLayout = "02/01/2006"
