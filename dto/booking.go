package dto

import "time"

// CreateBookingRequest là DTO cho request đặt phòng
type CreateBookingRequest struct {
	RoomTypeID    uint   `json:"roomTypeId" binding:"required"`
	CheckInDate   string `json:"checkInDate" binding:"required"`
	CheckOutDate  string `json:"checkOutDate" binding:"required"`
	NumberOfUnits int    `json:"numberOfUnits" binding:"required"`
	GuestCount    int    `json:"guestCount" binding:"required"`
	ChildCount    int    `json:"childCount"`
	GuestName     string `json:"guestName" binding:"required"`
	GuestEmail    string `json:"guestEmail,omitempty"`
	GuestPhone    string `json:"guestPhone" binding:"required"`
}

// CancelBookingRequest là DTO cho request hủy đặt phòng
type CancelBookingRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Reason string `json:"reason"`
}

// PricingResponse snapshot giá của reservation
type PricingResponse struct {
	NightlyRate int     `json:"nightlyRate"`
	Nights      int     `json:"nights"`
	BasePrice   float64 `json:"basePrice"`
	TaxAmount   float64 `json:"taxAmount"`
	TotalPrice  float64 `json:"totalPrice"`
}

// BookingRoomTypeResponse thông tin loại phòng kèm theo reservation
type BookingRoomTypeResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ReservationResponse là DTO cho response của reservation
type ReservationResponse struct {
	ID                 uint                    `json:"id"`
	Reference          string                  `json:"reference"`
	RoomType           BookingRoomTypeResponse `json:"roomType"`
	CheckInDate        string                  `json:"checkInDate"`
	CheckOutDate       string                  `json:"checkOutDate"`
	NumberOfUnits      int                     `json:"numberOfUnits"`
	GuestCount         int                     `json:"guestCount"`
	ChildCount         int                     `json:"childCount"`
	GuestName          string                  `json:"guestName,omitempty"`
	GuestEmail         string                  `json:"guestEmail,omitempty"`
	GuestPhone         string                  `json:"guestPhone,omitempty"`
	Status             int                     `json:"status"`
	Pricing            PricingResponse         `json:"pricing"`
	CancelledAt        *time.Time              `json:"cancelledAt,omitempty"`
	CancellationReason string                  `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}
