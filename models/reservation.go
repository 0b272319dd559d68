package models

import (
	"time"
)

// Reservation status constants
const (
	ReservationStatusPending   = 0
	ReservationStatusConfirmed = 1
	ReservationStatusCompleted = 2
	ReservationStatusCancelled = 3
)

// ActiveReservationStatuses các trạng thái còn giữ phòng
var ActiveReservationStatuses = []int{ReservationStatusPending, ReservationStatusConfirmed}

type Reservation struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Reference          string     `json:"reference" gorm:"uniqueIndex;size:24"` // Mã đặt phòng cho khách
	RoomTypeID         uint       `json:"roomTypeId" gorm:"index"`
	RoomType           RoomType   `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	CheckInDate        time.Time  `json:"checkInDate" gorm:"index"`  // Nửa đêm UTC
	CheckOutDate       time.Time  `json:"checkOutDate" gorm:"index"` // Nửa đêm UTC, exclusive
	NumberOfUnits      int        `json:"numberOfUnits"`             // Số phòng giữ trong suốt kỳ nghỉ
	GuestCount         int        `json:"guestCount"`
	ChildCount         int        `json:"childCount"`
	GuestName          string     `json:"guestName,omitempty"`
	GuestEmail         string     `json:"guestEmail,omitempty"`
	GuestPhone         string     `json:"guestPhone,omitempty"`
	Status             int        `json:"status"`
	NightlyRate        int        `json:"nightlyRate"` // Snapshot giá tại thời điểm đặt
	Nights             int        `json:"nights"`
	BasePrice          float64    `json:"basePrice"`
	TaxAmount          float64    `json:"taxAmount"`
	TotalPrice         float64    `json:"totalPrice"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsActive cho biết reservation còn giữ phòng hay không
func IsActive(status int) bool {
	return status == ReservationStatusPending || status == ReservationStatusConfirmed
}

// Overlaps kiểm tra khoảng [CheckInDate, CheckOutDate) có giao với [from, to) không
func (r *Reservation) Overlaps(from, to time.Time) bool {
	return r.CheckInDate.Before(to) && r.CheckOutDate.After(from)
}
