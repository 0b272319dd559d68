package builders

import (
	"time"

	"roomstay/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{},
	}
}

// WithRoomType thêm loại phòng
func (b *ReservationBuilder) WithRoomType(roomTypeID uint) *ReservationBuilder {
	b.reservation.RoomTypeID = roomTypeID
	return b
}

// WithReference thêm mã đặt phòng
func (b *ReservationBuilder) WithReference(reference string) *ReservationBuilder {
	b.reservation.Reference = reference
	return b
}

// WithStay thêm khoảng thời gian ở và số phòng
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time, numberOfUnits int) *ReservationBuilder {
	b.reservation.CheckInDate = checkIn
	b.reservation.CheckOutDate = checkOut
	b.reservation.NumberOfUnits = numberOfUnits
	return b
}

// WithGuests thêm số khách
func (b *ReservationBuilder) WithGuests(guestCount, childCount int) *ReservationBuilder {
	b.reservation.GuestCount = guestCount
	b.reservation.ChildCount = childCount
	return b
}

// WithGuestInfo thêm thông tin liên hệ của khách
func (b *ReservationBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string) *ReservationBuilder {
	b.reservation.GuestName = guestName
	b.reservation.GuestPhone = guestPhone
	b.reservation.GuestEmail = guestEmail
	return b
}

// WithStatus thêm trạng thái
func (b *ReservationBuilder) WithStatus(status int) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

// WithPricing thêm snapshot giá tại thời điểm đặt
func (b *ReservationBuilder) WithPricing(nightlyRate, nights int, basePrice, taxAmount, totalPrice float64) *ReservationBuilder {
	b.reservation.NightlyRate = nightlyRate
	b.reservation.Nights = nights
	b.reservation.BasePrice = basePrice
	b.reservation.TaxAmount = taxAmount
	b.reservation.TotalPrice = totalPrice
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
