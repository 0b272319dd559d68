package services

import (
	"time"

	"roomstay/models"
)

// NormalizeDay chuẩn hóa thời điểm về nửa đêm UTC cùng ngày
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AggregateDailyOccupancy cộng dồn số phòng đã giữ theo từng ngày trong [from, to).
// Ngày trả phòng không tính là ngày ở. Mọi ngày trong cửa sổ đều có mặt trong map,
// mặc định 0. Kết quả không phụ thuộc thứ tự duyệt reservation.
func AggregateDailyOccupancy(reservations []models.Reservation, from, to time.Time) map[time.Time]int {
	from = NormalizeDay(from)
	to = NormalizeDay(to)

	occupancy := make(map[time.Time]int)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		occupancy[day] = 0
	}

	for _, r := range reservations {
		if !models.IsActive(r.Status) {
			continue
		}
		start := NormalizeDay(r.CheckInDate)
		if start.Before(from) {
			start = from
		}
		end := NormalizeDay(r.CheckOutDate)
		if end.After(to) {
			end = to
		}
		for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
			occupancy[day] += r.NumberOfUnits
		}
	}

	return occupancy
}

// MaxOccupancy trả về số phòng bị giữ cao nhất trong một ngày, 0 nếu cửa sổ rỗng
func MaxOccupancy(occupancy map[time.Time]int) int {
	max := 0
	for _, units := range occupancy {
		if units > max {
			max = units
		}
	}
	return max
}

// AvailabilityService tính occupancy theo ngày cho một loại phòng
type AvailabilityService struct {
	reservations ReservationStore
}

func NewAvailabilityService(reservations ReservationStore) *AvailabilityService {
	return &AvailabilityService{reservations: reservations}
}

// DailyOccupancy trả về map ngày -> số phòng đã giữ trong [from, to).
// Luôn đọc trạng thái hiện tại, không cache.
func (s *AvailabilityService) DailyOccupancy(roomTypeID uint, from, to time.Time) (map[time.Time]int, error) {
	from = NormalizeDay(from)
	to = NormalizeDay(to)

	reservations, err := s.reservations.FindActiveOverlapping(roomTypeID, from, to)
	if err != nil {
		return nil, err
	}

	return AggregateDailyOccupancy(reservations, from, to), nil
}
