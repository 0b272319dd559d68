package services

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"roomstay/constants"
	"roomstay/errors"
	"roomstay/models"
	"roomstay/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoomTypeStore giả lập RoomTypeStore trong bộ nhớ
type fakeRoomTypeStore struct {
	roomTypes map[uint]models.RoomType
}

func newFakeRoomTypeStore(roomTypes ...models.RoomType) *fakeRoomTypeStore {
	store := &fakeRoomTypeStore{roomTypes: make(map[uint]models.RoomType)}
	for _, rt := range roomTypes {
		store.roomTypes[rt.ID] = rt
	}
	return store
}

func (s *fakeRoomTypeStore) GetByID(id uint) (*models.RoomType, error) {
	rt, ok := s.roomTypes[id]
	if !ok {
		return nil, errors.ErrRoomTypeNotFound
	}
	copied := rt
	return &copied, nil
}

// fakeReservationStore giả lập ReservationStore, an toàn khi gọi song song
type fakeReservationStore struct {
	mu           sync.Mutex
	nextID       uint
	reservations []models.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{}
}

func (s *fakeReservationStore) add(r models.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	s.reservations = append(s.reservations, r)
}

func (s *fakeReservationStore) findActiveOverlappingLocked(roomTypeID uint, from, to time.Time) []models.Reservation {
	var overlapping []models.Reservation
	for _, r := range s.reservations {
		if r.RoomTypeID != roomTypeID || !models.IsActive(r.Status) {
			continue
		}
		if r.Overlaps(from, to) {
			overlapping = append(overlapping, r)
		}
	}
	return overlapping
}

func (s *fakeReservationStore) FindActiveOverlapping(roomTypeID uint, from, to time.Time) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findActiveOverlappingLocked(roomTypeID, from, to), nil
}

func (s *fakeReservationStore) CreateIfAvailable(r *models.Reservation, totalUnits int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reservations {
		if existing.Reference == r.Reference {
			return errors.ErrReferenceCollision
		}
	}

	overlapping := s.findActiveOverlappingLocked(r.RoomTypeID, r.CheckInDate, r.CheckOutDate)
	occupancy := AggregateDailyOccupancy(overlapping, r.CheckInDate, r.CheckOutDate)
	if totalUnits-MaxOccupancy(occupancy) < r.NumberOfUnits {
		return errors.ErrInventoryConflict
	}

	s.nextID++
	r.ID = s.nextID
	s.reservations = append(s.reservations, *r)
	return nil
}

func (s *fakeReservationStore) GetByID(id uint) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, errors.ErrReservationNotFound
}

func (s *fakeReservationStore) GetByReference(reference string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.Reference == reference {
			copied := r
			return &copied, nil
		}
	}
	return nil, errors.ErrReservationNotFound
}

func (s *fakeReservationStore) List() ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reservation(nil), s.reservations...), nil
}

func (s *fakeReservationStore) Save(r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reservations {
		if s.reservations[i].ID == r.ID {
			s.reservations[i] = *r
			return nil
		}
	}
	return errors.ErrReservationNotFound
}

func (s *fakeReservationStore) CompleteBefore(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated int64
	for i := range s.reservations {
		if s.reservations[i].Status == models.ReservationStatusConfirmed &&
			!s.reservations[i].CheckOutDate.After(cutoff) {
			s.reservations[i].Status = models.ReservationStatusCompleted
			updated++
		}
	}
	return updated, nil
}

var testNow = time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, 1, 10+offset, 0, 0, 0, 0, time.UTC)
}

func newTestBookingService(roomTypes *fakeRoomTypeStore, reservations *fakeReservationStore) *BookingService {
	return NewBookingService(BookingServiceOptions{
		RoomTypes:    roomTypes,
		Reservations: reservations,
		Logger:       logger.NewDefaultLogger(logger.ErrorLevel),
		Now:          func() time.Time { return testNow },
	})
}

func standardRoomType() models.RoomType {
	return models.RoomType{
		ID:              1,
		Name:            "Deluxe Sea View",
		NightlyRate:     1000,
		CapacityPerUnit: 3,
		TotalUnits:      5,
		IsBookable:      true,
	}
}

func standardRequest() BookingRequest {
	return BookingRequest{
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 2,
		GuestCount:    4,
		GuestName:     "Nguyễn Văn A",
		GuestPhone:    "0912345678",
		GuestEmail:    "guest@example.com",
	}
}

func TestEvaluateBookingRequest_Accepted(t *testing.T) {
	reservations := newFakeReservationStore()
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	decision, err := svc.EvaluateBookingRequest(standardRequest())

	require.NoError(t, err)
	require.True(t, decision.Accepted)
	require.NotNil(t, decision.Reservation)

	r := decision.Reservation
	assert.Equal(t, models.ReservationStatusConfirmed, r.Status)
	assert.Contains(t, r.Reference, constants.ReferencePrefix)
	assert.Equal(t, 1000, r.NightlyRate)
	assert.Equal(t, 3, r.Nights)
	assert.Equal(t, float64(6000), r.BasePrice)
	assert.Equal(t, float64(1080), r.TaxAmount)
	assert.Equal(t, float64(7080), r.TotalPrice)
}

func TestEvaluateBookingRequest_RoomTypeMissing(t *testing.T) {
	svc := newTestBookingService(newFakeRoomTypeStore(), newFakeReservationStore())

	decision, err := svc.EvaluateBookingRequest(standardRequest())

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeRoomUnavailable, decision.Reason)
}

func TestEvaluateBookingRequest_NotBookable(t *testing.T) {
	roomType := standardRoomType()
	roomType.IsBookable = false
	svc := newTestBookingService(newFakeRoomTypeStore(roomType), newFakeReservationStore())

	decision, err := svc.EvaluateBookingRequest(standardRequest())

	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeRoomUnavailable, decision.Reason)
}

func TestEvaluateBookingRequest_CapacityBoundary(t *testing.T) {
	// 3 phòng x sức chứa 3 = tối đa 9 khách
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), newFakeReservationStore())

	req := standardRequest()
	req.NumberOfUnits = 3
	req.GuestCount = 9
	decision, err := svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.True(t, decision.Accepted)

	req = standardRequest()
	req.CheckInDate = day(20)
	req.CheckOutDate = day(22)
	req.NumberOfUnits = 3
	req.GuestCount = 10
	decision, err = svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeCapacityExceeded, decision.Reason)
}

func TestEvaluateBookingRequest_InvalidDates(t *testing.T) {
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), newFakeReservationStore())

	req := standardRequest()
	req.CheckOutDate = req.CheckInDate
	decision, err := svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeInvalidDateRange, decision.Reason)

	req = standardRequest()
	req.CheckInDate = day(-2)
	req.CheckOutDate = day(1)
	decision, err = svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeInvalidDateRange, decision.Reason)
}

func TestEvaluateBookingRequest_UnitCountInvalid(t *testing.T) {
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), newFakeReservationStore())

	req := standardRequest()
	req.NumberOfUnits = 0
	req.GuestCount = 0
	decision, err := svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeUnitCountInvalid, decision.Reason)

	req = standardRequest()
	req.NumberOfUnits = 6
	req.GuestCount = 6
	decision, err = svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeUnitCountInvalid, decision.Reason)
}

func TestEvaluateBookingRequest_SaturationBoundary(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1AAAA",
		RoomTypeID:    1,
		CheckInDate:   day(4),
		CheckOutDate:  day(9),
		NumberOfUnits: 3,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	// Còn đúng 2 phòng trống
	req := standardRequest()
	req.NumberOfUnits = 2
	decision, err := svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.True(t, decision.Accepted)

	// Hết phòng, đơn tiếp theo bị từ chối kèm chi tiết chồng lấn
	req = standardRequest()
	req.NumberOfUnits = 1
	req.GuestCount = 1
	decision, err = svc.EvaluateBookingRequest(req)
	require.NoError(t, err)
	assert.False(t, decision.Accepted)
	assert.Equal(t, errors.ErrCodeInventoryConflict, decision.Reason)
	require.NotNil(t, decision.ConflictDetail)
	assert.Equal(t, "RSV1AAAA", decision.ConflictDetail.Reference)
}

func TestEvaluateBookingRequest_CheckoutDayReusable(t *testing.T) {
	roomType := standardRoomType()
	roomType.TotalUnits = 1
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1BBBB",
		RoomTypeID:    1,
		CheckInDate:   day(3),
		CheckOutDate:  day(5),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(roomType), reservations)

	// Check-in đúng ngày trả phòng của đơn trước
	req := standardRequest()
	req.NumberOfUnits = 1
	req.GuestCount = 2
	decision, err := svc.EvaluateBookingRequest(req)

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
}

func TestEvaluateBookingRequest_CancelledFreesInventory(t *testing.T) {
	roomType := standardRoomType()
	roomType.TotalUnits = 1
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1CCCC",
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusCancelled,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(roomType), reservations)

	req := standardRequest()
	req.NumberOfUnits = 1
	req.GuestCount = 2
	decision, err := svc.EvaluateBookingRequest(req)

	require.NoError(t, err)
	assert.True(t, decision.Accepted)
}

func TestEvaluateBookingRequest_ConcurrentSingleUnit(t *testing.T) {
	roomType := standardRoomType()
	roomType.TotalUnits = 1
	reservations := newFakeReservationStore()
	svc := newTestBookingService(newFakeRoomTypeStore(roomType), reservations)

	const workers = 8
	var wg sync.WaitGroup
	accepted := make(chan *BookingDecision, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := standardRequest()
			req.NumberOfUnits = 1
			req.GuestCount = 2
			decision, err := svc.EvaluateBookingRequest(req)
			if !assert.NoError(t, err) {
				return
			}
			if decision.Accepted {
				accepted <- decision
			}
		}()
	}
	wg.Wait()
	close(accepted)

	// Đúng một đơn được nhận, mọi đơn còn lại bị từ chối
	assert.Len(t, accepted, 1)
	stored, err := reservations.List()
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestEvaluateBookingRequest_ReferenceRetry(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSVDUP",
		RoomTypeID:    1,
		CheckInDate:   day(20),
		CheckOutDate:  day(21),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})

	refs := []string{"RSVDUP", "RSVFRESH"}
	calls := 0
	svc := NewBookingService(BookingServiceOptions{
		RoomTypes:    newFakeRoomTypeStore(standardRoomType()),
		Reservations: reservations,
		Logger:       logger.NewDefaultLogger(logger.ErrorLevel),
		Now:          func() time.Time { return testNow },
		NewReference: func() string {
			ref := refs[calls%len(refs)]
			calls++
			return ref
		},
	})

	decision, err := svc.EvaluateBookingRequest(standardRequest())

	require.NoError(t, err)
	require.True(t, decision.Accepted)
	assert.Equal(t, "RSVFRESH", decision.Reservation.Reference)
	assert.Equal(t, 2, calls)
}

func TestEvaluateBookingRequest_ReferenceExhausted(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSVDUP",
		RoomTypeID:    1,
		CheckInDate:   day(20),
		CheckOutDate:  day(21),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})

	svc := NewBookingService(BookingServiceOptions{
		RoomTypes:    newFakeRoomTypeStore(standardRoomType()),
		Reservations: reservations,
		Logger:       logger.NewDefaultLogger(logger.ErrorLevel),
		Now:          func() time.Time { return testNow },
		NewReference: func() string { return "RSVDUP" },
	})

	decision, err := svc.EvaluateBookingRequest(standardRequest())

	require.Error(t, err)
	assert.Nil(t, decision)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeReferenceGeneration, appErr.Code)
}

func TestEvaluateBookingRequest_NeverOvercommits(t *testing.T) {
	roomType := standardRoomType()
	roomType.TotalUnits = 4
	reservations := newFakeReservationStore()
	svc := newTestBookingService(newFakeRoomTypeStore(roomType), reservations)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		start := rng.Intn(28) + 1
		length := rng.Intn(6) + 1
		units := rng.Intn(3) + 1
		req := standardRequest()
		req.CheckInDate = day(start)
		req.CheckOutDate = day(start + length)
		req.NumberOfUnits = units
		req.GuestCount = units

		_, err := svc.EvaluateBookingRequest(req)
		require.NoError(t, err)
	}

	// Sau mọi lần nhận, không ngày nào vượt quá tổng số phòng
	occupancy, err := svc.Availability().DailyOccupancy(1, day(0), day(40))
	require.NoError(t, err)
	for d, units := range occupancy {
		assert.LessOrEqual(t, units, roomType.TotalUnits, "ngày %v", d)
	}
}

func TestDailyOccupancy_IdempotentRead(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1KKKK",
		RoomTypeID:    1,
		CheckInDate:   day(2),
		CheckOutDate:  day(6),
		NumberOfUnits: 2,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := NewAvailabilityService(reservations)

	first, err := svc.DailyOccupancy(1, day(0), day(8))
	require.NoError(t, err)
	second, err := svc.DailyOccupancy(1, day(0), day(8))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCancel(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1DDDD",
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	cancelled, err := svc.Cancel(1, "đổi kế hoạch")

	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, cancelled.Status)
	assert.Equal(t, "đổi kế hoạch", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	stored, err := reservations.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, stored.Status)
}

func TestCancel_LeadTimeClosed(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1EEEE",
		RoomTypeID:    1,
		CheckInDate:   testNow.Add(12 * time.Hour),
		CheckOutDate:  day(3),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	_, err := svc.Cancel(1, "đổi kế hoạch")

	assert.ErrorIs(t, err, errors.ErrCancellationClosed)
}

func TestCancel_FinalStatus(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1FFFF",
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusCancelled,
	})
	reservations.add(models.Reservation{
		Reference:     "RSV1GGGG",
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusCompleted,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	_, err := svc.Cancel(1, "muộn rồi")
	assert.ErrorIs(t, err, errors.ErrStatusFinal)

	_, err = svc.Cancel(2, "muộn rồi")
	assert.ErrorIs(t, err, errors.ErrStatusFinal)
}

func TestCompletePastStays(t *testing.T) {
	reservations := newFakeReservationStore()
	reservations.add(models.Reservation{
		Reference:     "RSV1HHHH",
		RoomTypeID:    1,
		CheckInDate:   day(-5),
		CheckOutDate:  day(-2),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})
	reservations.add(models.Reservation{
		Reference:     "RSV1IIII",
		RoomTypeID:    1,
		CheckInDate:   day(5),
		CheckOutDate:  day(8),
		NumberOfUnits: 1,
		Status:        models.ReservationStatusConfirmed,
	})
	svc := newTestBookingService(newFakeRoomTypeStore(standardRoomType()), reservations)

	updated, err := svc.CompletePastStays()

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	past, err := reservations.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCompleted, past.Status)

	upcoming, err := reservations.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, upcoming.Status)
}
