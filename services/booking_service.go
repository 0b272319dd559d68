package services

import (
	stderrors "errors"
	"time"

	"roomstay/builders"
	"roomstay/constants"
	"roomstay/errors"
	"roomstay/models"
	"roomstay/services/logger"
	"roomstay/services/notification"
)

// BookingRequest yêu cầu đặt phòng đã qua parse, ngày chuẩn hóa nửa đêm UTC
type BookingRequest struct {
	RoomTypeID    uint
	CheckInDate   time.Time
	CheckOutDate  time.Time
	NumberOfUnits int
	GuestCount    int
	ChildCount    int
	GuestName     string
	GuestEmail    string
	GuestPhone    string
}

// ConflictDetail reservation chồng lấn sớm nhất, chỉ dùng để hiển thị cho khách
type ConflictDetail struct {
	Reference     string    `json:"reference"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	NumberOfUnits int       `json:"numberOfUnits"`
}

// BookingDecision kết quả xét duyệt một yêu cầu đặt phòng.
// Từ chối nghiệp vụ luôn trả về qua Decision, không trả về qua error.
type BookingDecision struct {
	Accepted       bool
	Reason         errors.ErrorCode
	Message        string
	ConflictDetail *ConflictDetail
	Reservation    *models.Reservation
}

func rejected(reason errors.ErrorCode, message string) *BookingDecision {
	return &BookingDecision{Reason: reason, Message: message}
}

// ConfirmationSender gửi xác nhận sau khi đặt phòng thành công
type ConfirmationSender interface {
	SendReservationEmail(to, guestName, reference string, totalPrice float64, checkIn, checkOut time.Time) error
}

// BookingBroadcaster phát thông báo realtime cho admin
type BookingBroadcaster interface {
	SendMessage(message string) error
}

// BookingService xét duyệt và ghi nhận đặt phòng
type BookingService struct {
	roomTypes    RoomTypeStore
	reservations ReservationStore
	availability *AvailabilityService
	mailer       ConfirmationSender
	broadcaster  BookingBroadcaster
	logger       logger.Logger
	locks        *KeyLock
	now          func() time.Time
	newReference func() string
}

// BookingServiceOptions các dependency của BookingService
type BookingServiceOptions struct {
	RoomTypes    RoomTypeStore
	Reservations ReservationStore
	Mailer       ConfirmationSender
	Broadcaster  BookingBroadcaster
	Logger       logger.Logger
	Now          func() time.Time
	NewReference func() string
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewReference == nil {
		opts.NewReference = GenerateReference
	}
	return &BookingService{
		roomTypes:    opts.RoomTypes,
		reservations: opts.Reservations,
		availability: NewAvailabilityService(opts.Reservations),
		mailer:       opts.Mailer,
		broadcaster:  opts.Broadcaster,
		logger:       opts.Logger,
		locks:        NewKeyLock(),
		now:          opts.Now,
		newReference: opts.NewReference,
	}
}

// Availability expose aggregator cho endpoint lịch phòng trống
func (s *BookingService) Availability() *AvailabilityService {
	return s.availability
}

// EvaluateBookingRequest xét duyệt yêu cầu đặt phòng.
// Các điều kiện tiên quyết kiểm tra theo thứ tự, sai điều kiện nào từ chối ngay
// với mã tương ứng. Error trả về chỉ dành cho sự cố hạ tầng.
func (s *BookingService) EvaluateBookingRequest(req BookingRequest) (*BookingDecision, error) {
	roomType, err := s.roomTypes.GetByID(req.RoomTypeID)
	if err != nil {
		if stderrors.Is(err, errors.ErrRoomTypeNotFound) {
			return rejected(errors.ErrCodeRoomUnavailable, "Loại phòng không tồn tại hoặc đã ngừng nhận đặt"), nil
		}
		return nil, errors.NewAppError(errors.ErrCodeStorageUnavailable, "Không đọc được loại phòng", err)
	}
	if !roomType.IsBookable {
		return rejected(errors.ErrCodeRoomUnavailable, "Loại phòng không tồn tại hoặc đã ngừng nhận đặt"), nil
	}

	if req.GuestCount > roomType.CapacityPerUnit*req.NumberOfUnits {
		return rejected(errors.ErrCodeCapacityExceeded, "Số khách vượt quá sức chứa của số phòng yêu cầu"), nil
	}

	checkIn := NormalizeDay(req.CheckInDate)
	checkOut := NormalizeDay(req.CheckOutDate)
	today := NormalizeDay(s.now())
	if !checkOut.After(checkIn) || checkIn.Before(today) {
		return rejected(errors.ErrCodeInvalidDateRange, "Khoảng ngày không hợp lệ"), nil
	}

	if req.NumberOfUnits < 1 || req.NumberOfUnits > roomType.TotalUnits {
		return rejected(errors.ErrCodeUnitCountInvalid, "Số phòng yêu cầu không hợp lệ"), nil
	}

	// Tuần tự hóa kiểm-tra-rồi-ghi theo room type
	unlock := s.locks.Lock(roomType.ID)
	defer unlock()

	overlapping, err := s.reservations.FindActiveOverlapping(roomType.ID, checkIn, checkOut)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeStorageUnavailable, "Không đọc được occupancy", err)
	}

	occupancy := AggregateDailyOccupancy(overlapping, checkIn, checkOut)
	available := roomType.TotalUnits - MaxOccupancy(occupancy)
	if available < req.NumberOfUnits {
		return s.rejectConflict(overlapping), nil
	}

	pricing := ComputePrice(roomType.NightlyRate, checkIn, checkOut, req.NumberOfUnits)

	reservation, err := s.persistReservation(req, roomType, checkIn, checkOut, pricing)
	if err != nil {
		if stderrors.Is(err, errors.ErrInventoryConflict) {
			// Thua race với một request song song, tồn kho đã bị giữ
			return s.rejectConflict(overlapping), nil
		}
		return nil, err
	}

	s.logger.Info("đã nhận đặt phòng %s: loại phòng %d, %d phòng, %s -> %s",
		reservation.Reference, roomType.ID, reservation.NumberOfUnits,
		checkIn.Format(constants.DateLayout), checkOut.Format(constants.DateLayout))

	go s.sendConfirmation(reservation, roomType)

	return &BookingDecision{Accepted: true, Reservation: reservation}, nil
}

// rejectConflict dựng quyết định từ chối kèm reservation chồng lấn sớm nhất
func (s *BookingService) rejectConflict(overlapping []models.Reservation) *BookingDecision {
	decision := rejected(errors.ErrCodeInventoryConflict, "Không đủ phòng trống trong khoảng thời gian này")

	var earliest *models.Reservation
	for i := range overlapping {
		if earliest == nil || overlapping[i].CheckInDate.Before(earliest.CheckInDate) {
			earliest = &overlapping[i]
		}
	}
	if earliest != nil {
		decision.ConflictDetail = &ConflictDetail{
			Reference:     earliest.Reference,
			CheckInDate:   earliest.CheckInDate,
			CheckOutDate:  earliest.CheckOutDate,
			NumberOfUnits: earliest.NumberOfUnits,
		}
	}
	return decision
}

// persistReservation ghi reservation, sinh lại mã khi trùng, tối đa ReferenceRetries lần
func (s *BookingService) persistReservation(req BookingRequest, roomType *models.RoomType, checkIn, checkOut time.Time, pricing Pricing) (*models.Reservation, error) {
	for attempt := 0; attempt < constants.ReferenceRetries; attempt++ {
		reservation := builders.NewReservationBuilder().
			WithRoomType(roomType.ID).
			WithReference(s.newReference()).
			WithStay(checkIn, checkOut, req.NumberOfUnits).
			WithGuests(req.GuestCount, req.ChildCount).
			WithGuestInfo(req.GuestName, req.GuestPhone, req.GuestEmail).
			WithStatus(models.ReservationStatusConfirmed).
			WithPricing(pricing.NightlyRate, pricing.Nights, pricing.BasePrice, pricing.TaxAmount, pricing.TotalPrice).
			Build()

		err := s.reservations.CreateIfAvailable(reservation, roomType.TotalUnits)
		if err == nil {
			return reservation, nil
		}
		if stderrors.Is(err, errors.ErrReferenceCollision) {
			s.logger.Warn("mã đặt phòng %s bị trùng, sinh lại", reservation.Reference)
			continue
		}
		if stderrors.Is(err, errors.ErrInventoryConflict) {
			return nil, err
		}
		return nil, errors.NewAppError(errors.ErrCodeStorageUnavailable, "Không ghi được reservation", err)
	}
	return nil, errors.NewAppError(errors.ErrCodeReferenceGeneration, "Sinh mã đặt phòng thất bại sau nhiều lần thử", nil)
}

// sendConfirmation gửi email và broadcast sau khi nhận đặt phòng.
// Lỗi ở đây chỉ log, không ảnh hưởng quyết định đã trả về.
func (s *BookingService) sendConfirmation(reservation *models.Reservation, roomType *models.RoomType) {
	if s.mailer != nil && reservation.GuestEmail != "" {
		if err := s.mailer.SendReservationEmail(
			reservation.GuestEmail, reservation.GuestName, reservation.Reference,
			reservation.TotalPrice, reservation.CheckInDate, reservation.CheckOutDate,
		); err != nil {
			s.logger.Error("gửi email xác nhận cho %s thất bại: %v", reservation.Reference, err)
		}
	}

	if s.broadcaster != nil {
		message := notification.NewBookingMessageBuilder(reservation.Reference, roomType.Name, reservation.TotalPrice).Build()
		if err := s.broadcaster.SendMessage(message); err != nil {
			s.logger.Error("broadcast đặt phòng %s thất bại: %v", reservation.Reference, err)
		}
	}
}

// Cancel hủy reservation theo id. Chỉ cho hủy khi trạng thái chưa kết thúc
// và còn cách check-in hơn CancellationLeadTime.
func (s *BookingService) Cancel(id uint, reason string) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == models.ReservationStatusCancelled || reservation.Status == models.ReservationStatusCompleted {
		return nil, errors.ErrStatusFinal
	}

	now := s.now()
	if reservation.CheckInDate.Sub(now) <= constants.CancellationLeadTime {
		return nil, errors.ErrCancellationClosed
	}

	cancelledAt := now
	reservation.Status = models.ReservationStatusCancelled
	reservation.CancelledAt = &cancelledAt
	reservation.CancellationReason = reason

	if err := s.reservations.Save(reservation); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeStorageUnavailable, "Không lưu được reservation", err)
	}

	s.logger.Info("đã hủy đặt phòng %s: %s", reservation.Reference, reason)
	return reservation, nil
}

// CompletePastStays chuyển các reservation đã trả phòng sang completed, chạy từ cron
func (s *BookingService) CompletePastStays() (int64, error) {
	return s.reservations.CompleteBefore(NormalizeDay(s.now()))
}
