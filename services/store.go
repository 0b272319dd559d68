package services

import (
	stderrors "errors"
	"strings"
	"time"

	"roomstay/errors"
	"roomstay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomTypeStore đọc catalog loại phòng
type RoomTypeStore interface {
	GetByID(id uint) (*models.RoomType, error)
}

// ReservationStore truy cập dữ liệu reservation
type ReservationStore interface {
	// FindActiveOverlapping trả về các reservation pending/confirmed giao với [from, to)
	FindActiveOverlapping(roomTypeID uint, from, to time.Time) ([]models.Reservation, error)
	// CreateIfAvailable ghi reservation sau khi kiểm tra lại tồn kho trong cùng transaction
	CreateIfAvailable(r *models.Reservation, totalUnits int) error
	GetByID(id uint) (*models.Reservation, error)
	GetByReference(reference string) (*models.Reservation, error)
	List() ([]models.Reservation, error)
	Save(r *models.Reservation) error
	// CompleteBefore chuyển các reservation confirmed đã trả phòng trước cutoff sang completed
	CompleteBefore(cutoff time.Time) (int64, error)
}

// GormRoomTypeStore implement RoomTypeStore trên GORM
type GormRoomTypeStore struct {
	db *gorm.DB
}

func NewGormRoomTypeStore(db *gorm.DB) *GormRoomTypeStore {
	return &GormRoomTypeStore{db: db}
}

func (s *GormRoomTypeStore) GetByID(id uint) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := s.db.First(&roomType, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

// GormReservationStore implement ReservationStore trên GORM
type GormReservationStore struct {
	db *gorm.DB
}

func NewGormReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{db: db}
}

func (s *GormReservationStore) FindActiveOverlapping(roomTypeID uint, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.
		Where("room_type_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
			roomTypeID, models.ActiveReservationStatuses, to, from).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// CreateIfAvailable khóa dòng room type, đếm lại occupancy rồi mới insert.
// Đóng race window giữa lúc kiểm tra và lúc ghi khi có request song song.
func (s *GormReservationStore) CreateIfAvailable(r *models.Reservation, totalUnits int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&roomType, r.RoomTypeID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrRoomTypeNotFound
			}
			return err
		}

		var overlapping []models.Reservation
		if err := tx.
			Where("room_type_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
				r.RoomTypeID, models.ActiveReservationStatuses, r.CheckOutDate, r.CheckInDate).
			Find(&overlapping).Error; err != nil {
			return err
		}

		occupancy := AggregateDailyOccupancy(overlapping, r.CheckInDate, r.CheckOutDate)
		if totalUnits-MaxOccupancy(occupancy) < r.NumberOfUnits {
			return errors.ErrInventoryConflict
		}

		if err := tx.Create(r).Error; err != nil {
			if isDuplicateKey(err) {
				return errors.ErrReferenceCollision
			}
			return err
		}
		return nil
	})
}

func (s *GormReservationStore) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("RoomType").First(&reservation, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *GormReservationStore) GetByReference(reference string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("RoomType").Where("reference = ?", reference).First(&reservation).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *GormReservationStore) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.Preload("RoomType").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *GormReservationStore) Save(r *models.Reservation) error {
	return s.db.Save(r).Error
}

func (s *GormReservationStore) CompleteBefore(cutoff time.Time) (int64, error) {
	result := s.db.Model(&models.Reservation{}).
		Where("status = ? AND check_out_date <= ?", models.ReservationStatusConfirmed, cutoff).
		Update("status", models.ReservationStatusCompleted)
	return result.RowsAffected, result.Error
}

func isDuplicateKey(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
