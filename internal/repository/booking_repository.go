package repository

import (
	"errors"

	"github.com/swiftbus/swiftbus-backend/internal/models"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, id).Error
	return &booking, err
}

// GetBySessionID returns nil without error when no booking exists for
// the session, so callers can distinguish "not booked yet" from a
// lookup failure.
func (r *BookingRepository) GetBySessionID(sessionID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("stripe_session_id = ?", sessionID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

func (r *BookingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Booking{}, id).Error
}
