package repository

import (
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"gorm.io/gorm"
)

type TravelRepository struct {
	db *gorm.DB
}

func NewTravelRepository(db *gorm.DB) *TravelRepository {
	return &TravelRepository{
		db: db,
	}
}

func (r *TravelRepository) Create(travel *models.Travel) error {
	return r.db.Create(travel).Error
}

func (r *TravelRepository) GetByID(id uint) (*models.Travel, error) {
	var travel models.Travel
	err := r.db.First(&travel, id).Error
	return &travel, err
}

func (r *TravelRepository) GetAll() ([]models.Travel, error) {
	var travels []models.Travel
	err := r.db.Order("created_at DESC").Find(&travels).Error
	return travels, err
}

func (r *TravelRepository) Update(travel *models.Travel) error {
	return r.db.Save(travel).Error
}

func (r *TravelRepository) Delete(id uint) error {
	return r.db.Delete(&models.Travel{}, id).Error
}

// DecrementSeats takes n seats off a travel in a single conditional
// update, so two bookings reconciled at the same time cannot overwrite
// each other's decrement. Returns false when fewer than n seats remain.
func (r *TravelRepository) DecrementSeats(id uint, n int) (bool, error) {
	result := r.db.Model(&models.Travel{}).
		Where("id = ? AND seats >= ?", id, n).
		UpdateColumn("seats", gorm.Expr("seats - ?", n))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClampSeatsToZero floors a travel's seat count at zero. Used when a
// booking was sold for more seats than remain; a negative count must
// never be persisted.
func (r *TravelRepository) ClampSeatsToZero(id uint) error {
	return r.db.Model(&models.Travel{}).
		Where("id = ?", id).
		UpdateColumn("seats", 0).Error
}
