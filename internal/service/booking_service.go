package service

import (
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/repository"
)

type BookingService struct {
	bookingRepo *repository.BookingRepository
}

func NewBookingService(bookingRepo *repository.BookingRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
	}
}

func (s *BookingService) GetUserBookings(userID uint) ([]models.Booking, error) {
	return s.bookingRepo.GetByUser(userID)
}

// Admin panel operations.

func (s *BookingService) GetAllBookings() ([]models.Booking, error) {
	return s.bookingRepo.GetAll()
}

func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(id uint) error {
	if _, err := s.bookingRepo.GetByID(id); err != nil {
		return ErrBookingNotFound
	}
	return s.bookingRepo.Delete(id)
}
