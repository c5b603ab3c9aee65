package service

import (
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/repository"
)

type TravelService struct {
	travelRepo *repository.TravelRepository
}

func NewTravelService(travelRepo *repository.TravelRepository) *TravelService {
	return &TravelService{
		travelRepo: travelRepo,
	}
}

func (s *TravelService) GetAllTravels() ([]models.Travel, error) {
	return s.travelRepo.GetAll()
}

func (s *TravelService) GetTravel(id uint) (*models.Travel, error) {
	travel, err := s.travelRepo.GetByID(id)
	if err != nil {
		return nil, ErrTravelNotFound
	}
	return travel, nil
}

func (s *TravelService) CreateTravel(req models.CreateTravelRequest) (*models.Travel, error) {
	travel := &models.Travel{
		Image:        req.Image,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Time:         req.Time,
		TimePeriod:   req.TimePeriod,
		Seats:        req.Seats,
		Price:        req.Price,
	}

	if err := s.travelRepo.Create(travel); err != nil {
		return nil, err
	}

	return travel, nil
}

func (s *TravelService) UpdateTravel(id uint, req models.UpdateTravelRequest) (*models.Travel, error) {
	travel, err := s.travelRepo.GetByID(id)
	if err != nil {
		return nil, ErrTravelNotFound
	}

	travel.Image = req.Image
	travel.FromLocation = req.FromLocation
	travel.ToLocation = req.ToLocation
	travel.Time = req.Time
	travel.TimePeriod = req.TimePeriod
	travel.Seats = req.Seats
	travel.Price = req.Price

	if err := s.travelRepo.Update(travel); err != nil {
		return nil, err
	}

	return travel, nil
}

func (s *TravelService) DeleteTravel(id uint) error {
	if _, err := s.travelRepo.GetByID(id); err != nil {
		return ErrTravelNotFound
	}
	return s.travelRepo.Delete(id)
}
