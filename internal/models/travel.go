package models

import "time"

// Travel is a bookable route and departure slot. Seats is the number of
// seats still available and must never go negative.
type Travel struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Image        string    `json:"image"`
	FromLocation string    `json:"from_location" gorm:"not null"`
	ToLocation   string    `json:"to_location" gorm:"not null"`
	Time         string    `json:"time" gorm:"not null"`
	TimePeriod   string    `json:"time_period" gorm:"not null;default:'AM'"`
	Seats        int       `json:"seats" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateTravelRequest struct {
	Image        string  `json:"image" validate:"required,url"`
	FromLocation string  `json:"from_location" validate:"required"`
	ToLocation   string  `json:"to_location" validate:"required"`
	Time         string  `json:"time" validate:"required"`
	TimePeriod   string  `json:"time_period" validate:"required,oneof=AM PM"`
	Seats        int     `json:"seats" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
}

type UpdateTravelRequest struct {
	Image        string  `json:"image" validate:"required,url"`
	FromLocation string  `json:"from_location" validate:"required"`
	ToLocation   string  `json:"to_location" validate:"required"`
	Time         string  `json:"time" validate:"required"`
	TimePeriod   string  `json:"time_period" validate:"required,oneof=AM PM"`
	Seats        int     `json:"seats" validate:"gte=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
}
