package models

import "time"

// Booking is a persisted reservation, created exactly once per paid
// checkout session. StripeSessionID is the idempotency key: the unique
// index rejects a second insert for the same session.
type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	TravelID        uint      `json:"travel_id" gorm:"not null"`
	FromLocation    string    `json:"from_location" gorm:"not null"`
	ToLocation      string    `json:"to_location" gorm:"not null"`
	Seats           int       `json:"seats" gorm:"not null"`
	PricePerSeat    float64   `json:"price_per_seat" gorm:"not null"`
	TotalPrice      float64   `json:"total_price" gorm:"not null"`
	StripeSessionID string    `json:"stripe_session_id" gorm:"unique;not null"`
	NeedsReview     bool      `json:"needs_review" gorm:"not null;default:false"`
	TicketURL       string    `json:"ticket_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
