package models

type CheckoutRequest struct {
	TravelID uint `json:"travel_id" validate:"required"`
	Seats    int  `json:"seats" validate:"required,gt=0"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type ConfirmPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Seat reconciliation outcomes for a confirmed booking. Insufficient and
// pending are degraded successes: the booking exists either way.
const (
	SeatsUpdated       = "updated"
	SeatsInsufficient  = "insufficient"
	SeatsUpdatePending = "pending"
)

type BookingConfirmation struct {
	Booking          Booking `json:"booking"`
	SeatsUpdate      string  `json:"seats_update"`
	AlreadyProcessed bool    `json:"already_processed"`
}
