package service

import "errors"

// Blocking failures of the checkout confirmation flow. Each one aborts
// the flow before any later side effect; seat-reconciliation problems
// are deliberately not here because the booking already exists by then
// and is reported as a degraded success instead.
var (
	ErrInvalidSession      = errors.New("invalid checkout session")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrMalformedMetadata   = errors.New("malformed session metadata")
	ErrBookingCreateFailed = errors.New("booking creation failed")

	ErrTravelNotFound  = errors.New("travel not found")
	ErrNotEnoughSeats  = errors.New("not enough seats available")
	ErrEmailTaken      = errors.New("email already exists")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrBookingNotFound = errors.New("booking not found")
)
