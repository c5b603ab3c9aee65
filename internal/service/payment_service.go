package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/pkg/payment"
	"go.uber.org/zap"
)

// Collaborators of the payment flow. Declared here so the confirmation
// logic can be exercised against fakes; the gorm repositories satisfy
// them in production.
type CheckoutGateway interface {
	CreateSession(params payment.CheckoutParams) (*payment.Session, error)
	RetrieveSession(sessionID string) (*payment.Session, error)
}

type TravelStore interface {
	GetByID(id uint) (*models.Travel, error)
	DecrementSeats(id uint, n int) (bool, error)
	ClampSeatsToZero(id uint) error
}

type BookingStore interface {
	Create(booking *models.Booking) error
	GetBySessionID(sessionID string) (*models.Booking, error)
	Update(booking *models.Booking) error
}

type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

type ConfirmationMailer interface {
	SendBookingConfirmation(email, fullName string, booking *models.Booking) error
}

type TicketIssuer interface {
	Issue(bookingID uint) (string, error)
}

type PaymentService struct {
	gateway  CheckoutGateway
	travels  TravelStore
	bookings BookingStore
	users    UserStore
	mailer   ConfirmationMailer
	tickets  TicketIssuer
	logger   *zap.Logger
}

func NewPaymentService(
	gateway CheckoutGateway,
	travels TravelStore,
	bookings BookingStore,
	users UserStore,
	mailer ConfirmationMailer,
	tickets TicketIssuer,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		travels:  travels,
		bookings: bookings,
		users:    users,
		mailer:   mailer,
		tickets:  tickets,
		logger:   logger,
	}
}

// CreateCheckoutSession opens a Stripe checkout for a travel and seat
// count. The booking itself is only created after payment is confirmed,
// so nothing is written here.
func (s *PaymentService) CreateCheckoutSession(userID uint, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	travel, err := s.travels.GetByID(req.TravelID)
	if err != nil {
		return nil, ErrTravelNotFound
	}

	if req.Seats > travel.Seats {
		return nil, ErrNotEnoughSeats
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	totalPrice := travel.Price * float64(req.Seats)

	sess, err := s.gateway.CreateSession(payment.CheckoutParams{
		CustomerEmail: user.Email,
		ProductName:   fmt.Sprintf("%s to %s (%s %s)", travel.FromLocation, travel.ToLocation, travel.Time, travel.TimePeriod),
		ProductImage:  travel.Image,
		UnitAmount:    int64(travel.Price * 100), // INR to paise
		Quantity:      int64(req.Seats),
		Metadata: map[string]string{
			"from_location":  travel.FromLocation,
			"to_location":    travel.ToLocation,
			"seats":          strconv.Itoa(req.Seats),
			"travel_id":      strconv.FormatUint(uint64(travel.ID), 10),
			"price_per_seat": strconv.FormatFloat(travel.Price, 'f', -1, 64),
			"total_price":    strconv.FormatFloat(totalPrice, 'f', -1, 64),
		},
	})
	if err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// ConfirmCheckout turns a paid checkout session into a booking and
// brings the travel's seat count in line with it.
//
// The flow is strictly sequential: retrieve session, create booking,
// decrement seats. A failure before the booking insert aborts with no
// writes. A failure after it never rolls the booking back; seat
// problems are reported through SeatsUpdate and flagged for review.
// Re-running the flow for a session that was already processed (page
// reload on the success screen) returns the stored booking untouched.
func (s *PaymentService) ConfirmCheckout(userID uint, sessionID string) (*models.BookingConfirmation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}

	existing, err := s.bookings.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}
	if existing != nil {
		return s.replayConfirmation(existing), nil
	}

	sess, err := s.gateway.RetrieveSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if sess.PaymentStatus != payment.StatusPaid {
		return nil, fmt.Errorf("%w: payment status is %q", ErrPaymentNotConfirmed, sess.PaymentStatus)
	}

	meta, err := parseBookingMetadata(sess.Metadata)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:          userID,
		TravelID:        meta.TravelID,
		FromLocation:    meta.FromLocation,
		ToLocation:      meta.ToLocation,
		Seats:           meta.Seats,
		PricePerSeat:    meta.PricePerSeat,
		TotalPrice:      meta.TotalPrice,
		StripeSessionID: sess.ID,
	}

	if err := s.bookings.Create(booking); err != nil {
		// The unique session index may have lost a race against a
		// concurrent confirm for the same session.
		if winner, lookupErr := s.bookings.GetBySessionID(sess.ID); lookupErr == nil && winner != nil {
			return s.replayConfirmation(winner), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}

	seatsUpdate := s.reconcileSeats(booking)

	s.issueTicket(booking)
	s.sendConfirmation(userID, booking)

	return &models.BookingConfirmation{
		Booking:     *booking,
		SeatsUpdate: seatsUpdate,
	}, nil
}

func (s *PaymentService) replayConfirmation(booking *models.Booking) *models.BookingConfirmation {
	seatsUpdate := models.SeatsUpdated
	if booking.NeedsReview {
		seatsUpdate = models.SeatsInsufficient
	}
	return &models.BookingConfirmation{
		Booking:          *booking,
		SeatsUpdate:      seatsUpdate,
		AlreadyProcessed: true,
	}
}

// reconcileSeats decrements the travel's available seats by the booked
// count. The booking is durable at this point, so nothing here returns
// an error to the caller.
func (s *PaymentService) reconcileSeats(booking *models.Booking) string {
	ok, err := s.travels.DecrementSeats(booking.TravelID, booking.Seats)
	if err != nil {
		s.logger.Warn("Seat decrement failed, booking kept",
			zap.Uint("booking_id", booking.ID),
			zap.Uint("travel_id", booking.TravelID),
			zap.Int("seats", booking.Seats),
			zap.Error(err))
		return models.SeatsUpdatePending
	}

	if !ok {
		// More seats were sold than remain. Floor the count at zero
		// and flag the booking so operations can resolve it; a
		// negative seat count must never be stored.
		if err := s.travels.ClampSeatsToZero(booking.TravelID); err != nil {
			s.logger.Warn("Seat clamp failed",
				zap.Uint("travel_id", booking.TravelID), zap.Error(err))
		}

		booking.NeedsReview = true
		if err := s.bookings.Update(booking); err != nil {
			s.logger.Warn("Failed to flag booking for review",
				zap.Uint("booking_id", booking.ID), zap.Error(err))
		}

		s.logger.Warn("Insufficient seats at reconciliation",
			zap.Uint("booking_id", booking.ID),
			zap.Uint("travel_id", booking.TravelID),
			zap.Int("seats", booking.Seats))
		return models.SeatsInsufficient
	}

	return models.SeatsUpdated
}

func (s *PaymentService) issueTicket(booking *models.Booking) {
	if s.tickets == nil {
		return
	}

	url, err := s.tickets.Issue(booking.ID)
	if err != nil {
		s.logger.Warn("Ticket issue failed",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
		return
	}

	booking.TicketURL = url
	if err := s.bookings.Update(booking); err != nil {
		s.logger.Warn("Failed to save ticket URL",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
}

func (s *PaymentService) sendConfirmation(userID uint, booking *models.Booking) {
	if s.mailer == nil {
		return
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		s.logger.Warn("Failed to load user for confirmation email",
			zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	if err := s.mailer.SendBookingConfirmation(user.Email, user.FullName, booking); err != nil {
		s.logger.Warn("Confirmation email failed",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
}

type bookingMetadata struct {
	TravelID     uint
	FromLocation string
	ToLocation   string
	Seats        int
	PricePerSeat float64
	TotalPrice   float64
}

// parseBookingMetadata validates the travel metadata a checkout session
// carries. Missing or non-numeric fields abort the flow; silently
// coercing them to zero would materialize a free booking.
func parseBookingMetadata(meta map[string]string) (*bookingMetadata, error) {
	for _, key := range []string{"travel_id", "from_location", "to_location", "seats", "price_per_seat", "total_price"} {
		if meta[key] == "" {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedMetadata, key)
		}
	}

	travelID, err := strconv.ParseUint(meta["travel_id"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: travel_id %q is not a number", ErrMalformedMetadata, meta["travel_id"])
	}

	seats, err := strconv.Atoi(meta["seats"])
	if err != nil || seats <= 0 {
		return nil, fmt.Errorf("%w: seats %q is not a positive integer", ErrMalformedMetadata, meta["seats"])
	}

	pricePerSeat, err := strconv.ParseFloat(meta["price_per_seat"], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: price_per_seat %q is not a number", ErrMalformedMetadata, meta["price_per_seat"])
	}

	totalPrice, err := strconv.ParseFloat(meta["total_price"], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: total_price %q is not a number", ErrMalformedMetadata, meta["total_price"])
	}

	return &bookingMetadata{
		TravelID:     uint(travelID),
		FromLocation: meta["from_location"],
		ToLocation:   meta["to_location"],
		Seats:        seats,
		PricePerSeat: pricePerSeat,
		TotalPrice:   totalPrice,
	}, nil
}
