package service

import (
	"errors"
	"testing"

	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/pkg/payment"
	"go.uber.org/zap"
)

type fakeGateway struct {
	sessions    map[string]*payment.Session
	retrieveErr error
	created     []payment.CheckoutParams
}

func (g *fakeGateway) CreateSession(params payment.CheckoutParams) (*payment.Session, error) {
	g.created = append(g.created, params)
	return &payment.Session{ID: "cs_new", URL: "https://checkout.stripe.test/cs_new"}, nil
}

func (g *fakeGateway) RetrieveSession(sessionID string) (*payment.Session, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

type fakeTravelStore struct {
	travels      map[uint]*models.Travel
	decrementErr error
	clamped      []uint
}

func (s *fakeTravelStore) GetByID(id uint) (*models.Travel, error) {
	travel, ok := s.travels[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return travel, nil
}

func (s *fakeTravelStore) DecrementSeats(id uint, n int) (bool, error) {
	if s.decrementErr != nil {
		return false, s.decrementErr
	}
	travel, ok := s.travels[id]
	if !ok {
		return false, errors.New("record not found")
	}
	if travel.Seats < n {
		return false, nil
	}
	travel.Seats -= n
	return true, nil
}

func (s *fakeTravelStore) ClampSeatsToZero(id uint) error {
	s.clamped = append(s.clamped, id)
	if travel, ok := s.travels[id]; ok {
		travel.Seats = 0
	}
	return nil
}

type fakeBookingStore struct {
	bookings  []*models.Booking
	nextID    uint
	createErr error

	// raceWinner simulates another confirm for the same session winning
	// the insert race: GetBySessionID starts returning it only after a
	// failed Create attempt.
	raceWinner      *models.Booking
	createAttempted bool
}

func (s *fakeBookingStore) Create(booking *models.Booking) error {
	s.createAttempted = true
	if s.createErr != nil {
		return s.createErr
	}
	for _, b := range s.bookings {
		if b.StripeSessionID == booking.StripeSessionID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	s.nextID++
	booking.ID = s.nextID
	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *fakeBookingStore) GetBySessionID(sessionID string) (*models.Booking, error) {
	if s.raceWinner != nil && s.createAttempted && s.raceWinner.StripeSessionID == sessionID {
		return s.raceWinner, nil
	}
	for _, b := range s.bookings {
		if b.StripeSessionID == sessionID {
			return b, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingStore) Update(booking *models.Booking) error {
	return nil
}

type fakeUserStore struct {
	users map[uint]*models.User
}

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

type fakeMailer struct {
	sent []uint
}

func (m *fakeMailer) SendBookingConfirmation(email, fullName string, booking *models.Booking) error {
	m.sent = append(m.sent, booking.ID)
	return nil
}

type fakeTickets struct {
	issued []uint
	err    error
}

func (t *fakeTickets) Issue(bookingID uint) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.issued = append(t.issued, bookingID)
	return "https://cdn.swiftbus.test/tickets/ticket.png", nil
}

func paidSession(id string) *payment.Session {
	return &payment.Session{
		ID:            id,
		PaymentStatus: payment.StatusPaid,
		Metadata: map[string]string{
			"travel_id":      "7",
			"from_location":  "A",
			"to_location":    "B",
			"seats":          "2",
			"price_per_seat": "500",
			"total_price":    "1000",
		},
	}
}

type testEnv struct {
	svc      *PaymentService
	gateway  *fakeGateway
	travels  *fakeTravelStore
	bookings *fakeBookingStore
	users    *fakeUserStore
	mailer   *fakeMailer
	tickets  *fakeTickets
}

func newTestEnv(routeSeats int) *testEnv {
	env := &testEnv{
		gateway: &fakeGateway{sessions: map[string]*payment.Session{
			"sess_1": paidSession("sess_1"),
		}},
		travels: &fakeTravelStore{travels: map[uint]*models.Travel{
			7: {ID: 7, FromLocation: "A", ToLocation: "B", Seats: routeSeats, Price: 500},
		}},
		bookings: &fakeBookingStore{},
		users: &fakeUserStore{users: map[uint]*models.User{
			42: {ID: 42, FullName: "Asha", Email: "asha@example.com"},
		}},
		mailer:  &fakeMailer{},
		tickets: &fakeTickets{},
	}
	env.svc = NewPaymentService(
		env.gateway, env.travels, env.bookings, env.users,
		env.mailer, env.tickets, zap.NewNop(),
	)
	return env
}

func TestConfirmCheckoutCreatesBookingAndDecrementsSeats(t *testing.T) {
	env := newTestEnv(5)

	confirmation, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.bookings.bookings) != 1 {
		t.Fatalf("expected exactly one booking, got %d", len(env.bookings.bookings))
	}

	booking := confirmation.Booking
	if booking.Seats != 2 || booking.TotalPrice != 1000 || booking.PricePerSeat != 500 {
		t.Errorf("unexpected booking values: %+v", booking)
	}
	if booking.UserID != 42 || booking.TravelID != 7 {
		t.Errorf("booking not linked to user/travel: %+v", booking)
	}
	if booking.StripeSessionID != "sess_1" {
		t.Errorf("session id not stored on booking: %q", booking.StripeSessionID)
	}

	if seats := env.travels.travels[7].Seats; seats != 3 {
		t.Errorf("expected 3 seats left, got %d", seats)
	}
	if confirmation.SeatsUpdate != models.SeatsUpdated {
		t.Errorf("expected seats_update %q, got %q", models.SeatsUpdated, confirmation.SeatsUpdate)
	}
	if confirmation.AlreadyProcessed {
		t.Error("first confirmation should not be marked already processed")
	}

	if len(env.tickets.issued) != 1 {
		t.Errorf("expected one ticket issued, got %d", len(env.tickets.issued))
	}
	if len(env.mailer.sent) != 1 {
		t.Errorf("expected one confirmation email, got %d", len(env.mailer.sent))
	}
}

func TestConfirmCheckoutIsIdempotent(t *testing.T) {
	env := newTestEnv(5)

	first, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(env.bookings.bookings) != 1 {
		t.Fatalf("replay created a duplicate booking: %d bookings", len(env.bookings.bookings))
	}
	if second.Booking.ID != first.Booking.ID {
		t.Errorf("replay returned a different booking: %d vs %d", second.Booking.ID, first.Booking.ID)
	}
	if !second.AlreadyProcessed {
		t.Error("replay should be marked already processed")
	}
	if seats := env.travels.travels[7].Seats; seats != 3 {
		t.Errorf("replay decremented seats again: %d", seats)
	}
	if len(env.mailer.sent) != 1 {
		t.Errorf("replay re-sent the confirmation email: %d sent", len(env.mailer.sent))
	}
}

func TestConfirmCheckoutUnpaidSession(t *testing.T) {
	env := newTestEnv(5)
	env.gateway.sessions["sess_1"].PaymentStatus = payment.StatusUnpaid

	_, err := env.svc.ConfirmCheckout(42, "sess_1")
	if !errors.Is(err, ErrPaymentNotConfirmed) {
		t.Fatalf("expected ErrPaymentNotConfirmed, got %v", err)
	}

	if len(env.bookings.bookings) != 0 {
		t.Error("unpaid session must not create a booking")
	}
	if seats := env.travels.travels[7].Seats; seats != 5 {
		t.Errorf("unpaid session must not touch seats, got %d", seats)
	}
}

func TestConfirmCheckoutEmptySessionID(t *testing.T) {
	env := newTestEnv(5)

	_, err := env.svc.ConfirmCheckout(42, "  ")
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if len(env.bookings.bookings) != 0 {
		t.Error("no booking should be created for an empty session id")
	}
}

func TestConfirmCheckoutProviderUnavailable(t *testing.T) {
	env := newTestEnv(5)
	env.gateway.retrieveErr = errors.New("connection refused")

	_, err := env.svc.ConfirmCheckout(42, "sess_1")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(env.bookings.bookings) != 0 {
		t.Error("provider failure must not create a booking")
	}
}

func TestConfirmCheckoutMalformedMetadata(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(meta map[string]string)
	}{
		{"non-numeric seats", func(m map[string]string) { m["seats"] = "two" }},
		{"zero seats", func(m map[string]string) { m["seats"] = "0" }},
		{"missing total_price", func(m map[string]string) { delete(m, "total_price") }},
		{"missing travel_id", func(m map[string]string) { m["travel_id"] = "" }},
		{"non-numeric price", func(m map[string]string) { m["price_per_seat"] = "five hundred" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(5)
			tc.mutate(env.gateway.sessions["sess_1"].Metadata)

			_, err := env.svc.ConfirmCheckout(42, "sess_1")
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Fatalf("expected ErrMalformedMetadata, got %v", err)
			}
			if len(env.bookings.bookings) != 0 {
				t.Error("malformed metadata must fail before any write")
			}
			if seats := env.travels.travels[7].Seats; seats != 5 {
				t.Errorf("malformed metadata must not touch seats, got %d", seats)
			}
		})
	}
}

func TestConfirmCheckoutClampsSeatsToZero(t *testing.T) {
	// Route sold down to a single seat by a concurrent booking; this
	// session already paid for two.
	env := newTestEnv(1)

	confirmation, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.bookings.bookings) != 1 {
		t.Fatal("booking must survive insufficient inventory")
	}
	if confirmation.Booking.Seats != 2 {
		t.Errorf("booking seats should stay at the paid count, got %d", confirmation.Booking.Seats)
	}
	if seats := env.travels.travels[7].Seats; seats != 0 {
		t.Errorf("seats must clamp to 0, got %d", seats)
	}
	if confirmation.SeatsUpdate != models.SeatsInsufficient {
		t.Errorf("expected seats_update %q, got %q", models.SeatsInsufficient, confirmation.SeatsUpdate)
	}
	if !confirmation.Booking.NeedsReview {
		t.Error("booking should be flagged for review")
	}
	if len(env.travels.clamped) != 1 {
		t.Errorf("expected one clamp, got %d", len(env.travels.clamped))
	}
}

func TestConfirmCheckoutSeatUpdateFailureIsDegradedSuccess(t *testing.T) {
	env := newTestEnv(5)
	env.travels.decrementErr = errors.New("connection reset")

	confirmation, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("seat update failure must not fail the flow: %v", err)
	}

	if len(env.bookings.bookings) != 1 {
		t.Fatal("booking must survive a failed seat update")
	}
	if confirmation.SeatsUpdate != models.SeatsUpdatePending {
		t.Errorf("expected seats_update %q, got %q", models.SeatsUpdatePending, confirmation.SeatsUpdate)
	}
}

func TestConfirmCheckoutLosesInsertRace(t *testing.T) {
	env := newTestEnv(5)
	env.bookings.createErr = errors.New("duplicate key value violates unique constraint")
	env.bookings.raceWinner = &models.Booking{
		ID:              9,
		UserID:          42,
		StripeSessionID: "sess_1",
		Seats:           2,
	}

	confirmation, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("losing the insert race should resolve to the winner: %v", err)
	}
	if confirmation.Booking.ID != 9 {
		t.Errorf("expected the winning booking, got %d", confirmation.Booking.ID)
	}
	if !confirmation.AlreadyProcessed {
		t.Error("race loser should report already processed")
	}
}

func TestConfirmCheckoutBookingCreateFailed(t *testing.T) {
	env := newTestEnv(5)
	env.bookings.createErr = errors.New("insert failed")

	_, err := env.svc.ConfirmCheckout(42, "sess_1")
	if !errors.Is(err, ErrBookingCreateFailed) {
		t.Fatalf("expected ErrBookingCreateFailed, got %v", err)
	}
	if seats := env.travels.travels[7].Seats; seats != 5 {
		t.Errorf("failed creation must not decrement seats, got %d", seats)
	}
}

func TestConfirmCheckoutTicketFailureKeepsBooking(t *testing.T) {
	env := newTestEnv(5)
	env.tickets.err = errors.New("bucket unavailable")

	confirmation, err := env.svc.ConfirmCheckout(42, "sess_1")
	if err != nil {
		t.Fatalf("ticket failure must not fail the flow: %v", err)
	}
	if confirmation.Booking.TicketURL != "" {
		t.Errorf("no ticket URL should be set, got %q", confirmation.Booking.TicketURL)
	}
	if confirmation.SeatsUpdate != models.SeatsUpdated {
		t.Errorf("seat update should still report %q, got %q", models.SeatsUpdated, confirmation.SeatsUpdate)
	}
}

func TestCreateCheckoutSessionRejectsOverbooking(t *testing.T) {
	env := newTestEnv(5)

	_, err := env.svc.CreateCheckoutSession(42, models.CheckoutRequest{TravelID: 7, Seats: 6})
	if !errors.Is(err, ErrNotEnoughSeats) {
		t.Fatalf("expected ErrNotEnoughSeats, got %v", err)
	}
	if len(env.gateway.created) != 0 {
		t.Error("no checkout session should be opened for an overbooked request")
	}
}

func TestCreateCheckoutSessionMetadata(t *testing.T) {
	env := newTestEnv(5)

	sess, err := env.svc.CreateCheckoutSession(42, models.CheckoutRequest{TravelID: 7, Seats: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID == "" || sess.URL == "" {
		t.Errorf("session id/url missing: %+v", sess)
	}

	if len(env.gateway.created) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(env.gateway.created))
	}
	params := env.gateway.created[0]

	if params.CustomerEmail != "asha@example.com" {
		t.Errorf("unexpected customer email %q", params.CustomerEmail)
	}
	if params.UnitAmount != 50000 {
		t.Errorf("expected 50000 paise per seat, got %d", params.UnitAmount)
	}
	if params.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", params.Quantity)
	}

	want := map[string]string{
		"travel_id":      "7",
		"from_location":  "A",
		"to_location":    "B",
		"seats":          "2",
		"price_per_seat": "500",
		"total_price":    "1000",
	}
	for key, value := range want {
		if params.Metadata[key] != value {
			t.Errorf("metadata %s: expected %q, got %q", key, value, params.Metadata[key])
		}
	}
}
