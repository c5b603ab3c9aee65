package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/service"
	"github.com/swiftbus/swiftbus-backend/pkg/payment"
	"github.com/swiftbus/swiftbus-backend/pkg/utils"
	"go.uber.org/zap"
)

type stubGateway struct {
	session *payment.Session
	err     error
}

func (g *stubGateway) CreateSession(params payment.CheckoutParams) (*payment.Session, error) {
	return &payment.Session{ID: "cs_new", URL: "https://checkout.stripe.test/cs_new"}, nil
}

func (g *stubGateway) RetrieveSession(sessionID string) (*payment.Session, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

type stubTravelStore struct {
	travel *models.Travel
}

func (s *stubTravelStore) GetByID(id uint) (*models.Travel, error) {
	return s.travel, nil
}

func (s *stubTravelStore) DecrementSeats(id uint, n int) (bool, error) {
	if s.travel.Seats < n {
		return false, nil
	}
	s.travel.Seats -= n
	return true, nil
}

func (s *stubTravelStore) ClampSeatsToZero(id uint) error {
	s.travel.Seats = 0
	return nil
}

type stubBookingStore struct {
	bookings []*models.Booking
}

func (s *stubBookingStore) Create(booking *models.Booking) error {
	booking.ID = uint(len(s.bookings) + 1)
	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *stubBookingStore) GetBySessionID(sessionID string) (*models.Booking, error) {
	for _, b := range s.bookings {
		if b.StripeSessionID == sessionID {
			return b, nil
		}
	}
	return nil, nil
}

func (s *stubBookingStore) Update(booking *models.Booking) error { return nil }

type stubUserStore struct{}

func (s *stubUserStore) GetByID(id uint) (*models.User, error) {
	return &models.User{ID: id, FullName: "Asha", Email: "asha@example.com"}, nil
}

func newTestApp(gateway *stubGateway) *fiber.App {
	travels := &stubTravelStore{travel: &models.Travel{ID: 7, FromLocation: "A", ToLocation: "B", Seats: 5, Price: 500}}
	bookings := &stubBookingStore{}

	paymentService := service.NewPaymentService(
		gateway, travels, bookings, &stubUserStore{}, nil, nil, zap.NewNop(),
	)
	paymentHandler := NewPaymentHandler(paymentService, utils.NewValidator())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(42))
		return c.Next()
	})
	app.Post("/api/payments/confirm", paymentHandler.ConfirmPayment)
	return app
}

func postConfirm(t *testing.T, app *fiber.App, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestConfirmPaymentSuccess(t *testing.T) {
	app := newTestApp(&stubGateway{session: &payment.Session{
		ID:            "sess_1",
		PaymentStatus: payment.StatusPaid,
		Metadata: map[string]string{
			"travel_id":      "7",
			"from_location":  "A",
			"to_location":    "B",
			"seats":          "2",
			"price_per_seat": "500",
			"total_price":    "1000",
		},
	}})

	resp := postConfirm(t, app, models.ConfirmPaymentRequest{SessionID: "sess_1"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var parsed models.Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !parsed.Success {
		t.Errorf("expected success response, got %s", body)
	}
}

func TestConfirmPaymentUnpaidSession(t *testing.T) {
	app := newTestApp(&stubGateway{session: &payment.Session{
		ID:            "sess_1",
		PaymentStatus: payment.StatusUnpaid,
		Metadata:      map[string]string{},
	}})

	resp := postConfirm(t, app, models.ConfirmPaymentRequest{SessionID: "sess_1"})
	if resp.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", resp.StatusCode)
	}
}

func TestConfirmPaymentMissingSessionID(t *testing.T) {
	app := newTestApp(&stubGateway{})

	resp := postConfirm(t, app, models.ConfirmPaymentRequest{})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestConfirmPaymentProviderDown(t *testing.T) {
	app := newTestApp(&stubGateway{err: errors.New("connection refused")})

	resp := postConfirm(t, app, models.ConfirmPaymentRequest{SessionID: "sess_1"})
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestStatusForPaymentError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrInvalidSession, fiber.StatusBadRequest},
		{service.ErrProviderUnavailable, fiber.StatusBadGateway},
		{service.ErrPaymentNotConfirmed, fiber.StatusPaymentRequired},
		{service.ErrMalformedMetadata, fiber.StatusUnprocessableEntity},
		{service.ErrTravelNotFound, fiber.StatusNotFound},
		{service.ErrNotEnoughSeats, fiber.StatusConflict},
		{errors.New("anything else"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForPaymentError(tc.err); got != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, got)
		}
	}
}
