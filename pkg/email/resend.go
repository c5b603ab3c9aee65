package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	templateData := map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Error("Failed to parse welcome template", zap.String("email", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to SwiftBus!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("Failed to send welcome email", zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("Welcome email sent", zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

// SendBookingConfirmation delivers the "your booking is confirmed" mail
// the success page promises, with the booking reference and route.
func (s *EmailService) SendBookingConfirmation(email, fullName string, booking *models.Booking) error {
	templateData := map[string]interface{}{
		"FullName":     fullName,
		"BookingID":    booking.ID,
		"FromLocation": booking.FromLocation,
		"ToLocation":   booking.ToLocation,
		"Seats":        booking.Seats,
		"TotalPrice":   booking.TotalPrice,
		"TicketURL":    booking.TicketURL,
		"Year":         time.Now().Year(),
	}

	html, err := s.parseTemplate("booking-confirmed.html", templateData)
	if err != nil {
		s.logger.Error("Failed to parse booking confirmation template",
			zap.Uint("booking_id", booking.ID), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: fmt.Sprintf("Booking Confirmed - %s to %s", booking.FromLocation, booking.ToLocation),
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("Failed to send booking confirmation",
			zap.String("email", email), zap.Uint("booking_id", booking.ID), zap.Error(err))
		return err
	}

	s.logger.Info("Booking confirmation sent",
		zap.String("email", email), zap.Uint("booking_id", booking.ID), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(name string, data map[string]interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templatesDir, name))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
