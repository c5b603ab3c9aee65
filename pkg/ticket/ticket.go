package ticket

import (
	"bytes"
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/swiftbus/swiftbus-backend/pkg/storage"
	"github.com/swiftbus/swiftbus-backend/pkg/utils"
)

const qrSize = 256

// Service renders a scannable ticket for a confirmed booking: a QR code
// pointing at the booking details page, stored in the public bucket.
type Service struct {
	storage storage.StorageService
	baseURL string // e.g. "https://swiftbus.in/bookings"
}

func NewService(st storage.StorageService, baseURL string) *Service {
	return &Service{
		storage: st,
		baseURL: baseURL,
	}
}

// Issue generates the QR PNG for a booking and uploads it. Returns the
// public URL of the stored ticket image.
func (s *Service) Issue(bookingID uint) (string, error) {
	ticketURL := fmt.Sprintf("%s/%d", s.baseURL, bookingID)

	png, err := qrcode.Encode(ticketURL, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket QR code: %w", err)
	}

	// Random suffix keeps ticket object keys unguessable.
	key := fmt.Sprintf("tickets/%d-%s.png", bookingID, utils.GenerateRandomString(12))
	if err := s.storage.Upload(key, bytes.NewReader(png)); err != nil {
		return "", err
	}

	return s.storage.PublicURL(key), nil
}
