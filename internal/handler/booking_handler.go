package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	bookings, err := h.bookingService.GetUserBookings(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(bookings, ""))
}

// Admin panel endpoints.

func (h *BookingHandler) GetAllBookings(c *fiber.Ctx) error {
	bookings, err := h.bookingService.GetAllBookings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(bookings, ""))
}

func (h *BookingHandler) GetUserBookings(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	bookings, err := h.bookingService.GetUserBookings(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(bookings, ""))
}

func (h *BookingHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid booking ID"))
	}

	if err := h.bookingService.DeleteBooking(id); err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Booking deleted"))
}
