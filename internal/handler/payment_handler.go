package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/service"
	"github.com/swiftbus/swiftbus-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	session, err := h.paymentService.CreateCheckoutSession(userID, req)
	if err != nil {
		return c.Status(statusForPaymentError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(session, ""))
}

// ConfirmPayment runs the post-checkout booking flow for the session id
// the success page was redirected with.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	confirmation, err := h.paymentService.ConfirmCheckout(userID, req.SessionID)
	if err != nil {
		return c.Status(statusForPaymentError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	message := "Booking confirmed"
	if confirmation.SeatsUpdate != models.SeatsUpdated {
		message = "Booking confirmed, seat count update pending"
	}

	return c.JSON(models.SuccessResponse(confirmation, message))
}

func statusForPaymentError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSession):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrProviderUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, service.ErrPaymentNotConfirmed):
		return fiber.StatusPaymentRequired
	case errors.Is(err, service.ErrMalformedMetadata):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrTravelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotEnoughSeats):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
