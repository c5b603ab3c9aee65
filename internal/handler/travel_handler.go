package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/swiftbus/swiftbus-backend/internal/models"
	"github.com/swiftbus/swiftbus-backend/internal/service"
	"github.com/swiftbus/swiftbus-backend/pkg/utils"
)

type TravelHandler struct {
	travelService *service.TravelService
	validator     *utils.Validator
}

func NewTravelHandler(travelService *service.TravelService, validator *utils.Validator) *TravelHandler {
	return &TravelHandler{
		travelService: travelService,
		validator:     validator,
	}
}

func (h *TravelHandler) GetTravels(c *fiber.Ctx) error {
	travels, err := h.travelService.GetAllTravels()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(travels, ""))
}

func (h *TravelHandler) GetTravel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid travel ID"))
	}

	travel, err := h.travelService.GetTravel(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(travel, ""))
}

func (h *TravelHandler) CreateTravel(c *fiber.Ctx) error {
	var req models.CreateTravelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	travel, err := h.travelService.CreateTravel(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(travel, "Travel created"))
}

func (h *TravelHandler) UpdateTravel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid travel ID"))
	}

	var req models.UpdateTravelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	travel, err := h.travelService.UpdateTravel(id, req)
	if err != nil {
		if errors.Is(err, service.ErrTravelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(travel, "Travel updated"))
}

func (h *TravelHandler) DeleteTravel(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid travel ID"))
	}

	if err := h.travelService.DeleteTravel(id); err != nil {
		if errors.Is(err, service.ErrTravelNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Travel deleted"))
}
