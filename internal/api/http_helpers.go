package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/services"
	"github.com/terraincognita07/selene/internal/timestamp"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func serviceError(c *fiber.Ctx, err error) error {
	return apiError(c, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrCycleIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, timestamp.ErrNotAnInstant):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrWriteConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrCalendarProvider):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
