package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/domain"
)

// respondError traduce los errores de dominio a status HTTP. Cualquier error
// no clasificado es un 500 genérico para no filtrar detalles internos.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrNoDestination):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("NO_DESTINATION", err.Error()))
	case errors.Is(err, domain.ErrAlreadyReceived):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("ALREADY_RECEIVED", err.Error()))
	case errors.Is(err, domain.ErrOrderNotDeletable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("NOT_DELETABLE", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Err("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("DUPLICATE", err.Error()))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Err("CONFLICT", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Err("UNAUTHORIZED", err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Err("FORBIDDEN", err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Err("INTERNAL", "error interno"))
	}
}
