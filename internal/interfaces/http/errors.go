package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
)

// fail traduce un error de dominio al status HTTP y cuerpo de error. Todo
// handler delega aquí para que el mapeo sea uniforme en toda la API.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrAlreadyConverted):
		return respond(c, fiber.StatusConflict, "ALREADY_CONVERTED", err)
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return respond(c, fiber.StatusConflict, "ALREADY_CANCELLED", err)
	case errors.Is(err, domain.ErrInvalidState):
		return respond(c, fiber.StatusConflict, "INVALID_STATE", err)
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailExists):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrInvalidAmount):
		return respond(c, fiber.StatusUnprocessableEntity, "INVALID_AMOUNT", err)
	case errors.Is(err, domain.ErrOverpayment):
		return respond(c, fiber.StatusUnprocessableEntity, "OVERPAYMENT", err)
	case errors.Is(err, domain.ErrDocumentLocked):
		return respond(c, fiber.StatusUnprocessableEntity, "DOCUMENT_LOCKED", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// badBody respuesta estándar para cuerpos no parseables.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
