package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain"
)

// ok responde el sobre estándar {ok:true, ...payload}.
func ok(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, code, msg string, details any) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, Details: details})
}

// failDomain traduce errores del dominio al sobre de error HTTP. Todo lo que
// no reconoce es un 500.
func failDomain(c *fiber.Ctx, err error) error {
	var short *domain.InsufficientStockError
	if errors.As(err, &short) {
		return fail(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", short.Error(), fiber.Map{"lines": short.Lines})
	}
	var pay *domain.InsufficientPaymentError
	if errors.As(err, &pay) {
		return fail(c, fiber.StatusBadRequest, "INSUFFICIENT_PAYMENT", pay.Error(), fiber.Map{
			"total":    pay.Total,
			"received": pay.Received,
		})
	}
	var force *domain.NeedsForceError
	if errors.As(err, &force) {
		return fail(c, fiber.StatusConflict, "NEEDS_FORCE", force.Error(), fiber.Map{
			"needs_force": true,
			"expected":    force.Expected,
			"counted":     force.Counted,
			"diff":        force.Diff,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyClosed):
		return fail(c, fiber.StatusConflict, "ALREADY_CLOSED", err.Error(), nil)
	case errors.Is(err, domain.ErrDayClosed):
		return fail(c, fiber.StatusConflict, "DAY_CLOSED", err.Error(), nil)
	case errors.Is(err, domain.ErrOpeningCarried):
		return fail(c, fiber.StatusConflict, "OPENING_CARRIED", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error(), nil)
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
}
