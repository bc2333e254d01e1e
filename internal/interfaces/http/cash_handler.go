package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
)

// CashHandler maneja el panel de caja, retiros y cierre del día.
type CashHandler struct {
	panel *cash.PanelUseCase
	close *cash.CloseUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(panel *cash.PanelUseCase, close *cash.CloseUseCase) *CashHandler {
	return &CashHandler{panel: panel, close: close}
}

// queryDay día pedido por query, hoy si viene vacío.
func queryDay(c *fiber.Ctx) string {
	day := c.Query("day")
	if day == "" {
		day = time.Now().Format(entity.DayFormat)
	}
	return day
}

// GetPanel godoc
// @Summary      Panel de caja del día
// @Tags         cash
// @Produce      json
// @Param        day  query  string  false  "Día YYYY-MM-DD (hoy por defecto)"
// @Success      200  {object}  dto.CashPanelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/panel [get]
func (h *CashHandler) GetPanel(c *fiber.Ctx) error {
	out, err := h.panel.GetPanel(c.Context(), queryDay(c))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"panel": out})
}

// SetOpeningCash godoc
// @Summary      Fijar la base inicial de caja
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetOpeningCashRequest  true  "Día y monto"
// @Success      200   {object}  dto.CashPanelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/opening [put]
func (h *CashHandler) SetOpeningCash(c *fiber.Ctx) error {
	var in dto.SetOpeningCashRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	if in.Day == "" {
		in.Day = time.Now().Format(entity.DayFormat)
	}
	out, err := h.panel.SetOpeningCash(c.Context(), in.Day, in.Amount)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"panel": out})
}

// AddWithdrawal godoc
// @Summary      Registrar un retiro de efectivo
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddWithdrawalRequest  true  "Día, monto y nota"
// @Success      200   {object}  dto.CashPanelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/withdrawals [post]
func (h *CashHandler) AddWithdrawal(c *fiber.Ctx) error {
	var in dto.AddWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	if in.Day == "" {
		in.Day = time.Now().Format(entity.DayFormat)
	}
	out, err := h.panel.AddWithdrawal(c.Context(), in.Day, in.Amount, in.Notes)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"panel": out})
}

// DeleteWithdrawal godoc
// @Summary      Eliminar un retiro de efectivo
// @Tags         cash
// @Produce      json
// @Param        id  path  string  true  "ID del retiro"
// @Success      200  {object}  dto.CashPanelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash/withdrawals/{id} [delete]
func (h *CashHandler) DeleteWithdrawal(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "id es requerido", nil)
	}
	out, err := h.panel.DeleteWithdrawal(c.Context(), id)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"panel": out})
}

// Close godoc
// @Summary      Cerrar la caja del día
// @Tags         cash
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashDayRequest  true  "Día, conteo opcional y force"
// @Success      200   {object}  dto.CashCloseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/close [post]
func (h *CashHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashDayRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	if in.Day == "" {
		in.Day = time.Now().Format(entity.DayFormat)
	}
	out, err := h.close.Close(c.Context(), in)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"close": out})
}
