package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/application/pos"
)

// POSHandler maneja el cobro y los ajustes de stock.
type POSHandler struct {
	checkout *pos.CheckoutUseCase
	ledger   *pos.StockLedgerUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(checkout *pos.CheckoutUseCase, ledger *pos.StockLedgerUseCase) *POSHandler {
	return &POSHandler{checkout: checkout, ledger: ledger}
}

// Checkout godoc
// @Summary      Cobrar una venta
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Líneas y pago"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	out, err := h.checkout.Checkout(c.Context(), in)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"sale_id":        out.SaleID,
		"total":          out.Total,
		"payment_method": out.PaymentMethod,
		"cash_received":  out.CashReceived,
		"change_given":   out.ChangeGiven,
		"unidades":       out.Units,
	})
}

// SetStock godoc
// @Summary      Fijar existencias de un producto
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave del producto"
// @Param        body  body  dto.SetStockRequest  true  "Existencias absolutas"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{key}/stock [put]
func (h *POSHandler) SetStock(c *fiber.Ctx) error {
	key := c.Params("key")
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	out, err := h.ledger.SetStock(c.Context(), key, in.Stock, in.Notes)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"producto": out.Key, "unidades": out.Units})
}

// Restock godoc
// @Summary      Ajuste relativo de existencias (alias deprecado)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave del producto"
// @Param        body  body  dto.RestockRequest  true  "Delta de unidades"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{key}/restock [post]
func (h *POSHandler) Restock(c *fiber.Ctx) error {
	key := c.Params("key")
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	out, err := h.ledger.Restock(c.Context(), key, in.Delta, in.Notes)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"producto": out.Key, "unidades": out.Units})
}

// GetStock godoc
// @Summary      Consultar existencias de un producto
// @Tags         pos
// @Produce      json
// @Param        key  path  string  true  "Clave del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{key}/stock [get]
func (h *POSHandler) GetStock(c *fiber.Ctx) error {
	key := c.Params("key")
	units, err := h.ledger.GetUnits(c.Context(), key)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"producto": key, "unidades": units})
}

// ListAudit godoc
// @Summary      Auditoría de movimientos de stock de un producto
// @Tags         pos
// @Produce      json
// @Param        key    path   string  true   "Clave del producto"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {array}   dto.StockAuditDTO
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{key}/audit [get]
func (h *POSHandler) ListAudit(c *fiber.Ctx) error {
	key := c.Params("key")
	limit := c.QueryInt("limit", 0)
	out, err := h.ledger.ListAudit(c.Context(), key, limit)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"audit": out})
}
