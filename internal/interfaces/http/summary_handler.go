package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/reporting"
)

// SummaryHandler maneja los reportes de ventas y cierres.
type SummaryHandler struct {
	uc *reporting.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *reporting.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Total vendido y últimas ventas
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Límite de ventas"  default(25)
// @Success      200    {object}  dto.SummaryResponse
// @Router       /api/summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"total_vendido":  out.TotalSold,
		"ultimas_ventas": out.LatestSale,
	})
}

// Daily godoc
// @Summary      Total vendido por día
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Días hacia atrás"  default(30)
// @Success      200    {array}  dto.DaySalesDTO
// @Router       /api/summary/daily [get]
func (h *SummaryHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.TotalSoldByDay(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"days": out})
}

// Top godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {array}  dto.TopProductDTO
// @Router       /api/summary/top [get]
func (h *SummaryHandler) Top(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"top": out})
}

// ListCloses godoc
// @Summary      Historial de cierres de caja
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(30)
// @Success      200    {array}  dto.CashCloseRowDTO
// @Router       /api/cash/closes [get]
func (h *SummaryHandler) ListCloses(c *fiber.Ctx) error {
	out, err := h.uc.ListCashCloses(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"closes": out})
}
