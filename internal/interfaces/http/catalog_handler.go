package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/catalog"
)

// CatalogHandler maneja la lectura del catálogo de productos.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         catalog
// @Produce      json
// @Param        q         query  string  false  "Búsqueda por nombre o descripción"
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite"  default(300)
// @Success      200       {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"), c.Query("category"), c.QueryInt("limit", 0))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"productos": out})
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/products/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.Context())
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"categorias": out})
}
