package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/catalog"
	"github.com/JAGR1792/Inventarios/internal/application/pos"
	"github.com/JAGR1792/Inventarios/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CheckoutUC *pos.CheckoutUseCase
	LedgerUC   *pos.StockLedgerUseCase
	PanelUC    *cash.PanelUseCase
	CloseUC    *cash.CloseUseCase
	SummaryUC  *reporting.SummaryUseCase
	CatalogUC  *catalog.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	posHandler := NewPOSHandler(deps.CheckoutUC, deps.LedgerUC)
	api.Post("/checkout", posHandler.Checkout)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", catalogHandler.List)
	products.Get("/categories", catalogHandler.Categories)
	products.Get("/:key/stock", posHandler.GetStock)
	products.Put("/:key/stock", posHandler.SetStock)
	products.Post("/:key/restock", posHandler.Restock)
	products.Get("/:key/audit", posHandler.ListAudit)

	cashHandler := NewCashHandler(deps.PanelUC, deps.CloseUC)
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	cashGroup := api.Group("/cash")
	cashGroup.Get("/panel", cashHandler.GetPanel)
	cashGroup.Put("/opening", cashHandler.SetOpeningCash)
	cashGroup.Post("/withdrawals", cashHandler.AddWithdrawal)
	cashGroup.Delete("/withdrawals/:id", cashHandler.DeleteWithdrawal)
	cashGroup.Post("/close", cashHandler.Close)
	cashGroup.Get("/closes", summaryHandler.ListCloses)

	summary := api.Group("/summary")
	summary.Get("/", summaryHandler.GetSummary)
	summary.Get("/daily", summaryHandler.Daily)
	summary.Get("/top", summaryHandler.Top)
}
