package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/catalog"
	"github.com/JAGR1792/Inventarios/internal/application/pos"
	"github.com/JAGR1792/Inventarios/internal/application/reporting"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/memory"
	httpapi "github.com/JAGR1792/Inventarios/internal/interfaces/http"
)

func newTestApp(store *memory.Store) *fiber.App {
	ledgerUC := pos.NewStockLedgerUseCase(store, store.Products(), store.Audits())
	checkoutUC := pos.NewCheckoutUseCase(store, store.Products(), ledgerUC)
	panelUC := cash.NewPanelUseCase(store, store.Cash(), store.Sales())
	closeUC := cash.NewCloseUseCase(store, decimal.Zero)
	summaryUC := reporting.NewSummaryUseCase(store.Sales(), store.Cash())
	catalogUC := catalog.NewUseCase(store.Products())

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		CheckoutUC: checkoutUC,
		LedgerUC:   ledgerUC,
		PanelUC:    panelUC,
		CloseUC:    closeUC,
		SummaryUC:  summaryUC,
		CatalogUC:  catalogUC,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func seedProduct(store *memory.Store, key string, price float64, units int) {
	store.SeedProduct(entity.Product{
		Key:   key,
		Name:  key,
		Price: decimal.NewFromFloat(price),
		Units: units,
	})
}

func TestCheckoutEndpoint_OK(t *testing.T) {
	store := memory.New()
	seedProduct(store, "chocorramo", 3500, 10)
	app := newTestApp(store)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/checkout", map[string]any{
		"lines":   []map[string]any{{"key": "chocorramo", "qty": 3}},
		"payment": map[string]any{"method": "cash", "cash_received": "20000"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "cash", body["payment_method"])
	units := body["unidades"].(map[string]any)
	assert.EqualValues(t, 7, units["chocorramo"])
}

func TestCheckoutEndpoint_StockInsuficiente(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 1)
	app := newTestApp(store)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/checkout", map[string]any{
		"lines": []map[string]any{{"key": "pan", "qty": 5}},
	})
	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	require.Len(t, details["lines"], 1)
}

func TestCheckoutEndpoint_PagoInsuficiente(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 10)
	app := newTestApp(store)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/checkout", map[string]any{
		"lines":   []map[string]any{{"key": "pan", "qty": 3}},
		"payment": map[string]any{"method": "cash", "cash_received": "1000"},
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_PAYMENT", body["code"])
}

func TestStockEndpoints(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 5)
	app := newTestApp(store)

	status, body := doJSON(t, app, fiber.MethodPut, "/api/products/pan/stock", map[string]any{
		"stock": 0, "notes": "conteo",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["unidades"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/products/pan/restock", map[string]any{
		"delta": 8,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 8, body["unidades"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/products/pan/audit", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["audit"], 2)

	status, body = doJSON(t, app, fiber.MethodPut, "/api/products/fantasma/stock", map[string]any{
		"stock": 3,
	})
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCashEndpoints_CierreConForce(t *testing.T) {
	store := memory.New()
	app := newTestApp(store)
	day := "2025-03-10"

	status, body := doJSON(t, app, fiber.MethodPut, "/api/cash/opening", map[string]any{
		"day": day, "amount": "50000",
	})
	require.Equal(t, fiber.StatusOK, status)
	panel := body["panel"].(map[string]any)
	assert.Equal(t, "initial", panel["opening_source"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/cash/close", map[string]any{
		"day": day, "cash_counted": "48000",
	})
	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "NEEDS_FORCE", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, true, details["needs_force"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/cash/close", map[string]any{
		"day": day, "cash_counted": "48000", "force": true,
	})
	require.Equal(t, fiber.StatusOK, status)
	closeOut := body["close"].(map[string]any)
	assert.Equal(t, true, closeOut["forced"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/cash/close", map[string]any{"day": day})
	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "ALREADY_CLOSED", body["code"])
}

func TestCatalogEndpoints(t *testing.T) {
	store := memory.New()
	store.SeedProduct(entity.Product{Key: "pan", Name: "pan", Category: "panadería", Price: decimal.NewFromInt(1000), Units: 5})
	store.SeedProduct(entity.Product{Key: "cafe", Name: "cafe", Category: "bebidas", Price: decimal.NewFromInt(9000), Units: 3})
	app := newTestApp(store)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/products/", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["productos"], 2)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/products/categories", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.ElementsMatch(t, []any{"bebidas", "panadería"}, body["categorias"])
}
