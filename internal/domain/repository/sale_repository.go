package repository

import (
	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus agregados.
type SaleRepository interface {
	// Create persiste la venta con sus líneas. Se invoca siempre dentro de la
	// transacción del checkout.
	Create(sale *entity.Sale) error
	// TotalsForDay totales del día por método de pago. Día sin ventas devuelve ceros.
	TotalsForDay(day string) (*entity.DayTotals, error)
	ListSummaries(limit int) ([]*entity.SaleSummary, error)
	TotalSold() (decimal.Decimal, error)
	TotalSoldByDay(limitDays int) ([]entity.DaySales, error)
	TopProducts(limit int) ([]entity.TopProduct, error)
}
