package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Se asume invocado dentro de la
// transacción del checkout: aquí no se abre una propia.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, created_at, total, payment_method, cash_received, change_given)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CreatedAt, sale.Total, string(sale.PaymentMethod),
		sale.CashReceived, sale.ChangeGiven,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, product_key, producto, descripcion, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range sale.Lines {
		ln := &sale.Lines[i]
		if _, err := r.q.Exec(ctx, lineQuery,
			ln.ID, sale.ID, ln.ProductKey, ln.Name, ln.Description,
			ln.Qty, ln.UnitPrice, ln.LineTotal,
		); err != nil {
			return fmt.Errorf("create sale line: %w", err)
		}
	}
	return nil
}

// TotalsForDay totales del día por método de pago. Sin ventas devuelve ceros.
func (r *SaleRepo) TotalsForDay(day string) (*entity.DayTotals, error) {
	totals := entity.ZeroDayTotals()
	query := `
		SELECT payment_method, COALESCE(SUM(total), 0), COUNT(*)
		FROM sales WHERE created_at::date = $1::date
		GROUP BY payment_method`
	rows, err := r.q.Query(context.Background(), query, day)
	if err != nil {
		return nil, fmt.Errorf("totals for day: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var sum decimal.Decimal
		var count int
		if err := rows.Scan(&method, &sum, &count); err != nil {
			return nil, fmt.Errorf("scan day totals: %w", err)
		}
		switch entity.PaymentMethod(method) {
		case entity.PaymentCash:
			totals.Cash = sum
		case entity.PaymentCard:
			totals.Card = sum
		case entity.PaymentNequi:
			totals.Nequi = sum
		case entity.PaymentVirtual:
			totals.Virtual = sum
		}
		totals.Gross = totals.Gross.Add(sum)
		totals.SalesCount += count
	}
	return totals, rows.Err()
}

// ListSummaries últimas ventas con conteo de ítems.
func (r *SaleRepo) ListSummaries(limit int) ([]*entity.SaleSummary, error) {
	query := `
		SELECT s.id, s.created_at, s.total, COALESCE(COUNT(l.id), 0), s.payment_method
		FROM sales s
		LEFT JOIN sale_lines l ON l.sale_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sale summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleSummary
	for rows.Next() {
		var s entity.SaleSummary
		var method string
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Total, &s.Items, &method); err != nil {
			return nil, fmt.Errorf("scan sale summary: %w", err)
		}
		s.PaymentMethod = entity.PaymentMethod(method)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalSold total vendido histórico.
func (r *SaleRepo) TotalSold() (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(total), 0) FROM sales`
	if err := r.q.QueryRow(context.Background(), query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total sold: %w", err)
	}
	return total, nil
}

// TotalSoldByDay total vendido por día, más reciente primero.
func (r *SaleRepo) TotalSoldByDay(limitDays int) ([]entity.DaySales, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'), COALESCE(SUM(total), 0)
		FROM sales
		GROUP BY created_at::date
		ORDER BY created_at::date DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limitDays)
	if err != nil {
		return nil, fmt.Errorf("total sold by day: %w", err)
	}
	defer rows.Close()
	var list []entity.DaySales
	for rows.Next() {
		var d entity.DaySales
		if err := rows.Scan(&d.Day, &d.Total); err != nil {
			return nil, fmt.Errorf("scan day sales: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// TopProducts agregado histórico por producto, ordenado por facturación.
func (r *SaleRepo) TopProducts(limit int) ([]entity.TopProduct, error) {
	query := `
		SELECT product_key, producto, COALESCE(SUM(qty), 0), COALESCE(SUM(line_total), 0)
		FROM sale_lines
		GROUP BY product_key, producto
		ORDER BY SUM(line_total) DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []entity.TopProduct
	for rows.Next() {
		var t entity.TopProduct
		if err := rows.Scan(&t.ProductKey, &t.Name, &t.Qty, &t.Total); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
