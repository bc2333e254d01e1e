package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

var _ repository.StockAuditRepository = (*StockAuditRepo)(nil)

// StockAuditRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockAuditRepo struct {
	q Querier
}

// NewStockAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAuditRepository(q Querier) *StockAuditRepo {
	return &StockAuditRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *StockAuditRepo) Create(audit *entity.StockAudit) error {
	if audit.ID == "" {
		audit.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_audit (id, product_key, kind, delta, resulting_units, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.ProductKey, string(audit.Kind), audit.Delta,
		audit.ResultingUnits, audit.Notes, audit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock audit: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, más reciente primero. Filas
// históricas con el kind deprecado se normalizan al leer.
func (r *StockAuditRepo) ListByProduct(key string, limit int) ([]*entity.StockAudit, error) {
	query := `
		SELECT id, product_key, kind, delta, resulting_units, notes, created_at
		FROM stock_audit WHERE product_key = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, key, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock audit: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAudit
	for rows.Next() {
		var a entity.StockAudit
		var kind string
		if err := rows.Scan(&a.ID, &a.ProductKey, &kind, &a.Delta, &a.ResultingUnits, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock audit: %w", err)
		}
		k, err := entity.ParseAuditKind(kind)
		if err != nil {
			return nil, fmt.Errorf("stock audit %s: %w", a.ID, err)
		}
		a.Kind = k
		list = append(list, &a)
	}
	return list, rows.Err()
}
