package repository

import "github.com/JAGR1792/Inventarios/internal/domain/entity"

// StockAuditRepository define el puerto de persistencia para la auditoría de
// stock. Solo se agrega: los registros son inmutables.
type StockAuditRepository interface {
	Create(audit *entity.StockAudit) error
	ListByProduct(key string, limit int) ([]*entity.StockAudit, error)
}
