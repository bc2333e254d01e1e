package pos

import (
	"context"

	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el descuento de
// stock, la auditoría y la venta.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		auditRepo repository.StockAuditRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
