package cash

import (
	"context"

	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de caja y ventas atados a esa tx. El cierre de día y las
// mutaciones de retiros dependen de esta atomicidad.
type TxRunner interface {
	RunCash(ctx context.Context, fn func(
		cashRepo repository.CashRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
