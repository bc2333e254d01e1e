package pos

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// StockLedgerUseCase es el único dueño de las unidades en existencia. Cada
// mutación escribe exactamente un registro de auditoría en la misma
// transacción que el cambio de cantidad: un cambio sin su fila de auditoría
// (o al revés) es un bug de consistencia.
type StockLedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	auditRepo   repository.StockAuditRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	auditRepo repository.StockAuditRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// GetUnits devuelve las unidades actuales de un producto.
func (uc *StockLedgerUseCase) GetUnits(ctx context.Context, key string) (int, error) {
	p, err := uc.productRepo.GetByKey(key)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrNotFound
	}
	return p.Units, nil
}

// SetStock fija el stock absoluto de un producto y registra el ajuste.
// Es la única operación soportada para "poner stock": el alias relativo
// Restock se traduce a este mismo camino.
func (uc *StockLedgerUseCase) SetStock(ctx context.Context, key string, units int, notes string) (*dto.StockResponse, error) {
	if units < 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.StockResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		auditRepo repository.StockAuditRepository,
		_ repository.SaleRepository,
	) error {
		res, err := uc.adjustAbsoluteInTx(productRepo, auditRepo, key, units, notes)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Restock alias deprecado: ajuste relativo. delta negativo reduce pero nunca
// por debajo de 0. Internamente resuelve al mismo ajuste absoluto con kind
// adjust; no existe un segundo camino transaccional.
func (uc *StockLedgerUseCase) Restock(ctx context.Context, key string, delta int, notes string) (*dto.StockResponse, error) {
	if delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.StockResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		auditRepo repository.StockAuditRepository,
		_ repository.SaleRepository,
	) error {
		p, err := productRepo.GetByKeyForUpdate(key)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		target := p.Units + delta
		if target < 0 {
			target = 0
		}
		res, err := uc.applyUnitsLocked(productRepo, auditRepo, p, target, notes)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// adjustAbsoluteInTx bloquea la fila del producto y aplica el stock absoluto.
func (uc *StockLedgerUseCase) adjustAbsoluteInTx(
	productRepo repository.ProductRepository,
	auditRepo repository.StockAuditRepository,
	key string, units int, notes string,
) (*dto.StockResponse, error) {
	p, err := productRepo.GetByKeyForUpdate(key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.applyUnitsLocked(productRepo, auditRepo, p, units, notes)
}

// applyUnitsLocked escribe las unidades nuevas y la fila ADJUST con el delta
// calculado. p debe venir bloqueado (FOR UPDATE) por el caller.
func (uc *StockLedgerUseCase) applyUnitsLocked(
	productRepo repository.ProductRepository,
	auditRepo repository.StockAuditRepository,
	p *entity.Product, units int, notes string,
) (*dto.StockResponse, error) {
	delta := units - p.Units
	if err := productRepo.UpdateUnits(p.Key, units); err != nil {
		return nil, err
	}
	audit := &entity.StockAudit{
		ID:             uuid.New().String(),
		ProductKey:     p.Key,
		Kind:           entity.AuditKindAdjust,
		Delta:          delta,
		ResultingUnits: units,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
	if err := auditRepo.Create(audit); err != nil {
		return nil, err
	}
	return &dto.StockResponse{Key: p.Key, Units: units}, nil
}

// DecrementInTx descuenta unidades por venta usando los repositorios de la
// transacción del caller (patrón del checkout: todas las líneas y la venta en
// una sola tx). Bloquea la fila, re-valida la existencia bajo el lock y
// escribe la fila SALE con delta negativo. Devuelve las unidades resultantes.
func (uc *StockLedgerUseCase) DecrementInTx(
	productRepo repository.ProductRepository,
	auditRepo repository.StockAuditRepository,
	key string, qty int, notes string,
	now time.Time,
) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidInput
	}
	p, err := productRepo.GetByKeyForUpdate(key)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrNotFound
	}
	if p.Units < qty {
		return 0, &domain.InsufficientStockError{Lines: []domain.ShortLine{{
			Key:       key,
			Name:      p.Name,
			Available: p.Units,
			Requested: qty,
		}}}
	}
	remaining := p.Units - qty
	if err := productRepo.UpdateUnits(key, remaining); err != nil {
		return 0, err
	}
	audit := &entity.StockAudit{
		ID:             uuid.New().String(),
		ProductKey:     key,
		Kind:           entity.AuditKindSale,
		Delta:          -qty,
		ResultingUnits: remaining,
		Notes:          notes,
		CreatedAt:      now,
	}
	if err := auditRepo.Create(audit); err != nil {
		return 0, err
	}
	return remaining, nil
}

// ListAudit historial de mutaciones de un producto, más reciente primero.
func (uc *StockLedgerUseCase) ListAudit(ctx context.Context, key string, limit int) ([]dto.StockAuditDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	p, err := uc.productRepo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.auditRepo.ListByProduct(key, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAuditDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.StockAuditDTO{
			ID:             a.ID,
			Kind:           string(a.Kind),
			Delta:          a.Delta,
			ResultingUnits: a.ResultingUnits,
			Notes:          a.Notes,
			CreatedAt:      a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out, nil
}
