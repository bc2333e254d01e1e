package cash

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// CloseUseCase finaliza la caja de un día en un registro inmutable. Un día
// pasa de abierto (sin cierre) a cerrado (con cierre) y nunca regresa;
// corregir un cierre ya hecho requiere la apertura manual de un día nuevo.
type CloseUseCase struct {
	txRunner TxRunner
	// tolerance diferencia contado-esperado aceptada sin force. Configurable;
	// 0 exige cuadre exacto.
	tolerance decimal.Decimal
}

// NewCloseUseCase construye el caso de uso con la tolerancia configurada.
func NewCloseUseCase(txRunner TxRunner, tolerance decimal.Decimal) *CloseUseCase {
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	return &CloseUseCase{txRunner: txRunner, tolerance: tolerance}
}

// closeMessage se muestra cuando el conteo cuadra exacto.
const closeMessage = "Todo cuadra. Mucha chamba por hoy, hora de dormir."

// Close cierra la caja del día. Si se capturó conteo y la diferencia excede
// la tolerancia sin force, devuelve NeedsForceError para que el operador
// confirme y reintente. El carry al día siguiente es el contado si existe,
// si no el esperado.
func (uc *CloseUseCase) Close(ctx context.Context, in dto.CloseCashDayRequest) (*dto.CashCloseResponse, error) {
	if !entity.ValidDay(in.Day) {
		return nil, fmt.Errorf("%w: día inválido", domain.ErrInvalidInput)
	}
	var counted *decimal.Decimal
	if in.CashCounted != nil {
		c := in.CashCounted.Round(2)
		if c.IsNegative() {
			return nil, fmt.Errorf("%w: el conteo no puede ser negativo", domain.ErrInvalidInput)
		}
		counted = &c
	}

	var out *dto.CashCloseResponse
	err := uc.txRunner.RunCash(ctx, func(cashRepo repository.CashRepository, saleRepo repository.SaleRepository) error {
		existing, err := cashRepo.GetClose(in.Day)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyClosed
		}

		opening, _, _, err := resolveOpening(cashRepo, in.Day)
		if err != nil {
			return err
		}
		totals, err := saleRepo.TotalsForDay(in.Day)
		if err != nil {
			return err
		}
		withdrawalsTotal, err := cashRepo.WithdrawalsTotal(in.Day)
		if err != nil {
			return err
		}
		expected := opening.Add(totals.Cash).Sub(withdrawalsTotal).Round(2)

		var diff *decimal.Decimal
		if counted != nil {
			d := counted.Sub(expected).Round(2)
			diff = &d
			if d.Abs().GreaterThan(uc.tolerance) && !in.Force {
				return &domain.NeedsForceError{Expected: expected, Counted: *counted, Diff: d}
			}
		}

		carry := expected
		if counted != nil {
			carry = *counted
		}

		now := time.Now()
		row := &entity.CashClose{
			ID:               uuid.New().String(),
			Day:              in.Day,
			OpeningCash:      opening,
			WithdrawalsTotal: withdrawalsTotal.Round(2),
			GrossTotal:       totals.Gross.Round(2),
			CashTotal:        totals.Cash.Round(2),
			CardTotal:        totals.Card.Round(2),
			NequiTotal:       totals.Nequi.Round(2),
			VirtualTotal:     totals.Virtual.Round(2),
			ExpectedCashEnd:  expected,
			CarryToNextDay:   carry,
			CashCounted:      counted,
			CashDiff:         diff,
			Forced:           in.Force,
			Notes:            in.Notes,
			CreatedAt:        now,
		}
		if err := cashRepo.CreateClose(row); err != nil {
			return err
		}

		// Dejar persistida la apertura del día siguiente. El resolver del
		// panel la deriva igual del carry; esto solo acelera la consulta.
		if err := cashRepo.UpsertDay(&entity.CashDay{
			Day:           entity.NextDay(in.Day),
			OpeningCash:   carry,
			OpeningManual: false,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}

		msg := ""
		if counted != nil && diff != nil && diff.IsZero() {
			msg = closeMessage
		}
		out = &dto.CashCloseResponse{
			ID:              row.ID,
			CreatedAt:       now.Format("2006-01-02 15:04"),
			Day:             row.Day,
			ExpectedCashEnd: expected,
			CarryToNextDay:  carry,
			CashDiff:        diff,
			Forced:          row.Forced,
			Message:         msg,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
