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

// panelWithdrawalsLimit retiros mostrados en el panel (el total se calcula
// sobre todos, no solo los listados).
const panelWithdrawalsLimit = 50

// PanelUseCase agrega el estado de caja de un día calendario: apertura
// resuelta, ventas por método de pago, retiros y efectivo esperado. También
// muta la apertura manual y los retiros mientras el día siga abierto.
type PanelUseCase struct {
	txRunner TxRunner
	cashRepo repository.CashRepository
	saleRepo repository.SaleRepository
}

// NewPanelUseCase construye el caso de uso.
func NewPanelUseCase(txRunner TxRunner, cashRepo repository.CashRepository, saleRepo repository.SaleRepository) *PanelUseCase {
	return &PanelUseCase{txRunner: txRunner, cashRepo: cashRepo, saleRepo: saleRepo}
}

// resolveOpening resuelve la apertura de caja de un día:
//   - prev_close: arrastrada del carry del cierre anterior (siempre gana)
//   - initial: valor fijado a mano, solo válido sin cierres previos
//   - zero: sin dato; needsInitial avisa si el sistema no tiene ningún cierre
//     y hace falta capturar la apertura inicial.
func resolveOpening(cashRepo repository.CashRepository, day string) (decimal.Decimal, entity.OpeningSource, bool, error) {
	prev, err := cashRepo.GetPrevClose(day)
	if err != nil {
		return decimal.Zero, "", false, err
	}
	if prev != nil {
		return prev.CarryToNextDay.Round(2), entity.OpeningFromPrevClose, false, nil
	}
	dayRow, err := cashRepo.GetDay(day)
	if err != nil {
		return decimal.Zero, "", false, err
	}
	if dayRow != nil && dayRow.OpeningManual {
		return dayRow.OpeningCash.Round(2), entity.OpeningManual, false, nil
	}
	anyClose, err := cashRepo.AnyClose()
	if err != nil {
		return decimal.Zero, "", false, err
	}
	return decimal.Zero, entity.OpeningUnset, !anyClose, nil
}

// GetPanel arma el panel del día. Un día sin datos no es un error: devuelve
// ceros y, si aplica, la marca de apertura inicial pendiente.
func (uc *PanelUseCase) GetPanel(ctx context.Context, day string) (*dto.CashPanelResponse, error) {
	if !entity.ValidDay(day) {
		return nil, fmt.Errorf("%w: día inválido", domain.ErrInvalidInput)
	}
	return uc.buildPanel(uc.cashRepo, uc.saleRepo, day)
}

func (uc *PanelUseCase) buildPanel(cashRepo repository.CashRepository, saleRepo repository.SaleRepository, day string) (*dto.CashPanelResponse, error) {
	opening, source, needsInitial, err := resolveOpening(cashRepo, day)
	if err != nil {
		return nil, err
	}
	totals, err := saleRepo.TotalsForDay(day)
	if err != nil {
		return nil, err
	}
	moves, err := cashRepo.ListWithdrawals(day, panelWithdrawalsLimit)
	if err != nil {
		return nil, err
	}
	withdrawalsTotal, err := cashRepo.WithdrawalsTotal(day)
	if err != nil {
		return nil, err
	}
	lastClose, err := cashRepo.GetClose(day)
	if err != nil {
		return nil, err
	}

	expected := opening.Add(totals.Cash).Sub(withdrawalsTotal).Round(2)

	outMoves := make([]dto.WithdrawalDTO, 0, len(moves))
	for _, m := range moves {
		outMoves = append(outMoves, dto.WithdrawalDTO{
			ID:        m.ID,
			CreatedAt: m.CreatedAt.Format("15:04"),
			Amount:    m.Amount.Round(2),
			Notes:     m.Notes,
		})
	}

	var outClose *dto.CashCloseSummaryDTO
	if lastClose != nil {
		outClose = &dto.CashCloseSummaryDTO{
			CreatedAt:      lastClose.CreatedAt.Format("2006-01-02 15:04"),
			CarryToNextDay: lastClose.CarryToNextDay.Round(2),
			CashCounted:    lastClose.CashCounted,
			CashDiff:       lastClose.CashDiff,
		}
	}

	return &dto.CashPanelResponse{
		Day:                 day,
		OpeningCash:         opening,
		OpeningSource:       string(source),
		NeedsInitialOpening: needsInitial,
		IsClosed:            lastClose != nil,
		WithdrawalsTotal:    withdrawalsTotal.Round(2),
		Withdrawals:         outMoves,
		GrossTotal:          totals.Gross.Round(2),
		CashTotal:           totals.Cash.Round(2),
		CardTotal:           totals.Card.Round(2),
		NequiTotal:          totals.Nequi.Round(2),
		VirtualTotal:        totals.Virtual.Round(2),
		SalesCount:          totals.SalesCount,
		ExpectedCashEnd:     expected,
		LastClose:           outClose,
	}, nil
}

// SetOpeningCash fija la apertura inicial manual. Solo tiene sentido mientras
// no exista ningún cierre del cual arrastrar; después, la apertura siempre
// viene del carry del cierre anterior.
func (uc *PanelUseCase) SetOpeningCash(ctx context.Context, day string, amount decimal.Decimal) (*dto.CashPanelResponse, error) {
	if !entity.ValidDay(day) {
		return nil, fmt.Errorf("%w: día inválido", domain.ErrInvalidInput)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: la apertura no puede ser negativa", domain.ErrInvalidInput)
	}
	var panel *dto.CashPanelResponse
	err := uc.txRunner.RunCash(ctx, func(cashRepo repository.CashRepository, saleRepo repository.SaleRepository) error {
		anyClose, err := cashRepo.AnyClose()
		if err != nil {
			return err
		}
		if anyClose {
			return domain.ErrOpeningCarried
		}
		if err := cashRepo.UpsertDay(&entity.CashDay{
			Day:           day,
			OpeningCash:   amount.Round(2),
			OpeningManual: true,
			UpdatedAt:     time.Now(),
		}); err != nil {
			return err
		}
		panel, err = uc.buildPanel(cashRepo, saleRepo, day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return panel, nil
}

// AddWithdrawal agrega un retiro al día. Los días cerrados son inmutables.
func (uc *PanelUseCase) AddWithdrawal(ctx context.Context, day string, amount decimal.Decimal, notes string) (*dto.CashPanelResponse, error) {
	if !entity.ValidDay(day) {
		return nil, fmt.Errorf("%w: día inválido", domain.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el retiro debe ser mayor a 0", domain.ErrInvalidInput)
	}
	var panel *dto.CashPanelResponse
	err := uc.txRunner.RunCash(ctx, func(cashRepo repository.CashRepository, saleRepo repository.SaleRepository) error {
		closed, err := cashRepo.GetClose(day)
		if err != nil {
			return err
		}
		if closed != nil {
			return domain.ErrDayClosed
		}
		if err := cashRepo.CreateMove(&entity.CashMove{
			ID:        uuid.New().String(),
			Day:       day,
			Kind:      entity.CashMoveWithdrawal,
			Amount:    amount.Round(2),
			Notes:     notes,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		panel, err = uc.buildPanel(cashRepo, saleRepo, day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return panel, nil
}

// DeleteWithdrawal borra un retiro. Se rechaza si su día ya fue cerrado: el
// cierre congeló ese total.
func (uc *PanelUseCase) DeleteWithdrawal(ctx context.Context, id string) (*dto.CashPanelResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: movimiento inválido", domain.ErrInvalidInput)
	}
	var panel *dto.CashPanelResponse
	err := uc.txRunner.RunCash(ctx, func(cashRepo repository.CashRepository, saleRepo repository.SaleRepository) error {
		mv, err := cashRepo.GetMove(id)
		if err != nil {
			return err
		}
		if mv == nil {
			return domain.ErrNotFound
		}
		closed, err := cashRepo.GetClose(mv.Day)
		if err != nil {
			return err
		}
		if closed != nil {
			return domain.ErrDayClosed
		}
		if err := cashRepo.DeleteMove(id); err != nil {
			return err
		}
		panel, err = uc.buildPanel(cashRepo, saleRepo, mv.Day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return panel, nil
}
