package reporting

import (
	"context"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// SummaryUseCase agregados de solo lectura: total vendido, últimas ventas,
// ventas por día, top de productos e historial de cierres.
type SummaryUseCase struct {
	saleRepo repository.SaleRepository
	cashRepo repository.CashRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(saleRepo repository.SaleRepository, cashRepo repository.CashRepository) *SummaryUseCase {
	return &SummaryUseCase{saleRepo: saleRepo, cashRepo: cashRepo}
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// GetSummary total vendido histórico más las últimas ventas.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, limit int) (*dto.SummaryResponse, error) {
	lim := clampLimit(limit, 25, 200)
	total, err := uc.saleRepo.TotalSold()
	if err != nil {
		return nil, err
	}
	rows, err := uc.saleRepo.ListSummaries(lim)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SaleSummaryDTO{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04"),
			Total:         r.Total.Round(2),
			Items:         r.Items,
			PaymentMethod: string(r.PaymentMethod),
		})
	}
	return &dto.SummaryResponse{TotalSold: total.Round(2), LatestSale: out}, nil
}

// TotalSoldByDay total vendido por día calendario, más reciente primero.
func (uc *SummaryUseCase) TotalSoldByDay(ctx context.Context, limitDays int) ([]dto.DaySalesDTO, error) {
	rows, err := uc.saleRepo.TotalSoldByDay(clampLimit(limitDays, 30, 365))
	if err != nil {
		return nil, err
	}
	out := make([]dto.DaySalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DaySalesDTO{Day: r.Day, Total: r.Total.Round(2)})
	}
	return out, nil
}

// TopProducts productos ordenados por facturación histórica.
func (uc *SummaryUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	rows, err := uc.saleRepo.TopProducts(clampLimit(limit, 10, 100))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{Key: r.ProductKey, Name: r.Name, Qty: r.Qty, Total: r.Total.Round(2)})
	}
	return out, nil
}

// ListCashCloses historial de cierres, más reciente primero.
func (uc *SummaryUseCase) ListCashCloses(ctx context.Context, limit int) ([]dto.CashCloseRowDTO, error) {
	rows, err := uc.cashRepo.ListCloses(clampLimit(limit, 30, 200))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashCloseRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CashCloseRowDTO{
			ID:               r.ID,
			CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04"),
			Day:              r.Day,
			OpeningCash:      r.OpeningCash.Round(2),
			WithdrawalsTotal: r.WithdrawalsTotal.Round(2),
			GrossTotal:       r.GrossTotal.Round(2),
			CashTotal:        r.CashTotal.Round(2),
			CardTotal:        r.CardTotal.Round(2),
			NequiTotal:       r.NequiTotal.Round(2),
			VirtualTotal:     r.VirtualTotal.Round(2),
			ExpectedCashEnd:  r.ExpectedCashEnd.Round(2),
			CarryToNextDay:   r.CarryToNextDay.Round(2),
			CashCounted:      r.CashCounted,
			CashDiff:         r.CashDiff,
			Forced:           r.Forced,
		})
	}
	return out, nil
}
