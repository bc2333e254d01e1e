package dto

import "github.com/shopspring/decimal"

// WithdrawalDTO retiro de efectivo listado en el panel.
type WithdrawalDTO struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at"` // HH:MM
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
}

// CashCloseSummaryDTO resumen del cierre mostrado dentro del panel.
type CashCloseSummaryDTO struct {
	CreatedAt      string           `json:"created_at"`
	CarryToNextDay decimal.Decimal  `json:"carry_to_next_day"`
	CashCounted    *decimal.Decimal `json:"cash_counted"`
	CashDiff       *decimal.Decimal `json:"cash_diff"`
}

// CashPanelResponse estado de caja de un día: apertura resuelta, totales por
// método, retiros y efectivo esperado al final.
type CashPanelResponse struct {
	Day                 string               `json:"day"`
	OpeningCash         decimal.Decimal      `json:"opening_cash"`
	OpeningSource       string               `json:"opening_source"`
	NeedsInitialOpening bool                 `json:"needs_initial_opening"`
	IsClosed            bool                 `json:"is_closed"`
	WithdrawalsTotal    decimal.Decimal      `json:"withdrawals_total"`
	Withdrawals         []WithdrawalDTO      `json:"withdrawals"`
	GrossTotal          decimal.Decimal      `json:"gross_total"`
	CashTotal           decimal.Decimal      `json:"cash_total"`
	CardTotal           decimal.Decimal      `json:"card_total"`
	NequiTotal          decimal.Decimal      `json:"nequi_total"`
	VirtualTotal        decimal.Decimal      `json:"virtual_total"`
	SalesCount          int                  `json:"sales_count"`
	ExpectedCashEnd     decimal.Decimal      `json:"expected_cash_end"`
	LastClose           *CashCloseSummaryDTO `json:"last_close"`
}

// SetOpeningCashRequest apertura inicial manual (solo sin cierres previos).
type SetOpeningCashRequest struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// AddWithdrawalRequest registrar un retiro de efectivo.
type AddWithdrawalRequest struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

// CloseCashDayRequest cerrar la caja del día. CashCounted es opcional; Force
// acepta una diferencia fuera de tolerancia ya confirmada por el operador.
type CloseCashDayRequest struct {
	Day         string           `json:"day"`
	CashCounted *decimal.Decimal `json:"cash_counted"`
	Notes       string           `json:"notes"`
	Force       bool             `json:"force"`
}

// CashCloseResponse cierre creado.
type CashCloseResponse struct {
	ID              string           `json:"id"`
	CreatedAt       string           `json:"created_at"`
	Day             string           `json:"day"`
	ExpectedCashEnd decimal.Decimal  `json:"expected_cash_end"`
	CarryToNextDay  decimal.Decimal  `json:"carry_to_next_day"`
	CashDiff        *decimal.Decimal `json:"cash_diff"`
	Forced          bool             `json:"forced"`
	Message         string           `json:"message,omitempty"`
}

// CashCloseRowDTO fila del historial de cierres.
type CashCloseRowDTO struct {
	ID               string           `json:"id"`
	CreatedAt        string           `json:"created_at"`
	Day              string           `json:"day"`
	OpeningCash      decimal.Decimal  `json:"opening_cash"`
	WithdrawalsTotal decimal.Decimal  `json:"withdrawals_total"`
	GrossTotal       decimal.Decimal  `json:"gross_total"`
	CashTotal        decimal.Decimal  `json:"cash_total"`
	CardTotal        decimal.Decimal  `json:"card_total"`
	NequiTotal       decimal.Decimal  `json:"nequi_total"`
	VirtualTotal     decimal.Decimal  `json:"virtual_total"`
	ExpectedCashEnd  decimal.Decimal  `json:"expected_cash_end"`
	CarryToNextDay   decimal.Decimal  `json:"carry_to_next_day"`
	CashCounted      *decimal.Decimal `json:"cash_counted"`
	CashDiff         *decimal.Decimal `json:"cash_diff"`
	Forced           bool             `json:"forced"`
}

// SaleSummaryDTO fila de las últimas ventas en el resumen.
type SaleSummaryDTO struct {
	ID            string          `json:"id"`
	CreatedAt     string          `json:"created_at"`
	Total         decimal.Decimal `json:"total"`
	Items         int             `json:"items"`
	PaymentMethod string          `json:"payment_method"`
}

// SummaryResponse resumen general: total vendido histórico y últimas ventas.
type SummaryResponse struct {
	TotalSold  decimal.Decimal  `json:"total_vendido"`
	LatestSale []SaleSummaryDTO `json:"ultimas_ventas"`
}

// DaySalesDTO total vendido por día.
type DaySalesDTO struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// TopProductDTO producto más vendido por facturación.
type TopProductDTO struct {
	Key   string          `json:"key"`
	Name  string          `json:"producto"`
	Qty   int             `json:"qty"`
	Total decimal.Decimal `json:"total"`
}
