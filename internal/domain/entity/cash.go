package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningSource de dónde sale la apertura de caja de un día.
type OpeningSource string

const (
	// OpeningFromPrevClose arrastrada del cierre del día anterior.
	OpeningFromPrevClose OpeningSource = "prev_close"
	// OpeningManual valor inicial fijado por el operador (solo válido cuando
	// todavía no existe ningún cierre del cual arrastrar).
	OpeningManual OpeningSource = "initial"
	// OpeningUnset sin dato: se usa 0 y el panel avisa si hace falta capturar
	// la apertura inicial.
	OpeningUnset OpeningSource = "zero"
)

// DayFormat formato ISO de los días de caja.
const DayFormat = "2006-01-02"

// ValidDay reporta si day es una fecha YYYY-MM-DD válida.
func ValidDay(day string) bool {
	_, err := time.Parse(DayFormat, day)
	return err == nil
}

// NextDay el día calendario siguiente en formato ISO. day debe ser válido.
func NextDay(day string) string {
	d, _ := time.Parse(DayFormat, day)
	return d.AddDate(0, 0, 1).Format(DayFormat)
}

// CashDay estado de caja de un día calendario.
type CashDay struct {
	Day           string // YYYY-MM-DD
	OpeningCash   decimal.Decimal
	OpeningManual bool // true si el operador fijó la apertura a mano
	UpdatedAt     time.Time
}

// CashMoveWithdrawal único kind de movimiento de caja soportado.
const CashMoveWithdrawal = "withdrawal"

// CashMove retiro de efectivo de la caja durante el día. Solo se borra, no se edita.
type CashMove struct {
	ID        string
	Day       string // YYYY-MM-DD
	Kind      string
	Amount    decimal.Decimal
	Notes     string
	CreatedAt time.Time
}

// CashClose cierre de caja de un día. Su existencia hace el día terminal:
// no hay reapertura ni segundo cierre.
type CashClose struct {
	ID               string
	Day              string // YYYY-MM-DD
	OpeningCash      decimal.Decimal
	WithdrawalsTotal decimal.Decimal
	GrossTotal       decimal.Decimal
	CashTotal        decimal.Decimal
	CardTotal        decimal.Decimal
	NequiTotal       decimal.Decimal
	VirtualTotal     decimal.Decimal
	ExpectedCashEnd  decimal.Decimal  // apertura + efectivo del día - retiros
	CarryToNextDay   decimal.Decimal  // contado si se capturó, si no el esperado
	CashCounted      *decimal.Decimal // nil si no se contó
	CashDiff         *decimal.Decimal // contado - esperado, nil si no se contó
	Forced           bool             // cierre aceptado con diferencia fuera de tolerancia
	Notes            string
	CreatedAt        time.Time
}
