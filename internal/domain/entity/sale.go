package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod método de pago de una venta (enumeración cerrada).
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentNequi   PaymentMethod = "nequi"   // transferencia Nequi
	PaymentVirtual PaymentMethod = "virtual" // otra billetera/transferencia
)

// ParsePaymentMethod valida el método recibido del cliente. Vacío = cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	case PaymentNequi:
		return PaymentNequi, nil
	case PaymentVirtual:
		return PaymentVirtual, nil
	}
	return "", fmt.Errorf("método de pago inválido: %q", s)
}

// Sale venta confirmada. Inmutable una vez persistida.
// CashReceived y ChangeGiven solo aplican a pagos en efectivo.
type Sale struct {
	ID            string
	CreatedAt     time.Time
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CashReceived  *decimal.Decimal
	ChangeGiven   *decimal.Decimal
	Lines         []SaleLine
}

// SaleLine línea de venta. Precio y nombre quedan capturados al momento de la
// venta: el reporte de ingresos no depende del catálogo posterior.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductKey  string
	Name        string
	Description string
	Qty         int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// DayTotals agregado de ventas de un día calendario, por método de pago.
type DayTotals struct {
	Gross      decimal.Decimal
	Cash       decimal.Decimal
	Card       decimal.Decimal
	Nequi      decimal.Decimal
	Virtual    decimal.Decimal
	SalesCount int
}

// ZeroDayTotals totales en cero (día sin ventas no es un error).
func ZeroDayTotals() *DayTotals {
	return &DayTotals{
		Gross:   decimal.Zero,
		Cash:    decimal.Zero,
		Card:    decimal.Zero,
		Nequi:   decimal.Zero,
		Virtual: decimal.Zero,
	}
}

// SaleSummary fila del listado de últimas ventas.
type SaleSummary struct {
	ID            string
	CreatedAt     time.Time
	Total         decimal.Decimal
	Items         int
	PaymentMethod PaymentMethod
}

// DaySales total vendido en un día calendario.
type DaySales struct {
	Day   string // YYYY-MM-DD
	Total decimal.Decimal
}

// TopProduct agregado histórico por producto, ordenado por facturación.
type TopProduct struct {
	ProductKey string
	Name       string
	Qty        int
	Total      decimal.Decimal
}
