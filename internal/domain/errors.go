package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrAlreadyClosed  = errors.New("la caja de este día ya fue cerrada")
	ErrDayClosed      = errors.New("el día ya está cerrado")
	ErrOpeningCarried = errors.New("la apertura se arrastra del cierre anterior")
)

// ShortLine una línea del carrito que pide más unidades de las disponibles.
type ShortLine struct {
	Key       string `json:"key"`
	Name      string `json:"producto"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// InsufficientStockError rechazo de negocio: una o más líneas del carrito no
// alcanzan el stock. Lines trae el faltante completo para que el operador
// corrija todo el carrito de una sola vez.
type InsufficientStockError struct {
	Lines []ShortLine
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %d producto(s)", len(e.Lines))
}

// InsufficientPaymentError el efectivo recibido no cubre el total de la venta.
type InsufficientPaymentError struct {
	Total    decimal.Decimal
	Received decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("efectivo insuficiente: recibido %s, total %s",
		e.Received.StringFixed(2), e.Total.StringFixed(2))
}

// NeedsForceError el conteo de caja difiere del esperado más allá de la
// tolerancia. No es un fallo duro: el operador confirma y reintenta con force.
type NeedsForceError struct {
	Expected decimal.Decimal
	Counted  decimal.Decimal
	Diff     decimal.Decimal
}

func (e *NeedsForceError) Error() string {
	return fmt.Sprintf("diferencia en caja: $ %s (contado - esperado)", e.Diff.StringFixed(2))
}
