package dto

import "github.com/shopspring/decimal"

// CheckoutLine una línea del carrito: producto y cantidad pedida.
type CheckoutLine struct {
	Key string `json:"key"`
	Qty int    `json:"qty"`
}

// PaymentInfo descriptor de pago. CashReceived solo aplica con method=cash;
// en otros métodos se ignora.
type PaymentInfo struct {
	Method       string           `json:"method"`
	CashReceived *decimal.Decimal `json:"cash_received"`
}

// CheckoutRequest carrito a cobrar. Si una key se repite, sus cantidades se
// suman antes de validar.
type CheckoutRequest struct {
	Lines   []CheckoutLine `json:"lines"`
	Payment *PaymentInfo   `json:"payment"`
}

// CheckoutResponse resultado de una venta confirmada. Units trae las
// existencias post-venta por producto para refrescar la UI sin otra consulta.
type CheckoutResponse struct {
	SaleID        string           `json:"sale_id"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"payment_method"`
	CashReceived  *decimal.Decimal `json:"cash_received"`
	ChangeGiven   *decimal.Decimal `json:"change_given"`
	Units         map[string]int   `json:"units"`
}

// SetStockRequest fijar stock absoluto de un producto.
type SetStockRequest struct {
	Stock int    `json:"stock"`
	Notes string `json:"notes"`
}

// RestockRequest alias deprecado: ajuste relativo. Se traduce al mismo camino
// de ajuste absoluto.
type RestockRequest struct {
	Delta int    `json:"delta"`
	Notes string `json:"notes"`
}

// StockResponse unidades resultantes tras un ajuste.
type StockResponse struct {
	Key   string `json:"key"`
	Units int    `json:"unidades"`
}

// StockAuditDTO fila del historial de mutaciones de un producto.
type StockAuditDTO struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Delta          int    `json:"delta"`
	ResultingUnits int    `json:"resulting_units"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"created_at"`
}

// ProductDTO fila del listado de catálogo.
type ProductDTO struct {
	Key         string          `json:"key"`
	Name        string          `json:"producto"`
	Description string          `json:"descripcion"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"precio_final"`
	Units       int             `json:"unidades"`
}
