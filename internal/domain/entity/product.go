package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo local. El stock (Units) solo lo
// muta el motor de inventario; la creación/edición del catálogo es externa.
type Product struct {
	Key         string // código único del producto
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio final de venta
	Units       int             // unidades en existencia, nunca negativo
	UpdatedAt   time.Time
}
