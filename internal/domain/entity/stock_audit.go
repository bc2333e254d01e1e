package entity

import (
	"fmt"
	"time"
)

// AuditKind causa de una mutación de stock.
type AuditKind string

const (
	// AuditKindSale descuento por venta (checkout).
	AuditKindSale AuditKind = "sale"
	// AuditKindAdjust ajuste manual (fijar stock absoluto o reposición).
	AuditKindAdjust AuditKind = "adjust"

	// auditKindRestock valor histórico de la taxonomía vieja; hoy se lee
	// como adjust. No se escribe nunca.
	auditKindRestock = "restock"
)

// ParseAuditKind normaliza el valor persistido. Datos históricos pueden traer
// "restock", que colapsa en adjust.
func ParseAuditKind(s string) (AuditKind, error) {
	switch s {
	case string(AuditKindSale):
		return AuditKindSale, nil
	case string(AuditKindAdjust), auditKindRestock:
		return AuditKindAdjust, nil
	}
	return "", fmt.Errorf("kind de auditoría desconocido: %q", s)
}

// StockAudit registro inmutable de una mutación de stock. Se escribe exactamente
// uno por cada cambio de unidades, en la misma transacción que el cambio:
// la suma de los Delta de un producto reproduce su stock actual.
type StockAudit struct {
	ID             string
	ProductKey     string
	Kind           AuditKind
	Delta          int // con signo: negativo en ventas
	ResultingUnits int // unidades después de aplicar el delta
	Notes          string
	CreatedAt      time.Time
}
