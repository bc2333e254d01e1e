package repository

import (
	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
)

// CashRepository define el puerto de persistencia para días de caja, retiros
// y cierres. Los Get* devuelven (nil, nil) cuando no hay fila.
type CashRepository interface {
	GetDay(day string) (*entity.CashDay, error)
	UpsertDay(d *entity.CashDay) error

	// GetPrevClose el cierre más reciente con día estrictamente anterior a day.
	GetPrevClose(day string) (*entity.CashClose, error)
	// GetClose el cierre de un día (el más reciente si hubiera más de uno por
	// datos históricos).
	GetClose(day string) (*entity.CashClose, error)
	// AnyClose reporta si existe algún cierre en la historia.
	AnyClose() (bool, error)
	CreateClose(c *entity.CashClose) error
	ListCloses(limit int) ([]*entity.CashClose, error)

	CreateMove(m *entity.CashMove) error
	GetMove(id string) (*entity.CashMove, error)
	DeleteMove(id string) error
	ListWithdrawals(day string, limit int) ([]*entity.CashMove, error)
	WithdrawalsTotal(day string) (decimal.Decimal, error)
}
