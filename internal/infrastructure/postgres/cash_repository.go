package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo implementación de CashRepository sobre PostgreSQL (usable con pool o tx).
type CashRepo struct {
	q Querier
}

// NewCashRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

// GetDay obtiene la fila de un día de caja.
func (r *CashRepo) GetDay(day string) (*entity.CashDay, error) {
	query := `SELECT day, opening_cash, opening_manual, updated_at FROM cash_days WHERE day = $1`
	var d entity.CashDay
	err := r.q.QueryRow(context.Background(), query, day).Scan(&d.Day, &d.OpeningCash, &d.OpeningManual, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash day: %w", err)
	}
	return &d, nil
}

// UpsertDay inserta o actualiza la apertura de un día.
func (r *CashRepo) UpsertDay(d *entity.CashDay) error {
	query := `
		INSERT INTO cash_days (day, opening_cash, opening_manual, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (day)
		DO UPDATE SET opening_cash = EXCLUDED.opening_cash, opening_manual = EXCLUDED.opening_manual, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, d.Day, d.OpeningCash, d.OpeningManual)
	if err != nil {
		return fmt.Errorf("upsert cash day: %w", err)
	}
	return nil
}

const closeColumns = `id, day, opening_cash, withdrawals_total, gross_total, cash_total, card_total,
		nequi_total, virtual_total, expected_cash_end, carry_to_next_day, cash_counted, cash_diff,
		forced, notes, created_at`

func scanClose(row pgx.Row) (*entity.CashClose, error) {
	var c entity.CashClose
	err := row.Scan(
		&c.ID, &c.Day, &c.OpeningCash, &c.WithdrawalsTotal, &c.GrossTotal, &c.CashTotal, &c.CardTotal,
		&c.NequiTotal, &c.VirtualTotal, &c.ExpectedCashEnd, &c.CarryToNextDay, &c.CashCounted, &c.CashDiff,
		&c.Forced, &c.Notes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetPrevClose el cierre más reciente anterior al día dado.
func (r *CashRepo) GetPrevClose(day string) (*entity.CashClose, error) {
	query := `SELECT ` + closeColumns + ` FROM cash_closes WHERE day < $1 ORDER BY day DESC, created_at DESC LIMIT 1`
	c, err := scanClose(r.q.QueryRow(context.Background(), query, day))
	if err != nil {
		return nil, fmt.Errorf("get prev close: %w", err)
	}
	return c, nil
}

// GetClose el cierre de un día.
func (r *CashRepo) GetClose(day string) (*entity.CashClose, error) {
	query := `SELECT ` + closeColumns + ` FROM cash_closes WHERE day = $1 ORDER BY created_at DESC LIMIT 1`
	c, err := scanClose(r.q.QueryRow(context.Background(), query, day))
	if err != nil {
		return nil, fmt.Errorf("get close: %w", err)
	}
	return c, nil
}

// AnyClose reporta si existe algún cierre.
func (r *CashRepo) AnyClose() (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM cash_closes)`
	if err := r.q.QueryRow(context.Background(), query).Scan(&exists); err != nil {
		return false, fmt.Errorf("any close: %w", err)
	}
	return exists, nil
}

// CreateClose persiste un cierre de caja.
func (r *CashRepo) CreateClose(c *entity.CashClose) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_closes (` + closeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Day, c.OpeningCash, c.WithdrawalsTotal, c.GrossTotal, c.CashTotal, c.CardTotal,
		c.NequiTotal, c.VirtualTotal, c.ExpectedCashEnd, c.CarryToNextDay, c.CashCounted, c.CashDiff,
		c.Forced, c.Notes, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create close: %w", err)
	}
	return nil
}

// ListCloses historial de cierres, más reciente primero.
func (r *CashRepo) ListCloses(limit int) ([]*entity.CashClose, error) {
	query := `SELECT ` + closeColumns + ` FROM cash_closes ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list closes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashClose
	for rows.Next() {
		var c entity.CashClose
		if err := rows.Scan(
			&c.ID, &c.Day, &c.OpeningCash, &c.WithdrawalsTotal, &c.GrossTotal, &c.CashTotal, &c.CardTotal,
			&c.NequiTotal, &c.VirtualTotal, &c.ExpectedCashEnd, &c.CarryToNextDay, &c.CashCounted, &c.CashDiff,
			&c.Forced, &c.Notes, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan close: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateMove persiste un retiro de caja.
func (r *CashRepo) CreateMove(m *entity.CashMove) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_moves (id, day, kind, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Day, m.Kind, m.Amount, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create cash move: %w", err)
	}
	return nil
}

// GetMove obtiene un movimiento por id.
func (r *CashRepo) GetMove(id string) (*entity.CashMove, error) {
	query := `SELECT id, day, kind, amount, notes, created_at FROM cash_moves WHERE id = $1`
	var m entity.CashMove
	err := r.q.QueryRow(context.Background(), query, id).Scan(&m.ID, &m.Day, &m.Kind, &m.Amount, &m.Notes, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash move: %w", err)
	}
	return &m, nil
}

// DeleteMove borra un movimiento.
func (r *CashRepo) DeleteMove(id string) error {
	query := `DELETE FROM cash_moves WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete cash move: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete cash move: %q no existe", id)
	}
	return nil
}

// ListWithdrawals retiros de un día, más reciente primero.
func (r *CashRepo) ListWithdrawals(day string, limit int) ([]*entity.CashMove, error) {
	query := `
		SELECT id, day, kind, amount, notes, created_at FROM cash_moves
		WHERE day = $1 AND kind = $2
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, day, entity.CashMoveWithdrawal, limit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMove
	for rows.Next() {
		var m entity.CashMove
		if err := rows.Scan(&m.ID, &m.Day, &m.Kind, &m.Amount, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash move: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// WithdrawalsTotal suma de retiros del día (sobre todos, no solo los listados).
func (r *CashRepo) WithdrawalsTotal(day string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM cash_moves WHERE day = $1 AND kind = $2`
	if err := r.q.QueryRow(context.Background(), query, day, entity.CashMoveWithdrawal).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("withdrawals total: %w", err)
	}
	return total, nil
}
