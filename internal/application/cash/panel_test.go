package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/memory"
)

const (
	day1 = "2025-03-10"
	day2 = "2025-03-11"
)

func newPanel(store *memory.Store) *cash.PanelUseCase {
	return cash.NewPanelUseCase(store, store.Cash(), store.Sales())
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// addSale inserta una venta ya confirmada en un día dado.
func addSale(t *testing.T, store *memory.Store, day string, method entity.PaymentMethod, total string) {
	t.Helper()
	at, err := time.Parse(entity.DayFormat, day)
	require.NoError(t, err)
	err = store.Sales().Create(&entity.Sale{
		ID:            uuid.New().String(),
		CreatedAt:     at.Add(12 * time.Hour),
		Total:         dec(total),
		PaymentMethod: method,
	})
	require.NoError(t, err)
}

// seedClose inserta un cierre directo, para preparar estados "día cerrado".
func seedClose(t *testing.T, store *memory.Store, day, carry string) {
	t.Helper()
	at, err := time.Parse(entity.DayFormat, day)
	require.NoError(t, err)
	err = store.Cash().CreateClose(&entity.CashClose{
		ID:             uuid.New().String(),
		Day:            day,
		CarryToNextDay: dec(carry),
		CreatedAt:      at.Add(20 * time.Hour),
	})
	require.NoError(t, err)
}

func TestGetPanel_SinDatos(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	panel, err := uc.GetPanel(context.Background(), day1)
	require.NoError(t, err)

	assert.True(t, panel.OpeningCash.IsZero())
	assert.Equal(t, "zero", panel.OpeningSource)
	assert.True(t, panel.NeedsInitialOpening, "sin historia debe pedir apertura inicial")
	assert.False(t, panel.IsClosed)
	assert.True(t, panel.ExpectedCashEnd.IsZero())
	assert.Equal(t, 0, panel.SalesCount)
}

func TestGetPanel_DiaInvalido(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	_, err := uc.GetPanel(context.Background(), "10/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPanel_AperturaVentasYRetiros(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	panel, err := uc.SetOpeningCash(context.Background(), day1, dec("50000"))
	require.NoError(t, err)
	assert.Equal(t, "initial", panel.OpeningSource)
	assert.True(t, dec("50000").Equal(panel.OpeningCash))
	assert.False(t, panel.NeedsInitialOpening)

	addSale(t, store, day1, entity.PaymentCash, "20000")
	addSale(t, store, day1, entity.PaymentCash, "12000")
	addSale(t, store, day1, entity.PaymentCard, "15000")
	addSale(t, store, day1, entity.PaymentNequi, "8000")

	panel, err = uc.AddWithdrawal(context.Background(), day1, dec("10000"), "pago domiciliario")
	require.NoError(t, err)

	// esperado = 50000 apertura + 32000 efectivo - 10000 retiros. Tarjeta y
	// nequi no pasan por el cajón.
	assert.True(t, dec("72000").Equal(panel.ExpectedCashEnd), "esperado %s", panel.ExpectedCashEnd)
	assert.True(t, dec("32000").Equal(panel.CashTotal))
	assert.True(t, dec("15000").Equal(panel.CardTotal))
	assert.True(t, dec("8000").Equal(panel.NequiTotal))
	assert.True(t, dec("55000").Equal(panel.GrossTotal))
	assert.True(t, dec("10000").Equal(panel.WithdrawalsTotal))
	assert.Equal(t, 4, panel.SalesCount)
	require.Len(t, panel.Withdrawals, 1)
	assert.Equal(t, "pago domiciliario", panel.Withdrawals[0].Notes)
}

func TestSetOpeningCash_Negativa(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	_, err := uc.SetOpeningCash(context.Background(), day1, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetOpeningCash_ConCierrePrevioSeRechaza(t *testing.T) {
	store := memory.New()
	seedClose(t, store, day1, "72000")
	uc := newPanel(store)

	_, err := uc.SetOpeningCash(context.Background(), day2, dec("50000"))
	assert.ErrorIs(t, err, domain.ErrOpeningCarried, "con historia de cierres la apertura siempre se arrastra")
}

func TestGetPanel_AperturaArrastradaGanaSobreManual(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	_, err := uc.SetOpeningCash(context.Background(), day2, dec("99999"))
	require.NoError(t, err)
	seedClose(t, store, day1, "72000")

	panel, err := uc.GetPanel(context.Background(), day2)
	require.NoError(t, err)
	assert.Equal(t, "prev_close", panel.OpeningSource)
	assert.True(t, dec("72000").Equal(panel.OpeningCash), "el carry del cierre anterior manda")
	assert.False(t, panel.NeedsInitialOpening)
}

func TestAddWithdrawal_MontoInvalido(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	_, err := uc.AddWithdrawal(context.Background(), day1, decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddWithdrawal_DiaCerrado(t *testing.T) {
	store := memory.New()
	seedClose(t, store, day1, "0")
	uc := newPanel(store)

	_, err := uc.AddWithdrawal(context.Background(), day1, dec("5000"), "")
	assert.ErrorIs(t, err, domain.ErrDayClosed)
}

func TestDeleteWithdrawal_Flujo(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	panel, err := uc.AddWithdrawal(context.Background(), day1, dec("5000"), "caja menor")
	require.NoError(t, err)
	require.Len(t, panel.Withdrawals, 1)
	id := panel.Withdrawals[0].ID

	panel, err = uc.DeleteWithdrawal(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, panel.Withdrawals)
	assert.True(t, panel.WithdrawalsTotal.IsZero())

	_, err = uc.DeleteWithdrawal(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteWithdrawal_DiaCerrado(t *testing.T) {
	store := memory.New()
	uc := newPanel(store)

	panel, err := uc.AddWithdrawal(context.Background(), day1, dec("5000"), "")
	require.NoError(t, err)
	id := panel.Withdrawals[0].ID

	seedClose(t, store, day1, "0")

	_, err = uc.DeleteWithdrawal(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrDayClosed)

	mv, err := store.Cash().GetMove(id)
	require.NoError(t, err)
	assert.NotNil(t, mv, "el retiro de un día cerrado queda congelado")
}

func TestGetPanel_DiaCerradoMuestraCierre(t *testing.T) {
	store := memory.New()
	seedClose(t, store, day1, "72000")
	uc := newPanel(store)

	panel, err := uc.GetPanel(context.Background(), day1)
	require.NoError(t, err)
	assert.True(t, panel.IsClosed)
	require.NotNil(t, panel.LastClose)
	assert.True(t, dec("72000").Equal(panel.LastClose.CarryToNextDay))
}
