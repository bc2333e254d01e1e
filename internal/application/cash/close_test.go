package cash_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/memory"
)

func newClose(store *memory.Store, tolerance string) *cash.CloseUseCase {
	return cash.NewCloseUseCase(store, dec(tolerance))
}

// seedDay prepara el escenario clásico: apertura manual 50000, ventas en
// efectivo por 32000, tarjeta 15000 y un retiro de 10000. Esperado: 72000.
func seedDay(t *testing.T, store *memory.Store, day string) {
	t.Helper()
	panelUC := newPanel(store)
	_, err := panelUC.SetOpeningCash(context.Background(), day, dec("50000"))
	require.NoError(t, err)
	addSale(t, store, day, "cash", "20000")
	addSale(t, store, day, "cash", "12000")
	addSale(t, store, day, "card", "15000")
	_, err = panelUC.AddWithdrawal(context.Background(), day, dec("10000"), "")
	require.NoError(t, err)
}

func TestClose_SinConteo(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "0")

	out, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1})
	require.NoError(t, err)

	assert.True(t, dec("72000").Equal(out.ExpectedCashEnd))
	assert.True(t, dec("72000").Equal(out.CarryToNextDay), "sin conteo el carry es el esperado")
	assert.Nil(t, out.CashDiff)
	assert.False(t, out.Forced)
	assert.Empty(t, out.Message)

	row, err := store.Cash().GetClose(day1)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, dec("32000").Equal(row.CashTotal))
	assert.True(t, dec("15000").Equal(row.CardTotal))
	assert.True(t, dec("47000").Equal(row.GrossTotal))
	assert.True(t, dec("10000").Equal(row.WithdrawalsTotal))
}

func TestClose_ConteoQueCuadra(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "0")

	counted := dec("72000")
	out, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted})
	require.NoError(t, err)

	require.NotNil(t, out.CashDiff)
	assert.True(t, out.CashDiff.IsZero())
	assert.True(t, dec("72000").Equal(out.CarryToNextDay))
	assert.NotEmpty(t, out.Message, "cuadre exacto trae mensaje de celebración")
}

func TestClose_DiferenciaRequiereForce(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "500")

	counted := dec("70000")
	_, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted})

	var needs *domain.NeedsForceError
	require.ErrorAs(t, err, &needs)
	assert.True(t, dec("72000").Equal(needs.Expected))
	assert.True(t, dec("70000").Equal(needs.Counted))
	assert.True(t, dec("-2000").Equal(needs.Diff))

	row, err := store.Cash().GetClose(day1)
	require.NoError(t, err)
	assert.Nil(t, row, "el rechazo no debe dejar cierre persistido")

	// El operador confirma y reintenta con force.
	out, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted, Force: true})
	require.NoError(t, err)
	assert.True(t, out.Forced)
	assert.True(t, dec("70000").Equal(out.CarryToNextDay), "el carry forzado es el contado")
	assert.Empty(t, out.Message, "con diferencia no hay celebración")
}

func TestClose_DiferenciaDentroDeTolerancia(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "500")

	counted := dec("71800")
	out, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted})
	require.NoError(t, err)
	require.NotNil(t, out.CashDiff)
	assert.True(t, dec("-200").Equal(*out.CashDiff))
	assert.False(t, out.Forced)
	assert.True(t, dec("71800").Equal(out.CarryToNextDay))
}

func TestClose_DosVecesSeRechaza(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "0")

	_, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1})
	require.NoError(t, err)

	_, err = uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestClose_ArrastreAlDiaSiguiente(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	closeUC := newClose(store, "0")
	panelUC := newPanel(store)

	_, err := closeUC.Close(context.Background(), dto.CloseCashDayRequest{Day: day1})
	require.NoError(t, err)

	panel, err := panelUC.GetPanel(context.Background(), day2)
	require.NoError(t, err)
	assert.Equal(t, "prev_close", panel.OpeningSource)
	assert.True(t, dec("72000").Equal(panel.OpeningCash), "la apertura del día siguiente es el carry")
	assert.False(t, panel.NeedsInitialOpening)

	// El día siguiente vuelve a cerrar con su propia actividad.
	addSale(t, store, day2, "cash", "5000")
	out, err := closeUC.Close(context.Background(), dto.CloseCashDayRequest{Day: day2})
	require.NoError(t, err)
	assert.True(t, dec("77000").Equal(out.ExpectedCashEnd))
}

func TestClose_ConteoNegativo(t *testing.T) {
	store := memory.New()
	uc := newClose(store, "0")

	counted := dec("-1")
	_, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClose_DiaInvalido(t *testing.T) {
	store := memory.New()
	uc := newClose(store, "0")

	_, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClose_ToleranciaNegativaSeTrataComoCero(t *testing.T) {
	store := memory.New()
	seedDay(t, store, day1)
	uc := newClose(store, "-100")

	counted := dec("72001")
	_, err := uc.Close(context.Background(), dto.CloseCashDayRequest{Day: day1, CashCounted: &counted})
	var needs *domain.NeedsForceError
	assert.ErrorAs(t, err, &needs)
}
