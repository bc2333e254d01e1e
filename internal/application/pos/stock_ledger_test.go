package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAGR1792/Inventarios/internal/application/pos"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/memory"
)

func newLedger(store *memory.Store) *pos.StockLedgerUseCase {
	return pos.NewStockLedgerUseCase(store, store.Products(), store.Audits())
}

func TestSetStock_FijaYAudita(t *testing.T) {
	store := memory.New()
	seedProduct(store, "chocorramo", 3500, 7)
	ledger := newLedger(store)

	out, err := ledger.SetStock(context.Background(), "chocorramo", 0, "conteo físico")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Units)

	audit, err := ledger.ListAudit(context.Background(), "chocorramo", 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "adjust", audit[0].Kind)
	assert.Equal(t, -7, audit[0].Delta, "delta derivado del valor absoluto")
	assert.Equal(t, 0, audit[0].ResultingUnits)
	assert.Equal(t, "conteo físico", audit[0].Notes)
}

func TestSetStock_NegativoRechazado(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 5)
	ledger := newLedger(store)

	_, err := ledger.SetStock(context.Background(), "pan", -1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStock_ProductoInexistente(t *testing.T) {
	store := memory.New()
	ledger := newLedger(store)

	_, err := ledger.SetStock(context.Background(), "fantasma", 10, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestock_SumaDelta(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 5)
	ledger := newLedger(store)

	out, err := ledger.Restock(context.Background(), "pan", 12, "pedido proveedor")
	require.NoError(t, err)
	assert.Equal(t, 17, out.Units)

	audit, err := ledger.ListAudit(context.Background(), "pan", 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "adjust", audit[0].Kind, "el alias relativo audita como ajuste")
	assert.Equal(t, 12, audit[0].Delta)
}

func TestRestock_DeltaNegativoNoBajaDeCero(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 3)
	ledger := newLedger(store)

	out, err := ledger.Restock(context.Background(), "pan", -10, "merma")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Units, "reducir más de lo existente deja 0")

	audit, err := ledger.ListAudit(context.Background(), "pan", 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, -3, audit[0].Delta, "el delta auditado es el aplicado, no el pedido")
}

func TestRestock_DeltaCeroRechazado(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 3)
	ledger := newLedger(store)

	_, err := ledger.Restock(context.Background(), "pan", 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetUnits(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 5)
	ledger := newLedger(store)

	units, err := ledger.GetUnits(context.Background(), "pan")
	require.NoError(t, err)
	assert.Equal(t, 5, units)

	_, err = ledger.GetUnits(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAudit_KindHistoricoSeNormaliza(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 5)
	// Registro viejo escrito con el kind deprecado.
	store.SeedAudit(entity.StockAudit{
		ID:             "hist-1",
		ProductKey:     "pan",
		Kind:           entity.AuditKind("restock"),
		Delta:          5,
		ResultingUnits: 5,
		CreatedAt:      time.Now().Add(-time.Hour),
	})
	ledger := newLedger(store)

	audit, err := ledger.ListAudit(context.Background(), "pan", 10)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, "adjust", audit[0].Kind, "restock histórico se lee como adjust")
}

func TestListAudit_MasRecientePrimero(t *testing.T) {
	store := memory.New()
	seedProduct(store, "pan", 1000, 0)
	ledger := newLedger(store)

	for _, units := range []int{5, 8, 2} {
		_, err := ledger.SetStock(context.Background(), "pan", units, "")
		require.NoError(t, err)
	}

	audit, err := ledger.ListAudit(context.Background(), "pan", 10)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	assert.Equal(t, 2, audit[0].ResultingUnits)
	assert.Equal(t, 8, audit[1].ResultingUnits)
	assert.Equal(t, 5, audit[2].ResultingUnits)
}
