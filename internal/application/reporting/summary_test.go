package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAGR1792/Inventarios/internal/application/reporting"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedSale(t *testing.T, store *memory.Store, day, total string, lines ...entity.SaleLine) {
	t.Helper()
	at, err := time.Parse(entity.DayFormat, day)
	require.NoError(t, err)
	id := uuid.New().String()
	for i := range lines {
		lines[i].SaleID = id
	}
	err = store.Sales().Create(&entity.Sale{
		ID:            id,
		CreatedAt:     at.Add(10 * time.Hour),
		Total:         dec(total),
		PaymentMethod: entity.PaymentCash,
		Lines:         lines,
	})
	require.NoError(t, err)
}

func TestGetSummary(t *testing.T) {
	store := memory.New()
	seedSale(t, store, "2025-03-10", "10500")
	seedSale(t, store, "2025-03-11", "4000")
	uc := reporting.NewSummaryUseCase(store.Sales(), store.Cash())

	out, err := uc.GetSummary(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, dec("14500").Equal(out.TotalSold))
	require.Len(t, out.LatestSale, 2)
	assert.Equal(t, "2025-03-11 10:00", out.LatestSale[0].CreatedAt, "más reciente primero")
}

func TestTotalSoldByDay(t *testing.T) {
	store := memory.New()
	seedSale(t, store, "2025-03-10", "10000")
	seedSale(t, store, "2025-03-10", "2500")
	seedSale(t, store, "2025-03-11", "4000")
	uc := reporting.NewSummaryUseCase(store.Sales(), store.Cash())

	out, err := uc.TotalSoldByDay(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-03-11", out[0].Day)
	assert.True(t, dec("4000").Equal(out[0].Total))
	assert.Equal(t, "2025-03-10", out[1].Day)
	assert.True(t, dec("12500").Equal(out[1].Total))
}

func TestTopProducts(t *testing.T) {
	store := memory.New()
	seedSale(t, store, "2025-03-10", "12000",
		entity.SaleLine{ID: uuid.New().String(), ProductKey: "cafe", Name: "cafe", Qty: 1, UnitPrice: dec("9000"), LineTotal: dec("9000")},
		entity.SaleLine{ID: uuid.New().String(), ProductKey: "pan", Name: "pan", Qty: 3, UnitPrice: dec("1000"), LineTotal: dec("3000")},
	)
	seedSale(t, store, "2025-03-11", "2000",
		entity.SaleLine{ID: uuid.New().String(), ProductKey: "pan", Name: "pan", Qty: 2, UnitPrice: dec("1000"), LineTotal: dec("2000")},
	)
	uc := reporting.NewSummaryUseCase(store.Sales(), store.Cash())

	out, err := uc.TopProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "cafe", out[0].Key, "ordenado por facturación, no por cantidad")
	assert.Equal(t, "pan", out[1].Key)
	assert.Equal(t, 5, out[1].Qty)
	assert.True(t, dec("5000").Equal(out[1].Total))
}

func TestListCashCloses(t *testing.T) {
	store := memory.New()
	for i, day := range []string{"2025-03-10", "2025-03-11"} {
		at, err := time.Parse(entity.DayFormat, day)
		require.NoError(t, err)
		err = store.Cash().CreateClose(&entity.CashClose{
			ID:             uuid.New().String(),
			Day:            day,
			CarryToNextDay: dec("1000").Mul(decimal.NewFromInt(int64(i + 1))),
			CreatedAt:      at.Add(20 * time.Hour),
		})
		require.NoError(t, err)
	}
	uc := reporting.NewSummaryUseCase(store.Sales(), store.Cash())

	out, err := uc.ListCashCloses(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-03-11", out[0].Day, "más reciente primero")
}
