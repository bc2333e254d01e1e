package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// checkoutAttempts un reintento automático ante una carrera entre el
// preflight y el commit; a la segunda se le devuelve el conflicto al operador.
const checkoutAttempts = 2

// CheckoutUseCase convierte un carrito en un descuento de stock consistente
// más una venta inmutable. Primero valida todas las líneas contra la
// existencia actual (preflight) y solo entonces abre la transacción que
// descuenta, audita y persiste la venta. Nunca descuenta parcialmente.
type CheckoutUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledger      *StockLedgerUseCase
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner TxRunner, productRepo repository.ProductRepository, ledger *StockLedgerUseCase) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, productRepo: productRepo, ledger: ledger}
}

// cartLine línea ya deduplicada, con cantidad agregada por key.
type cartLine struct {
	key string
	qty int
}

// Checkout ejecuta la venta completa. Devuelve el id de la venta, total,
// vuelto y las existencias post-venta para refrescar la UI.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	cart := mergeLines(in.Lines)
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: carrito vacío", domain.ErrInvalidInput)
	}

	methodStr := ""
	var cashReceived *decimal.Decimal
	if in.Payment != nil {
		methodStr = in.Payment.Method
		cashReceived = in.Payment.CashReceived
	}
	method, err := entity.ParsePaymentMethod(methodStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	var lastErr error
	for attempt := 0; attempt < checkoutAttempts; attempt++ {
		resp, err := uc.attempt(ctx, cart, method, cashReceived)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		// Carrera detectada en el commit: preflight de nuevo con el stock fresco.
		lastErr = err
	}
	return nil, lastErr
}

// attempt un ciclo preflight + commit.
func (uc *CheckoutUseCase) attempt(
	ctx context.Context,
	cart []cartLine,
	method entity.PaymentMethod,
	cashReceived *decimal.Decimal,
) (*dto.CheckoutResponse, error) {
	// Preflight: resolver productos, precio capturado y existencia de TODAS
	// las líneas antes de mutar nada.
	keys := make([]string, 0, len(cart))
	for _, ln := range cart {
		keys = append(keys, ln.key)
	}
	byKey, err := uc.productRepo.GetByKeys(keys)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, ln := range cart {
		if byKey[ln.key] == nil {
			missing = append(missing, ln.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: productos no encontrados: %v", domain.ErrNotFound, missing)
	}

	var short []domain.ShortLine
	for _, ln := range cart {
		p := byKey[ln.key]
		if p.Units < ln.qty {
			short = append(short, domain.ShortLine{
				Key:       ln.key,
				Name:      p.Name,
				Available: p.Units,
				Requested: ln.qty,
			})
		}
	}
	if len(short) > 0 {
		return nil, &domain.InsufficientStockError{Lines: short}
	}

	now := time.Now()
	saleID := uuid.New().String()
	total := decimal.Zero
	saleLines := make([]entity.SaleLine, 0, len(cart))
	for _, ln := range cart {
		p := byKey[ln.key]
		unit := p.Price.Round(2)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(ln.qty))).Round(2)
		total = total.Add(lineTotal)
		saleLines = append(saleLines, entity.SaleLine{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			ProductKey:  p.Key,
			Name:        p.Name,
			Description: p.Description,
			Qty:         ln.qty,
			UnitPrice:   unit,
			LineTotal:   lineTotal,
		})
	}

	// Validación de pago: en efectivo el monto recibido debe cubrir el total;
	// sin monto se asume pago exacto. En otros métodos no hay vuelto y
	// cualquier efectivo informado se ignora.
	var received, change *decimal.Decimal
	if method == entity.PaymentCash && cashReceived != nil {
		r := cashReceived.Round(2)
		if r.LessThan(total) {
			return nil, &domain.InsufficientPaymentError{Total: total, Received: r}
		}
		c := r.Sub(total).Round(2)
		received, change = &r, &c
	}

	// Commit: descuento por línea + venta, todo o nada. Si la existencia
	// cambió desde el preflight (escritor concurrente), la tx se revierte y
	// se marca el conflicto para reintentar.
	units := make(map[string]int, len(cart))
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		auditRepo repository.StockAuditRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, ln := range cart {
			remaining, err := uc.ledger.DecrementInTx(
				productRepo, auditRepo,
				ln.key, ln.qty,
				"venta "+saleID,
				now,
			)
			if err != nil {
				var insufficient *domain.InsufficientStockError
				if errors.As(err, &insufficient) {
					return fmt.Errorf("%w: stock cambió durante el cobro", domain.ErrConflict)
				}
				return err
			}
			units[ln.key] = remaining
		}
		sale := &entity.Sale{
			ID:            saleID,
			CreatedAt:     now,
			Total:         total,
			PaymentMethod: method,
			CashReceived:  received,
			ChangeGiven:   change,
			Lines:         saleLines,
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		SaleID:        saleID,
		Total:         total,
		PaymentMethod: string(method),
		CashReceived:  received,
		ChangeGiven:   change,
		Units:         units,
	}, nil
}

// mergeLines deduplica por key sumando cantidades y descarta líneas sin
// cantidad positiva.
func mergeLines(lines []dto.CheckoutLine) []cartLine {
	idx := make(map[string]int)
	var out []cartLine
	for _, ln := range lines {
		if ln.Key == "" || ln.Qty <= 0 {
			continue
		}
		if i, ok := idx[ln.Key]; ok {
			out[i].qty += ln.Qty
			continue
		}
		idx[ln.Key] = len(out)
		out = append(out, cartLine{key: ln.Key, qty: ln.Qty})
	}
	return out
}
