// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan los tests de los casos de uso: el TxRunner serializa con
// un mutex y revierte con snapshot, imitando la atomicidad del store real.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/JAGR1792/Inventarios/internal/application/cash"
	"github.com/JAGR1792/Inventarios/internal/application/pos"
	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

var _ pos.TxRunner = (*Store)(nil)
var _ cash.TxRunner = (*Store)(nil)

// Store estado compartido. Los mapas guardan valores (no punteros) para que
// el snapshot de la transacción sea una copia barata y completa.
type Store struct {
	mu       sync.Mutex
	products map[string]entity.Product
	audits   []entity.StockAudit
	sales    map[string]entity.Sale
	days     map[string]entity.CashDay
	moves    map[string]entity.CashMove
	closes   []entity.CashClose
}

// New construye un store vacío.
func New() *Store {
	return &Store{
		products: map[string]entity.Product{},
		sales:    map[string]entity.Sale{},
		days:     map[string]entity.CashDay{},
		moves:    map[string]entity.CashMove{},
	}
}

// SeedProduct agrega o reemplaza un producto.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.Key] = p
}

// SeedAudit agrega una fila de auditoría tal cual (datos históricos en tests).
func (s *Store) SeedAudit(a entity.StockAudit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, a)
}

type snapshot struct {
	products map[string]entity.Product
	audits   []entity.StockAudit
	sales    map[string]entity.Sale
	days     map[string]entity.CashDay
	moves    map[string]entity.CashMove
	closes   []entity.CashClose
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		audits:   append([]entity.StockAudit(nil), s.audits...),
		sales:    make(map[string]entity.Sale, len(s.sales)),
		days:     make(map[string]entity.CashDay, len(s.days)),
		moves:    make(map[string]entity.CashMove, len(s.moves)),
		closes:   append([]entity.CashClose(nil), s.closes...),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	for k, v := range s.days {
		snap.days[k] = v
	}
	for k, v := range s.moves {
		snap.moves[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.audits = snap.audits
	s.sales = snap.sales
	s.days = snap.days
	s.moves = snap.moves
	s.closes = snap.closes
}

// Run ejecuta fn como una transacción serializable del motor de ventas:
// lock global, snapshot previo y restore si fn falla.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	auditRepo repository.StockAuditRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	v := &view{s: s}
	if err := fn(v, auditView{v}, saleView{v}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunCash igual que Run, con los repos de caja y ventas.
func (s *Store) RunCash(ctx context.Context, fn func(
	cashRepo repository.CashRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	v := &view{s: s}
	if err := fn(v, saleView{v}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Products repo de productos para lecturas fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &lockedView{s: s} }

// Audits repo de auditoría para lecturas fuera de transacción.
func (s *Store) Audits() repository.StockAuditRepository { return lockedAudit{&lockedView{s: s}} }

// Sales repo de ventas para lecturas fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return lockedSale{&lockedView{s: s}} }

// Cash repo de caja para lecturas fuera de transacción.
func (s *Store) Cash() repository.CashRepository { return &lockedView{s: s} }

// view implementa todos los puertos directamente sobre los mapas, sin lock:
// se usa dentro de Run/RunCash, que ya sostienen el mutex.
type view struct {
	s *Store
}

func (v *view) GetByKey(key string) (*entity.Product, error) {
	if p, ok := v.s.products[key]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

// GetByKeyForUpdate en memoria es un get normal: el mutex del TxRunner ya
// serializa a los escritores.
func (v *view) GetByKeyForUpdate(key string) (*entity.Product, error) {
	return v.GetByKey(key)
}

func (v *view) GetByKeys(keys []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(keys))
	for _, k := range keys {
		if p, ok := v.s.products[k]; ok {
			cp := p
			out[k] = &cp
		}
	}
	return out, nil
}

func (v *view) UpdateUnits(key string, units int) error {
	p, ok := v.s.products[key]
	if !ok {
		return nil
	}
	p.Units = units
	v.s.products[key] = p
	return nil
}

func (v *view) List(q, category string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range v.s.products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), strings.ToLower(q)) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) ListCategories() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range v.s.products {
		c := strings.TrimSpace(p.Category)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

// auditView y saleView agregan el Create de su puerto; ambos puertos llaman
// al método Create y un solo tipo no puede satisfacer los dos.
type auditView struct{ *view }

func (a auditView) Create(row *entity.StockAudit) error {
	a.s.audits = append(a.s.audits, *row)
	return nil
}

type saleView struct{ *view }

func (sv saleView) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	sv.s.sales[sale.ID] = cp
	return nil
}

func (v *view) ListByProduct(key string, limit int) ([]*entity.StockAudit, error) {
	var out []*entity.StockAudit
	for i := len(v.s.audits) - 1; i >= 0 && len(out) < limit; i-- {
		if v.s.audits[i].ProductKey == key {
			cp := v.s.audits[i]
			k, err := entity.ParseAuditKind(string(cp.Kind))
			if err != nil {
				return nil, err
			}
			cp.Kind = k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (v *view) TotalsForDay(day string) (*entity.DayTotals, error) {
	totals := entity.ZeroDayTotals()
	for _, sale := range v.s.sales {
		if sale.CreatedAt.Format(entity.DayFormat) != day {
			continue
		}
		switch sale.PaymentMethod {
		case entity.PaymentCash:
			totals.Cash = totals.Cash.Add(sale.Total)
		case entity.PaymentCard:
			totals.Card = totals.Card.Add(sale.Total)
		case entity.PaymentNequi:
			totals.Nequi = totals.Nequi.Add(sale.Total)
		case entity.PaymentVirtual:
			totals.Virtual = totals.Virtual.Add(sale.Total)
		}
		totals.Gross = totals.Gross.Add(sale.Total)
		totals.SalesCount++
	}
	return totals, nil
}

func (v *view) ListSummaries(limit int) ([]*entity.SaleSummary, error) {
	var out []*entity.SaleSummary
	for _, sale := range v.s.sales {
		out = append(out, &entity.SaleSummary{
			ID:            sale.ID,
			CreatedAt:     sale.CreatedAt,
			Total:         sale.Total,
			Items:         len(sale.Lines),
			PaymentMethod: sale.PaymentMethod,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) TotalSold() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sale := range v.s.sales {
		total = total.Add(sale.Total)
	}
	return total, nil
}

func (v *view) TotalSoldByDay(limitDays int) ([]entity.DaySales, error) {
	byDay := map[string]decimal.Decimal{}
	for _, sale := range v.s.sales {
		day := sale.CreatedAt.Format(entity.DayFormat)
		byDay[day] = byDay[day].Add(sale.Total)
	}
	var out []entity.DaySales
	for day, total := range byDay {
		out = append(out, entity.DaySales{Day: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	if len(out) > limitDays {
		out = out[:limitDays]
	}
	return out, nil
}

func (v *view) TopProducts(limit int) ([]entity.TopProduct, error) {
	agg := map[string]*entity.TopProduct{}
	for _, sale := range v.s.sales {
		for _, ln := range sale.Lines {
			t, ok := agg[ln.ProductKey]
			if !ok {
				t = &entity.TopProduct{ProductKey: ln.ProductKey, Name: ln.Name}
				agg[ln.ProductKey] = t
			}
			t.Qty += ln.Qty
			t.Total = t.Total.Add(ln.LineTotal)
		}
	}
	var out []entity.TopProduct
	for _, t := range agg {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) GetDay(day string) (*entity.CashDay, error) {
	if d, ok := v.s.days[day]; ok {
		cp := d
		return &cp, nil
	}
	return nil, nil
}

func (v *view) UpsertDay(d *entity.CashDay) error {
	v.s.days[d.Day] = *d
	return nil
}

func (v *view) GetPrevClose(day string) (*entity.CashClose, error) {
	var best *entity.CashClose
	for i := range v.s.closes {
		c := v.s.closes[i]
		if c.Day >= day {
			continue
		}
		if best == nil || c.Day > best.Day || (c.Day == best.Day && c.CreatedAt.After(best.CreatedAt)) {
			cp := c
			best = &cp
		}
	}
	return best, nil
}

func (v *view) GetClose(day string) (*entity.CashClose, error) {
	var best *entity.CashClose
	for i := range v.s.closes {
		c := v.s.closes[i]
		if c.Day != day {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			cp := c
			best = &cp
		}
	}
	return best, nil
}

func (v *view) AnyClose() (bool, error) {
	return len(v.s.closes) > 0, nil
}

func (v *view) CreateClose(c *entity.CashClose) error {
	v.s.closes = append(v.s.closes, *c)
	return nil
}

func (v *view) ListCloses(limit int) ([]*entity.CashClose, error) {
	out := make([]*entity.CashClose, 0, len(v.s.closes))
	for i := range v.s.closes {
		cp := v.s.closes[i]
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) CreateMove(m *entity.CashMove) error {
	v.s.moves[m.ID] = *m
	return nil
}

func (v *view) GetMove(id string) (*entity.CashMove, error) {
	if m, ok := v.s.moves[id]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (v *view) DeleteMove(id string) error {
	delete(v.s.moves, id)
	return nil
}

func (v *view) ListWithdrawals(day string, limit int) ([]*entity.CashMove, error) {
	var out []*entity.CashMove
	for id := range v.s.moves {
		m := v.s.moves[id]
		if m.Day != day || m.Kind != entity.CashMoveWithdrawal {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) WithdrawalsTotal(day string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range v.s.moves {
		if m.Day == day && m.Kind == entity.CashMoveWithdrawal {
			total = total.Add(m.Amount)
		}
	}
	return total, nil
}

// lockedView envuelve view tomando el mutex por llamada, para lecturas fuera
// de transacción (preflight del checkout, panel, listados).
type lockedView struct {
	s *Store
}

func (l *lockedView) run(fn func(v *view)) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	fn(&view{s: l.s})
}

func (l *lockedView) GetByKey(key string) (p *entity.Product, err error) {
	l.run(func(v *view) { p, err = v.GetByKey(key) })
	return
}

func (l *lockedView) GetByKeyForUpdate(key string) (p *entity.Product, err error) {
	l.run(func(v *view) { p, err = v.GetByKeyForUpdate(key) })
	return
}

func (l *lockedView) GetByKeys(keys []string) (m map[string]*entity.Product, err error) {
	l.run(func(v *view) { m, err = v.GetByKeys(keys) })
	return
}

func (l *lockedView) UpdateUnits(key string, units int) (err error) {
	l.run(func(v *view) { err = v.UpdateUnits(key, units) })
	return
}

func (l *lockedView) List(q, category string, limit int) (out []*entity.Product, err error) {
	l.run(func(v *view) { out, err = v.List(q, category, limit) })
	return
}

func (l *lockedView) ListCategories() (out []string, err error) {
	l.run(func(v *view) { out, err = v.ListCategories() })
	return
}

func (l *lockedView) ListByProduct(key string, limit int) (out []*entity.StockAudit, err error) {
	l.run(func(v *view) { out, err = v.ListByProduct(key, limit) })
	return
}

func (l *lockedView) TotalsForDay(day string) (t *entity.DayTotals, err error) {
	l.run(func(v *view) { t, err = v.TotalsForDay(day) })
	return
}

func (l *lockedView) ListSummaries(limit int) (out []*entity.SaleSummary, err error) {
	l.run(func(v *view) { out, err = v.ListSummaries(limit) })
	return
}

func (l *lockedView) TotalSold() (t decimal.Decimal, err error) {
	l.run(func(v *view) { t, err = v.TotalSold() })
	return
}

func (l *lockedView) TotalSoldByDay(limitDays int) (out []entity.DaySales, err error) {
	l.run(func(v *view) { out, err = v.TotalSoldByDay(limitDays) })
	return
}

func (l *lockedView) TopProducts(limit int) (out []entity.TopProduct, err error) {
	l.run(func(v *view) { out, err = v.TopProducts(limit) })
	return
}

func (l *lockedView) GetDay(day string) (d *entity.CashDay, err error) {
	l.run(func(v *view) { d, err = v.GetDay(day) })
	return
}

func (l *lockedView) UpsertDay(d *entity.CashDay) (err error) {
	l.run(func(v *view) { err = v.UpsertDay(d) })
	return
}

func (l *lockedView) GetPrevClose(day string) (c *entity.CashClose, err error) {
	l.run(func(v *view) { c, err = v.GetPrevClose(day) })
	return
}

func (l *lockedView) GetClose(day string) (c *entity.CashClose, err error) {
	l.run(func(v *view) { c, err = v.GetClose(day) })
	return
}

func (l *lockedView) AnyClose() (ok bool, err error) {
	l.run(func(v *view) { ok, err = v.AnyClose() })
	return
}

func (l *lockedView) CreateClose(c *entity.CashClose) (err error) {
	l.run(func(v *view) { err = v.CreateClose(c) })
	return
}

func (l *lockedView) ListCloses(limit int) (out []*entity.CashClose, err error) {
	l.run(func(v *view) { out, err = v.ListCloses(limit) })
	return
}

func (l *lockedView) CreateMove(m *entity.CashMove) (err error) {
	l.run(func(v *view) { err = v.CreateMove(m) })
	return
}

func (l *lockedView) GetMove(id string) (m *entity.CashMove, err error) {
	l.run(func(v *view) { m, err = v.GetMove(id) })
	return
}

func (l *lockedView) DeleteMove(id string) (err error) {
	l.run(func(v *view) { err = v.DeleteMove(id) })
	return
}

func (l *lockedView) ListWithdrawals(day string, limit int) (out []*entity.CashMove, err error) {
	l.run(func(v *view) { out, err = v.ListWithdrawals(day, limit) })
	return
}

func (l *lockedView) WithdrawalsTotal(day string) (t decimal.Decimal, err error) {
	l.run(func(v *view) { t, err = v.WithdrawalsTotal(day) })
	return
}

type lockedAudit struct{ *lockedView }

func (l lockedAudit) Create(row *entity.StockAudit) (err error) {
	l.run(func(v *view) { err = auditView{v}.Create(row) })
	return
}

type lockedSale struct{ *lockedView }

func (l lockedSale) Create(sale *entity.Sale) (err error) {
	l.run(func(v *view) { err = saleView{v}.Create(sale) })
	return
}
