package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JAGR1792/Inventarios/internal/domain/entity"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `key, producto, descripcion, category, precio_final, unidades, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.Key, &p.Name, &p.Description, &p.Category, &p.Price, &p.Units, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByKey obtiene un producto por su código.
func (r *ProductRepo) GetByKey(key string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE key = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByKeyForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Es el candado por producto que serializa checkouts concurrentes.
func (r *ProductRepo) GetByKeyForUpdate(key string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE key = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetByKeys obtiene varios productos de una vez (preflight del checkout).
// Las keys inexistentes simplemente no aparecen en el mapa.
func (r *ProductRepo) GetByKeys(keys []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE key = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, keys)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Key, &p.Name, &p.Description, &p.Category, &p.Price, &p.Units, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.Key] = &p
	}
	return out, rows.Err()
}

// UpdateUnits fija las unidades en existencia de un producto.
func (r *ProductRepo) UpdateUnits(key string, units int) error {
	query := `UPDATE products SET unidades = $2, updated_at = now() WHERE key = $1`
	tag, err := r.q.Exec(context.Background(), query, key, units)
	if err != nil {
		return fmt.Errorf("update units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update units: producto %q no existe", key)
	}
	return nil
}

// List productos filtrados por texto libre y/o categoría, ordenados por nombre.
func (r *ProductRepo) List(q, category string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	pos := 1
	if q != "" {
		query += fmt.Sprintf(" AND (producto ILIKE $%d OR descripcion ILIKE $%d)", pos, pos)
		args = append(args, "%"+q+"%")
		pos++
	}
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY producto ASC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Key, &p.Name, &p.Description, &p.Category, &p.Price, &p.Units, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListCategories categorías no vacías, ordenadas.
func (r *ProductRepo) ListCategories() ([]string, error) {
	query := `
		SELECT TRIM(category) FROM products
		WHERE TRIM(category) <> ''
		GROUP BY TRIM(category)
		ORDER BY TRIM(category) ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
