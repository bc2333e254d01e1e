package repository

import "github.com/JAGR1792/Inventarios/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	GetByKey(key string) (*entity.Product, error)
	// GetByKeyForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByKeyForUpdate(key string) (*entity.Product, error)
	GetByKeys(keys []string) (map[string]*entity.Product, error)
	// UpdateUnits fija las unidades en existencia. El caller es responsable de
	// escribir el registro de auditoría en la misma transacción.
	UpdateUnits(key string, units int) error
	List(q, category string, limit int) ([]*entity.Product, error)
	ListCategories() ([]string, error)
}
