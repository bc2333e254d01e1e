package catalog

import (
	"context"
	"strings"

	"github.com/JAGR1792/Inventarios/internal/application/dto"
	"github.com/JAGR1792/Inventarios/internal/domain/repository"
)

// UseCase lectura del catálogo para la UI. La creación y edición de productos
// (importaciones, imágenes, limpieza de duplicados) es un colaborador externo
// y no pasa por aquí.
type UseCase struct {
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository) *UseCase {
	return &UseCase{productRepo: productRepo}
}

// List productos filtrados por texto libre (nombre/descripción) y categoría.
func (uc *UseCase) List(ctx context.Context, q, category string, limit int) ([]dto.ProductDTO, error) {
	if limit <= 0 || limit > 500 {
		limit = 300
	}
	rows, err := uc.productRepo.List(strings.TrimSpace(q), strings.TrimSpace(category), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.ProductDTO{
			Key:         p.Key,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price.Round(2),
			Units:       p.Units,
		})
	}
	return out, nil
}

// Categories categorías no vacías del catálogo, ordenadas.
func (uc *UseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.productRepo.ListCategories()
}
