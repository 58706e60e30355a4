package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo de envases.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListActive devuelve solo productos activos, ordenados por tipo de envase.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	// AdjustStock suma delta (puede ser negativo) al stock global del producto.
	AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error)
	// Deactivate hace la baja lógica (is_active = false).
	Deactivate(ctx context.Context, id string) error
}
