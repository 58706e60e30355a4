package repository

import (
	"context"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// LevelRow es un nivel de reposición enriquecido con los campos descriptivos
// del producto para presentación.
type LevelRow struct {
	entity.ReplenishmentLevel
	ContainerType string
	Description   string
}

// LowStockItem es una fila del reporte de stock bajo: nivel actual bajo el
// objetivo, con nombres de producto y ubicación para el listado.
type LowStockItem struct {
	LocationID    string
	ProductID     string
	CurrentLevel  int
	TargetLevel   int
	LastUpdated   time.Time
	ContainerType string
	Description   string
	LocationName  string
	OrgID         string
}

// ReplenishmentLevelRepository define el puerto del libro de niveles de stock
// por (ubicación, producto).
type ReplenishmentLevelRepository interface {
	// Get devuelve el nivel o nil si no existe.
	Get(ctx context.Context, locationID, productID string) (*entity.ReplenishmentLevel, error)
	// Upsert crea o reemplaza el nivel en una sola sentencia
	// (ON CONFLICT sobre la clave (location_id, product_id)).
	Upsert(ctx context.Context, level *entity.ReplenishmentLevel) error
	// UpdateCurrentLevel cambia solo el nivel actual; domain.ErrNotFound si
	// no existe la fila.
	UpdateCurrentLevel(ctx context.Context, locationID, productID string, currentLevel int) error
	// ListByLocation devuelve todos los niveles de una ubicación con datos de producto.
	ListByLocation(ctx context.Context, locationID string) ([]LevelRow, error)
	// GetLowStockItems devuelve las filas con current_level < target_level.
	// locationID vacío = todas las ubicaciones.
	GetLowStockItems(ctx context.Context, locationID string) ([]LowStockItem, error)
	// Delete elimina un nivel; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, locationID, productID string) error
}
