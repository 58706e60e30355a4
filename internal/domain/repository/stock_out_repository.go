package repository

import (
	"context"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// ThresholdCounter es un contador que alcanzó el umbral de escalamiento,
// enriquecido para el reporte.
type ThresholdCounter struct {
	LocationID       string
	ProductID        string
	ConsecutiveWeeks int
	LastUpdated      time.Time
	ContainerType    string
	Description      string
	LocationName     string
	OrgID            string
}

// StockOutCounterRepository define el puerto del contador de semanas
// consecutivas en quiebre por (ubicación, producto).
type StockOutCounterRepository interface {
	// Get devuelve el contador o nil si no existe.
	Get(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error)
	// Increment crea el contador en 1 o suma 1 al existente (upsert).
	Increment(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error)
	// Reset deja el contador en 0, creándolo si no existe (upsert).
	Reset(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error)
	// ListAtOrAboveThreshold devuelve los contadores con
	// consecutive_weeks >= threshold para escalamiento.
	ListAtOrAboveThreshold(ctx context.Context, threshold int) ([]ThresholdCounter, error)
}

// StockOutEventRow es un evento de quiebre con datos de producto.
type StockOutEventRow struct {
	entity.StockOutHistory
	ContainerType string
	Description   string
}

// StockOutHistoryRepository define el puerto del historial append-only de quiebres.
type StockOutHistoryRepository interface {
	// Record inserta un evento de quiebre; nunca actualiza ni borra.
	Record(ctx context.Context, locationID, productID string) (*entity.StockOutHistory, error)
	// ListByLocation devuelve los eventos de una ubicación, más recientes
	// primero. from/to acotan el rango y pueden ser nil.
	ListByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]StockOutEventRow, error)
	// ListByProduct igual que ListByLocation pero para un producto puntual.
	ListByProduct(ctx context.Context, locationID, productID string, from, to *time.Time) ([]entity.StockOutHistory, error)
}
