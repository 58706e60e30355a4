package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.ReplenishmentLevelRepository = (*ReplenishmentLevelRepo)(nil)

// ReplenishmentLevelRepo implementación del libro de niveles de stock sobre
// PostgreSQL (usable con pool o tx).
type ReplenishmentLevelRepo struct {
	q Querier
}

// NewReplenishmentLevelRepository construye el adaptador de niveles. Pasar pool o tx (Querier).
func NewReplenishmentLevelRepository(q Querier) *ReplenishmentLevelRepo {
	return &ReplenishmentLevelRepo{q: q}
}

// Get obtiene el nivel de un producto en una ubicación.
func (r *ReplenishmentLevelRepo) Get(ctx context.Context, locationID, productID string) (*entity.ReplenishmentLevel, error) {
	var l entity.ReplenishmentLevel
	err := r.q.QueryRow(ctx, `
		SELECT location_id, product_id, current_level, target_level, last_updated
		FROM replenishment_levels WHERE location_id = $1 AND product_id = $2`,
		locationID, productID).Scan(
		&l.LocationID, &l.ProductID, &l.CurrentLevel, &l.TargetLevel, &l.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment level: %w", err)
	}
	return &l, nil
}

// Upsert crea o reemplaza el nivel en una sola sentencia sobre la clave
// (location_id, product_id).
func (r *ReplenishmentLevelRepo) Upsert(ctx context.Context, level *entity.ReplenishmentLevel) error {
	query := `
		INSERT INTO replenishment_levels (location_id, product_id, current_level, target_level, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET current_level = EXCLUDED.current_level,
		              target_level = EXCLUDED.target_level,
		              last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(ctx, query,
		level.LocationID, level.ProductID, level.CurrentLevel, level.TargetLevel, level.LastUpdated,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert replenishment level: %w", err)
	}
	return nil
}

// UpdateCurrentLevel cambia solo el nivel actual de una fila existente.
func (r *ReplenishmentLevelRepo) UpdateCurrentLevel(ctx context.Context, locationID, productID string, currentLevel int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE replenishment_levels SET current_level = $3, last_updated = now()
		WHERE location_id = $1 AND product_id = $2`,
		locationID, productID, currentLevel)
	if err != nil {
		return fmt.Errorf("update current level: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByLocation devuelve los niveles de una ubicación con datos de producto.
func (r *ReplenishmentLevelRepo) ListByLocation(ctx context.Context, locationID string) ([]repository.LevelRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rl.location_id, rl.product_id, rl.current_level, rl.target_level, rl.last_updated,
		       p.container_type, p.description
		FROM replenishment_levels rl
		JOIN products p ON p.product_id = rl.product_id
		WHERE rl.location_id = $1
		ORDER BY p.container_type`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list replenishment levels: %w", err)
	}
	defer rows.Close()

	var out []repository.LevelRow
	for rows.Next() {
		var lr repository.LevelRow
		if err := rows.Scan(&lr.LocationID, &lr.ProductID, &lr.CurrentLevel, &lr.TargetLevel,
			&lr.LastUpdated, &lr.ContainerType, &lr.Description); err != nil {
			return nil, fmt.Errorf("scan replenishment level: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// GetLowStockItems devuelve las filas con current_level < target_level,
// enriquecidas para el reporte. locationID vacío = todas las ubicaciones.
func (r *ReplenishmentLevelRepo) GetLowStockItems(ctx context.Context, locationID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT rl.location_id, rl.product_id, rl.current_level, rl.target_level, rl.last_updated,
		       p.container_type, p.description, ol.location_name, ol.org_id
		FROM replenishment_levels rl
		JOIN products p ON p.product_id = rl.product_id
		JOIN org_locations ol ON ol.location_id = rl.location_id
		WHERE rl.current_level < rl.target_level
		  AND ($1 = '' OR rl.location_id = $1)
		ORDER BY ol.location_name, p.container_type`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.LocationID, &it.ProductID, &it.CurrentLevel, &it.TargetLevel,
			&it.LastUpdated, &it.ContainerType, &it.Description, &it.LocationName, &it.OrgID); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Delete elimina el nivel de un producto en una ubicación.
func (r *ReplenishmentLevelRepo) Delete(ctx context.Context, locationID, productID string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM replenishment_levels WHERE location_id = $1 AND product_id = $2`,
		locationID, productID)
	if err != nil {
		return fmt.Errorf("delete replenishment level: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
