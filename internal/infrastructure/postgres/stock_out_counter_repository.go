package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.StockOutCounterRepository = (*StockOutCounterRepo)(nil)

// StockOutCounterRepo implementación del contador de quiebres sobre PostgreSQL.
type StockOutCounterRepo struct {
	q Querier
}

// NewStockOutCounterRepository construye el adaptador de contadores.
func NewStockOutCounterRepository(q Querier) *StockOutCounterRepo {
	return &StockOutCounterRepo{q: q}
}

// Get obtiene el contador de un producto en una ubicación.
func (r *StockOutCounterRepo) Get(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	var c entity.StockOutCounter
	err := r.q.QueryRow(ctx, `
		SELECT location_id, product_id, consecutive_weeks, last_updated
		FROM stock_out_counter WHERE location_id = $1 AND product_id = $2`,
		locationID, productID).Scan(
		&c.LocationID, &c.ProductID, &c.ConsecutiveWeeks, &c.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock out counter: %w", err)
	}
	return &c, nil
}

// Increment crea el contador en 1 o suma 1 al existente, en una sola sentencia.
func (r *StockOutCounterRepo) Increment(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	return r.upsert(ctx, locationID, productID, `
		INSERT INTO stock_out_counter (location_id, product_id, consecutive_weeks, last_updated)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET consecutive_weeks = stock_out_counter.consecutive_weeks + 1, last_updated = now()
		RETURNING location_id, product_id, consecutive_weeks, last_updated`)
}

// Reset deja el contador en 0, creándolo si no existe.
func (r *StockOutCounterRepo) Reset(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	return r.upsert(ctx, locationID, productID, `
		INSERT INTO stock_out_counter (location_id, product_id, consecutive_weeks, last_updated)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET consecutive_weeks = 0, last_updated = now()
		RETURNING location_id, product_id, consecutive_weeks, last_updated`)
}

func (r *StockOutCounterRepo) upsert(ctx context.Context, locationID, productID, query string) (*entity.StockOutCounter, error) {
	var c entity.StockOutCounter
	err := r.q.QueryRow(ctx, query, locationID, productID).Scan(
		&c.LocationID, &c.ProductID, &c.ConsecutiveWeeks, &c.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert stock out counter: %w", err)
	}
	return &c, nil
}

// ListAtOrAboveThreshold devuelve los contadores con consecutive_weeks >= threshold,
// enriquecidos para el reporte de escalamiento.
func (r *StockOutCounterRepo) ListAtOrAboveThreshold(ctx context.Context, threshold int) ([]repository.ThresholdCounter, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.location_id, c.product_id, c.consecutive_weeks, c.last_updated,
		       p.container_type, p.description, ol.location_name, ol.org_id
		FROM stock_out_counter c
		JOIN products p ON p.product_id = c.product_id
		JOIN org_locations ol ON ol.location_id = c.location_id
		WHERE c.consecutive_weeks >= $1
		ORDER BY c.consecutive_weeks DESC, ol.location_name`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list threshold counters: %w", err)
	}
	defer rows.Close()

	var out []repository.ThresholdCounter
	for rows.Next() {
		var tc repository.ThresholdCounter
		if err := rows.Scan(&tc.LocationID, &tc.ProductID, &tc.ConsecutiveWeeks, &tc.LastUpdated,
			&tc.ContainerType, &tc.Description, &tc.LocationName, &tc.OrgID); err != nil {
			return nil, fmt.Errorf("scan threshold counter: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
