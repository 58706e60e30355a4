package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.StockOutHistoryRepository = (*StockOutHistoryRepo)(nil)

// StockOutHistoryRepo implementación del historial append-only de quiebres.
type StockOutHistoryRepo struct {
	q Querier
}

// NewStockOutHistoryRepository construye el adaptador del historial.
func NewStockOutHistoryRepository(q Querier) *StockOutHistoryRepo {
	return &StockOutHistoryRepo{q: q}
}

// Record inserta un evento de quiebre; nunca actualiza ni borra.
func (r *StockOutHistoryRepo) Record(ctx context.Context, locationID, productID string) (*entity.StockOutHistory, error) {
	ev := entity.StockOutHistory{
		ID:         uuid.New().String(),
		LocationID: locationID,
		ProductID:  productID,
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_out_history (stock_out_id, location_id, product_id, stock_out_date)
		VALUES ($1, $2, $3, now())
		RETURNING stock_out_date`,
		ev.ID, ev.LocationID, ev.ProductID).Scan(&ev.StockOutDate)
	if err != nil {
		return nil, fmt.Errorf("insert stock out event: %w", err)
	}
	return &ev, nil
}

// ListByLocation devuelve los eventos de una ubicación, más recientes primero.
// from/to acotan el rango y pueden ser nil.
func (r *StockOutHistoryRepo) ListByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]repository.StockOutEventRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT h.stock_out_id, h.location_id, h.product_id, h.stock_out_date,
		       p.container_type, p.description
		FROM stock_out_history h
		JOIN products p ON p.product_id = h.product_id
		WHERE h.location_id = $1
		  AND ($2::timestamptz IS NULL OR h.stock_out_date >= $2)
		  AND ($3::timestamptz IS NULL OR h.stock_out_date <= $3)
		ORDER BY h.stock_out_date DESC`, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock out events: %w", err)
	}
	defer rows.Close()

	var out []repository.StockOutEventRow
	for rows.Next() {
		var ev repository.StockOutEventRow
		if err := rows.Scan(&ev.ID, &ev.LocationID, &ev.ProductID, &ev.StockOutDate,
			&ev.ContainerType, &ev.Description); err != nil {
			return nil, fmt.Errorf("scan stock out event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// ListByProduct devuelve los eventos de un producto puntual en una ubicación.
func (r *StockOutHistoryRepo) ListByProduct(ctx context.Context, locationID, productID string, from, to *time.Time) ([]entity.StockOutHistory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT stock_out_id, location_id, product_id, stock_out_date
		FROM stock_out_history
		WHERE location_id = $1 AND product_id = $2
		  AND ($3::timestamptz IS NULL OR stock_out_date >= $3)
		  AND ($4::timestamptz IS NULL OR stock_out_date <= $4)
		ORDER BY stock_out_date DESC`, locationID, productID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock out events by product: %w", err)
	}
	defer rows.Close()

	var out []entity.StockOutHistory
	for rows.Next() {
		var ev entity.StockOutHistory
		if err := rows.Scan(&ev.ID, &ev.LocationID, &ev.ProductID, &ev.StockOutDate); err != nil {
			return nil, fmt.Errorf("scan stock out event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
