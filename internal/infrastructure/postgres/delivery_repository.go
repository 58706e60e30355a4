package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryRowSelect = `
	SELECT d.delivery_id, d.order_id, d.driver_name, d.vehicle_id, d.departure_time,
	       d.actual_delivery_time, d.delivery_status, d.notes,
	       o.user_id, u.email, o.total_amount, o.status
	FROM deliveries d
	JOIN orders o ON o.order_id = d.order_id
	JOIN users u ON u.user_id = o.user_id`

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de despachos.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste un despacho. Una orden solo admite uno (unique sobre order_id).
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (delivery_id, order_id, driver_name, vehicle_id, departure_time, actual_delivery_time, delivery_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OrderID, d.DriverName, d.VehicleID, d.DepartureTime, d.ActualDeliveryTime,
		d.Status, d.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID devuelve el despacho con datos de la orden.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*repository.DeliveryRow, error) {
	return r.scanOne(r.q.QueryRow(ctx, deliveryRowSelect+` WHERE d.delivery_id = $1`, id))
}

// GetByOrderID devuelve el despacho de una orden.
func (r *DeliveryRepo) GetByOrderID(ctx context.Context, orderID string) (*repository.DeliveryRow, error) {
	return r.scanOne(r.q.QueryRow(ctx, deliveryRowSelect+` WHERE d.order_id = $1`, orderID))
}

// UpdateStatus cambia el estado y opcionalmente la hora real de entrega.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id, status string, actualTime *time.Time) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(ctx, `
		UPDATE deliveries
		SET delivery_status = $2, actual_delivery_time = COALESCE($3, actual_delivery_time)
		WHERE delivery_id = $1
		RETURNING delivery_id, order_id, driver_name, vehicle_id, departure_time, actual_delivery_time, delivery_status, notes`,
		id, status, actualTime).Scan(
		&d.ID, &d.OrderID, &d.DriverName, &d.VehicleID, &d.DepartureTime, &d.ActualDeliveryTime,
		&d.Status, &d.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update delivery status: %w", err)
	}
	return &d, nil
}

// ListByDriver devuelve los despachos de un conductor; status vacío = todos.
func (r *DeliveryRepo) ListByDriver(ctx context.Context, driverName, status string) ([]repository.DeliveryRow, error) {
	return r.list(ctx, deliveryRowSelect+`
		WHERE d.driver_name = $1 AND ($2 = '' OR d.delivery_status = $2)
		ORDER BY d.departure_time DESC`, driverName, status)
}

// ListAll devuelve todos los despachos; status vacío = todos.
func (r *DeliveryRepo) ListAll(ctx context.Context, status string) ([]repository.DeliveryRow, error) {
	return r.list(ctx, deliveryRowSelect+`
		WHERE ($1 = '' OR d.delivery_status = $1)
		ORDER BY d.departure_time DESC`, status)
}

func (r *DeliveryRepo) scanOne(row pgx.Row) (*repository.DeliveryRow, error) {
	var d repository.DeliveryRow
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverName, &d.VehicleID, &d.DepartureTime,
		&d.ActualDeliveryTime, &d.Status, &d.Notes,
		&d.UserID, &d.UserEmail, &d.TotalAmount, &d.OrderStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

func (r *DeliveryRepo) list(ctx context.Context, query string, args ...any) ([]repository.DeliveryRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []repository.DeliveryRow
	for rows.Next() {
		var d repository.DeliveryRow
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DriverName, &d.VehicleID, &d.DepartureTime,
			&d.ActualDeliveryTime, &d.Status, &d.Notes,
			&d.UserID, &d.UserEmail, &d.TotalAmount, &d.OrderStatus); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
