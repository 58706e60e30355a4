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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetLines devuelve las líneas del carrito con datos y precio del producto.
func (r *CartRepo) GetLines(ctx context.Context, userID string) ([]repository.CartLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ci.cart_item_id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.container_type, p.description, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var out []repository.CartLine
	for rows.Next() {
		var l repository.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
			&l.ContainerType, &l.Description, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetItem obtiene una línea puntual del carrito.
func (r *CartRepo) GetItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	return r.scanOne(r.q.QueryRow(ctx, `
		SELECT cart_item_id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID))
}

// Upsert inserta la línea o suma la cantidad sobre la existente
// (ON CONFLICT sobre (user_id, product_id)).
func (r *CartRepo) Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	var out entity.CartItem
	err := r.q.QueryRow(ctx, `
		INSERT INTO cart_items (cart_item_id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING cart_item_id, user_id, product_id, quantity, created_at, updated_at`,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt).Scan(
		&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return &out, nil
}

// SetQuantity fija la cantidad de una línea existente.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.CartItem, error) {
	var out entity.CartItem
	err := r.q.QueryRow(ctx, `
		UPDATE cart_items SET quantity = $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2
		RETURNING cart_item_id, user_id, product_id, quantity, created_at, updated_at`,
		userID, productID, quantity).Scan(
		&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set cart quantity: %w", err)
	}
	return &out, nil
}

// Remove elimina una línea del carrito.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear vacía el carrito del usuario.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Validate devuelve las líneas con cantidad por encima del stock del producto.
func (r *CartRepo) Validate(ctx context.Context, userID string) ([]repository.InvalidCartLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ci.product_id, p.container_type, ci.quantity, p.current_stock
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1 AND ci.quantity > p.current_stock`, userID)
	if err != nil {
		return nil, fmt.Errorf("validate cart: %w", err)
	}
	defer rows.Close()

	var out []repository.InvalidCartLine
	for rows.Next() {
		var l repository.InvalidCartLine
		if err := rows.Scan(&l.ProductID, &l.ContainerType, &l.Quantity, &l.AvailableQty); err != nil {
			return nil, fmt.Errorf("scan invalid cart line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CartRepo) scanOne(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &item, nil
}
