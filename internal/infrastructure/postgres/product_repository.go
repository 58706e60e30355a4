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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (product_id, container_type, description, unit_price, current_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ContainerType, p.Description, p.UnitPrice, p.CurrentStock, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `
		SELECT product_id, container_type, description, unit_price, current_stock, is_active, created_at, updated_at
		FROM products WHERE product_id = $1`, id).Scan(
		&p.ID, &p.ContainerType, &p.Description, &p.UnitPrice, &p.CurrentStock, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListActive devuelve los productos activos ordenados por tipo de envase.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, container_type, description, unit_price, current_stock, is_active, created_at, updated_at
		FROM products WHERE is_active ORDER BY container_type`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.ContainerType, &p.Description, &p.UnitPrice, &p.CurrentStock,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET container_type = $2, description = $3, unit_price = $4, current_stock = $5, is_active = $6, updated_at = $7
		WHERE product_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.ContainerType, p.Description, p.UnitPrice, p.CurrentStock, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock suma delta (puede ser negativo) al stock global del producto.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `
		UPDATE products SET current_stock = current_stock + $2, updated_at = now()
		WHERE product_id = $1
		RETURNING product_id, container_type, description, unit_price, current_stock, is_active, created_at, updated_at`,
		id, delta).Scan(
		&p.ID, &p.ContainerType, &p.Description, &p.UnitPrice, &p.CurrentStock, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &p, nil
}

// Deactivate hace la baja lógica del producto.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = now() WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
