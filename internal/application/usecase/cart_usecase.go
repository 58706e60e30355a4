package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// CartUseCase carrito de compra de clientes. Una línea por (usuario, producto);
// agregar el mismo producto suma cantidades.
type CartUseCase struct {
	cart     repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cart repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cart: cart, products: products}
}

// Get devuelve el carrito del usuario con el total calculado.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	lines, err := uc.cart.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		subtotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out.Items = append(out.Items, dto.CartLineResponse{
			ProductID:     l.ProductID,
			ContainerType: l.ContainerType,
			Description:   l.Description,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			Subtotal:      subtotal,
			UpdatedAt:     l.UpdatedAt,
		})
		out.Total = out.Total.Add(subtotal)
	}
	return out, nil
}

// Add agrega un producto al carrito; si ya estaba, suma la cantidad.
// Solo productos activos del catálogo.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	item := &entity.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := uc.cart.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// SetQuantity fija la cantidad de una línea; cantidad <= 0 la elimina.
func (uc *CartUseCase) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	if quantity <= 0 {
		if err := uc.cart.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
		return uc.Get(ctx, userID)
	}
	if _, err := uc.cart.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// Remove elimina una línea del carrito.
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID string) error {
	return uc.cart.Remove(ctx, userID, productID)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.cart.Clear(ctx, userID)
}

// Validate devuelve las líneas cuya cantidad supera el stock disponible.
// Un carrito válido devuelve la lista vacía.
func (uc *CartUseCase) Validate(ctx context.Context, userID string) ([]dto.InvalidCartLineResponse, error) {
	invalid, err := uc.cart.Validate(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvalidCartLineResponse, 0, len(invalid))
	for _, l := range invalid {
		out = append(out, dto.InvalidCartLineResponse{
			ProductID:     l.ProductID,
			ContainerType: l.ContainerType,
			Quantity:      l.Quantity,
			AvailableQty:  l.AvailableQty,
		})
	}
	return out, nil
}
