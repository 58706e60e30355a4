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

// ReceiptGenerator es el puerto hacia el generador de recibos PDF.
type ReceiptGenerator interface {
	Generate(order repository.OrderRow, details []repository.OrderDetailRow) ([]byte, error)
}

// OrderUseCase pedidos de agua: creación directa, checkout desde el carrito,
// consulta y cambio de estado. El precio unitario se congela en la línea.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cart     repository.CartRepository
	receipts ReceiptGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	cart repository.CartRepository,
	receipts ReceiptGenerator,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, cart: cart, receipts: receipts}
}

// Create crea un pedido con sus líneas, congelando el precio unitario del
// catálogo y descontando el stock global de planta.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderWithDetailsResponse, error) {
	if len(in.Items) == 0 || in.ScheduledDeliveryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderType != entity.OrderTypeCustomer && in.OrderType != entity.OrderTypeOrganization {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderType == entity.OrderTypeOrganization && (in.LocationID == nil || *in.LocationID == "") {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	order := &entity.Order{
		ID:                    uuid.New().String(),
		UserID:                userID,
		OrderDate:             time.Now(),
		ScheduledDeliveryDate: in.ScheduledDeliveryDate,
		Status:                entity.OrderStatusPending,
		OrderType:             in.OrderType,
		LocationID:            in.LocationID,
	}

	total := decimal.Zero
	details := make([]*entity.OrderDetail, 0, len(in.Items))
	for _, it := range in.Items {
		product, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
		if product.CurrentStock < it.Quantity {
			return nil, domain.ErrConflict
		}
		details = append(details, &entity.OrderDetail{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: product.UnitPrice,
		})
		total = total.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	order.TotalAmount = total

	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := uc.orders.CreateDetails(ctx, details); err != nil {
		return nil, err
	}
	for _, d := range details {
		if _, err := uc.products.AdjustStock(ctx, d.ProductID, -d.Quantity); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, order.ID)
}

// CheckoutFromCart convierte el carrito del usuario en un pedido de tipo
// customer y lo vacía. Un carrito con líneas sobre el stock se rechaza entero.
func (uc *OrderUseCase) CheckoutFromCart(ctx context.Context, userID string, scheduledDeliveryDate time.Time) (*dto.OrderWithDetailsResponse, error) {
	invalid, err := uc.cart.Validate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(invalid) > 0 {
		return nil, domain.ErrConflict
	}
	lines, err := uc.cart.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	items := make([]dto.OrderItemInput, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.OrderItemInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	order, err := uc.Create(ctx, userID, dto.CreateOrderRequest{
		ScheduledDeliveryDate: scheduledDeliveryDate,
		OrderType:             entity.OrderTypeCustomer,
		Items:                 items,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.cart.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID devuelve el pedido completo o ErrNotFound.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderWithDetailsResponse, error) {
	row, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.orders.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderWithDetailsResponse{
		Order:   *toOrderResponse(row),
		Details: make([]dto.OrderDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.OrderDetailResponse{
			ID:            d.ID,
			OrderID:       d.OrderID,
			ProductID:     d.ProductID,
			Quantity:      d.Quantity,
			UnitPrice:     d.UnitPrice,
			ContainerType: d.ContainerType,
			Description:   d.Description,
		})
	}
	return out, nil
}

// ListByUser devuelve los pedidos de un usuario.
func (uc *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	rows, err := uc.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(rows), nil
}

// ListByLocation devuelve los pedidos de una ubicación de organización.
func (uc *OrderUseCase) ListByLocation(ctx context.Context, locationID string) ([]dto.OrderResponse, error) {
	rows, err := uc.orders.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(rows), nil
}

// ListAll devuelve todos los pedidos (solo admin).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	rows, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(rows), nil
}

// UpdateStatus cambia el estado del pedido a uno reconocido.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	row, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	row.Status = status
	return toOrderResponse(row), nil
}

// Receipt genera el recibo PDF del pedido.
func (uc *OrderUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	row, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.orders.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.Generate(*row, details)
}

func toOrderResponse(r *repository.OrderRow) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:                    r.ID,
		UserID:                r.UserID,
		UserEmail:             r.UserEmail,
		OrderDate:             r.OrderDate,
		ScheduledDeliveryDate: r.ScheduledDeliveryDate,
		TotalAmount:           r.TotalAmount,
		Status:                r.Status,
		OrderType:             r.OrderType,
		LocationID:            r.LocationID,
		LocationName:          r.LocationName,
	}
}

func toOrderResponses(rows []repository.OrderRow) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toOrderResponse(&rows[i]))
	}
	return out
}
