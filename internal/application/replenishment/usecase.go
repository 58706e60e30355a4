// Package replenishment implementa el motor de reposición: niveles de stock
// por ubicación, alertas de stock bajo, contadores e historial de quiebres y
// órdenes de reposición con su generación semanal.
package replenishment

import (
	"context"
	"fmt"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
	"github.com/acuaflow/acuaflow-api/pkg/config"
	"github.com/acuaflow/acuaflow-api/pkg/logger"
)

// UseCase orquesta niveles, contadores, historial y órdenes de reposición.
type UseCase struct {
	levels     repository.ReplenishmentLevelRepository
	counters   repository.StockOutCounterRepository
	history    repository.StockOutHistoryRepository
	orders     repository.ReplenishmentOrderRepository
	locations  repository.OrgLocationRepository
	orgs       repository.OrganizationRepository
	users      repository.UserRepository
	products   repository.ProductRepository
	txRunner   TxRunner
	dispatcher *notification.Dispatcher
	cfg        config.ReplenishmentConfig
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de reposición.
func NewUseCase(
	levels repository.ReplenishmentLevelRepository,
	counters repository.StockOutCounterRepository,
	history repository.StockOutHistoryRepository,
	orders repository.ReplenishmentOrderRepository,
	locations repository.OrgLocationRepository,
	orgs repository.OrganizationRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	txRunner TxRunner,
	dispatcher *notification.Dispatcher,
	cfg config.ReplenishmentConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		levels:     levels,
		counters:   counters,
		history:    history,
		orders:     orders,
		locations:  locations,
		orgs:       orgs,
		users:      users,
		products:   products,
		txRunner:   txRunner,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
	}
}

// orgContact es el destinatario de las notificaciones de una ubicación:
// el email del usuario dueño de la organización.
type orgContact struct {
	OrgID        string
	Email        string
	LocationName string
}

func (uc *UseCase) resolveContact(ctx context.Context, locationID string) (*orgContact, error) {
	loc, err := uc.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	org, err := uc.orgs.GetByID(ctx, loc.OrgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, org.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &orgContact{OrgID: org.ID, Email: user.Email, LocationName: loc.Name}, nil
}

// belowAlertThreshold reporta si el nivel actual cae bajo la fracción de
// alerta del objetivo (por defecto 20%).
func (uc *UseCase) belowAlertThreshold(current, target int) bool {
	return float64(current) < float64(target)*uc.cfg.LowStockRatio
}

// UpdateStockLevels crea o reemplaza el nivel de un producto en una ubicación
// y dispara los efectos laterales del chequeo: alerta de stock bajo, evento de
// quiebre cuando el nivel llega a 0 y, si está habilitado, el contador de
// semanas consecutivas en quiebre.
func (uc *UseCase) UpdateStockLevels(ctx context.Context, locationID, productID string, req dto.UpdateStockLevelsRequest) (*entity.ReplenishmentLevel, error) {
	if locationID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.CurrentLevel < 0 || req.TargetLevel < 0 {
		return nil, domain.ErrInvalidInput
	}

	level := &entity.ReplenishmentLevel{
		LocationID:   locationID,
		ProductID:    productID,
		CurrentLevel: req.CurrentLevel,
		TargetLevel:  req.TargetLevel,
		LastUpdated:  time.Now(),
	}
	if err := uc.levels.Upsert(ctx, level); err != nil {
		return nil, err
	}
	if err := uc.runLevelSideEffects(ctx, level); err != nil {
		return nil, err
	}
	return level, nil
}

// UpdateCurrentLevel ajusta solo el nivel actual de una fila existente
// (ErrNotFound si no hay fila) y corre el mismo chequeo que el registro
// completo.
func (uc *UseCase) UpdateCurrentLevel(ctx context.Context, locationID, productID string, currentLevel int) (*entity.ReplenishmentLevel, error) {
	if locationID == "" || productID == "" || currentLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.levels.UpdateCurrentLevel(ctx, locationID, productID, currentLevel); err != nil {
		return nil, err
	}
	level, err := uc.levels.Get(ctx, locationID, productID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.runLevelSideEffects(ctx, level); err != nil {
		return nil, err
	}
	return level, nil
}

// runLevelSideEffects dispara los efectos de un cambio de nivel: evento de
// quiebre cuando llega a 0, contador si está habilitado y alerta bajo la
// fracción del objetivo.
func (uc *UseCase) runLevelSideEffects(ctx context.Context, level *entity.ReplenishmentLevel) error {
	if level.CurrentLevel == 0 {
		if _, err := uc.history.Record(ctx, level.LocationID, level.ProductID); err != nil {
			return fmt.Errorf("registrar evento de quiebre: %w", err)
		}
	}
	if uc.cfg.CountStockOuts {
		if err := uc.touchCounter(ctx, level.LocationID, level.ProductID, level.CurrentLevel); err != nil {
			uc.log.Warn().Err(err).
				Str("location_id", level.LocationID).
				Str("product_id", level.ProductID).
				Msg("no se pudo actualizar el contador de quiebres")
		}
	}
	if uc.belowAlertThreshold(level.CurrentLevel, level.TargetLevel) {
		return uc.sendLowStockAlert(ctx, level)
	}
	return nil
}

// touchCounter incrementa el contador si el nivel quedó en 0 y lo resetea en
// cualquier otro caso.
func (uc *UseCase) touchCounter(ctx context.Context, locationID, productID string, currentLevel int) error {
	if currentLevel == 0 {
		_, err := uc.counters.Increment(ctx, locationID, productID)
		return err
	}
	_, err := uc.counters.Reset(ctx, locationID, productID)
	return err
}

func (uc *UseCase) sendLowStockAlert(ctx context.Context, level *entity.ReplenishmentLevel) error {
	contact, err := uc.resolveContact(ctx, level.LocationID)
	if err != nil {
		return fmt.Errorf("resolver destinatario de alerta: %w", err)
	}
	product, err := uc.products.GetByID(ctx, level.ProductID)
	if err != nil {
		return err
	}
	containerType := level.ProductID
	if product != nil {
		containerType = product.ContainerType
	}

	productID := level.ProductID
	_, err = uc.dispatcher.Dispatch(ctx, notification.Message{
		OrgID:      contact.OrgID,
		LocationID: level.LocationID,
		ProductID:  &productID,
		Subject:    "Low Stock Alert",
		Body: fmt.Sprintf(
			"Stock for %s at %s is running low: %d of %d units remain. A replenishment may be needed before the next scheduled delivery.",
			containerType, contact.LocationName, level.CurrentLevel, level.TargetLevel,
		),
		SentTo: contact.Email,
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("location_id", level.LocationID).
		Str("product_id", level.ProductID).
		Int("current_level", level.CurrentLevel).
		Int("target_level", level.TargetLevel).
		Msg("alerta de stock bajo enviada")
	return nil
}

// GetLevel devuelve el nivel de un producto en una ubicación o ErrNotFound.
func (uc *UseCase) GetLevel(ctx context.Context, locationID, productID string) (*entity.ReplenishmentLevel, error) {
	level, err := uc.levels.Get(ctx, locationID, productID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	return level, nil
}

// ListLevels devuelve todos los niveles de una ubicación con datos de producto.
func (uc *UseCase) ListLevels(ctx context.Context, locationID string) ([]repository.LevelRow, error) {
	return uc.levels.ListByLocation(ctx, locationID)
}

// GetLowStockItems devuelve todo nivel con actual < objetivo. La fracción de
// alerta no entra aquí: solo decide cuándo se dispara la notificación.
// locationID vacío consulta todas las ubicaciones.
func (uc *UseCase) GetLowStockItems(ctx context.Context, locationID string) ([]repository.LowStockItem, error) {
	return uc.levels.GetLowStockItems(ctx, locationID)
}

// DeleteLevel elimina el nivel de un producto en una ubicación.
func (uc *UseCase) DeleteLevel(ctx context.Context, locationID, productID string) error {
	return uc.levels.Delete(ctx, locationID, productID)
}

// CreateOrder crea una orden de reposición manual con sus líneas.
// Toda cantidad debe ser > 0; la orden nace en estado pending.
func (uc *UseCase) CreateOrder(ctx context.Context, req dto.CreateReplenishmentOrderRequest) (*entity.ReplenishmentOrder, error) {
	if req.LocationID == "" || req.ScheduledDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range req.Products {
		if p.ProductID == "" || p.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	loc, err := uc.locations.GetByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	var order *entity.ReplenishmentOrder
	err = uc.txRunner.Run(ctx, func(orderRepo repository.ReplenishmentOrderRepository, _ repository.ReplenishmentLevelRepository) error {
		var txErr error
		order, txErr = orderRepo.Create(ctx, req.LocationID, req.ScheduledDate)
		if txErr != nil {
			return txErr
		}
		if len(req.Products) == 0 {
			return nil
		}
		items := make([]repository.DetailInput, 0, len(req.Products))
		for _, p := range req.Products {
			items = append(items, repository.DetailInput{ProductID: p.ProductID, Quantity: p.Quantity})
		}
		return orderRepo.AddDetails(ctx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("replenishment_id", order.ID).
		Str("location_id", order.LocationID).
		Int("lines", len(req.Products)).
		Msg("orden de reposición creada")
	return order, nil
}

// GetOrder devuelve la orden con datos de ubicación, o ErrNotFound.
func (uc *UseCase) GetOrder(ctx context.Context, replenishmentID string) (*repository.ReplenishmentOrderRow, error) {
	row, err := uc.orders.GetByID(ctx, replenishmentID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

// GetOrderDetails devuelve las líneas de una orden con datos de producto.
func (uc *UseCase) GetOrderDetails(ctx context.Context, replenishmentID string) ([]repository.ReplenishmentDetailRow, error) {
	row, err := uc.orders.GetByID(ctx, replenishmentID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return uc.orders.GetDetails(ctx, replenishmentID)
}

// ListOrdersByLocation devuelve las órdenes de una ubicación, más recientes primero.
func (uc *UseCase) ListOrdersByLocation(ctx context.Context, locationID string) ([]*entity.ReplenishmentOrder, error) {
	return uc.orders.ListByLocation(ctx, locationID)
}

// ListPendingOrders devuelve todas las órdenes pendientes con ubicación y organización.
func (uc *UseCase) ListPendingOrders(ctx context.Context) ([]repository.ReplenishmentOrderRow, error) {
	return uc.orders.ListPending(ctx)
}

// CompleteOrder marca una orden pendiente como completada y envía la
// notificación de cierre. Una orden ya completada devuelve ErrConflict:
// la transición pending → completed ocurre una sola vez y por tanto la
// notificación también.
func (uc *UseCase) CompleteOrder(ctx context.Context, replenishmentID string) (*entity.ReplenishmentOrder, error) {
	row, err := uc.orders.GetByID(ctx, replenishmentID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	if row.Status != entity.ReplenishmentStatusPending {
		return nil, domain.ErrConflict
	}

	order, err := uc.orders.UpdateStatus(ctx, replenishmentID, entity.ReplenishmentStatusCompleted)
	if err != nil {
		return nil, err
	}

	contact, err := uc.resolveContact(ctx, order.LocationID)
	if err != nil {
		return nil, fmt.Errorf("resolver destinatario de notificación: %w", err)
	}
	// Aviso general: sin producto asociado.
	_, err = uc.dispatcher.Dispatch(ctx, notification.Message{
		OrgID:      contact.OrgID,
		LocationID: order.LocationID,
		ProductID:  nil,
		Subject:    "Replenishment Completed",
		Body: fmt.Sprintf(
			"The replenishment order scheduled for %s at %s has been completed.",
			order.ScheduledDate.Format("2006-01-02"), contact.LocationName,
		),
		SentTo: contact.Email,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("replenishment_id", order.ID).
		Str("location_id", order.LocationID).
		Msg("orden de reposición completada")
	return order, nil
}

// GetCounter devuelve el contador de quiebres de un producto en una ubicación,
// o ErrNotFound si nunca se contó.
func (uc *UseCase) GetCounter(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	c, err := uc.counters.Get(ctx, locationID, productID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// IncrementCounter suma una semana en quiebre al contador (lo crea en 1 si no existe).
func (uc *UseCase) IncrementCounter(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	if locationID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.counters.Increment(ctx, locationID, productID)
}

// ResetCounter deja el contador en 0 (lo crea en 0 si no existe).
func (uc *UseCase) ResetCounter(ctx context.Context, locationID, productID string) (*entity.StockOutCounter, error) {
	if locationID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.counters.Reset(ctx, locationID, productID)
}

// ThresholdReport devuelve los contadores con al menos weeks semanas
// consecutivas en quiebre. weeks <= 0 usa el umbral configurado.
func (uc *UseCase) ThresholdReport(ctx context.Context, weeks int) ([]repository.ThresholdCounter, error) {
	if weeks <= 0 {
		weeks = uc.cfg.ThresholdWeeks
	}
	return uc.counters.ListAtOrAboveThreshold(ctx, weeks)
}

// RecordStockOut inserta un evento de quiebre en el historial.
func (uc *UseCase) RecordStockOut(ctx context.Context, locationID, productID string) (*entity.StockOutHistory, error) {
	if locationID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.history.Record(ctx, locationID, productID)
}

// ListStockOutsByLocation devuelve el historial de quiebres de una ubicación.
// from/to acotan el rango y pueden ser nil.
func (uc *UseCase) ListStockOutsByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]repository.StockOutEventRow, error) {
	return uc.history.ListByLocation(ctx, locationID, from, to)
}

// ListStockOutsByProduct devuelve el historial de quiebres de un producto puntual.
func (uc *UseCase) ListStockOutsByProduct(ctx context.Context, locationID, productID string, from, to *time.Time) ([]entity.StockOutHistory, error) {
	return uc.history.ListByProduct(ctx, locationID, productID, from, to)
}
