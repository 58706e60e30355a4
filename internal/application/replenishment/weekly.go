package replenishment

import (
	"context"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
	"github.com/acuaflow/acuaflow-api/internal/domain/schedule"
)

// GenerateWeeklyOrders crea una orden de reposición por cada ubicación
// registrada, programada para su próximo día de entrega. Las líneas se
// calculan con el déficit (objetivo − actual) de cada nivel; los productos sin
// déficit se omiten y una ubicación sin déficits igual recibe su orden, sin
// líneas. Cada ubicación corre en su propia transacción: un fallo se reporta
// en Failed y la corrida continúa con las demás.
func (uc *UseCase) GenerateWeeklyOrders(ctx context.Context, now time.Time) (*dto.WeeklyOrdersResponse, error) {
	locs, err := uc.locations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.WeeklyOrdersResponse{Orders: make([]dto.ReplenishmentOrderResponse, 0, len(locs))}
	for _, loc := range locs {
		scheduledDate, err := schedule.NextDeliveryDate(loc.DeliveryDay, now)
		if err != nil {
			uc.log.Warn().Err(err).
				Str("location_id", loc.ID).
				Str("delivery_day", loc.DeliveryDay).
				Msg("ubicación omitida en la generación semanal")
			out.Failed = append(out.Failed, dto.LocationFailure{LocationID: loc.ID, Error: err.Error()})
			continue
		}

		order, err := uc.generateForLocation(ctx, loc.ID, scheduledDate)
		if err != nil {
			uc.log.Error().Err(err).
				Str("location_id", loc.ID).
				Msg("fallo generando la orden semanal de la ubicación")
			out.Failed = append(out.Failed, dto.LocationFailure{LocationID: loc.ID, Error: err.Error()})
			continue
		}
		out.Orders = append(out.Orders, dto.ReplenishmentOrderResponse{
			ID:            order.ID,
			LocationID:    order.LocationID,
			ScheduledDate: order.ScheduledDate,
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
			LocationName:  loc.Name,
		})
	}

	uc.log.Info().
		Int("orders", len(out.Orders)).
		Int("failed", len(out.Failed)).
		Msg("generación semanal de órdenes terminada")
	return out, nil
}

// generateForLocation crea cabecera y líneas de la orden de una ubicación en
// una sola transacción y, fuera de ella, mantiene los contadores de quiebre
// cuando el conteo automático está habilitado.
func (uc *UseCase) generateForLocation(ctx context.Context, locationID string, scheduledDate time.Time) (*entity.ReplenishmentOrder, error) {
	var order *entity.ReplenishmentOrder
	var levels []repository.LevelRow

	err := uc.txRunner.Run(ctx, func(orderRepo repository.ReplenishmentOrderRepository, levelRepo repository.ReplenishmentLevelRepository) error {
		var txErr error
		order, txErr = orderRepo.Create(ctx, locationID, scheduledDate)
		if txErr != nil {
			return txErr
		}
		levels, txErr = levelRepo.ListByLocation(ctx, locationID)
		if txErr != nil {
			return txErr
		}
		items := make([]repository.DetailInput, 0, len(levels))
		for _, lvl := range levels {
			if deficit := lvl.Deficit(); deficit > 0 {
				items = append(items, repository.DetailInput{ProductID: lvl.ProductID, Quantity: deficit})
			}
		}
		if len(items) == 0 {
			return nil
		}
		return orderRepo.AddDetails(ctx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}

	if uc.cfg.CountStockOuts {
		for _, lvl := range levels {
			if cErr := uc.touchCounter(ctx, lvl.LocationID, lvl.ProductID, lvl.CurrentLevel); cErr != nil {
				uc.log.Warn().Err(cErr).
					Str("location_id", lvl.LocationID).
					Str("product_id", lvl.ProductID).
					Msg("no se pudo actualizar el contador de quiebres")
			}
			if lvl.CurrentLevel > 0 {
				continue
			}
			if _, hErr := uc.history.Record(ctx, lvl.LocationID, lvl.ProductID); hErr != nil {
				uc.log.Warn().Err(hErr).
					Str("location_id", lvl.LocationID).
					Str("product_id", lvl.ProductID).
					Msg("no se pudo registrar el evento de quiebre")
			}
		}
	}
	return order, nil
}
