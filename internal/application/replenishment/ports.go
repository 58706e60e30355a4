package replenishment

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la cabecera y las líneas de una
// orden semanal se creen o se deshagan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.ReplenishmentOrderRepository,
		levelRepo repository.ReplenishmentLevelRepository,
	) error) error
}
