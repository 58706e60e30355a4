package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStockLevelsRequest body para PUT /api/replenishments/stock/:locationId/:productId.
type UpdateStockLevelsRequest struct {
	CurrentLevel int `json:"current_level" validate:"min=0"`
	TargetLevel  int `json:"target_level" validate:"min=0"`
}

// UpdateCurrentLevelRequest body para PATCH /api/replenishments/stock/:locationId/:productId.
type UpdateCurrentLevelRequest struct {
	CurrentLevel int `json:"current_level" validate:"min=0"`
}

// LevelResponse salida de un nivel de reposición.
type LevelResponse struct {
	LocationID    string    `json:"location_id"`
	ProductID     string    `json:"product_id"`
	CurrentLevel  int       `json:"current_level"`
	TargetLevel   int       `json:"target_level"`
	LastUpdated   time.Time `json:"last_updated"`
	ContainerType string    `json:"container_type,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// LowStockItemResponse fila del reporte de stock bajo.
type LowStockItemResponse struct {
	LocationID    string    `json:"location_id"`
	ProductID     string    `json:"product_id"`
	CurrentLevel  int       `json:"current_level"`
	TargetLevel   int       `json:"target_level"`
	LastUpdated   time.Time `json:"last_updated"`
	ContainerType string    `json:"container_type"`
	Description   string    `json:"description"`
	LocationName  string    `json:"location_name"`
	OrgID         string    `json:"org_id"`
}

// ReplenishmentProductInput línea para crear una orden de reposición manual.
type ReplenishmentProductInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateReplenishmentOrderRequest body para POST /api/replenishments.
type CreateReplenishmentOrderRequest struct {
	LocationID    string                      `json:"location_id" validate:"required"`
	ScheduledDate time.Time                   `json:"scheduled_date" validate:"required"`
	Products      []ReplenishmentProductInput `json:"products"`
}

// ReplenishmentOrderResponse cabecera de una orden de reposición.
type ReplenishmentOrderResponse struct {
	ID            string    `json:"replenishment_id"`
	LocationID    string    `json:"location_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LocationName  string    `json:"location_name,omitempty"`
	OrgName       string    `json:"org_name,omitempty"`
}

// ReplenishmentDetailResponse línea de una orden de reposición.
type ReplenishmentDetailResponse struct {
	ReplenishmentID string          `json:"replenishment_id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	ContainerType   string          `json:"container_type"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// LocationFailure ubicación que falló durante la generación semanal.
type LocationFailure struct {
	LocationID string `json:"location_id"`
	Error      string `json:"error"`
}

// WeeklyOrdersResponse resultado del generador semanal: órdenes creadas y
// ubicaciones que fallaron (la corrida no aborta por una ubicación).
type WeeklyOrdersResponse struct {
	Orders []ReplenishmentOrderResponse `json:"orders"`
	Failed []LocationFailure            `json:"failed,omitempty"`
}

// StockOutCounterResponse contador de quiebre de un producto en una ubicación.
type StockOutCounterResponse struct {
	LocationID       string    `json:"location_id"`
	ProductID        string    `json:"product_id"`
	ConsecutiveWeeks int       `json:"consecutive_weeks"`
	LastUpdated      time.Time `json:"last_updated"`
}

// ThresholdCounterResponse contador en umbral de escalamiento, enriquecido.
type ThresholdCounterResponse struct {
	StockOutCounterResponse
	ContainerType string `json:"container_type"`
	Description   string `json:"description"`
	LocationName  string `json:"location_name"`
	OrgID         string `json:"org_id"`
}

// StockOutEventResponse evento del historial de quiebres.
type StockOutEventResponse struct {
	ID            string    `json:"stock_out_id"`
	LocationID    string    `json:"location_id"`
	ProductID     string    `json:"product_id"`
	StockOutDate  time.Time `json:"stock_out_date"`
	ContainerType string    `json:"container_type,omitempty"`
	Description   string    `json:"description,omitempty"`
}
