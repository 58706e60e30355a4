package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/replenishment"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// ReplenishmentHandler maneja el flujo de reposición: niveles de stock,
// órdenes, contadores de quiebre e historial.
type ReplenishmentHandler struct {
	uc *replenishment.UseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *replenishment.UseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// ── Niveles de stock ──────────────────────────────────────────────────────────

// UpdateStockLevels godoc
// @Summary      Registrar niveles de stock de un producto en una ubicación
// @Description  Upsert del nivel. Dispara la alerta de stock bajo y, en cero,
// @Description  registra el quiebre en el historial.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Param        body        body  dto.UpdateStockLevelsRequest  true  "current_level, target_level"
// @Success      200  {object}  dto.LevelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/replenishments/stock/{locationId}/{productId} [put]
func (h *ReplenishmentHandler) UpdateStockLevels(c *fiber.Ctx) error {
	var in dto.UpdateStockLevelsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	level, err := h.uc.UpdateStockLevels(c.Context(), c.Params("locationId"), c.Params("productId"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// UpdateCurrentLevel godoc
// @Summary      Ajustar solo el nivel actual de una fila existente
// @Description  No toca el objetivo. Corre el mismo chequeo de stock bajo y
// @Description  quiebre que el registro completo.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Param        body        body  dto.UpdateCurrentLevelRequest  true  "current_level"
// @Success      200  {object}  dto.LevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/stock/{locationId}/{productId} [patch]
func (h *ReplenishmentHandler) UpdateCurrentLevel(c *fiber.Ctx) error {
	var in dto.UpdateCurrentLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	level, err := h.uc.UpdateCurrentLevel(c.Context(), c.Params("locationId"), c.Params("productId"), in.CurrentLevel)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// GetLevel godoc
// @Summary      Nivel de stock de un producto en una ubicación
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.LevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/stock/{locationId}/{productId} [get]
func (h *ReplenishmentHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.uc.GetLevel(c.Context(), c.Params("locationId"), c.Params("productId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toLevelResponse(level))
}

// ListLevels godoc
// @Summary      Niveles de stock de una ubicación
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Success      200  {array}  dto.LevelResponse
// @Router       /api/replenishments/stock/{locationId} [get]
func (h *ReplenishmentHandler) ListLevels(c *fiber.Ctx) error {
	rows, err := h.uc.ListLevels(c.Context(), c.Params("locationId"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.LevelResponse, 0, len(rows))
	for _, r := range rows {
		resp := toLevelResponse(&r.ReplenishmentLevel)
		resp.ContainerType = r.ContainerType
		resp.Description = r.Description
		out = append(out, *resp)
	}
	return c.JSON(out)
}

// DeleteLevel godoc
// @Summary      Eliminar el nivel de un producto en una ubicación
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/stock/{locationId}/{productId} [delete]
func (h *ReplenishmentHandler) DeleteLevel(c *fiber.Ctx) error {
	if err := h.uc.DeleteLevel(c.Context(), c.Params("locationId"), c.Params("productId")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "nivel eliminado"})
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Productos cuyo nivel actual está por debajo de la fracción de
// @Description  alerta del objetivo.
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación. Vacío = todas."
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/replenishments/low-stock [get]
func (h *ReplenishmentHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.GetLowStockItems(c.Context(), c.Query("location_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemResponse{
			LocationID:    it.LocationID,
			ProductID:     it.ProductID,
			CurrentLevel:  it.CurrentLevel,
			TargetLevel:   it.TargetLevel,
			LastUpdated:   it.LastUpdated,
			ContainerType: it.ContainerType,
			Description:   it.Description,
			LocationName:  it.LocationName,
			OrgID:         it.OrgID,
		})
	}
	return c.JSON(out)
}

// ── Órdenes de reposición ─────────────────────────────────────────────────────

// CreateOrder godoc
// @Summary      Crear orden de reposición manual
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplenishmentOrderRequest  true  "location_id, scheduled_date, products"
// @Success      201   {object}  dto.ReplenishmentOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/replenishments [post]
func (h *ReplenishmentHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateReplenishmentOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.uc.CreateOrder(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReplenishmentOrderResponse(order))
}

// GetOrder godoc
// @Summary      Obtener una orden de reposición
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {object}  dto.ReplenishmentOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/{id} [get]
func (h *ReplenishmentHandler) GetOrder(c *fiber.Ctx) error {
	row, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	resp := toReplenishmentOrderResponse(&row.ReplenishmentOrder)
	resp.LocationName = row.LocationName
	resp.OrgName = row.OrgName
	return c.JSON(resp)
}

// GetOrderDetails godoc
// @Summary      Líneas de una orden de reposición
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {array}   dto.ReplenishmentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/{id}/details [get]
func (h *ReplenishmentHandler) GetOrderDetails(c *fiber.Ctx) error {
	rows, err := h.uc.GetOrderDetails(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.ReplenishmentDetailResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReplenishmentDetailResponse{
			ReplenishmentID: r.ReplenishmentID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			ContainerType:   r.ContainerType,
			Description:     r.Description,
			UnitPrice:       r.UnitPrice,
		})
	}
	return c.JSON(out)
}

// ListOrdersByLocation godoc
// @Summary      Órdenes de reposición de una ubicación
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Success      200  {array}  dto.ReplenishmentOrderResponse
// @Router       /api/replenishments/location/{locationId} [get]
func (h *ReplenishmentHandler) ListOrdersByLocation(c *fiber.Ctx) error {
	orders, err := h.uc.ListOrdersByLocation(c.Context(), c.Params("locationId"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.ReplenishmentOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toReplenishmentOrderResponse(o))
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Órdenes de reposición pendientes
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentOrderResponse
// @Router       /api/replenishments/pending [get]
func (h *ReplenishmentHandler) ListPending(c *fiber.Ctx) error {
	rows, err := h.uc.ListPendingOrders(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.ReplenishmentOrderResponse, 0, len(rows))
	for _, r := range rows {
		resp := toReplenishmentOrderResponse(&r.ReplenishmentOrder)
		resp.LocationName = r.LocationName
		resp.OrgName = r.OrgName
		out = append(out, *resp)
	}
	return c.JSON(out)
}

// CompleteOrder godoc
// @Summary      Completar una orden de reposición
// @Description  Única transición válida: pending → completed. Envía la
// @Description  notificación de reposición completada a la organización.
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la orden"
// @Success      200  {object}  dto.ReplenishmentOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/replenishments/{id}/complete [put]
func (h *ReplenishmentHandler) CompleteOrder(c *fiber.Ctx) error {
	order, err := h.uc.CompleteOrder(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toReplenishmentOrderResponse(order))
}

// GenerateWeekly godoc
// @Summary      Generar órdenes de reposición semanales
// @Description  Recorre todas las ubicaciones y crea una orden con el déficit
// @Description  de cada producto. Una ubicación que falla no aborta la corrida.
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeeklyOrdersResponse
// @Router       /api/replenishments/generate-weekly [post]
func (h *ReplenishmentHandler) GenerateWeekly(c *fiber.Ctx) error {
	out, err := h.uc.GenerateWeeklyOrders(c.Context(), time.Now())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// ── Contadores de quiebre ─────────────────────────────────────────────────────

// GetCounter godoc
// @Summary      Contador de semanas en quiebre
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StockOutCounterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/counters/{locationId}/{productId} [get]
func (h *ReplenishmentHandler) GetCounter(c *fiber.Ctx) error {
	counter, err := h.uc.GetCounter(c.Context(), c.Params("locationId"), c.Params("productId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCounterResponse(counter))
}

// IncrementCounter godoc
// @Summary      Incrementar el contador de quiebre
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StockOutCounterResponse
// @Router       /api/replenishments/counters/{locationId}/{productId}/increment [post]
func (h *ReplenishmentHandler) IncrementCounter(c *fiber.Ctx) error {
	counter, err := h.uc.IncrementCounter(c.Context(), c.Params("locationId"), c.Params("productId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCounterResponse(counter))
}

// ResetCounter godoc
// @Summary      Resetear el contador de quiebre a cero
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StockOutCounterResponse
// @Router       /api/replenishments/counters/{locationId}/{productId}/reset [post]
func (h *ReplenishmentHandler) ResetCounter(c *fiber.Ctx) error {
	counter, err := h.uc.ResetCounter(c.Context(), c.Params("locationId"), c.Params("productId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toCounterResponse(counter))
}

// ThresholdReport godoc
// @Summary      Contadores en umbral de escalamiento
// @Description  Contadores con semanas consecutivas >= weeks. weeks omitido o
// @Description  no positivo usa el umbral configurado.
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        weeks  query  int  false  "Umbral de semanas"
// @Success      200  {array}  dto.ThresholdCounterResponse
// @Router       /api/replenishments/counters/threshold [get]
func (h *ReplenishmentHandler) ThresholdReport(c *fiber.Ctx) error {
	rows, err := h.uc.ThresholdReport(c.Context(), c.QueryInt("weeks", 0))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.ThresholdCounterResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ThresholdCounterResponse{
			StockOutCounterResponse: dto.StockOutCounterResponse{
				LocationID:       r.LocationID,
				ProductID:        r.ProductID,
				ConsecutiveWeeks: r.ConsecutiveWeeks,
				LastUpdated:      r.LastUpdated,
			},
			ContainerType: r.ContainerType,
			Description:   r.Description,
			LocationName:  r.LocationName,
			OrgID:         r.OrgID,
		})
	}
	return c.JSON(out)
}

// ── Historial de quiebres ─────────────────────────────────────────────────────

// RecordStockOut godoc
// @Summary      Registrar un evento de quiebre manual
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Param        productId   path  string  true  "UUID del producto"
// @Success      201  {object}  dto.StockOutEventResponse
// @Router       /api/replenishments/stock-outs/{locationId}/{productId} [post]
func (h *ReplenishmentHandler) RecordStockOut(c *fiber.Ctx) error {
	event, err := h.uc.RecordStockOut(c.Context(), c.Params("locationId"), c.Params("productId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockOutEventResponse(event))
}

// ListStockOuts godoc
// @Summary      Historial de quiebres de una ubicación
// @Description  from/to acotan el rango (RFC 3339 o YYYY-MM-DD). product_id
// @Description  filtra a un producto puntual.
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        locationId  path   string  true   "UUID de la ubicación"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Inicio del rango"
// @Param        to          query  string  false  "Fin del rango"
// @Success      200  {array}   dto.StockOutEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/replenishments/stock-outs/{locationId} [get]
func (h *ReplenishmentHandler) ListStockOuts(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido; use RFC 3339 o YYYY-MM-DD"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido; use RFC 3339 o YYYY-MM-DD"})
	}

	locationID := c.Params("locationId")
	if productID := c.Query("product_id"); productID != "" {
		events, err := h.uc.ListStockOutsByProduct(c.Context(), locationID, productID, from, to)
		if err != nil {
			return errorJSON(c, err)
		}
		out := make([]dto.StockOutEventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, *toStockOutEventResponse(&e))
		}
		return c.JSON(out)
	}

	rows, err := h.uc.ListStockOutsByLocation(c.Context(), locationID, from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.StockOutEventResponse, 0, len(rows))
	for _, r := range rows {
		resp := toStockOutEventResponse(&r.StockOutHistory)
		resp.ContainerType = r.ContainerType
		resp.Description = r.Description
		out = append(out, *resp)
	}
	return c.JSON(out)
}

// ── mappers ───────────────────────────────────────────────────────────────────

func toLevelResponse(l *entity.ReplenishmentLevel) *dto.LevelResponse {
	return &dto.LevelResponse{
		LocationID:   l.LocationID,
		ProductID:    l.ProductID,
		CurrentLevel: l.CurrentLevel,
		TargetLevel:  l.TargetLevel,
		LastUpdated:  l.LastUpdated,
	}
}

func toReplenishmentOrderResponse(o *entity.ReplenishmentOrder) *dto.ReplenishmentOrderResponse {
	return &dto.ReplenishmentOrderResponse{
		ID:            o.ID,
		LocationID:    o.LocationID,
		ScheduledDate: o.ScheduledDate,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func toCounterResponse(sc *entity.StockOutCounter) *dto.StockOutCounterResponse {
	return &dto.StockOutCounterResponse{
		LocationID:       sc.LocationID,
		ProductID:        sc.ProductID,
		ConsecutiveWeeks: sc.ConsecutiveWeeks,
		LastUpdated:      sc.LastUpdated,
	}
}

func toStockOutEventResponse(e *entity.StockOutHistory) *dto.StockOutEventResponse {
	return &dto.StockOutEventResponse{
		ID:           e.ID,
		LocationID:   e.LocationID,
		ProductID:    e.ProductID,
		StockOutDate: e.StockOutDate,
	}
}

// parseTimeQuery acepta RFC 3339 o fecha corta YYYY-MM-DD. Vacío devuelve nil.
func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
