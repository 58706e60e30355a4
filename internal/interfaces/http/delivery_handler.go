package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
)

// DeliveryHandler maneja las entregas de ruta (solo admin).
type DeliveryHandler struct {
	uc *usecase.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *usecase.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Programar entrega de un pedido
// @Description  El pedido pasa a estado delivery. Un pedido tiene máximo una entrega.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "order_id, driver_name, vehicle_id, departure_time"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	delivery, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(delivery)
}

// GetByID godoc
// @Summary      Obtener una entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	delivery, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(delivery)
}

// GetByOrderID godoc
// @Summary      Entrega asociada a un pedido
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "UUID del pedido"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/order/{orderId} [get]
func (h *DeliveryHandler) GetByOrderID(c *fiber.Ctx) error {
	delivery, err := h.uc.GetByOrderID(c.Context(), c.Params("orderId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(delivery)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la entrega
// @Description  Al marcar delivered se registra la hora real y el pedido pasa a done.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "UUID de la entrega"
// @Param        body  body  dto.UpdateDeliveryStatusRequest  true  "status, actual_delivery_time (opcional)"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [put]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateDeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	delivery, err := h.uc.UpdateStatus(c.Context(), id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(delivery)
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        driver  query  string  false  "Filtrar por conductor"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if driver := c.Query("driver"); driver != "" {
		deliveries, err := h.uc.ListByDriver(c.Context(), driver, status)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(deliveries)
	}
	deliveries, err := h.uc.ListAll(c.Context(), status)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(deliveries)
}
