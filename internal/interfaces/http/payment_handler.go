package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
)

// PaymentHandler maneja los pagos de pedidos.
type PaymentHandler struct {
	uc *usecase.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pago de un pedido
// @Description  El monto debe coincidir con el total del pedido. Un pedido tiene máximo un pago.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "order_id, amount, payment_method"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	payment, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// GetByID godoc
// @Summary      Obtener un pago
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	payment, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(payment)
}

// GetByOrderID godoc
// @Summary      Pago asociado a un pedido
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "UUID del pedido"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/order/{orderId} [get]
func (h *PaymentHandler) GetByOrderID(c *fiber.Ctx) error {
	payment, err := h.uc.GetByOrderID(c.Context(), c.Params("orderId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(payment)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pago
// @Description  Al aprobar el pago el pedido pasa a confirmed.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "UUID del pago"
// @Param        body  body  dto.UpdatePaymentStatusRequest  true  "status: pending|approved|rejected, transaction_id"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	payment, err := h.uc.UpdateStatus(c.Context(), id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(payment)
}

// ListMine godoc
// @Summary      Pagos del usuario autenticado
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments/mine [get]
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	payments, err := h.uc.ListByUser(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(payments)
}

// List godoc
// @Summary      Listar pagos (admin)
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	payments, err := h.uc.ListAll(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(payments)
}
