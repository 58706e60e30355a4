package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
)

// CustomerHandler maneja el perfil de clientes residenciales.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// UpsertProfile godoc
// @Summary      Crear o actualizar el perfil del cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCustomerProfileRequest  true  "full_name, phone, address, delivery_instructions"
// @Success      200   {object}  dto.CustomerProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/profile [put]
func (h *CustomerHandler) UpsertProfile(c *fiber.Ctx) error {
	var in dto.UpsertCustomerProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	profile, err := h.uc.UpsertProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(profile)
}

// GetProfile godoc
// @Summary      Perfil del cliente autenticado
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/profile [get]
func (h *CustomerHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(profile)
}

// List godoc
// @Summary      Listar perfiles de clientes (admin)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerProfileResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	profiles, err := h.uc.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(profiles)
}
