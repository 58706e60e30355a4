package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
)

// OrganizationHandler maneja el perfil de organización y sus ubicaciones de entrega.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// UpsertProfile godoc
// @Summary      Crear o actualizar el perfil de la organización
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertOrganizationRequest  true  "org_name, contact_person, contact_phone_org, org_type"
// @Success      200   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations/profile [put]
func (h *OrganizationHandler) UpsertProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.UpsertOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	org, err := h.uc.UpsertProfile(c.Context(), userID, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(org)
}

// GetProfile godoc
// @Summary      Perfil de la organización del usuario autenticado
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/profile [get]
func (h *OrganizationHandler) GetProfile(c *fiber.Ctx) error {
	org, err := h.uc.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(org)
}

// List godoc
// @Summary      Listar organizaciones (admin)
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrganizationResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	orgs, err := h.uc.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(orgs)
}

// GetByID godoc
// @Summary      Obtener una organización (admin)
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	org, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(org)
}

// CreateLocation godoc
// @Summary      Crear ubicación de entrega
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "location_name, address, delivery_day (monday..sunday)"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations/locations [post]
func (h *OrganizationHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	loc, err := h.uc.CreateLocation(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// ListLocations godoc
// @Summary      Ubicaciones de la organización del usuario
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/organizations/locations [get]
func (h *OrganizationHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.uc.ListLocations(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(locations)
}

// GetLocation godoc
// @Summary      Obtener una ubicación
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/locations/{id} [get]
func (h *OrganizationHandler) GetLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	loc, err := h.uc.GetLocation(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(loc)
}

// UpdateLocation godoc
// @Summary      Actualizar una ubicación (parcial)
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "UUID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.LocationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/organizations/locations/{id} [put]
func (h *OrganizationHandler) UpdateLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	loc, err := h.uc.UpdateLocation(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(loc)
}

// DeleteLocation godoc
// @Summary      Eliminar una ubicación
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la ubicación"
// @Success      200  {object}  dto.StatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/locations/{id} [delete]
func (h *OrganizationHandler) DeleteLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.uc.DeleteLocation(c.Context(), GetUserID(c), id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "ubicación eliminada"})
}
