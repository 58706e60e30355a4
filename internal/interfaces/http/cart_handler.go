package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
)

// CartHandler maneja el carrito de compra del cliente autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Carrito actual con total calculado
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(cart)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito se suman las cantidades.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cart, err := h.uc.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(cart)
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad menor o igual a cero elimina la línea.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "UUID del producto"
// @Param        body       body  dto.UpdateCartQuantityRequest  true  "quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var in dto.UpdateCartQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cart, err := h.uc.SetQuantity(c.Context(), GetUserID(c), productID, in.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(cart)
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/cart/{productId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), GetUserID(c), c.Params("productId")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "producto eliminado del carrito"})
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUserID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "ok", Message: "carrito vaciado"})
}

// Validate godoc
// @Summary      Validar disponibilidad del carrito
// @Description  Devuelve las líneas cuya cantidad supera el stock disponible.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvalidCartLineResponse
// @Router       /api/cart/validate [get]
func (h *CartHandler) Validate(c *fiber.Ctx) error {
	invalid, err := h.uc.Validate(c.Context(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"valid": len(invalid) == 0, "invalid_items": invalid})
}
