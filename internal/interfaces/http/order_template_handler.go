package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/orders"
)

// OrderTemplateHandler maneja las peticiones HTTP para los modelos de pedido
// (protegido).
type OrderTemplateHandler struct {
	uc *orders.TemplateUseCase
}

// NewOrderTemplateHandler construye el handler.
func NewOrderTemplateHandler(uc *orders.TemplateUseCase) *OrderTemplateHandler {
	return &OrderTemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear modelo de pedido
// @Tags         order-templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderTemplateRequest  true  "Datos del modelo"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/order-templates [post]
func (h *OrderTemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Create(actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener modelo de pedido por ID
// @Tags         order-templates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del modelo"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-templates/{id} [get]
func (h *OrderTemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar modelos de pedido
// @Tags         order-templates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/order-templates [get]
func (h *OrderTemplateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar modelo de pedido
// @Description  Items con contenido sustituye todas las líneas del modelo.
// @Tags         order-templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del modelo"
// @Param        body  body  dto.UpdateOrderTemplateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/order-templates/{id} [put]
func (h *OrderTemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar modelo de pedido
// @Tags         order-templates
// @Security     Bearer
// @Param        id   path  string  true  "ID del modelo"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-templates/{id} [delete]
func (h *OrderTemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(actorFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
