package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/usecase"
)

// ProductSupplierHandler maneja las peticiones HTTP para los vínculos
// producto-proveedor (protegido).
type ProductSupplierHandler struct {
	uc *usecase.ProductSupplierUseCase
}

// NewProductSupplierHandler construye el handler.
func NewProductSupplierHandler(uc *usecase.ProductSupplierUseCase) *ProductSupplierHandler {
	return &ProductSupplierHandler{uc: uc}
}

// Add godoc
// @Summary      Vincular proveedor a un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del producto"
// @Param        body  body  dto.AddProductSupplierRequest  true  "Condiciones de compra"
// @Success      201   {object}  dto.Response
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers [post]
func (h *ProductSupplierHandler) Add(c *fiber.Ctx) error {
	var in dto.AddProductSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Add(actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar proveedores de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers [get]
func (h *ProductSupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// SetPrimary godoc
// @Summary      Marcar proveedor principal
// @Description  Desmarca al principal anterior del producto.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id          path  string  true  "ID del producto"
// @Param        supplierId  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers/{supplierId}/primary [put]
func (h *ProductSupplierHandler) SetPrimary(c *fiber.Ctx) error {
	out, err := h.uc.SetPrimary(actorFrom(c), c.Params("id"), c.Params("supplierId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Remove godoc
// @Summary      Desvincular proveedor de un producto
// @Tags         products
// @Security     Bearer
// @Param        id          path  string  true  "ID del producto"
// @Param        supplierId  path  string  true  "ID del proveedor"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers/{supplierId} [delete]
func (h *ProductSupplierHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(actorFrom(c), c.Params("id"), c.Params("supplierId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
