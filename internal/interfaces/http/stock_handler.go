package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/inventory"
)

// StockHandler vistas de solo lectura del libro mayor (protegido).
type StockHandler struct {
	uc *inventory.StockViewUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockViewUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar todo el libro mayor
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ByProduct godoc
// @Summary      Stock de un producto en todos los sitios
// @Description  Incluye totales por estado; sin filas equivale a stock cero.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response
// @Router       /api/stocks/product/{productId} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// BySite godoc
// @Summary      Stock presente en un sitio
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        siteId  path  string  true  "ID del sitio"
// @Success      200  {object}  dto.Response
// @Router       /api/stocks/site/{siteId} [get]
func (h *StockHandler) BySite(c *fiber.Ctx) error {
	out, err := h.uc.BySite(c.Params("siteId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Description  Productos con riesgo HIGH cuyo stock total queda en o bajo
// @Description  qtyPerUnit × threshold (por defecto 5).
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Multiplicador del umbral"  default(5)
// @Success      200  {object}  dto.Response
// @Router       /api/stocks/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.QueryInt("threshold", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}
