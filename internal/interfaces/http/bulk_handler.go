package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stock-api/internal/application/bulk"
	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BulkHandler exportación e importación Excel (protegido; importar requiere admin).
type BulkHandler struct {
	exportUC *bulk.ExportUseCase
	importUC *bulk.ImportUseCase
}

// NewBulkHandler construye el handler.
func NewBulkHandler(exportUC *bulk.ExportUseCase, importUC *bulk.ImportUseCase) *BulkHandler {
	return &BulkHandler{exportUC: exportUC, importUC: importUC}
}

// ExportStocks godoc
// @Summary      Exportar stocks a Excel
// @Tags         bulk
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/export/stocks [get]
func (h *BulkHandler) ExportStocks(c *fiber.Ctx) error {
	data, err := h.exportUC.ExportStocks()
	if err != nil {
		return respondError(c, err)
	}
	return sendWorkbook(c, data, fmt.Sprintf("stocks_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportMovements godoc
// @Summary      Exportar movimientos a Excel
// @Tags         bulk
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        productId  query  string  false  "ID del producto"
// @Param        type       query  string  false  "IN | OUT | TRANSFER"
// @Param        siteId     query  string  false  "Casa contra origen o destino"
// @Success      200  {file}  binary
// @Router       /api/export/movements [get]
func (h *BulkHandler) ExportMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_QUERY", "query inválida"))
	}
	data, err := h.exportUC.ExportMovements(repository.MovementFilters{
		ProductID: q.ProductID,
		Type:      q.Type,
		SiteID:    q.SiteID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Operator:  q.Operator,
	})
	if err != nil {
		return respondError(c, err)
	}
	return sendWorkbook(c, data, fmt.Sprintf("mouvements_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ImportStocks godoc
// @Summary      Importar stocks desde Excel
// @Description  Fija cantidades absolutas por producto, sitio y estado (solo admin).
// @Tags         bulk
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro Excel de stock inicial"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/stocks [post]
func (h *BulkHandler) ImportStocks(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("MISSING_FILE", "archivo requerido en el campo file"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_FILE", "no se pudo leer el archivo"))
	}
	defer file.Close()

	report, err := h.importUC.ImportStocks(c.UserContext(), actorFrom(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(report))
}

func sendWorkbook(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
