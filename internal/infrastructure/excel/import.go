package excel

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// ParsedQuantity es una cantidad absoluta leída de una columna
// "<sitio> : neuf|occasion".
type ParsedQuantity struct {
	SiteName  string
	Condition stock.Condition
	Quantity  int
}

// ParsedRow es una fila de producto del fichero importado.
type ParsedRow struct {
	Reference  string
	SupplyRisk string // enumerado interno, "" si la columna falta o no mapea
	Quantities []ParsedQuantity
}

// Parser lee libros de stock inicial de planta.
type Parser struct{}

// NewParser construye el lector.
func NewParser() *Parser {
	return &Parser{}
}

// stockColumn describe una columna de cantidades reconocida en la cabecera.
type stockColumn struct {
	index     int
	siteName  string
	condition stock.Condition
}

// ParseStocks localiza la hoja de stock (nombre parcial "STOCK INITIAL",
// en su defecto "SYNTHESE"), reconoce las columnas por cabecera plegada y
// devuelve las filas con referencia no vacía.
func (p *Parser) ParseStocks(r io.Reader) ([]ParsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	defer f.Close()

	sheet := findSheet(f)
	if sheet == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, domain.ErrInvalidInput
	}

	refCol, riskCol := -1, -1
	var columns []stockColumn
	for i, h := range rows[0] {
		folded := Fold(h)
		switch {
		case refCol == -1 && (strings.Contains(folded, "reference") || folded == "produit"):
			refCol = i
		case riskCol == -1 && strings.Contains(folded, "risque"):
			riskCol = i
		default:
			if col, ok := parseStockHeader(h, i); ok {
				columns = append(columns, col)
			}
		}
	}
	if refCol == -1 {
		return nil, domain.ErrInvalidInput
	}

	var out []ParsedRow
	for _, row := range rows[1:] {
		reference := strings.TrimSpace(cellAt(row, refCol))
		if reference == "" {
			continue
		}
		parsed := ParsedRow{Reference: strings.ToUpper(reference)}
		if riskCol != -1 {
			parsed.SupplyRisk = supplyRiskFromLabel(cellAt(row, riskCol))
		}
		for _, col := range columns {
			qty, ok := parseQuantity(cellAt(row, col.index))
			if !ok {
				continue
			}
			parsed.Quantities = append(parsed.Quantities, ParsedQuantity{
				SiteName:  col.siteName,
				Condition: col.condition,
				Quantity:  qty,
			})
		}
		out = append(out, parsed)
	}
	return out, nil
}

// findSheet prefiere la hoja cuyo nombre contiene "stock initial" y cae a
// la que contiene "synthese".
func findSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	for _, name := range sheets {
		if strings.Contains(Fold(name), "stock initial") {
			return name
		}
	}
	for _, name := range sheets {
		if strings.Contains(Fold(name), "synthese") {
			return name
		}
	}
	return ""
}

// parseStockHeader reconoce la forma "<sitio> : neuf|occasion". Se descartan
// las columnas de salida y de totales, y las con prefijo "SI " (stock
// inicial histórico, no un sitio).
func parseStockHeader(header string, index int) (stockColumn, bool) {
	folded := Fold(header)
	if strings.HasPrefix(folded, "si ") || strings.Contains(folded, "sortie") || strings.Contains(folded, "total") {
		return stockColumn{}, false
	}
	parts := strings.Split(header, ":")
	if len(parts) != 2 {
		return stockColumn{}, false
	}
	siteName := strings.TrimSpace(parts[0])
	if siteName == "" {
		return stockColumn{}, false
	}
	switch Fold(parts[1]) {
	case labelNew:
		return stockColumn{index: index, siteName: siteName, condition: stock.ConditionNew}, true
	case labelUsed:
		return stockColumn{index: index, siteName: siteName, condition: stock.ConditionUsed}, true
	}
	return stockColumn{}, false
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// parseQuantity acepta enteros y decimales con coma o punto; las celdas
// vacías o no numéricas se ignoran.
func parseQuantity(raw string) (int, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return int(fl), true
	}
	return 0, false
}
