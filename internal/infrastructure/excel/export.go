package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
)

// Nombres de hoja del libro exportado.
const (
	SheetSynthese  = "SYNTHESE"
	SheetMovements = "Mouvements"
)

// Builder arma los libros de exportación. Satisface los puertos de la capa
// de aplicación.
type Builder struct{}

// NewBuilder construye el generador de libros.
func NewBuilder() *Builder {
	return &Builder{}
}

// StocksWorkbook genera la hoja SYNTHESE: una fila por producto, columnas
// fijas del catálogo, un par de columnas neuf/occasion por sitio STORAGE y
// los totales al final.
func (b *Builder) StocksWorkbook(products []*entity.Product, sites []*entity.Site, stocks []*entity.Stock) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", SheetSynthese)

	headers := []string{"Référence produit", "Description", "Qté 1 borne", "Risque appro", "Emplacement"}
	for _, s := range sites {
		headers = append(headers,
			fmt.Sprintf("%s : %s", s.Name, labelNew),
			fmt.Sprintf("%s : %s", s.Name, labelUsed),
		)
	}
	headers = append(headers, "Stock total neuf", "Stock total occasion", "Stock total", "Bornes possibles avec stock")
	if err := writeHeaderRow(f, SheetSynthese, headers); err != nil {
		return nil, err
	}

	// Índice producto → sitio → fila del libro mayor.
	bySite := make(map[string]map[string]*entity.Stock)
	for _, st := range stocks {
		m, ok := bySite[st.ProductID]
		if !ok {
			m = make(map[string]*entity.Stock)
			bySite[st.ProductID] = m
		}
		m[st.SiteID] = st
	}

	for i, p := range products {
		row := i + 2
		totalNew, totalUsed := 0, 0
		values := []any{p.Reference, p.Description, p.QtyPerUnit, supplyRiskLabel(p.SupplyRisk), p.Location}
		for _, s := range sites {
			qtyNew, qtyUsed := 0, 0
			if st, ok := bySite[p.ID][s.ID]; ok {
				qtyNew, qtyUsed = st.QuantityNew, st.QuantityUsed
			}
			totalNew += qtyNew
			totalUsed += qtyUsed
			values = append(values, qtyNew, qtyUsed)
		}
		total := totalNew + totalUsed
		possible := 0
		if p.QtyPerUnit > 0 {
			possible = total / p.QtyPerUnit
		}
		values = append(values, totalNew, totalUsed, total, possible)
		if err := writeRow(f, SheetSynthese, row, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("generando libro de stocks: %w", err)
	}
	return buf.Bytes(), nil
}

// MovementsWorkbook genera la hoja Mouvements con el histórico recibido, en
// el orden en que llega (más recientes primero).
func (b *Builder) MovementsWorkbook(movements []*entity.StockMovement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", SheetMovements)

	headers := []string{"Date", "Produit", "Type", "Source", "Destination", "Quantité", "État", "Opérateur", "Commentaire"}
	if err := writeHeaderRow(f, SheetMovements, headers); err != nil {
		return nil, err
	}

	for i, m := range movements {
		row := i + 2
		values := []any{
			m.MovementDate.Format("02/01/2006"),
			movementProductLabel(m),
			movementTypeLabel(m.Type),
			siteConditionLabel(m.SourceSite, m.SourceSiteID, m.Condition),
			siteConditionLabel(m.TargetSite, m.TargetSiteID, m.Condition),
			m.Quantity,
			conditionLabel(m.Condition),
			m.Operator,
			m.Comment,
		}
		if err := writeRow(f, SheetMovements, row, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("generando libro de movimientos: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func movementProductLabel(m *entity.StockMovement) string {
	if m.Product != nil {
		return m.Product.Reference
	}
	return m.ProductID
}

func movementTypeLabel(t string) string {
	switch t {
	case entity.MovementTypeIN:
		return typeLabelIn
	case entity.MovementTypeOUT:
		return typeLabelOut
	case entity.MovementTypeTRANSFER:
		return typeLabelTrsf
	}
	return t
}

func conditionLabel(condition string) string {
	if condition == "USED" {
		return "Occasion"
	}
	return "Neuf"
}

// siteConditionLabel produce "<sitio> : neuf|occasion" o cadena vacía si el
// movimiento no tiene ese extremo.
func siteConditionLabel(site *entity.Site, siteID *string, condition string) string {
	if siteID == nil {
		return ""
	}
	name := *siteID
	if site != nil {
		name = site.Name
	}
	label := labelNew
	if condition == "USED" {
		label = labelUsed
	}
	return fmt.Sprintf("%s : %s", name, label)
}
