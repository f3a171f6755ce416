package entity

import "time"

// Niveles de riesgo de aprovisionamiento de un producto.
const (
	SupplyRiskHigh   = "HIGH"
	SupplyRiskMedium = "MEDIUM"
	SupplyRiskLow    = "LOW"
)

// Product representa una pieza del inventario, identificada por su referencia
// única legible. QtyPerUnit es la cantidad necesaria para armar una borne.
type Product struct {
	ID          string
	Reference   string // código único, siempre en mayúsculas
	Description string
	QtyPerUnit  int
	SupplyRisk  string // HIGH | MEDIUM | LOW | "" (sin clasificar)
	Location    string
	MinStock    *int
	Comment     string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
