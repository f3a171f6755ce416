package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada: requiere sitio destino
	MovementTypeOUT      = "OUT"      // salida: requiere sitio origen
	MovementTypeTRANSFER = "TRANSFER" // traslado: requiere origen y destino
)

// StockMovement es el registro inmutable de un cambio de cantidad. Cada
// movimiento produce exactamente un ajuste con signo por sitio referenciado:
// -quantity en el origen, +quantity en el destino, siempre sobre el contador
// del estado (Condition) del movimiento.
type StockMovement struct {
	ID           string
	ProductID    string
	Type         string // IN | OUT | TRANSFER
	SourceSiteID *string
	TargetSiteID *string
	Quantity     int // siempre positivo
	Condition    string
	MovementDate time.Time
	Operator     string
	Comment      string
	CreatedAt    time.Time

	// Expansión opcional para respuestas.
	Product    *Product
	SourceSite *Site
	TargetSite *Site
}
