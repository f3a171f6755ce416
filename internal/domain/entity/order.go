package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa un pedido a proveedor. OrderNumber tiene la forma
// CMD-<año>-<secuencia de 4 dígitos>, reiniciada por año calendario.
type Order struct {
	ID                string
	OrderNumber       string
	SupplierID        string
	Title             string
	Status            string
	OrderDate         time.Time
	ExpectedDate      *time.Time
	ReceivedDate      *time.Time
	DestinationSiteID *string
	Responsible       string
	SupplierRef       string
	Comment           string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []*OrderItem

	// Expansión opcional para respuestas.
	Supplier        *Supplier
	DestinationSite *Site
}

// OrderItem es una línea de pedido. ReceivedQty permanece nil hasta la
// recepción y se fija exactamente una vez; recepcionar dos veces se rechaza.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	Quantity     int
	UnitPrice    *decimal.Decimal
	ReceivedQty  *int
	ReceivedDate *time.Time
	Condition    *string

	Product *Product
}

// Received indica si la línea ya fue recepcionada.
func (i *OrderItem) Received() bool {
	return i.ReceivedQty != nil
}

// AllReceived indica si todas las líneas del pedido están recepcionadas.
func (o *Order) AllReceived() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, it := range o.Items {
		if !it.Received() {
			return false
		}
	}
	return true
}
