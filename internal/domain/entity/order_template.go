package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderTemplate es un modelo de pedido reutilizable: proveedor, destino y
// líneas precargadas para los reaprovisionamientos recurrentes. No participa
// de la numeración ni del ciclo de recepción; solo sirve de base al crear un
// pedido real.
type OrderTemplate struct {
	ID                string
	Name              string
	SupplierID        string
	DestinationSiteID *string
	Responsible       string
	Comment           string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []*OrderTemplateItem

	Supplier        *Supplier
	DestinationSite *Site
}

// OrderTemplateItem es una línea del modelo.
type OrderTemplateItem struct {
	ID         string
	TemplateID string
	ProductID  string
	Quantity   int
	UnitPrice  *decimal.Decimal

	Product *Product
}
