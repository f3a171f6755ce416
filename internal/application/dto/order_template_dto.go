package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderTemplateRequest entrada para crear un modelo de pedido.
type CreateOrderTemplateRequest struct {
	Name              string           `json:"name"`
	SupplierID        string           `json:"supplierId"`
	DestinationSiteID *string          `json:"destinationSiteId"`
	Responsible       string           `json:"responsible"`
	Comment           string           `json:"comment"`
	Items             []OrderItemInput `json:"items"`
}

// UpdateOrderTemplateRequest entrada para actualizar un modelo. Items no nil
// y no vacío sustituye todas las líneas.
type UpdateOrderTemplateRequest struct {
	Name              *string          `json:"name"`
	SupplierID        *string          `json:"supplierId"`
	DestinationSiteID *string          `json:"destinationSiteId"`
	Responsible       *string          `json:"responsible"`
	Comment           *string          `json:"comment"`
	Items             []OrderItemInput `json:"items"`
}

// OrderTemplateItemResponse salida de una línea del modelo.
type OrderTemplateItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// OrderTemplateResponse salida de un modelo con relaciones expandidas.
type OrderTemplateResponse struct {
	ID                string                      `json:"id"`
	Name              string                      `json:"name"`
	SupplierID        string                      `json:"supplierId"`
	DestinationSiteID *string                     `json:"destinationSiteId,omitempty"`
	Responsible       string                      `json:"responsible,omitempty"`
	Comment           string                      `json:"comment,omitempty"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
	Items             []OrderTemplateItemResponse `json:"items"`
	Supplier          *SupplierResponse           `json:"supplier,omitempty"`
	DestinationSite   *SiteResponse               `json:"destinationSite,omitempty"`
}
