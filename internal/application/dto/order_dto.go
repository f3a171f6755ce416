package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea de un pedido nuevo.
type OrderItemInput struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	SupplierID        string           `json:"supplierId"`
	Title             string           `json:"title"`
	OrderDate         time.Time        `json:"orderDate"`
	ExpectedDate      *time.Time       `json:"expectedDate"`
	DestinationSiteID *string          `json:"destinationSiteId"`
	Responsible       string           `json:"responsible"`
	SupplierRef       string           `json:"supplierRef"`
	Comment           string           `json:"comment"`
	CreatedBy         string           `json:"createdBy"`
	Items             []OrderItemInput `json:"items"`
}

// UpdateOrderRequest entrada para actualizar la cabecera de un pedido.
type UpdateOrderRequest struct {
	Title             *string    `json:"title"`
	OrderDate         *time.Time `json:"orderDate"`
	ExpectedDate      *time.Time `json:"expectedDate"`
	DestinationSiteID *string    `json:"destinationSiteId"`
	Responsible       *string    `json:"responsible"`
	SupplierRef       *string    `json:"supplierRef"`
	Comment           *string    `json:"comment"`
	Status            *string    `json:"status"` // PENDING | COMPLETED | CANCELLED
}

// ReceiveItemRequest entrada para recepcionar una línea de pedido.
// SiteID tiene precedencia sobre el sitio destino almacenado en el pedido.
type ReceiveItemRequest struct {
	ReceivedDate time.Time `json:"receivedDate"`
	ReceivedQty  int       `json:"receivedQty"`
	Condition    string    `json:"condition"` // NEW | USED, por defecto NEW
	SiteID       *string   `json:"siteId"`
	Comment      string    `json:"comment"`
}

// ReceiveAllItemInput línea designada en una recepción por lote.
type ReceiveAllItemInput struct {
	ItemID      string `json:"itemId"`
	ReceivedQty int    `json:"receivedQty"`
	Condition   string `json:"condition"`
}

// ReceiveAllRequest entrada para recepcionar un subconjunto de líneas.
type ReceiveAllRequest struct {
	ReceivedDate time.Time             `json:"receivedDate"`
	SiteID       *string               `json:"siteId"`
	Comment      string                `json:"comment"`
	Items        []ReceiveAllItemInput `json:"items"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"productId"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	ReceivedQty  *int             `json:"receivedQty"`
	ReceivedDate *time.Time       `json:"receivedDate,omitempty"`
	Condition    *string          `json:"condition,omitempty"`
	Product      *ProductResponse `json:"product,omitempty"`
}

// OrderResponse salida de un pedido con relaciones expandidas.
type OrderResponse struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	SupplierID        string              `json:"supplierId"`
	Title             string              `json:"title,omitempty"`
	Status            string              `json:"status"`
	OrderDate         time.Time           `json:"orderDate"`
	ExpectedDate      *time.Time          `json:"expectedDate,omitempty"`
	ReceivedDate      *time.Time          `json:"receivedDate,omitempty"`
	DestinationSiteID *string             `json:"destinationSiteId,omitempty"`
	Responsible       string              `json:"responsible,omitempty"`
	SupplierRef       string              `json:"supplierRef,omitempty"`
	Comment           string              `json:"comment,omitempty"`
	CreatedBy         string              `json:"createdBy,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	Items             []OrderItemResponse `json:"items"`
	Supplier          *SupplierResponse   `json:"supplier,omitempty"`
	DestinationSite   *SiteResponse       `json:"destinationSite,omitempty"`
}

// OrderQuery filtros de listado de pedidos.
type OrderQuery struct {
	PageRequest
	Status     string     `query:"status"`
	SupplierID string     `query:"supplierId"`
	ProductID  string     `query:"productId"`
	StartDate  *time.Time `query:"startDate"`
	EndDate    *time.Time `query:"endDate"`
	Search     string     `query:"search"`
}
