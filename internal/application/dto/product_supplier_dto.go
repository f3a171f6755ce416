package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddProductSupplierRequest entrada para vincular un proveedor a un producto.
type AddProductSupplierRequest struct {
	SupplierID   string           `json:"supplierId"`
	SupplierRef  string           `json:"supplierRef"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	LeadTime     *int             `json:"leadTime"`
	ProductURL   string           `json:"productUrl"`
	ShippingCost *decimal.Decimal `json:"shippingCost"`
	IsPrimary    bool             `json:"isPrimary"`
}

// ProductSupplierResponse salida de un vínculo producto-proveedor.
type ProductSupplierResponse struct {
	ProductID    string            `json:"productId"`
	SupplierID   string            `json:"supplierId"`
	SupplierRef  string            `json:"supplierRef,omitempty"`
	UnitPrice    *decimal.Decimal  `json:"unitPrice,omitempty"`
	LeadTime     *int              `json:"leadTime,omitempty"`
	ProductURL   string            `json:"productUrl,omitempty"`
	ShippingCost *decimal.Decimal  `json:"shippingCost,omitempty"`
	IsPrimary    bool              `json:"isPrimary"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Supplier     *SupplierResponse `json:"supplier,omitempty"`
}
