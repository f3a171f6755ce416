package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSupplier vincula un producto con uno de sus proveedores y guarda las
// condiciones de compra. Como máximo un vínculo por producto es el principal
// (IsPrimary): es el proveedor que acompaña a las alertas de stock.
type ProductSupplier struct {
	ProductID    string
	SupplierID   string
	SupplierRef  string // referencia del producto en el catálogo del proveedor
	UnitPrice    *decimal.Decimal
	LeadTime     *int // plazo de entrega en días
	ProductURL   string
	ShippingCost *decimal.Decimal
	IsPrimary    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier
}
