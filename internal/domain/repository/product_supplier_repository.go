package repository

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// ProductSupplierRepository define el puerto de persistencia para los
// vínculos producto-proveedor.
type ProductSupplierRepository interface {
	Create(link *entity.ProductSupplier) error
	// Get devuelve nil sin error cuando el vínculo no existe.
	Get(productID, supplierID string) (*entity.ProductSupplier, error)
	// ListByProduct devuelve los vínculos con el proveedor expandido, el
	// principal primero.
	ListByProduct(productID string) ([]*entity.ProductSupplier, error)
	// PrimaryByProduct devuelve el vínculo principal, o nil si no hay.
	PrimaryByProduct(productID string) (*entity.ProductSupplier, error)
	// SetPrimary marca el vínculo como principal y desmarca el resto de
	// vínculos del producto en la misma sentencia lógica.
	SetPrimary(productID, supplierID string) error
	Delete(productID, supplierID string) error
}
