package repository

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(search string, page, limit int) ([]*entity.Supplier, int, error)
	Delete(id string) error
}
