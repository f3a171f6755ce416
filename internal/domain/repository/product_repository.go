package repository

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// ProductFilters filtros de listado de productos.
type ProductFilters struct {
	Search     string // referencia o descripción, insensible a mayúsculas
	SupplyRisk string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByReference(reference string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List pagina por página/límite; limit <= 0 devuelve todas las filas
	// (exportación).
	List(f ProductFilters, page, limit int) ([]*entity.Product, int, error)
	ListBySupplyRisk(risk string) ([]*entity.Product, error)
	Delete(id string) error
}
