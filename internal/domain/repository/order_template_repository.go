package repository

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// OrderTemplateRepository define el puerto de persistencia para los modelos
// de pedido.
type OrderTemplateRepository interface {
	// Create inserta el modelo y todas sus líneas.
	Create(template *entity.OrderTemplate) error
	// GetByID expande proveedor, sitio destino y líneas con su producto;
	// nil sin error cuando no existe.
	GetByID(id string) (*entity.OrderTemplate, error)
	// List devuelve todos los modelos ordenados por nombre.
	List() ([]*entity.OrderTemplate, error)
	// UpdateHeader persiste los campos de cabecera.
	UpdateHeader(template *entity.OrderTemplate) error
	// ReplaceItems sustituye todas las líneas del modelo por las dadas.
	ReplaceItems(templateID string, items []*entity.OrderTemplateItem) error
	Delete(id string) error
}
