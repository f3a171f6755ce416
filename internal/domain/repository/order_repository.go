package repository

import (
	"time"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// OrderFilters filtros de listado de pedidos.
type OrderFilters struct {
	Status     string
	SupplierID string
	ProductID  string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // número de pedido o título, insensible a mayúsculas
}

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta el pedido y todas sus líneas.
	Create(order *entity.Order) error
	// GetByID expande proveedor, sitio destino y líneas con su producto.
	GetByID(id string) (*entity.Order, error)
	List(f OrderFilters, page, limit int) ([]*entity.Order, int, error)
	// UpdateHeader persiste los campos de cabecera (incluido el estado).
	UpdateHeader(order *entity.Order) error
	Delete(id string) error

	// NextSequence devuelve la siguiente secuencia del año en una sola
	// sentencia atómica sobre la tabla order_sequences.
	NextSequence(year int) (int, error)
	// MarkItemReceived fija recepción de la línea solo si sigue pendiente
	// (UPDATE condicionado a received_qty IS NULL); devuelve false si la
	// línea ya estaba recepcionada.
	MarkItemReceived(itemID string, qty int, date time.Time, condition stock.Condition) (bool, error)
	ItemsByOrder(orderID string) ([]*entity.OrderItem, error)
	// Complete promueve el pedido a COMPLETED y estampa receivedDate.
	Complete(orderID string, receivedDate time.Time) error
}
