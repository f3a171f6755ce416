package repository

import (
	"time"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
)

// MovementFilters filtros de listado de movimientos. SiteID casa contra el
// sitio origen O el destino.
type MovementFilters struct {
	ProductID string
	Type      string
	SiteID    string
	StartDate *time.Time
	EndDate   *time.Time
	Operator  string // subcadena, insensible a mayúsculas
}

// StockMovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// GetByID expande producto y sitios origen/destino para la respuesta.
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve los movimientos más recientes primero; limit <= 0
	// devuelve todas las filas (exportación).
	List(f MovementFilters, page, limit int) ([]*entity.StockMovement, int, error)
}
