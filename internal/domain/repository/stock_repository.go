package repository

import (
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// StockRepository define el puerto del libro mayor (fila por producto+sitio).
// Adjust debe ejecutarse dentro de la misma transacción que el movimiento que
// lo causa; el upsert es una sola sentencia atómica en la implementación.
type StockRepository interface {
	// Get devuelve la fila; si no existe, una fila con contadores en cero.
	Get(productID, siteID string) (*entity.Stock, error)
	// Adjust suma delta (con signo) al contador del estado dado, creando la
	// fila si no existe. No rechaza resultados negativos.
	Adjust(productID, siteID string, condition stock.Condition, delta int) error
	// Set fija ambos contadores en valores absolutos (solo importación masiva).
	Set(s *entity.Stock) error
	ListAll() ([]*entity.Stock, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	ListBySite(siteID string) ([]*entity.Stock, error)
}
