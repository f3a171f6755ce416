// Package stock contiene las reglas puras del libro mayor: estados de las
// piezas y la tabla de validación tipo/origen/destino de los movimientos.
package stock

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// Condition es la segunda dimensión del stock, separada de producto y sitio.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

// Valid indica si el estado es uno de los aceptados.
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Counter devuelve el contador de la fila de stock que corresponde al estado.
// La selección es un mapeo explícito, nunca acceso por nombre de campo.
func (c Condition) Counter(s *entity.Stock) int {
	if c == ConditionUsed {
		return s.QuantityUsed
	}
	return s.QuantityNew
}

// ApplyDelta suma delta al contador del estado sobre la fila dada.
func (c Condition) ApplyDelta(s *entity.Stock, delta int) {
	if c == ConditionUsed {
		s.QuantityUsed += delta
		return
	}
	s.QuantityNew += delta
}
