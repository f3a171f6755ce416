package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

func TestCondition_Valid(t *testing.T) {
	assert.True(t, stock.ConditionNew.Valid())
	assert.True(t, stock.ConditionUsed.Valid())
	assert.False(t, stock.Condition("").Valid())
	assert.False(t, stock.Condition("REFURBISHED").Valid())
	assert.False(t, stock.Condition("new").Valid(), "el estado es sensible a mayúsculas")
}

func TestCondition_Counter(t *testing.T) {
	s := &entity.Stock{QuantityNew: 7, QuantityUsed: 3}
	assert.Equal(t, 7, stock.ConditionNew.Counter(s))
	assert.Equal(t, 3, stock.ConditionUsed.Counter(s))
}

func TestCondition_ApplyDelta(t *testing.T) {
	s := &entity.Stock{QuantityNew: 10, QuantityUsed: 5}

	stock.ConditionNew.ApplyDelta(s, 4)
	assert.Equal(t, 14, s.QuantityNew)
	assert.Equal(t, 5, s.QuantityUsed, "el otro contador no debe tocarse")

	stock.ConditionUsed.ApplyDelta(s, -2)
	assert.Equal(t, 14, s.QuantityNew)
	assert.Equal(t, 3, s.QuantityUsed)
}

// Una salida mayor al disponible deja el contador negativo; es la señal de
// pendiente de reaprovisionamiento y no se rechaza.
func TestCondition_ApplyDelta_PermiteNegativo(t *testing.T) {
	s := &entity.Stock{QuantityNew: 2}
	stock.ConditionNew.ApplyDelta(s, -5)
	assert.Equal(t, -3, s.QuantityNew)
}
