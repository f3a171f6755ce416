package orders

import (
	"context"

	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de pedidos, movimientos y stock atados a esa tx. La recepción de una línea
// (actualización + movimiento IN + ajuste + chequeo de completitud) es
// atómica: no existe estado de éxito parcial.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}
