package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional
// (IN, OUT, TRANSFER): inserta el movimiento y aplica los ajustes al libro
// mayor en la misma transacción, con Commit/Rollback todo-o-nada.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository // lecturas fuera de tx
	productRepo repository.ProductRepository
	siteRepo    repository.SiteRepository
	publisher   events.Publisher
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	siteRepo repository.SiteRepository,
	publisher events.Publisher,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
		siteRepo:    siteRepo,
		publisher:   publisher,
	}
}

// Record valida la entrada, y dentro de una transacción inserta el movimiento
// y ajusta el contador del estado en cada sitio referenciado: -quantity en el
// origen, +quantity en el destino. Una salida mayor al disponible deja el
// contador negativo (señal de backorder); no se rechaza.
func (uc *RecordMovementUseCase) Record(ctx context.Context, actor events.Actor, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	cond := stock.Condition(in.Condition)
	if err := stock.ValidateMovement(stock.MovementInput{
		Type:         in.Type,
		SourceSiteID: in.SourceSiteID,
		TargetSiteID: in.TargetSiteID,
		Quantity:     in.Quantity,
		Condition:    cond,
	}); err != nil {
		return nil, err
	}

	// Producto y sitios deben existir antes de cualquier mutación.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	for _, siteID := range []*string{in.SourceSiteID, in.TargetSiteID} {
		if siteID == nil || *siteID == "" {
			continue
		}
		site, err := uc.siteRepo.GetByID(*siteID)
		if err != nil {
			return nil, err
		}
		if site == nil {
			return nil, domain.ErrNotFound
		}
	}

	movementDate := in.MovementDate
	if movementDate.IsZero() {
		movementDate = time.Now()
	}
	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Type:         in.Type,
		SourceSiteID: in.SourceSiteID,
		TargetSiteID: in.TargetSiteID,
		Quantity:     in.Quantity,
		Condition:    string(cond),
		MovementDate: movementDate,
		Operator:     in.Operator,
		Comment:      in.Comment,
		CreatedAt:    time.Now(),
	}

	// Movimiento + ajustes en una sola transacción; cualquier fallo revierte todo.
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if movement.SourceSiteID != nil {
			if err := stockRepo.Adjust(movement.ProductID, *movement.SourceSiteID, cond, -movement.Quantity); err != nil {
				return err
			}
		}
		if movement.TargetSiteID != nil {
			if err := stockRepo.Adjust(movement.ProductID, *movement.TargetSiteID, cond, movement.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Relectura expandida para la respuesta (producto y sitios). El movimiento
	// ya está confirmado: si la relectura falla se responde con los datos
	// locales, sin expansión de sitios.
	created, err := uc.movRepo.GetByID(movement.ID)
	if err != nil {
		log.Warn().Err(err).Str("movement_id", movement.ID).Msg("relectura del movimiento tras commit falló")
	}
	if err != nil || created == nil {
		created = movement
		created.Product = product
	}

	out := dto.NewMovementResponse(created)
	uc.publisher.Publish(events.Event{
		ID:        movement.ID,
		Table:     "stock_movements",
		Action:    events.ActionInserted,
		Data:      out,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
	return out, nil
}

// GetByID devuelve un movimiento con sus relaciones expandidas.
func (uc *RecordMovementUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewMovementResponse(m), nil
}

// List devuelve movimientos filtrados y paginados, más recientes primero.
func (uc *RecordMovementUseCase) List(q dto.MovementQuery) ([]*dto.MovementResponse, dto.PageResponse, error) {
	q.DefaultPage()
	list, total, err := uc.movRepo.List(repository.MovementFilters{
		ProductID: q.ProductID,
		Type:      q.Type,
		SiteID:    q.SiteID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Operator:  q.Operator,
	}, q.Page, q.Limit)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out, dto.NewPageResponse(q.Page, q.Limit, total), nil
}
