package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/ordernum"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// UseCase cubre el ciclo de vida de los pedidos a proveedor: creación con
// numeración por año, recepción de líneas (que registra movimientos IN y
// ajusta el libro mayor), promoción a COMPLETED y eliminación protegida.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository // lecturas fuera de tx
	supplierRepo repository.SupplierRepository
	siteRepo     repository.SiteRepository
	publisher    events.Publisher

	// Reloj inyectable: la asignación de número de pedido depende del año en
	// curso y debe ser determinista bajo test.
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	supplierRepo repository.SupplierRepository,
	siteRepo repository.SiteRepository,
	publisher events.Publisher,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		siteRepo:     siteRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create crea el pedido y sus líneas en estado PENDING. El número se asigna
// dentro de la misma transacción con el contador atómico por año de
// order_sequences, por lo que dos creaciones concurrentes nunca comparten
// secuencia.
func (uc *UseCase) Create(ctx context.Context, actor events.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.DestinationSiteID != nil && *in.DestinationSiteID != "" {
		site, err := uc.siteRepo.GetByID(*in.DestinationSiteID)
		if err != nil {
			return nil, err
		}
		if site == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.Order{
		ID:                uuid.New().String(),
		SupplierID:        in.SupplierID,
		Title:             in.Title,
		Status:            entity.OrderStatusPending,
		OrderDate:         orderDate,
		ExpectedDate:      in.ExpectedDate,
		DestinationSiteID: in.DestinationSiteID,
		Responsible:       in.Responsible,
		SupplierRef:       in.SupplierRef,
		Comment:           in.Comment,
		CreatedBy:         in.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	year := now.Year()
	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
	) error {
		seq, err := orderRepo.NextSequence(year)
		if err != nil {
			return err
		}
		order.OrderNumber = ordernum.Format(year, seq)
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.orderRepo.GetByID(order.ID)
	if err != nil || created == nil {
		created = order
	}
	out := dto.NewOrderResponse(created)
	uc.publish(order.ID, events.ActionInserted, out, actor)
	return out, nil
}

// GetByID devuelve un pedido con proveedor, sitio destino y líneas expandidas.
func (uc *UseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewOrderResponse(order), nil
}

// List devuelve pedidos filtrados y paginados, más recientes primero.
func (uc *UseCase) List(q dto.OrderQuery) ([]*dto.OrderResponse, dto.PageResponse, error) {
	q.DefaultPage()
	list, total, err := uc.orderRepo.List(repository.OrderFilters{
		Status:     q.Status,
		SupplierID: q.SupplierID,
		ProductID:  q.ProductID,
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Search:     q.Search,
	}, q.Page, q.Limit)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, dto.NewPageResponse(q.Page, q.Limit, total), nil
}

// Update actualiza la cabecera; el paso PENDING → CANCELLED solo ocurre por
// aquí, nunca por el flujo de recepción.
func (uc *UseCase) Update(ctx context.Context, actor events.Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		order.Title = *in.Title
	}
	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}
	if in.ExpectedDate != nil {
		order.ExpectedDate = in.ExpectedDate
	}
	if in.DestinationSiteID != nil {
		order.DestinationSiteID = in.DestinationSiteID
	}
	if in.Responsible != nil {
		order.Responsible = *in.Responsible
	}
	if in.SupplierRef != nil {
		order.SupplierRef = *in.SupplierRef
	}
	if in.Comment != nil {
		order.Comment = *in.Comment
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
			order.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	order.UpdatedAt = uc.now()
	if err := uc.orderRepo.UpdateHeader(order); err != nil {
		return nil, err
	}
	updated, err := uc.orderRepo.GetByID(id)
	if err != nil || updated == nil {
		updated = order
	}
	out := dto.NewOrderResponse(updated)
	uc.publish(id, events.ActionUpdated, out, actor)
	return out, nil
}

// ReceiveItem recepciona una línea: fija receivedQty/fecha/estado, registra
// el movimiento IN hacia el sitio resuelto, ajusta el libro mayor y, si con
// esto todas las líneas quedan recepcionadas, promueve el pedido a COMPLETED.
// Todo dentro de una transacción. Una línea ya recepcionada se rechaza sin
// tocar el libro mayor.
func (uc *UseCase) ReceiveItem(ctx context.Context, actor events.Actor, orderID, itemID string, in dto.ReceiveItemRequest) (*dto.OrderResponse, error) {
	if in.ReceivedQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	cond := stock.Condition(in.Condition)
	if in.Condition == "" {
		cond = stock.ConditionNew
	}
	if !cond.Valid() {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	var item *entity.OrderItem
	for _, it := range order.Items {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Received() {
		return nil, domain.ErrAlreadyReceived
	}

	siteID, err := uc.resolveDestination(order, in.SiteID)
	if err != nil {
		return nil, err
	}
	receivedDate := in.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = uc.now()
	}

	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		return uc.receiveOne(orderRepo, movRepo, stockRepo, order, item.ID, receiveLine{
			qty:       in.ReceivedQty,
			condition: cond,
			date:      receivedDate,
			siteID:    siteID,
			comment:   in.Comment,
		})
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	out := dto.NewOrderResponse(updated)
	uc.publish(orderID, events.ActionUpdated, out, actor)
	return out, nil
}

// ReceiveAll recepciona un subconjunto de líneas pendientes en un solo paso.
// El pedido debe estar PENDING y cada línea nombrada debe existir y seguir
// pendiente; cualquier incumplimiento revierte el lote completo.
func (uc *UseCase) ReceiveAll(ctx context.Context, actor events.Actor, orderID string, in dto.ReceiveAllRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrConflict
	}

	pending := make(map[string]*entity.OrderItem, len(order.Items))
	for _, it := range order.Items {
		if !it.Received() {
			pending[it.ID] = it
		}
	}
	lines := make([]receiveLine, 0, len(in.Items))
	siteID, err := uc.resolveDestination(order, in.SiteID)
	if err != nil {
		return nil, err
	}
	receivedDate := in.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = uc.now()
	}
	for _, reqItem := range in.Items {
		if _, ok := pending[reqItem.ItemID]; !ok {
			return nil, domain.ErrNotFound
		}
		if reqItem.ReceivedQty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		cond := stock.Condition(reqItem.Condition)
		if reqItem.Condition == "" {
			cond = stock.ConditionNew
		}
		if !cond.Valid() {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, receiveLine{
			itemID:    reqItem.ItemID,
			qty:       reqItem.ReceivedQty,
			condition: cond,
			date:      receivedDate,
			siteID:    siteID,
			comment:   in.Comment,
		})
	}

	err = uc.txRunner.RunOrders(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		for _, line := range lines {
			if err := uc.receiveOne(orderRepo, movRepo, stockRepo, order, line.itemID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	out := dto.NewOrderResponse(updated)
	uc.publish(orderID, events.ActionUpdated, out, actor)
	return out, nil
}

// Delete elimina un pedido solo si no está COMPLETED y ninguna línea tiene
// cantidad recepcionada; las líneas caen en cascada.
func (uc *UseCase) Delete(ctx context.Context, actor events.Actor, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCompleted {
		return domain.ErrOrderNotDeletable
	}
	for _, it := range order.Items {
		if it.ReceivedQty != nil && *it.ReceivedQty > 0 {
			return domain.ErrOrderNotDeletable
		}
	}
	if err := uc.orderRepo.Delete(id); err != nil {
		return err
	}
	uc.publish(id, events.ActionDeleted, dto.NewOrderResponse(order), actor)
	return nil
}

// receiveLine parámetros de recepción de una línea concreta.
type receiveLine struct {
	itemID    string
	qty       int
	condition stock.Condition
	date      time.Time
	siteID    string
	comment   string
}

// receiveOne ejecuta, con los repos de la transacción, la recepción de una
// línea: UPDATE condicionado a received_qty IS NULL (la segunda recepción
// concurrente pierde a nivel de sentencia), movimiento IN, ajuste +qty y
// chequeo de completitud del pedido.
func (uc *UseCase) receiveOne(
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	order *entity.Order,
	itemID string,
	line receiveLine,
) error {
	updated, err := orderRepo.MarkItemReceived(itemID, line.qty, line.date, line.condition)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrAlreadyReceived
	}

	var productID string
	for _, it := range order.Items {
		if it.ID == itemID {
			productID = it.ProductID
			break
		}
	}

	comment := line.comment
	if comment == "" {
		comment = fmt.Sprintf("Recepción pedido %s", order.OrderNumber)
	}
	siteID := line.siteID
	movement := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Type:         entity.MovementTypeIN,
		TargetSiteID: &siteID,
		Quantity:     line.qty,
		Condition:    string(line.condition),
		MovementDate: line.date,
		Operator:     order.Responsible,
		Comment:      comment,
		CreatedAt:    uc.now(),
	}
	if err := movRepo.Create(movement); err != nil {
		return err
	}
	if err := stockRepo.Adjust(productID, siteID, line.condition, line.qty); err != nil {
		return err
	}

	// Relee las líneas dentro de la tx: si todas quedaron recepcionadas el
	// pedido pasa a COMPLETED con la fecha de esta recepción.
	items, err := orderRepo.ItemsByOrder(order.ID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if !it.Received() {
			return nil
		}
	}
	return orderRepo.Complete(order.ID, line.date)
}

// resolveDestination aplica la precedencia: parámetro explícito sobre el
// sitio destino almacenado en el pedido; sin ninguno, la recepción se rechaza.
func (uc *UseCase) resolveDestination(order *entity.Order, explicit *string) (string, error) {
	if explicit != nil && *explicit != "" {
		site, err := uc.siteRepo.GetByID(*explicit)
		if err != nil {
			return "", err
		}
		if site == nil {
			return "", domain.ErrNotFound
		}
		return *explicit, nil
	}
	if order.DestinationSiteID != nil && *order.DestinationSiteID != "" {
		return *order.DestinationSiteID, nil
	}
	return "", domain.ErrNoDestination
}

func (uc *UseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "orders",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}
