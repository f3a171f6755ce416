package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/application/orders"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrderRepo guarda pedidos en memoria. GetByID devuelve copias de la
// cabecera y de las líneas, como lo haría una relectura de base de datos.
type fakeOrderRepo struct {
	orders    map[string]*entity.Order
	sequences map[int]int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order), sequences: make(map[int]int)}
}

func (f *fakeOrderRepo) Create(order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	stored, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	cp.Items = make([]*entity.OrderItem, 0, len(stored.Items))
	for _, it := range stored.Items {
		itemCp := *it
		cp.Items = append(cp.Items, &itemCp)
	}
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ repository.OrderFilters, _, _ int) ([]*entity.Order, int, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) UpdateHeader(order *entity.Order) error {
	stored, ok := f.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	items := stored.Items
	cp := *order
	cp.Items = items
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Delete(id string) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) NextSequence(year int) (int, error) {
	f.sequences[year]++
	return f.sequences[year], nil
}

func (f *fakeOrderRepo) MarkItemReceived(itemID string, qty int, date time.Time, condition stock.Condition) (bool, error) {
	for _, o := range f.orders {
		for _, it := range o.Items {
			if it.ID != itemID {
				continue
			}
			if it.ReceivedQty != nil {
				return false, nil
			}
			cond := string(condition)
			it.ReceivedQty = &qty
			it.ReceivedDate = &date
			it.Condition = &cond
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	return o.Items, nil
}

func (f *fakeOrderRepo) Complete(orderID string, receivedDate time.Time) error {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderStatusCompleted
	o.ReceivedDate = &receivedDate
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(_ repository.MovementFilters, _, _ int) ([]*entity.StockMovement, int, error) {
	return f.movements, len(f.movements), nil
}

type stockKey struct {
	productID string
	siteID    string
}

type fakeStockRepo struct {
	rows map[stockKey]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[stockKey]*entity.Stock)}
}

func (f *fakeStockRepo) Get(productID, siteID string) (*entity.Stock, error) {
	if s, ok := f.rows[stockKey{productID, siteID}]; ok {
		return s, nil
	}
	return &entity.Stock{ProductID: productID, SiteID: siteID}, nil
}

func (f *fakeStockRepo) Adjust(productID, siteID string, condition stock.Condition, delta int) error {
	key := stockKey{productID, siteID}
	s, ok := f.rows[key]
	if !ok {
		s = &entity.Stock{ProductID: productID, SiteID: siteID}
		f.rows[key] = s
	}
	condition.ApplyDelta(s, delta)
	return nil
}

func (f *fakeStockRepo) Set(s *entity.Stock) error {
	f.rows[stockKey{s.ProductID, s.SiteID}] = s
	return nil
}

func (f *fakeStockRepo) ListAll() ([]*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) ListByProduct(string) ([]*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) ListBySite(string) ([]*entity.Stock, error) { return nil, nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error { f.suppliers[s.ID] = s; return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) { return f.suppliers[id], nil }
func (f *fakeSupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	for _, s := range f.suppliers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSupplierRepo) Update(s *entity.Supplier) error { f.suppliers[s.ID] = s; return nil }
func (f *fakeSupplierRepo) List(string, int, int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}
func (f *fakeSupplierRepo) Delete(id string) error { delete(f.suppliers, id); return nil }

type fakeSiteRepo struct {
	sites map[string]*entity.Site
}

func (f *fakeSiteRepo) Create(s *entity.Site) error { f.sites[s.ID] = s; return nil }
func (f *fakeSiteRepo) GetByID(id string) (*entity.Site, error) { return f.sites[id], nil }
func (f *fakeSiteRepo) GetByName(name string) (*entity.Site, error) {
	for _, s := range f.sites {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}
func (f *fakeSiteRepo) Update(s *entity.Site) error { f.sites[s.ID] = s; return nil }
func (f *fakeSiteRepo) List(bool) ([]*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) ListByType(string) ([]*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) Delete(id string) error { delete(f.sites, id); return nil }

type fakeTxRunner struct {
	orderRepo repository.OrderRepository
	movRepo   repository.StockMovementRepository
	stockRepo repository.StockRepository
}

func (f *fakeTxRunner) RunOrders(_ context.Context, fn func(
	repository.OrderRepository,
	repository.StockMovementRepository,
	repository.StockRepository,
) error) error {
	return fn(f.orderRepo, f.movRepo, f.stockRepo)
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(e events.Event) { f.published = append(f.published, e) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID = "55555555-5555-5555-5555-555555555555"
	productAID = "11111111-1111-1111-1111-111111111111"
	productBID = "22222222-2222-2222-2222-222222222222"
	siteAID    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	siteBID    = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	uc        *orders.UseCase
	orderRepo *fakeOrderRepo
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	movRepo := &fakeMovementRepo{}
	stockRepo := newFakeStockRepo()
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Proveedor Uno"},
	}}
	siteRepo := &fakeSiteRepo{sites: map[string]*entity.Site{
		siteAID: {ID: siteAID, Name: "Almacén A", Type: entity.SiteTypeStorage, IsActive: true},
		siteBID: {ID: siteBID, Name: "Almacén B", Type: entity.SiteTypeStorage, IsActive: true},
	}}
	publisher := &fakePublisher{}
	uc := orders.NewUseCase(
		&fakeTxRunner{orderRepo: orderRepo, movRepo: movRepo, stockRepo: stockRepo},
		orderRepo, supplierRepo, siteRepo, publisher,
	).WithClock(func() time.Time { return fixedNow })
	return &fixture{uc: uc, orderRepo: orderRepo, movRepo: movRepo, stockRepo: stockRepo, publisher: publisher}
}

func siteRef(id string) *string { return &id }

// createOrder crea un pedido de dos líneas con destino Almacén A.
func (f *fixture) createOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), events.Actor{ID: "u1"}, dto.CreateOrderRequest{
		SupplierID:        supplierID,
		Title:             "Reposición bornes",
		DestinationSiteID: siteRef(siteAID),
		Responsible:       "mgarcia",
		Items: []dto.OrderItemInput{
			{ProductID: productAID, Quantity: 10},
			{ProductID: productBID, Quantity: 4},
		},
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaNumeroSecuencialPorAnio(t *testing.T) {
	f := newFixture(t)

	first := f.createOrder(t)
	second := f.createOrder(t)

	assert.Equal(t, "CMD-2026-0001", first.OrderNumber)
	assert.Equal(t, "CMD-2026-0002", second.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, first.Status)
	require.Len(t, first.Items, 2)
	assert.Nil(t, first.Items[0].ReceivedQty)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), events.Actor{}, dto.CreateOrderRequest{
		SupplierID: "no-existe",
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinLineas(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), events.Actor{}, dto.CreateOrderRequest{
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_LineaConCantidadInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), events.Actor{}, dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PublicaEvento(t *testing.T) {
	f := newFixture(t)

	out := f.createOrder(t)

	require.Len(t, f.publisher.published, 1)
	ev := f.publisher.published[0]
	assert.Equal(t, "orders", ev.Table)
	assert.Equal(t, events.ActionInserted, ev.Action)
	assert.Equal(t, out.ID, ev.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveItem_RegistraMovimientoYAjustaStock(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)
	itemID := order.Items[0].ID

	out, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, itemID, dto.ReceiveItemRequest{
		ReceivedQty: 10,
		Condition:   "NEW",
	})
	require.NoError(t, err)

	// Queda una línea pendiente: el pedido sigue PENDING.
	assert.Equal(t, entity.OrderStatusPending, out.Status)

	s, _ := f.stockRepo.Get(productAID, siteAID)
	assert.Equal(t, 10, s.QuantityNew)

	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, productAID, mov.ProductID)
	require.NotNil(t, mov.TargetSiteID)
	assert.Equal(t, siteAID, *mov.TargetSiteID)
	assert.Nil(t, mov.SourceSiteID)
	assert.Equal(t, "mgarcia", mov.Operator)
	assert.Equal(t, "Recepción pedido CMD-2026-0001", mov.Comment)
}

func TestReceiveItem_FechaPorDefectoDelReloj(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	out, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[0].ID, dto.ReceiveItemRequest{
		ReceivedQty: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Items[0].ReceivedDate)
	assert.True(t, out.Items[0].ReceivedDate.Equal(fixedNow))
}

func TestReceiveItem_UltimaLineaCompletaPedido(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	_, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[0].ID, dto.ReceiveItemRequest{ReceivedQty: 10})
	require.NoError(t, err)
	out, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[1].ID, dto.ReceiveItemRequest{ReceivedQty: 4, Condition: "USED"})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	require.NotNil(t, out.ReceivedDate)

	sNew, _ := f.stockRepo.Get(productAID, siteAID)
	sUsed, _ := f.stockRepo.Get(productBID, siteAID)
	assert.Equal(t, 10, sNew.QuantityNew)
	assert.Equal(t, 4, sUsed.QuantityUsed)
}

func TestReceiveItem_DobleRecepcionRechazada(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)
	itemID := order.Items[0].ID

	_, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, itemID, dto.ReceiveItemRequest{ReceivedQty: 10})
	require.NoError(t, err)
	_, err = f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, itemID, dto.ReceiveItemRequest{ReceivedQty: 10})
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)

	// El libro mayor solo refleja la primera recepción.
	s, _ := f.stockRepo.Get(productAID, siteAID)
	assert.Equal(t, 10, s.QuantityNew)
	assert.Len(t, f.movRepo.movements, 1)
}

func TestReceiveItem_SinDestinoResoluble(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Create(context.Background(), events.Actor{}, dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveItem(context.Background(), events.Actor{}, out.ID, out.Items[0].ID, dto.ReceiveItemRequest{ReceivedQty: 2})
	assert.ErrorIs(t, err, domain.ErrNoDestination)
}

func TestReceiveItem_SitioExplicitoTienePrecedencia(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	_, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[0].ID, dto.ReceiveItemRequest{
		ReceivedQty: 10,
		SiteID:      siteRef(siteBID),
	})
	require.NoError(t, err)

	s, _ := f.stockRepo.Get(productAID, siteBID)
	assert.Equal(t, 10, s.QuantityNew)
	empty, _ := f.stockRepo.Get(productAID, siteAID)
	assert.Equal(t, 0, empty.QuantityNew)
}

func TestReceiveItem_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	_, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[0].ID, dto.ReceiveItemRequest{ReceivedQty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción por lote
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveAll_RecepcionaLoteYCompleta(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	out, err := f.uc.ReceiveAll(context.Background(), events.Actor{}, order.ID, dto.ReceiveAllRequest{
		Items: []dto.ReceiveAllItemInput{
			{ItemID: order.Items[0].ID, ReceivedQty: 10},
			{ItemID: order.Items[1].ID, ReceivedQty: 4, Condition: "USED"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	assert.Len(t, f.movRepo.movements, 2)
}

func TestReceiveAll_PedidoNoPendiente(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)
	cancelled := entity.OrderStatusCancelled
	_, err := f.uc.Update(context.Background(), events.Actor{}, order.ID, dto.UpdateOrderRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = f.uc.ReceiveAll(context.Background(), events.Actor{}, order.ID, dto.ReceiveAllRequest{
		Items: []dto.ReceiveAllItemInput{{ItemID: order.Items[0].ID, ReceivedQty: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceiveAll_LineaDesconocida(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	_, err := f.uc.ReceiveAll(context.Background(), events.Actor{}, order.ID, dto.ReceiveAllRequest{
		Items: []dto.ReceiveAllItemInput{{ItemID: "no-existe", ReceivedQty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación protegida
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_PedidoPendienteSinRecepciones(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	require.NoError(t, f.uc.Delete(context.Background(), events.Actor{}, order.ID))
	_, err := f.uc.GetByID(order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_PedidoCompletadoRechazado(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)
	_, err := f.uc.ReceiveAll(context.Background(), events.Actor{}, order.ID, dto.ReceiveAllRequest{
		Items: []dto.ReceiveAllItemInput{
			{ItemID: order.Items[0].ID, ReceivedQty: 10},
			{ItemID: order.Items[1].ID, ReceivedQty: 4},
		},
	})
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), events.Actor{}, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotDeletable)
}

func TestDelete_ConLineaRecepcionadaRechazado(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)
	_, err := f.uc.ReceiveItem(context.Background(), events.Actor{}, order.ID, order.Items[0].ID, dto.ReceiveItemRequest{ReceivedQty: 10})
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), events.Actor{}, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotDeletable)
}
