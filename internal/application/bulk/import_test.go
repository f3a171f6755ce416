package bulk_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stock-api/internal/application/bulk"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
	"github.com/jhoicas/Stock-api/internal/infrastructure/excel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeParser struct {
	rows []excel.ParsedRow
	err  error
}

func (f *fakeParser) ParseStocks(io.Reader) ([]excel.ParsedRow, error) {
	return f.rows, f.err
}

type fakeProductRepo struct {
	byReference map[string]*entity.Product
	updates     []*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetByReference(ref string) (*entity.Product, error) {
	return f.byReference[ref], nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.updates = append(f.updates, p)
	return nil
}
func (f *fakeProductRepo) List(repository.ProductFilters, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) ListBySupplyRisk(string) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(string) error { return nil }

type fakeSiteRepo struct {
	byName map[string]*entity.Site
}

func (f *fakeSiteRepo) Create(*entity.Site) error { return nil }
func (f *fakeSiteRepo) GetByID(string) (*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) GetByName(name string) (*entity.Site, error) { return f.byName[name], nil }
func (f *fakeSiteRepo) Update(*entity.Site) error { return nil }
func (f *fakeSiteRepo) List(bool) ([]*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) ListByType(string) ([]*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) Delete(string) error { return nil }

type stockKey struct {
	productID string
	siteID    string
}

type fakeStockRepo struct {
	rows map[stockKey]*entity.Stock
}

func (f *fakeStockRepo) Get(productID, siteID string) (*entity.Stock, error) {
	return f.rows[stockKey{productID, siteID}], nil
}
func (f *fakeStockRepo) Adjust(string, string, stock.Condition, int) error { return nil }
func (f *fakeStockRepo) Set(s *entity.Stock) error {
	f.rows[stockKey{s.ProductID, s.SiteID}] = s
	return nil
}
func (f *fakeStockRepo) ListAll() ([]*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) ListByProduct(string) ([]*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) ListBySite(string) ([]*entity.Stock, error) { return nil, nil }

type fakeTxRunner struct {
	stockRepo repository.StockRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.StockMovementRepository,
	repository.StockRepository,
) error) error {
	return fn(nil, f.stockRepo)
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(e events.Event) { f.published = append(f.published, e) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

type importFixture struct {
	uc          *bulk.ImportUseCase
	parser      *fakeParser
	productRepo *fakeProductRepo
	stockRepo   *fakeStockRepo
	publisher   *fakePublisher
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	parser := &fakeParser{}
	productRepo := &fakeProductRepo{byReference: map[string]*entity.Product{
		"REF-001": {ID: "p1", Reference: "REF-001", SupplyRisk: entity.SupplyRiskLow},
		"REF-002": {ID: "p2", Reference: "REF-002"},
	}}
	siteRepo := &fakeSiteRepo{byName: map[string]*entity.Site{
		"Magasin A": {ID: "s1", Name: "Magasin A", Type: entity.SiteTypeStorage, IsActive: true},
	}}
	stockRepo := &fakeStockRepo{rows: make(map[stockKey]*entity.Stock)}
	publisher := &fakePublisher{}
	uc := bulk.NewImportUseCase(&fakeTxRunner{stockRepo: stockRepo}, productRepo, siteRepo, parser, publisher)
	return &importFixture{uc: uc, parser: parser, productRepo: productRepo, stockRepo: stockRepo, publisher: publisher}
}

func (f *importFixture) run(t *testing.T) (*bulk.ImportReport, error) {
	t.Helper()
	return f.uc.ImportStocks(context.Background(), events.Actor{ID: "u1"}, strings.NewReader("xlsx"))
}

func TestImportStocks_FijaContadoresAbsolutos(t *testing.T) {
	f := newImportFixture(t)
	f.parser.rows = []excel.ParsedRow{
		{
			Reference: "REF-001",
			Quantities: []excel.ParsedQuantity{
				{SiteName: "Magasin A", Condition: stock.ConditionNew, Quantity: 12},
				{SiteName: "Magasin A", Condition: stock.ConditionUsed, Quantity: 3},
			},
		},
		{
			// Sin columna occasion: el contador ausente se fija en cero.
			Reference: "REF-002",
			Quantities: []excel.ParsedQuantity{
				{SiteName: "Magasin A", Condition: stock.ConditionNew, Quantity: 5},
			},
		},
	}

	report, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Applied)
	assert.Empty(t, report.UnknownProducts)

	first, _ := f.stockRepo.Get("p1", "s1")
	require.NotNil(t, first)
	assert.Equal(t, 12, first.QuantityNew)
	assert.Equal(t, 3, first.QuantityUsed)

	second, _ := f.stockRepo.Get("p2", "s1")
	require.NotNil(t, second)
	assert.Equal(t, 5, second.QuantityNew)
	assert.Equal(t, 0, second.QuantityUsed)
}

func TestImportStocks_ActualizaRiesgoAppro(t *testing.T) {
	f := newImportFixture(t)
	f.parser.rows = []excel.ParsedRow{
		{Reference: "REF-001", SupplyRisk: entity.SupplyRiskHigh},
	}

	report, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, 1, report.RisksUpdated)
	require.Len(t, f.productRepo.updates, 1)
	assert.Equal(t, entity.SupplyRiskHigh, f.productRepo.updates[0].SupplyRisk)
}

func TestImportStocks_ReportaDesconocidosSinAbortar(t *testing.T) {
	f := newImportFixture(t)
	f.parser.rows = []excel.ParsedRow{
		{Reference: "REF-999"},
		{
			Reference: "REF-001",
			Quantities: []excel.ParsedQuantity{
				{SiteName: "Chantier X", Condition: stock.ConditionNew, Quantity: 4},
				{SiteName: "Magasin A", Condition: stock.ConditionNew, Quantity: 7},
			},
		},
	}

	report, err := f.run(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"REF-999"}, report.UnknownProducts)
	assert.Equal(t, []string{"Chantier X"}, report.UnknownSites)
	assert.Equal(t, 1, report.Applied)

	applied, _ := f.stockRepo.Get("p1", "s1")
	require.NotNil(t, applied)
	assert.Equal(t, 7, applied.QuantityNew)
}

func TestImportStocks_FicheroVacio(t *testing.T) {
	f := newImportFixture(t)
	f.parser.rows = nil

	_, err := f.run(t)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.publisher.published)
}

func TestImportStocks_PublicaResumen(t *testing.T) {
	f := newImportFixture(t)
	f.parser.rows = []excel.ParsedRow{
		{Reference: "REF-001", Quantities: []excel.ParsedQuantity{
			{SiteName: "Magasin A", Condition: stock.ConditionNew, Quantity: 1},
		}},
	}

	_, err := f.run(t)
	require.NoError(t, err)

	require.Len(t, f.publisher.published, 1)
	ev := f.publisher.published[0]
	assert.Equal(t, "stocks", ev.Table)
	assert.Equal(t, events.ActionUpdated, ev.Action)
}
