package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/application/usecase"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type linkKey struct {
	productID  string
	supplierID string
}

type fakeLinkRepo struct {
	links map[linkKey]*entity.ProductSupplier
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[linkKey]*entity.ProductSupplier)}
}

func (f *fakeLinkRepo) Create(l *entity.ProductSupplier) error {
	key := linkKey{l.ProductID, l.SupplierID}
	if _, ok := f.links[key]; ok {
		return domain.ErrDuplicate
	}
	f.links[key] = l
	return nil
}

func (f *fakeLinkRepo) Get(productID, supplierID string) (*entity.ProductSupplier, error) {
	return f.links[linkKey{productID, supplierID}], nil
}

func (f *fakeLinkRepo) ListByProduct(productID string) ([]*entity.ProductSupplier, error) {
	var out []*entity.ProductSupplier
	for k, l := range f.links {
		if k.productID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLinkRepo) PrimaryByProduct(productID string) (*entity.ProductSupplier, error) {
	for k, l := range f.links {
		if k.productID == productID && l.IsPrimary {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLinkRepo) SetPrimary(productID, supplierID string) error {
	target, ok := f.links[linkKey{productID, supplierID}]
	if !ok {
		return domain.ErrNotFound
	}
	for k, l := range f.links {
		if k.productID == productID {
			l.IsPrimary = false
		}
	}
	target.IsPrimary = true
	return nil
}

func (f *fakeLinkRepo) Delete(productID, supplierID string) error {
	key := linkKey{productID, supplierID}
	if _, ok := f.links[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.links, key)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByReference(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) List(repository.ProductFilters, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) ListBySupplyRisk(string) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(id string) error { delete(f.products, id); return nil }

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (f *fakeSupplierRepo) Create(s *entity.Supplier) error { f.suppliers[s.ID] = s; return nil }
func (f *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return f.suppliers[id], nil
}
func (f *fakeSupplierRepo) GetByName(string) (*entity.Supplier, error) { return nil, nil }
func (f *fakeSupplierRepo) Update(s *entity.Supplier) error { f.suppliers[s.ID] = s; return nil }
func (f *fakeSupplierRepo) List(string, int, int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}
func (f *fakeSupplierRepo) Delete(id string) error { delete(f.suppliers, id); return nil }

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(e events.Event) { f.published = append(f.published, e) }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID     = "11111111-1111-1111-1111-111111111111"
	supplierAID   = "55555555-5555-5555-5555-555555555555"
	supplierBID   = "66666666-6666-6666-6666-666666666666"
	unknownSupID  = "99999999-9999-9999-9999-999999999999"
	unknownProdID = "88888888-8888-8888-8888-888888888888"
)

type linkFixture struct {
	uc        *usecase.ProductSupplierUseCase
	linkRepo  *fakeLinkRepo
	publisher *fakePublisher
}

func newLinkFixture(t *testing.T) *linkFixture {
	t.Helper()
	linkRepo := newFakeLinkRepo()
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, Reference: "REF-001"},
	}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierAID: {ID: supplierAID, Name: "Proveedor Norte"},
		supplierBID: {ID: supplierBID, Name: "Proveedor Sur"},
	}}
	publisher := &fakePublisher{}
	uc := usecase.NewProductSupplierUseCase(linkRepo, productRepo, supplierRepo, publisher)
	return &linkFixture{uc: uc, linkRepo: linkRepo, publisher: publisher}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLinkAdd_VinculaProveedor(t *testing.T) {
	f := newLinkFixture(t)

	out, err := f.uc.Add(events.Actor{ID: "u1"}, productID, dto.AddProductSupplierRequest{
		SupplierID:  supplierAID,
		SupplierRef: "PN-4410",
	})
	require.NoError(t, err)
	assert.Equal(t, supplierAID, out.SupplierID)
	assert.Equal(t, "PN-4410", out.SupplierRef)
	assert.False(t, out.IsPrimary)
	require.NotNil(t, out.Supplier)
	assert.Equal(t, "Proveedor Norte", out.Supplier.Name)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, "product_suppliers", f.publisher.published[0].Table)
}

func TestLinkAdd_DuplicadoRechazado(t *testing.T) {
	f := newLinkFixture(t)

	_, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierAID})
	require.NoError(t, err)

	_, err = f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierAID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLinkAdd_ProductoOProveedorInexistente(t *testing.T) {
	f := newLinkFixture(t)

	_, err := f.uc.Add(events.Actor{}, unknownProdID, dto.AddProductSupplierRequest{SupplierID: supplierAID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: unknownSupID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinkAdd_PrincipalDesplazaAlAnterior(t *testing.T) {
	f := newLinkFixture(t)

	_, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{
		SupplierID: supplierAID,
		IsPrimary:  true,
	})
	require.NoError(t, err)

	out, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{
		SupplierID: supplierBID,
		IsPrimary:  true,
	})
	require.NoError(t, err)
	assert.True(t, out.IsPrimary)

	// El anterior queda desmarcado: un solo principal por producto.
	prev, err := f.linkRepo.Get(productID, supplierAID)
	require.NoError(t, err)
	assert.False(t, prev.IsPrimary)

	primary, err := f.linkRepo.PrimaryByProduct(productID)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, supplierBID, primary.SupplierID)
}

func TestLinkSetPrimary_CambiaElPrincipal(t *testing.T) {
	f := newLinkFixture(t)
	_, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierAID, IsPrimary: true})
	require.NoError(t, err)
	_, err = f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierBID})
	require.NoError(t, err)

	out, err := f.uc.SetPrimary(events.Actor{}, productID, supplierBID)
	require.NoError(t, err)
	assert.True(t, out.IsPrimary)

	prev, _ := f.linkRepo.Get(productID, supplierAID)
	assert.False(t, prev.IsPrimary)
}

func TestLinkSetPrimary_VinculoInexistente(t *testing.T) {
	f := newLinkFixture(t)

	_, err := f.uc.SetPrimary(events.Actor{}, productID, supplierAID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinkRemove_EliminaVinculo(t *testing.T) {
	f := newLinkFixture(t)
	_, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierAID})
	require.NoError(t, err)

	require.NoError(t, f.uc.Remove(events.Actor{}, productID, supplierAID))

	link, err := f.linkRepo.Get(productID, supplierAID)
	require.NoError(t, err)
	assert.Nil(t, link)

	err = f.uc.Remove(events.Actor{}, productID, supplierAID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinkList_PorProducto(t *testing.T) {
	f := newLinkFixture(t)
	_, err := f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierAID})
	require.NoError(t, err)
	_, err = f.uc.Add(events.Actor{}, productID, dto.AddProductSupplierRequest{SupplierID: supplierBID})
	require.NoError(t, err)

	out, err := f.uc.ListByProduct(productID)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = f.uc.ListByProduct(unknownProdID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
