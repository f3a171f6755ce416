package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/application/orders"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de modelos
// ──────────────────────────────────────────────────────────────────────────────

type fakeTemplateRepo struct {
	templates map[string]*entity.OrderTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]*entity.OrderTemplate)}
}

func (f *fakeTemplateRepo) Create(t *entity.OrderTemplate) error {
	f.templates[t.ID] = t
	return nil
}

// GetByID devuelve una copia, como haría una relectura real de la base.
func (f *fakeTemplateRepo) GetByID(id string) (*entity.OrderTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Items = append([]*entity.OrderTemplateItem(nil), t.Items...)
	return &cp, nil
}

func (f *fakeTemplateRepo) List() ([]*entity.OrderTemplate, error) {
	var out []*entity.OrderTemplate
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateRepo) UpdateHeader(t *entity.OrderTemplate) error {
	stored, ok := f.templates[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *t
	cp.Items = stored.Items
	f.templates[t.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) ReplaceItems(templateID string, items []*entity.OrderTemplateItem) error {
	stored, ok := f.templates[templateID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Items = items
	return nil
}

func (f *fakeTemplateRepo) Delete(id string) error {
	delete(f.templates, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type templateFixture struct {
	uc        *orders.TemplateUseCase
	repo      *fakeTemplateRepo
	publisher *fakePublisher
}

func newTemplateFixture(t *testing.T) *templateFixture {
	t.Helper()
	repo := newFakeTemplateRepo()
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "Proveedor Uno"},
	}}
	siteRepo := &fakeSiteRepo{sites: map[string]*entity.Site{
		siteAID: {ID: siteAID, Name: "Almacén A", Type: entity.SiteTypeStorage, IsActive: true},
	}}
	publisher := &fakePublisher{}
	uc := orders.NewTemplateUseCase(repo, supplierRepo, siteRepo, publisher)
	return &templateFixture{uc: uc, repo: repo, publisher: publisher}
}

func (f *templateFixture) createTemplate(t *testing.T) *dto.OrderTemplateResponse {
	t.Helper()
	out, err := f.uc.Create(events.Actor{ID: "u1"}, dto.CreateOrderTemplateRequest{
		Name:              "Reposición mensual",
		SupplierID:        supplierID,
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
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTemplateCreate_GuardaModeloConLineas(t *testing.T) {
	f := newTemplateFixture(t)

	out := f.createTemplate(t)
	assert.Equal(t, "Reposición mensual", out.Name)
	assert.Equal(t, supplierID, out.SupplierID)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 10, out.Items[0].Quantity)

	stored, err := f.repo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 2)
}

func TestTemplateCreate_SinNombreNiLineas(t *testing.T) {
	f := newTemplateFixture(t)

	_, err := f.uc.Create(events.Actor{}, dto.CreateOrderTemplateRequest{
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin nombre")

	_, err = f.uc.Create(events.Actor{}, dto.CreateOrderTemplateRequest{
		Name:       "Vacío",
		SupplierID: supplierID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")
}

func TestTemplateCreate_ProveedorInexistente(t *testing.T) {
	f := newTemplateFixture(t)

	_, err := f.uc.Create(events.Actor{}, dto.CreateOrderTemplateRequest{
		Name:       "Huérfano",
		SupplierID: "99999999-9999-9999-9999-999999999999",
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateCreate_LineaConCantidadInvalida(t *testing.T) {
	f := newTemplateFixture(t)

	_, err := f.uc.Create(events.Actor{}, dto.CreateOrderTemplateRequest{
		Name:       "Inválido",
		SupplierID: supplierID,
		Items:      []dto.OrderItemInput{{ProductID: productAID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateCreate_PublicaEvento(t *testing.T) {
	f := newTemplateFixture(t)

	out := f.createTemplate(t)
	require.Len(t, f.publisher.published, 1)
	ev := f.publisher.published[0]
	assert.Equal(t, "order_templates", ev.Table)
	assert.Equal(t, events.ActionInserted, ev.Action)
	assert.Equal(t, out.ID, ev.ID)
}

func TestTemplateUpdate_SustituyeLineas(t *testing.T) {
	f := newTemplateFixture(t)
	created := f.createTemplate(t)

	nuevoNombre := "Reposición trimestral"
	out, err := f.uc.Update(events.Actor{}, created.ID, dto.UpdateOrderTemplateRequest{
		Name:  &nuevoNombre,
		Items: []dto.OrderItemInput{{ProductID: productBID, Quantity: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Reposición trimestral", out.Name)
	require.Len(t, out.Items, 1)
	assert.Equal(t, productBID, out.Items[0].ProductID)
	assert.Equal(t, 25, out.Items[0].Quantity)
}

func TestTemplateUpdate_SinLineasConservaLasActuales(t *testing.T) {
	f := newTemplateFixture(t)
	created := f.createTemplate(t)

	comentario := "pedir antes del día 5"
	out, err := f.uc.Update(events.Actor{}, created.ID, dto.UpdateOrderTemplateRequest{
		Comment: &comentario,
	})
	require.NoError(t, err)
	assert.Equal(t, "pedir antes del día 5", out.Comment)
	assert.Len(t, out.Items, 2, "sin Items la actualización no toca las líneas")
}

func TestTemplateUpdate_ModeloInexistente(t *testing.T) {
	f := newTemplateFixture(t)

	nombre := "Nada"
	_, err := f.uc.Update(events.Actor{}, "no-existe", dto.UpdateOrderTemplateRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateDelete_EliminaYPublica(t *testing.T) {
	f := newTemplateFixture(t)
	created := f.createTemplate(t)

	require.NoError(t, f.uc.Delete(events.Actor{}, created.ID))
	stored, err := f.repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	last := f.publisher.published[len(f.publisher.published)-1]
	assert.Equal(t, events.ActionDeleted, last.Action)
}
