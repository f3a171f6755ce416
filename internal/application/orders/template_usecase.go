package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// TemplateUseCase administra los modelos de pedido: pedidos tipo reutilizables
// con proveedor, destino y líneas precargadas. Un modelo nunca toca el libro
// mayor ni la numeración; es solo la base para crear pedidos reales.
type TemplateUseCase struct {
	repo         repository.OrderTemplateRepository
	supplierRepo repository.SupplierRepository
	siteRepo     repository.SiteRepository
	publisher    events.Publisher
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(
	repo repository.OrderTemplateRepository,
	supplierRepo repository.SupplierRepository,
	siteRepo repository.SiteRepository,
	publisher events.Publisher,
) *TemplateUseCase {
	return &TemplateUseCase{
		repo:         repo,
		supplierRepo: supplierRepo,
		siteRepo:     siteRepo,
		publisher:    publisher,
	}
}

// Create crea un modelo con al menos una línea válida.
func (uc *TemplateUseCase) Create(actor events.Actor, in dto.CreateOrderTemplateRequest) (*dto.OrderTemplateResponse, error) {
	if in.Name == "" || in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRefs(in.SupplierID, in.DestinationSiteID); err != nil {
		return nil, err
	}

	now := time.Now()
	template := &entity.OrderTemplate{
		ID:                uuid.New().String(),
		Name:              in.Name,
		SupplierID:        in.SupplierID,
		DestinationSiteID: in.DestinationSiteID,
		Responsible:       in.Responsible,
		Comment:           in.Comment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, it := range items {
		it.TemplateID = template.ID
	}
	template.Items = items

	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	created, err := uc.repo.GetByID(template.ID)
	if err != nil || created == nil {
		created = template
	}

	out := dto.NewOrderTemplateResponse(created)
	uc.publish(template.ID, events.ActionInserted, out, actor)
	return out, nil
}

// GetByID devuelve un modelo con sus relaciones expandidas.
func (uc *TemplateUseCase) GetByID(id string) (*dto.OrderTemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewOrderTemplateResponse(template), nil
}

// List devuelve todos los modelos ordenados por nombre.
func (uc *TemplateUseCase) List() ([]*dto.OrderTemplateResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NewOrderTemplateResponse(t))
	}
	return out, nil
}

// Update actualiza la cabecera; Items con contenido sustituye todas las
// líneas del modelo.
func (uc *TemplateUseCase) Update(actor events.Actor, id string, in dto.UpdateOrderTemplateRequest) (*dto.OrderTemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		template.Name = *in.Name
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		template.SupplierID = *in.SupplierID
	}
	if in.DestinationSiteID != nil {
		if *in.DestinationSiteID == "" {
			template.DestinationSiteID = nil
		} else {
			site, err := uc.siteRepo.GetByID(*in.DestinationSiteID)
			if err != nil {
				return nil, err
			}
			if site == nil {
				return nil, domain.ErrNotFound
			}
			template.DestinationSiteID = in.DestinationSiteID
		}
	}
	if in.Responsible != nil {
		template.Responsible = *in.Responsible
	}
	if in.Comment != nil {
		template.Comment = *in.Comment
	}
	template.UpdatedAt = time.Now()

	if err := uc.repo.UpdateHeader(template); err != nil {
		return nil, err
	}
	if len(in.Items) > 0 {
		items, err := uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			it.TemplateID = id
		}
		if err := uc.repo.ReplaceItems(id, items); err != nil {
			return nil, err
		}
	}

	updated, err := uc.repo.GetByID(id)
	if err != nil || updated == nil {
		updated = template
	}
	out := dto.NewOrderTemplateResponse(updated)
	uc.publish(id, events.ActionUpdated, out, actor)
	return out, nil
}

// Delete elimina un modelo y sus líneas.
func (uc *TemplateUseCase) Delete(actor events.Actor, id string) error {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if template == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publish(id, events.ActionDeleted, dto.NewOrderTemplateResponse(template), actor)
	return nil
}

func (uc *TemplateUseCase) buildItems(inputs []dto.OrderItemInput) ([]*entity.OrderTemplateItem, error) {
	items := make([]*entity.OrderTemplateItem, 0, len(inputs))
	for _, it := range inputs {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.OrderTemplateItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items, nil
}

func (uc *TemplateUseCase) checkRefs(supplierID string, siteID *string) error {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if siteID != nil && *siteID != "" {
		site, err := uc.siteRepo.GetByID(*siteID)
		if err != nil {
			return err
		}
		if site == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (uc *TemplateUseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "order_templates",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}
