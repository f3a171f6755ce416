package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// SiteUseCase casos de uso CRUD para sitios.
type SiteUseCase struct {
	repo      repository.SiteRepository
	publisher events.Publisher
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(repo repository.SiteRepository, publisher events.Publisher) *SiteUseCase {
	return &SiteUseCase{repo: repo, publisher: publisher}
}

// Create crea un nuevo sitio. El nombre es obligatorio y único; el tipo debe
// ser STORAGE o EXIT.
func (uc *SiteUseCase) Create(actor events.Actor, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if in.Name == "" || !validSiteType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	site := &entity.Site{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsActive != nil {
		site.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(site); err != nil {
		return nil, err
	}
	out := dto.NewSiteResponse(site)
	uc.publish(site.ID, events.ActionInserted, out, actor)
	return out, nil
}

// GetByID obtiene un sitio por ID.
func (uc *SiteUseCase) GetByID(id string) (*dto.SiteResponse, error) {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewSiteResponse(site), nil
}

// List lista sitios, opcionalmente solo los activos o por tipo.
func (uc *SiteUseCase) List(onlyActive bool, siteType string) ([]*dto.SiteResponse, error) {
	var (
		list []*entity.Site
		err  error
	)
	if siteType != "" {
		if !validSiteType(siteType) {
			return nil, domain.ErrInvalidInput
		}
		list, err = uc.repo.ListByType(siteType)
	} else {
		list, err = uc.repo.List(onlyActive)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SiteResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSiteResponse(s))
	}
	return out, nil
}

// Update actualiza un sitio; desactivarlo lo oculta de los listados activos
// sin tocar su histórico de movimientos.
func (uc *SiteUseCase) Update(actor events.Actor, id string, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != site.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		site.Name = *in.Name
	}
	if in.Type != nil {
		if !validSiteType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		site.Type = *in.Type
	}
	if in.Address != nil {
		site.Address = *in.Address
	}
	if in.IsActive != nil {
		site.IsActive = *in.IsActive
	}
	site.UpdatedAt = time.Now()
	if err := uc.repo.Update(site); err != nil {
		return nil, err
	}
	out := dto.NewSiteResponse(site)
	uc.publish(id, events.ActionUpdated, out, actor)
	return out, nil
}

// Delete elimina un sitio. Si tiene movimientos o stock asociado la base
// rechaza el borrado por clave foránea y se traduce a conflicto.
func (uc *SiteUseCase) Delete(actor events.Actor, id string) error {
	site, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publish(id, events.ActionDeleted, dto.NewSiteResponse(site), actor)
	return nil
}

func (uc *SiteUseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "sites",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}

func validSiteType(t string) bool {
	return t == entity.SiteTypeStorage || t == entity.SiteTypeExit
}
