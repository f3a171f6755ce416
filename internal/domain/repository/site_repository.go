package repository

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// SiteRepository define el puerto de persistencia para Site.
type SiteRepository interface {
	Create(site *entity.Site) error
	GetByID(id string) (*entity.Site, error)
	GetByName(name string) (*entity.Site, error)
	Update(site *entity.Site) error
	List(onlyActive bool) ([]*entity.Site, error)
	ListByType(siteType string) ([]*entity.Site, error)
	Delete(id string) error
}
