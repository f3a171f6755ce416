package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo implementación del puerto SiteRepository sobre PostgreSQL.
type SiteRepo struct {
	db Querier
}

// NewSiteRepository construye el adaptador de persistencia para sitios.
func NewSiteRepository(db Querier) *SiteRepo {
	return &SiteRepo{db: db}
}

const siteColumns = `id, name, type, address, is_active, created_at, updated_at`

// Create persiste un nuevo sitio.
func (r *SiteRepo) Create(site *entity.Site) error {
	query := `
		INSERT INTO sites (` + siteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(context.Background(), query,
		site.ID, site.Name, site.Type, site.Address, site.IsActive,
		site.CreatedAt, site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID obtiene un sitio por ID.
func (r *SiteRepo) GetByID(id string) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`
	return scanSiteRow(r.db.QueryRow(context.Background(), query, id))
}

// GetByName obtiene un sitio por nombre exacto (insensible a mayúsculas).
func (r *SiteRepo) GetByName(name string) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE LOWER(name) = LOWER($1)`
	return scanSiteRow(r.db.QueryRow(context.Background(), query, name))
}

// Update actualiza un sitio existente.
func (r *SiteRepo) Update(site *entity.Site) error {
	query := `
		UPDATE sites SET name = $2, type = $3, address = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		site.ID, site.Name, site.Type, site.Address, site.IsActive, site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

// List lista sitios por nombre; onlyActive restringe a los activos.
func (r *SiteRepo) List(onlyActive bool) ([]*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`
	return r.list(query)
}

// ListByType lista sitios de un tipo (STORAGE o EXIT), ordenados por nombre.
func (r *SiteRepo) ListByType(siteType string) ([]*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE type = $1 ORDER BY name ASC`
	return r.list(query, siteType)
}

// Delete elimina un sitio por ID.
func (r *SiteRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}

func (r *SiteRepo) list(query string, args ...any) ([]*entity.Site, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var list []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func scanSiteRow(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}
