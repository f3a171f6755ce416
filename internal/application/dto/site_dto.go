package dto

import "time"

// CreateSiteRequest entrada para crear un sitio.
type CreateSiteRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // STORAGE | EXIT
	Address  string `json:"address"`
	IsActive *bool  `json:"isActive"`
}

// UpdateSiteRequest entrada para actualizar un sitio.
type UpdateSiteRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// SiteResponse salida de un sitio.
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
