package dto

import "time"

// CreateMovementRequest entrada para registrar un movimiento.
// IN requiere targetSiteId; OUT requiere sourceSiteId; TRANSFER ambos.
type CreateMovementRequest struct {
	ProductID    string    `json:"productId"`
	Type         string    `json:"type"` // IN | OUT | TRANSFER
	SourceSiteID *string   `json:"sourceSiteId"`
	TargetSiteID *string   `json:"targetSiteId"`
	Quantity     int       `json:"quantity"`
	Condition    string    `json:"condition"` // NEW | USED
	MovementDate time.Time `json:"movementDate"`
	Operator     string    `json:"operator"`
	Comment      string    `json:"comment"`
}

// MovementResponse salida de un movimiento con sus relaciones expandidas.
type MovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"productId"`
	Type         string           `json:"type"`
	SourceSiteID *string          `json:"sourceSiteId,omitempty"`
	TargetSiteID *string          `json:"targetSiteId,omitempty"`
	Quantity     int              `json:"quantity"`
	Condition    string           `json:"condition"`
	MovementDate time.Time        `json:"movementDate"`
	Operator     string           `json:"operator,omitempty"`
	Comment      string           `json:"comment,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	Product      *ProductResponse `json:"product,omitempty"`
	SourceSite   *SiteResponse    `json:"sourceSite,omitempty"`
	TargetSite   *SiteResponse    `json:"targetSite,omitempty"`
}

// MovementQuery filtros de listado de movimientos.
type MovementQuery struct {
	PageRequest
	ProductID string     `query:"productId"`
	Type      string     `query:"type"`
	SiteID    string     `query:"siteId"` // casa contra origen O destino
	StartDate *time.Time `query:"startDate"`
	EndDate   *time.Time `query:"endDate"`
	Operator  string     `query:"operator"`
}
