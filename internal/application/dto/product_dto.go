package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
	QtyPerUnit  int    `json:"qtyPerUnit"`
	SupplyRisk  string `json:"supplyRisk"`
	Location    string `json:"location"`
	MinStock    *int   `json:"minStock"`
	Comment     string `json:"comment"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Reference   *string `json:"reference"`
	Description *string `json:"description"`
	QtyPerUnit  *int    `json:"qtyPerUnit"`
	SupplyRisk  *string `json:"supplyRisk"`
	Location    *string `json:"location"`
	MinStock    *int    `json:"minStock"`
	Comment     *string `json:"comment"`
	ImageURL    *string `json:"imageUrl"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Description string    `json:"description,omitempty"`
	QtyPerUnit  int       `json:"qtyPerUnit"`
	SupplyRisk  string    `json:"supplyRisk,omitempty"`
	Location    string    `json:"location,omitempty"`
	MinStock    *int      `json:"minStock,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductQuery filtros de listado de productos.
type ProductQuery struct {
	PageRequest
	Search     string `query:"search"`
	SupplyRisk string `query:"supplyRisk"`
}
