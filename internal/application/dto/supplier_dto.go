package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Website    string `json:"website"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Comment    string `json:"comment"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name       *string `json:"name"`
	Contact    *string `json:"contact"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Website    *string `json:"website"`
	Address    *string `json:"address"`
	PostalCode *string `json:"postalCode"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	Comment    *string `json:"comment"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Contact    string    `json:"contact,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Website    string    `json:"website,omitempty"`
	Address    string    `json:"address,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	City       string    `json:"city,omitempty"`
	Country    string    `json:"country,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SupplierQuery filtros de listado de proveedores.
type SupplierQuery struct {
	PageRequest
	Search string `query:"search"`
}
