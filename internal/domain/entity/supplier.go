package entity

import "time"

// Supplier representa un proveedor de piezas.
type Supplier struct {
	ID         string
	Name       string
	Contact    string
	Email      string
	Phone      string
	Website    string
	Address    string
	PostalCode string
	City       string
	Country    string
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
