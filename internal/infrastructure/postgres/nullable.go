package postgres

import (
	"time"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
)

// nullableSite recibe las columnas de un sitio venido por LEFT JOIN, donde
// todas pueden ser NULL.
type nullableSite struct {
	ID        *string
	Name      *string
	Type      *string
	Address   *string
	IsActive  *bool
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (n nullableSite) toEntity() *entity.Site {
	if n.ID == nil {
		return nil
	}
	s := &entity.Site{ID: *n.ID}
	if n.Name != nil {
		s.Name = *n.Name
	}
	if n.Type != nil {
		s.Type = *n.Type
	}
	if n.Address != nil {
		s.Address = *n.Address
	}
	if n.IsActive != nil {
		s.IsActive = *n.IsActive
	}
	if n.CreatedAt != nil {
		s.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		s.UpdatedAt = *n.UpdatedAt
	}
	return s
}

// nullableSupplier recibe las columnas de un proveedor venido por LEFT JOIN.
type nullableSupplier struct {
	ID         *string
	Name       *string
	Contact    *string
	Email      *string
	Phone      *string
	Website    *string
	Address    *string
	PostalCode *string
	City       *string
	Country    *string
	Comment    *string
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}

func (n nullableSupplier) toEntity() *entity.Supplier {
	if n.ID == nil {
		return nil
	}
	s := &entity.Supplier{ID: *n.ID}
	if n.Name != nil {
		s.Name = *n.Name
	}
	if n.Contact != nil {
		s.Contact = *n.Contact
	}
	if n.Email != nil {
		s.Email = *n.Email
	}
	if n.Phone != nil {
		s.Phone = *n.Phone
	}
	if n.Website != nil {
		s.Website = *n.Website
	}
	if n.Address != nil {
		s.Address = *n.Address
	}
	if n.PostalCode != nil {
		s.PostalCode = *n.PostalCode
	}
	if n.City != nil {
		s.City = *n.City
	}
	if n.Country != nil {
		s.Country = *n.Country
	}
	if n.Comment != nil {
		s.Comment = *n.Comment
	}
	if n.CreatedAt != nil {
		s.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		s.UpdatedAt = *n.UpdatedAt
	}
	return s
}
