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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo      repository.SupplierRepository
	publisher events.Publisher
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, publisher events.Publisher) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, publisher: publisher}
}

// Create crea un nuevo proveedor. El nombre es obligatorio y único.
func (uc *SupplierUseCase) Create(actor events.Actor, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
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
	supplier := &entity.Supplier{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Contact:    in.Contact,
		Email:      in.Email,
		Phone:      in.Phone,
		Website:    in.Website,
		Address:    in.Address,
		PostalCode: in.PostalCode,
		City:       in.City,
		Country:    in.Country,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(supplier)
	uc.publish(supplier.ID, events.ActionInserted, out, actor)
	return out, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewSupplierResponse(supplier), nil
}

// List lista proveedores con búsqueda por nombre y paginación.
func (uc *SupplierUseCase) List(q dto.SupplierQuery) ([]*dto.SupplierResponse, dto.PageResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(q.Search, q.Page, q.Limit)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSupplierResponse(s))
	}
	return out, dto.NewPageResponse(q.Page, q.Limit, total), nil
}

// Update actualiza un proveedor; los campos nil se conservan.
func (uc *SupplierUseCase) Update(actor events.Actor, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != supplier.Name {
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
		supplier.Name = *in.Name
	}
	if in.Contact != nil {
		supplier.Contact = *in.Contact
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Website != nil {
		supplier.Website = *in.Website
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.PostalCode != nil {
		supplier.PostalCode = *in.PostalCode
	}
	if in.City != nil {
		supplier.City = *in.City
	}
	if in.Country != nil {
		supplier.Country = *in.Country
	}
	if in.Comment != nil {
		supplier.Comment = *in.Comment
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(supplier)
	uc.publish(id, events.ActionUpdated, out, actor)
	return out, nil
}

// Delete elimina un proveedor. Con pedidos asociados la clave foránea lo
// impide y el error se traduce a conflicto.
func (uc *SupplierUseCase) Delete(actor events.Actor, id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publish(id, events.ActionDeleted, dto.NewSupplierResponse(supplier), actor)
	return nil
}

func (uc *SupplierUseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "suppliers",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}
