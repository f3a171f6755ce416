// Package usecase contiene los casos de uso CRUD del catálogo: productos,
// sitios y proveedores. Cada mutación exitosa publica su evento CRUD.
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

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	publisher events.Publisher
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, publisher events.Publisher) *ProductUseCase {
	return &ProductUseCase{repo: repo, publisher: publisher}
}

// Create crea un nuevo producto. La referencia es obligatoria y única.
func (uc *ProductUseCase) Create(actor events.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SupplyRisk != "" && !validSupplyRisk(in.SupplyRisk) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByReference(in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Reference:   in.Reference,
		Description: in.Description,
		QtyPerUnit:  in.QtyPerUnit,
		SupplyRisk:  in.SupplyRisk,
		Location:    in.Location,
		MinStock:    in.MinStock,
		Comment:     in.Comment,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.QtyPerUnit <= 0 {
		product.QtyPerUnit = 1
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	uc.publish(product.ID, events.ActionInserted, out, actor)
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(product), nil
}

// List lista productos con búsqueda y paginación.
func (uc *ProductUseCase) List(q dto.ProductQuery) ([]*dto.ProductResponse, dto.PageResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(repository.ProductFilters{
		Search:     q.Search,
		SupplyRisk: q.SupplyRisk,
	}, q.Page, q.Limit)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p))
	}
	return out, dto.NewPageResponse(q.Page, q.Limit, total), nil
}

// Update actualiza un producto; los campos nil se conservan.
func (uc *ProductUseCase) Update(actor events.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Reference != nil && *in.Reference != product.Reference {
		if *in.Reference == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByReference(*in.Reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.Reference = *in.Reference
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.QtyPerUnit != nil {
		if *in.QtyPerUnit <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product.QtyPerUnit = *in.QtyPerUnit
	}
	if in.SupplyRisk != nil {
		if *in.SupplyRisk != "" && !validSupplyRisk(*in.SupplyRisk) {
			return nil, domain.ErrInvalidInput
		}
		product.SupplyRisk = *in.SupplyRisk
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.MinStock != nil {
		product.MinStock = in.MinStock
	}
	if in.Comment != nil {
		product.Comment = *in.Comment
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	uc.publish(id, events.ActionUpdated, out, actor)
	return out, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(actor events.Actor, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publish(id, events.ActionDeleted, dto.NewProductResponse(product), actor)
	return nil
}

func (uc *ProductUseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "products",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}

func validSupplyRisk(risk string) bool {
	switch risk {
	case entity.SupplyRiskHigh, entity.SupplyRiskMedium, entity.SupplyRiskLow:
		return true
	}
	return false
}
