package usecase

import (
	"time"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// ProductSupplierUseCase administra los vínculos producto-proveedor y la
// exclusividad del proveedor principal por producto.
type ProductSupplierUseCase struct {
	linkRepo     repository.ProductSupplierRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	publisher    events.Publisher
}

// NewProductSupplierUseCase construye el caso de uso.
func NewProductSupplierUseCase(
	linkRepo repository.ProductSupplierRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	publisher events.Publisher,
) *ProductSupplierUseCase {
	return &ProductSupplierUseCase{
		linkRepo:     linkRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		publisher:    publisher,
	}
}

// Add vincula un proveedor al producto. Un vínculo repetido se rechaza; si el
// nuevo vínculo llega marcado como principal, desplaza al principal anterior.
func (uc *ProductSupplierUseCase) Add(actor events.Actor, productID string, in dto.AddProductSupplierRequest) (*dto.ProductSupplierResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.linkRepo.Get(productID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	// Se inserta sin marca de principal y se promueve después: el índice
	// parcial único de product_suppliers no admite dos principales ni por
	// un instante.
	now := time.Now()
	link := &entity.ProductSupplier{
		ProductID:    productID,
		SupplierID:   in.SupplierID,
		SupplierRef:  in.SupplierRef,
		UnitPrice:    in.UnitPrice,
		LeadTime:     in.LeadTime,
		ProductURL:   in.ProductURL,
		ShippingCost: in.ShippingCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.linkRepo.Create(link); err != nil {
		return nil, err
	}
	if in.IsPrimary {
		if err := uc.linkRepo.SetPrimary(productID, in.SupplierID); err != nil {
			return nil, err
		}
		link.IsPrimary = true
	}
	link.Supplier = supplier

	out := dto.NewProductSupplierResponse(link)
	uc.publish(productID, events.ActionInserted, out, actor)
	return out, nil
}

// ListByProduct devuelve los vínculos del producto, el principal primero.
func (uc *ProductSupplierUseCase) ListByProduct(productID string) ([]*dto.ProductSupplierResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	links, err := uc.linkRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductSupplierResponse, 0, len(links))
	for _, l := range links {
		out = append(out, dto.NewProductSupplierResponse(l))
	}
	return out, nil
}

// SetPrimary marca el vínculo como proveedor principal; el anterior queda
// desmarcado.
func (uc *ProductSupplierUseCase) SetPrimary(actor events.Actor, productID, supplierID string) (*dto.ProductSupplierResponse, error) {
	link, err := uc.linkRepo.Get(productID, supplierID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.linkRepo.SetPrimary(productID, supplierID); err != nil {
		return nil, err
	}
	link.IsPrimary = true

	out := dto.NewProductSupplierResponse(link)
	uc.publish(productID, events.ActionUpdated, out, actor)
	return out, nil
}

// Remove elimina el vínculo.
func (uc *ProductSupplierUseCase) Remove(actor events.Actor, productID, supplierID string) error {
	link, err := uc.linkRepo.Get(productID, supplierID)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrNotFound
	}
	if err := uc.linkRepo.Delete(productID, supplierID); err != nil {
		return err
	}
	uc.publish(productID, events.ActionDeleted, dto.NewProductSupplierResponse(link), actor)
	return nil
}

func (uc *ProductSupplierUseCase) publish(id, action string, data any, actor events.Actor) {
	uc.publisher.Publish(events.Event{
		ID:        id,
		Table:     "product_suppliers",
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
}
