package dto

import "github.com/jhoicas/Stock-api/internal/domain/entity"

// Conversión entidad → DTO compartida por los distintos casos de uso.

// NewProductResponse mapea un producto; nil-safe.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Reference:   p.Reference,
		Description: p.Description,
		QtyPerUnit:  p.QtyPerUnit,
		SupplyRisk:  p.SupplyRisk,
		Location:    p.Location,
		MinStock:    p.MinStock,
		Comment:     p.Comment,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewSiteResponse mapea un sitio; nil-safe.
func NewSiteResponse(s *entity.Site) *SiteResponse {
	if s == nil {
		return nil
	}
	return &SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Address:   s.Address,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewSupplierResponse mapea un proveedor; nil-safe.
func NewSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		Contact:    s.Contact,
		Email:      s.Email,
		Phone:      s.Phone,
		Website:    s.Website,
		Address:    s.Address,
		PostalCode: s.PostalCode,
		City:       s.City,
		Country:    s.Country,
		Comment:    s.Comment,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewProductSupplierResponse mapea un vínculo producto-proveedor; nil-safe.
func NewProductSupplierResponse(l *entity.ProductSupplier) *ProductSupplierResponse {
	if l == nil {
		return nil
	}
	return &ProductSupplierResponse{
		ProductID:    l.ProductID,
		SupplierID:   l.SupplierID,
		SupplierRef:  l.SupplierRef,
		UnitPrice:    l.UnitPrice,
		LeadTime:     l.LeadTime,
		ProductURL:   l.ProductURL,
		ShippingCost: l.ShippingCost,
		IsPrimary:    l.IsPrimary,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		Supplier:     NewSupplierResponse(l.Supplier),
	}
}

// NewStockResponse mapea una fila del libro mayor con sus expansiones.
func NewStockResponse(s *entity.Stock) StockResponse {
	return StockResponse{
		ProductID:    s.ProductID,
		SiteID:       s.SiteID,
		QuantityNew:  s.QuantityNew,
		QuantityUsed: s.QuantityUsed,
		UpdatedAt:    s.UpdatedAt,
		Product:      NewProductResponse(s.Product),
		Site:         NewSiteResponse(s.Site),
	}
}

// NewMovementResponse mapea un movimiento con sus expansiones.
func NewMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		SourceSiteID: m.SourceSiteID,
		TargetSiteID: m.TargetSiteID,
		Quantity:     m.Quantity,
		Condition:    m.Condition,
		MovementDate: m.MovementDate,
		Operator:     m.Operator,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
		Product:      NewProductResponse(m.Product),
		SourceSite:   NewSiteResponse(m.SourceSite),
		TargetSite:   NewSiteResponse(m.TargetSite),
	}
}

// NewOrderTemplateResponse mapea un modelo de pedido con sus expansiones.
func NewOrderTemplateResponse(t *entity.OrderTemplate) *OrderTemplateResponse {
	if t == nil {
		return nil
	}
	items := make([]OrderTemplateItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, OrderTemplateItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Product:   NewProductResponse(it.Product),
		})
	}
	return &OrderTemplateResponse{
		ID:                t.ID,
		Name:              t.Name,
		SupplierID:        t.SupplierID,
		DestinationSiteID: t.DestinationSiteID,
		Responsible:       t.Responsible,
		Comment:           t.Comment,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Items:             items,
		Supplier:          NewSupplierResponse(t.Supplier),
		DestinationSite:   NewSiteResponse(t.DestinationSite),
	}
}

// NewOrderResponse mapea un pedido con líneas y relaciones expandidas.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			ReceivedQty:  it.ReceivedQty,
			ReceivedDate: it.ReceivedDate,
			Condition:    it.Condition,
			Product:      NewProductResponse(it.Product),
		})
	}
	return &OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		SupplierID:        o.SupplierID,
		Title:             o.Title,
		Status:            o.Status,
		OrderDate:         o.OrderDate,
		ExpectedDate:      o.ExpectedDate,
		ReceivedDate:      o.ReceivedDate,
		DestinationSiteID: o.DestinationSiteID,
		Responsible:       o.Responsible,
		SupplierRef:       o.SupplierRef,
		Comment:           o.Comment,
		CreatedBy:         o.CreatedBy,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Items:             items,
		Supplier:          NewSupplierResponse(o.Supplier),
		DestinationSite:   NewSiteResponse(o.DestinationSite),
	}
}
