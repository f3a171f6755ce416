// Package bulk implementa la exportación a Excel de stocks y movimientos y
// la importación masiva de stocks, el único camino autorizado a fijar los
// contadores del libro mayor en valores absolutos.
package bulk

import (
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// WorkbookBuilder genera los libros de exportación.
type WorkbookBuilder interface {
	StocksWorkbook(products []*entity.Product, sites []*entity.Site, stocks []*entity.Stock) ([]byte, error)
	MovementsWorkbook(movements []*entity.StockMovement) ([]byte, error)
}

// ExportUseCase arma los ficheros de exportación a partir del estado actual.
type ExportUseCase struct {
	productRepo repository.ProductRepository
	siteRepo    repository.SiteRepository
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
	builder     WorkbookBuilder
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	productRepo repository.ProductRepository,
	siteRepo repository.SiteRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	builder WorkbookBuilder,
) *ExportUseCase {
	return &ExportUseCase{
		productRepo: productRepo,
		siteRepo:    siteRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
		builder:     builder,
	}
}

// ExportStocks genera la hoja SYNTHESE con todos los productos y los sitios
// de almacenamiento activos.
func (uc *ExportUseCase) ExportStocks() ([]byte, error) {
	products, _, err := uc.productRepo.List(repository.ProductFilters{}, 1, 0)
	if err != nil {
		return nil, err
	}
	sites, err := uc.siteRepo.ListByType(entity.SiteTypeStorage)
	if err != nil {
		return nil, err
	}
	active := make([]*entity.Site, 0, len(sites))
	for _, s := range sites {
		if s.IsActive {
			active = append(active, s)
		}
	}
	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return uc.builder.StocksWorkbook(products, active, stocks)
}

// ExportMovements genera la hoja Mouvements con el histórico completo que
// casa los filtros.
func (uc *ExportUseCase) ExportMovements(f repository.MovementFilters) ([]byte, error) {
	movements, _, err := uc.movRepo.List(f, 1, 0)
	if err != nil {
		return nil, err
	}
	return uc.builder.MovementsWorkbook(movements)
}
