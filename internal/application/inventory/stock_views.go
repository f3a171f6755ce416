package inventory

import (
	"sort"

	"github.com/jhoicas/Stock-api/internal/application/dto"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

// Umbral por defecto de las alertas: qtyPerUnit × 5 bornes.
const defaultAlertFactor = 5

// StockViewUseCase vistas de solo lectura sobre el libro mayor.
type StockViewUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	linkRepo    repository.ProductSupplierRepository
}

// NewStockViewUseCase construye el caso de uso.
func NewStockViewUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	linkRepo repository.ProductSupplierRepository,
) *StockViewUseCase {
	return &StockViewUseCase{stockRepo: stockRepo, productRepo: productRepo, linkRepo: linkRepo}
}

// ListAll devuelve todas las filas del libro mayor con sus expansiones.
func (uc *StockViewUseCase) ListAll() ([]dto.StockResponse, error) {
	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return toStockResponses(stocks), nil
}

// ByProduct devuelve el stock de un producto en todos los sitios, con los
// totales por estado. Ausencia de filas equivale a stock cero.
func (uc *StockViewUseCase) ByProduct(productID string) (*dto.ProductStocksResponse, error) {
	stocks, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	totals := dto.StockTotals{}
	for _, s := range stocks {
		totals.TotalNew += s.QuantityNew
		totals.TotalUsed += s.QuantityUsed
	}
	totals.Total = totals.TotalNew + totals.TotalUsed
	return &dto.ProductStocksResponse{Stocks: toStockResponses(stocks), Totals: totals}, nil
}

// BySite devuelve el stock presente en un sitio.
func (uc *StockViewUseCase) BySite(siteID string) ([]dto.StockResponse, error) {
	stocks, err := uc.stockRepo.ListBySite(siteID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(stocks), nil
}

// Alerts devuelve los productos con riesgo de aprovisionamiento HIGH cuyo
// stock total queda en o bajo qtyPerUnit × factor, ordenados del más crítico
// al menos, cada uno con su proveedor principal para reaprovisionar.
// factor <= 0 aplica el umbral por defecto.
func (uc *StockViewUseCase) Alerts(factor int) ([]dto.StockAlertResponse, error) {
	if factor <= 0 {
		factor = defaultAlertFactor
	}
	products, err := uc.productRepo.ListBySupplyRisk(entity.SupplyRiskHigh)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, 0)
	for _, p := range products {
		stocks, err := uc.stockRepo.ListByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, s := range stocks {
			total += s.Total()
		}
		threshold := p.QtyPerUnit * factor
		if total <= threshold {
			primary, err := uc.linkRepo.PrimaryByProduct(p.ID)
			if err != nil {
				return nil, err
			}
			var primarySupplier *dto.SupplierResponse
			if primary != nil {
				primarySupplier = dto.NewSupplierResponse(primary.Supplier)
			}
			alerts = append(alerts, dto.StockAlertResponse{
				Product:         *dto.NewProductResponse(p),
				TotalStock:      total,
				Threshold:       threshold,
				IsCritical:      true,
				PrimarySupplier: primarySupplier,
			})
		}
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].TotalStock < alerts[j].TotalStock })
	return alerts, nil
}

func toStockResponses(stocks []*entity.Stock) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewStockResponse(s))
	}
	return out
}
