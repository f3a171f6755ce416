package bulk

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Stock-api/internal/application/events"
	"github.com/jhoicas/Stock-api/internal/application/inventory"
	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
	"github.com/jhoicas/Stock-api/internal/infrastructure/excel"
)

// StockParser lee un libro de stock inicial.
type StockParser interface {
	ParseStocks(r io.Reader) ([]excel.ParsedRow, error)
}

// ImportReport resume el resultado de una importación.
type ImportReport struct {
	Processed       int      `json:"processed"`
	Applied         int      `json:"applied"`
	RisksUpdated    int      `json:"risksUpdated"`
	UnknownProducts []string `json:"unknownProducts,omitempty"`
	UnknownSites    []string `json:"unknownSites,omitempty"`
}

// ImportUseCase aplica un fichero de stock inicial: cantidades absolutas por
// producto, sitio y estado, escritas en una sola transacción.
type ImportUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	siteRepo    repository.SiteRepository
	parser      StockParser
	publisher   events.Publisher
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	siteRepo repository.SiteRepository,
	parser StockParser,
	publisher events.Publisher,
) *ImportUseCase {
	return &ImportUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		siteRepo:    siteRepo,
		parser:      parser,
		publisher:   publisher,
	}
}

// ImportStocks lee el fichero y fija los contadores del libro mayor en los
// valores absolutos leídos. Productos o sitios desconocidos no abortan la
// importación: se reportan y sus filas se omiten. Las escrituras sobre el
// libro mayor van todas en la misma transacción.
func (uc *ImportUseCase) ImportStocks(ctx context.Context, actor events.Actor, r io.Reader) (*ImportReport, error) {
	rows, err := uc.parser.ParseStocks(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}

	report := &ImportReport{}
	siteCache := make(map[string]*entity.Site)
	unknownSites := make(map[string]bool)
	var pending []*entity.Stock

	for _, row := range rows {
		report.Processed++
		product, err := uc.productRepo.GetByReference(row.Reference)
		if err != nil {
			return nil, err
		}
		if product == nil {
			report.UnknownProducts = append(report.UnknownProducts, row.Reference)
			continue
		}
		if row.SupplyRisk != "" && row.SupplyRisk != product.SupplyRisk {
			product.SupplyRisk = row.SupplyRisk
			product.UpdatedAt = time.Now()
			if err := uc.productRepo.Update(product); err != nil {
				return nil, err
			}
			report.RisksUpdated++
		}

		// Agrega neuf/occasion por sitio; la columna ausente fija cero.
		perSite := make(map[string]*entity.Stock)
		for _, q := range row.Quantities {
			site, ok := siteCache[q.SiteName]
			if !ok {
				site, err = uc.siteRepo.GetByName(q.SiteName)
				if err != nil {
					return nil, err
				}
				siteCache[q.SiteName] = site
			}
			if site == nil {
				if !unknownSites[q.SiteName] {
					unknownSites[q.SiteName] = true
					report.UnknownSites = append(report.UnknownSites, q.SiteName)
				}
				continue
			}
			st, ok := perSite[site.ID]
			if !ok {
				st = &entity.Stock{ProductID: product.ID, SiteID: site.ID}
				perSite[site.ID] = st
			}
			if q.Condition.Valid() {
				stockApply(st, q)
			}
		}
		for _, st := range perSite {
			pending = append(pending, st)
		}
	}

	if len(pending) > 0 {
		err = uc.txRunner.Run(ctx, func(
			_ repository.StockMovementRepository,
			stockRepo repository.StockRepository,
		) error {
			for _, st := range pending {
				if err := stockRepo.Set(st); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		report.Applied = len(pending)
	}

	uc.publisher.Publish(events.Event{
		ID:        "import",
		Table:     "stocks",
		Action:    events.ActionUpdated,
		Data:      report,
		Timestamp: time.Now().UTC(),
		Actor:     &actor,
	})
	return report, nil
}

func stockApply(st *entity.Stock, q excel.ParsedQuantity) {
	if q.Condition == stock.ConditionUsed {
		st.QuantityUsed = q.Quantity
		return
	}
	st.QuantityNew = q.Quantity
}
