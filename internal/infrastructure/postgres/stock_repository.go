package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// conditionColumns es el único mapeo estado → columna; cualquier estado fuera
// de la tabla se rechaza antes de tocar SQL.
var conditionColumns = map[stock.Condition]string{
	stock.ConditionNew:  "quantity_new",
	stock.ConditionUsed: "quantity_used",
}

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
type StockRepo struct {
	db Querier
}

// NewStockRepository construye el adaptador de persistencia del libro mayor.
func NewStockRepository(db Querier) *StockRepo {
	return &StockRepo{db: db}
}

// Get devuelve la fila producto+sitio; si no existe, contadores en cero.
func (r *StockRepo) Get(productID, siteID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, site_id, quantity_new, quantity_used, updated_at
		FROM stocks WHERE product_id = $1 AND site_id = $2`
	var s entity.Stock
	err := r.db.QueryRow(context.Background(), query, productID, siteID).Scan(
		&s.ProductID, &s.SiteID, &s.QuantityNew, &s.QuantityUsed, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, SiteID: siteID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Adjust suma delta al contador del estado en una sola sentencia atómica,
// creando la fila si no existe. No rechaza resultados negativos: una salida
// mayor al disponible queda como pendiente (backorder).
func (r *StockRepo) Adjust(productID, siteID string, condition stock.Condition, delta int) error {
	column, ok := conditionColumns[condition]
	if !ok {
		return domain.ErrInvalidInput
	}
	initNew, initUsed := 0, 0
	if condition == stock.ConditionUsed {
		initUsed = delta
	} else {
		initNew = delta
	}
	query := fmt.Sprintf(`
		INSERT INTO stocks (product_id, site_id, quantity_new, quantity_used, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id, site_id)
		DO UPDATE SET %s = stocks.%s + $5, updated_at = NOW()`, column, column)
	_, err := r.db.Exec(context.Background(), query, productID, siteID, initNew, initUsed, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

// Set fija ambos contadores en valores absolutos (importación masiva).
func (r *StockRepo) Set(s *entity.Stock) error {
	query := `
		INSERT INTO stocks (product_id, site_id, quantity_new, quantity_used, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id, site_id)
		DO UPDATE SET quantity_new = EXCLUDED.quantity_new,
			quantity_used = EXCLUDED.quantity_used, updated_at = NOW()`
	_, err := r.db.Exec(context.Background(), query, s.ProductID, s.SiteID, s.QuantityNew, s.QuantityUsed)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

const stockSelect = `
	SELECT s.product_id, s.site_id, s.quantity_new, s.quantity_used, s.updated_at,
		p.id, p.reference, p.description, p.qty_per_unit, p.supply_risk, p.location,
		p.min_stock, p.comment, p.image_url, p.created_at, p.updated_at,
		st.id, st.name, st.type, st.address, st.is_active, st.created_at, st.updated_at
	FROM stocks s
	JOIN products p ON p.id = s.product_id
	JOIN sites st ON st.id = s.site_id`

// ListAll devuelve todas las filas del libro mayor con producto y sitio.
func (r *StockRepo) ListAll() ([]*entity.Stock, error) {
	return r.list(stockSelect + ` ORDER BY p.reference, st.name`)
}

// ListByProduct devuelve las filas de un producto en todos los sitios.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	return r.list(stockSelect+` WHERE s.product_id = $1 ORDER BY st.name`, productID)
}

// ListBySite devuelve las filas presentes en un sitio.
func (r *StockRepo) ListBySite(siteID string) ([]*entity.Stock, error) {
	return r.list(stockSelect+` WHERE s.site_id = $1 ORDER BY p.reference`, siteID)
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		var p entity.Product
		var st entity.Site
		if err := rows.Scan(
			&s.ProductID, &s.SiteID, &s.QuantityNew, &s.QuantityUsed, &s.UpdatedAt,
			&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk, &p.Location,
			&p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
			&st.ID, &st.Name, &st.Type, &st.Address, &st.IsActive, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		s.Product = &p
		s.Site = &st
		list = append(list, &s)
	}
	return list, rows.Err()
}
