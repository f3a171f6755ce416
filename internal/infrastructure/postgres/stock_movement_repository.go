package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. Los movimientos son inmutables: solo hay inserción y lectura.
type StockMovementRepo struct {
	db Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos.
func NewStockMovementRepository(db Querier) *StockMovementRepo {
	return &StockMovementRepo{db: db}
}

// Create persiste un nuevo movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, source_site_id, target_site_id,
			quantity, condition, movement_date, operator, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.SourceSiteID,
		movement.TargetSiteID, movement.Quantity, movement.Condition,
		movement.MovementDate, movement.Operator, movement.Comment, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.type, m.source_site_id, m.target_site_id,
		m.quantity, m.condition, m.movement_date, m.operator, m.comment, m.created_at,
		p.id, p.reference, p.description, p.qty_per_unit, p.supply_risk, p.location,
		p.min_stock, p.comment, p.image_url, p.created_at, p.updated_at,
		src.id, src.name, src.type, src.address, src.is_active, src.created_at, src.updated_at,
		tgt.id, tgt.name, tgt.type, tgt.address, tgt.is_active, tgt.created_at, tgt.updated_at
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN sites src ON src.id = m.source_site_id
	LEFT JOIN sites tgt ON tgt.id = m.target_site_id`

// GetByID obtiene un movimiento con producto y sitios expandidos.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	rows, err := r.db.Query(context.Background(), movementSelect+` WHERE m.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get movement: %w", err)
		}
		return nil, nil
	}
	return scanMovement(rows)
}

// List lista movimientos, más recientes primero; limit <= 0 devuelve todo.
func (r *StockMovementRepo) List(f repository.MovementFilters, page, limit int) ([]*entity.StockMovement, int, error) {
	where, args := movementWhere(f)

	var total int
	if err := r.db.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_movements m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := movementSelect + where + ` ORDER BY m.movement_date DESC, m.created_at DESC`
	if limit > 0 {
		args = append(args, limit, (page-1)*limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func movementWhere(f repository.MovementFilters) (string, []any) {
	var conds []string
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("m.type = $%d", len(args)))
	}
	if f.SiteID != "" {
		args = append(args, f.SiteID)
		conds = append(conds, fmt.Sprintf("(m.source_site_id = $%d OR m.target_site_id = $%d)", len(args), len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("m.movement_date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("m.movement_date <= $%d", len(args)))
	}
	if f.Operator != "" {
		args = append(args, "%"+f.Operator+"%")
		conds = append(conds, fmt.Sprintf("m.operator ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var p entity.Product
	var src, tgt nullableSite
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.SourceSiteID, &m.TargetSiteID,
		&m.Quantity, &m.Condition, &m.MovementDate, &m.Operator, &m.Comment, &m.CreatedAt,
		&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk, &p.Location,
		&p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&src.ID, &src.Name, &src.Type, &src.Address, &src.IsActive, &src.CreatedAt, &src.UpdatedAt,
		&tgt.ID, &tgt.Name, &tgt.Type, &tgt.Address, &tgt.IsActive, &tgt.CreatedAt, &tgt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	m.Product = &p
	m.SourceSite = src.toEntity()
	m.TargetSite = tgt.toEntity()
	return &m, nil
}
