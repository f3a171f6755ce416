package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, reference, description, qty_per_unit, supply_risk, location, min_stock, comment, image_url, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(context.Background(), query,
		product.ID, strings.ToUpper(product.Reference), product.Description,
		product.QtyPerUnit, product.SupplyRisk, product.Location, product.MinStock,
		product.Comment, product.ImageURL, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.db.QueryRow(context.Background(), query, id))
}

// GetByReference obtiene un producto por referencia (insensible a mayúsculas).
func (r *ProductRepo) GetByReference(reference string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE UPPER(reference) = UPPER($1)`
	return r.scanOne(r.db.QueryRow(context.Background(), query, reference))
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET reference = $2, description = $3, qty_per_unit = $4,
			supply_risk = $5, location = $6, min_stock = $7, comment = $8,
			image_url = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		product.ID, strings.ToUpper(product.Reference), product.Description,
		product.QtyPerUnit, product.SupplyRisk, product.Location, product.MinStock,
		product.Comment, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con búsqueda y paginación; limit <= 0 devuelve todo.
func (r *ProductRepo) List(f repository.ProductFilters, page, limit int) ([]*entity.Product, int, error) {
	where, args := productWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.db.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY reference ASC`
	if limit > 0 {
		args = append(args, limit, (page-1)*limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// ListBySupplyRisk lista productos por nivel de riesgo, ordenados por referencia.
func (r *ProductRepo) ListBySupplyRisk(risk string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE supply_risk = $1 ORDER BY reference ASC`
	rows, err := r.db.Query(context.Background(), query, risk)
	if err != nil {
		return nil, fmt.Errorf("list products by risk: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productWhere(f repository.ProductFilters) (string, []any) {
	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(reference ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if f.SupplyRisk != "" {
		args = append(args, f.SupplyRisk)
		conds = append(conds, fmt.Sprintf("supply_risk = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk,
		&p.Location, &p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
