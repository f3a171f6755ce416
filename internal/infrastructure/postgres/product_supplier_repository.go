package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

var _ repository.ProductSupplierRepository = (*ProductSupplierRepo)(nil)

// ProductSupplierRepo implementación del puerto ProductSupplierRepository
// sobre PostgreSQL.
type ProductSupplierRepo struct {
	db Querier
}

// NewProductSupplierRepository construye el adaptador de persistencia para
// los vínculos producto-proveedor.
func NewProductSupplierRepository(db Querier) *ProductSupplierRepo {
	return &ProductSupplierRepo{db: db}
}

const productSupplierSelect = `
	SELECT ps.product_id, ps.supplier_id, ps.supplier_ref, ps.unit_price,
		ps.lead_time, ps.product_url, ps.shipping_cost, ps.is_primary,
		ps.created_at, ps.updated_at,
		sp.id, sp.name, sp.contact, sp.email, sp.phone, sp.website, sp.address,
		sp.postal_code, sp.city, sp.country, sp.comment, sp.created_at, sp.updated_at
	FROM product_suppliers ps
	JOIN suppliers sp ON sp.id = ps.supplier_id`

// Create persiste un nuevo vínculo. Si marca principal, el desmarcado del
// resto lo hace antes el caso de uso vía SetPrimary.
func (r *ProductSupplierRepo) Create(link *entity.ProductSupplier) error {
	query := `
		INSERT INTO product_suppliers (product_id, supplier_id, supplier_ref,
			unit_price, lead_time, product_url, shipping_cost, is_primary,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(context.Background(), query,
		link.ProductID, link.SupplierID, link.SupplierRef, link.UnitPrice,
		link.LeadTime, link.ProductURL, link.ShippingCost, link.IsPrimary,
		link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product supplier: %w", err)
	}
	return nil
}

// Get obtiene un vínculo por su clave compuesta; nil si no existe.
func (r *ProductSupplierRepo) Get(productID, supplierID string) (*entity.ProductSupplier, error) {
	rows, err := r.db.Query(context.Background(),
		productSupplierSelect+` WHERE ps.product_id = $1 AND ps.supplier_id = $2`,
		productID, supplierID)
	if err != nil {
		return nil, fmt.Errorf("get product supplier: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanProductSupplier(rows)
}

// ListByProduct devuelve los vínculos de un producto, el principal primero.
func (r *ProductSupplierRepo) ListByProduct(productID string) ([]*entity.ProductSupplier, error) {
	rows, err := r.db.Query(context.Background(),
		productSupplierSelect+` WHERE ps.product_id = $1 ORDER BY ps.is_primary DESC, sp.name ASC`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("list product suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductSupplier
	for rows.Next() {
		link, err := scanProductSupplier(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, link)
	}
	return list, rows.Err()
}

// PrimaryByProduct devuelve el vínculo principal del producto, o nil.
func (r *ProductSupplierRepo) PrimaryByProduct(productID string) (*entity.ProductSupplier, error) {
	rows, err := r.db.Query(context.Background(),
		productSupplierSelect+` WHERE ps.product_id = $1 AND ps.is_primary`, productID)
	if err != nil {
		return nil, fmt.Errorf("primary product supplier: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanProductSupplier(rows)
}

// SetPrimary desmarca al principal vigente y marca el vínculo dado. El orden
// desmarcar-marcar respeta el índice parcial único: nunca hay dos principales.
func (r *ProductSupplierRepo) SetPrimary(productID, supplierID string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE product_suppliers SET is_primary = FALSE, updated_at = NOW()
		WHERE product_id = $1 AND is_primary`, productID)
	if err != nil {
		return fmt.Errorf("clear primary supplier: %w", err)
	}
	tag, err := r.db.Exec(context.Background(),
		`UPDATE product_suppliers SET is_primary = TRUE, updated_at = NOW()
		WHERE product_id = $1 AND supplier_id = $2`, productID, supplierID)
	if err != nil {
		return fmt.Errorf("set primary supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un vínculo por su clave compuesta.
func (r *ProductSupplierRepo) Delete(productID, supplierID string) error {
	tag, err := r.db.Exec(context.Background(),
		`DELETE FROM product_suppliers WHERE product_id = $1 AND supplier_id = $2`,
		productID, supplierID)
	if err != nil {
		return fmt.Errorf("delete product supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProductSupplier(row pgx.Row) (*entity.ProductSupplier, error) {
	var link entity.ProductSupplier
	var sp nullableSupplier
	err := row.Scan(
		&link.ProductID, &link.SupplierID, &link.SupplierRef, &link.UnitPrice,
		&link.LeadTime, &link.ProductURL, &link.ShippingCost, &link.IsPrimary,
		&link.CreatedAt, &link.UpdatedAt,
		&sp.ID, &sp.Name, &sp.Contact, &sp.Email, &sp.Phone, &sp.Website, &sp.Address,
		&sp.PostalCode, &sp.City, &sp.Country, &sp.Comment, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan product supplier: %w", err)
	}
	link.Supplier = sp.toEntity()
	return &link, nil
}
