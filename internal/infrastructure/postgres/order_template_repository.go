package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
)

var _ repository.OrderTemplateRepository = (*OrderTemplateRepo)(nil)

// OrderTemplateRepo implementación del puerto OrderTemplateRepository sobre
// PostgreSQL.
type OrderTemplateRepo struct {
	db Querier
}

// NewOrderTemplateRepository construye el adaptador de persistencia para los
// modelos de pedido.
func NewOrderTemplateRepository(db Querier) *OrderTemplateRepo {
	return &OrderTemplateRepo{db: db}
}

const templateSelect = `
	SELECT t.id, t.name, t.supplier_id, t.destination_site_id, t.responsible,
		t.comment, t.created_at, t.updated_at,
		sp.id, sp.name, sp.contact, sp.email, sp.phone, sp.website, sp.address,
		sp.postal_code, sp.city, sp.country, sp.comment, sp.created_at, sp.updated_at,
		ds.id, ds.name, ds.type, ds.address, ds.is_active, ds.created_at, ds.updated_at
	FROM order_templates t
	JOIN suppliers sp ON sp.id = t.supplier_id
	LEFT JOIN sites ds ON ds.id = t.destination_site_id`

// Create persiste el modelo y todas sus líneas.
func (r *OrderTemplateRepo) Create(template *entity.OrderTemplate) error {
	query := `
		INSERT INTO order_templates (id, name, supplier_id, destination_site_id,
			responsible, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(context.Background(), query,
		template.ID, template.Name, template.SupplierID, template.DestinationSiteID,
		template.Responsible, template.Comment, template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order template: %w", err)
	}
	return r.insertItems(template.ID, template.Items)
}

// GetByID obtiene un modelo con proveedor, sitio destino y líneas expandidas.
func (r *OrderTemplateRepo) GetByID(id string) (*entity.OrderTemplate, error) {
	rows, err := r.db.Query(context.Background(), templateSelect+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get order template: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get order template: %w", err)
		}
		return nil, nil
	}
	template, err := scanTemplate(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	items, err := r.itemsExpanded(id)
	if err != nil {
		return nil, err
	}
	template.Items = items
	return template, nil
}

// List devuelve todos los modelos por nombre, con sus líneas.
func (r *OrderTemplateRepo) List() ([]*entity.OrderTemplate, error) {
	rows, err := r.db.Query(context.Background(), templateSelect+` ORDER BY t.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list order templates: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, template)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, t := range list {
		items, err := r.itemsExpanded(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

// UpdateHeader persiste los campos de cabecera del modelo.
func (r *OrderTemplateRepo) UpdateHeader(template *entity.OrderTemplate) error {
	query := `
		UPDATE order_templates SET name = $2, supplier_id = $3,
			destination_site_id = $4, responsible = $5, comment = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		template.ID, template.Name, template.SupplierID, template.DestinationSiteID,
		template.Responsible, template.Comment, template.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update order template: %w", err)
	}
	return nil
}

// ReplaceItems sustituye todas las líneas del modelo por las dadas.
func (r *OrderTemplateRepo) ReplaceItems(templateID string, items []*entity.OrderTemplateItem) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM order_template_items WHERE template_id = $1`, templateID)
	if err != nil {
		return fmt.Errorf("clear order template items: %w", err)
	}
	return r.insertItems(templateID, items)
}

// Delete elimina un modelo; las líneas caen en cascada.
func (r *OrderTemplateRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM order_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order template: %w", err)
	}
	return nil
}

func (r *OrderTemplateRepo) insertItems(templateID string, items []*entity.OrderTemplateItem) error {
	for _, item := range items {
		query := `
			INSERT INTO order_template_items (id, template_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := r.db.Exec(context.Background(), query,
			item.ID, templateID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			// Producto inexistente en una línea.
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert order template item: %w", err)
		}
	}
	return nil
}

func (r *OrderTemplateRepo) itemsExpanded(templateID string) ([]*entity.OrderTemplateItem, error) {
	query := `
		SELECT i.id, i.template_id, i.product_id, i.quantity, i.unit_price,
			p.id, p.reference, p.description, p.qty_per_unit, p.supply_risk,
			p.location, p.min_stock, p.comment, p.image_url, p.created_at, p.updated_at
		FROM order_template_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.template_id = $1 ORDER BY p.reference`
	rows, err := r.db.Query(context.Background(), query, templateID)
	if err != nil {
		return nil, fmt.Errorf("list order template items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderTemplateItem
	for rows.Next() {
		var it entity.OrderTemplateItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.TemplateID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk,
			&p.Location, &p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order template item: %w", err)
		}
		it.Product = &p
		items = append(items, &it)
	}
	return items, rows.Err()
}

func scanTemplate(row pgx.Row) (*entity.OrderTemplate, error) {
	var t entity.OrderTemplate
	var sp nullableSupplier
	var ds nullableSite
	err := row.Scan(
		&t.ID, &t.Name, &t.SupplierID, &t.DestinationSiteID, &t.Responsible,
		&t.Comment, &t.CreatedAt, &t.UpdatedAt,
		&sp.ID, &sp.Name, &sp.Contact, &sp.Email, &sp.Phone, &sp.Website, &sp.Address,
		&sp.PostalCode, &sp.City, &sp.Country, &sp.Comment, &sp.CreatedAt, &sp.UpdatedAt,
		&ds.ID, &ds.Name, &ds.Type, &ds.Address, &ds.IsActive, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order template: %w", err)
	}
	t.Supplier = sp.toEntity()
	t.DestinationSite = ds.toEntity()
	return &t, nil
}
