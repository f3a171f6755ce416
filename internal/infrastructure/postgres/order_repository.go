package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/entity"
	"github.com/jhoicas/Stock-api/internal/domain/repository"
	"github.com/jhoicas/Stock-api/internal/domain/stock"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persiste el pedido y todas sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, supplier_id, title, status, order_date,
			expected_date, received_date, destination_site_id, responsible,
			supplier_ref, comment, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierID, order.Title, order.Status,
		order.OrderDate, order.ExpectedDate, order.ReceivedDate, order.DestinationSiteID,
		order.Responsible, order.SupplierRef, order.Comment, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price,
				received_qty, received_date, condition)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := r.db.Exec(context.Background(), itemQuery,
			item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice,
			item.ReceivedQty, item.ReceivedDate, item.Condition,
		)
		if err != nil {
			// Producto inexistente en una línea.
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

const orderSelect = `
	SELECT o.id, o.order_number, o.supplier_id, o.title, o.status, o.order_date,
		o.expected_date, o.received_date, o.destination_site_id, o.responsible,
		o.supplier_ref, o.comment, o.created_by, o.created_at, o.updated_at,
		sp.id, sp.name, sp.contact, sp.email, sp.phone, sp.website, sp.address,
		sp.postal_code, sp.city, sp.country, sp.comment, sp.created_at, sp.updated_at,
		ds.id, ds.name, ds.type, ds.address, ds.is_active, ds.created_at, ds.updated_at
	FROM orders o
	JOIN suppliers sp ON sp.id = o.supplier_id
	LEFT JOIN sites ds ON ds.id = o.destination_site_id`

// GetByID obtiene un pedido con proveedor, sitio destino y líneas expandidas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	rows, err := r.db.Query(context.Background(), orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}
		return nil, nil
	}
	order, err := scanOrder(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	items, err := r.itemsExpanded(id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// List lista pedidos filtrados, más recientes primero, con sus líneas.
func (r *OrderRepo) List(f repository.OrderFilters, page, limit int) ([]*entity.Order, int, error) {
	where, args := orderWhere(f)

	var total int
	if err := r.db.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := orderSelect + where + ` ORDER BY o.order_date DESC, o.order_number DESC`
	if limit > 0 {
		args = append(args, limit, (page-1)*limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := r.attachItems(list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateHeader persiste los campos de cabecera (incluido el estado).
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	query := `
		UPDATE orders SET title = $2, status = $3, order_date = $4, expected_date = $5,
			received_date = $6, destination_site_id = $7, responsible = $8,
			supplier_ref = $9, comment = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		order.ID, order.Title, order.Status, order.OrderDate, order.ExpectedDate,
		order.ReceivedDate, order.DestinationSiteID, order.Responsible,
		order.SupplierRef, order.Comment, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina un pedido; las líneas caen en cascada.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// NextSequence incrementa y devuelve el contador del año en una sola
// sentencia; bajo concurrencia cada llamada obtiene un valor distinto.
func (r *OrderRepo) NextSequence(year int) (int, error) {
	query := `
		INSERT INTO order_sequences (year, last_seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = order_sequences.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.db.QueryRow(context.Background(), query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return seq, nil
}

// MarkItemReceived fija la recepción solo si la línea sigue pendiente. El
// predicado received_qty IS NULL hace que de dos recepciones concurrentes
// solo una afecte filas; la otra devuelve false.
func (r *OrderRepo) MarkItemReceived(itemID string, qty int, date time.Time, condition stock.Condition) (bool, error) {
	query := `
		UPDATE order_items SET received_qty = $2, received_date = $3, condition = $4
		WHERE id = $1 AND received_qty IS NULL`
	cmd, err := r.db.Exec(context.Background(), query, itemID, qty, date, string(condition))
	if err != nil {
		return false, fmt.Errorf("mark item received: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ItemsByOrder devuelve las líneas del pedido sin expansión de producto.
func (r *OrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, received_qty,
			received_date, condition
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ReceivedQty, &it.ReceivedDate, &it.Condition,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Complete promueve el pedido a COMPLETED y estampa la fecha de recepción.
func (r *OrderRepo) Complete(orderID string, receivedDate time.Time) error {
	query := `
		UPDATE orders SET status = $2, received_date = $3, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query, orderID, entity.OrderStatusCompleted, receivedDate)
	if err != nil {
		return fmt.Errorf("complete order: %w", err)
	}
	return nil
}

func orderWhere(f repository.OrderFilters) (string, []any) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		conds = append(conds, fmt.Sprintf("o.supplier_id = $%d", len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = o.id AND oi.product_id = $%d)", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("o.order_date <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(o.order_number ILIKE $%d OR o.title ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// itemsExpanded devuelve las líneas con su producto.
func (r *OrderRepo) itemsExpanded(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price,
			i.received_qty, i.received_date, i.condition,
			p.id, p.reference, p.description, p.qty_per_unit, p.supply_risk,
			p.location, p.min_stock, p.comment, p.image_url, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1 ORDER BY p.reference`
	rows, err := r.db.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ReceivedQty, &it.ReceivedDate, &it.Condition,
			&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk,
			&p.Location, &p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Product = &p
		items = append(items, &it)
	}
	return items, rows.Err()
}

// attachItems carga las líneas de todos los pedidos listados en una pasada.
func (r *OrderRepo) attachItems(orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price,
			i.received_qty, i.received_date, i.condition,
			p.id, p.reference, p.description, p.qty_per_unit, p.supply_risk,
			p.location, p.min_stock, p.comment, p.image_url, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1) ORDER BY p.reference`
	rows, err := r.db.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.OrderItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.ReceivedQty, &it.ReceivedDate, &it.Condition,
			&p.ID, &p.Reference, &p.Description, &p.QtyPerUnit, &p.SupplyRisk,
			&p.Location, &p.MinStock, &p.Comment, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		it.Product = &p
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var sp nullableSupplier
	var ds nullableSite
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.Title, &o.Status, &o.OrderDate,
		&o.ExpectedDate, &o.ReceivedDate, &o.DestinationSiteID, &o.Responsible,
		&o.SupplierRef, &o.Comment, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		&sp.ID, &sp.Name, &sp.Contact, &sp.Email, &sp.Phone, &sp.Website, &sp.Address,
		&sp.PostalCode, &sp.City, &sp.Country, &sp.Comment, &sp.CreatedAt, &sp.UpdatedAt,
		&ds.ID, &ds.Name, &ds.Type, &ds.Address, &ds.IsActive, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Supplier = sp.toEntity()
	o.DestinationSite = ds.toEntity()
	return &o, nil
}
