package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, supplier_id, status, total_amount, notes, expected_delivery, received_at, created_at, updated_at`

// PurchaseOrderRepo persistencia de órdenes de compra y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador (pool o tx).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var status string
	if err := row.Scan(&po.ID, &po.PONumber, &po.SupplierID, &status, &po.TotalAmount, &po.Notes,
		&po.ExpectedDelivery, &po.ReceivedAt, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	po.Status = entity.POStatus(status)
	return &po, nil
}

// Create inserta la cabecera de la orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.SupplierID, string(po.Status), po.TotalAmount, po.Notes,
		po.ExpectedDelivery, po.ReceivedAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, l *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity_ordered, quantity_received, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.PurchaseOrderID, l.ItemID, l.QuantityOrdered, l.QuantityReceived, l.UnitPrice)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, l.ItemID)
		}
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	po.Items = lines
	return po, nil
}

// GetByID devuelve la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, true)
}

func (r *PurchaseOrderRepo) listItems(ctx context.Context, poID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, item_id, quantity_ordered, quantity_received, unit_price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY item_id, id`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var l entity.PurchaseOrderItem
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID, &l.QuantityOrdered, &l.QuantityReceived, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update persiste estado, notas y fechas de la cabecera.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $2, notes = $3, expected_delivery = $4, received_at = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, po.ID, string(po.Status), po.Notes, po.ExpectedDelivery, po.ReceivedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived registra la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, lineID string, qty int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`, lineID, qty)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cabeceras (sin líneas), la más reciente primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter, limit, offset int) ([]*entity.PurchaseOrder, error) {
	where := []string{"TRUE"}
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM purchase_orders WHERE %s ORDER BY created_at DESC, po_number DESC LIMIT $%d OFFSET $%d`,
		poColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
