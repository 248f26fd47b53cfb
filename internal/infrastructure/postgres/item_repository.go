package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, sku, description, category, price, cost_price, reorder_level, supplier_id, quantity, deleted_at, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.Name, &it.SKU, &it.Description, &it.Category, &it.Price, &it.CostPrice,
		&it.ReorderLevel, &it.SupplierID, &it.Quantity, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Description, item.Category, item.Price, item.CostPrice,
		item.ReorderLevel, item.SupplierID, item.Quantity, item.DeletedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

// GetByID obtiene un artículo por ID, incluidos los dados de baja.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetBySKU obtiene un artículo por SKU.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get item by sku", `SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku)
}

// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para evitar condiciones de carrera.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "lock item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza los campos descriptivos. No modifica quantity.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, sku = $3, description = $4, category = $5, price = $6,
			cost_price = $7, reorder_level = $8, supplier_id = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Description, item.Category, item.Price,
		item.CostPrice, item.ReorderLevel, item.SupplierID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity escribe la cantidad. Solo lo usa el ledger, con la fila ya bloqueada.
func (r *ItemRepo) SetQuantity(ctx context.Context, id string, quantity int, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, at,
	)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("set item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos vivos con filtros y paginación.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter, limit, offset int) ([]*entity.InventoryItem, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if f.LowStock {
		where = append(where, "reorder_level > 0 AND quantity <= reorder_level")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		itemColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// SoftDelete marca deleted_at. Los movimientos y líneas de orden conservan la referencia.
func (r *ItemRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
