package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo consultas de niveles de stock sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// GetItemsBelowReorderLevel artículos vivos con quantity <= reorder_level, con las unidades pendientes
// en órdenes abiertas. Orden: mayor déficit primero.
func (r *InventoryLevelRepo) GetItemsBelowReorderLevel(ctx context.Context, category string) ([]repository.ReplenishmentItem, error) {
	const query = `
	SELECT
	    i.id,
	    COALESCE(i.sku, '')                AS sku,
	    i.name,
	    i.category,
	    COALESCE(i.supplier_id, '')        AS supplier_id,
	    i.quantity,
	    i.reorder_level,
	    i.cost_price,
	    i.price,
	    COALESCE(SUM(l.quantity_ordered - l.quantity_received)
	        FILTER (WHERE po.status IN ('draft', 'pending')), 0)::INT AS on_order
	FROM inventory_items i
	LEFT JOIN purchase_order_items l ON l.item_id = i.id
	LEFT JOIN purchase_orders po     ON po.id     = l.purchase_order_id
	WHERE i.deleted_at IS NULL
	  AND i.reorder_level > 0
	  AND i.quantity <= i.reorder_level
	  AND ($1 = '' OR i.category = $1)
	GROUP BY i.id
	ORDER BY (i.reorder_level - i.quantity) DESC, i.name`

	rows, err := r.q.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("items below reorder level: %w", err)
	}
	defer rows.Close()

	var list []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.ItemID, &it.SKU, &it.ItemName, &it.Category, &it.SupplierID,
			&it.Quantity, &it.ReorderLevel, &it.CostPrice, &it.Price, &it.OnOrder); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
