package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetInventorySummary conteos y valorización del catálogo vivo.
func (r *AnalyticsRepo) GetInventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                                        AS item_count,
	    COALESCE(SUM(quantity), 0)::INT                                 AS units_on_hand,
	    COALESCE(SUM(quantity * cost_price), 0)                         AS value_at_cost,
	    COALESCE(SUM(quantity * price), 0)                              AS value_at_price,
	    COUNT(*) FILTER (WHERE reorder_level > 0 AND quantity <= reorder_level) AS low_stock,
	    COUNT(*) FILTER (WHERE quantity = 0)                            AS out_of_stock
	FROM inventory_items
	WHERE deleted_at IS NULL`

	var s repository.InventorySummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.ItemCount, &s.UnitsOnHand, &s.ValueAtCost, &s.ValueAtPrice, &s.LowStockCount, &s.OutOfStockCount,
	)
	if err != nil {
		return repository.InventorySummary{}, fmt.Errorf("inventory summary: %w", err)
	}
	return s, nil
}

// GetPurchaseOrderSummary órdenes abiertas (draft|pending) y su valor.
func (r *AnalyticsRepo) GetPurchaseOrderSummary(ctx context.Context) (repository.PurchaseOrderSummary, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
	FROM purchase_orders
	WHERE status IN ('draft', 'pending')`

	var s repository.PurchaseOrderSummary
	if err := r.pool.QueryRow(ctx, query).Scan(&s.OpenCount, &s.OpenValue); err != nil {
		return repository.PurchaseOrderSummary{}, fmt.Errorf("purchase order summary: %w", err)
	}
	return s, nil
}

// GetMovementCounts número de movimientos y unidades netas por tipo en [startDate, endDate].
func (r *AnalyticsRepo) GetMovementCounts(ctx context.Context, startDate, endDate time.Time) ([]repository.MovementTypeCount, error) {
	const query = `
	SELECT movement_type, COUNT(*), COALESCE(SUM(quantity_change), 0)::INT
	FROM stock_movements
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY movement_type
	ORDER BY movement_type`

	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("movement counts: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementTypeCount
	for rows.Next() {
		var c repository.MovementTypeCount
		var mt string
		if err := rows.Scan(&mt, &c.Count, &c.NetUnits); err != nil {
			return nil, fmt.Errorf("scan movement count: %w", err)
		}
		c.Type = entity.MovementType(mt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListRecentMovements últimos movimientos de todo el catálogo.
func (r *AnalyticsRepo) ListRecentMovements(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY created_at DESC, seq DESC LIMIT $1`
	return queryMovements(ctx, r.pool, query, limit)
}
