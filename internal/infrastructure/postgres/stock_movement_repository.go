package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, item_id, quantity_change, quantity_before, quantity_after, movement_type, reason, reference_number, created_at, created_by`

// StockMovementRepo adaptador del libro de movimientos. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio (pool o tx).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.QuantityChange, m.QuantityBefore, m.QuantityAfter, string(m.Type),
		m.Reason, m.ReferenceNumber, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem movimientos del artículo, el más reciente primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE item_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2 OFFSET $3`
	return queryMovements(ctx, r.q, query, itemID, limit, offset)
}

// ListByReference movimientos con un número de referencia (ej. número de orden de compra).
func (r *StockMovementRepo) ListByReference(ctx context.Context, ref string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE reference_number = $1 ORDER BY created_at DESC, seq DESC`
	return queryMovements(ctx, r.q, query, ref)
}

func queryMovements(ctx context.Context, q Querier, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var mt string
	if err := row.Scan(&m.ID, &m.ItemID, &m.QuantityChange, &m.QuantityBefore, &m.QuantityAfter, &mt,
		&m.Reason, &m.ReferenceNumber, &m.CreatedAt, &m.CreatedBy); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(mt)
	return &m, nil
}
