package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos. Solo inserción y lectura:
// los movimientos no se actualizan ni se eliminan.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByItem devuelve los movimientos del artículo, el más reciente primero.
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, referenceNumber string) ([]*entity.StockMovement, error)
}
