package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ItemFilter filtros opcionales del listado de artículos.
type ItemFilter struct {
	Category   string
	SupplierID string
	LowStock   bool // quantity <= reorder_level
	Search     string
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Update no toca quantity: la única escritura de cantidad es SetQuantity, reservada al ledger.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	SetQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*entity.InventoryItem, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
