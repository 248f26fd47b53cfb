package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del catálogo.
// Quantity solo la modifica el libro de movimientos (ledger); nunca se escribe directo.
type InventoryItem struct {
	ID           string
	Name         string
	SKU          *string // opcional, único si está presente
	Description  string
	Category     string
	Price        decimal.Decimal // precio de venta
	CostPrice    decimal.Decimal // costo de compra
	ReorderLevel int
	SupplierID   *string
	Quantity     int        // siempre >= 0
	DeletedAt    *time.Time // tombstone: el historial de movimientos se conserva
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDeleted indica si el artículo fue dado de baja.
func (i *InventoryItem) IsDeleted() bool {
	return i.DeletedAt != nil
}

// IsLowStock indica si la cantidad está en o por debajo del nivel de reorden.
func (i *InventoryItem) IsLowStock() bool {
	return i.ReorderLevel > 0 && i.Quantity <= i.ReorderLevel
}
