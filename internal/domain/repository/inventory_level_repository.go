package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReplenishmentItem resultado crudo del repositorio para un artículo bajo nivel de reorden.
type ReplenishmentItem struct {
	ItemID       string
	SKU          string
	ItemName     string
	Category     string
	SupplierID   string
	Quantity     int
	ReorderLevel int
	CostPrice    decimal.Decimal
	Price        decimal.Decimal
	// Unidades pendientes en órdenes draft/pending (evita volver a pedir lo ya pedido).
	OnOrder int
}

// InventoryLevelRepository consultas de lectura sobre niveles de stock (consumidas por alertas).
type InventoryLevelRepository interface {
	// GetItemsBelowReorderLevel devuelve los artículos vivos con quantity <= reorder_level,
	// ordenados por mayor déficit primero. category vacío = todas.
	GetItemsBelowReorderLevel(ctx context.Context, category string) ([]ReplenishmentItem, error)
}
