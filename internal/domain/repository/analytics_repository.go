package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventorySummary agregados del catálogo vivo.
type InventorySummary struct {
	ItemCount       int
	UnitsOnHand     int
	ValueAtCost     decimal.Decimal // Σ quantity × cost_price
	ValueAtPrice    decimal.Decimal // Σ quantity × price
	LowStockCount   int
	OutOfStockCount int
}

// PurchaseOrderSummary órdenes abiertas (draft|pending).
type PurchaseOrderSummary struct {
	OpenCount int
	OpenValue decimal.Decimal
}

// MovementTypeCount unidades y número de movimientos por tipo en un período.
type MovementTypeCount struct {
	Type     entity.MovementType
	Count    int
	NetUnits int
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	GetInventorySummary(ctx context.Context) (InventorySummary, error)
	GetPurchaseOrderSummary(ctx context.Context) (PurchaseOrderSummary, error)
	GetMovementCounts(ctx context.Context, startDate, endDate time.Time) ([]MovementTypeCount, error)
	ListRecentMovements(ctx context.Context, limit int) ([]*entity.StockMovement, error)
}
