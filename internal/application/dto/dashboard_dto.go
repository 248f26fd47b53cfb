package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Catálogo vivo
	ItemCount       int             `json:"item_count"`
	UnitsOnHand     int             `json:"units_on_hand"`
	ValueAtCost     decimal.Decimal `json:"value_at_cost"`
	ValueAtPrice    decimal.Decimal `json:"value_at_price"`
	ValueAtCostText string          `json:"value_at_cost_text"` // formateado con la moneda configurada
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`

	// Órdenes abiertas (draft|pending)
	OpenPurchaseOrders     int             `json:"open_purchase_orders"`
	OpenPurchaseOrderValue decimal.Decimal `json:"open_purchase_order_value"`

	// Movimientos de los últimos 30 días por tipo
	MovementsByType []MovementTypeSummaryDTO `json:"movements_by_type"`

	// Últimos movimientos registrados
	RecentMovements []StockMovementResponse `json:"recent_movements"`

	PeriodLabel string `json:"period_label"`
}

// MovementTypeSummaryDTO conteo y unidades netas por tipo de movimiento.
type MovementTypeSummaryDTO struct {
	MovementType string `json:"movement_type"`
	Count        int    `json:"count"`
	NetUnits     int    `json:"net_units"`
}
