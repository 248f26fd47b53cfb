package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustQuantityRequest body para POST /api/items/:id/adjust.
type AdjustQuantityRequest struct {
	Delta           int     `json:"delta"`
	MovementType    string  `json:"movement_type"`
	Reason          *string `json:"reason,omitempty"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
}

// StockMovementResponse movimiento del libro de inventario.
type StockMovementResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	QuantityChange  int       `json:"quantity_change"`
	QuantityBefore  int       `json:"quantity_before"`
	QuantityAfter   int       `json:"quantity_after"`
	MovementType    string    `json:"movement_type"`
	Reason          *string   `json:"reason,omitempty"`
	ReferenceNumber *string   `json:"reference_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       *string   `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos (más reciente primero).
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un artículo en o bajo su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku,omitempty"`
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	Quantity           int             `json:"quantity"`
	ReorderLevel       int             `json:"reorder_level"`
	OnOrder            int             `json:"on_order"`            // unidades en órdenes abiertas
	IdealStock         int             `json:"ideal_stock"`         // ReorderLevel * 1.5 (redondeo hacia arriba)
	SuggestedOrderQty  int             `json:"suggested_order_qty"` // IdealStock - Quantity - OnOrder
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
