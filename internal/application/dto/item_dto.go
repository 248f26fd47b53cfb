package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
// Quantity es la cantidad inicial; se registra como movimiento "adjusted" en el ledger.
type CreateItemRequest struct {
	Name         string          `json:"name"`
	SKU          *string         `json:"sku"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderLevel int             `json:"reorder_level"`
	SupplierID   *string         `json:"supplier_id"`
	Quantity     int             `json:"quantity"`
}

// UpdateItemRequest entrada para actualizar un artículo.
// Si Quantity cambia, la diferencia pasa por el ledger con MovementReason como motivo.
type UpdateItemRequest struct {
	Name           *string          `json:"name"`
	SKU            *string          `json:"sku"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	ReorderLevel   *int             `json:"reorder_level"`
	SupplierID     *string          `json:"supplier_id"`
	Quantity       *int             `json:"quantity"`
	MovementReason *string          `json:"movement_reason"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          *string         `json:"sku,omitempty"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderLevel int             `json:"reorder_level"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Quantity     int             `json:"quantity"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
