package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
// Status admite "draft" o "pending" (por defecto "pending").
type CreatePurchaseOrderRequest struct {
	SupplierID       string                     `json:"supplier_id"`
	Status           string                     `json:"status,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	ExpectedDelivery *time.Time                 `json:"expected_delivery,omitempty"`
	Items            []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemRequest línea de la orden (artículo, cantidad, precio unitario).
type PurchaseOrderItemRequest struct {
	ItemID          string          `json:"item_id"`
	QuantityOrdered int             `json:"quantity_ordered"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// UpdatePurchaseOrderRequest edición de campos de una orden abierta.
// Status solo admite "pending" (enviar un borrador); recibir y cancelar tienen endpoints propios.
type UpdatePurchaseOrderRequest struct {
	Notes            *string    `json:"notes,omitempty"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
	Status           *string    `json:"status,omitempty"`
}

// PurchaseOrderResponse orden con sus líneas.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	PONumber         string                      `json:"po_number"`
	SupplierID       string                      `json:"supplier_id"`
	SupplierName     string                      `json:"supplier_name,omitempty"`
	Status           string                      `json:"status"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	Notes            string                      `json:"notes"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery,omitempty"`
	ReceivedAt       *time.Time                  `json:"received_at,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Items            []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderItemResponse línea en la respuesta.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderListResponse lista paginada de órdenes (sin líneas).
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
