package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estado de una orden de compra.
type POStatus string

// Estados de la orden de compra. received y cancelled son terminales.
const (
	POStatusDraft     POStatus = "draft"
	POStatusPending   POStatus = "pending"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

// ParsePOStatus valida un estado recibido desde fuera.
func ParsePOStatus(s string) (POStatus, bool) {
	switch st := POStatus(s); st {
	case POStatusDraft, POStatusPending, POStatusReceived, POStatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal indica si no hay transiciones de salida.
func (s POStatus) IsTerminal() bool {
	return s == POStatusReceived || s == POStatusCancelled
}

// CanReceive draft|pending -> received.
func (s POStatus) CanReceive() bool {
	return s == POStatusDraft || s == POStatusPending
}

// CanCancel draft|pending -> cancelled.
func (s POStatus) CanCancel() bool {
	return s == POStatusDraft || s == POStatusPending
}

// CanDelete: una orden recibida no se borra porque su número queda referenciado en movimientos.
func (s POStatus) CanDelete() bool {
	return s != POStatusReceived
}

// PurchaseOrder cabecera de una orden de compra a proveedor.
type PurchaseOrder struct {
	ID               string
	PONumber         string
	SupplierID       string
	Status           POStatus
	TotalAmount      decimal.Decimal
	Notes            string
	ExpectedDelivery *time.Time
	ReceivedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []*PurchaseOrderItem
}

// PurchaseOrderItem línea de la orden. Se elimina junto con la orden.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ItemID           string
	QuantityOrdered  int
	QuantityReceived int
	UnitPrice        decimal.Decimal
}

// Subtotal QuantityOrdered × UnitPrice.
func (l *PurchaseOrderItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.QuantityOrdered)))
}

// ComputeTotal suma los subtotales de las líneas.
func (po *PurchaseOrder) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}
