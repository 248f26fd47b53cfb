package inventory

import (
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ApplyDelta implementa la regla del libro de movimientos (servicio de dominio):
// NuevaCantidad = CantidadActual + Delta, rechazando delta cero y resultados negativos.
func ApplyDelta(itemID string, current, delta int) (int, error) {
	if delta == 0 {
		return current, domain.ErrZeroDelta
	}
	next := current + delta
	if next < 0 {
		return current, &domain.InsufficientStockError{ItemID: itemID, Requested: -delta, Available: current}
	}
	return next, nil
}

// MovementSpec metadatos de un movimiento antes de aplicarse.
type MovementSpec struct {
	Type            entity.MovementType
	Reason          *string
	ReferenceNumber *string
	CreatedBy       *string
}

// NewMovement construye el registro de auditoría para un cambio ya validado con ApplyDelta.
func NewMovement(id, itemID string, before, delta int, meta MovementSpec, now time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:              id,
		ItemID:          itemID,
		QuantityChange:  delta,
		QuantityBefore:  before,
		QuantityAfter:   before + delta,
		Type:            meta.Type,
		Reason:          meta.Reason,
		ReferenceNumber: meta.ReferenceNumber,
		CreatedAt:       now,
		CreatedBy:       meta.CreatedBy,
	}
}
